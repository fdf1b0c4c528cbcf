package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router 使用标准库 http.ServeMux
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// byMethod 按请求方法分发，未注册的方法返回 405
func byMethod(handlers map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		h, ok := handlers[req.Method]
		if !ok {
			methodNotAllowed(w)
			return
		}
		h(w, req)
	}
}

// RegisterMonitorRoutes 注册网页流程路由（Intake → Review → Report）
func (r *Router) RegisterMonitorRoutes(h *MonitorHandler) {
	r.Handle("/", func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path != "/" {
			http.NotFound(w, req)
			return
		}
		if req.Method != http.MethodGet {
			methodNotAllowed(w)
			return
		}
		h.Index(w, req)
	})

	r.Handle("/session", byMethod(map[string]http.HandlerFunc{
		http.MethodPost: h.StartSession,
	}))
	r.Handle("/session/reset", byMethod(map[string]http.HandlerFunc{
		http.MethodPost: h.ResetSession,
	}))

	r.Handle("/intake", byMethod(map[string]http.HandlerFunc{
		http.MethodGet:  h.IntakeForm,
		http.MethodPost: h.SubmitReading,
	}))
	r.Handle("/intake/sample", byMethod(map[string]http.HandlerFunc{
		http.MethodPost: h.SubmitSample,
	}))

	r.Handle("/review", byMethod(map[string]http.HandlerFunc{
		http.MethodGet: h.Review,
	}))

	r.Handle("/report", byMethod(map[string]http.HandlerFunc{
		http.MethodGet: h.Report,
	}))
	r.Handle("/report/export.csv", byMethod(map[string]http.HandlerFunc{
		http.MethodGet: h.ExportCSV,
	}))
	r.Handle("/report/export.xlsx", byMethod(map[string]http.HandlerFunc{
		http.MethodGet: h.ExportXLSX,
	}))
}

// RegisterAPIRoutes 注册 JSON API 路由
func (r *Router) RegisterAPIRoutes(a *APIHandler) {
	r.Handle("/api/v1/classify", byMethod(map[string]http.HandlerFunc{
		http.MethodPost: a.Classify,
	}))
	r.Handle("/api/v1/thresholds", byMethod(map[string]http.HandlerFunc{
		http.MethodGet: a.Thresholds,
	}))
	r.Handle("/healthz", byMethod(map[string]http.HandlerFunc{
		http.MethodGet: a.Healthz,
	}))
}
