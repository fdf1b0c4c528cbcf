package service

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Server HTTP 服务（启动 / 优雅停止）
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
}

func NewServer(addr string, handler http.Handler, logger *zap.Logger) *Server {
	s := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		// 写超时需覆盖一次同步邮件发送
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  2 * time.Minute,
	}
	return &Server{httpServer: s, logger: logger}
}

// Start 阻塞直到服务停止；Stop 触发的正常关闭返回 nil
func (s *Server) Start() error {
	s.logger.Info("Starting vitals-monitor HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Stop 等待进行中的请求完成（受 ctx 限制）
func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping vitals-monitor HTTP server")
	return s.httpServer.Shutdown(ctx)
}
