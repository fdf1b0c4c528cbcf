package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vitals-monitor/internal/config"
	"vitals-monitor/internal/evaluator"
	httpapi "vitals-monitor/internal/http"
	"vitals-monitor/internal/logger"
	"vitals-monitor/internal/mqtt"
	"vitals-monitor/internal/notify"
	rediscommon "vitals-monitor/internal/redis"
	"vitals-monitor/internal/sample"
	"vitals-monitor/internal/service"
	"vitals-monitor/internal/session"
	"vitals-monitor/internal/store"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logr, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "vitals-monitor")
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logr.Sync()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Redis 仅在会话后端或报警 Stream 需要时连接
	var redisClient *redis.Client
	if cfg.RedisRequired() {
		redisClient = rediscommon.NewRedisClient(&cfg.Redis)
		if err := rediscommon.Ping(ctx, redisClient); err != nil {
			logr.Fatal("Failed to connect to Redis", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		logr.Info("Redis connected", zap.String("addr", cfg.Redis.Addr))
	}

	var sessions session.Store
	switch cfg.Session.Backend {
	case "redis":
		sessions = session.NewKVStore(store.NewRedisKV(redisClient), cfg.Session.KeyPrefix, cfg.Session.TTL, logr)
	default:
		sessions = session.NewMemoryStore(cfg.Session.TTL)
	}

	var mqttClient *mqtt.Client
	if cfg.MQTT.Enabled {
		mqttClient, err = mqtt.NewClient(&cfg.MQTT, logr)
		if err != nil {
			// MQTT 只是附加渠道，连接失败不影响启动
			logr.Warn("MQTT unavailable, alerts will not be published to broker", zap.Error(err))
			mqttClient = nil
		}
	}

	dispatcher, err := buildDispatcher(ctx, cfg, redisClient, mqttClient, logr)
	if err != nil {
		logr.Fatal("Failed to set up notification transport", zap.Error(err))
	}

	svc := service.NewMonitorService(
		sessions,
		evaluator.NewEvaluator(cfg.Thresholds),
		dispatcher,
		sample.NewGenerator(cfg.Sample.Seed),
		logr,
	)

	router := httpapi.NewRouter(logr)
	router.RegisterMonitorRoutes(httpapi.NewMonitorHandler(svc, cfg.Session.Cookie, cfg.Session.TTL, logr))
	router.RegisterAPIRoutes(httpapi.NewAPIHandler(svc, logr))

	srv := service.NewServer(cfg.HTTP.Addr, router, logr)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logr.Info("Received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Error("HTTP server stopped", zap.Error(err))
		}
	}
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	_ = srv.Stop(shutdownCtx)

	if mqttClient != nil {
		mqttClient.Disconnect()
	}
	if redisClient != nil {
		_ = rediscommon.Close(redisClient)
	}
}

// buildDispatcher 组装邮件通道和附加渠道
func buildDispatcher(ctx context.Context, cfg *config.Config, redisClient *redis.Client, mqttClient *mqtt.Client, logr *zap.Logger) (*notify.Dispatcher, error) {
	var primary notify.Notifier
	switch cfg.Notify.Transport {
	case "smtp":
		mailer := notify.NewSMTPMailer(cfg.Notify.SMTP, cfg.Notify.Timeout)
		primary = notify.NewEmailNotifier(mailer, cfg.Notify.SMTP.From)
		logr.Info("Email transport: SMTP",
			zap.String("host", cfg.Notify.SMTP.Host),
			zap.Int("port", cfg.Notify.SMTP.Port),
		)
	case "ses":
		mailer, err := notify.NewSESMailer(ctx, cfg.Notify.SES.Region)
		if err != nil {
			return nil, err
		}
		primary = notify.NewEmailNotifier(mailer, cfg.Notify.SES.From)
		logr.Info("Email transport: SES", zap.String("region", cfg.Notify.SES.Region))
	default:
		logr.Warn("Email transport disabled, critical alerts will report a failed notice")
	}

	var sinks []notify.Sink
	if cfg.Notify.WebhookURL != "" {
		sinks = append(sinks, notify.NewWebhookSink(cfg.Notify.WebhookURL, cfg.Notify.Timeout))
	}
	if mqttClient != nil {
		sinks = append(sinks, notify.NewMQTTSink(mqttClient, cfg.MQTT.Topic, cfg.MQTT.QoS, cfg.Notify.Timeout))
	}
	if cfg.Notify.Stream != "" && redisClient != nil {
		sinks = append(sinks, notify.NewStreamSink(redisClient, cfg.Notify.Stream, cfg.Notify.StreamMax))
	}

	return notify.NewDispatcher(primary, sinks, logr), nil
}
