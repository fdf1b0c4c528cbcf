package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"vitals-monitor/internal/models"
)

// RedisConfig Redis配置
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MQTTConfig MQTT配置
type MQTTConfig struct {
	Enabled  bool
	Broker   string
	ClientID string
	Username string
	Password string
	Topic    string
	QoS      byte
}

// SMTPConfig SMTP 发信配置（隐式 TLS）
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SESConfig Amazon SES 发信配置
type SESConfig struct {
	Region string
	From   string
}

// Config vitals-monitor 服务配置
type Config struct {
	HTTP struct {
		Addr string
	}

	Session struct {
		Backend   string        // "memory" 或 "redis"
		TTL       time.Duration // 会话有效期
		KeyPrefix string        // Redis 键前缀，如 "vitals:session:"
		Cookie    string        // 会话 cookie 名称
	}

	Redis RedisConfig

	Thresholds models.Thresholds

	Notify struct {
		Transport  string // "smtp", "ses" 或 "none"
		SMTP       SMTPConfig
		SES        SESConfig
		WebhookURL string // 可选：报警 webhook
		Stream     string // 可选：报警写入的 Redis Stream
		StreamMax  int64  // Stream 保留条数
		Timeout    time.Duration
	}

	MQTT MQTTConfig

	Sample struct {
		Seed int64
	}

	Log struct {
		Level  string
		Format string
	}
}

// Load 加载配置
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Session.Backend = getEnv("SESSION_BACKEND", "memory")
	cfg.Session.TTL = time.Duration(parseInt(getEnv("SESSION_TTL_MINUTES", "720"), 720)) * time.Minute
	cfg.Session.KeyPrefix = getEnv("SESSION_KEY_PREFIX", "vitals:session:")
	cfg.Session.Cookie = getEnv("SESSION_COOKIE", "vitals_session")

	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	// 阈值（默认值见 models.DefaultThresholds）
	// 分类结果依赖阈值，格式错误直接报错而不是回落到默认值
	var parseErrs []error
	intVar := func(key string, def int) int {
		v, err := lookupInt(key, def)
		if err != nil {
			parseErrs = append(parseErrs, err)
		}
		return v
	}
	def := models.DefaultThresholds()
	cfg.Thresholds.HeartRateLow = intVar("THRESHOLD_HEART_RATE_LOW", def.HeartRateLow)
	cfg.Thresholds.HeartRateHigh = intVar("THRESHOLD_HEART_RATE_HIGH", def.HeartRateHigh)
	cfg.Thresholds.SystolicHigh = intVar("THRESHOLD_SYSTOLIC_HIGH", def.SystolicHigh)
	cfg.Thresholds.DiastolicHigh = intVar("THRESHOLD_DIASTOLIC_HIGH", def.DiastolicHigh)
	cfg.Thresholds.GlucoseHigh = intVar("THRESHOLD_GLUCOSE_HIGH", def.GlucoseHigh)
	cfg.Thresholds.SpO2Low = intVar("THRESHOLD_SPO2_LOW", def.SpO2Low)
	if v, err := lookupFloat("THRESHOLD_TEMPERATURE_HIGH", def.TemperatureHigh); err != nil {
		parseErrs = append(parseErrs, err)
	} else {
		cfg.Thresholds.TemperatureHigh = v
	}

	// 通知配置（凭据只从环境变量读取）
	cfg.Notify.Transport = getEnv("NOTIFY_TRANSPORT", "smtp")
	cfg.Notify.SMTP.Host = getEnv("SMTP_HOST", "smtp.gmail.com")
	cfg.Notify.SMTP.Port = parseInt(getEnv("SMTP_PORT", "465"), 465)
	cfg.Notify.SMTP.Username = getEnv("SMTP_USERNAME", "")
	cfg.Notify.SMTP.Password = getEnv("SMTP_PASSWORD", "")
	cfg.Notify.SMTP.From = getEnv("SMTP_FROM", cfg.Notify.SMTP.Username)
	cfg.Notify.SES.Region = getEnv("AWS_REGION", "us-east-1")
	cfg.Notify.SES.From = getEnv("SES_EMAIL", "")
	cfg.Notify.WebhookURL = getEnv("ALERT_WEBHOOK_URL", "")
	cfg.Notify.Stream = getEnv("ALERT_STREAM", "")
	cfg.Notify.StreamMax = int64(parseInt(getEnv("ALERT_STREAM_MAXLEN", "10000"), 10000))
	cfg.Notify.Timeout = time.Duration(parseInt(getEnv("NOTIFY_TIMEOUT_SECONDS", "15"), 15)) * time.Second

	cfg.MQTT.Enabled = getEnv("MQTT_ENABLED", "false") == "true"
	cfg.MQTT.Broker = getEnv("MQTT_BROKER", "tcp://localhost:1883")
	cfg.MQTT.ClientID = getEnv("MQTT_CLIENT_ID", "vitals-monitor")
	cfg.MQTT.Username = getEnv("MQTT_USERNAME", "")
	cfg.MQTT.Password = getEnv("MQTT_PASSWORD", "")
	cfg.MQTT.Topic = getEnv("MQTT_TOPIC", "vitals/alerts")
	qos := intVar("MQTT_QOS", 1)
	if qos < 0 || qos > 2 {
		parseErrs = append(parseErrs, fmt.Errorf("mqtt qos must be 0, 1 or 2: %d", qos))
	} else {
		cfg.MQTT.QoS = byte(qos)
	}

	cfg.Sample.Seed = int64(parseInt(getEnv("SAMPLE_SEED", "0"), 0))

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	if err := errors.Join(parseErrs...); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate 校验配置
func (c *Config) Validate() error {
	if err := c.Thresholds.Validate(); err != nil {
		return fmt.Errorf("invalid thresholds: %w", err)
	}
	switch c.Session.Backend {
	case "memory", "redis":
	default:
		return fmt.Errorf("unknown session backend: %q", c.Session.Backend)
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("session ttl must be positive")
	}
	switch c.Notify.Transport {
	case "smtp", "ses", "none":
	default:
		return fmt.Errorf("unknown notify transport: %q", c.Notify.Transport)
	}
	if c.MQTT.QoS > 2 {
		return fmt.Errorf("mqtt qos must be 0, 1 or 2: %d", c.MQTT.QoS)
	}
	return nil
}

// RedisRequired reports whether any component needs a Redis connection.
func (c *Config) RedisRequired() bool {
	return c.Session.Backend == "redis" || c.Notify.Stream != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseInt(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

// lookupInt 读取整数环境变量；未设置时返回 def，格式错误返回 error
func lookupInt(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	i, err := strconv.Atoi(raw)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return i, nil
}

func lookupFloat(key string, def float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return def, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return f, nil
}
