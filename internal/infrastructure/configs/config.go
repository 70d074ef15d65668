package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/hilthontt/chatlobby/internal/infrastructure/env"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	HTTP        HTTPConfig        `koanf:"http"`
	RateLimiter RateLimiterConfig `koanf:"rateLimiter"`
	Toast       ToastConfig       `koanf:"toast"`
	Logging     LoggingConfig     `koanf:"logging"`
	Tracing     TracingConfig     `koanf:"tracing"`
	Storage     StorageConfig     `koanf:"storage"`
}

type HTTPConfig struct {
	Host           string        `koanf:"host"`
	Port           uint16        `koanf:"port"`
	AllowedOrigins []string      `koanf:"allowed_origins"`
	AllowedHeaders []string      `koanf:"allowed_headers"`
	ReadTimeout    time.Duration `koanf:"read_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
	CopyTimeout    time.Duration `koanf:"copy_timeout"`
}

type RateLimiterConfig struct {
	Enabled              bool          `koanf:"enabled"`
	RequestsPerTimeFrame int           `koanf:"requestsPerTimeFrame"`
	TimeFrame            time.Duration `koanf:"timeFrame"`
}

type ToastConfig struct {
	Visible time.Duration `koanf:"visible"`
	Fade    time.Duration `koanf:"fade"`
}

type LoggingConfig struct {
	FilePath   string `koanf:"file_path"`
	Encoding   string `koanf:"encoding"`
	Level      string `koanf:"level"`
	Console    bool   `koanf:"console"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
	MaxAgeDays int    `koanf:"max_age_days"`
}

type TracingConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Endpoint    string `koanf:"endpoint"`
	Environment string `koanf:"environment"`
}

type StorageConfig struct {
	// Dir overrides the directory holding the persisted display name.
	Dir string `koanf:"dir"`
}

func Load(path string) (*Config, error) {
	// A missing .env is the normal case.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	k := koanf.New(".")

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	applyDefaults(k)
	applyEnvOverrides(k)

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(k *koanf.Koanf) {
	// HTTP defaults; the lobby is a single-user app so it binds to loopback.
	setDefault(k, "http.host", "127.0.0.1")
	setDefault(k, "http.port", 8080)
	setDefault(k, "http.read_timeout", 10*time.Second)
	setDefault(k, "http.write_timeout", 30*time.Second)
	setDefault(k, "http.copy_timeout", 2*time.Second)
	setDefault(k, "http.allowed_origins", []string{"http://localhost:8080", "http://127.0.0.1:8080"})
	setDefault(k, "http.allowed_headers", []string{"Content-Type", "Authorization"})

	// Rate limiter defaults
	setDefault(k, "rateLimiter.enabled", true)
	setDefault(k, "rateLimiter.requestsPerTimeFrame", 120)
	setDefault(k, "rateLimiter.timeFrame", time.Minute)

	// Toast defaults
	setDefault(k, "toast.visible", 3*time.Second)
	setDefault(k, "toast.fade", 300*time.Millisecond)

	// Logging defaults
	setDefault(k, "logging.file_path", "./logs/chatlobby.log")
	setDefault(k, "logging.encoding", "json")
	setDefault(k, "logging.level", "info")
	setDefault(k, "logging.console", true)
	setDefault(k, "logging.max_size_mb", 10)
	setDefault(k, "logging.max_backups", 3)
	setDefault(k, "logging.max_age_days", 7)

	// Tracing defaults
	setDefault(k, "tracing.enabled", false)
	setDefault(k, "tracing.endpoint", "http://localhost:4318/v1/traces")
	setDefault(k, "tracing.environment", "development")
}

func applyEnvOverrides(k *koanf.Koanf) {
	// HTTP config from env
	if host := env.GetString("HTTP_HOST", ""); host != "" {
		k.Set("http.host", host)
	}
	if port := env.GetInt("HTTP_PORT", 0); port > 0 {
		k.Set("http.port", port)
	}
	if readTimeout := env.GetInt("HTTP_READ_TIMEOUT_SECONDS", 0); readTimeout > 0 {
		k.Set("http.read_timeout", time.Duration(readTimeout)*time.Second)
	}
	if writeTimeout := env.GetInt("HTTP_WRITE_TIMEOUT_SECONDS", 0); writeTimeout > 0 {
		k.Set("http.write_timeout", time.Duration(writeTimeout)*time.Second)
	}

	// Rate limiter config from env
	if limit := env.GetInt("RATE_LIMIT_REQUESTS_PER_TIME_FRAME", 0); limit > 0 {
		k.Set("rateLimiter.requestsPerTimeFrame", limit)
	}
	if frame := env.GetDuration("RATE_LIMIT_TIME_FRAME", 0); frame > 0 {
		k.Set("rateLimiter.timeFrame", frame)
	}

	// Toast config from env
	if visible := env.GetDuration("TOAST_VISIBLE", 0); visible > 0 {
		k.Set("toast.visible", visible)
	}
	if fade := env.GetDuration("TOAST_FADE", 0); fade > 0 {
		k.Set("toast.fade", fade)
	}

	// Logging config from env
	if path := env.GetString("LOGGER_FILE_PATH", ""); path != "" {
		k.Set("logging.file_path", path)
	}
	if encoding := env.GetString("LOGGER_ENCODING", ""); encoding != "" {
		k.Set("logging.encoding", encoding)
	}
	if level := env.GetString("LOGGER_LEVEL", ""); level != "" {
		k.Set("logging.level", level)
	}

	// Tracing config from env
	if endpoint := env.GetString("OTEL_EXPORTER_OTLP_TRACES_ENDPOINT", ""); endpoint != "" {
		k.Set("tracing.enabled", true)
		k.Set("tracing.endpoint", endpoint)
	}
	if environment := env.GetString("ENVIRONMENT", ""); environment != "" {
		k.Set("tracing.environment", environment)
	}

	if dir := env.GetString("CHATLOBBY_STORAGE_DIR", ""); dir != "" {
		k.Set("storage.dir", dir)
	}
}

// setDefault only sets the value if the key doesn't already exist
func setDefault(k *koanf.Koanf, key string, value interface{}) {
	if !k.Exists(key) {
		k.Set(key, value)
	}
}
