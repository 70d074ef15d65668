package logging

import (
	"github.com/hilthontt/chatlobby/internal/infrastructure/configs"
)

type Logger interface {
	Debug(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Debugf(template string, args ...any)

	Info(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Infof(template string, args ...any)

	Warn(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Warnf(template string, args ...any)

	Error(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Errorf(template string, args ...any)

	Fatal(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Fatalf(template string, args ...any)

	Sync() error
}

type LoggerConfig struct {
	FilePath   string
	Encoding   string
	Level      string
	Console    bool
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

func ConfigFrom(cfg configs.LoggingConfig) *LoggerConfig {
	return &LoggerConfig{
		FilePath:   cfg.FilePath,
		Encoding:   cfg.Encoding,
		Level:      cfg.Level,
		Console:    cfg.Console,
		MaxSizeMB:  cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAgeDays: cfg.MaxAgeDays,
	}
}

func NewLogger(cfg *LoggerConfig) Logger {
	return newZapLogger(cfg)
}
