package zapobs

import (
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Option is a functional option for configuring the Observer.
type Option func(*config)

type config struct {
	level    string
	format   string
	logger   *zap.Logger
	registry prometheus.Registerer
}

// WithLevel sets the minimum log level ("debug", "info", "warn", "error").
func WithLevel(level string) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithFormat selects "json" (production encoder) or "console" output.
func WithFormat(format string) Option {
	return func(c *config) {
		c.format = format
	}
}

// WithLogger uses an existing zap logger. It takes precedence over
// WithLevel and WithFormat.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithRegistry registers metrics in reg instead of a private registry.
func WithRegistry(reg prometheus.Registerer) Option {
	return func(c *config) {
		c.registry = reg
	}
}

// NewLogger builds a zap logger for the given level and format. Unknown
// levels fall back to info, unknown formats to console.
func NewLogger(level, format string) (*zap.Logger, error) {
	var cfg zap.Config
	if strings.EqualFold(format, "json") {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))
	return cfg.Build()
}

// ParseLevel maps a level name to a zapcore level, defaulting to info.
func ParseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
