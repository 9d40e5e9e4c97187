package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewNamed creates a logger for env. "development" gets the colored console
// encoder on stderr, anything else the production JSON encoder. A non-empty
// level overrides the environment's default level.
func NewNamed(env, name, level string) (*zap.Logger, error) {
	var cfg zap.Config
	if env == "development" {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = true
	} else {
		cfg = zap.NewProductionConfig()
	}

	if level != "" {
		lvl, err := zap.ParseAtomicLevel(level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
		cfg.Level = lvl
	}

	log, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return log.Named(name), nil
}

// Route returns the fields that locate a route record in log output.
func Route(slug, origin, destination string) []zap.Field {
	return []zap.Field{
		zap.String("slug", slug),
		zap.String("origin", origin),
		zap.String("destination", destination),
	}
}
