package utils

import (
	"log"

	"memoria/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Global logger instance
var Logger *zap.Logger

// InitializeLogger sets up the logging configuration. The level comes from
// the LOG_LEVEL config value, falling back to info in production and debug
// in development.
func InitializeLogger() {
	var cfg zap.Config

	if IsProduction() {
		cfg = zap.NewProductionConfig()
		cfg.Level = zap.NewAtomicLevelAt(resolveLogLevel(zapcore.InfoLevel))
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(resolveLogLevel(zapcore.DebugLevel))
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	// Create logger
	var err error
	Logger, err = cfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
}

// resolveLogLevel parses the configured level, keeping the fallback when it
// is empty or unparseable.
func resolveLogLevel(fallback zapcore.Level) zapcore.Level {
	configured := config.AppConfig.LogLevel
	if configured == "" {
		return fallback
	}
	level, err := zapcore.ParseLevel(configured)
	if err != nil {
		log.Printf("Unknown LOG_LEVEL %q, using %s", configured, fallback)
		return fallback
	}
	return level
}

// GetLogger retrieves the global logger
func GetLogger() *zap.Logger {
	if Logger == nil {
		InitializeLogger()
	}
	return Logger
}
