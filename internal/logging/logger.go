package logging

import (
	"fmt"

	"github.com/mikey/llm-scam-honeypot/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// serviceName tags every production log line so honeypot output can be
// filtered out of a shared log stream.
const serviceName = "llm-scam-honeypot"

// InitLogger builds the process logger from the logging.* config section.
// An unknown level falls back to info rather than failing startup.
func InitLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.GetString("logging.level"))
	if err != nil {
		level = zapcore.InfoLevel
	}

	logConfig := buildConfig(cfg.GetString("logging.format") == "json")
	logConfig.Level = zap.NewAtomicLevelAt(level)

	logger, err := logConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return logger, nil
}

// InitConsoleLogger builds a logger for the CLI tools, where verbosity comes
// from flags instead of the config file.
func InitConsoleLogger(verbose bool, jsonFormat bool) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	logConfig := buildConfig(jsonFormat)
	logConfig.Level = zap.NewAtomicLevelAt(level)

	logger, err := logConfig.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return logger, nil
}

func buildConfig(jsonFormat bool) zap.Config {
	if jsonFormat {
		logConfig := zap.NewProductionConfig()
		logConfig.InitialFields = map[string]interface{}{"service": serviceName}
		return logConfig
	}

	logConfig := zap.NewDevelopmentConfig()
	logConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return logConfig
}
