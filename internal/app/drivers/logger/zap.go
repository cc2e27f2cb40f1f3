package logger

import (
	"booking-service/internal/app/config"
	"booking-service/internal/pkg/constvars"
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const serviceName = "booking-service"

// NewZapLogger builds the process logger. It exits the process when the
// configured output files cannot be opened.
func NewZapLogger(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *zap.Logger {
	zapLogger, err := buildConfig(driverConfig.Logger, internalConfig.App.Env).Build()
	if err != nil {
		log.Fatalf("Error while initializing zap logger: %v", err)
	}
	return zapLogger.With(
		zap.String("service", serviceName),
		zap.String("version", internalConfig.App.Version),
	)
}

func buildConfig(cfg config.Logger, env string) zap.Config {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	production := env == constvars.AppEnvProduction
	zapCfg := zap.Config{
		Level:       zap.NewAtomicLevelAt(level),
		Development: env == constvars.AppEnvDevelopment,
		Encoding:    cfg.Encoding,
		EncoderConfig: zapcore.EncoderConfig{
			TimeKey:        "time",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller",
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.ISO8601TimeEncoder,
			EncodeDuration: zapcore.StringDurationEncoder,
			EncodeCaller:   zapcore.ShortCallerEncoder,
		},
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	if zapCfg.Encoding == "" {
		zapCfg.Encoding = "json"
		if zapCfg.Development {
			zapCfg.Encoding = "console"
		}
	}
	if production {
		zapCfg.OutputPaths = []string{cfg.OutputFileName}
		zapCfg.ErrorOutputPaths = []string{"stderr", cfg.OutputErrorFileName}
		// The access log fires on every availability poll.
		zapCfg.Sampling = &zap.SamplingConfig{Initial: 100, Thereafter: 100}
	}
	return zapCfg
}
