package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// InitLogger 构建全局日志器，format 为 json 时使用生产环境编码
func InitLogger(logLevel, format string) {
	cfg := zap.NewDevelopmentConfig()
	if format == "json" {
		cfg = zap.NewProductionConfig()
	}

	cfg.Level.SetLevel(parseLevel(logLevel))

	lgr, err := cfg.Build()
	if err != nil {
		panic(fmt.Errorf("构建日志器失败: %w", err))
	}

	zap.ReplaceGlobals(lgr)
}

func parseLevel(logLevel string) zapcore.Level {
	switch logLevel {
	case "debug":
		return zap.DebugLevel
	case "info":
		return zap.InfoLevel
	case "warn":
		return zap.WarnLevel
	case "error":
		return zap.ErrorLevel
	default:
		return zap.InfoLevel
	}
}
