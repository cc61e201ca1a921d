// Package obslog builds the process logger.
package obslog

import (
    "os"
    "strings"

    "go.uber.org/zap"
    "go.uber.org/zap/zapcore"
)

// New returns a logger writing to stdout. format is "json" or "console";
// anything else falls back to console.
func New(level, format string) *zap.Logger {
    var enc zapcore.Encoder
    switch strings.ToLower(strings.TrimSpace(format)) {
    case "json":
        enc = zapcore.NewJSONEncoder(jsonEncoderConfig())
    default:
        enc = zapcore.NewConsoleEncoder(consoleEncoderConfig())
    }
    core := zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), ParseLevel(level))
    return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// ParseLevel maps a level name to a zap level, defaulting to info.
func ParseLevel(s string) zapcore.Level {
    switch strings.ToLower(strings.TrimSpace(s)) {
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

func consoleEncoderConfig() zapcore.EncoderConfig {
    cfg := zap.NewProductionEncoderConfig()
    cfg.EncodeTime = zapcore.ISO8601TimeEncoder
    cfg.EncodeLevel = zapcore.CapitalLevelEncoder
    return cfg
}

func jsonEncoderConfig() zapcore.EncoderConfig {
    cfg := zap.NewProductionEncoderConfig()
    cfg.EncodeTime = zapcore.ISO8601TimeEncoder
    cfg.EncodeLevel = zapcore.LowercaseLevelEncoder
    return cfg
}
