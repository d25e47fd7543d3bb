package main

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	spindle "github.com/bangzek/spindle-rtu"
)

// newLogger logs to stderr, and to a rotated file too when one is set. The
// driver's log hooks are pointed at it.
func newLogger(cfg LogConfig) *zap.Logger {
	level := zapcore.InfoLevel
	if cfg.Debug {
		level = zapcore.DebugLevel
	}

	encCfg := zap.NewDevelopmentEncoderConfig()
	encCfg.EncodeDuration = zapcore.MillisDurationEncoder
	ws := zapcore.AddSync(os.Stderr)
	if cfg.File != "" {
		ws = zapcore.NewMultiWriteSyncer(ws, zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}))
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), ws, level)
	logger := zap.New(core)

	sugar := logger.Sugar()
	spindle.InfoLogFunc = sugar.Infof
	if cfg.Debug {
		spindle.DebugLogFunc = sugar.Debugf
	}
	return logger
}
