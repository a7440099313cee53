// Package logging builds the zap.Logger used throughout the engine's
// command-line tools: a console logger teed with an optional file logger.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level selects how verbose the logger is.
type Level string

const (
	LevelNone  Level = "none"
	LevelDebug Level = "debug"
	LevelInfo  Level = "normal"
)

// Config controls where and how verbosely the engine logs.
type Config struct {
	// Level filters console output. LevelNone disables console logging
	// entirely (file logging, if Destination is set, is unaffected).
	Level Level
	// Destination is an optional file path to additionally log to.
	Destination string
}

// New builds a *zap.Logger from cfg: a colorless console encoder writing
// to stderr at Level, teed with a file core when Destination is set.
func New(cfg Config) (*zap.Logger, error) {
	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	consoleEncoder := zapcore.NewConsoleEncoder(ec)

	var consoleCore zapcore.Core
	switch cfg.Level {
	case LevelDebug:
		consoleCore = zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), zap.DebugLevel)
	case LevelInfo:
		consoleCore = zapcore.NewCore(consoleEncoder, zapcore.Lock(os.Stderr), zap.InfoLevel)
	default:
		consoleCore = zapcore.NewNopCore()
	}

	fileCore := zapcore.NewNopCore()
	if cfg.Destination != "" {
		f, err := os.OpenFile(cfg.Destination, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, err
		}
		fileEncoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
		fileCore = zapcore.NewCore(fileEncoder, zapcore.Lock(f), zap.DebugLevel)
	}

	return zap.New(zapcore.NewTee(consoleCore, fileCore)).Named("fd"), nil
}

// Nop returns a logger that discards everything, used as a default in
// tests and library entry points that don't wire a real one.
func Nop() *zap.Logger {
	return zap.NewNop()
}
