// Package logging builds the process-wide zap logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Config struct {
	// File receives JSON lines. Empty disables file logging.
	File  string
	Level zapcore.Level
	// Fallback receives warnings and errors when File cannot be opened and no
	// sink is given. Nil drops them.
	Fallback io.Writer
}

// New returns a logger writing JSON to cfg.File and console-encoded lines to each
// sink. A log file that cannot be opened is reported through the logger itself
// and never fails startup. The returned close function flushes and releases the file.
func New(cfg Config, sinks ...io.Writer) (*zap.Logger, func() error) {
	var cores []zapcore.Core
	level := zap.NewAtomicLevelAt(cfg.Level)

	file, fileErr := openLogFile(cfg.File)
	if file != nil {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(fileEncoderConfig()),
			zapcore.AddSync(file),
			level,
		))
	}
	for _, sink := range sinks {
		if sink == nil {
			continue
		}
		cores = append(cores, consoleCore(sink, level))
	}
	if fileErr != nil && len(cores) == 0 && cfg.Fallback != nil {
		cores = append(cores, consoleCore(cfg.Fallback, zap.NewAtomicLevelAt(max(cfg.Level, zapcore.WarnLevel))))
	}

	logger := zap.NewNop()
	if len(cores) > 0 {
		logger = zap.New(zapcore.NewTee(cores...))
	}
	if fileErr != nil {
		logger.Warn("log file unavailable", zap.String("path", cfg.File), zap.Error(fileErr))
	}
	closeFn := func() error {
		_ = logger.Sync()
		if file != nil {
			return file.Close()
		}
		return nil
	}
	return logger, closeFn
}

func openLogFile(path string) (*os.File, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o640)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}

func consoleCore(w io.Writer, level zapcore.LevelEnabler) zapcore.Core {
	return zapcore.NewCore(
		zapcore.NewConsoleEncoder(consoleEncoderConfig()),
		zapcore.AddSync(w),
		level,
	)
}

func fileEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	return cfg
}

func consoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	cfg.EncodeCaller = nil
	cfg.CallerKey = ""
	return cfg
}
