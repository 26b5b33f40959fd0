package settings

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// ParseLevel accepts zap level names (debug, info, warn, error). Empty means info.
func ParseLevel(s string) (zapcore.Level, error) {
	if s == "" {
		return zapcore.InfoLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return l, fmt.Errorf("log.level: %w", err)
	}
	return l, nil
}
