package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLogger(t *testing.T) {
	t.Run("debug mode returns development logger", func(t *testing.T) {
		logger, err := NewLogger(true)
		if err != nil {
			t.Fatalf("NewLogger(true) error: %v", err)
		}
		if logger == nil {
			t.Fatal("NewLogger(true) returned nil logger")
		}
		if !logger.Core().Enabled(zapcore.DebugLevel) {
			t.Error("development logger should log at debug level")
		}
		_ = logger.Sync()
	})

	t.Run("production mode returns production logger", func(t *testing.T) {
		logger, err := NewLogger(false)
		if err != nil {
			t.Fatalf("NewLogger(false) error: %v", err)
		}
		if logger == nil {
			t.Fatal("NewLogger(false) returned nil logger")
		}
		if logger.Core().Enabled(zapcore.DebugLevel) {
			t.Error("production logger should not log at debug level")
		}
		_ = logger.Sync()
	})
}

func TestNewConsoleLogger(t *testing.T) {
	logger, err := NewConsoleLogger(zapcore.WarnLevel)
	if err != nil {
		t.Fatalf("NewConsoleLogger error: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Error("console logger at warn should not log info")
	}
	_ = logger.Sync()
}
