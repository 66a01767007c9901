package logger

import (
	"testing"

	"quiz_backend/internal/config"

	"go.uber.org/zap"
)

func TestApplyConfigSwitchesLevel(t *testing.T) {
	ApplyConfig(&config.Config{Server: config.ServerConfig{Mode: "debug"}})
	if Level() != zap.DebugLevel {
		t.Fatalf("expected debug level, got %v", Level())
	}

	ApplyConfig(&config.Config{Server: config.ServerConfig{Mode: "release"}})
	if Level() != zap.InfoLevel {
		t.Fatalf("expected info level, got %v", Level())
	}
}
