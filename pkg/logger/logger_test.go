package logger

import (
	"testing"

	"survey_backend/internal/config"

	"go.uber.org/zap"
)

func TestApplyConfigSwitchesLevel(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	ApplyConfig(cfg)
	if Level() != zap.DebugLevel {
		t.Fatalf("level = %v, want debug", Level())
	}

	cfg.Server.Mode = "release"
	ApplyConfig(cfg)
	if Level() != zap.InfoLevel {
		t.Fatalf("level = %v, want info", Level())
	}
}
