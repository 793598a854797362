package logger

import (
	"dark_patterns_game/internal/config"
	"testing"

	"go.uber.org/zap"
)

func TestLevelFor(t *testing.T) {
	tests := []struct {
		mode, level string
		want        string
	}{
		{"debug", "error", "debug"},
		{"release", "warn", "warn"},
		{"release", "bogus", "info"},
		{"release", "", "info"},
	}
	for _, tt := range tests {
		cfg := &config.Config{}
		cfg.Server.Mode = tt.mode
		cfg.Log.Level = tt.level
		if got := LevelFor(cfg).String(); got != tt.want {
			t.Errorf("LevelFor(%q,%q) = %s, want %s", tt.mode, tt.level, got, tt.want)
		}
	}
}

func TestSetLevel(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Mode = "release"
	cfg.Log.Level = "error"
	SetLevel(cfg)
	if CurrentLevel() != zap.ErrorLevel {
		t.Fatalf("level = %s, want error", CurrentLevel())
	}
	cfg.Log.Level = "info"
	SetLevel(cfg)
	if CurrentLevel() != zap.InfoLevel {
		t.Fatalf("level = %s, want info", CurrentLevel())
	}
}
