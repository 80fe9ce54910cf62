package logger

import (
	"testing"

	"github.com/SketchShifter/warbler_backend/internal/config"

	"github.com/sirupsen/logrus"
)

func TestInit(t *testing.T) {
	t.Cleanup(func() {
		Init(config.LogConfig{Level: "info", Format: "text"})
	})

	Init(config.LogConfig{Level: "debug", Format: "json"})
	if logrus.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", logrus.GetLevel())
	}
	if _, ok := logrus.StandardLogger().Formatter.(*logrus.JSONFormatter); !ok {
		t.Error("formatter should be JSON")
	}

	Init(config.LogConfig{Level: "verbose", Format: "text"})
	if logrus.GetLevel() != logrus.InfoLevel {
		t.Errorf("unknown level should fall back to info, got %v", logrus.GetLevel())
	}
	if _, ok := logrus.StandardLogger().Formatter.(*logrus.TextFormatter); !ok {
		t.Error("formatter should be text")
	}
}
