package logger

import (
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLogger_InvalidLevel(t *testing.T) {
	_, err := NewLogger(LoggerConfig{Level: "chatty"})
	if err == nil {
		t.Fatal("expected error for invalid level")
	}
}

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"info", logrus.InfoLevel},
		{"debug", logrus.DebugLevel},
		{"trace", logrus.TraceLevel},
		{"error", logrus.ErrorLevel},
	}
	for _, tt := range tests {
		log, err := NewLogger(LoggerConfig{Level: tt.level, Console: true})
		if err != nil {
			t.Fatalf("level %s: %v", tt.level, err)
		}
		if log.GetLevel() != tt.want {
			t.Errorf("level %s parsed as %v", tt.level, log.GetLevel())
		}
	}
}

func TestNewLogger_CreatesLogDirectory(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "logs", "audit.log")

	log, err := NewLogger(LoggerConfig{
		Level:    "info",
		FilePath: logPath,
		MaxSize:  1,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	log.Info("probe")
}

func TestEntryHelpers(t *testing.T) {
	log := logrus.New()

	entry := WithFile(log, "a.jpg")
	if entry.Data["file"] != "a.jpg" {
		t.Errorf("WithFile field = %v", entry.Data["file"])
	}

	entry = WithYear(log, 2020)
	if entry.Data["year"] != 2020 {
		t.Errorf("WithYear field = %v", entry.Data["year"])
	}
}
