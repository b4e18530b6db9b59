package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewHonoursLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("INFO", &buf)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	logger.Debug("hidden")
	logger.WithField("component", "test").Info("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug line leaked: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "component=test") {
		t.Fatalf("missing info line: %q", out)
	}
}

func TestParseLevel(t *testing.T) {
	if lvl, err := ParseLevel(""); err != nil || lvl != DefaultLevel {
		t.Fatalf("empty level = %v, %v", lvl, err)
	}
	if lvl, err := ParseLevel(" debug "); err != nil || lvl != logrus.DebugLevel {
		t.Fatalf("debug level = %v, %v", lvl, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected error for unknown level")
	}
	if _, err := New("loud", nil); err == nil {
		t.Fatal("New should reject unknown levels")
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nothing")
	if logger.IsLevelEnabled(logrus.ErrorLevel) {
		t.Fatal("discard logger should not enable error level")
	}
}
