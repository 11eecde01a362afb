package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestSetup(t *testing.T) {
	defer Log.SetOutput(Log.Out)
	defer Log.SetLevel(Log.GetLevel())

	var buf bytes.Buffer
	if err := Setup("debug", &buf); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if Log.GetLevel() != logrus.DebugLevel {
		t.Errorf("Expected debug level, got %s", Log.GetLevel())
	}

	Component("caster").Debug("cast")
	if out := buf.String(); !strings.Contains(out, "component=caster") {
		t.Errorf("Expected component field in output, got %q", out)
	}

	if err := Setup("loud", nil); err == nil {
		t.Error("Expected an error for an unknown level")
	}
}
