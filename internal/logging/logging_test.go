package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	l, err := New("debug", false)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if !l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug enabled")
	}

	l, err = New("", true)
	if err != nil {
		t.Fatalf("new default: %v", err)
	}
	if l.Core().Enabled(zapcore.DebugLevel) {
		t.Error("expected debug disabled at default info level")
	}
}

func TestNew_BadLevel(t *testing.T) {
	if _, err := New("loud", false); err == nil {
		t.Error("expected error for unknown level")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("expected non-nil logger")
	}
}
