package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestNewLevels(t *testing.T) {
	quiet, err := New(false)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if quiet.Desugar().Core().Enabled(zap.InfoLevel) {
		t.Fatal("info must be disabled without verbose")
	}
	verbose, err := New(true)
	if err != nil {
		t.Fatalf("new verbose: %v", err)
	}
	if !verbose.Desugar().Core().Enabled(zap.DebugLevel) {
		t.Fatal("debug must be enabled with verbose")
	}
}

func TestSetIgnoresNil(t *testing.T) {
	prev := L
	defer Set(prev)
	l := zap.NewExample().Sugar()
	Set(l)
	Set(nil)
	if L != l {
		t.Fatal("nil must not replace the logger")
	}
}
