package log

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestSetLevelFiltersMessages(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)
	defer SetLevel(Notice)

	logger := New("test")

	SetLevel(Warning)
	logger.Info("hidden")
	logger.Warning("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message leaked at warning level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warning message missing: %q", out)
	}
	if !strings.Contains(out, "[test]") {
		t.Errorf("module tag missing: %q", out)
	}
}

func TestSetSinkKeepsLevel(t *testing.T) {
	SetLevel(Debug)
	defer SetLevel(Notice)

	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)

	New("test").Debugf("debug %s", "line")
	if !strings.Contains(buf.String(), "debug line") {
		t.Errorf("expected debug output after sink swap, got %q", buf.String())
	}
}

func TestSetLevelIgnoresUnknown(t *testing.T) {
	var buf bytes.Buffer
	SetSink(&buf)
	defer SetSink(os.Stdout)
	defer SetLevel(Notice)

	SetLevel(Error)
	SetLevel(Level(42))
	New("test").Warning("still filtered")
	if buf.Len() != 0 {
		t.Errorf("unknown level changed verbosity: %q", buf.String())
	}
}
