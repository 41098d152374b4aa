package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelsRouteToWriters(t *testing.T) {
	var out, errOut bytes.Buffer
	l := NewWithWriters(&out, &errOut, false)

	l.Info("hello %s", "world")
	l.Warn("careful")
	l.Error("boom")

	if !strings.Contains(out.String(), "hello world") {
		t.Fatalf("stdout missing info line: %q", out.String())
	}
	if !strings.Contains(out.String(), "careful") {
		t.Fatalf("stdout missing warn line: %q", out.String())
	}
	if !strings.Contains(errOut.String(), "boom") {
		t.Fatalf("stderr missing error line: %q", errOut.String())
	}
}

func TestDebugGatedOnVerbose(t *testing.T) {
	var quiet, chatty bytes.Buffer

	NewWithWriters(&quiet, &quiet, false).Debug("hidden")
	NewWithWriters(&chatty, &chatty, true).Debug("shown")

	if quiet.Len() != 0 {
		t.Fatalf("debug leaked without verbose: %q", quiet.String())
	}
	if !strings.Contains(chatty.String(), "shown") {
		t.Fatalf("verbose debug missing: %q", chatty.String())
	}
}

func TestNilLoggerIsSafe(t *testing.T) {
	var l *Logger
	l.Info("ignored")
	l.Warn("ignored")
	l.Error("ignored")
	l.Debug("ignored")
}
