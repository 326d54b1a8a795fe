package logger

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewUsesOutputAndPrefix(t *testing.T) {
	var buf bytes.Buffer
	old := Output
	Output = &buf
	defer func() { Output = old }()

	l := NewWithConfig("http", log.InfoLevel, false, false, log.TextFormatter)
	l.Debug("hidden")
	l.Info("served", "status", 200)

	got := buf.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("debug line written at info level: %q", got)
	}
	if !strings.Contains(got, "http") || !strings.Contains(got, "served") || !strings.Contains(got, "status=200") {
		t.Errorf("unexpected log output %q", got)
	}
}
