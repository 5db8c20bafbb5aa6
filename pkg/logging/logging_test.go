package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func restoreDefaults(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		Configure(Config{Level: INFO, Format: Text})
		SetOutput(os.Stderr)
	})
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", DEBUG},
		{"DEBUG", DEBUG},
		{"info", INFO},
		{"warn", WARN},
		{"warning", WARN},
		{"error", ERROR},
		{" Error ", ERROR},
		{"", INFO},
		{"nonsense", INFO},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q): expected %v, got %v", tt.in, tt.want, got)
		}
	}
}

func TestLevelFiltering(t *testing.T) {
	restoreDefaults(t)
	color.NoColor = true

	var buf bytes.Buffer
	SetOutput(&buf)
	Configure(Config{Level: WARN, Format: Text})

	Debug("too quiet")
	Info("still too quiet")
	Warn("heard")
	Error("also heard", nil)

	out := buf.String()
	if strings.Contains(out, "too quiet") {
		t.Errorf("Expected DEBUG and INFO suppressed, got %q", out)
	}
	if !strings.Contains(out, "heard") {
		t.Errorf("Expected WARN line, got %q", out)
	}
	if !strings.Contains(out, "ERROR") {
		t.Errorf("Expected ERROR tag, got %q", out)
	}
}

func TestTextFormatIncludesData(t *testing.T) {
	restoreDefaults(t)
	color.NoColor = true

	var buf bytes.Buffer
	SetOutput(&buf)
	Configure(Config{Level: INFO, Format: Text})

	Info("scanning namespace", map[string]interface{}{"namespace": "payments"})

	out := buf.String()
	if !strings.Contains(out, "scanning namespace") || !strings.Contains(out, "payments") {
		t.Errorf("Expected message and data in output, got %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	restoreDefaults(t)

	var buf bytes.Buffer
	SetOutput(&buf)
	Configure(Config{Level: INFO, Format: JSON})

	Info("estimate complete", map[string]interface{}{"total": 95.59})

	var entry struct {
		Level   string                 `json:"level"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("Expected valid JSON log line, got %q: %v", buf.String(), err)
	}
	if entry.Level != "INFO" {
		t.Errorf("Expected INFO level, got %s", entry.Level)
	}
	if entry.Message != "estimate complete" {
		t.Errorf("Expected message, got %s", entry.Message)
	}
	if entry.Data["total"] != 95.59 {
		t.Errorf("Expected data total 95.59, got %v", entry.Data["total"])
	}
}

func TestErrorAppendsCause(t *testing.T) {
	restoreDefaults(t)
	color.NoColor = true

	var buf bytes.Buffer
	SetOutput(&buf)
	Configure(Config{Level: ERROR, Format: Text})

	Error("failed to save snapshot", os.ErrPermission)

	if !strings.Contains(buf.String(), "permission denied") {
		t.Errorf("Expected wrapped cause in output, got %q", buf.String())
	}
}
