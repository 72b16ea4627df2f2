package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/JaimeStill/facility-management/pkg/logging"
)

func TestNewWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	cfg := &logging.Config{Level: logging.LevelInfo, Format: logging.FormatJSON, Service: "facilities"}

	logger := logging.NewWriter(cfg, &buf)
	logger.Debug("hidden")
	logger.Info("visible", "key", "value")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d log lines, want 1: %q", len(lines), buf.String())
	}

	var record map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &record); err != nil {
		t.Fatalf("log line is not JSON: %v", err)
	}
	if record["msg"] != "visible" || record["service"] != "facilities" || record["key"] != "value" {
		t.Errorf("record = %v", record)
	}
}

func TestNewWriter_TextDebug(t *testing.T) {
	var buf bytes.Buffer
	cfg := &logging.Config{Level: logging.LevelDebug, Format: logging.FormatText}

	logging.NewWriter(cfg, &buf).Debug("details")

	if !strings.Contains(buf.String(), "msg=details") {
		t.Errorf("output = %q, want text record", buf.String())
	}
}

func TestConfig_Finalize(t *testing.T) {
	os.Setenv("TEST_LOG_LEVEL", "warn")
	defer os.Unsetenv("TEST_LOG_LEVEL")

	cfg := &logging.Config{}
	if err := cfg.Finalize(&logging.Env{Level: "TEST_LOG_LEVEL", Format: "TEST_LOG_FORMAT"}); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.Level != logging.LevelWarn {
		t.Errorf("Level = %q, want %q", cfg.Level, logging.LevelWarn)
	}
	if cfg.Format != logging.FormatText {
		t.Errorf("Format = %q, want %q", cfg.Format, logging.FormatText)
	}
	if cfg.Service != "facility-management" {
		t.Errorf("Service = %q, want default", cfg.Service)
	}
}

func TestConfig_Finalize_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cfg  logging.Config
	}{
		{"level", logging.Config{Level: "verbose"}},
		{"format", logging.Config{Format: "xml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Finalize(nil); err == nil {
				t.Error("Finalize() should return error")
			}
		})
	}
}
