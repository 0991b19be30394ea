package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("invalid json log line %q: %v", buf.String(), err)
	}
	return entry
}

func TestLogger_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(Config{Level: "debug", Format: "json"}, "seqflow", &buf)

	log.WithComponent("scheduler").
		WithError(errors.New("boom")).
		Info("run failed", map[string]interface{}{"job": "wordcount"})

	entry := decode(t, &buf)
	want := map[string]string{
		"service":   "seqflow",
		"component": "scheduler",
		"error":     "boom",
		"job":       "wordcount",
		"message":   "run failed",
		"level":     "info",
	}
	for k, v := range want {
		if entry[k] != v {
			t.Errorf("%s = %v, want %q", k, entry[k], v)
		}
	}
}

func TestLogger_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(Config{Level: "warn", Format: "json"}, "seqflow", &buf)

	log.Info("hidden")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered at warn level, got %q", buf.String())
	}

	log.Warn("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn should be written, got %q", buf.String())
	}
}

func TestLogger_ConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(Config{Level: "info", Format: "console"}, "seqflow", &buf)

	log.WithFields(map[string]interface{}{"count": 3}).Info("done")
	out := buf.String()
	if !strings.Contains(out, "done") || !strings.Contains(out, "count=3") {
		t.Errorf("unexpected console output %q", out)
	}
}

func TestNop(t *testing.T) {
	// Must not panic
	Nop().WithComponent("x").Error("ignored")
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"defaults", Config{}, false},
		{"bad level", Config{Level: "loud"}, true},
		{"bad format", Config{Format: "xml"}, true},
		{"bad output", Config{Output: "file"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.cfg
			cfg.ApplyDefaults()
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
