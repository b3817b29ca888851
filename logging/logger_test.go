package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{JSON: true})
	log.Warn().Str("date", "2024-01-01").Msg("skipping day")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if entry["level"] != "warn" || entry["date"] != "2024-01-01" || entry["message"] != "skipping day" {
		t.Errorf("entry = %v", entry)
	}
}

func TestNew_DebugOnlyWhenVerbose(t *testing.T) {
	var buf bytes.Buffer
	quiet := New(&buf, Options{JSON: true})
	quiet.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Errorf("debug written without verbose: %s", buf.String())
	}

	verbose := New(&buf, Options{JSON: true, Verbose: true})
	verbose.Debug().Msg("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("debug missing with verbose: %s", buf.String())
	}
}

func TestNew_ConsoleNoColorForBuffers(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{})
	log.Info().Msg("hello")
	out := buf.String()
	if !strings.Contains(out, "hello") {
		t.Errorf("console output = %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Errorf("console output to a buffer should not be colored: %q", out)
	}
}
