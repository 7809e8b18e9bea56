package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func reset() {
	SetVerbose(false)
	_ = Configure("info", FormatJSON)
	SetOutput(os.Stderr)
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var entries []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		entries = append(entries, entry)
	}
	return entries
}

func TestSetVerbose(t *testing.T) {
	defer reset()

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false initially")
	}

	SetVerbose(true)
	if !IsVerbose() {
		t.Error("expected verbose to be true after SetVerbose(true)")
	}

	SetVerbose(false)
	if IsVerbose() {
		t.Error("expected verbose to be false after SetVerbose(false)")
	}
}

func TestDebug_WhenVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Debug("test message %s", "arg")

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0]["msg"] != "test message arg" {
		t.Errorf("unexpected message: %v", entries[0]["msg"])
	}
	if entries[0]["level"] != "debug" {
		t.Errorf("unexpected level: %v", entries[0]["level"])
	}
}

func TestDebug_WhenNotVerbose(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(false)

	Debug("test message")

	if buf.Len() > 0 {
		t.Error("expected no output when verbose is disabled")
	}
}

func TestInfoAndWarn_AlwaysLogged(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	Info("server listening on %s", ":3001")
	Warn("credentials missing")
	Error("boom")

	entries := decodeLines(t, &buf)
	if len(entries) != 3 {
		t.Fatalf("expected three entries, got %d", len(entries))
	}
	if entries[0]["msg"] != "server listening on :3001" || entries[1]["level"] != "warn" || entries[2]["level"] != "error" {
		t.Errorf("unexpected entries: %v", entries)
	}
}

func TestSection(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)
	SetVerbose(true)

	Section("Resolve")

	if !strings.Contains(buf.String(), "=== Resolve ===") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestConfigure(t *testing.T) {
	defer reset()

	if err := Configure("warn", FormatConsole); err != nil {
		t.Fatalf("Configure: %v", err)
	}
	var buf bytes.Buffer
	SetOutput(&buf)

	Info("hidden")
	Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Error("info should be filtered at warn level")
	}
	if !strings.Contains(out, "WARN") || !strings.Contains(out, "shown") {
		t.Errorf("expected console warn line, got %q", out)
	}
}

func TestConfigure_Invalid(t *testing.T) {
	defer reset()

	if err := Configure("loud", FormatJSON); err == nil {
		t.Error("expected error for unknown level")
	}
	if err := Configure("info", Format("xml")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestVerboseOverridesConfiguredLevel(t *testing.T) {
	defer reset()

	_ = Configure("error", FormatJSON)
	var buf bytes.Buffer
	SetOutput(&buf)

	SetVerbose(true)
	Debug("visible")
	SetVerbose(false)
	Warn("filtered")

	out := buf.String()
	if !strings.Contains(out, "visible") || strings.Contains(out, "filtered") {
		t.Errorf("unexpected output: %q", out)
	}
}

func TestWith_StructuredFields(t *testing.T) {
	defer reset()

	var buf bytes.Buffer
	SetOutput(&buf)

	With(zap.String("surface", "sheets")).Info("forwarded")

	entries := decodeLines(t, &buf)
	if len(entries) != 1 || entries[0]["surface"] != "sheets" {
		t.Errorf("unexpected entries: %v", entries)
	}
}
