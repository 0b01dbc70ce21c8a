package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func decodeLines(t *testing.T, data string) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(data), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON log line %q: %v", line, err)
		}
		out = append(out, m)
	}
	return out
}

func TestLogging_BeforeInitIsNoop(t *testing.T) {
	Close()
	Info("nothing %d", 1)
	if GetWriter() == nil {
		t.Error("GetWriter() should never return nil")
	}
}

func TestInitWriter_Levels(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	defer Close()

	Info("resolving %s", "chrome")
	Debug("hidden")
	Warn("careful")
	Error("failed: %v", "boom")

	lines := decodeLines(t, buf.String())
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (debug filtered), got %d: %s", len(lines), buf.String())
	}
	if lines[0]["level"] != "info" || lines[0]["message"] != "resolving chrome" {
		t.Errorf("unexpected first line: %v", lines[0])
	}
	if lines[2]["level"] != "error" || lines[2]["message"] != "failed: boom" {
		t.Errorf("unexpected last line: %v", lines[2])
	}
}

func TestSetVerbose(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	defer Close()

	SetVerbose(true)
	Debug("visible")

	lines := decodeLines(t, buf.String())
	if len(lines) != 1 || lines[0]["level"] != "debug" {
		t.Errorf("expected one debug line, got %s", buf.String())
	}
}

func TestEntry_Fields(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	defer Close()

	entry := With("traceId", "abc").With("browser", "safari")
	entry.Info("starting")

	lines := decodeLines(t, buf.String())
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d", len(lines))
	}
	if lines[0]["traceId"] != "abc" || lines[0]["browser"] != "safari" {
		t.Errorf("fields missing: %v", lines[0])
	}
}

func TestEntry_WithDoesNotMutateParent(t *testing.T) {
	parent := With("a", 1)
	_ = parent.With("b", 2)
	if _, ok := parent.fields["b"]; ok {
		t.Error("With() modified parent entry")
	}
}

func TestGetWriter_ConsoleOutputAcceptsPlainText(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(zerolog.ConsoleWriter{Out: &buf, NoColor: true})
	defer Close()

	msg := []byte("Starting ChromeDriver 120.0 on port 9515\n")
	n, err := GetWriter().Write(msg)
	if err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if n != len(msg) {
		t.Errorf("Write() n = %d, want %d", n, len(msg))
	}
	if !strings.Contains(buf.String(), "Starting ChromeDriver 120.0 on port 9515") {
		t.Errorf("driver output missing from console log: %q", buf.String())
	}
}

func TestGetWriter_OneEventPerLine(t *testing.T) {
	var buf bytes.Buffer
	InitWriter(&buf)
	defer Close()

	w := GetWriter()
	w.Write([]byte("1700000000.1 INFO geckodriver: Listening\r\nsecond line\nthird "))

	lines := decodeLines(t, buf.String())
	if len(lines) != 2 {
		t.Fatalf("expected 2 events before the partial line completes, got %d: %s", len(lines), buf.String())
	}
	if lines[0]["message"] != "1700000000.1 INFO geckodriver: Listening" {
		t.Errorf("unexpected first message: %v", lines[0]["message"])
	}
	if lines[0]["source"] != "driver" || lines[0]["level"] != "info" {
		t.Errorf("driver event missing source/level: %v", lines[0])
	}

	w.Write([]byte("part\n\n"))
	lines = decodeLines(t, buf.String())
	if len(lines) != 3 {
		t.Fatalf("expected 3 events, blank lines skipped, got %d: %s", len(lines), buf.String())
	}
	if lines[2]["message"] != "third part" {
		t.Errorf("partial line not joined: %v", lines[2]["message"])
	}
}

func TestInit_File(t *testing.T) {
	dir := t.TempDir()
	logPath := filepath.Join(dir, "logs", "factory.log")

	if err := Init(logPath); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	Info("written to file")
	Close()

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Errorf("log file missing message: %s", data)
	}
}

func TestInit_InvalidPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	if err := Init(filepath.Join(blocker, "sub", "factory.log")); err == nil {
		Close()
		t.Error("expected error when log directory cannot be created")
	}
}
