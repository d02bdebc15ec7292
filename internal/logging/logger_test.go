package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected Level
	}{
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"warn", LevelWarn},
		{"error", LevelError},
		{"unknown", LevelInfo}, // default
		{"", LevelInfo},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseLevel(tt.input)
			if result != tt.expected {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestLevelString(t *testing.T) {
	tests := []struct {
		level    Level
		expected string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			result := tt.level.String()
			if result != tt.expected {
				t.Errorf("Level.String() = %q, want %q", result, tt.expected)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
	}{
		{"json", FormatJSON},
		{"text", FormatText},
		{"unknown", FormatText}, // default
		{"", FormatText},        // default
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			result := ParseFormat(tt.input)
			if result != tt.expected {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, result, tt.expected)
			}
		})
	}
}

func newTestLogger(buf *bytes.Buffer, level Level, format Format) *logger {
	return &logger{
		level:  level,
		format: format,
		output: buf,
		fields: make(map[string]interface{}),
	}
}

func TestLoggerJSON(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelDebug, FormatJSON)

	l.Info("reclaim cycle finished", "groups_reclaimed", 3, "duration_ms", 2)

	output := buf.String()
	if output == "" {
		t.Fatal("expected output, got empty string")
	}

	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(output), &entry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}

	if entry["level"] != "info" {
		t.Errorf("expected level=info, got %v", entry["level"])
	}
	if entry["msg"] != "reclaim cycle finished" {
		t.Errorf("expected msg='reclaim cycle finished', got %v", entry["msg"])
	}
	if entry["groups_reclaimed"] != float64(3) { // JSON numbers are float64
		t.Errorf("expected groups_reclaimed=3, got %v", entry["groups_reclaimed"])
	}
	if entry["duration_ms"] != float64(2) {
		t.Errorf("expected duration_ms=2, got %v", entry["duration_ms"])
	}
}

func TestLoggerText(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelDebug, FormatText)

	l.Info("finalize failed", "csn", 118)

	output := buf.String()
	if !strings.Contains(output, "[info]") {
		t.Errorf("expected [info] in output, got: %s", output)
	}
	if !strings.Contains(output, "finalize failed") {
		t.Errorf("expected 'finalize failed' in output, got: %s", output)
	}
	if !strings.Contains(output, "csn=118") {
		t.Errorf("expected 'csn=118' in output, got: %s", output)
	}
}

func TestLoggerLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelWarn, FormatText)

	l.Debug("placeholder walked during merge pass")
	l.Info("reclaim cycle finished")
	l.Warn("reserve failed")
	l.Error("finalize encode error")

	output := buf.String()
	if strings.Contains(output, "placeholder walked") {
		t.Error("debug message should be filtered")
	}
	if strings.Contains(output, "reclaim cycle finished") {
		t.Error("info message should be filtered")
	}
	if !strings.Contains(output, "reserve failed") {
		t.Error("warn message should be present")
	}
	if !strings.Contains(output, "finalize encode error") {
		t.Error("error message should be present")
	}
}

func TestLoggerWithRunID(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelDebug, FormatJSON)

	runLogger := l.WithRunID("688888c0-0001-a1b2c3d4")
	runLogger.Info("insert phase starting")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}

	if entry["run_id"] != "688888c0-0001-a1b2c3d4" {
		t.Errorf("expected run_id=688888c0-0001-a1b2c3d4, got %v", entry["run_id"])
	}
}

func TestLoggerWithComponent(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelDebug, FormatJSON)

	gcLog := l.WithComponent(ComponentGC)
	gcLog.Info("reclaim cycle finished", FieldGroupsReclaimed, 2)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}

	if entry[FieldComponent] != string(ComponentGC) {
		t.Errorf("expected component=%s, got %v", ComponentGC, entry[FieldComponent])
	}
	if entry[FieldGroupsReclaimed] != float64(2) {
		t.Errorf("expected groups_reclaimed=2, got %v", entry[FieldGroupsReclaimed])
	}
}

func TestLoggerWithComponentDoesNotLeakBetweenComponents(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelDebug, FormatJSON)

	benchLog := l.WithComponent(ComponentBench)

	buf.Reset()
	benchLog.Info("insert phase starting")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if entry[FieldComponent] != string(ComponentBench) {
		t.Errorf("expected component=%s, got %v", ComponentBench, entry[FieldComponent])
	}

	buf.Reset()
	l.Info("untagged message")

	var parentEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &parentEntry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if _, ok := parentEntry[FieldComponent]; ok {
		t.Error("parent logger should not have picked up the child's component field")
	}
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelDebug, FormatJSON)

	fieldLogger := l.WithFields("component", "reclaimer")
	fieldLogger.Info("reclaim cycle finished", "groups_reclaimed", 1)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}

	if entry["component"] != "reclaimer" {
		t.Errorf("expected component=reclaimer, got %v", entry["component"])
	}
	if entry["groups_reclaimed"] != float64(1) {
		t.Errorf("expected groups_reclaimed=1, got %v", entry["groups_reclaimed"])
	}
}

func TestLoggerCloneIsolation(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelDebug, FormatJSON)

	child := l.WithFields("component", "insert-loop")

	buf.Reset()
	l.Info("parent message")

	var parentEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &parentEntry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if _, ok := parentEntry["component"]; ok {
		t.Error("parent logger should not have child's fields")
	}

	buf.Reset()
	child.Info("child message")

	var childEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &childEntry); err != nil {
		t.Fatalf("failed to parse JSON output: %v", err)
	}
	if childEntry["component"] != "insert-loop" {
		t.Errorf("child logger should have its fields, got %v", childEntry["component"])
	}
}

func TestNewLogger(t *testing.T) {
	cfg := Config{
		Level:  "debug",
		Format: "json",
		Output: "stdout",
	}

	l := New(cfg)
	if l == nil {
		t.Fatal("New returned nil")
	}
}

func TestNewDefault(t *testing.T) {
	l := NewDefault()
	if l == nil {
		t.Fatal("NewDefault returned nil")
	}
}

func TestNopLogger(t *testing.T) {
	l := NewNop()
	if l == nil {
		t.Fatal("NewNop returned nil")
	}

	// These should not panic
	l.Debug("test")
	l.Info("test")
	l.Warn("test")
	l.Error("test")

	if l2 := l.WithRunID("run-1"); l2 == nil {
		t.Error("WithRunID returned nil")
	}
	if l3 := l.WithFields("component", "gc"); l3 == nil {
		t.Error("WithFields returned nil")
	}
	if l4 := l.WithComponent(ComponentGC); l4 == nil {
		t.Error("WithComponent returned nil")
	}
}

func TestLoggerAllLevels(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, LevelDebug, FormatJSON)

	tests := []struct {
		logFunc func(string, ...interface{})
		level   string
	}{
		{l.Debug, "debug"},
		{l.Info, "info"},
		{l.Warn, "warn"},
		{l.Error, "error"},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf.Reset()
			tt.logFunc("test message")

			var entry map[string]interface{}
			if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
				t.Fatalf("failed to parse JSON output: %v", err)
			}

			if entry["level"] != tt.level {
				t.Errorf("expected level=%s, got %v", tt.level, entry["level"])
			}
		})
	}
}
