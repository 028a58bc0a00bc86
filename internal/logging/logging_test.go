package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestSetup_TextOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	Warn("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "test message") {
		t.Errorf("Expected 'test message' in output, got: %s", output)
	}
	if !strings.Contains(output, "key=value") {
		t.Errorf("Expected text attributes in output, got: %s", output)
	}
}

func TestSetup_JSONOutput(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, true, &buf)

	Error("test message", "key", "value")

	output := buf.String()
	if !strings.Contains(output, "{") {
		t.Errorf("Expected JSON output, got: %s", output)
	}
	if !strings.Contains(output, `"key":"value"`) {
		t.Errorf("Expected JSON attributes, got: %s", output)
	}
}

func TestSetup_VerboseMode(t *testing.T) {
	var buf bytes.Buffer
	Setup(true, false, &buf)

	if !Verbose {
		t.Error("Verbose flag should be true after Setup(true, ...)")
	}

	Debug("debug message")
	Info("info message")

	output := buf.String()
	if !strings.Contains(output, "debug message") {
		t.Errorf("Debug message should appear in verbose mode, got: %s", output)
	}
	if !strings.Contains(output, "info message") {
		t.Errorf("Info message should appear in verbose mode, got: %s", output)
	}
}

func TestSetup_NonVerboseMode(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	if Verbose {
		t.Error("Verbose flag should be false after Setup(false, ...)")
	}

	Debug("debug message")
	Info("info message")

	output := buf.String()
	if strings.Contains(output, "debug message") || strings.Contains(output, "info message") {
		t.Errorf("Debug/Info should NOT appear in non-verbose mode, got: %s", output)
	}
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	Setup(false, false, &buf)

	logger := With("component", "scanner")
	if logger == nil {
		t.Fatal("With() returned nil")
	}

	logger.Warn("with test")

	output := buf.String()
	if !strings.Contains(output, "with test") {
		t.Errorf("Expected 'with test' in output, got: %s", output)
	}
	if !strings.Contains(output, "component=scanner") {
		t.Errorf("Expected 'component' in output, got: %s", output)
	}
}

func TestSetup_NilWriter(t *testing.T) {
	Setup(false, false, nil)

	if Logger == nil {
		t.Error("Logger should not be nil after Setup with nil writer")
	}
}

func TestUserOutput(t *testing.T) {
	var buf bytes.Buffer
	restore := RedirectUser(&buf)
	defer restore()

	UserInfo("scanning %s", "abc")
	UserSuccess("done")
	UserWarning("skipping %q", "x")
	UserError("failed")

	want := []string{"ℹ scanning abc\n", "✓ done\n", "⚠ skipping \"x\"\n", "✗ failed\n"}
	output := buf.String()
	for _, w := range want {
		if !strings.Contains(output, w) {
			t.Errorf("output missing %q, got: %s", w, output)
		}
	}
}

func TestRedirectUser_Restore(t *testing.T) {
	origOut, origErr := Stdout, Stderr

	var buf bytes.Buffer
	restore := RedirectUser(&buf)
	restore()

	if Stdout != origOut || Stderr != origErr {
		t.Error("restore should put the original writers back")
	}
}
