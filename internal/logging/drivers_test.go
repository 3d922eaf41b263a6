package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestConsoleDriverColorizeWrapsLevelInColorCodes(t *testing.T) {
	buffer := &bytes.Buffer{}
	driver := NewConsoleDriver(true)
	driver.SetWriter(buffer)

	entry := LogEntry{Level: WarnLevel, Message: "careful", Timestamp: time.Now(), Channel: "test"}
	if err := driver.Write(context.Background(), entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buffer.String()
	if !strings.Contains(output, GetLevelColor(WarnLevel)) {
		t.Errorf("expected colorized output to contain the warn color code, got: %s", output)
	}
	if !strings.Contains(output, GetColorReset()) {
		t.Errorf("expected colorized output to reset color, got: %s", output)
	}
}

func TestConsoleDriverUncolorizedOmitsEscapeCodes(t *testing.T) {
	buffer := &bytes.Buffer{}
	driver := NewConsoleDriver(false)
	driver.SetWriter(buffer)

	entry := LogEntry{Level: InfoLevel, Message: "plain", Timestamp: time.Now(), Channel: "test"}
	if err := driver.Write(context.Background(), entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(buffer.String(), "\033[") {
		t.Error("uncolorized console output must not contain ANSI escape codes")
	}
}

func TestFileDriverRotatesWhenOverMaxSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	driver, err := NewFileDriver(path, 1, 3)
	if err != nil {
		t.Fatalf("NewFileDriver() returned error: %v", err)
	}
	defer driver.Close()

	entry := LogEntry{Level: InfoLevel, Message: "trigger rotation", Timestamp: time.Now(), Channel: "test"}
	if err := driver.Write(context.Background(), entry); err != nil {
		t.Fatalf("unexpected error on first write: %v", err)
	}
	if err := driver.Write(context.Background(), entry); err != nil {
		t.Fatalf("unexpected error on second write: %v", err)
	}

	if _, err := os.Stat(path + ".1"); err != nil {
		t.Errorf("expected a rotated .1 file to exist: %v", err)
	}
}

func TestFileDriverWriteIncludesOperationContext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "app.log")

	driver, err := NewFileDriver(path, 1024*1024, 2)
	if err != nil {
		t.Fatalf("NewFileDriver() returned error: %v", err)
	}
	defer driver.Close()

	ctx := context.WithValue(context.Background(), "connection_id", "conn-42")
	entry := LogEntry{Level: InfoLevel, Message: "with context", Timestamp: time.Now(), Channel: "test"}
	if err := driver.Write(ctx, entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(content), "conn-42") {
		t.Errorf("expected connection_id to be embedded, got: %s", string(content))
	}
}

func TestJSONDriverEmbedsOperationContextUnderNamespacedKey(t *testing.T) {
	buffer := &bytes.Buffer{}
	driver := NewJSONDriver(buffer)

	ctx := context.WithValue(context.Background(), "schema_name", "public")
	entry := LogEntry{Level: ErrorLevel, Message: "failed", Timestamp: time.Now(), Channel: "test"}
	if err := driver.Write(ctx, entry); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	output := buffer.String()
	if !strings.Contains(output, "operation_context") {
		t.Errorf("expected operation_context key, got: %s", output)
	}
	if !strings.Contains(output, "public") {
		t.Errorf("expected schema name to appear, got: %s", output)
	}
}

func TestGetLevelColorAndNameFallBackForUnknownLevel(t *testing.T) {
	unknown := LogLevel(99)
	if GetLevelColor(unknown) != "" {
		t.Errorf("expected empty color for an unknown level, got %q", GetLevelColor(unknown))
	}
	if GetLevelName(unknown) != "unknown" {
		t.Errorf("expected 'unknown', got %q", GetLevelName(unknown))
	}
}
