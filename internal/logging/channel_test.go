package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"
)

func TestChannelWithContextMergesAcrossCalls(t *testing.T) {
	buffer := &bytes.Buffer{}
	driver := NewConsoleDriver(false)
	driver.SetWriter(buffer)

	base := &channel{name: "test", driver: driver, level: DebugLevel}
	withBase := base.WithContext(map[string]interface{}{"component": "schema-manager"})

	withBase.Info("table created", map[string]interface{}{"table": "widgets"})

	output := buffer.String()
	if !strings.Contains(output, "component") {
		t.Errorf("expected base context to carry through, got: %s", output)
	}
	if !strings.Contains(output, "table") {
		t.Errorf("expected call-site context to merge in, got: %s", output)
	}
}

func TestChannelWithChannelRenamesButKeepsDriverAndContext(t *testing.T) {
	buffer := &bytes.Buffer{}
	driver := NewConsoleDriver(false)
	driver.SetWriter(buffer)

	base := &channel{name: "original", driver: driver, level: InfoLevel, context: map[string]interface{}{"k": "v"}}
	renamed := base.WithChannel("renamed")

	rc, ok := renamed.(*channel)
	if !ok {
		t.Fatalf("expected *channel, got %T", renamed)
	}
	if rc.name != "renamed" {
		t.Errorf("expected name 'renamed', got %q", rc.name)
	}
	if rc.context["k"] != "v" {
		t.Errorf("expected context to carry over, got %v", rc.context)
	}
}

func TestChannelLogContextBelowLevelIsSkipped(t *testing.T) {
	buffer := &bytes.Buffer{}
	driver := NewConsoleDriver(false)
	driver.SetWriter(buffer)

	c := &channel{name: "test", driver: driver, level: ErrorLevel}
	c.InfoContext(context.Background(), "should not appear")

	if buffer.Len() != 0 {
		t.Errorf("expected no output below the channel's minimum level, got: %s", buffer.String())
	}
}

func TestChannelMergeContextWithOperationContextExtractsKnownKeys(t *testing.T) {
	c := &channel{name: "test", context: map[string]interface{}{"static": "value"}}

	ctx := context.WithValue(context.Background(), "connection_id", "conn-1")
	ctx = context.WithValue(ctx, "query_id", "query-1")

	merged := c.mergeContextWithOperationContext(ctx)
	if merged["static"] != "value" {
		t.Errorf("expected static channel context to survive, got %v", merged)
	}
	if merged["connection_id"] != "conn-1" {
		t.Errorf("expected connection_id to be extracted, got %v", merged)
	}
	if merged["query_id"] != "query-1" {
		t.Errorf("expected query_id to be extracted, got %v", merged)
	}
	if _, present := merged["schema_name"]; present {
		t.Error("unset context keys must not appear in the merged map")
	}
}

func TestChannelAllSeverityHelpersRespectLevel(t *testing.T) {
	buffer := &bytes.Buffer{}
	driver := NewConsoleDriver(false)
	driver.SetWriter(buffer)

	c := &channel{name: "test", driver: driver, level: DebugLevel}
	c.Debug("debug-marker")
	c.Warn("warn-marker")
	c.Error("error-marker")
	c.Fatal("fatal-marker")

	output := buffer.String()
	for _, want := range []string{"debug-marker", "warn-marker", "error-marker", "fatal-marker"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got: %s", want, output)
		}
	}
}
