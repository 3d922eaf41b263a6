package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestManagerChannelFallsBackToNullLoggerWithoutAnyChannels(t *testing.T) {
	manager := NewManager()

	logger := manager.Channel("anything")
	if logger == nil {
		t.Fatal("expected a null logger, got nil")
	}
	// Must not panic even though nothing is wired to receive the entry.
	logger.Info("discarded")
}

func TestNewNullLoggerDiscardsEverythingAndChainsItself(t *testing.T) {
	logger := NewNullLogger()
	logger.Info("discarded")
	logger.WarnContext(context.Background(), "also discarded")

	if logger.WithContext(map[string]interface{}{"k": "v"}) != logger {
		t.Error("WithContext on a null logger should return itself")
	}
	if logger.WithChannel("other") != logger {
		t.Error("WithChannel on a null logger should return itself")
	}
}

type brokenCloseDriver struct{ err error }

func (b *brokenCloseDriver) Write(ctx context.Context, entry LogEntry) error { return nil }
func (b *brokenCloseDriver) Close() error                                   { return b.err }

func TestManagerCloseAggregatesDriverErrors(t *testing.T) {
	manager := NewManager()
	manager.AddChannel("ok", NewConsoleDriver(false), InfoLevel)
	manager.AddChannel("broken", &brokenCloseDriver{err: errors.New("disk full")}, InfoLevel)

	err := manager.Close()
	if err == nil {
		t.Fatal("expected Close() to surface the broken channel's error")
	}
	if !strings.Contains(err.Error(), "broken") || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("expected error to name the channel and cause, got: %v", err)
	}
}

func TestManagerDefaultChannelSwitches(t *testing.T) {
	buf := &bytes.Buffer{}
	d := NewConsoleDriver(false)
	d.SetWriter(buf)

	manager := NewManager()
	manager.AddChannel("primary", d, InfoLevel)
	manager.SetDefaultChannel("primary")

	manager.Default().Info("via default")
	if !strings.Contains(buf.String(), "via default") {
		t.Errorf("expected default channel to route to 'primary', got: %s", buf.String())
	}
}
