package calendar

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sandeepkv93/taskquest/internal/permission"
)

func newTestGateway(t *testing.T, granted ...permission.Capability) (*FileGateway, string, *bytes.Buffer) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cal", "events.yaml")
	var logs bytes.Buffer
	return NewFileGateway(path, permission.NewStatic(granted...), log.New(&logs, "", 0)), path, &logs
}

func TestFileGatewayLifecycle(t *testing.T) {
	g, _, _ := newTestGateway(t, permission.Calendar)
	ctx := t.Context()
	start := time.Date(2026, 2, 9, 10, 0, 0, 0, time.UTC)

	id, ok := g.CreateEvent(ctx, "Write report", start, start.Add(time.Hour), "FREQ=DAILY;INTERVAL=1")
	if !ok || id == "" {
		t.Fatalf("expected event id, got %q ok=%v", id, ok)
	}
	if !g.RenameEvent(ctx, id, "✅ Write report") {
		t.Fatal("expected rename to succeed")
	}
	events, err := g.Events()
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(events) != 1 || events[0].Title != "✅ Write report" || events[0].RRule != "FREQ=DAILY;INTERVAL=1" {
		t.Fatalf("unexpected events: %+v", events)
	}
	if !events[0].Start.Equal(start) {
		t.Fatalf("unexpected start: %s", events[0].Start)
	}
	if !g.DeleteEvent(ctx, id) {
		t.Fatal("expected delete to succeed")
	}
	if g.RenameEvent(ctx, id, "again") {
		t.Fatal("expected rename of deleted event to fail")
	}
	if g.DeleteEvent(ctx, id) {
		t.Fatal("expected second delete to fail")
	}
}

func TestFileGatewayWithoutPermissionHasNoSideEffects(t *testing.T) {
	g, path, _ := newTestGateway(t)
	ctx := t.Context()
	if id, ok := g.CreateEvent(ctx, "x", time.Now(), time.Now().Add(time.Hour), ""); ok || id != "" {
		t.Fatalf("expected no event without permission, got %q", id)
	}
	if g.DeleteEvent(ctx, "abc") || g.RenameEvent(ctx, "abc", "y") {
		t.Fatal("expected false without permission")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("expected no calendar file, stat err=%v", err)
	}
}

func TestFileGatewayLogsCorruptFile(t *testing.T) {
	g, path, logs := newTestGateway(t, permission.Calendar)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("events: [unterminated"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, ok := g.CreateEvent(t.Context(), "x", time.Now(), time.Now(), ""); ok {
		t.Fatal("expected create to fail on corrupt file")
	}
	if !strings.Contains(logs.String(), "warning: calendar create") {
		t.Fatalf("expected warning log, got %q", logs.String())
	}
}

func TestDisabledGateway(t *testing.T) {
	var g Gateway = Disabled{}
	if _, ok := g.CreateEvent(t.Context(), "x", time.Now(), time.Now(), ""); ok {
		t.Fatal("disabled gateway must not create events")
	}
}
