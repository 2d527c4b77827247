package observability

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func newTestLog(t *testing.T) (EventLog, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	log, err := NewJSONLEventLog(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = log.Close() })
	return log, path
}

func TestWriteAndRead(t *testing.T) {
	log, _ := newTestLog(t)

	if err := log.Write(Event{Type: EventTaskCreated, Message: "task created", Data: map[string]any{"title": "A"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := log.Write(Event{Type: EventMemoryUpdated, Message: "memory updated"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	events, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Time.IsZero() {
		t.Fatal("expected write to stamp the event")
	}
}

func TestRead_TypeFilter(t *testing.T) {
	log, _ := newTestLog(t)
	_ = log.Write(Event{Type: EventTaskCreated, Message: "a"})
	_ = log.Write(Event{Type: EventTaskDeleted, Message: "b"})
	_ = log.Write(Event{Type: EventTaskCreated, Message: "c"})

	events, err := log.Read(EventFilter{Type: EventTaskCreated})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
}

func TestRead_SinceFilter(t *testing.T) {
	log, _ := newTestLog(t)
	old := time.Now().UTC().Add(-time.Hour)
	_ = log.Write(Event{Time: old, Type: EventTaskCreated, Message: "old"})
	_ = log.Write(Event{Type: EventTaskCreated, Message: "recent"})

	since := time.Now().UTC().Add(-time.Minute)
	events, err := log.Read(EventFilter{Since: &since})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 1 || events[0].Message != "recent" {
		t.Fatalf("unexpected events: %v", events)
	}
}

func TestRead_SkipsMalformedLines(t *testing.T) {
	log, path := newTestLog(t)
	_ = log.Write(Event{Type: EventTaskCreated, Message: "good"})

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := f.WriteString("not json\n"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_ = f.Close()
	_ = log.Write(Event{Type: EventTaskCreated, Message: "also good"})

	events, err := log.Read(EventFilter{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected malformed line skipped, got %d events", len(events))
	}
}
