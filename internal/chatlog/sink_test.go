package chatlog

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/zenvia-world/zenvia-chat/pkg/logging"
)

// memSink captures appended entries, optionally failing every call.
type memSink struct {
	mu      sync.Mutex
	entries []Entry
	err     error
}

func (s *memSink) Append(ctx context.Context, e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.entries = append(s.entries, e)
	return nil
}

func (s *memSink) all() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

func testLogger() *logging.Logger {
	return logging.NewWithWriter("error", io.Discard)
}

func TestRecorderDeliversAndFillsDefaults(t *testing.T) {
	sink := &memSink{}
	r := NewRecorder(testLogger(), sink)

	r.Record(Entry{SessionID: "s1", Sender: SenderUser, Message: "hej"})
	r.Record(Entry{SessionID: "s1", Sender: SenderBot, Message: "Hej! Hur kan jag hjälpa dig?"})
	r.Close()

	got := sink.all()
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	for i, e := range got {
		if e.ID == "" {
			t.Errorf("entry %d: missing generated ID", i)
		}
		if e.Timestamp.IsZero() {
			t.Errorf("entry %d: missing generated timestamp", i)
		}
	}
	if got[0].Sender != SenderUser || got[1].Sender != SenderBot {
		t.Fatalf("entries delivered out of order: %v", got)
	}
}

func TestRecorderSinkFailureIsSwallowed(t *testing.T) {
	failing := &memSink{err: errors.New("sheet unavailable")}
	working := &memSink{}
	r := NewRecorder(testLogger(), failing, working)

	r.Record(Entry{SessionID: "s1", Sender: SenderUser, Message: "hej"})
	r.Close()

	// The failing sink must not stop delivery to the others.
	if len(working.all()) != 1 {
		t.Fatalf("expected working sink to receive the entry")
	}
}

func TestRecorderNoSinksDiscards(t *testing.T) {
	r := NewRecorder(testLogger())
	r.Record(Entry{SessionID: "s1", Message: "hej"})
	r.Close()
}

func TestRecorderNilIsSafe(t *testing.T) {
	var r *Recorder
	r.Record(Entry{SessionID: "s1"})
	r.Close()
}

func TestRecorderPreservesProvidedFields(t *testing.T) {
	sink := &memSink{}
	r := NewRecorder(testLogger(), sink)

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r.Record(Entry{ID: "fixed-id", Timestamp: ts, SessionID: "s1", Sender: SenderUser, Message: "hej"})
	r.Close()

	got := sink.all()
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	if got[0].ID != "fixed-id" || !got[0].Timestamp.Equal(ts) {
		t.Fatalf("provided fields overwritten: %+v", got[0])
	}
}
