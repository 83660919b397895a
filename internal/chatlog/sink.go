// Package chatlog appends chat transcripts to external sinks (spreadsheet,
// Postgres). Sink failures are logged and swallowed; they never affect the
// chat response, and writes happen off the request path.
package chatlog

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/zenvia-world/zenvia-chat/pkg/logging"
)

// Sender values recorded per entry.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// Entry is one transcript row.
type Entry struct {
	ID        string
	Timestamp time.Time
	SessionID string
	Sender    string
	Message   string
	HeatScore int
	Intent    string
	Industry  string
}

// Sink receives transcript entries append-only.
type Sink interface {
	Append(ctx context.Context, e Entry) error
}

const recorderBuffer = 256

// Recorder fans entries out to its sinks from a single worker goroutine.
// Record never blocks the request path: when the buffer is full the entry is
// dropped and counted in the log.
type Recorder struct {
	sinks   []Sink
	logger  *logging.Logger
	entries chan Entry
	wg      sync.WaitGroup
}

// NewRecorder starts a recorder draining into the given sinks. A recorder
// with no sinks is valid and discards everything.
func NewRecorder(logger *logging.Logger, sinks ...Sink) *Recorder {
	if logger == nil {
		logger = logging.Default()
	}
	r := &Recorder{
		sinks:   sinks,
		logger:  logger,
		entries: make(chan Entry, recorderBuffer),
	}
	r.wg.Add(1)
	go r.drain()
	return r
}

// Record queues an entry for appending. Missing ID and Timestamp fields are
// filled in.
func (r *Recorder) Record(e Entry) {
	if r == nil || len(r.sinks) == 0 {
		return
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now().UTC()
	}
	select {
	case r.entries <- e:
	default:
		r.logger.Warn("chatlog: buffer full, dropping entry", "session_id", e.SessionID)
	}
}

func (r *Recorder) drain() {
	defer r.wg.Done()
	for e := range r.entries {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		for _, sink := range r.sinks {
			if err := sink.Append(ctx, e); err != nil {
				r.logger.Error("chatlog: append failed", "error", err, "session_id", e.SessionID)
			}
		}
		cancel()
	}
}

// Close stops accepting entries and waits for the worker to flush.
func (r *Recorder) Close() {
	if r == nil {
		return
	}
	close(r.entries)
	r.wg.Wait()
}
