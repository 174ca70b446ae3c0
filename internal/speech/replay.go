package speech

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/google/uuid"
)

// ReplayRecognizer replays recorded recognition events. Each line of the
// recording is a JSON object holding either a result
// ({"alternatives":[...],"isFinal":true}) or an error
// ({"error":"no-speech","message":"..."}).
type ReplayRecognizer struct {
	id     string
	events []Event
	logger *slog.Logger

	mu      sync.Mutex
	started bool
	stopped bool
	done    chan struct{}
	out     chan Event
}

type replayLine struct {
	Alternatives []Alternative `json:"alternatives"`
	IsFinal      bool          `json:"isFinal"`
	Error        string        `json:"error"`
	Message      string        `json:"message"`
}

// NewReplayRecognizer parses a recording from r.
func NewReplayRecognizer(r io.Reader, logger *slog.Logger) (*ReplayRecognizer, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var events []Event
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Bytes()
		if len(line) == 0 {
			continue
		}
		var l replayLine
		if err := json.Unmarshal(line, &l); err != nil {
			return nil, fmt.Errorf("recording line %d: %w", lineNo, err)
		}
		if l.Error != "" {
			events = append(events, Event{Err: &RecognitionError{Code: l.Error, Message: l.Message}})
			continue
		}
		events = append(events, Event{Result: &Result{Alternatives: l.Alternatives, IsFinal: l.IsFinal}})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read recording: %w", err)
	}
	return &ReplayRecognizer{
		id:     uuid.NewString(),
		events: events,
		logger: logger,
		done:   make(chan struct{}),
		out:    make(chan Event),
	}, nil
}

// OpenReplay loads a recording from a file.
func OpenReplay(path string, logger *slog.Logger) (*ReplayRecognizer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open recording: %w", err)
	}
	defer f.Close()
	return NewReplayRecognizer(f, logger)
}

// SessionID identifies this recognition session in logs.
func (r *ReplayRecognizer) SessionID() string { return r.id }

func (r *ReplayRecognizer) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.started {
		return errors.New("recognizer already started")
	}
	r.started = true
	r.logger.DebugContext(ctx, "speech session started", "session_id", r.id, "events", len(r.events))
	go r.run(ctx)
	return nil
}

func (r *ReplayRecognizer) run(ctx context.Context) {
	defer close(r.out)
	for _, ev := range r.events {
		if r.isStopped() && !isFinal(ev) {
			continue
		}
		select {
		case r.out <- ev:
		case <-r.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Stop stops listening. Remaining final results are still delivered.
func (r *ReplayRecognizer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopped = true
	return nil
}

// Abort ends the session immediately and discards pending results.
func (r *ReplayRecognizer) Abort() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	select {
	case <-r.done:
	default:
		close(r.done)
	}
	return nil
}

func (r *ReplayRecognizer) Events() <-chan Event { return r.out }

func (r *ReplayRecognizer) isStopped() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.stopped
}

func isFinal(ev Event) bool {
	return ev.Result != nil && ev.Result.IsFinal
}
