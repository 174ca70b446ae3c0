// Package speech consumes transcripts from a speech recognizer. It does
// not process audio: a Recognizer delivers already transcribed results and
// Collect turns them into the text the feedback flow evaluates.
package speech

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Alternative is one candidate transcript for a result.
type Alternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence"`
}

// Result is one recognition result. Interim results may be revised; only
// final results are kept.
type Result struct {
	Alternatives []Alternative `json:"alternatives"`
	IsFinal      bool          `json:"isFinal"`
}

// Best returns the alternative with the highest confidence. The first one
// wins ties.
func (r Result) Best() (Alternative, bool) {
	if len(r.Alternatives) == 0 {
		return Alternative{}, false
	}
	best := r.Alternatives[0]
	for _, a := range r.Alternatives[1:] {
		if a.Confidence > best.Confidence {
			best = a
		}
	}
	return best, true
}

// Event is delivered on a recognizer's event stream. Exactly one of
// Result or Err is set.
type Event struct {
	Result *Result
	Err    *RecognitionError
}

// RecognitionError is an error reported by the recognizer, such as
// "no-speech" or "network".
type RecognitionError struct {
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *RecognitionError) Error() string {
	if e.Message == "" {
		return "speech recognition: " + e.Code
	}
	return fmt.Sprintf("speech recognition: %s: %s", e.Code, e.Message)
}

// Recognizer is a speech-to-text session. Start begins delivering events;
// Stop asks the recognizer to finish and deliver pending final results;
// Abort ends the session and discards pending results. The events channel
// is closed when the session ends.
type Recognizer interface {
	Start(ctx context.Context) error
	Stop() error
	Abort() error
	Events() <-chan Event
}

// ErrNoSpeech is returned by Collect when the session produced no final
// transcript.
var ErrNoSpeech = errors.New("no speech recognised")

// Collect starts r and joins the best alternative of each final result
// until the event stream closes. A recognizer error ends collection. If
// ctx is done first the session is aborted.
func Collect(ctx context.Context, r Recognizer) (string, error) {
	if err := r.Start(ctx); err != nil {
		return "", fmt.Errorf("start recognizer: %w", err)
	}

	var parts []string
	events := r.Events()
	for {
		select {
		case <-ctx.Done():
			_ = r.Abort()
			return "", ctx.Err()
		case ev, ok := <-events:
			if err := ctx.Err(); err != nil {
				_ = r.Abort()
				return "", err
			}
			if !ok {
				text := strings.Join(parts, " ")
				if text == "" {
					return "", ErrNoSpeech
				}
				return text, nil
			}
			if ev.Err != nil {
				_ = r.Abort()
				return "", ev.Err
			}
			if ev.Result == nil || !ev.Result.IsFinal {
				continue
			}
			if best, ok := ev.Result.Best(); ok {
				if t := strings.TrimSpace(best.Transcript); t != "" {
					parts = append(parts, t)
				}
			}
		}
	}
}
