// Package session records chat advice and recommendation feedback for a running mentor.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/career-mentor/internal/types"
)

// ErrInvalidFeedback is returned for feedback that fails validation.
var ErrInvalidFeedback = errors.New("invalid feedback")

// Log is an append-only record of advice and feedback. It is safe for concurrent use.
type Log struct {
	mu       sync.RWMutex
	chats    []types.SessionEntry
	feedback []types.FeedbackEntry
	now      func() time.Time
}

// NewLog creates an empty Log.
func NewLog() *Log {
	return &Log{now: time.Now}
}

// AppendChat records an advice exchange, assigning an id and timestamp when unset.
func (l *Log) AppendChat(e types.SessionEntry) types.SessionEntry {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = l.now()
	}
	e.Profile.Skills = append([]string{}, e.Profile.Skills...)

	l.mu.Lock()
	defer l.mu.Unlock()
	l.chats = append(l.chats, e)
	return e
}

// PrepareFeedback validates f and assigns its id and timestamp without recording it.
func (l *Log) PrepareFeedback(f types.FeedbackEntry) (types.FeedbackEntry, error) {
	if err := f.Validate(); err != nil {
		return types.FeedbackEntry{}, fmt.Errorf("%w: %w", ErrInvalidFeedback, err)
	}
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.Timestamp.IsZero() {
		f.Timestamp = l.now()
	}
	return f, nil
}

// AppendFeedback validates and records a reaction to a recommended role.
func (l *Log) AppendFeedback(f types.FeedbackEntry) (types.FeedbackEntry, error) {
	f, err := l.PrepareFeedback(f)
	if err != nil {
		return types.FeedbackEntry{}, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.feedback = append(l.feedback, f)
	return f, nil
}

// Chats returns a copy of the advice history in append order.
func (l *Log) Chats() []types.SessionEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]types.SessionEntry, len(l.chats))
	copy(out, l.chats)
	return out
}

// Feedback returns a copy of the feedback history in append order.
func (l *Log) Feedback() []types.FeedbackEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]types.FeedbackEntry, len(l.feedback))
	copy(out, l.feedback)
	return out
}

// WriteChatsJSON exports the advice history as indented JSON.
func (l *Log) WriteChatsJSON(w io.Writer) error {
	return writeJSON(w, l.Chats())
}

// WriteFeedbackJSON exports the feedback history as indented JSON.
func (l *Log) WriteFeedbackJSON(w io.Writer) error {
	return writeJSON(w, l.Feedback())
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode session log: %w", err)
	}
	return nil
}
