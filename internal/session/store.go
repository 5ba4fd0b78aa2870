package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/career-mentor/internal/db"
	"github.com/jonathan/career-mentor/internal/types"
)

// FeedbackSink persists feedback beyond the lifetime of a Log.
type FeedbackSink interface {
	SaveFeedback(ctx context.Context, f types.FeedbackEntry) error
}

// SQLFeedbackStore keeps feedback in the session_feedback table.
type SQLFeedbackStore struct {
	DB *db.DB
}

// NewSQLFeedbackStore creates a SQLFeedbackStore. The schema is expected to be migrated.
func NewSQLFeedbackStore(database *db.DB) *SQLFeedbackStore {
	return &SQLFeedbackStore{DB: database}
}

// SaveFeedback inserts one feedback row.
func (s *SQLFeedbackStore) SaveFeedback(ctx context.Context, f types.FeedbackEntry) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	if f.Timestamp.IsZero() {
		f.Timestamp = time.Now()
	}
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO session_feedback (id, user_id, role, reaction, text, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		f.ID.String(), f.User, f.Role, string(f.Reaction), f.Text, f.Timestamp.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save feedback: %w", err)
	}
	return nil
}

// ListFeedback returns the feedback left by user, oldest first.
func (s *SQLFeedbackStore) ListFeedback(ctx context.Context, user string) ([]types.FeedbackEntry, error) {
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, role, reaction, text, created_at FROM session_feedback WHERE user_id = ? ORDER BY created_at, id`,
		user,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	defer rows.Close()

	out := []types.FeedbackEntry{}
	for rows.Next() {
		var (
			id, reaction string
			f            types.FeedbackEntry
		)
		if err := rows.Scan(&id, &f.Role, &reaction, &f.Text, &f.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan feedback: %w", err)
		}
		parsed, err := uuid.Parse(id)
		if err != nil {
			return nil, fmt.Errorf("invalid feedback id %q: %w", id, err)
		}
		f.ID = parsed
		f.User = user
		f.Reaction = types.Reaction(reaction)
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return out, nil
}
