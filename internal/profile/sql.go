package profile

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jonathan/career-mentor/internal/db"
	"github.com/jonathan/career-mentor/internal/types"
)

// SQLStore keeps profiles in the user_profiles table.
type SQLStore struct {
	DB *db.DB
}

// NewSQLStore creates a SQLStore. The schema is expected to be migrated.
func NewSQLStore(database *db.DB) *SQLStore {
	return &SQLStore{DB: database}
}

// Load reads the profile row for userID, returning the default profile when absent.
func (s *SQLStore) Load(ctx context.Context, userID string) (types.UserProfile, error) {
	id, err := NormalizeID(userID)
	if err != nil {
		return types.UserProfile{}, err
	}

	var background, goals, skillsJSON string
	err = s.DB.QueryRowContext(ctx,
		`SELECT background, goals, skills FROM user_profiles WHERE id = ?`, id,
	).Scan(&background, &goals, &skillsJSON)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.NewUserProfile(id), nil
		}
		return types.UserProfile{}, fmt.Errorf("failed to load profile %s: %w", id, err)
	}

	doc, err := json.Marshal(struct {
		ID         string          `json:"id"`
		Background string          `json:"background"`
		Goals      string          `json:"goals"`
		Skills     json.RawMessage `json:"skills"`
	}{id, background, goals, json.RawMessage(skillsJSON)})
	if err != nil {
		return types.UserProfile{}, &CorruptRecordError{ID: id, Location: "user_profiles", Cause: err}
	}
	return decode(id, "user_profiles", doc)
}

// Save upserts the full profile row for userID.
func (s *SQLStore) Save(ctx context.Context, userID string, p types.UserProfile) error {
	id, err := NormalizeID(userID)
	if err != nil {
		return err
	}
	p, err = prepare(id, p)
	if err != nil {
		return err
	}
	skillsJSON, err := json.Marshal(p.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal skills: %w", err)
	}

	_, err = s.DB.ExecContext(ctx,
		`INSERT INTO user_profiles (id, background, goals, skills, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET
		   background = excluded.background,
		   goals = excluded.goals,
		   skills = excluded.skills,
		   updated_at = excluded.updated_at`,
		id, p.Background, p.Goals, string(skillsJSON), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save profile %s: %w", id, err)
	}
	return nil
}
