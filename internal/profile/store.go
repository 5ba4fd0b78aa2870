// Package profile persists user profiles keyed by normalized user id.
//
// Every backend follows the same contract: loading an unknown id yields the
// empty default profile, loading a damaged record fails with a
// *CorruptRecordError, and saving replaces the whole record atomically.
// Concurrent saves for one id are last-write-wins.
package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/jonathan/career-mentor/internal/schemas"
	"github.com/jonathan/career-mentor/internal/skills"
	"github.com/jonathan/career-mentor/internal/types"
)

// ErrInvalidID is returned for empty or path-unsafe user ids.
var ErrInvalidID = errors.New("invalid user id")

// Store loads and saves user profiles.
type Store interface {
	Load(ctx context.Context, userID string) (types.UserProfile, error)
	Save(ctx context.Context, userID string, p types.UserProfile) error
}

// CorruptRecordError reports a stored profile that cannot be decoded.
type CorruptRecordError struct {
	ID       string
	Location string
	Cause    error
}

func (e *CorruptRecordError) Error() string {
	return fmt.Sprintf("corrupt profile record %q at %s: %v", e.ID, e.Location, e.Cause)
}

func (e *CorruptRecordError) Unwrap() error {
	return e.Cause
}

// NormalizeID lowercases and trims id, rejecting values that cannot be used
// as a storage key.
func NormalizeID(id string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(id))
	if n == "" || n == "." || n == ".." {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	if strings.ContainsAny(n, `/\`+"\x00") {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return n, nil
}

// prepare returns the canonical form of p as stored under id. Only the id and
// skills are normalized; free text is kept verbatim.
func prepare(id string, p types.UserProfile) (types.UserProfile, error) {
	p.ID = id
	p.Skills = skills.NormalizeList(p.Skills)
	if err := p.Validate(); err != nil {
		return types.UserProfile{}, fmt.Errorf("invalid profile: %w", err)
	}
	return p, nil
}

// encode renders a stored profile as indented JSON.
func encode(p types.UserProfile) ([]byte, error) {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal profile: %w", err)
	}
	return append(data, '\n'), nil
}

// decode validates and parses a stored profile document.
func decode(id, location string, data []byte) (types.UserProfile, error) {
	if err := schemas.Validate(schemas.UserProfile, data); err != nil {
		return types.UserProfile{}, &CorruptRecordError{ID: id, Location: location, Cause: err}
	}
	var p types.UserProfile
	if err := json.Unmarshal(data, &p); err != nil {
		return types.UserProfile{}, &CorruptRecordError{ID: id, Location: location, Cause: err}
	}
	p.ID = id
	p.Skills = skills.NormalizeList(p.Skills)
	return p, nil
}
