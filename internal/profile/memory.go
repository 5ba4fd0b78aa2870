package profile

import (
	"context"
	"sync"

	"github.com/jonathan/career-mentor/internal/types"
)

// MemoryStore keeps profiles in process memory.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]types.UserProfile
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{profiles: make(map[string]types.UserProfile)}
}

// Load returns a copy of the stored profile or the default profile.
func (s *MemoryStore) Load(_ context.Context, userID string) (types.UserProfile, error) {
	id, err := NormalizeID(userID)
	if err != nil {
		return types.UserProfile{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.profiles[id]
	if !ok {
		return types.NewUserProfile(id), nil
	}
	return clone(p), nil
}

// Save stores a copy of p under userID.
func (s *MemoryStore) Save(_ context.Context, userID string, p types.UserProfile) error {
	id, err := NormalizeID(userID)
	if err != nil {
		return err
	}
	p, err = prepare(id, p)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[id] = clone(p)
	return nil
}

func clone(p types.UserProfile) types.UserProfile {
	p.Skills = append([]string{}, p.Skills...)
	return p
}
