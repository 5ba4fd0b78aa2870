package profile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/career-mentor/internal/types"
)

// FileStore keeps one JSON document per user under Dir.
type FileStore struct {
	Dir string
}

// NewFileStore creates a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// Path returns the file a profile is stored in.
func (s *FileStore) Path(id string) string {
	return filepath.Join(s.Dir, id+".json")
}

// Load reads the profile for userID, returning the default profile when none exists.
func (s *FileStore) Load(ctx context.Context, userID string) (types.UserProfile, error) {
	id, err := NormalizeID(userID)
	if err != nil {
		return types.UserProfile{}, err
	}
	if err := ctx.Err(); err != nil {
		return types.UserProfile{}, err
	}

	path := s.Path(id)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return types.NewUserProfile(id), nil
		}
		return types.UserProfile{}, fmt.Errorf("failed to read profile %s: %w", path, err)
	}
	return decode(id, path, data)
}

// Save replaces the stored profile. The new document is written to a temporary
// file in the same directory, synced, then renamed over the old one.
func (s *FileStore) Save(ctx context.Context, userID string, p types.UserProfile) error {
	id, err := NormalizeID(userID)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err = prepare(id, p)
	if err != nil {
		return err
	}
	data, err := encode(p)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.Dir, 0755); err != nil {
		return fmt.Errorf("failed to create profile directory: %w", err)
	}
	return writeFileAtomic(s.Path(id), data)
}

func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmpName, 0644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
