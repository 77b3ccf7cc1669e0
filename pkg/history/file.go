package history

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/amidalab/amidakuji/pkg/errors"
)

// FileStore keeps draws as JSON files in a directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based draw store.
// If baseDir is empty, defaults to ~/.config/amidakuji/draws/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "get home dir")
		}
		baseDir = filepath.Join(home, ".config", "amidakuji", "draws")
	}
	if err := os.MkdirAll(baseDir, 0o700); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create draw dir")
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) drawPath(id string) string {
	return filepath.Join(s.baseDir, id+".json")
}

// Save implements Store.
func (s *FileStore) Save(ctx context.Context, d *Draw) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "marshal draw")
	}
	if err := os.WriteFile(s.drawPath(d.ID), data, 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write draw file")
	}
	return nil
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, id string) (*Draw, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.drawPath(id))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, notFound(id)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read draw file")
	}

	var d Draw
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "parse draw %q", id)
	}
	return &d, nil
}

// List implements Store.
func (s *FileStore) List(ctx context.Context, limit int) ([]*Draw, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read draw dir")
	}

	draws := make([]*Draw, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name()))
		if err != nil {
			continue
		}
		var d Draw
		if err := json.Unmarshal(data, &d); err != nil {
			continue
		}
		draws = append(draws, &d)
	}

	sort.Slice(draws, func(i, j int) bool {
		return draws[i].CreatedAt.After(draws[j].CreatedAt)
	})
	if limit > 0 && len(draws) > limit {
		draws = draws[:limit]
	}
	return draws, nil
}

// Delete implements Store.
func (s *FileStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.drawPath(id)); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeInternal, err, "remove draw file")
	}
	return nil
}

// Close implements Store.
func (s *FileStore) Close(ctx context.Context) error { return nil }

// Path returns the base directory for draw files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
