package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/doeshing/gitme-go/internal/domain"
	"github.com/doeshing/gitme-go/internal/pkg/filesystem"
	"github.com/doeshing/gitme-go/internal/ports"
)

// FileStore keeps history as one JSON array in a single file.
// A missing or unreadable file is treated as an empty history.
type FileStore struct {
	path       string
	maxEntries int
	mu         sync.Mutex
}

// NewFileStore creates a store at path holding at most maxEntries entries.
func NewFileStore(path string, maxEntries int) *FileStore {
	if maxEntries <= 0 {
		maxEntries = domain.DefaultHistoryMaxEntries
	}
	return &FileStore{path: path, maxEntries: maxEntries}
}

// Save appends entry, evicting the oldest entries beyond the cap.
func (f *FileStore) Save(_ context.Context, entry domain.HistoryEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	entries := append(f.load(), entry)
	if overflow := len(entries) - f.maxEntries; overflow > 0 {
		entries = entries[overflow:]
	}
	return f.write(entries)
}

// Messages returns the last limit entries for repoPath in chronological order.
// An empty repoPath matches every repository; limit <= 0 returns everything.
func (f *FileStore) Messages(_ context.Context, repoPath string, limit int) ([]domain.HistoryEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return tail(filterRepo(f.load(), repoPath), limit), nil
}

// Clear drops the entries for repoPath, or removes the file when repoPath is empty.
func (f *FileStore) Clear(_ context.Context, repoPath string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if repoPath == "" {
		if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("remove history: %w", err)
		}
		return nil
	}

	var kept []domain.HistoryEntry
	for _, entry := range f.load() {
		if entry.RepoPath != repoPath {
			kept = append(kept, entry)
		}
	}
	return f.write(kept)
}

// Path returns the backing file path.
func (f *FileStore) Path() string {
	return f.path
}

func (f *FileStore) load() []domain.HistoryEntry {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil
	}
	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil
	}
	return entries
}

func (f *FileStore) write(entries []domain.HistoryEntry) error {
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	if err := filesystem.WriteFileAtomic(f.path, data, domain.SecureFilePermissions); err != nil {
		return fmt.Errorf("write history: %w", err)
	}
	return nil
}

func filterRepo(entries []domain.HistoryEntry, repoPath string) []domain.HistoryEntry {
	if repoPath == "" {
		return entries
	}
	var out []domain.HistoryEntry
	for _, entry := range entries {
		if entry.RepoPath == repoPath {
			out = append(out, entry)
		}
	}
	return out
}

func tail(entries []domain.HistoryEntry, limit int) []domain.HistoryEntry {
	if limit > 0 && len(entries) > limit {
		return entries[len(entries)-limit:]
	}
	return entries
}

var _ ports.HistoryRepository = (*FileStore)(nil)
