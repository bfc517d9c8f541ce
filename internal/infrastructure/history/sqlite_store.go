package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/doeshing/gitme-go/internal/domain"
	"github.com/doeshing/gitme-go/internal/ports"
)

const schema = `CREATE TABLE IF NOT EXISTS messages (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	repo_path TEXT NOT NULL,
	message TEXT NOT NULL,
	file_changes TEXT NOT NULL,
	provider TEXT,
	model TEXT
);
CREATE INDEX IF NOT EXISTS messages_repo_path ON messages(repo_path);`

// SQLiteStore persists history in a SQLite database with the same
// semantics as FileStore.
type SQLiteStore struct {
	db         *sql.DB
	path       string
	maxEntries int
	log        ports.Logger
	mu         sync.Mutex
}

// NewSQLiteStore opens (or creates) the database at path. Rows whose
// file_changes column cannot be decoded are reported on log.
func NewSQLiteStore(path string, maxEntries int, log ports.Logger) (*SQLiteStore, error) {
	if maxEntries <= 0 {
		maxEntries = domain.DefaultHistoryMaxEntries
	}
	if err := os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history db: %w", err)
	}
	return &SQLiteStore{db: db, path: path, maxEntries: maxEntries, log: log}, nil
}

// Save inserts entry and evicts the oldest rows beyond the cap.
func (s *SQLiteStore) Save(ctx context.Context, entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changes := entry.FileChanges
	if changes == nil {
		changes = domain.FileChangeSet{}
	}
	encoded, err := json.Marshal(changes)
	if err != nil {
		return fmt.Errorf("encode file changes: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO messages (timestamp, repo_path, message, file_changes, provider, model) VALUES (?, ?, ?, ?, ?, ?)`,
		entry.Timestamp, entry.RepoPath, entry.Message, string(encoded),
		nullable(entry.Provider), nullable(entry.Model),
	); err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM messages WHERE id NOT IN (SELECT id FROM messages ORDER BY id DESC LIMIT ?)`,
		s.maxEntries,
	); err != nil {
		return fmt.Errorf("trim history: %w", err)
	}
	return tx.Commit()
}

// Messages returns the last limit entries for repoPath in chronological order.
func (s *SQLiteStore) Messages(ctx context.Context, repoPath string, limit int) ([]domain.HistoryEntry, error) {
	query := `SELECT timestamp, repo_path, message, file_changes, provider, model FROM messages`
	var args []interface{}
	if repoPath != "" {
		query += ` WHERE repo_path = ?`
		args = append(args, repoPath)
	}
	query += ` ORDER BY id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []domain.HistoryEntry
	for rows.Next() {
		var (
			entry           domain.HistoryEntry
			changes         string
			provider, model sql.NullString
		)
		if err := rows.Scan(&entry.Timestamp, &entry.RepoPath, &entry.Message, &changes, &provider, &model); err != nil {
			return nil, err
		}
		entry.FileChanges = domain.FileChangeSet{}
		if err := json.Unmarshal([]byte(changes), &entry.FileChanges); err != nil {
			entry.FileChanges = domain.FileChangeSet{}
			s.log.Warn("corrupt file_changes in history row", map[string]interface{}{
				"repo":      entry.RepoPath,
				"timestamp": entry.Timestamp,
				"error":     err.Error(),
			})
		}
		if provider.Valid {
			entry.Provider = &provider.String
		}
		if model.Valid {
			entry.Model = &model.String
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Clear deletes the rows for repoPath, or every row when repoPath is empty.
func (s *SQLiteStore) Clear(ctx context.Context, repoPath string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var err error
	if repoPath == "" {
		_, err = s.db.ExecContext(ctx, `DELETE FROM messages`)
	} else {
		_, err = s.db.ExecContext(ctx, `DELETE FROM messages WHERE repo_path = ?`, repoPath)
	}
	if err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}

// Path returns the sqlite database path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func nullable(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
