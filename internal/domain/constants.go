package domain

import "time"

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for config and history files (rw-------)
	SecureFilePermissions = 0o600
)

// Timeout and duration constants
const (
	// DefaultHTTPClientTimeout is the timeout for provider HTTP requests
	DefaultHTTPClientTimeout = 60 * time.Second
)

// Generation constants
const (
	// DefaultMaxTokens bounds the generated message length
	DefaultMaxTokens = 300
	// DefaultTemperature keeps phrasing concise and repeatable
	DefaultTemperature = 0.3
	// DefaultMaxDiffChars is how much of each diff is included in the prompt
	DefaultMaxDiffChars = 1000
)

// Fallback messages
const (
	// MessageNoChanges is returned without contacting a provider when nothing changed
	MessageNoChanges = "No changes to commit"
	// MessageGenerationFailed replaces any provider failure
	MessageGenerationFailed = "Update files"
)

// History constants
const (
	// DefaultHistoryMaxEntries caps the persisted log; oldest entries are evicted first
	DefaultHistoryMaxEntries = 100
	// DefaultHistoryLimit is the default number of history entries to display
	DefaultHistoryLimit = 10
	// DefaultHistoryFile is the JSON history file name
	DefaultHistoryFile = "messages.json"
	// DefaultHistoryDBFile is the SQLite history file name
	DefaultHistoryDBFile = "messages.db"
)

// History backends
const (
	HistoryBackendJSON   = "json"
	HistoryBackendSQLite = "sqlite"
)

// Time formats
const (
	// TimestampFormat is the standard timestamp format
	TimestampFormat = time.RFC3339Nano
)
