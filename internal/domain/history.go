package domain

import "time"

// HistoryEntry records one generated commit message.
//
// Provider and Model are pointers so entries written before those fields
// existed load and re-save without gaining defaulted values.
type HistoryEntry struct {
	Timestamp   string        `json:"timestamp"`
	RepoPath    string        `json:"repo_path"`
	Message     string        `json:"message"`
	FileChanges FileChangeSet `json:"file_changes"`
	Provider    *string       `json:"provider,omitempty"`
	Model       *string       `json:"model,omitempty"`
}

// NewHistoryEntry builds an entry stamped with now.
func NewHistoryEntry(now time.Time, repoPath, message string, changes FileChangeSet, provider, model string) HistoryEntry {
	if provider == "" {
		provider = string(ProviderUnknown)
	}
	snapshot := changes.Clone()
	if snapshot == nil {
		snapshot = FileChangeSet{}
	}
	entry := HistoryEntry{
		Timestamp:   now.Format(TimestampFormat),
		RepoPath:    repoPath,
		Message:     message,
		FileChanges: snapshot,
		Provider:    &provider,
	}
	if model != "" {
		entry.Model = &model
	}
	return entry
}

// legacyTimestampFormats covers isoformat() output from earlier releases, which had no zone.
var legacyTimestampFormats = []string{
	TimestampFormat,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
}

// Time parses the entry timestamp. ok is false when no known layout matches.
func (e HistoryEntry) Time() (t time.Time, ok bool) {
	for _, layout := range legacyTimestampFormats {
		if parsed, err := time.ParseInLocation(layout, e.Timestamp, time.Local); err == nil {
			return parsed, true
		}
	}
	return time.Time{}, false
}

// ProviderName returns the recorded provider, or "unknown" for legacy entries.
func (e HistoryEntry) ProviderName() string {
	if e.Provider == nil || *e.Provider == "" {
		return string(ProviderUnknown)
	}
	return *e.Provider
}

// ModelName returns the recorded model or an empty string.
func (e HistoryEntry) ModelName() string {
	if e.Model == nil {
		return ""
	}
	return *e.Model
}
