package domain

import "sort"

// FileChangeSet maps a repository-relative path to its diff text.
// A path is present only when its diff was non-empty.
type FileChangeSet map[string]string

// Paths returns the changed paths in lexical order.
func (c FileChangeSet) Paths() []string {
	paths := make([]string, 0, len(c))
	for path := range c {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

// Clone returns an independent copy of the set.
func (c FileChangeSet) Clone() FileChangeSet {
	if c == nil {
		return nil
	}
	out := make(FileChangeSet, len(c))
	for path, diff := range c {
		out[path] = diff
	}
	return out
}
