package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomicReplacesContent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "messages.json")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), 0o600))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0o600))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestExpandPath(t *testing.T) {
	home := UserHomeDir()
	assert.Equal(t, filepath.Join(home, ".gitme", "config.yaml"), ExpandPath("~/.gitme/config.yaml"))
	assert.Equal(t, home, ExpandPath("~"))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
	assert.Equal(t, filepath.Join("rel", "x"), ExpandPath("rel/./x"))
	assert.Equal(t, "", ExpandPath(""))
}
