package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateAgentsFile(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "repo", "sub")
	path := CreateAgentsFile(t, dir, "Project: Demo\n")

	assert.Equal(t, filepath.Join(dir, "AGENTS.md"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Project: Demo\n", string(data))
}

func TestCreateNestedDir(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	path := CreateNestedDir(t, root, "a", "b", "c")

	assert.Equal(t, filepath.Join(root, "a", "b", "c"), path)
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestIsolateEnv(t *testing.T) {
	t.Setenv("TESTUTIL_ISOLATE_KEEP", "kept")
	t.Setenv("TESTUTIL_ISOLATE_A", "hidden")

	t.Run("isolated", func(t *testing.T) {
		IsolateEnv(t, "TESTUTIL_ISOLATE_", map[string]string{"TESTUTIL_ISOLATE_B": "set"})

		_, ok := os.LookupEnv("TESTUTIL_ISOLATE_A")
		assert.False(t, ok)
		assert.Equal(t, "set", os.Getenv("TESTUTIL_ISOLATE_B"))
	})

	// TESTUTIL_ISOLATE_KEEP shares the prefix and is restored too.
	assert.Equal(t, "hidden", os.Getenv("TESTUTIL_ISOLATE_A"))
	assert.Equal(t, "kept", os.Getenv("TESTUTIL_ISOLATE_KEEP"))
	_, ok := os.LookupEnv("TESTUTIL_ISOLATE_B")
	assert.False(t, ok)
}
