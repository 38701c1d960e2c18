package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterSlice(t *testing.T) {
	got := FilterSlice([]string{"v1", "sdk-1", "v2"}, func(s string) bool {
		return s[0] == 'v'
	})
	assert.Equal(t, []string{"v1", "v2"}, got)
	assert.Empty(t, FilterSlice([]int{1, 2}, func(int) bool { return false }))
}

func TestSet(t *testing.T) {
	set := NewSet[string]()
	require.NoError(t, set.Add("vulkan-headers"))
	require.NoError(t, set.Add("vulkan-headers"))
	assert.Error(t, set.Add(""))
	assert.True(t, set.Contains("vulkan-headers"))
	assert.False(t, set.Contains("glslang"))
	assert.Equal(t, 1, set.Size())
}

func TestIsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "deps.yaml")
	require.NoError(t, os.WriteFile(path, []byte("dependencies: []\n"), 0o644))

	assert.True(t, IsFile(path))
	assert.False(t, IsFile(dir))
	assert.False(t, IsFile(filepath.Join(dir, "missing.yaml")))
}
