package media_storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDiskStore_SaveAndRead(t *testing.T) {
	store, err := NewLocalDiskStore(t.TempDir())
	require.NoError(t, err)

	n, err := store.Save(context.Background(), "files-1-000000001.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.Equal(t, int64(5), n)

	assert.True(t, store.Exists("files-1-000000001.txt"))

	data, err := os.ReadFile(store.Path("files-1-000000001.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestLocalDiskStore_SaveRejectsDuplicates(t *testing.T) {
	store, err := NewLocalDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "a.txt", strings.NewReader("one"))
	require.NoError(t, err)
	_, err = store.Save(context.Background(), "a.txt", strings.NewReader("two"))
	assert.Error(t, err)
}

func TestLocalDiskStore_DeleteMissingIsNoop(t *testing.T) {
	store, err := NewLocalDiskStore(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, store.Delete("never-existed.png"))
}

func TestLocalDiskStore_List(t *testing.T) {
	store, err := NewLocalDiskStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "a.txt", strings.NewReader("a"))
	require.NoError(t, err)
	_, err = store.Save(context.Background(), "b.txt", strings.NewReader("b"))
	require.NoError(t, err)

	names, err := store.List()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a.txt", "b.txt"}, names)
}

func TestLocalDiskStore_PathStripsDirectories(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalDiskStore(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(store.Root(), "passwd"), store.Path("../../etc/passwd"))
}

func TestNewLocalDiskStore_CreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "nested", "uploads")
	store, err := NewLocalDiskStore(root)
	require.NoError(t, err)

	info, err := os.Stat(store.Root())
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
