package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"lstq/lst"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func buildTree(t *testing.T, src, path string) *lst.Tree {
	t.Helper()
	tree, err := lst.Build([]byte(src), path, lst.Get("cpp"))
	require.NoError(t, err)
	return tree
}

func TestStoreRoundTrip(t *testing.T) {
	s := openTestStore(t)
	tree := buildTree(t, "void f() {}\n", "a.cpp")

	require.NoError(t, s.Put(tree))

	found, err := s.Has(tree.SourceHash)
	require.NoError(t, err)
	require.True(t, found)

	got, err := s.GetByHash(tree.SourceHash)
	require.NoError(t, err)
	require.Equal(t, tree.File, got.File)
	require.Equal(t, tree.SourceHash, got.SourceHash)
	require.Len(t, got.Nodes, len(tree.Nodes))

	byPath, err := s.GetByPath("a.cpp")
	require.NoError(t, err)
	require.Equal(t, tree.SourceHash, byPath.SourceHash)
}

func TestStoreMisses(t *testing.T) {
	s := openTestStore(t)

	found, err := s.Has("deadbeef")
	require.NoError(t, err)
	require.False(t, found)

	_, err = s.GetByHash("deadbeef")
	require.Error(t, err)

	_, err = s.GetByPath("missing.cpp")
	require.Error(t, err)
}

func TestStorePathFollowsLatestHash(t *testing.T) {
	s := openTestStore(t)

	v1 := buildTree(t, "void f() {}\n", "a.cpp")
	v2 := buildTree(t, "void g() {}\n", "a.cpp")
	require.NotEqual(t, v1.SourceHash, v2.SourceHash)

	require.NoError(t, s.Put(v1))
	require.NoError(t, s.Put(v2))

	n, err := s.Len()
	require.NoError(t, err)
	require.Equal(t, 2, n)

	got, err := s.GetByPath("a.cpp")
	require.NoError(t, err)
	require.Equal(t, v2.SourceHash, got.SourceHash)
}
