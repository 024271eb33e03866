package lst

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadMappingYAML(t *testing.T) {
	path := writeTempFile(t, "mapping.yaml", `
renames:
  Foo: foo
  BarBaz: barBaz
ignore_kinds: [include, macro]
`)

	m, err := LoadMapping(path)
	require.NoError(t, err)
	require.Equal(t, "foo", m.Renames["Foo"])
	require.Equal(t, "barBaz", m.Renames["BarBaz"])
	require.True(t, m.ignoresKind(KindInclude))
	require.True(t, m.ignoresKind(KindMacro))
	require.False(t, m.ignoresKind(KindFunction))
}

func TestLoadMappingJSON(t *testing.T) {
	path := writeTempFile(t, "mapping.json",
		`{"renames": {"A": "b"}, "ignore_kinds": ["other"]}`)

	m, err := LoadMapping(path)
	require.NoError(t, err)
	require.Equal(t, "b", m.Renames["A"])
	require.True(t, m.ignoresKind(KindOther))
}

func TestLoadMappingEmptyPath(t *testing.T) {
	m, err := LoadMapping("")
	require.NoError(t, err)
	require.Empty(t, m.Renames)
	require.Empty(t, m.IgnoreKinds)
}

func TestLoadMappingMalformed(t *testing.T) {
	path := writeTempFile(t, "mapping.yaml", "renames: [not, a, map]")
	_, err := LoadMapping(path)
	require.Error(t, err)
}

func TestLoadMappingMissingFile(t *testing.T) {
	_, err := LoadMapping(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
