package lst

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIndexSymbols(t *testing.T) {
	a := mustBuild(t, "namespace n {\nvoid f() {}\n}\n", "a.cpp", "cpp")
	b := mustBuild(t, "void f() {}\nstruct S { int x; };\n", "b.cpp", "cpp")

	entries := IndexSymbols([]*Tree{a, b})

	var keys []string
	for _, e := range entries {
		keys = append(keys, string(e.Kind)+" "+e.Name)
	}
	// Sorted by (kind, name).
	require.Equal(t, []string{"function f", "namespace n", "struct S"}, keys)

	fn := entries[0]
	require.Len(t, fn.Locations, 2)
	require.Equal(t, "a.cpp", fn.Locations[0].File)
	require.Equal(t, "b.cpp", fn.Locations[1].File)
}

func TestIndexSymbolsSkipsGapsAndIncludes(t *testing.T) {
	tree := mustBuild(t, "#include <x>\n\nvoid f() {}\n", "a.cpp", "cpp")
	entries := IndexSymbols([]*Tree{tree})
	require.Len(t, entries, 1)
	require.Equal(t, KindFunction, entries[0].Kind)
}

func TestIndexSymbolsEmpty(t *testing.T) {
	require.Empty(t, IndexSymbols(nil))
}
