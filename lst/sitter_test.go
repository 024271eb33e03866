package lst

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildSitterLossless(t *testing.T) {
	src := []byte(strings.Join([]string{
		"#include <cmath>",
		"",
		"namespace geo {",
		"int add(int a, int b) { return a + b; }",
		"}",
		"",
		"// trailing comment",
		"",
	}, "\n"))

	tree, err := BuildSitter(src, "geo.cpp", Get("cpp"))
	require.NoError(t, err)
	require.True(t, VerifyTree(tree, src).OK)
}

func TestBuildSitterFindsDeclarations(t *testing.T) {
	src := []byte("int add(int a, int b) { return a + b; }\n")

	tree, err := BuildSitter(src, "add.cpp", Get("cpp"))
	require.NoError(t, err)

	ms := Flatten(tree)
	require.Equal(t, 1, ms[Token{Kind: KindFunction, Name: "add"}],
		"flattened tokens: %v", ms)
	require.True(t, VerifyTree(tree, src).OK)
}

func TestBuildSitterMatchesHeuristicTokens(t *testing.T) {
	src := []byte("namespace app {\nvoid run() {}\n}\n")

	heuristic, err := Build(src, "app.cpp", Get("cpp"))
	require.NoError(t, err)
	grammar, err := BuildSitter(src, "app.cpp", Get("cpp"))
	require.NoError(t, err)

	// Both engines must agree on the structural signal for code this plain.
	result := Compare(heuristic, grammar, nil, 0)
	require.True(t, result.Match, "diffs: %v", result.Diffs)
}

func TestBuildSitterRejectsInvalidUTF8(t *testing.T) {
	_, err := BuildSitter([]byte{0xff, 0xfe}, "bin.cpp", Get("cpp"))
	require.Error(t, err)
}

func TestBuildSitterKotlinLossless(t *testing.T) {
	src := []byte(strings.Join([]string{
		"package demo",
		"",
		"class Greeter {",
		"    fun greet(): String { return \"hi\" }",
		"}",
		"",
	}, "\n"))

	tree, err := BuildSitter(src, "greeter.kt", Get("kotlin"))
	require.NoError(t, err)
	require.True(t, VerifyTree(tree, src).OK)
}
