package lst

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"
	"github.com/stretchr/testify/require"
)

func TestDataDriven(t *testing.T) {
	datadriven.Walk(t, "testdata", func(t *testing.T, path string) {
		// Create temp dir for this test file
		tmpDir, err := os.MkdirTemp("", "lstq-test-*")
		require.NoError(t, err)
		defer os.RemoveAll(tmpDir)

		// Track sources and built trees by the name given to "file"
		sources := make(map[string][]byte)
		trees := make(map[string]*Tree)

		datadriven.RunTest(t, path, func(t *testing.T, d *datadriven.TestData) string {
			switch d.Cmd {
			case "file":
				return handleSource(t, d, tmpDir, sources)
			case "build":
				return handleBuild(t, d, sources, trees)
			case "verify":
				return handleVerify(t, d, sources, trees)
			case "compare":
				return handleCompare(t, d, tmpDir, trees)
			default:
				t.Fatalf("unknown command: %s", d.Cmd)
				return ""
			}
		})
	})
}

// handleSource records a named source file
func handleSource(
	t *testing.T, d *datadriven.TestData, tmpDir string, sources map[string][]byte,
) string {
	var name string
	d.ScanArgs(t, "name", &name)

	// datadriven strips the trailing newline from the input block
	content := d.Input
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	absPath := filepath.Join(tmpDir, name)
	require.NoError(t, os.WriteFile(absPath, []byte(content), 0644))

	sources[name] = []byte(content)
	return "" // file command produces no output
}

// handleBuild builds a tree for a named source and formats the node hierarchy
func handleBuild(
	t *testing.T, d *datadriven.TestData, sources map[string][]byte, trees map[string]*Tree,
) string {
	var name string
	d.ScanArgs(t, "file", &name)

	src, ok := sources[name]
	require.True(t, ok, "no such file: %s", name)

	lang := ByExtension(filepath.Ext(name))
	if d.HasArg("lang") {
		var langName string
		d.ScanArgs(t, "lang", &langName)
		lang = Get(langName)
	}
	require.NotNil(t, lang, "no language for %s", name)

	tree, err := Build(src, name, lang)
	if err != nil {
		return fmt.Sprintf("error: %s", err)
	}

	trees[name] = tree
	return formatTree(tree)
}

// handleVerify checks a built tree against a named source (possibly rewritten
// by a later "file" command to simulate drift)
func handleVerify(
	t *testing.T, d *datadriven.TestData, sources map[string][]byte, trees map[string]*Tree,
) string {
	var name string
	d.ScanArgs(t, "file", &name)

	tree, ok := trees[name]
	require.True(t, ok, "no tree built for: %s", name)

	res := VerifyTree(tree, sources[name])
	if res.OK {
		return "OK"
	}
	return fmt.Sprintf("MISMATCH at %d", res.FirstDivergence)
}

// handleCompare compares two built trees; the input block, when present, is a
// YAML mapping file
func handleCompare(
	t *testing.T, d *datadriven.TestData, tmpDir string, trees map[string]*Tree,
) string {
	var originName, portedName string
	d.ScanArgs(t, "origin", &originName)
	d.ScanArgs(t, "ported", &portedName)

	origin, ok := trees[originName]
	require.True(t, ok, "no tree built for: %s", originName)
	ported, ok := trees[portedName]
	require.True(t, ok, "no tree built for: %s", portedName)

	var mapping *Mapping
	if strings.TrimSpace(d.Input) != "" {
		mapPath := filepath.Join(tmpDir, "mapping.yaml")
		require.NoError(t, os.WriteFile(mapPath, []byte(d.Input), 0644))
		m, err := LoadMapping(mapPath)
		require.NoError(t, err)
		mapping = m
	}

	top := 0
	if d.HasArg("top") {
		d.ScanArgs(t, "top", &top)
	}

	result := Compare(origin, ported, mapping, top)
	if result.Match {
		return "match"
	}

	lines := []string{"mismatch"}
	for _, diff := range result.Diffs {
		if diff.Name == "" {
			lines = append(lines, fmt.Sprintf("%s %+d", diff.Kind, diff.Delta))
		} else {
			lines = append(lines, fmt.Sprintf("%s %s %+d", diff.Kind, diff.Name, diff.Delta))
		}
	}
	return strings.Join(lines, "\n")
}

// formatTree renders the node hierarchy with line spans, one node per line
func formatTree(tree *Tree) string {
	var b strings.Builder
	var walk func(nodes []*Node, depth int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			b.WriteString(strings.Repeat("  ", depth))
			if n.Name != "" {
				fmt.Fprintf(&b, "%s %s L%d-%d\n", n.Kind, n.Name, n.Span.StartLine, n.Span.EndLine)
			} else {
				fmt.Fprintf(&b, "%s L%d-%d\n", n.Kind, n.Span.StartLine, n.Span.EndLine)
			}
			walk(n.Children, depth+1)
		}
	}
	walk(tree.Nodes, 0)
	return strings.TrimRight(b.String(), "\n")
}
