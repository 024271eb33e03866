package lst

import (
	"fmt"
	"sort"
	"strings"
)

// Markdown renders a human-readable summary of a tree: artifact metadata,
// node counts per kind, and the indented node hierarchy with spans. Gap
// nodes are shown compactly by byte length.
func Markdown(tree *Tree) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Tree summary: %s\n\n", tree.File)
	fmt.Fprintf(&b, "- Version: `%s`\n", tree.Version)
	fmt.Fprintf(&b, "- Source length: `%d` bytes\n", tree.SourceLength)
	fmt.Fprintf(&b, "- Source hash (sha256): `%s`\n", tree.SourceHash)

	counts := make(map[Kind]int)
	tree.Walk(func(n *Node) {
		counts[n.Kind]++
	})
	if len(counts) > 0 {
		kinds := make([]string, 0, len(counts))
		for k := range counts {
			kinds = append(kinds, string(k))
		}
		sort.Strings(kinds)
		parts := make([]string, len(kinds))
		for i, k := range kinds {
			parts[i] = fmt.Sprintf("%s=%d", k, counts[Kind(k)])
		}
		fmt.Fprintf(&b, "- Node counts: %s\n", strings.Join(parts, ", "))
	}

	b.WriteString("\n## Tree\n\n")
	writeNodes(&b, tree.Nodes, 0)
	return b.String()
}

func writeNodes(b *strings.Builder, nodes []*Node, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, n := range nodes {
		fmt.Fprintf(b, "%s- %s\n", indent, nodeLabel(n))
		if n.Kind != KindOther {
			if detail := nodeDetail(n); detail != "" {
				fmt.Fprintf(b, "%s\n  %s```\n  %s%s\n  %s```\n\n", indent, indent, indent, detail, indent)
			}
		}
		writeNodes(b, n.Children, depth+1)
	}
}

func nodeLabel(n *Node) string {
	rng := fmt.Sprintf("L%d-%d B%d-%d",
		n.Span.StartLine, n.Span.EndLine, n.Span.StartByte, n.Span.EndByte)
	if n.Kind == KindOther {
		return fmt.Sprintf("other · %d bytes (%s)", n.Span.Len(), rng)
	}
	if n.Name != "" {
		return fmt.Sprintf("%s %s (%s)", n.Kind, n.Name, rng)
	}
	if first := firstLine(strings.TrimSpace(n.Text)); first != "" {
		return fmt.Sprintf("%s %s (%s)", n.Kind, first, rng)
	}
	return fmt.Sprintf("%s (%s)", n.Kind, rng)
}

// nodeDetail returns a one-line signature snippet for the fenced block.
func nodeDetail(n *Node) string {
	if header := strings.TrimSpace(n.HeaderText()); header != "" {
		return firstLine(header)
	}
	return firstLine(strings.TrimSpace(n.Text))
}
