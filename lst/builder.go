package lst

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"sort"
	"unicode/utf8"
)

// Rules holds the heuristic recognizers for one language. Every pattern
// starts with `(^|\n)` so matches anchor to line starts; brace-bodied
// patterns end at the opening '{' and the builder finds the extent with the
// delimiter scanner. Nil patterns are skipped.
type Rules struct {
	// Include matches a whole include/import line. The node name is the
	// trimmed matched line.
	Include *regexp.Regexp

	// Namespace matches a braced namespace opening; name in group 2.
	Namespace *regexp.Regexp

	// Package matches a one-line namespace header (e.g. a Kotlin package
	// declaration); name in group 2.
	Package *regexp.Regexp

	// Container matches a braced class-like opening; keyword in group 2,
	// name in group 3. Keywords listed in StructKeywords yield struct nodes,
	// all others class nodes.
	Container      *regexp.Regexp
	StructKeywords map[string]bool

	// Function matches a braced function opening; name in group 2.
	Function *regexp.Regexp

	// Using matches a whole using/alias declaration including its terminator.
	Using *regexp.Regexp

	// Directive matches a macro/annotation line. Lines also matched by
	// Include are skipped.
	Directive *regexp.Regexp
}

// Build decomposes source into a lossless structural tree.
//
// It never fails on unclassifiable syntax: spans the recognizers do not
// cover become gap nodes so the reconstruction invariant holds
// unconditionally. The only error condition is undecodable input.
func Build(source []byte, path string, lang Language) (*Tree, error) {
	if !utf8.Valid(source) {
		return nil, fmt.Errorf("build %s: source is not valid UTF-8", path)
	}

	li := newLineIndex(source)
	flat := collectNodes(source, li, lang.Rules())
	roots := nestNodes(flat)
	roots = fillGaps(source, li, roots)

	sum := sha256.Sum256(source)
	return &Tree{
		Version:      Version,
		File:         path,
		SourceHash:   hex.EncodeToString(sum[:]),
		SourceLength: len(source),
		Nodes:        roots,
	}, nil
}

// collectNodes runs every recognizer over the whole source and returns the
// recognized nodes sorted by start offset. Overlaps and nesting are resolved
// later.
func collectNodes(src []byte, li lineIndex, rules Rules) []*Node {
	var nodes []*Node

	includes := findMatches(rules.Include, src)
	for _, m := range includes {
		start, end := m.start, lineEnd(src, m.start)
		nodes = append(nodes, &Node{
			Kind: KindInclude,
			Name: trimSpace(src[start:end]),
			Span: li.span(start, end),
			Text: string(src[start:end]),
		})
	}

	for _, m := range findMatches(rules.Package, src) {
		start, end := m.start, lineEnd(src, m.start)
		nodes = append(nodes, &Node{
			Kind: KindNamespace,
			Name: m.group(src, 2),
			Span: li.span(start, end),
			Text: string(src[start:end]),
		})
	}

	for _, m := range findMatches(rules.Namespace, src) {
		nodes = append(nodes, braceNode(src, li, m, KindNamespace, m.group(src, 2)))
	}

	for _, m := range findMatches(rules.Container, src) {
		kind := KindClass
		if rules.StructKeywords[m.group(src, 2)] {
			kind = KindStruct
		}
		nodes = append(nodes, braceNode(src, li, m, kind, m.group(src, 3)))
	}

	for _, m := range findMatches(rules.Function, src) {
		nodes = append(nodes, braceNode(src, li, m, KindFunction, m.group(src, 2)))
	}

	for _, m := range findMatches(rules.Using, src) {
		start, end := m.start, m.end
		nodes = append(nodes, &Node{
			Kind: KindUsing,
			Span: li.span(start, end),
			Text: string(src[start:end]),
		})
	}

	for _, m := range findMatches(rules.Directive, src) {
		start, end := m.start, lineEnd(src, m.start)
		// An include line also looks like a directive; the include node wins.
		if overlapsAny(start, end, includes) {
			continue
		}
		nodes = append(nodes, &Node{
			Kind: KindMacro,
			Span: li.span(start, end),
			Text: string(src[start:end]),
		})
	}

	sort.SliceStable(nodes, func(i, j int) bool {
		return nodes[i].Span.StartByte < nodes[j].Span.StartByte
	})
	return nodes
}

// braceNode builds a node whose body extent runs to the brace matching the
// '{' the pattern ended on.
func braceNode(src []byte, li lineIndex, m match, kind Kind, name string) *Node {
	start := m.start
	headerEnd := findOpenBrace(src, m.end-1, len(src))
	if headerEnd == -1 {
		headerEnd = m.end
	}
	end := m.end
	if close := matchBrace(src, headerEnd); close != -1 {
		end = close + 1
	}
	if end > len(src) {
		end = len(src)
	}
	header := li.span(start, headerEnd)
	body := li.span(headerEnd, end)
	return &Node{
		Kind:       kind,
		Name:       name,
		Span:       li.span(start, end),
		HeaderSpan: &header,
		BodySpan:   &body,
		Text:       string(src[start:end]),
	}
}

// nestNodes turns the flat node list into a forest: each node becomes a
// child of the smallest container whose body span contains it.
func nestNodes(nodes []*Node) []*Node {
	var containers []int
	for i, n := range nodes {
		switch n.Kind {
		case KindNamespace, KindClass, KindStruct, KindFunction:
			if n.BodySpan != nil {
				containers = append(containers, i)
			}
		}
	}

	parent := make([]int, len(nodes))
	for i, n := range nodes {
		parent[i] = -1
		for _, ci := range containers {
			if ci == i {
				continue
			}
			c := nodes[ci]
			if !c.BodySpan.contains(n.Span) {
				continue
			}
			if parent[i] == -1 || nodes[parent[i]].BodySpan.Len() > c.BodySpan.Len() {
				parent[i] = ci
			}
		}
	}

	var roots []*Node
	for i, n := range nodes {
		n.Children = nil
		if parent[i] == -1 {
			roots = append(roots, n)
		} else {
			p := nodes[parent[i]]
			p.Children = append(p.Children, n)
		}
	}

	var sortRec func(n *Node)
	sortRec = func(n *Node) {
		sort.SliceStable(n.Children, func(i, j int) bool {
			return n.Children[i].Span.StartByte < n.Children[j].Span.StartByte
		})
		for _, ch := range n.Children {
			sortRec(ch)
		}
	}
	for _, r := range roots {
		sortRec(r)
	}
	sort.SliceStable(roots, func(i, j int) bool {
		return roots[i].Span.StartByte < roots[j].Span.StartByte
	})
	return roots
}

// fillGaps inserts gap nodes between top-level nodes so the concatenation of
// all root texts reproduces src exactly. Roots that overlap an earlier root
// are dropped; the gap filler covers their bytes instead, which keeps the
// invariant even when recognizers disagree.
func fillGaps(src []byte, li lineIndex, roots []*Node) []*Node {
	var out []*Node
	pos := 0
	for _, n := range roots {
		if n.Span.StartByte < pos {
			continue
		}
		if n.Span.StartByte > pos {
			out = append(out, gapNode(src, li, pos, n.Span.StartByte))
		}
		out = append(out, n)
		pos = n.Span.EndByte
	}
	if pos < len(src) {
		out = append(out, gapNode(src, li, pos, len(src)))
	}
	return out
}

func gapNode(src []byte, li lineIndex, start, end int) *Node {
	return &Node{
		Kind: KindOther,
		Span: li.span(start, end),
		Text: string(src[start:end]),
	}
}

// match is one recognizer hit, with the leading newline of the `(^|\n)`
// anchor already excluded.
type match struct {
	start, end int
	groups     []int
}

func (m match) group(src []byte, n int) string {
	lo, hi := m.groups[2*n], m.groups[2*n+1]
	if lo < 0 {
		return ""
	}
	return string(src[lo:hi])
}

func findMatches(re *regexp.Regexp, src []byte) []match {
	if re == nil {
		return nil
	}
	var out []match
	for _, g := range re.FindAllSubmatchIndex(src, -1) {
		start := g[0]
		if g[2] != g[3] { // group 1 captured the anchoring newline
			start++
		}
		out = append(out, match{start: start, end: g[1], groups: g})
	}
	return out
}

func overlapsAny(start, end int, ms []match) bool {
	for _, m := range ms {
		if start < m.end && m.start < end {
			return true
		}
	}
	return false
}

// lineEnd extends from to the end of its line (exclusive of the newline).
func lineEnd(src []byte, from int) int {
	for i := from; i < len(src); i++ {
		if src[i] == '\n' {
			return i
		}
	}
	return len(src)
}

func trimSpace(b []byte) string {
	start, end := 0, len(b)
	for start < end && isSpace(b[start]) {
		start++
	}
	for end > start && isSpace(b[end-1]) {
		end--
	}
	return string(b[start:end])
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
