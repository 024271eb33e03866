// Package lst builds lossless structural trees from source files and
// compares them to check the structural fidelity of a language port.
//
// A tree decomposes one file into an ordered forest of typed nodes, each
// carrying an exact byte/line span. Concatenating the text of the top-level
// nodes reproduces the original file byte-for-byte; anything the builder
// cannot classify becomes a gap node rather than a dropped byte.
package lst

// Version is the tree artifact schema version.
const Version = "0.1"

// Kind classifies a structural node. The set is closed: anything outside it
// is covered by KindOther gap nodes.
type Kind string

// Node kinds.
const (
	KindInclude   Kind = "include"
	KindNamespace Kind = "namespace"
	KindClass     Kind = "class"
	KindStruct    Kind = "struct"
	KindFunction  Kind = "function"
	KindMacro     Kind = "macro"
	KindUsing     Kind = "using"
	KindOther     Kind = "other"
)

// Span is a half-open byte range into the source, with 1-based line numbers.
type Span struct {
	StartByte int `json:"start_byte"`
	EndByte   int `json:"end_byte"`
	StartLine int `json:"start_line"`
	EndLine   int `json:"end_line"`
}

// Len returns the number of bytes the span covers.
func (s Span) Len() int {
	return s.EndByte - s.StartByte
}

// contains reports whether other lies entirely inside s.
func (s Span) contains(other Span) bool {
	return s.StartByte <= other.StartByte && other.EndByte <= s.EndByte
}

// Node is one structural unit of a source file.
//
// Sibling spans are contiguous and non-overlapping at the top level.
// Children are nested by lexical containment; their spans use the same
// absolute byte offsets as the root. Text is the exact source slice bounded
// by Span, kept so the file can be reconstructed from the tree alone.
type Node struct {
	Kind       Kind    `json:"kind"`
	Name       string  `json:"name,omitempty"`
	Span       Span    `json:"span"`
	HeaderSpan *Span   `json:"header_span,omitempty"`
	BodySpan   *Span   `json:"body_span,omitempty"`
	Text       string  `json:"text"`
	Children   []*Node `json:"children,omitempty"`
}

// HeaderText returns the signature part of a container/function node, or ""
// when the node has no header span.
func (n *Node) HeaderText() string {
	if n.HeaderSpan == nil {
		return ""
	}
	start := n.HeaderSpan.StartByte - n.Span.StartByte
	end := n.HeaderSpan.EndByte - n.Span.StartByte
	if start < 0 || end > len(n.Text) || start > end {
		return ""
	}
	return n.Text[start:end]
}

// Tree is the lossless structural decomposition of one source file.
// It is immutable after construction and identified by SourceHash for
// caching and dedup.
type Tree struct {
	Version      string  `json:"version"`
	File         string  `json:"file"`
	SourceHash   string  `json:"source_hash"`
	SourceLength int     `json:"source_length"`
	Nodes        []*Node `json:"nodes"`
}

// Walk calls fn for every node in the tree, depth-first in source order.
func (t *Tree) Walk(fn func(n *Node)) {
	var rec func(nodes []*Node)
	rec = func(nodes []*Node) {
		for _, n := range nodes {
			fn(n)
			rec(n.Children)
		}
	}
	rec(t.Nodes)
}

// FileJob represents a file to be processed.
type FileJob struct {
	AbsPath     string
	DisplayPath string
}
