package lst

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

// BuildSitter produces the same lossless tree as Build, but segments the
// source by walking a tree-sitter parse instead of running the heuristic
// recognizers. Grammar node types outside the language's kind map degrade
// to gap coverage, so the reconstruction invariant holds regardless of how
// much of the file the grammar accounts for.
func BuildSitter(source []byte, path string, lang Language) (*Tree, error) {
	if !utf8.Valid(source) {
		return nil, fmt.Errorf("build %s: source is not valid UTF-8", path)
	}

	p := sitter.NewParser()
	p.SetLanguage(lang.TreeSitterLang())
	parsed := p.Parse(nil, source)

	w := &sitterWalk{
		src:       source,
		li:        newLineIndex(source),
		kinds:     lang.KindMap(),
		nameTypes: lang.NameNodeTypes(),
	}
	roots := w.collect(parsed.RootNode())
	roots = fillGaps(source, w.li, roots)

	sum := sha256.Sum256(source)
	return &Tree{
		Version:      Version,
		File:         path,
		SourceHash:   hex.EncodeToString(sum[:]),
		SourceLength: len(source),
		Nodes:        roots,
	}, nil
}

type sitterWalk struct {
	src       []byte
	li        lineIndex
	kinds     map[string]Kind
	nameTypes []string
}

// collect maps the named children of ast to structural nodes, descending
// transparently through node types the kind map does not cover (declaration
// lists, template wrappers, linkage specs).
func (w *sitterWalk) collect(ast *sitter.Node) []*Node {
	var out []*Node
	count := int(ast.NamedChildCount())
	for i := 0; i < count; i++ {
		child := ast.NamedChild(i)
		if kind, ok := w.kinds[child.Type()]; ok {
			out = append(out, w.node(child, kind))
		} else if child.NamedChildCount() > 0 {
			out = append(out, w.collect(child)...)
		}
	}
	return out
}

func (w *sitterWalk) node(ast *sitter.Node, kind Kind) *Node {
	start, end := int(ast.StartByte()), int(ast.EndByte())
	n := &Node{
		Kind: kind,
		Span: w.li.span(start, end),
		Text: string(w.src[start:end]),
	}

	switch kind {
	case KindInclude:
		n.Name = firstLine(trimSpace(w.src[start:end]))
	case KindMacro, KindUsing, KindOther:
		// unnamed leaf kinds
	default:
		n.Name = w.nameOf(ast)
	}

	switch kind {
	case KindNamespace, KindClass, KindStruct, KindFunction:
		if open := findOpenBrace(w.src, start, end); open != -1 {
			if close := matchBrace(w.src, open); close != -1 && close < end {
				header := w.li.span(start, open)
				body := w.li.span(open, close+1)
				n.HeaderSpan = &header
				n.BodySpan = &body
			}
		}
		n.Children = w.collect(ast)
	}
	return n
}

// nameOf extracts the declared identifier: the grammar's "name" field when
// present, otherwise the first child whose type is a known identifier type.
// C++ function definitions bury the identifier under a declarator chain, so
// the search follows "declarator" fields a few levels down.
func (w *sitterWalk) nameOf(ast *sitter.Node) string {
	return w.findName(ast, 3)
}

func (w *sitterWalk) findName(ast *sitter.Node, depth int) string {
	if named := ast.ChildByFieldName("name"); named != nil {
		return named.Content(w.src)
	}
	count := int(ast.NamedChildCount())
	for i := 0; i < count; i++ {
		child := ast.NamedChild(i)
		for _, t := range w.nameTypes {
			if child.Type() == t {
				return child.Content(w.src)
			}
		}
	}
	if depth > 0 {
		if decl := ast.ChildByFieldName("declarator"); decl != nil {
			return w.findName(decl, depth-1)
		}
	}
	return ""
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i != -1 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
