package lst

import "sort"

// Symbol kinds worth indexing across files.
var indexedKinds = map[Kind]bool{
	KindNamespace: true,
	KindClass:     true,
	KindStruct:    true,
	KindFunction:  true,
	KindUsing:     true,
}

// SymbolLocation is one occurrence of an indexed symbol.
type SymbolLocation struct {
	File string `json:"file"`
	Span Span   `json:"span"`
}

// SymbolEntry aggregates all locations of one (kind, name) symbol.
type SymbolEntry struct {
	Kind      Kind             `json:"kind"`
	Name      string           `json:"name"`
	Locations []SymbolLocation `json:"locations"`
}

// IndexSymbols walks the given trees and returns symbol entries sorted by
// (kind, name). Locations keep tree order, so repeated runs over the same
// trees produce identical output.
func IndexSymbols(trees []*Tree) []SymbolEntry {
	acc := make(map[Token][]SymbolLocation)
	for _, t := range trees {
		t.Walk(func(n *Node) {
			if !indexedKinds[n.Kind] {
				return
			}
			key := Token{Kind: n.Kind, Name: n.Name}
			acc[key] = append(acc[key], SymbolLocation{File: t.File, Span: n.Span})
		})
	}

	entries := make([]SymbolEntry, 0, len(acc))
	for key, locs := range acc {
		entries = append(entries, SymbolEntry{Kind: key.Kind, Name: key.Name, Locations: locs})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Kind != entries[j].Kind {
			return entries[i].Kind < entries[j].Kind
		}
		return entries[i].Name < entries[j].Name
	})
	return entries
}
