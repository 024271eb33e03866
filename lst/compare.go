package lst

import "sort"

// DefaultTopDiffs limits how many token deltas a comparison reports.
const DefaultTopDiffs = 20

// Token is the unit of structural comparison: a normalized (kind, name)
// pair derived from one node.
type Token struct {
	Kind Kind   `json:"kind"`
	Name string `json:"name"`
}

// Multiset counts token occurrences.
type Multiset map[Token]int

// Size returns the total number of tokens, counting multiplicity.
func (m Multiset) Size() int {
	n := 0
	for _, c := range m {
		n += c
	}
	return n
}

// Flatten reduces a tree to its token multiset, depth-first over children.
// Gap nodes carry no structural signal and are always skipped; order is
// deliberately discarded, only multiplicity is compared.
func Flatten(tree *Tree) Multiset {
	ms := make(Multiset)
	tree.Walk(func(n *Node) {
		if n.Kind == KindOther {
			return
		}
		ms[Token{Kind: n.Kind, Name: n.Name}]++
	})
	return ms
}

// NormalizeToken applies the mapping to one token. The second return is
// false when the token's kind is ignored and the token must be dropped.
func NormalizeToken(tok Token, mapping *Mapping) (Token, bool) {
	if mapping == nil {
		return tok, true
	}
	if mapping.ignoresKind(tok.Kind) {
		return Token{}, false
	}
	if renamed, ok := mapping.Renames[tok.Name]; ok {
		tok.Name = renamed
	}
	return tok, true
}

// Normalize applies the mapping to a whole multiset. Applying it twice
// yields the same multiset as applying it once, provided the rename table's
// values do not themselves appear as keys mapping elsewhere.
func Normalize(ms Multiset, mapping *Mapping) Multiset {
	out := make(Multiset, len(ms))
	for tok, count := range ms {
		norm, keep := NormalizeToken(tok, mapping)
		if !keep {
			continue
		}
		out[norm] += count
	}
	return out
}

// TokenDelta is one entry of a comparison diff. Delta > 0 means the token
// occurs more often on the origin side, Delta < 0 more often on the ported
// side.
type TokenDelta struct {
	Kind  Kind   `json:"kind"`
	Name  string `json:"name"`
	Delta int    `json:"delta"`
}

// ComparisonResult is the verdict of one structural comparison.
type ComparisonResult struct {
	Match        bool         `json:"match"`
	OriginTokens int          `json:"origin_tokens"`
	PortedTokens int          `json:"ported_tokens"`
	Diffs        []TokenDelta `json:"diffs,omitempty"`
}

// Compare decides whether two trees are structurally equivalent modulo the
// mapping. Match holds iff the normalized token multisets are equal; the
// diff lists the top token deltas ordered by absolute multiplicity, ties
// broken by (kind, name) so output is stable across runs.
func Compare(origin, ported *Tree, mapping *Mapping, top int) ComparisonResult {
	if top <= 0 {
		top = DefaultTopDiffs
	}

	a := Normalize(Flatten(origin), mapping)
	b := Normalize(Flatten(ported), mapping)

	var diffs []TokenDelta
	for tok, ca := range a {
		if d := ca - b[tok]; d != 0 {
			diffs = append(diffs, TokenDelta{Kind: tok.Kind, Name: tok.Name, Delta: d})
		}
	}
	for tok, cb := range b {
		if _, seen := a[tok]; !seen {
			diffs = append(diffs, TokenDelta{Kind: tok.Kind, Name: tok.Name, Delta: -cb})
		}
	}

	sort.Slice(diffs, func(i, j int) bool {
		di, dj := abs(diffs[i].Delta), abs(diffs[j].Delta)
		if di != dj {
			return di > dj
		}
		if diffs[i].Kind != diffs[j].Kind {
			return diffs[i].Kind < diffs[j].Kind
		}
		return diffs[i].Name < diffs[j].Name
	})

	result := ComparisonResult{
		Match:        len(diffs) == 0,
		OriginTokens: a.Size(),
		PortedTokens: b.Size(),
	}
	if len(diffs) > top {
		diffs = diffs[:top]
	}
	result.Diffs = diffs
	return result
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
