package lst

// Verification is the verdict of a reconstruction check.
type Verification struct {
	OK bool `json:"ok"`

	// FirstDivergence is the byte offset where the reconstruction first
	// diverges from the original source. -1 when OK.
	FirstDivergence int `json:"first_divergence_offset"`
}

// VerifyTree checks the reconstruction invariant: the concatenation of all
// top-level node texts must equal the original source byte-for-byte.
//
// Total function: it never fails, it only reports. A reconstruction mismatch
// indicates a builder bug, not a transient condition.
func VerifyTree(tree *Tree, source []byte) Verification {
	off := 0
	for _, n := range tree.Nodes {
		text := n.Text
		for i := 0; i < len(text); i++ {
			if off+i >= len(source) || source[off+i] != text[i] {
				return Verification{OK: false, FirstDivergence: off + i}
			}
		}
		off += len(text)
	}
	if off != len(source) {
		return Verification{OK: false, FirstDivergence: off}
	}
	return Verification{OK: true, FirstDivergence: -1}
}
