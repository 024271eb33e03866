package lst

// Delimiter scanning for body extent detection. This is a flat state machine
// over the raw bytes, not a parser: it only needs to pair braces while
// ignoring delimiters that appear inside comments and string/char literals.

type scanState int

const (
	stateNormal scanState = iota
	stateLineComment
	stateBlockComment
	stateString
	stateChar
)

// matchBrace returns the index of the '}' that closes the '{' at open, or -1
// if the brace is never closed. src[open] must be '{'.
func matchBrace(src []byte, open int) int {
	depth := 0
	state := stateNormal
	for i := open; i < len(src); i++ {
		ch := src[i]
		switch state {
		case stateLineComment:
			if ch == '\n' {
				state = stateNormal
			}
		case stateBlockComment:
			if ch == '*' && i+1 < len(src) && src[i+1] == '/' {
				state = stateNormal
				i++
			}
		case stateString:
			if ch == '\\' {
				i++
			} else if ch == '"' {
				state = stateNormal
			}
		case stateChar:
			if ch == '\\' {
				i++
			} else if ch == '\'' {
				state = stateNormal
			}
		case stateNormal:
			switch ch {
			case '/':
				if i+1 < len(src) {
					if src[i+1] == '/' {
						state = stateLineComment
						i++
					} else if src[i+1] == '*' {
						state = stateBlockComment
						i++
					}
				}
			case '"':
				state = stateString
			case '\'':
				state = stateChar
			case '{':
				depth++
			case '}':
				depth--
				if depth == 0 {
					return i
				}
			}
		}
	}
	return -1
}

// findOpenBrace returns the index of the first '{' in src[from:to] that is
// not inside a comment or literal, or -1.
func findOpenBrace(src []byte, from, to int) int {
	if to > len(src) {
		to = len(src)
	}
	state := stateNormal
	for i := from; i < to; i++ {
		ch := src[i]
		switch state {
		case stateLineComment:
			if ch == '\n' {
				state = stateNormal
			}
		case stateBlockComment:
			if ch == '*' && i+1 < to && src[i+1] == '/' {
				state = stateNormal
				i++
			}
		case stateString:
			if ch == '\\' {
				i++
			} else if ch == '"' {
				state = stateNormal
			}
		case stateChar:
			if ch == '\\' {
				i++
			} else if ch == '\'' {
				state = stateNormal
			}
		case stateNormal:
			switch ch {
			case '/':
				if i+1 < to {
					if src[i+1] == '/' {
						state = stateLineComment
						i++
					} else if src[i+1] == '*' {
						state = stateBlockComment
						i++
					}
				}
			case '"':
				state = stateString
			case '\'':
				state = stateChar
			case '{':
				return i
			}
		}
	}
	return -1
}

// lineIndex holds the byte offset of the start of each line.
type lineIndex []int

func newLineIndex(src []byte) lineIndex {
	idx := lineIndex{0}
	for i, b := range src {
		if b == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

// lineAt returns the 1-based line containing byte offset pos.
func (li lineIndex) lineAt(pos int) int {
	lo, hi := 0, len(li)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		if li[mid] <= pos {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return hi + 1
}

func (li lineIndex) span(start, end int) Span {
	return Span{
		StartByte: start,
		EndByte:   end,
		StartLine: li.lineAt(start),
		EndLine:   li.lineAt(end),
	}
}
