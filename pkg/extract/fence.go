package extract

import "regexp"

// fenceToken describes one opening or closing fence line found while
// scanning markdown for code blocks.
type fenceToken struct {
	Char   byte // '`' or '~'
	Length int
	Start  int // byte offset of the fence line's first character
	End    int // byte offset just past the fence line (including its newline)
	Info   string // text following the fence marker on the opening line
}

var fenceLineRe = regexp.MustCompile("^[ \t]*([`~]{3,})(.*)$")

// sameLineCloserOpenerRe matches a closing fence immediately followed on
// the same line by a new opening fence, e.g. "``````go" glued together
// by upstream formatting. Splitting these apart before tokenizing keeps
// the stack-based matcher from treating the pair as one fence.
var sameLineCloserOpenerRe = regexp.MustCompile("([`~]{3,})[ \t]*([`~]{3,}[^\n\r]+)")

func preprocessFences(markdown string) string {
	return sameLineCloserOpenerRe.ReplaceAllString(markdown, "$1\n$2")
}

// scanFenceLines walks the markdown line by line (preserving byte
// offsets) and returns every line that looks like a fence marker, in
// document order.
func scanFenceLines(markdown string) []fenceToken {
	var tokens []fenceToken
	pos := 0
	for pos <= len(markdown) {
		nl := indexByteFrom(markdown, '\n', pos)
		lineEnd := nl
		if lineEnd == -1 {
			lineEnd = len(markdown)
		}
		line := markdown[pos:lineEnd]
		if m := fenceLineRe.FindStringSubmatch(line); m != nil {
			marker := m[1]
			tokens = append(tokens, fenceToken{
				Char:   marker[0],
				Length: len(marker),
				Start:  pos,
				End:    lineEnd + 1,
				Info:   trimLeadingSpace(m[2]),
			})
		}
		if nl == -1 {
			break
		}
		pos = nl + 1
	}
	return tokens
}

func indexByteFrom(s string, b byte, from int) int {
	if from > len(s) {
		return -1
	}
	idx := -1
	for i := from; i < len(s); i++ {
		if s[i] == b {
			idx = i
			break
		}
	}
	return idx
}

func trimLeadingSpace(s string) string {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return s[i:]
}

// fencePair is a matched opener/closer pair with the body text between
// them.
type fencePair struct {
	Opener fenceToken
	Closer fenceToken
	Body   string // text strictly between opener's line and closer's line
}

// matchFences pairs openers with closers using a stack keyed on
// (char, length), the same rule CommonMark fences use: a closer must use
// the same character and be at least as long as its opener. Unclosed
// openers are dropped (extraction stays tolerant of malformed input).
func matchFences(markdown string, tokens []fenceToken) []fencePair {
	type openFence struct {
		tok fenceToken
	}
	var stack []openFence
	var pairs []fencePair

	for _, t := range tokens {
		if len(stack) > 0 {
			top := stack[len(stack)-1].tok
			if top.Char == t.Char && t.Length >= top.Length && trimLeadingSpace(t.Info) == "" {
				pairs = append(pairs, fencePair{
					Opener: top,
					Closer: t,
					Body:   markdown[top.End:t.Start],
				})
				stack = stack[:len(stack)-1]
				continue
			}
		}
		stack = append(stack, openFence{tok: t})
	}

	return pairs
}
