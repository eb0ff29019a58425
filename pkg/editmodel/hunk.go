package editmodel

import "strings"

// LineKind tags a single line within a Hunk.
type LineKind int

const (
	LineContext LineKind = iota
	LineAdd
	LineRemove
)

// HunkLine is one line of a parsed diff hunk, in patch order.
type HunkLine struct {
	Kind LineKind
	Text string // without the leading +/-/space marker
}

// Hunk is a single contiguous change region parsed out of a diff.
type Hunk struct {
	OldStart, OldLen int
	NewStart, NewLen int
	Lines            []HunkLine
}

// OldContent returns the hunk's context+removed lines, i.e. the text the
// hunk expects to find in the original file, joined with "\n".
func (h Hunk) OldContent() string {
	return strings.Join(h.oldLines(), "\n")
}

// NewContent returns the hunk's context+added lines, i.e. the text the
// hunk produces in the new file, joined with "\n".
func (h Hunk) NewContent() string {
	return strings.Join(h.newLines(), "\n")
}

func (h Hunk) oldLines() []string {
	var out []string
	for _, l := range h.Lines {
		if l.Kind == LineContext || l.Kind == LineRemove {
			out = append(out, l.Text)
		}
	}
	return out
}

func (h Hunk) newLines() []string {
	var out []string
	for _, l := range h.Lines {
		if l.Kind == LineContext || l.Kind == LineAdd {
			out = append(out, l.Text)
		}
	}
	return out
}

// LeadContext returns the run of leading context lines (old-side) before
// the first add/remove line.
func (h Hunk) LeadContext() []string {
	var out []string
	for _, l := range h.Lines {
		if l.Kind != LineContext {
			break
		}
		out = append(out, l.Text)
	}
	return out
}

// TailContext returns the run of trailing context lines (old-side) after
// the last add/remove line.
func (h Hunk) TailContext() []string {
	lastChange := -1
	for i, l := range h.Lines {
		if l.Kind != LineContext {
			lastChange = i
		}
	}
	if lastChange == -1 {
		return nil
	}
	var out []string
	for _, l := range h.Lines[lastChange+1:] {
		out = append(out, l.Text)
	}
	return out
}

// IsPureAddition reports whether the hunk contains no removed lines, i.e.
// it only inserts new content.
func (h Hunk) IsPureAddition() bool {
	for _, l := range h.Lines {
		if l.Kind == LineRemove {
			return false
		}
	}
	for _, l := range h.Lines {
		if l.Kind == LineAdd {
			return true
		}
	}
	return false
}
