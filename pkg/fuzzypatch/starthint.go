package fuzzypatch

import "github.com/toyinlola/editcore/pkg/editmodel"

// computeStartHints returns one start-hint line index per hunk, each
// within [0, fileLen]. The first hunk's hint is its header's new_start - 1
// (this is exact for the unified dialect and a reasonable zero-default
// for the simplified one). Subsequent hunks blend the running cursor —
// the previous hunk's hint plus its old-side line count — with their own
// header hint:
// round(0.7*cursor + 0.3*header_hint), clamped to file bounds.
// Pure-addition hunks always use their header hint directly.
func computeStartHints(hunks []editmodel.Hunk, fileLen int) []int {
	hints := make([]int, len(hunks))
	cursor := 0

	for i, h := range hunks {
		headerHint := h.NewStart - 1
		if headerHint < 0 {
			headerHint = 0
		}

		var hint int
		switch {
		case h.IsPureAddition():
			hint = headerHint
		case i == 0:
			hint = headerHint
		default:
			hint = roundInt(0.7*float64(cursor) + 0.3*float64(headerHint))
		}

		hint = clamp(hint, 0, fileLen)
		hints[i] = hint
		cursor = hint + oldLineCount(h)
	}

	return hints
}

func roundInt(f float64) int {
	if f < 0 {
		return int(f - 0.5)
	}
	return int(f + 0.5)
}

func oldLineCount(h editmodel.Hunk) int {
	count := 0
	for _, l := range h.Lines {
		if l.Kind == editmodel.LineContext || l.Kind == editmodel.LineRemove {
			count++
		}
	}
	return count
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
