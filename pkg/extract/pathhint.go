package extract

import "regexp"

// Path-hint patterns, checked against the lines of markdown preceding a
// fence when the fence's own info string carries no path. Grounded on the
// original implementation's metadata/comment-header heuristics: a
// backticked filename, a "File:" label, a standalone path-looking line,
// or a leading comment header inside the fence body itself.
var (
	backtickedPathRe = regexp.MustCompile("`([\\w./\\\\-]+\\.[A-Za-z0-9]+)`")
	fileLabelRe      = regexp.MustCompile(`(?i)^\s*file:\s*(\S+)\s*$`)
	standalonePathRe = regexp.MustCompile(`^\s*([\w./\\-]+/[\w./\\-]+\.[A-Za-z0-9]+)\s*$`)
	commentHeaderRe  = regexp.MustCompile(`^\s*(?://|#|--|/\*|<!--)\s*([\w./\\-]+)\s*(?:\*/|-->)?\s*$`)
)

// pathHintFromContext scans up to lookback lines immediately preceding a
// fence for a path hint, nearest line first.
func pathHintFromContext(lines []string, fenceLineIdx, lookback int) string {
	start := fenceLineIdx - lookback
	if start < 0 {
		start = 0
	}
	for i := fenceLineIdx - 1; i >= start; i-- {
		line := lines[i]
		if m := fileLabelRe.FindStringSubmatch(line); m != nil {
			return normalizeSlashes(m[1])
		}
		if m := backtickedPathRe.FindStringSubmatch(line); m != nil {
			return normalizeSlashes(m[1])
		}
		if m := standalonePathRe.FindStringSubmatch(line); m != nil {
			return normalizeSlashes(m[1])
		}
	}
	return ""
}

// pathHintFromCommentHeader inspects the first line of a fence body for a
// comment-style path header, e.g. "// path/to/file.go" or "# file.py".
func pathHintFromCommentHeader(body string) string {
	firstLine := body
	if nl := indexByteFrom(body, '\n', 0); nl != -1 {
		firstLine = body[:nl]
	}
	if m := commentHeaderRe.FindStringSubmatch(firstLine); m != nil {
		return normalizeSlashes(m[1])
	}
	return ""
}

func normalizeSlashes(p string) string {
	out := make([]byte, len(p))
	for i := 0; i < len(p); i++ {
		if p[i] == '\\' {
			out[i] = '/'
		} else {
			out[i] = p[i]
		}
	}
	return string(out)
}

// splitLinesWithOffsets splits markdown into lines while keeping the ability to map
// a byte offset back to a line index, used by pathHintFromContext.
func splitLinesWithOffsets(markdown string) (lines []string, offsets []int) {
	pos := 0
	for pos <= len(markdown) {
		nl := indexByteFrom(markdown, '\n', pos)
		end := nl
		if end == -1 {
			end = len(markdown)
		}
		lines = append(lines, markdown[pos:end])
		offsets = append(offsets, pos)
		if nl == -1 {
			break
		}
		pos = nl + 1
	}
	return lines, offsets
}

// lineIndexForOffset returns the index into a lines/offsets pair (as
// produced by splitLinesWithOffsets) containing the given byte offset.
func lineIndexForOffset(offsets []int, offset int) int {
	lo, hi := 0, len(offsets)-1
	best := 0
	for lo <= hi {
		mid := (lo + hi) / 2
		if offsets[mid] <= offset {
			best = mid
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return best
}
