package fuzzypatch

import (
	"strings"

	"github.com/toyinlola/editcore/pkg/editmodel"
)

// discoverCandidates runs Phase 1 for a single hunk: it tries each
// location strategy in priority order and returns as soon as one yields
// at least one candidate. Each strategy reports only its single best
// match, so at most one candidate comes back per hunk; phase 2's
// backtracking search decides whether it fits alongside the others.
func discoverCandidates(fileLines []string, hunk editmodel.Hunk, hunkIndex, hint int) []editmodel.CandidateLocation {
	if hunk.IsPureAddition() {
		idx := locateInsertionIndex(fileLines, hunk, hint)
		return []editmodel.CandidateLocation{{
			HunkIndex:   hunkIndex,
			StartIdx:    idx,
			EndIdx:      idx,
			Replacement: addedLines(hunk),
			MatchType:   editmodel.MatchInsertion,
			Confidence:  1.0,
		}}
	}

	oldLines := hunkOldLines(hunk)
	newLines := addedAndContextLines(hunk)
	if len(oldLines) == 0 {
		return nil
	}

	if c := exactMatch(fileLines, oldLines, newLines, hunkIndex, hint, hunk); len(c) > 0 {
		return c
	}
	if c := whitespaceLooseMatch(fileLines, oldLines, newLines, hunkIndex, hint); len(c) > 0 {
		return c
	}
	if c := fuzzyWindowMatch(fileLines, oldLines, newLines, hunkIndex, hint, 0, len(fileLines)); len(c) > 0 {
		return c
	}
	lo, hi := clamp(hint-40, 0, len(fileLines)), clamp(hint+len(oldLines)+40, 0, len(fileLines))
	if c := fuzzyWindowMatch(fileLines, oldLines, newLines, hunkIndex, hint, lo, hi); len(c) > 0 {
		for i := range c {
			c[i].MatchType = editmodel.MatchMiddleOut
		}
		return c
	}
	if c := lineNumberStripMatch(fileLines, oldLines, newLines, hunkIndex, hint); len(c) > 0 {
		return c
	}
	if c := anchoredFlattenMatch(fileLines, oldLines, newLines, hunkIndex, hint); len(c) > 0 {
		return c
	}
	if c := uniqueEndAnchorMatch(fileLines, oldLines, newLines, hunkIndex, hint); len(c) > 0 {
		return c
	}
	if c := braceAwareFallback(fileLines, oldLines, newLines, hunkIndex, hint); len(c) > 0 {
		return c
	}

	return nil
}

func hunkOldLines(h editmodel.Hunk) []string {
	var out []string
	for _, l := range h.Lines {
		if l.Kind == editmodel.LineContext || l.Kind == editmodel.LineRemove {
			out = append(out, l.Text)
		}
	}
	return out
}

func addedAndContextLines(h editmodel.Hunk) []string {
	var out []string
	for _, l := range h.Lines {
		if l.Kind == editmodel.LineContext || l.Kind == editmodel.LineAdd {
			out = append(out, l.Text)
		}
	}
	return out
}

func addedLines(h editmodel.Hunk) []string {
	var out []string
	for _, l := range h.Lines {
		if l.Kind == editmodel.LineAdd {
			out = append(out, l.Text)
		}
	}
	return out
}

// windowsEqual reports whether fileLines[start:start+len(oldLines)]
// equals oldLines line-for-line using the given comparator.
func windowsEqual(fileLines, oldLines []string, start int, eq func(a, b string) bool) bool {
	if start < 0 || start+len(oldLines) > len(fileLines) {
		return false
	}
	for i, l := range oldLines {
		if !eq(fileLines[start+i], l) {
			return false
		}
	}
	return true
}

func exactMatch(fileLines, oldLines, newLines []string, hunkIndex, hint int, hunk editmodel.Hunk) []editmodel.CandidateLocation {
	var matches []int
	for start := 0; start+len(oldLines) <= len(fileLines); start++ {
		if windowsEqual(fileLines, oldLines, start, func(a, b string) bool { return a == b }) {
			matches = append(matches, start)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	best := pickByContext(fileLines, matches, len(oldLines), hint, hunk)
	return []editmodel.CandidateLocation{{
		HunkIndex:   hunkIndex,
		StartIdx:    best,
		EndIdx:      best + len(oldLines),
		Replacement: newLines,
		MatchType:   editmodel.MatchExact,
		Confidence:  1.0,
	}}
}

// pickByContext disambiguates multiple exact-match starts by
// context-bigram similarity of the surrounding ctx_probe-sized window
// against the hunk's lead/tail context, falling back to distance from
// hint when no lead/tail context exists or scores tie.
func pickByContext(fileLines []string, matches []int, oldLen, hint int, hunk editmodel.Hunk) int {
	if len(matches) == 1 {
		return matches[0]
	}
	lead := hunk.LeadContext()
	tail := hunk.TailContext()
	if len(lead) == 0 && len(tail) == 0 {
		return pickClosest(matches, hint)
	}

	best := matches[0]
	bestScore := -1.0
	bestDist := abs(best - hint)
	for _, m := range matches {
		leadWindow := windowBefore(fileLines, m, len(lead))
		tailWindow := windowAfter(fileLines, m+oldLen, len(tail))
		score := bigramSimilarity(leadWindow, lead) + bigramSimilarity(tailWindow, tail)
		dist := abs(m - hint)
		if score > bestScore || (score == bestScore && dist < bestDist) {
			best, bestScore, bestDist = m, score, dist
		}
	}
	return best
}

func windowBefore(fileLines []string, idx, n int) []string {
	start := clamp(idx-n, 0, len(fileLines))
	return fileLines[start:clamp(idx, 0, len(fileLines))]
}

func windowAfter(fileLines []string, idx, n int) []string {
	end := clamp(idx+n, 0, len(fileLines))
	return fileLines[clamp(idx, 0, len(fileLines)):end]
}

func whitespaceLooseMatch(fileLines, oldLines, newLines []string, hunkIndex, hint int) []editmodel.CandidateLocation {
	var matches []int
	for start := 0; start+len(oldLines) <= len(fileLines); start++ {
		if windowsEqual(fileLines, oldLines, start, trimmedEqual) {
			matches = append(matches, start)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	confidence := 0.6
	if len(matches) == 1 {
		confidence = 0.9
	}
	best := pickClosest(matches, hint)
	return []editmodel.CandidateLocation{{
		HunkIndex:   hunkIndex,
		StartIdx:    best,
		EndIdx:      best + len(oldLines),
		Replacement: newLines,
		MatchType:   editmodel.MatchWhitespaceLoose,
		Confidence:  confidence,
	}}
}

func fuzzyWindowMatch(fileLines, oldLines, newLines []string, hunkIndex, hint, lo, hi int) []editmodel.CandidateLocation {
	if len(oldLines) == 0 {
		return nil
	}
	firstOld := strings.TrimSpace(normalizeQuotes(oldLines[0]))
	bestScore := 0.0
	bestStart := -1

	for start := lo; start+len(oldLines) <= hi; start++ {
		firstFile := strings.TrimSpace(normalizeQuotes(fileLines[start]))
		if similarity(firstFile, firstOld) < 0.8 {
			continue
		}
		window := fileLines[start : start+len(oldLines)]
		score := linesSimilarity(trimAll(window), trimAll(oldLines))
		if score > bestScore {
			bestScore = score
			bestStart = start
		}
	}

	if bestStart == -1 {
		return nil
	}
	return []editmodel.CandidateLocation{{
		HunkIndex:   hunkIndex,
		StartIdx:    bestStart,
		EndIdx:      bestStart + len(oldLines),
		Replacement: newLines,
		MatchType:   editmodel.MatchFuzzyWindow,
		Confidence:  bestScore,
	}}
}

func trimAll(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = strings.TrimSpace(normalizeQuotes(l))
	}
	return out
}

func lineNumberStripMatch(fileLines, oldLines, newLines []string, hunkIndex, hint int) []editmodel.CandidateLocation {
	strippedOld := stripLineNumbers(oldLines)
	strippedFile := stripLineNumbers(fileLines)
	var matches []int
	for start := 0; start+len(strippedOld) <= len(strippedFile); start++ {
		if windowsEqual(strippedFile, strippedOld, start, trimmedEqual) {
			matches = append(matches, start)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	best := pickClosest(matches, hint)
	return []editmodel.CandidateLocation{{
		HunkIndex:   hunkIndex,
		StartIdx:    best,
		EndIdx:      best + len(oldLines),
		Replacement: newLines,
		MatchType:   editmodel.MatchLineNumberStrip,
		Confidence:  0.75,
	}}
}

func anchoredFlattenMatch(fileLines, oldLines, newLines []string, hunkIndex, hint int) []editmodel.CandidateLocation {
	flatOld := flattenWSLines(oldLines)
	flatFile := flattenWSLines(fileLines)
	var matches []int
	for start := 0; start+len(flatOld) <= len(flatFile); start++ {
		ok := true
		for i, l := range flatOld {
			if flatFile[start+i] != l {
				ok = false
				break
			}
		}
		if ok {
			matches = append(matches, start)
		}
	}
	if len(matches) == 0 {
		return nil
	}
	best := pickClosest(matches, hint)
	return []editmodel.CandidateLocation{{
		HunkIndex:   hunkIndex,
		StartIdx:    best,
		EndIdx:      best + len(oldLines),
		Replacement: newLines,
		MatchType:   editmodel.MatchAnchoredFlatten,
		Confidence:  0.65,
	}}
}

func uniqueEndAnchorMatch(fileLines, oldLines, newLines []string, hunkIndex, hint int) []editmodel.CandidateLocation {
	last := strings.TrimSpace(oldLines[len(oldLines)-1])
	if last == "" {
		return nil
	}
	var matches []int
	for i, l := range fileLines {
		if strings.TrimSpace(l) == last {
			matches = append(matches, i)
		}
	}
	if len(matches) != 1 {
		return nil
	}
	end := matches[0] + 1
	start := end - len(oldLines)
	if start < 0 {
		start = 0
	}
	return []editmodel.CandidateLocation{{
		HunkIndex:   hunkIndex,
		StartIdx:    start,
		EndIdx:      end,
		Replacement: newLines,
		MatchType:   editmodel.MatchUniqueEndAnchor,
		Confidence:  0.55,
	}}
}

// braceAwareFallback is the documented best-effort path for JS-ish code:
// it anchors on a unique leading line and extends the match to the next
// brace-balanced boundary, recognizing "function " as an additional
// anchor keyword. Intentionally ad hoc, invoked only once every other
// strategy has failed.
func braceAwareFallback(fileLines, oldLines, newLines []string, hunkIndex, hint int) []editmodel.CandidateLocation {
	if len(oldLines) == 0 {
		return nil
	}
	anchor := strings.TrimSpace(oldLines[0])
	if anchor == "" {
		return nil
	}
	var starts []int
	for i, l := range fileLines {
		if strings.TrimSpace(l) == anchor || (strings.Contains(l, "function ") && strings.Contains(anchor, "function ")) {
			starts = append(starts, i)
		}
	}
	if len(starts) != 1 {
		return nil
	}
	start := starts[0]
	end := findBraceBalancedEnd(fileLines, start)
	if end <= start {
		return nil
	}
	return []editmodel.CandidateLocation{{
		HunkIndex:   hunkIndex,
		StartIdx:    start,
		EndIdx:      end,
		Replacement: newLines,
		MatchType:   editmodel.MatchBraceFallback,
		Confidence:  0.5,
	}}
}

func findBraceBalancedEnd(fileLines []string, start int) int {
	depth := 0
	seenOpen := false
	for i := start; i < len(fileLines); i++ {
		for _, r := range fileLines[i] {
			switch r {
			case '{':
				depth++
				seenOpen = true
			case '}':
				depth--
			}
		}
		if seenOpen && depth <= 0 {
			return i + 1
		}
	}
	return -1
}

func pickClosest(candidates []int, hint int) int {
	best := candidates[0]
	bestDist := abs(best - hint)
	for _, c := range candidates[1:] {
		if d := abs(c - hint); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
