package fuzzypatch

import (
	"strings"

	"github.com/toyinlola/editcore/pkg/editmodel"
)

// locateInsertionIndex finds where a pure-addition hunk's new lines
// should be spliced in, anchored on its lead/tail context. When both a
// lead and a tail anchor exist, it prefers a point between a lead_end
// and a tail_start that sandwich start_hint; otherwise it uses whichever
// single anchor sits closer to the hint. With no context at all (an
// addition at the very start or end of a file), it falls back to the
// header hint.
func locateInsertionIndex(fileLines []string, hunk editmodel.Hunk, hint int) int {
	lead := hunk.LeadContext()
	tail := hunk.TailContext()

	var leadEnds, tailStarts []int
	if len(lead) > 0 {
		for _, idx := range findAllContiguous(fileLines, lead) {
			leadEnds = append(leadEnds, idx+len(lead))
		}
	}
	if len(tail) > 0 {
		tailStarts = findAllContiguous(fileLines, tail)
	}

	if len(leadEnds) > 0 && len(tailStarts) > 0 {
		if point, ok := sandwichPoint(leadEnds, tailStarts, hint); ok {
			return point
		}
		bestLead, leadDist := closestTo(leadEnds, hint)
		bestTail, tailDist := closestTo(tailStarts, hint)
		if leadDist <= tailDist {
			return bestLead
		}
		return bestTail
	}
	if len(leadEnds) > 0 {
		best, _ := closestTo(leadEnds, hint)
		return best
	}
	if len(tailStarts) > 0 {
		best, _ := closestTo(tailStarts, hint)
		return best
	}
	if len(fileLines) == 0 {
		return 0
	}
	return clamp(hint, 0, len(fileLines))
}

// sandwichPoint looks for a lead_end/tail_start pair that brackets hint
// (lead_end <= hint <= tail_start), preferring the tightest bracket and,
// among ties, the bracket closest to hint. It returns lead_end as the
// actual splice point, since that is where the lead context ends.
func sandwichPoint(leadEnds, tailStarts []int, hint int) (int, bool) {
	bestGap := -1
	bestPoint := 0
	found := false
	for _, le := range leadEnds {
		for _, ts := range tailStarts {
			if le > ts || le > hint || hint > ts {
				continue
			}
			gap := ts - le
			if !found || gap < bestGap || (gap == bestGap && abs(le-hint) < abs(bestPoint-hint)) {
				found = true
				bestGap = gap
				bestPoint = le
			}
		}
	}
	return bestPoint, found
}

func closestTo(candidates []int, hint int) (int, int) {
	best := candidates[0]
	bestDist := abs(best - hint)
	for _, c := range candidates[1:] {
		if d := abs(c - hint); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best, bestDist
}

// findAllContiguous returns every start index where anchor occurs
// contiguously within fileLines, using trimmed-line equality.
func findAllContiguous(fileLines, anchor []string) []int {
	var matches []int
	for start := 0; start+len(anchor) <= len(fileLines); start++ {
		ok := true
		for i, l := range anchor {
			if strings.TrimSpace(fileLines[start+i]) != strings.TrimSpace(l) {
				ok = false
				break
			}
		}
		if ok {
			matches = append(matches, start)
		}
	}
	return matches
}
