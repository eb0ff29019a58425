package fuzzypatch

import (
	"sort"

	"github.com/toyinlola/editcore/pkg/editmodel"
)

// assignCandidates runs Phase 2: a backtracking search that assigns each
// hunk one of its discovered candidates such that assigned intervals are
// non-overlapping and start positions strictly increase with hunk index.
// Candidates are tried in confidence-descending order; the first
// feasible total assignment wins. A hunk with no feasible candidate gets
// a nil entry in the result, carried forward to Phase 3.
func assignCandidates(perHunk [][]editmodel.CandidateLocation, hints []int) []*editmodel.CandidateLocation {
	sorted := make([][]editmodel.CandidateLocation, len(perHunk))
	for i, cands := range perHunk {
		cp := make([]editmodel.CandidateLocation, len(cands))
		copy(cp, cands)
		hint := 0
		if i < len(hints) {
			hint = hints[i]
		}
		sort.SliceStable(cp, func(a, b int) bool {
			if cp[a].Confidence != cp[b].Confidence {
				return cp[a].Confidence > cp[b].Confidence
			}
			return abs(cp[a].StartIdx-hint) < abs(cp[b].StartIdx-hint)
		})
		sorted[i] = cp
	}

	assignment := make([]*editmodel.CandidateLocation, len(perHunk))
	if !backtrack(sorted, 0, -1, -1, assignment, false) {
		backtrack(sorted, 0, -1, -1, assignment, true)
	}
	return assignment
}

// backtrack tries to complete an assignment starting at hunk index i,
// given lastStart/lastEnd (the start and end of the previously assigned
// interval). A candidate is feasible only if its start strictly exceeds
// lastStart (constraint b) and its start is not inside the previous
// interval (constraint a, no overlap: cand.StartIdx >= lastEnd). It
// mutates assignment in place and returns true once every hunk from i
// onward has been resolved. With allowNil false every hunk must get a
// candidate; assignCandidates runs a second search with allowNil true,
// leaving a hunk nil when none of its candidates is feasible, only when
// no complete assignment exists.
func backtrack(sorted [][]editmodel.CandidateLocation, i, lastStart, lastEnd int, assignment []*editmodel.CandidateLocation, allowNil bool) bool {
	if i == len(sorted) {
		return true
	}

	for ci := range sorted[i] {
		cand := sorted[i][ci]
		if cand.StartIdx <= lastStart || cand.StartIdx < lastEnd {
			continue
		}
		assignment[i] = &cand
		if backtrack(sorted, i+1, cand.StartIdx, cand.EndIdx, assignment, allowNil) {
			return true
		}
		assignment[i] = nil
	}

	if !allowNil {
		return false
	}
	// No candidate for this hunk keeps the rest of the search feasible;
	// leave it unassigned and continue so later hunks still get a shot.
	assignment[i] = nil
	return backtrack(sorted, i+1, lastStart, lastEnd, assignment, allowNil)
}
