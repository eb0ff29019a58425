package fuzzypatch

import (
	"fmt"

	"github.com/toyinlola/editcore/pkg/editmodel"
)

const perfectConfidence = 0.95

// refineAssignment runs Phase 3: for every hunk whose Phase 2 assignment
// is missing or below perfectConfidence, it re-runs candidate discovery
// restricted to the range bounded by the nearest neighbor at or above
// perfectConfidence before and after it. If a candidate turns up there, it replaces the
// Phase 2 assignment; if the hunk is bounded on both sides but still
// unresolved, a merge-conflict candidate is synthesized in its place.
func refineAssignment(fileLines []string, hunks []editmodel.Hunk, hints []int, assignment []*editmodel.CandidateLocation) []*editmodel.CandidateLocation {
	out := make([]*editmodel.CandidateLocation, len(assignment))
	copy(out, assignment)

	for i, cand := range out {
		if cand != nil && cand.Confidence >= perfectConfidence {
			continue
		}

		loBound, hiBound, hasLo, hasHi := boundingRange(out, i, len(fileLines))

		restricted := discoverCandidatesBounded(fileLines, hunks[i], i, hints[i], loBound, hiBound)
		if len(restricted) > 0 {
			best := restricted[0]
			for _, c := range restricted[1:] {
				if c.Confidence > best.Confidence {
					best = c
				}
			}
			out[i] = &best
			continue
		}

		if cand != nil {
			// Phase 2 already found something merely imperfect; keep it
			// rather than discard a usable (if non-exact) placement.
			continue
		}

		if hasLo && hasHi {
			out[i] = synthesizeConflict(fileLines, hunks[i], i, loBound, hiBound)
		}
	}

	return out
}

// boundingRange returns the line-index range bounded by the nearest
// assignment at or above perfectConfidence before and after index i.
func boundingRange(assignment []*editmodel.CandidateLocation, i, fileLen int) (lo, hi int, hasLo, hasHi bool) {
	lo, hi = 0, fileLen
	for j := i - 1; j >= 0; j-- {
		if assignment[j] != nil && assignment[j].Confidence >= perfectConfidence {
			lo = assignment[j].EndIdx
			hasLo = true
			break
		}
	}
	for j := i + 1; j < len(assignment); j++ {
		if assignment[j] != nil && assignment[j].Confidence >= perfectConfidence {
			hi = assignment[j].StartIdx
			hasHi = true
			break
		}
	}
	return lo, hi, hasLo, hasHi
}

func discoverCandidatesBounded(fileLines []string, hunk editmodel.Hunk, hunkIndex, hint, lo, hi int) []editmodel.CandidateLocation {
	if lo >= hi || lo < 0 || hi > len(fileLines) {
		return nil
	}
	sub := fileLines[lo:hi]
	cands := discoverCandidates(sub, hunk, hunkIndex, clamp(hint-lo, 0, len(sub)))
	for i := range cands {
		cands[i].StartIdx += lo
		cands[i].EndIdx += lo
	}
	return cands
}

// synthesizeConflict builds a merge-conflict CandidateLocation spanning
// [lo,hi): the bounded original lines on the CURRENT side, the hunk's
// new content on the PATCH side, using the exact marker text spec.md
// requires.
func synthesizeConflict(fileLines []string, hunk editmodel.Hunk, hunkIndex, lo, hi int) *editmodel.CandidateLocation {
	var replacement []string
	replacement = append(replacement, "<<<<<<< CURRENT (file content)")
	replacement = append(replacement, fileLines[lo:hi]...)
	replacement = append(replacement, "=======")
	replacement = append(replacement, splitIntoLines(hunk.NewContent())...)
	replacement = append(replacement, fmt.Sprintf(">>>>>>> PATCH (hunk #%d)", hunkIndex))

	return &editmodel.CandidateLocation{
		HunkIndex:   hunkIndex,
		StartIdx:    lo,
		EndIdx:      hi,
		Replacement: replacement,
		MatchType:   editmodel.MatchConflict,
		Confidence:  0.25,
	}
}
