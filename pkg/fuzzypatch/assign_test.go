package fuzzypatch

import (
	"testing"

	"github.com/toyinlola/editcore/pkg/editmodel"
)

// An overlapping, higher-confidence candidate for hunk 0 must not be
// chosen alongside a candidate for hunk 1 that starts inside it: the
// assignment is only feasible once hunk 0 falls back to its
// non-overlapping, lower-confidence candidate.
func TestAssignCandidates_RejectsOverlappingIntervals(t *testing.T) {
	perHunk := [][]editmodel.CandidateLocation{
		{
			{HunkIndex: 0, StartIdx: 0, EndIdx: 10, Confidence: 1.0},
			{HunkIndex: 0, StartIdx: 0, EndIdx: 3, Confidence: 0.5},
		},
		{
			{HunkIndex: 1, StartIdx: 5, EndIdx: 8, Confidence: 1.0},
		},
	}

	assignment := assignCandidates(perHunk, []int{0, 5})

	if assignment[0] == nil || assignment[1] == nil {
		t.Fatalf("expected both hunks assigned, got %+v", assignment)
	}
	if assignment[0].EndIdx > assignment[1].StartIdx {
		t.Errorf("assigned intervals overlap: hunk0 %v, hunk1 %v", assignment[0], assignment[1])
	}
	assertEqual(t, "hunk0 StartIdx", 0, assignment[0].StartIdx)
	assertEqual(t, "hunk0 EndIdx", 3, assignment[0].EndIdx)
	assertEqual(t, "hunk1 StartIdx", 5, assignment[1].StartIdx)
}

// Two candidates that don't overlap but share the same start position
// must not both be accepted: start positions must strictly increase.
func TestAssignCandidates_RejectsNonIncreasingStarts(t *testing.T) {
	perHunk := [][]editmodel.CandidateLocation{
		{
			{HunkIndex: 0, StartIdx: 4, EndIdx: 4, Confidence: 1.0}, // insertion, zero-length
		},
		{
			{HunkIndex: 1, StartIdx: 4, EndIdx: 4, Confidence: 1.0}, // same start, also zero-length
			{HunkIndex: 1, StartIdx: 6, EndIdx: 6, Confidence: 0.4},
		},
	}

	assignment := assignCandidates(perHunk, []int{4, 4})

	if assignment[0] == nil || assignment[1] == nil {
		t.Fatalf("expected both hunks assigned, got %+v", assignment)
	}
	if assignment[1].StartIdx <= assignment[0].StartIdx {
		t.Errorf("hunk1 start %d did not strictly increase past hunk0 start %d", assignment[1].StartIdx, assignment[0].StartIdx)
	}
	assertEqual(t, "hunk1 StartIdx", 6, assignment[1].StartIdx)
}
