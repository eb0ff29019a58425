package fuzzypatch

import (
	"testing"

	"github.com/toyinlola/editcore/pkg/editmodel"
)

func TestLocateInsertionIndex_PrefersSandwichedPoint(t *testing.T) {
	fileLines := []string{"L1", "L2", "mid", "T1", "T2"}
	hunk := editmodel.Hunk{Lines: []editmodel.HunkLine{
		{Kind: editmodel.LineContext, Text: "L1"},
		{Kind: editmodel.LineContext, Text: "L2"},
		{Kind: editmodel.LineAdd, Text: "NEW"},
		{Kind: editmodel.LineContext, Text: "T1"},
		{Kind: editmodel.LineContext, Text: "T2"},
	}}

	got := locateInsertionIndex(fileLines, hunk, 2)
	assertEqual(t, "insertion index", 2, got)
}

// The lead anchor's only occurrence is far from the hint and doesn't
// sandwich it with the tail anchor; the nearer tail anchor must win
// instead of the lead anchor being preferred unconditionally.
func TestLocateInsertionIndex_PrefersCloserAnchorWhenNoSandwich(t *testing.T) {
	fileLines := []string{"L1", "L2", "x", "y", "z", "T1", "end"}
	hunk := editmodel.Hunk{Lines: []editmodel.HunkLine{
		{Kind: editmodel.LineContext, Text: "L1"},
		{Kind: editmodel.LineContext, Text: "L2"},
		{Kind: editmodel.LineAdd, Text: "NEW"},
		{Kind: editmodel.LineContext, Text: "T1"},
	}}

	got := locateInsertionIndex(fileLines, hunk, 6)
	assertEqual(t, "insertion index", 5, got)
}
