package fuzzypatch

import (
	"testing"

	"github.com/toyinlola/editcore/pkg/editmodel"
)

// Two occurrences of the same old line block exist; the header hint
// alone points at the wrong one, but the surrounding context (outside
// the matched window) only agrees with the correct occurrence's
// lead context, so bigram similarity must override the hint.
func TestPickByContext_BreaksExactMatchTieByBigramSimilarity(t *testing.T) {
	fileLines := []string{
		"AAA", "BBB", // lead context of the real match
		"xxx",        // matched old line, occurrence 1 (correct)
		"filler",
		"QQQ", "RRR", // unrelated lines before occurrence 2
		"xxx",        // matched old line, occurrence 2 (decoy)
		"end",
	}
	matches := []int{2, 6}
	hunk := editmodel.Hunk{Lines: []editmodel.HunkLine{
		{Kind: editmodel.LineContext, Text: "AAA"},
		{Kind: editmodel.LineContext, Text: "BBB"},
		{Kind: editmodel.LineRemove, Text: "xxx"},
		{Kind: editmodel.LineAdd, Text: "yyy"},
	}}

	// hint is closer to the decoy (6) than the correct match (2).
	got := pickByContext(fileLines, matches, 1, 100, hunk)
	assertEqual(t, "picked start", 2, got)
}

func TestPickByContext_FallsBackToHintWithNoLeadOrTailContext(t *testing.T) {
	fileLines := []string{"x", "y", "x", "z"}
	matches := []int{0, 2}
	hunk := editmodel.Hunk{Lines: []editmodel.HunkLine{
		{Kind: editmodel.LineRemove, Text: "x"},
		{Kind: editmodel.LineAdd, Text: "w"},
	}}

	got := pickByContext(fileLines, matches, 1, 2, hunk)
	assertEqual(t, "picked start", 2, got)
}
