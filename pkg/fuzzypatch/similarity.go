package fuzzypatch

import (
	"strings"

	dmp "github.com/sergi/go-diff/diffmatchpatch"
)

var dmpInstance = dmp.New()

// similarity returns a 0..1 ratio of how alike a and b are, computed the
// same way the original implementation's _similarity wraps
// difflib.SequenceMatcher.ratio(): twice the number of matching
// characters (found via an LCS-style diff) over the combined length.
func similarity(a, b string) float64 {
	if a == b {
		if a == "" {
			return 1.0
		}
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	diffs := dmpInstance.DiffMain(a, b, false)
	matching := 0
	for _, d := range diffs {
		if d.Type == dmp.DiffEqual {
			matching += len(d.Text)
		}
	}
	total := len(a) + len(b)
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matching) / float64(total)
}

// linesSimilarity computes similarity over whole line slices by joining
// them with "\n", matching the original's line-wise use of
// SequenceMatcher.
func linesSimilarity(a, b []string) float64 {
	return similarity(strings.Join(a, "\n"), strings.Join(b, "\n"))
}

// bigramSimilarity scores context overlap for tie-breaking exact-match
// candidates: the fraction of adjacent-line-pair "bigrams" shared between
// two line slices.
func bigramSimilarity(a, b []string) float64 {
	ag := bigrams(a)
	bg := bigrams(b)
	if len(ag) == 0 || len(bg) == 0 {
		return 0
	}
	bset := make(map[string]int, len(bg))
	for _, g := range bg {
		bset[g]++
	}
	shared := 0
	for _, g := range ag {
		if bset[g] > 0 {
			shared++
			bset[g]--
		}
	}
	return 2.0 * float64(shared) / float64(len(ag)+len(bg))
}

func bigrams(lines []string) []string {
	if len(lines) < 2 {
		return nil
	}
	out := make([]string, 0, len(lines)-1)
	for i := 0; i+1 < len(lines); i++ {
		out = append(out, lines[i]+"\x00"+lines[i+1])
	}
	return out
}
