package fuzzypatch

import "github.com/toyinlola/editcore/pkg/editmodel"

// StructuredOp is one entry of the structured patch mode: either a
// regex Pattern (single replace of its first match) or an Old/New pair
// (literal replace of Old, narrowed to the common head/tail of Old and
// New when Old does not occur verbatim).
type StructuredOp struct {
	Old     string
	New     string
	Pattern string
}

// FailedHunk describes a hunk the best-effort entry point could not
// place with sufficient confidence.
type FailedHunk struct {
	HunkIndex  int
	OldContent string
	NewContent string
	LeadCtx    []string
	TailCtx    []string
	HeaderHint int
	BestRatio  float64
}

// options bundles the knobs shared by the candidate-discovery phases.
type options struct {
	threshold float64
}

func defaultOptions(threshold float64) options {
	if threshold <= 0 {
		threshold = 0.6
	}
	return options{threshold: threshold}
}

// hunkWithHint pairs a parsed hunk with its computed start hint, the
// per-hunk input to phase 1.
type hunkWithHint struct {
	hunk editmodel.Hunk
	hint int
}
