package editmodel

// MatchType identifies which Fuzzy Patch Engine strategy produced a
// CandidateLocation.
type MatchType string

const (
	MatchExact            MatchType = "exact"
	MatchWhitespaceLoose   MatchType = "whitespace_loose"
	MatchFuzzyWindow       MatchType = "fuzzy_window"
	MatchMiddleOut         MatchType = "middle_out"
	MatchLineNumberStrip   MatchType = "line_number_strip"
	MatchAnchoredFlatten   MatchType = "anchored_flatten"
	MatchUniqueEndAnchor   MatchType = "unique_end_anchor"
	MatchBraceFallback     MatchType = "brace_fallback"
	MatchInsertion         MatchType = "insertion"
	MatchConflict          MatchType = "conflict"
)

// CandidateLocation is a proposed placement for one hunk within a file's
// current line slice.
type CandidateLocation struct {
	HunkIndex       int
	StartIdx, EndIdx int // half-open [StartIdx, EndIdx) into the file's lines
	Replacement     []string
	MatchType       MatchType
	Confidence      float64 // in [0, 1]
}
