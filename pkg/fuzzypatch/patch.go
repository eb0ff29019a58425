// Package fuzzypatch implements the Fuzzy Patch Engine: given a
// unified/simplified diff or a structured search/replace operation, it
// locates each hunk's target lines in a file that may no longer match
// the diff's stated line numbers exactly, and applies the change.
//
// The pipeline runs in four phases: per-hunk candidate discovery
// (Phase 1, candidates.go/insertion.go), global backtracking assignment
// (Phase 2, assign.go), anchor-bounded refinement with merge-conflict
// synthesis (Phase 3, refine.go), and bottom-up splice application
// (Phase 4, apply.go).
package fuzzypatch

import (
	"github.com/toyinlola/editcore/pkg/diffparse"
	"github.com/toyinlola/editcore/pkg/editerr"
	"github.com/toyinlola/editcore/pkg/editlog"
	"github.com/toyinlola/editcore/pkg/editmodel"
)

// Patch is anything PatchText/FuzzyPatchPartial can apply: either a raw
// diff string (unified or simplified dialect) or a pre-built
// StructuredOp for the search/replace path.
type Patch = any

// PatchText applies patch to content and returns the result. It is
// strict: if any hunk cannot be placed above threshold, it returns a
// *editerr.PatchFailedError naming the first such hunk and leaves
// content untouched.
func PatchText(content string, patch Patch, threshold float64, logger editlog.Logger) (string, error) {
	if logger == nil {
		logger = editlog.NoOp()
	}
	opts := defaultOptions(threshold)

	if op, ok := patch.(StructuredOp); ok {
		return applyStructuredOp(content, op)
	}

	diffText, ok := patch.(string)
	if !ok {
		return "", &editerr.ExtractError{Reason: "unsupported patch value for fuzzy patch engine"}
	}

	hunks, err := diffparse.Parse(diffText)
	if err != nil {
		return "", err
	}

	style, trailingNewline := detectEOL(content)
	fileLines := splitIntoLines(content)

	hints := computeStartHints(hunks, len(fileLines))

	perHunk := make([][]editmodel.CandidateLocation, len(hunks))
	for i, h := range hunks {
		perHunk[i] = discoverCandidates(fileLines, h, i, hints[i])
	}

	assignment := assignCandidates(perHunk, hints)
	assignment = refineAssignment(fileLines, hunks, hints, assignment)

	for i, c := range assignment {
		if c == nil || (c.Confidence < opts.threshold && c.MatchType != editmodel.MatchConflict) {
			best := 0.0
			if c != nil {
				best = c.Confidence
			}
			return "", &editerr.PatchFailedError{HunkIndex: i, BestRatio: best}
		}
	}

	result := applyAssignment(fileLines, assignment, logger)
	return joinLines(result, style, trailingNewline), nil
}

// FuzzyPatchPartial is the best-effort counterpart to PatchText: it
// applies every hunk it can place above threshold, and reports the
// hunks it could not place instead of failing the whole operation.
// Unresolved hunks whose Phase 3 bounding both sides succeeded still
// come back as placed merge-conflict candidates (and so do not appear
// in failed), whatever the threshold; only hunks with no candidate at
// all, or a non-conflict candidate below threshold, are reported as
// failed.
func FuzzyPatchPartial(content string, patch Patch, threshold float64) (string, []int, []FailedHunk) {
	opts := defaultOptions(threshold)

	if op, ok := patch.(StructuredOp); ok {
		out, err := applyStructuredOp(content, op)
		if err != nil {
			return content, nil, []FailedHunk{{HunkIndex: 0, OldContent: op.Old, NewContent: op.New}}
		}
		return out, []int{0}, nil
	}

	diffText, ok := patch.(string)
	if !ok {
		return content, nil, []FailedHunk{{HunkIndex: -1}}
	}

	hunks, err := diffparse.Parse(diffText)
	if err != nil {
		return content, nil, []FailedHunk{{HunkIndex: -1}}
	}

	style, trailingNewline := detectEOL(content)
	fileLines := splitIntoLines(content)

	hints := computeStartHints(hunks, len(fileLines))

	perHunk := make([][]editmodel.CandidateLocation, len(hunks))
	for i, h := range hunks {
		perHunk[i] = discoverCandidates(fileLines, h, i, hints[i])
	}

	assignment := assignCandidates(perHunk, hints)
	assignment = refineAssignment(fileLines, hunks, hints, assignment)

	var applied []int
	var failed []FailedHunk
	keep := make([]*editmodel.CandidateLocation, len(assignment))
	for i, c := range assignment {
		if c == nil || (c.Confidence < opts.threshold && c.MatchType != editmodel.MatchConflict) {
			best := 0.0
			if c != nil {
				best = c.Confidence
			}
			failed = append(failed, FailedHunk{
				HunkIndex:  i,
				OldContent: hunks[i].OldContent(),
				NewContent: hunks[i].NewContent(),
				LeadCtx:    hunks[i].LeadContext(),
				TailCtx:    hunks[i].TailContext(),
				HeaderHint: hints[i],
				BestRatio:  best,
			})
			continue
		}
		keep[i] = c
		applied = append(applied, i)
	}

	result := applyAssignment(fileLines, keep, editlog.NoOp())
	return joinLines(result, style, trailingNewline), applied, failed
}
