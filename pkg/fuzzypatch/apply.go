package fuzzypatch

import (
	"sort"

	"github.com/toyinlola/editcore/pkg/editmodel"
	"github.com/toyinlola/editcore/pkg/editlog"
)

// applyAssignment runs Phase 4: splices every resolved candidate into
// fileLines, processing them bottom-up (highest StartIdx first, ties
// broken by hunk index ascending) so earlier splices don't invalidate
// later indices. Overlapping candidates are logged as bugs and the
// later-processed (lower StartIdx) one is skipped rather than silently
// dropped from the log.
func applyAssignment(fileLines []string, assignment []*editmodel.CandidateLocation, log editlog.Logger) []string {
	type resolved struct {
		cand editmodel.CandidateLocation
	}
	var resolvedList []resolved
	for _, c := range assignment {
		if c != nil {
			resolvedList = append(resolvedList, resolved{cand: *c})
		}
	}

	sort.SliceStable(resolvedList, func(a, b int) bool {
		if resolvedList[a].cand.StartIdx != resolvedList[b].cand.StartIdx {
			return resolvedList[a].cand.StartIdx > resolvedList[b].cand.StartIdx
		}
		return resolvedList[a].cand.HunkIndex < resolvedList[b].cand.HunkIndex
	})

	out := make([]string, len(fileLines))
	copy(out, fileLines)

	lastStart := len(out) + 1
	for _, r := range resolvedList {
		c := r.cand
		if c.EndIdx > lastStart {
			log.Error("fuzzypatch: overlapping hunk placements detected",
				"hunk_index", c.HunkIndex, "start", c.StartIdx, "end", c.EndIdx, "previous_boundary", lastStart)
			continue
		}
		out = spliceLines(out, c.StartIdx, c.EndIdx, surgicalReplacement(fileLines, c))
		lastStart = c.StartIdx
	}

	return out
}

func spliceLines(lines []string, start, end int, replacement []string) []string {
	out := make([]string, 0, len(lines)-(end-start)+len(replacement))
	out = append(out, lines[:start]...)
	out = append(out, replacement...)
	out = append(out, lines[end:]...)
	return out
}

// surgicalReplacement re-indents a fuzzy-located candidate's replacement
// to the matched file segment. When at least 2/3 of the matched file
// lines equal the replacement line at the same position under strip(),
// the replacement's base indentation (that of its first non-empty line)
// is swapped for the file's (that of the first matched line) via
// reindentRelative. The replacement's lines, context lines included,
// still come from the hunk; file-side lines are not copied into it.
// Exact, insertion and conflict candidates are returned unchanged.
func surgicalReplacement(fileLines []string, c editmodel.CandidateLocation) []string {
	if c.MatchType == editmodel.MatchExact || c.MatchType == editmodel.MatchInsertion || c.MatchType == editmodel.MatchConflict {
		return c.Replacement
	}

	matched := fileLines[c.StartIdx:c.EndIdx]
	if len(matched) == 0 {
		return c.Replacement
	}

	aligned := 0
	for i := 0; i < len(matched) && i < len(c.Replacement); i++ {
		// Replacement here is the hunk's new-side content, not 1:1 with
		// matched old lines in general; this is an approximate alignment
		// check against the leading run, which is what surgical
		// reconstruction cares about.
		if trimmedEqual(matched[i], c.Replacement[i]) {
			aligned++
		}
	}
	threshold := (2 * len(matched)) / 3
	if aligned < threshold || len(matched) == 0 {
		return c.Replacement
	}

	fileBase := leadingWhitespace(matched[0])
	patchBase := leadingWhitespace(firstNonEmpty(c.Replacement))
	return reindentRelative(c.Replacement, patchBase, fileBase)
}

func firstNonEmpty(lines []string) string {
	for _, l := range lines {
		if l != "" {
			return l
		}
	}
	return ""
}
