package extract

import (
	"regexp"
	"strings"

	"github.com/toyinlola/editcore/pkg/editmodel"
)

// searchReplaceRe matches one SEARCH/REPLACE tuple. The path hint, if any,
// is taken from the line(s) preceding the marker.
var searchReplaceRe = regexp.MustCompile(`(?s)<<<<<<<[ \t]*SEARCH\r?\n(.*?)\r?\n=======\r?\n(.*?)\r?\n>>>>>>>[ \t]*REPLACE`)

// chevronRe matches the abbreviated "<<<<"/"===="/">>>>" variant.
var chevronRe = regexp.MustCompile(`(?s)<<<<\r?\n(.*?)\r?\n====\r?\n(.*?)\r?\n>>>>`)

// patchEnvelopeRe matches the custom "*** Begin Patch" / "*** End Patch"
// wrapper some tools emit around one or more unified-diff-like hunks.
var patchEnvelopeRe = regexp.MustCompile(`(?s)\*\*\* Begin Patch\r?\n(.*?)\r?\n\*\*\* End Patch`)

// extractSearchReplaceBlocks finds every SEARCH/REPLACE tuple in the
// document, wherever it appears (inside or outside a fence). Each tuple
// becomes its own Block; never deduplicated.
func extractSearchReplaceBlocks(markdown string, lines []string, offsets []int) []editmodel.Block {
	var blocks []editmodel.Block
	for _, m := range searchReplaceRe.FindAllStringSubmatchIndex(markdown, -1) {
		old := markdown[m[2]:m[3]]
		newText := markdown[m[4]:m[5]]
		start, end := m[0], m[1]
		path := pathHintFromContext(lines, lineIndexForOffset(offsets, start), 5)
		blocks = append(blocks, editmodel.Block{
			Type:        editmodel.BlockSearchReplace,
			Start:       start,
			End:         end,
			Path:        path,
			IsSynthetic: true,
			Pairs:       []editmodel.SearchReplacePair{{Old: old, New: newText}},
		})
	}
	return blocks
}

// extractChevronBlocks finds every abbreviated chevron tuple. An empty
// new side means the tuple describes a deletion.
func extractChevronBlocks(markdown string, lines []string, offsets []int) []editmodel.Block {
	var blocks []editmodel.Block
	for _, m := range chevronRe.FindAllStringSubmatchIndex(markdown, -1) {
		old := markdown[m[2]:m[3]]
		newText := markdown[m[4]:m[5]]
		start, end := m[0], m[1]
		path := pathHintFromContext(lines, lineIndexForOffset(offsets, start), 5)
		if path == "" {
			path = pathHintFromCommentHeader(old)
		}
		blocks = append(blocks, editmodel.Block{
			Type:        editmodel.BlockSearchReplace,
			Start:       start,
			End:         end,
			Path:        path,
			IsSynthetic: true,
			Pairs:       []editmodel.SearchReplacePair{{Old: old, New: strings.TrimSpace(newText)}},
		})
	}
	return blocks
}

// extractPatchEnvelopeBlocks finds custom patch envelopes and emits one
// diff Block per envelope, using the envelope's own path/file headers
// (left to the classifier/diff parser) rather than surrounding context.
func extractPatchEnvelopeBlocks(markdown string) []editmodel.Block {
	var blocks []editmodel.Block
	for _, m := range patchEnvelopeRe.FindAllStringSubmatchIndex(markdown, -1) {
		body := markdown[m[2]:m[3]]
		start, end := m[0], m[1]
		blocks = append(blocks, editmodel.Block{
			Type:        editmodel.BlockDiff,
			Start:       start,
			End:         end,
			Content:     body,
			IsSynthetic: true,
		})
	}
	return blocks
}

// overlaps reports whether [start,end) intersects any of the given
// consumed ranges.
func overlaps(start, end int, consumed [][2]int) bool {
	for _, r := range consumed {
		if start < r[1] && end > r[0] {
			return true
		}
	}
	return false
}

// renameFromRe / renameToRe detect explicit git-style rename headers.
var (
	renameFromRe = regexp.MustCompile(`(?m)^rename from (.+)$`)
	renameToRe   = regexp.MustCompile(`(?m)^rename to (.+)$`)
	minusHeaderRe = regexp.MustCompile(`(?m)^--- a/(.+)$`)
	plusDevNullRe = regexp.MustCompile(`(?m)^\+\+\+ /dev/null\s*$`)
	minusDevNullRe = regexp.MustCompile(`(?m)^--- /dev/null\s*$`)
	plusHeaderRe  = regexp.MustCompile(`(?m)^\+\+\+ b/(.+)$`)
	deletedModeRe = regexp.MustCompile(`(?m)^deleted file mode`)
)

// detectRenameFromDiff reports whether a diff body describes a pure
// rename and, if so, the from/to paths.
func detectRenameFromDiff(body string) (from, to string, ok bool) {
	fm := renameFromRe.FindStringSubmatch(body)
	tm := renameToRe.FindStringSubmatch(body)
	if fm == nil || tm == nil {
		return "", "", false
	}
	return strings.TrimSpace(fm[1]), strings.TrimSpace(tm[1]), true
}

// detectDeletionFromDiff reports whether a diff body describes a file
// deletion and, if so, the deleted path.
func detectDeletionFromDiff(body string) (path string, ok bool) {
	if deletedModeRe.MatchString(body) || plusDevNullRe.MatchString(body) {
		if m := minusHeaderRe.FindStringSubmatch(body); m != nil {
			return strings.TrimSpace(m[1]), true
		}
	}
	return "", false
}

// looksLikeDiff reports whether text has the structural shape of a
// unified diff: at least one hunk header or a paired ---/+++ header.
func looksLikeDiff(text string) bool {
	if strings.Contains(text, "\n@@ ") || strings.HasPrefix(text, "@@ ") {
		return true
	}
	return minusHeaderRe.MatchString(text) && plusHeaderRe.MatchString(text)
}

// splitMultiFileDiff splits a body containing multiple "diff --git" or
// "--- a/" headers into one sub-body per file.
func splitMultiFileDiff(body string) []string {
	gitHeaderRe := regexp.MustCompile(`(?m)^diff --git `)
	idx := gitHeaderRe.FindAllStringIndex(body, -1)
	if len(idx) < 2 {
		idx = minusHeaderRe.FindAllStringIndex(body, -1)
	}
	if len(idx) < 2 {
		return []string{body}
	}
	var parts []string
	for i, loc := range idx {
		start := loc[0]
		end := len(body)
		if i+1 < len(idx) {
			end = idx[i+1][0]
		}
		parts = append(parts, body[start:end])
	}
	return parts
}
