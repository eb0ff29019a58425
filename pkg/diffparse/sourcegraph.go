package diffparse

import (
	sgdiff "github.com/sourcegraph/go-diff/diff"

	"github.com/toyinlola/editcore/pkg/editmodel"
)

// parseUnifiedViaLibrary attempts to parse a well-formed unified diff
// using sourcegraph/go-diff, which is stricter (and faster to fail) than
// the hand-rolled regex scanner above. It only covers the standard
// dialect: a document using the simplified no-line-numbers form or one
// that omits file headers entirely will not parse here, and callers fall
// back to parseUnified for those cases.
func parseUnifiedViaLibrary(diffText string) ([]editmodel.Hunk, bool) {
	fileDiffs, err := sgdiff.ParseMultiFileDiff([]byte(diffText))
	if err != nil || len(fileDiffs) == 0 {
		return nil, false
	}

	var hunks []editmodel.Hunk
	for _, fd := range fileDiffs {
		for _, h := range fd.Hunks {
			hunks = append(hunks, convertSourcegraphHunk(h))
		}
	}
	if len(hunks) == 0 {
		return nil, false
	}
	return hunks, true
}

func convertSourcegraphHunk(h *sgdiff.Hunk) editmodel.Hunk {
	out := editmodel.Hunk{
		OldStart: int(h.OrigStartLine),
		OldLen:   int(h.OrigLines),
		NewStart: int(h.NewStartLine),
		NewLen:   int(h.NewLines),
	}
	for _, line := range splitHunkBody(h.Body) {
		appendHunkLine(&out, line)
	}
	return out
}

func splitHunkBody(body []byte) []string {
	s := string(body)
	if len(s) > 0 && s[len(s)-1] == '\n' {
		s = s[:len(s)-1]
	}
	if s == "" {
		return nil
	}
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}
