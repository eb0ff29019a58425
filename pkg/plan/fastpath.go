package plan

import (
	"strings"

	"github.com/gitleaks/go-gitdiff/gitdiff"
)

// exactApplyViaLibrary is the Change Planner's Tier 1: parse the diff
// block with the gitdiff library and apply its fragments only where the
// file's current lines match the fragment's old-side lines verbatim.
// Any mismatch (renumbered hunks, drifted context, a file that no
// longer matches) aborts the whole attempt so the caller falls through
// to the Fuzzy Patch Engine rather than applying a partial result.
func exactApplyViaLibrary(diffText, original string) (string, bool) {
	files, _, err := gitdiff.Parse(strings.NewReader(diffText))
	if err != nil || len(files) == 0 {
		return "", false
	}

	lines := splitLinesKeepEmpty(original)
	var out []string
	cursor := 0

	for _, file := range files {
		for _, frag := range file.TextFragments {
			start := int(frag.OldPosition) - 1
			if start < 0 || start < cursor || start > len(lines) {
				return "", false
			}
			out = append(out, lines[cursor:start]...)

			pos := start
			for _, l := range frag.Lines {
				text := strings.TrimSuffix(l.Line, "\n")
				switch l.Op {
				case gitdiff.OpContext:
					if pos >= len(lines) || lines[pos] != text {
						return "", false
					}
					out = append(out, text)
					pos++
				case gitdiff.OpDelete:
					if pos >= len(lines) || lines[pos] != text {
						return "", false
					}
					pos++
				case gitdiff.OpAdd:
					out = append(out, text)
				}
			}
			cursor = pos
		}
	}
	out = append(out, lines[cursor:]...)

	result := strings.Join(out, "\n")
	if strings.HasSuffix(original, "\n") {
		result += "\n"
	}
	return result, true
}

func splitLinesKeepEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}
