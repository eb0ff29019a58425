// Package diffparse implements the Diff Parser: turning unified-diff or
// simplified-dialect text into a slice of editmodel.Hunk values. Styled
// after the teacher's pkg/vcs diff parser (package-level compiled
// regexes, small accumulator structs), generalized to the edit-core's
// hunk shape and its simplified no-line-numbers dialect.
package diffparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/toyinlola/editcore/pkg/editerr"
	"github.com/toyinlola/editcore/pkg/editmodel"
)

var hunkHeaderRe = regexp.MustCompile(`^@@ -(\d+)(?:,(\d+))? \+(\d+)(?:,(\d+))? @@`)

// simplifiedSeparatorRe matches a bare "@@" separator line carrying no
// line numbers, used by the simplified dialect to mark a new hunk.
var simplifiedSeparatorRe = regexp.MustCompile(`^@@\s*$`)

// Parse parses diff text using the unified dialect if it finds at least
// one numbered hunk header, otherwise falls back to the simplified
// dialect. Returns editerr.PatchFailedError if zero hunks result.
func Parse(diffText string) ([]editmodel.Hunk, error) {
	lines := strings.Split(diffText, "\n")

	if hasUnifiedHeader(lines) {
		if hunks, ok := parseUnifiedViaLibrary(diffText); ok {
			return hunks, nil
		}
		hunks := parseUnified(lines)
		if len(hunks) == 0 {
			return nil, &editerr.PatchFailedError{HunkIndex: -1}
		}
		return hunks, nil
	}

	hunks := parseSimplified(lines)
	if len(hunks) == 0 {
		return nil, &editerr.PatchFailedError{HunkIndex: -1}
	}
	return hunks, nil
}

func hasUnifiedHeader(lines []string) bool {
	for _, l := range lines {
		if hunkHeaderRe.MatchString(l) {
			return true
		}
	}
	return false
}

func parseUnified(lines []string) []editmodel.Hunk {
	var hunks []editmodel.Hunk
	var current *editmodel.Hunk

	for _, line := range lines {
		if m := hunkHeaderRe.FindStringSubmatch(line); m != nil {
			if current != nil {
				hunks = append(hunks, *current)
			}
			h := editmodel.Hunk{
				OldStart: atoiOr(m[1], 1),
				OldLen:   atoiOr(m[2], 1),
				NewStart: atoiOr(m[3], 1),
				NewLen:   atoiOr(m[4], 1),
			}
			current = &h
			continue
		}
		if current == nil {
			continue
		}
		appendHunkLine(current, line)
	}
	if current != nil {
		hunks = append(hunks, *current)
	}
	return hunks
}

// parseSimplified parses the no-line-numbers dialect: hunks are
// separated by a bare "@@" line, and every line thereafter is context
// unless prefixed with '+' or '-'. OldStart/NewStart default to 1.
// Before the first hunk, blank lines, "--- "/"+++ " file headers and any
// line not starting with ' ', '+' or '-' are preamble and are dropped;
// the first "@@" or diff line starts the first hunk.
func parseSimplified(lines []string) []editmodel.Hunk {
	var hunks []editmodel.Hunk
	var current *editmodel.Hunk

	startNew := func() {
		if current != nil {
			hunks = append(hunks, *current)
		}
		h := editmodel.Hunk{OldStart: 1, NewStart: 1}
		current = &h
	}

	for _, line := range lines {
		if simplifiedSeparatorRe.MatchString(line) {
			startNew()
			continue
		}
		if current == nil {
			if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "--- ") ||
				strings.HasPrefix(line, "+++ ") || !strings.ContainsRune("+- ", rune(line[0])) {
				continue
			}
			startNew()
		}
		appendHunkLine(current, line)
	}
	if current != nil {
		hunks = append(hunks, *current)
	}

	// Drop empty hunks left by consecutive or trailing "@@" separators.
	var out []editmodel.Hunk
	for _, h := range hunks {
		if len(h.Lines) > 0 {
			out = append(out, h)
		}
	}
	return out
}

func appendHunkLine(h *editmodel.Hunk, line string) {
	if line == "" {
		h.Lines = append(h.Lines, editmodel.HunkLine{Kind: editmodel.LineContext, Text: ""})
		return
	}
	switch line[0] {
	case '+':
		h.Lines = append(h.Lines, editmodel.HunkLine{Kind: editmodel.LineAdd, Text: line[1:]})
	case '-':
		h.Lines = append(h.Lines, editmodel.HunkLine{Kind: editmodel.LineRemove, Text: line[1:]})
	case '\\':
		// "\ No newline at end of file" marker line; not content.
	default:
		text := line
		if len(text) > 0 && text[0] == ' ' {
			text = text[1:]
		}
		h.Lines = append(h.Lines, editmodel.HunkLine{Kind: editmodel.LineContext, Text: text})
	}
}

func atoiOr(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
