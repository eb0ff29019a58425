package fuzzypatch

import (
	"regexp"
	"strings"

	"github.com/toyinlola/editcore/pkg/editerr"
)

// applyStructuredOp runs the structured patch mode used for
// search/replace blocks: a Pattern does a single regex replace of its
// first match; an Old/New pair replaces the first literal occurrence of
// Old. Only when Old does not occur verbatim does it narrow the edit to
// the common leading and trailing text of Old and New and, if both are
// found in content, replace the span between them; otherwise the op
// fails. Supplying neither Pattern nor Old is a construction error —
// there is nothing to anchor the replace on.
func applyStructuredOp(content string, op StructuredOp) (string, error) {
	if op.Pattern != "" {
		return applyPatternOp(content, op.Pattern, op.New)
	}
	if op.Old != "" {
		return applyOldNewOp(content, op.Old, op.New)
	}
	return "", &editerr.ExtractError{Reason: "structured op has neither pattern nor old content to anchor on"}
}

func applyPatternOp(content, pattern, replacement string) (string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", &editerr.ExtractError{Reason: "invalid structured patch pattern: " + err.Error()}
	}
	loc := re.FindStringIndex(content)
	if loc == nil {
		return "", &editerr.PatchFailedError{HunkIndex: 0, BestRatio: 0}
	}
	return content[:loc[0]] + re.ReplaceAllString(content[loc[0]:loc[1]], replacement) + content[loc[1]:], nil
}

func applyOldNewOp(content, old, new string) (string, error) {
	if !strings.Contains(content, old) {
		if head, tail, ok := commonHeadTail(old, new); ok {
			if idx := strings.Index(content, head); idx >= 0 {
				rest := content[idx+len(head):]
				if tailIdx := strings.Index(rest, tail); tailIdx >= 0 {
					middleNew := new[len(head) : len(new)-len(tail)]
					return content[:idx+len(head)] + middleNew + rest[tailIdx:], nil
				}
			}
		}
		return "", &editerr.PatchFailedError{HunkIndex: 0, BestRatio: similarity(content, old)}
	}
	return strings.Replace(content, old, new, 1), nil
}

// commonHeadTail finds the longest common prefix and (non-overlapping)
// suffix between old and new, used to narrow a structured replace down
// to the actually-changed middle span.
func commonHeadTail(old, new string) (head, tail string, ok bool) {
	maxHead := min(len(old), len(new))
	h := 0
	for h < maxHead && old[h] == new[h] {
		h++
	}
	maxTail := min(len(old)-h, len(new)-h)
	t := 0
	for t < maxTail && old[len(old)-1-t] == new[len(new)-1-t] {
		t++
	}
	if h == 0 && t == 0 {
		return "", "", false
	}
	return old[:h], old[len(old)-t:], true
}
