// Package classify implements the Metadata Classifier: deciding, for a
// block whose path and kind aren't already pinned down by the extractor,
// what path it targets and whether its content is a diff or a full file
// replacement.
package classify

import (
	"regexp"
	"strings"
)

var (
	plusHeaderRe  = regexp.MustCompile(`(?m)^\+\+\+ b/(.+)$`)
	minusHeaderRe = regexp.MustCompile(`(?m)^--- a/(.+)$`)
	minusDevNull  = regexp.MustCompile(`(?m)^--- /dev/null\s*$`)
	gitDiffRe     = regexp.MustCompile(`(?m)^diff --git a/\S+ b/(\S+)$`)
	indexRe       = regexp.MustCompile(`(?m)^Index:\s*(\S+)$`)
	hunkMarkerRe  = regexp.MustCompile(`(?m)^@@ `)

	truncationMarkerRe = regexp.MustCompile(`(?m)^\s*(?://|#|--|/\*|<!--)?\s*\.\.\.\s*(?:\*/|-->)?\s*(?:\(.*\))?\s*$`)

	structuralCueRe = regexp.MustCompile(`(?m)^\s*(import |from |class |def |function |var |let |const )`)
	markupCueRe     = regexp.MustCompile(`(?i)^\s*(<!DOCTYPE|<html|<\?xml)`)
	jsonCueRe       = regexp.MustCompile(`^\s*\{`)
)

// Classification is the classifier's verdict for a block's content.
type Classification struct {
	Path         string
	IsDiff       bool
	FullReplace  bool
}

// ClassifyDiffHeaders checks for diff headers appearing in the code body
// itself, highest priority: "+++ b/X", "--- a/X" (ignoring /dev/null),
// "diff --git a/_ b/X", "Index: X". Returns the bound path and true if
// any matched.
func ClassifyDiffHeaders(content string) (path string, ok bool) {
	if m := plusHeaderRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if m := minusHeaderRe.FindStringSubmatch(content); m != nil && !minusDevNull.MatchString(content) {
		return strings.TrimSpace(m[1]), true
	}
	if m := gitDiffRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	if m := indexRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1]), true
	}
	return "", false
}

// Classify determines the path and diff/full-replacement verdict for a
// block whose content and surrounding context are given. contextPath is
// any path hint already known from the extractor (info string or
// comment header); it's used when the content itself carries none.
func Classify(content, contextPath string) Classification {
	if path, ok := ClassifyDiffHeaders(content); ok {
		return Classification{Path: path, IsDiff: true}
	}

	if hunkMarkerRe.MatchString(content) || (minusHeaderRe.MatchString(content) && plusHeaderRe.MatchString(content)) {
		return Classification{Path: contextPath, IsDiff: true}
	}

	if truncationMarkerRe.MatchString(content) {
		return Classification{Path: contextPath, IsDiff: false, FullReplace: false}
	}

	if structuralCueRe.MatchString(content) || markupCueRe.MatchString(content) || jsonCueRe.MatchString(content) {
		return Classification{Path: contextPath, IsDiff: false, FullReplace: true}
	}

	return Classification{Path: contextPath, IsDiff: false, FullReplace: true}
}

// ContainsTruncationMarker reports whether text contains a truncation
// ellipsis marker in any of the recognized comment styles ("# ...",
// "// ...", "<!-- ... -->", "/* ... */", or a bare "...").
func ContainsTruncationMarker(text string) bool {
	return truncationMarkerRe.MatchString(text)
}
