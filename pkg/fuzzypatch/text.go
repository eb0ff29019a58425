package fuzzypatch

import (
	"regexp"
	"strings"
)

// eolStyle identifies a file's dominant line-ending convention.
type eolStyle string

const (
	eolCRLF eolStyle = "\r\n"
	eolCR   eolStyle = "\r"
	eolLF   eolStyle = "\n"
)

// detectEOL reports the file's line-ending style by precedence
// \r\n -> \r -> \n, and whether it ends with a trailing newline.
func detectEOL(content string) (style eolStyle, trailingNewline bool) {
	switch {
	case strings.Contains(content, "\r\n"):
		style = eolCRLF
	case strings.Contains(content, "\r"):
		style = eolCR
	default:
		style = eolLF
	}
	trailingNewline = strings.HasSuffix(content, string(style))
	return style, trailingNewline
}

// splitIntoLines splits content into lines using any of \r\n, \r, \n as
// a separator, dropping the line terminators themselves.
func splitIntoLines(content string) []string {
	normalized := strings.ReplaceAll(content, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	if normalized == "" {
		return nil
	}
	trimmed := strings.TrimSuffix(normalized, "\n")
	return strings.Split(trimmed, "\n")
}

// joinLines re-assembles lines using the given EOL style, appending a
// trailing terminator when trailingNewline is true.
func joinLines(lines []string, style eolStyle, trailingNewline bool) string {
	out := strings.Join(lines, string(style))
	if trailingNewline && len(lines) > 0 {
		out += string(style)
	}
	return out
}

var lineNumberGutterRe = regexp.MustCompile(`^\s*\d+\s*\|\s?`)

// stripLineNumbers removes a leading "NN | " gutter some tools prepend
// when quoting file content back to a model.
func stripLineNumbers(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = lineNumberGutterRe.ReplaceAllString(l, "")
	}
	return out
}

var (
	lineCommentRe  = regexp.MustCompile(`//.*$|#.*$`)
	blockCommentRe = regexp.MustCompile(`(?s)/\*.*?\*/`)
)

// flattenWS removes whitespace and comments from a line while preserving
// the contents of string literals (single, double, or triple quoted),
// matching the original's _flatten_ws_outside_quotes. This is a
// best-effort lexical pass, not a full tokenizer.
func flattenWS(line string) string {
	var b strings.Builder
	inQuote := byte(0)
	i := 0
	for i < len(line) {
		c := line[i]

		if inQuote != 0 {
			b.WriteByte(c)
			if c == '\\' && i+1 < len(line) {
				b.WriteByte(line[i+1])
				i += 2
				continue
			}
			if c == inQuote {
				inQuote = 0
			}
			i++
			continue
		}

		switch {
		case c == '\'' || c == '"':
			inQuote = c
			b.WriteByte(c)
			i++
		case c == ' ' || c == '\t':
			i++
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			i = len(line)
		case c == '#':
			i = len(line)
		default:
			b.WriteByte(c)
			i++
		}
	}
	return b.String()
}

func flattenWSLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = flattenWS(l)
	}
	return out
}

var smartQuoteReplacer = strings.NewReplacer(
	"‘", "'", "’", "'",
	"“", `"`, "”", `"`,
	"«", `"`, "»", `"`,
)

// normalizeQuotes maps Unicode "smart quote" variants to their ASCII
// equivalents so matching tolerates quote drift introduced by rich-text
// editors or models.
func normalizeQuotes(s string) string {
	return smartQuoteReplacer.Replace(s)
}

// leadingWhitespace returns the run of leading spaces/tabs on a line.
func leadingWhitespace(line string) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}

// reindentRelative substitutes oldBase leading whitespace with newBase on
// every line that starts with oldBase, or prepends newBase to every line
// when oldBase is empty; other lines are left as they are. Matches the
// original's
// _reindent_relative, e.g. (["    x"], "    ", "\t") -> ["\tx"].
func reindentRelative(lines []string, oldBase, newBase string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		if oldBase != "" && strings.HasPrefix(l, oldBase) {
			out[i] = newBase + l[len(oldBase):]
		} else if oldBase == "" {
			out[i] = newBase + l
		} else {
			out[i] = l
		}
	}
	return out
}

// trimmedEqual reports whether two lines are equal once surrounding
// whitespace is stripped.
func trimmedEqual(a, b string) bool {
	return strings.TrimSpace(a) == strings.TrimSpace(b)
}
