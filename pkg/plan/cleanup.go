package plan

import (
	"regexp"
	"strings"
)

var (
	thinkBlockRe = regexp.MustCompile(`(?s)<think>.*?</think>`)
	wrappingFenceRe = regexp.MustCompile("(?s)^\\s*```[a-zA-Z0-9-]*[ \\t]*\\n(.*?)\\n\\s*```\\s*$")
)

// cleanupCallbackOutput strips common LLM artifacts — <think> blocks and
// a markdown fence wrapping the entire response — from a MergeCallback
// or PatchCallback result before it's treated as file content. Grounded
// on original_source/contextforge/utils/text.py's cleanup_llm_output.
func cleanupCallbackOutput(content string) string {
	if content == "" {
		return ""
	}
	content = thinkBlockRe.ReplaceAllString(content, "")
	if m := wrappingFenceRe.FindStringSubmatch(content); m != nil {
		return strings.TrimSpace(m[1])
	}
	return content
}
