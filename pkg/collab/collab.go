// Package collab declares the interfaces edit-core hands control back to
// its caller through, without providing implementations. The core never
// builds LLM prompts, renders directory trees, or talks to a clipboard;
// it only calls out through these shapes when a caller supplies one.
package collab

import (
	"github.com/toyinlola/editcore/pkg/editmodel"
	"github.com/toyinlola/editcore/pkg/fuzzypatch"
)

// ContextBuilder formats a set of changes into an LLM prompt context
// string, bounded to maxTokenBudget. Modeled on the teacher's
// pkg/ai.BuildContext; not implemented in this module.
type ContextBuilder interface {
	Build(changes []editmodel.Change, maxTokenBudget int) string
}

// TreeRenderer renders a .gitignore-aware directory tree for prompt
// context. Not implemented in this module.
type TreeRenderer interface {
	Render(baseDir string) (string, error)
}

// ClipboardWriter and TempFileWriter back outer CLI glue, not the core
// pipeline itself.
type ClipboardWriter interface {
	Copy(text string) error
}

type TempFileWriter interface {
	Write(content string) (path string, err error)
}

// MergeCallback reconciles a truncated full-replacement block against
// the file's current content, e.g. by asking an LLM to fill the gaps.
type MergeCallback func(original, proposed string) (string, error)

// PatchCallback is the last-resort tier for a diff hunk the Fuzzy Patch
// Engine could not place with sufficient confidence.
type PatchCallback func(content string, failed fuzzypatch.FailedHunk) (string, error)

// ClassifierFunc supplies path/change-type metadata for a block the
// deterministic classifier couldn't resolve on its own.
type ClassifierFunc func(block editmodel.Block) (path string, isDiff bool)
