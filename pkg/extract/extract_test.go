package extract

import (
	"testing"

	"github.com/toyinlola/editcore/pkg/editmodel"
)

func TestExtractBlocks(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, blocks []editmodel.Block)
	}{
		{
			name: "file block with path in info string",
			input: "```go file=main.go\npackage main\n```\n",
			check: func(t *testing.T, blocks []editmodel.Block) {
				if len(blocks) != 1 {
					t.Fatalf("expected 1 block, got %d", len(blocks))
				}
				b := blocks[0]
				assertEqual(t, "type", editmodel.BlockFile, b.Type)
				assertEqual(t, "path", "main.go", b.Path)
				assertEqual(t, "content", "package main", b.Content)
			},
		},
		{
			name: "diff block detected by @@ marker",
			input: "```diff\n--- a/x.go\n+++ b/x.go\n@@ -1,1 +1,1 @@\n-old\n+new\n```\n",
			check: func(t *testing.T, blocks []editmodel.Block) {
				if len(blocks) != 1 {
					t.Fatalf("expected 1 block, got %d", len(blocks))
				}
				assertEqual(t, "type", editmodel.BlockDiff, blocks[0].Type)
				assertEqual(t, "path", "x.go", blocks[0].Path)
			},
		},
		{
			name: "search replace tuple never deduped even if duplicated",
			input: "<<<<<<< SEARCH\nfoo\n=======\nbar\n>>>>>>> REPLACE\n" +
				"<<<<<<< SEARCH\nfoo\n=======\nbar\n>>>>>>> REPLACE\n",
			check: func(t *testing.T, blocks []editmodel.Block) {
				if len(blocks) != 2 {
					t.Fatalf("expected 2 search_replace blocks, got %d", len(blocks))
				}
				for _, b := range blocks {
					assertEqual(t, "type", editmodel.BlockSearchReplace, b.Type)
					assertTrue(t, "is_synthetic", b.IsSynthetic)
				}
			},
		},
		{
			name: "rename detected from diff headers",
			input: "```diff\nrename from old/path.go\nrename to new/path.go\n```\n",
			check: func(t *testing.T, blocks []editmodel.Block) {
				if len(blocks) != 1 {
					t.Fatalf("expected 1 block, got %d", len(blocks))
				}
				b := blocks[0]
				assertEqual(t, "type", editmodel.BlockRename, b.Type)
				assertEqual(t, "from", "old/path.go", b.FromPath)
				assertEqual(t, "to", "new/path.go", b.ToPath)
			},
		},
		{
			name: "delete detected from dev/null diff",
			input: "```diff\n--- a/gone.go\n+++ /dev/null\n```\n",
			check: func(t *testing.T, blocks []editmodel.Block) {
				if len(blocks) != 1 {
					t.Fatalf("expected 1 block, got %d", len(blocks))
				}
				b := blocks[0]
				assertEqual(t, "type", editmodel.BlockDelete, b.Type)
				assertEqual(t, "path", "gone.go", b.Path)
			},
		},
		{
			name: "duplicate file blocks keep the last occurrence",
			input: "```go file=a.go\nfirst\n```\n```go file=a.go\nsecond\n```\n",
			check: func(t *testing.T, blocks []editmodel.Block) {
				if len(blocks) != 1 {
					t.Fatalf("expected 1 block after dedup, got %d", len(blocks))
				}
				assertEqual(t, "content", "second", blocks[0].Content)
			},
		},
		{
			name:  "unclosed fence is skipped, not an error",
			input: "```go file=a.go\nunterminated\n",
			check: func(t *testing.T, blocks []editmodel.Block) {
				if len(blocks) != 0 {
					t.Fatalf("expected 0 blocks for unclosed fence, got %d", len(blocks))
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := ExtractBlocks(tt.input, Options{})
			tt.check(t, blocks)
		})
	}
}

func TestExtractBlocks_SortedByStart(t *testing.T) {
	input := "```go file=b.go\nbbb\n```\n```go file=a.go\naaa\n```\n"
	blocks := ExtractBlocks(input, Options{})
	for i := 1; i < len(blocks); i++ {
		if blocks[i].Start < blocks[i-1].Start {
			t.Fatalf("blocks not sorted by Start: %v", blocks)
		}
	}
}

// Test helpers, matching the style used throughout this module's tests.

func assertEqual[T comparable](t *testing.T, field string, want, got T) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %v, want %v", field, got, want)
	}
}

func assertTrue(t *testing.T, field string, got bool) {
	t.Helper()
	if !got {
		t.Errorf("%s: expected true, got false", field)
	}
}
