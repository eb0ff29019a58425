// Package editmodel defines the shared data types for the edit-core pipeline:
// extracted blocks, parsed hunks, fuzzy-match candidates, planned changes,
// and commit results. This package has zero dependencies on any sibling
// pkg/ package — every other package imports it, not the other way around.
package editmodel

// BlockType discriminates the variants a markdown block can take.
type BlockType string

const (
	BlockFile          BlockType = "file"
	BlockDiff          BlockType = "diff"
	BlockRename        BlockType = "rename"
	BlockDelete        BlockType = "delete"
	BlockSearchReplace BlockType = "search_replace"
)

// Block is a single extracted unit of edit intent from a markdown document.
// It is a discriminated union keyed by Type: which fields are meaningful
// depends on Type, not on a type hierarchy.
type Block struct {
	Type BlockType

	// Start and End are byte offsets into the source markdown.
	// Invariant: 0 <= Start <= End <= len(source).
	Start, End int

	Path     string // target file path, when known
	FromPath string // rename source path
	ToPath   string // rename destination path
	Language string // fence info-string language token, if any
	Content  string // raw fence body (diff text, file content, or patch text)

	// IsSynthetic marks blocks produced by SEARCH/REPLACE or chevron
	// extraction rather than a plain fenced block.
	IsSynthetic bool

	// Pairs holds the individual old/new/pattern tuples for a
	// search_replace block. A search_replace block may bundle more than
	// one tuple inside a single fence.
	Pairs []SearchReplacePair
}

// SearchReplacePair is one SEARCH/REPLACE or chevron tuple within a
// search_replace Block.
type SearchReplacePair struct {
	Old string
	New string
}

// SortBlocks returns blocks sorted by Start, ascending. Ties keep their
// relative input order (stable sort).
func SortBlocks(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	copy(out, blocks)
	stableSortByStart(out)
	return out
}

func stableSortByStart(blocks []Block) {
	// insertion sort: block counts per document are small and this keeps
	// the comparison stable without importing sort for a one-key sort.
	for i := 1; i < len(blocks); i++ {
		j := i
		for j > 0 && blocks[j-1].Start > blocks[j].Start {
			blocks[j-1], blocks[j] = blocks[j], blocks[j-1]
			j--
		}
	}
}

// DedupBlocks removes duplicate (Path, Type) blocks for BlockFile and
// BlockDiff types, keeping the last (highest-Start) occurrence of each
// pair. BlockSearchReplace blocks are never deduplicated: each tuple is
// independently significant even if several target the same file.
// Input is assumed already sorted by Start ascending; output remains
// sorted by Start ascending.
func DedupBlocks(blocks []Block) []Block {
	type key struct {
		path string
		typ  BlockType
	}

	kept := make(map[key]int) // key -> index into result, for file/diff blocks
	var result []Block

	for _, b := range blocks {
		if b.Type == BlockSearchReplace {
			result = append(result, b)
			continue
		}
		if b.Type != BlockFile && b.Type != BlockDiff {
			result = append(result, b)
			continue
		}
		k := key{path: b.Path, typ: b.Type}
		if idx, ok := kept[k]; ok {
			// Sorted input means the new occurrence has a >= Start;
			// keep the later one.
			result[idx] = b
			continue
		}
		kept[k] = len(result)
		result = append(result, b)
	}

	return SortBlocks(result)
}
