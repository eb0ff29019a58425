// Package plan implements the Change Planner and its companion change-
// generation step: turning extracted/classified blocks into concrete
// editmodel.Change values ready for the Commit Engine.
package plan

import "github.com/toyinlola/editcore/pkg/editmodel"

// ChangeType mirrors the original implementation's change_type strings,
// kept distinct from editmodel.BlockType because a single block type
// (diff, file) can resolve to a different change type once the target
// file's existence is known.
type ChangeType string

const (
	TypeFullReplacement ChangeType = "full_replacement"
	TypeDiff            ChangeType = "diff"
	TypeSearchReplace   ChangeType = "search_replace"
	TypeRename          ChangeType = "rename"
	TypeDelete          ChangeType = "delete"
)

// Plan is one block's resolved path and change type, ready for
// ApplyChangeSmartly.
type Plan struct {
	Block editmodel.Block
	Path  string
	Type  ChangeType
}
