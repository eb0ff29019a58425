package plan

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/toyinlola/editcore/pkg/classify"
	"github.com/toyinlola/editcore/pkg/collab"
	"github.com/toyinlola/editcore/pkg/editerr"
	"github.com/toyinlola/editcore/pkg/editlog"
	"github.com/toyinlola/editcore/pkg/editmodel"
	"github.com/toyinlola/editcore/pkg/fuzzypatch"
)

const fuzzyThreshold = 0.6

// PlanChanges runs Phase 1 of the pipeline: for each extracted block, it
// resolves a target path and change type. Rename/delete blocks forward
// directly; search-replace blocks keep their type; diff and file blocks
// get their path resolved (the optional classify callback, then the
// deterministic classifier, when the extractor found none; then a
// bare-filename search). A diff block keeps the diff type when its
// target file doesn't exist yet and is applied against empty content.
// Grounded on
// original_source/contextforge/plan.py's plan_changes.
func PlanChanges(blocks []editmodel.Block, baseDir string, classifyCB collab.ClassifierFunc) ([]Plan, error) {
	var plans []Plan

	for _, b := range blocks {
		switch b.Type {
		case editmodel.BlockRename:
			plans = append(plans, Plan{Block: b, Path: b.ToPath, Type: TypeRename})
			continue
		case editmodel.BlockDelete:
			path, _ := resolveBareFilename(baseDir, b.Path)
			plans = append(plans, Plan{Block: b, Path: path, Type: TypeDelete})
			continue
		case editmodel.BlockSearchReplace:
			path, _ := resolveBareFilename(baseDir, b.Path)
			plans = append(plans, Plan{Block: b, Path: path, Type: TypeSearchReplace})
			continue
		}

		path := b.Path
		changeType := TypeFullReplacement
		if b.Type == editmodel.BlockDiff {
			changeType = TypeDiff
		}

		if path == "" {
			if classifyCB != nil {
				classifiedPath, isDiff := classifyCB(b)
				path = classifiedPath
				if isDiff {
					changeType = TypeDiff
				}
			}
			if path == "" {
				c := classify.Classify(b.Content, "")
				path = c.Path
				if c.IsDiff {
					changeType = TypeDiff
				}
			}
		}
		if path == "" {
			continue
		}

		path, _ = resolveBareFilename(baseDir, path)

		plans = append(plans, Plan{Block: b, Path: path, Type: changeType})
	}

	return plans, nil
}

// ApplyChangeSmartly runs Phase 2: it generates the final content (or
// rename/delete shape) for a single planned change, implementing the
// tiered diff-apply strategy described in SPEC_FULL.md §11. Grounded on
// original_source/contextforge/transform.py's apply_change_smartly.
func ApplyChangeSmartly(p Plan, baseDir string, merge collab.MergeCallback, patchCB collab.PatchCallback) (*editmodel.Change, []string, error) {
	var logs []string
	log := func(msg string) { logs = append(logs, msg) }

	if p.Path == "" {
		log("missing path in plan, skipping")
		return nil, logs, nil
	}

	targetPath := filepath.Join(baseDir, p.Path)

	switch p.Type {
	case TypeRename:
		log(fmt.Sprintf("rename %s -> %s", p.Block.FromPath, p.Block.ToPath))
		return &editmodel.Change{Action: editmodel.ActionRename, Path: p.Block.ToPath, FromPath: p.Block.FromPath}, logs, nil

	case TypeDelete:
		change := &editmodel.Change{Action: editmodel.ActionDelete, Path: p.Path}
		if original, err := os.ReadFile(targetPath); err == nil {
			s := string(original)
			change.OriginalContent = &s
		}
		log(fmt.Sprintf("delete %s", p.Path))
		return change, logs, nil
	}

	var originalContent string
	isNew := true
	if data, err := os.ReadFile(targetPath); err == nil {
		originalContent = string(data)
		isNew = false
	} else if !os.IsNotExist(err) {
		log(fmt.Sprintf("warning: could not read original file: %v", err))
	}

	var newContent string
	var ok bool

	switch p.Type {
	case TypeSearchReplace:
		newContent, ok = applySearchReplace(originalContent, p.Block.Pairs)
		if !ok {
			log("SEARCH/REPLACE failed: no pair matched")
			return nil, logs, nil
		}
		log("SEARCH/REPLACE applied")

	case TypeDiff:
		if result, applied := exactApplyViaLibrary(p.Block.Content, originalContent); applied {
			newContent = result
			ok = true
			log("tier 1: exact library apply succeeded")
		} else {
			log("tier 1: exact library apply failed, trying fuzzy patch")
			result, err := fuzzypatch.PatchText(originalContent, p.Block.Content, fuzzyThreshold, editlog.NoOp())
			if err == nil {
				newContent = result
				ok = true
				log("tier 2: fuzzy patch succeeded")
			} else {
				log(fmt.Sprintf("tier 2: fuzzy patch failed: %v", err))
				var pf *editerr.PatchFailedError
				if errors.As(err, &pf) && patchCB != nil {
					partial, _, failed := fuzzypatch.FuzzyPatchPartial(originalContent, p.Block.Content, fuzzyThreshold)
					if len(failed) > 0 {
						raw, cbErr := patchCB(partial, failed[0])
						if cbErr == nil {
							newContent = cleanupCallbackOutput(raw)
							ok = true
							log("tier 3: patch callback succeeded")
						} else {
							log(fmt.Sprintf("tier 3: patch callback failed: %v", cbErr))
						}
					}
				} else {
					log("tier 3 unavailable: no patch callback")
				}
			}
		}

	case TypeFullReplacement:
		if classify.ContainsTruncationMarker(p.Block.Content) {
			log("detected truncation markers")
			switch {
			case originalContent == "":
				log("warning: no original file to merge with, using replacement as-is")
				newContent, ok = p.Block.Content, true
			case merge != nil:
				raw, err := merge(originalContent, p.Block.Content)
				if err != nil {
					log(fmt.Sprintf("merge callback failed: %v", err))
				} else {
					newContent = cleanupCallbackOutput(raw)
					ok = true
					log("merge callback succeeded")
				}
			default:
				log("truncation detected but no merge callback provided, using as-is")
				newContent, ok = p.Block.Content, true
			}
		} else {
			newContent, ok = p.Block.Content, true
		}

	default:
		log(fmt.Sprintf("unknown change type %q, skipping", p.Type))
		return nil, logs, nil
	}

	if !ok {
		return nil, logs, nil
	}

	action := editmodel.ActionModify
	if isNew {
		action = editmodel.ActionCreate
	}
	change := &editmodel.Change{
		Action:     action,
		Path:       p.Path,
		NewContent: &newContent,
	}
	if !isNew {
		change.OriginalContent = &originalContent
	}
	return change, logs, nil
}

// applySearchReplace applies every pair in sequence, folding the result
// of each through structured patch mode. A block with no pairs, or any
// of whose pairs fails to apply, reports failure.
func applySearchReplace(content string, pairs []editmodel.SearchReplacePair) (string, bool) {
	if len(pairs) == 0 {
		return content, false
	}
	current := content
	for _, pair := range pairs {
		op := fuzzypatch.StructuredOp{Old: pair.Old, New: pair.New}
		result, err := fuzzypatch.PatchText(current, op, fuzzyThreshold, editlog.NoOp())
		if err != nil {
			return content, false
		}
		current = result
	}
	return current, true
}
