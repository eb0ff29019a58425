// Package extract implements the Block Extractor: turning freeform
// markdown into a sorted, deduplicated slice of editmodel.Block values.
// It never raises on malformed input — unknown or unclosed fences are
// skipped, matching the tolerant extraction/classification stance the
// rest of the pipeline expects.
package extract

import (
	"strings"

	"github.com/toyinlola/editcore/pkg/editmodel"
	"github.com/toyinlola/editcore/pkg/editlog"
)

// Options configures ExtractBlocks. The zero value is ready to use.
type Options struct {
	Logger editlog.Logger
}

// ExtractBlocks scans markdown for fenced code blocks, SEARCH/REPLACE and
// chevron tuples, custom patch envelopes, and rename/delete diff
// headers, and returns the resulting blocks sorted by Start and
// deduplicated per editmodel.DedupBlocks's rules.
func ExtractBlocks(markdown string, opts Options) []editmodel.Block {
	log := opts.Logger
	if log == nil {
		log = editlog.NoOp()
	}

	markdown = preprocessFences(markdown)
	lines, offsets := splitLinesWithOffsets(markdown)

	var consumed [][2]int
	var blocks []editmodel.Block

	// Priority extraction: SEARCH/REPLACE, chevron, and patch envelopes
	// claim their ranges first so the generic fence scan below doesn't
	// double-count them.
	srBlocks := extractSearchReplaceBlocks(markdown, lines, offsets)
	for _, b := range srBlocks {
		consumed = append(consumed, [2]int{b.Start, b.End})
	}
	blocks = append(blocks, srBlocks...)

	chevronBlocks := extractChevronBlocks(markdown, lines, offsets)
	for _, b := range chevronBlocks {
		if overlaps(b.Start, b.End, consumed) {
			continue
		}
		consumed = append(consumed, [2]int{b.Start, b.End})
		blocks = append(blocks, b)
	}

	patchBlocks := extractPatchEnvelopeBlocks(markdown)
	for _, b := range patchBlocks {
		if overlaps(b.Start, b.End, consumed) {
			continue
		}
		consumed = append(consumed, [2]int{b.Start, b.End})
		blocks = append(blocks, b)
	}

	// Generic fence scan for everything else.
	tokens := scanFenceLines(markdown)
	pairs := matchFences(markdown, tokens)
	for _, p := range pairs {
		if overlaps(p.Opener.Start, p.Closer.End, consumed) {
			continue
		}
		b, ok := classifyFence(p, lines, offsets)
		if !ok {
			log.Debug("extract: skipped fence with no resolvable content", "start", p.Opener.Start)
			continue
		}
		blocks = append(blocks, b)
	}

	if len(blocks) == 0 && looksLikeDiff(markdown) {
		blocks = append(blocks, editmodel.Block{
			Type:    editmodel.BlockDiff,
			Start:   0,
			End:     len(markdown),
			Content: markdown,
		})
	}

	blocks = splitMultiFileDiffBlocks(blocks)
	blocks = editmodel.DedupBlocks(editmodel.SortBlocks(blocks))
	return blocks
}

// splitMultiFileDiffBlocks expands any diff block whose body contains
// more than one file header into one diff block per file, preserving the
// group's original Start/End span (all sub-blocks share it; downstream
// dedup treats distinct paths as distinct keys so this is safe).
func splitMultiFileDiffBlocks(blocks []editmodel.Block) []editmodel.Block {
	var out []editmodel.Block
	for _, b := range blocks {
		if b.Type != editmodel.BlockDiff || b.IsSynthetic {
			out = append(out, b)
			continue
		}
		parts := splitMultiFileDiff(b.Content)
		if len(parts) <= 1 {
			out = append(out, b)
			continue
		}
		for _, part := range parts {
			sub := b
			sub.Content = part
			if m := plusHeaderRe.FindStringSubmatch(part); m != nil {
				sub.Path = strings.TrimSpace(m[1])
			} else if m := minusHeaderRe.FindStringSubmatch(part); m != nil {
				sub.Path = strings.TrimSpace(m[1])
			}
			out = append(out, sub)
		}
	}
	return out
}

// classifyFence turns one matched fence pair into a Block: a rename,
// delete, diff, or file block. A multi-file diff body comes back as one
// diff block; splitMultiFileDiffBlocks splits it afterwards.
func classifyFence(p fencePair, lines []string, offsets []int) (editmodel.Block, bool) {
	info := parseInfoString(p.Opener.Info)
	body := strings.Trim(p.Body, "\n")
	if body == "" {
		return editmodel.Block{}, false
	}

	if from, to := info.KV["from"], info.KV["to"]; from != "" && to != "" {
		return editmodel.Block{
			Type:     editmodel.BlockRename,
			Start:    p.Opener.Start,
			End:      p.Closer.End,
			FromPath: from,
			ToPath:   to,
		}, true
	}

	if from, to, ok := detectRenameFromDiff(body); ok {
		return editmodel.Block{
			Type:     editmodel.BlockRename,
			Start:    p.Opener.Start,
			End:      p.Closer.End,
			FromPath: from,
			ToPath:   to,
		}, true
	}

	if path, ok := detectDeletionFromDiff(body); ok {
		return editmodel.Block{
			Type:  editmodel.BlockDelete,
			Start: p.Opener.Start,
			End:   p.Closer.End,
			Path:  path,
		}, true
	}

	path := pathFromInfoString(info)
	if path == "" {
		path = pathHintFromCommentHeader(body)
	}
	if path == "" {
		path = pathHintFromContext(lines, lineIndexForOffset(offsets, p.Opener.Start), 5)
	}

	isDiff := info.Language == "diff" || info.Language == "patch" || looksLikeDiff(body)

	if isDiff {
		// Diff headers in the body name the target file and take
		// precedence over the hints above.
		if m := plusHeaderRe.FindStringSubmatch(body); m != nil {
			path = normalizeSlashes(strings.TrimSpace(m[1]))
		} else if m := minusHeaderRe.FindStringSubmatch(body); m != nil {
			path = normalizeSlashes(strings.TrimSpace(m[1]))
		}
		return editmodel.Block{
			Type:     editmodel.BlockDiff,
			Start:    p.Opener.Start,
			End:      p.Closer.End,
			Path:     path,
			Language: info.Language,
			Content:  body,
		}, true
	}

	if path == "" {
		return editmodel.Block{}, false
	}

	return editmodel.Block{
		Type:     editmodel.BlockFile,
		Start:    p.Opener.Start,
		End:      p.Closer.End,
		Path:     path,
		Language: info.Language,
		Content:  body,
	}, true
}
