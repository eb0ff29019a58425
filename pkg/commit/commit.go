// Package commit implements the Commit Engine: applying a list of
// editmodel.Change values to the filesystem under a sandboxed base
// directory, with best-effort or fail-fast error handling, optional
// atomic staging, optional backups, and dry-run planning. Grounded on
// original_source/contextforge/commit/core.py, cross-checked against
// original_source's tests/commit/test_commit_core*.py for the richer
// mode/atomic/backup_ext API those tests exercise beyond core.py's own
// minimal snapshot.
package commit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/toyinlola/editcore/pkg/editerr"
	"github.com/toyinlola/editcore/pkg/editlog"
	"github.com/toyinlola/editcore/pkg/editmodel"
)

// Mode selects how CommitChanges reacts to a per-change failure.
type Mode string

const (
	BestEffort Mode = "best_effort"
	FailFast   Mode = "fail_fast"
)

// Options bundles CommitChanges' knobs beyond the required base
// directory and change list.
type Options struct {
	Mode      Mode
	Atomic    bool
	DryRun    bool
	BackupExt string
	Logger    editlog.Logger
}

type promoted struct {
	change editmodel.Change
}

// CommitChanges applies changes under baseDir. Renames and deletes apply
// in a second phase, after all create/modify staging, in input order
// (matching the original's two-phase write). Under atomic+fail_fast,
// every already-promoted change is rolled back the moment one change
// fails.
func CommitChanges(baseDir string, changes []editmodel.Change, opts Options) (editmodel.CommitSummary, error) {
	if opts.Mode == "" {
		opts.Mode = BestEffort
	}
	if opts.Logger == nil {
		opts.Logger = editlog.NoOp()
	}

	summary := editmodel.NewCommitSummary(opts.DryRun)
	baseReal, err := filepath.EvalSymlinks(baseDir)
	if err != nil {
		baseReal = baseDir
	}

	var creates []editmodel.Change
	var renamesDeletes []editmodel.Change
	for _, c := range changes {
		if c.Action == editmodel.ActionRename || c.Action == editmodel.ActionDelete {
			renamesDeletes = append(renamesDeletes, c)
		} else {
			creates = append(creates, c)
		}
	}

	var promotedList []promoted

	fail := func(c editmodel.Change, err error) bool {
		summary.Failed = append(summary.Failed, c.Path)
		summary.Errors[c.Path] = err.Error()
		opts.Logger.Warn("commit: change failed", "path", c.Path, "error", err)
		if opts.Mode == FailFast {
			if opts.Atomic {
				rollback(baseReal, promotedList, opts.Logger)
				summary.Success = withoutPromoted(summary.Success, promotedList)
			}
			return true
		}
		return false
	}

	for _, c := range creates {
		resolved, pathErr := normalizedPath(baseReal, c.Path)
		if pathErr != nil {
			if fail(c, pathErr) {
				return summary, nil
			}
			continue
		}

		if opts.DryRun {
			if dryErr := checkDryRunPrereq(resolved, c.Action); dryErr != nil {
				if fail(c, dryErr) {
					return summary, nil
				}
				continue
			}
			action := "write"
			if c.Action == editmodel.ActionCreate {
				action = "create"
			}
			n := 0
			if c.NewContent != nil {
				n = len(*c.NewContent)
			}
			summary.Success = append(summary.Success, fmt.Sprintf("DRY RUN: would %s %d bytes to %s", action, n, c.Path))
			continue
		}

		if err := writeChange(resolved, c, opts.BackupExt, opts.Atomic); err != nil {
			if fail(c, err) {
				return summary, nil
			}
			continue
		}

		summary.Success = append(summary.Success, c.Path)
		promotedList = append(promotedList, promoted{change: c})
	}

	for _, c := range renamesDeletes {
		resolved, pathErr := normalizedPath(baseReal, c.Path)
		if pathErr != nil {
			if fail(c, pathErr) {
				return summary, nil
			}
			continue
		}
		if c.Action == editmodel.ActionRename {
			fromResolved, fromErr := normalizedPath(baseReal, c.FromPath)
			if fromErr != nil {
				if fail(c, fromErr) {
					return summary, nil
				}
				continue
			}
			if opts.DryRun {
				if _, statErr := os.Stat(fromResolved); statErr != nil {
					if fail(c, fmt.Errorf("File to delete/rename not found: %s", c.FromPath)) {
						return summary, nil
					}
					continue
				}
				summary.Success = append(summary.Success, fmt.Sprintf("DRY RUN: would rename %s to %s", c.FromPath, c.Path))
				continue
			}
			if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
				if fail(c, err) {
					return summary, nil
				}
				continue
			}
			if err := os.Rename(fromResolved, resolved); err != nil {
				if fail(c, err) {
					return summary, nil
				}
				continue
			}
		} else {
			if opts.DryRun {
				if _, statErr := os.Stat(resolved); statErr != nil {
					if fail(c, fmt.Errorf("File to delete/rename not found: %s", c.Path)) {
						return summary, nil
					}
					continue
				}
				summary.Success = append(summary.Success, fmt.Sprintf("DRY RUN: would delete %s", c.Path))
				continue
			}
			if err := os.Remove(resolved); err != nil && !os.IsNotExist(err) {
				if fail(c, err) {
					return summary, nil
				}
				continue
			}
		}
		summary.Success = append(summary.Success, c.Path)
		promotedList = append(promotedList, promoted{change: c})
	}

	return summary, nil
}

// normalizedPath resolves path under baseReal and rejects any result
// that would escape it, covering both ".." segments and symlink
// escapes. Grounded on core.py's realpath+startswith containment check.
func normalizedPath(baseReal, path string) (string, error) {
	cleanRel := filepath.Clean(strings.ReplaceAll(path, "\\", "/"))
	joined := filepath.Join(baseReal, cleanRel)

	resolved := realish(joined)

	rel, err := filepath.Rel(baseReal, resolved)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", &editerr.PathViolation{Path: path, BaseDir: baseReal}
	}
	return joined, nil
}

// realish mimics os.path.realpath for a path that may not exist yet: it
// resolves symlinks along the longest existing prefix, then re-appends
// whatever trailing components don't exist on disk.
func realish(path string) string {
	if real, err := filepath.EvalSymlinks(path); err == nil {
		return real
	}

	var suffix []string
	cur := path
	for {
		if real, err := filepath.EvalSymlinks(cur); err == nil {
			return filepath.Join(append([]string{real}, suffix...)...)
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return path
		}
		suffix = append([]string{filepath.Base(cur)}, suffix...)
		cur = parent
	}
}

// checkDryRunPrereq validates the prerequisites a real write would need,
// without performing one: modify requires the target to already exist,
// create requires its parent directory to be writable.
func checkDryRunPrereq(resolved string, action editmodel.ChangeAction) error {
	switch action {
	case editmodel.ActionModify:
		if _, err := os.Stat(resolved); err != nil {
			if os.IsNotExist(err) {
				return fmt.Errorf("File to delete/rename not found: %s", resolved)
			}
			return err
		}
		return checkDirWritable(filepath.Dir(resolved))
	default: // ActionCreate
		return checkDirWritable(filepath.Dir(resolved))
	}
}

// checkDirWritable reports whether dir (or its nearest existing
// ancestor, if dir itself doesn't exist yet) accepts new files, by
// actually probing with a throwaway temp file rather than inspecting
// permission bits, which Go cannot reliably interpret cross-platform.
func checkDirWritable(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if os.IsNotExist(err) {
			parent := filepath.Dir(dir)
			if parent == dir {
				return err
			}
			return checkDirWritable(parent)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("No write permission for directory: %s", dir)
	}

	probe, err := os.CreateTemp(dir, ".editcore-writetest-*")
	if err != nil {
		return fmt.Errorf("No write permission for directory: %s", dir)
	}
	name := probe.Name()
	probe.Close()
	os.Remove(name)
	return nil
}

// writeChange performs the actual create/modify write: a backup of the
// existing file when BackupExt is set and the file isn't new, then
// either a direct write or, under atomic, a same-directory temp file
// promoted with os.Rename.
func writeChange(resolved string, c editmodel.Change, backupExt string, atomic bool) error {
	if c.NewContent == nil {
		return fmt.Errorf("change for %s has no content", c.Path)
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return err
	}

	if backupExt != "" && c.Action == editmodel.ActionModify {
		ext := backupExt
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if existing, err := os.ReadFile(resolved); err == nil {
			if err := os.WriteFile(resolved+ext, existing, 0o644); err != nil {
				return err
			}
		}
	}

	if !atomic {
		return os.WriteFile(resolved, []byte(*c.NewContent), 0o644)
	}

	tmp, err := os.CreateTemp(filepath.Dir(resolved), ".editcore-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.WriteString(*c.NewContent); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, resolved); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}

// withoutPromoted removes every promoted change's path from success,
// since a fail-fast atomic rollback undoes them on disk too.
func withoutPromoted(success []string, promotedList []promoted) []string {
	rolledBack := make(map[string]bool, len(promotedList))
	for _, p := range promotedList {
		rolledBack[p.change.Path] = true
	}
	out := success[:0]
	for _, s := range success {
		if !rolledBack[s] {
			out = append(out, s)
		}
	}
	return out
}

// rollback reverses every already-promoted change, in reverse order:
// create -> delete, modify -> restore OriginalContent, delete -> recreate
// from OriginalContent if captured, rename -> rename back.
func rollback(baseReal string, promotedList []promoted, log editlog.Logger) {
	for i := len(promotedList) - 1; i >= 0; i-- {
		c := promotedList[i].change
		resolved, err := normalizedPath(baseReal, c.Path)
		if err != nil {
			continue
		}
		switch c.Action {
		case editmodel.ActionCreate:
			if err := os.Remove(resolved); err != nil && !os.IsNotExist(err) {
				log.Warn("commit: rollback failed to remove created file", "path", c.Path, "error", err)
			}
		case editmodel.ActionModify:
			if c.OriginalContent != nil {
				if err := os.WriteFile(resolved, []byte(*c.OriginalContent), 0o644); err != nil {
					log.Warn("commit: rollback failed to restore modified file", "path", c.Path, "error", err)
				}
			}
		case editmodel.ActionDelete:
			if c.OriginalContent != nil {
				if err := os.WriteFile(resolved, []byte(*c.OriginalContent), 0o644); err != nil {
					log.Warn("commit: rollback failed to recreate deleted file", "path", c.Path, "error", err)
				}
			}
		case editmodel.ActionRename:
			fromResolved, err := normalizedPath(baseReal, c.FromPath)
			if err == nil {
				if err := os.Rename(resolved, fromResolved); err != nil {
					log.Warn("commit: rollback failed to reverse rename", "path", c.Path, "error", err)
				}
			}
		}
	}
}
