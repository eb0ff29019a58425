package commit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/toyinlola/editcore/pkg/editmodel"
)

func assertTrue(t *testing.T, field string, got bool) {
	t.Helper()
	if !got {
		t.Errorf("%s: expected true, got false", field)
	}
}

func assertFalse(t *testing.T, field string, got bool) {
	t.Helper()
	if got {
		t.Errorf("%s: expected false, got true", field)
	}
}

func newBase(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "editcore-commit-test-")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

func strp(s string) *string { return &s }

func TestCommitChanges_BestEffortWritesAndReportsFailures(t *testing.T) {
	base := newBase(t)
	good := editmodel.Change{Action: editmodel.ActionCreate, Path: "a.txt", NewContent: strp("A")}
	bad := editmodel.Change{Action: editmodel.ActionCreate, Path: "../evil.txt", NewContent: strp("X")}

	summary, err := CommitChanges(base, []editmodel.Change{good, bad}, Options{Mode: BestEffort})
	if err != nil {
		t.Fatalf("CommitChanges: %v", err)
	}
	assertTrue(t, "a.txt succeeded", contains(summary.Success, "a.txt"))
	assertTrue(t, "../evil.txt failed", contains(summary.Failed, "../evil.txt"))

	data, readErr := os.ReadFile(filepath.Join(base, "a.txt"))
	if readErr != nil {
		t.Fatalf("ReadFile: %v", readErr)
	}
	if string(data) != "A" {
		t.Errorf("content = %q, want %q", data, "A")
	}
}

func TestCommitChanges_FailFastAtomicKeepsFsUnchanged(t *testing.T) {
	base := newBase(t)
	ok := editmodel.Change{Action: editmodel.ActionCreate, Path: "ok.txt", NewContent: strp("OK")}
	bad := editmodel.Change{Action: editmodel.ActionCreate, Path: "../oops.txt", NewContent: strp("X")}

	summary, err := CommitChanges(base, []editmodel.Change{ok, bad}, Options{Mode: FailFast, Atomic: true})
	if err != nil {
		t.Fatalf("CommitChanges: %v", err)
	}
	assertFalse(t, "ok.txt not reported success", contains(summary.Success, "ok.txt"))
	assertTrue(t, "../oops.txt failed", contains(summary.Failed, "../oops.txt"))
	if _, statErr := os.Stat(filepath.Join(base, "ok.txt")); statErr == nil {
		t.Error("ok.txt should have been rolled back")
	}
}

func TestCommitChanges_DryRunReportsPlanWithoutWriting(t *testing.T) {
	base := newBase(t)
	ch := editmodel.Change{Action: editmodel.ActionCreate, Path: "plan.txt", NewContent: strp("P")}

	summary, err := CommitChanges(base, []editmodel.Change{ch}, Options{DryRun: true})
	if err != nil {
		t.Fatalf("CommitChanges: %v", err)
	}
	found := false
	for _, s := range summary.Success {
		if strings.HasPrefix(s, "DRY RUN:") && strings.Contains(s, "plan.txt") {
			found = true
		}
	}
	assertTrue(t, "dry run message present", found)
	if _, statErr := os.Stat(filepath.Join(base, "plan.txt")); statErr == nil {
		t.Error("plan.txt should not have been written")
	}
}

func TestCommitChanges_BackupExtWritesBackupForExistingFile(t *testing.T) {
	base := newBase(t)
	target := filepath.Join(base, "c.txt")
	if err := os.WriteFile(target, []byte("OLD"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	ch := editmodel.Change{Action: editmodel.ActionModify, Path: "c.txt", NewContent: strp("NEW"), OriginalContent: strp("OLD")}

	summary, err := CommitChanges(base, []editmodel.Change{ch}, Options{BackupExt: ".bak"})
	if err != nil {
		t.Fatalf("CommitChanges: %v", err)
	}
	assertTrue(t, "c.txt succeeded", contains(summary.Success, "c.txt"))

	data, _ := os.ReadFile(target)
	if string(data) != "NEW" {
		t.Errorf("content = %q, want NEW", data)
	}
	backup, backupErr := os.ReadFile(target + ".bak")
	if backupErr != nil {
		t.Fatalf("backup not written: %v", backupErr)
	}
	if string(backup) != "OLD" {
		t.Errorf("backup content = %q, want OLD", backup)
	}
}

func TestCommitChanges_RenameAndDelete(t *testing.T) {
	base := newBase(t)
	if err := os.WriteFile(filepath.Join(base, "old.txt"), []byte("content"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.WriteFile(filepath.Join(base, "gone.txt"), []byte("bye"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	changes := []editmodel.Change{
		{Action: editmodel.ActionRename, Path: "new.txt", FromPath: "old.txt"},
		{Action: editmodel.ActionDelete, Path: "gone.txt"},
	}
	summary, err := CommitChanges(base, changes, Options{})
	if err != nil {
		t.Fatalf("CommitChanges: %v", err)
	}
	assertTrue(t, "rename succeeded", contains(summary.Success, "new.txt"))
	assertTrue(t, "delete succeeded", contains(summary.Success, "gone.txt"))
	if _, statErr := os.Stat(filepath.Join(base, "new.txt")); statErr != nil {
		t.Error("new.txt should exist after rename")
	}
	if _, statErr := os.Stat(filepath.Join(base, "old.txt")); statErr == nil {
		t.Error("old.txt should not exist after rename")
	}
	if _, statErr := os.Stat(filepath.Join(base, "gone.txt")); statErr == nil {
		t.Error("gone.txt should not exist after delete")
	}
}

func TestCommitChanges_DirectoryCreation(t *testing.T) {
	base := newBase(t)
	ch := editmodel.Change{Action: editmodel.ActionCreate, Path: "new/deep/dir/file.txt", NewContent: strp("content")}

	summary, err := CommitChanges(base, []editmodel.Change{ch}, Options{Atomic: true})
	if err != nil {
		t.Fatalf("CommitChanges: %v", err)
	}
	assertTrue(t, "nested file succeeded", contains(summary.Success, "new/deep/dir/file.txt"))
	data, readErr := os.ReadFile(filepath.Join(base, "new/deep/dir/file.txt"))
	if readErr != nil {
		t.Fatalf("ReadFile: %v", readErr)
	}
	if string(data) != "content" {
		t.Errorf("content = %q, want %q", data, "content")
	}
}

func TestCommitChanges_DryRunModifyMissingTargetFails(t *testing.T) {
	base := newBase(t)
	ch := editmodel.Change{Action: editmodel.ActionModify, Path: "missing.txt", NewContent: strp("NEW")}

	summary, err := CommitChanges(base, []editmodel.Change{ch}, Options{DryRun: true})
	if err != nil {
		t.Fatalf("CommitChanges: %v", err)
	}
	assertTrue(t, "missing.txt failed", contains(summary.Failed, "missing.txt"))
	assertFalse(t, "missing.txt not reported success", contains(summary.Success, "missing.txt"))
	if !strings.Contains(summary.Errors["missing.txt"], "not found") {
		t.Errorf("expected a not-found error, got %q", summary.Errors["missing.txt"])
	}
}

func TestCommitChanges_DryRunDeleteMissingTargetFails(t *testing.T) {
	base := newBase(t)
	ch := editmodel.Change{Action: editmodel.ActionDelete, Path: "missing.txt"}

	summary, err := CommitChanges(base, []editmodel.Change{ch}, Options{DryRun: true})
	if err != nil {
		t.Fatalf("CommitChanges: %v", err)
	}
	assertTrue(t, "missing.txt failed", contains(summary.Failed, "missing.txt"))
	if !strings.Contains(summary.Errors["missing.txt"], "not found") {
		t.Errorf("expected a not-found error, got %q", summary.Errors["missing.txt"])
	}
}

func TestCommitChanges_DryRunRenameMissingSourceFails(t *testing.T) {
	base := newBase(t)
	ch := editmodel.Change{Action: editmodel.ActionRename, Path: "new.txt", FromPath: "missing.txt"}

	summary, err := CommitChanges(base, []editmodel.Change{ch}, Options{DryRun: true})
	if err != nil {
		t.Fatalf("CommitChanges: %v", err)
	}
	assertTrue(t, "new.txt failed", contains(summary.Failed, "new.txt"))
	if !strings.Contains(summary.Errors["new.txt"], "not found") {
		t.Errorf("expected a not-found error, got %q", summary.Errors["new.txt"])
	}
}

func TestCommitChanges_DryRunModifyExistingTargetSucceeds(t *testing.T) {
	base := newBase(t)
	if err := os.WriteFile(filepath.Join(base, "present.txt"), []byte("OLD"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	ch := editmodel.Change{Action: editmodel.ActionModify, Path: "present.txt", NewContent: strp("NEW")}

	summary, err := CommitChanges(base, []editmodel.Change{ch}, Options{DryRun: true})
	if err != nil {
		t.Fatalf("CommitChanges: %v", err)
	}
	found := false
	for _, s := range summary.Success {
		if strings.HasPrefix(s, "DRY RUN:") && strings.Contains(s, "present.txt") {
			found = true
		}
	}
	assertTrue(t, "present.txt succeeded", found)
	data, readErr := os.ReadFile(filepath.Join(base, "present.txt"))
	if readErr != nil {
		t.Fatalf("ReadFile: %v", readErr)
	}
	if string(data) != "OLD" {
		t.Errorf("dry run must not write: content = %q, want OLD", data)
	}
}

func contains(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
