// Package tests exercises the edit-core pipeline end to end: extraction,
// planning, tiered apply, and commit wired together against real
// temporary directories, covering the literal scenarios the pipeline is
// expected to reproduce exactly.
package tests

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/toyinlola/editcore/pkg/commit"
	"github.com/toyinlola/editcore/pkg/editmodel"
	"github.com/toyinlola/editcore/pkg/extract"
	"github.com/toyinlola/editcore/pkg/fuzzypatch"
	"github.com/toyinlola/editcore/pkg/plan"
)

func assertEqual[T comparable](t *testing.T, field string, want, got T) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %v, want %v", field, got, want)
	}
}

func newScenarioDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "editcore-scenario-")
	if err != nil {
		t.Fatalf("MkdirTemp: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(dir) })
	return dir
}

// runPipeline extracts, plans, and applies every block in markdown
// against dir, returning the resulting changes (not yet committed).
func runPipeline(t *testing.T, dir, markdown string) []editmodel.Change {
	t.Helper()
	blocks := extract.ExtractBlocks(markdown, extract.Options{})
	plans, err := plan.PlanChanges(blocks, dir, nil)
	if err != nil {
		t.Fatalf("PlanChanges: %v", err)
	}
	var changes []editmodel.Change
	for _, p := range plans {
		change, _, applyErr := plan.ApplyChangeSmartly(p, dir, nil, nil)
		if applyErr != nil {
			t.Fatalf("ApplyChangeSmartly(%s): %v", p.Path, applyErr)
		}
		if change != nil {
			changes = append(changes, *change)
		}
	}
	return changes
}

// Scenario 1: a multi-hunk diff whose final hunk is a pure addition at
// end of file.
func TestScenario_MultiHunkDiffWithEOFAddition(t *testing.T) {
	dir := newScenarioDir(t)
	original := "alpha\nbeta\ngamma\n"
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte(original), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	markdown := "```diff file=a.txt\n" +
		"--- a/a.txt\n+++ b/a.txt\n" +
		"@@ -1,1 +1,1 @@\n-alpha\n+ALPHA\n" +
		"@@ -3,1 +3,2 @@\n gamma\n+delta\n" +
		"```\n"

	changes := runPipeline(t, dir, markdown)
	if len(changes) != 1 {
		t.Fatalf("expected 1 change, got %d", len(changes))
	}

	summary, err := commit.CommitChanges(dir, changes, commit.Options{})
	if err != nil {
		t.Fatalf("CommitChanges: %v", err)
	}
	if len(summary.Failed) != 0 {
		t.Fatalf("commit failed: %v", summary.Errors)
	}

	data, _ := os.ReadFile(filepath.Join(dir, "a.txt"))
	assertEqual(t, "result", "ALPHA\nbeta\ngamma\ndelta\n", string(data))
}

// Scenario 2: the file has two identical anchor lines; the diff's
// surrounding hint should pick the occurrence closest to it.
func TestScenario_DuplicateAnchorDeletion(t *testing.T) {
	content := "func a() {}\nfunc b() {}\nfunc a() {}\n"
	// Two identical "func a() {}" lines exist; the hunk's header hint
	// (new_start-1 = 2) should steer the match to the second occurrence
	// rather than the first.
	diff := "--- a/f\n+++ b/f\n@@ -3,1 +3,1 @@\n-func a() {}\n+func a2() {}\n"

	result, err := fuzzypatch.PatchText(content, diff, 0.6, nil)
	if err != nil {
		t.Fatalf("PatchText: %v", err)
	}
	assertEqual(t, "duplicate-anchor result", "func a() {}\nfunc b() {}\nfunc a2() {}\n", result)
}

// Scenario 3: a hunk bounded on both sides by confident anchors, whose
// own content matches nothing, synthesizes the literal merge-conflict
// markers instead of silently dropping the hunk.
func TestScenario_AnchorBoundedConflictMarkers(t *testing.T) {
	content := "alpha\nbeta\ngamma\ndelta\n"
	diff := "--- a/c.txt\n+++ b/c.txt\n" +
		"@@ -1,1 +1,1 @@\n-alpha\n+alpha2\n" +
		"@@ -2,1 +2,1 @@\n-nothing matches this line\n+replacement\n" +
		"@@ -4,1 +4,1 @@\n-delta\n+delta2\n"

	result, _, failed := fuzzypatch.FuzzyPatchPartial(content, diff, 0.2)
	if len(failed) != 0 {
		t.Fatalf("expected no failed hunks at a permissive threshold, got %v", failed)
	}

	if !strings.Contains(result, "<<<<<<< CURRENT (file content)") ||
		!strings.Contains(result, "=======") ||
		!strings.Contains(result, ">>>>>>> PATCH (hunk #1)") {
		t.Errorf("expected conflict markers for the unresolvable hunk, got:\n%s", result)
	}
	if !strings.Contains(result, "alpha2") || !strings.Contains(result, "delta2") {
		t.Errorf("expected the bounding hunks to still apply, got:\n%s", result)
	}
}

// Scenario 4: a multi-file commit under atomic + fail-fast rolls back
// every already-promoted change the moment one change fails.
func TestScenario_MultiFileAtomicFailFastRollback(t *testing.T) {
	dir := newScenarioDir(t)
	markdown := "```text file=one.txt\nhello one\n```\n" +
		"```text file=two.txt\nhello two\n```\n"

	changes := runPipeline(t, dir, markdown)
	if len(changes) != 2 {
		t.Fatalf("expected 2 changes, got %d", len(changes))
	}
	changes = append(changes, editmodel.Change{
		Action:     editmodel.ActionCreate,
		Path:       "../escape.txt",
		NewContent: strPtr("should never land"),
	})

	summary, err := commit.CommitChanges(dir, changes, commit.Options{Mode: commit.FailFast, Atomic: true})
	if err != nil {
		t.Fatalf("CommitChanges: %v", err)
	}
	if len(summary.Success) != 0 {
		t.Errorf("expected no committed changes after rollback, got %v", summary.Success)
	}
	for _, name := range []string{"one.txt", "two.txt"} {
		if _, statErr := os.Stat(filepath.Join(dir, name)); statErr == nil {
			t.Errorf("%s should have been rolled back", name)
		}
	}
}

// Scenario 5: three SEARCH/REPLACE tuples bundled into a single block
// targeting the same file, applied in sequence.
func TestScenario_SearchReplaceTriplePackedInOneFence(t *testing.T) {
	dir := newScenarioDir(t)
	original := "red apple\nred banana\nred cherry\n"
	if err := os.WriteFile(filepath.Join(dir, "fruit.txt"), []byte(original), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	block := editmodel.Block{
		Type: editmodel.BlockSearchReplace,
		Path: "fruit.txt",
		Pairs: []editmodel.SearchReplacePair{
			{Old: "red apple", New: "green apple"},
			{Old: "red banana", New: "yellow banana"},
			{Old: "red cherry", New: "black cherry"},
		},
	}
	p := plan.Plan{Block: block, Path: "fruit.txt", Type: plan.TypeSearchReplace}

	change, _, err := plan.ApplyChangeSmartly(p, dir, nil, nil)
	if err != nil {
		t.Fatalf("ApplyChangeSmartly: %v", err)
	}
	if change == nil {
		t.Fatal("expected a change")
	}

	want := "green apple\nyellow banana\nblack cherry\n"
	assertEqual(t, "tripled search/replace result", want, *change.NewContent)
}

// Scenario 6: a change whose path escapes the commit base directory is
// rejected with a PathViolation and never reaches disk.
func TestScenario_PathSandboxRejection(t *testing.T) {
	dir := newScenarioDir(t)
	change := editmodel.Change{
		Action:     editmodel.ActionCreate,
		Path:       "../../etc/evil.txt",
		NewContent: strPtr("should never land"),
	}

	summary, err := commit.CommitChanges(dir, []editmodel.Change{change}, commit.Options{})
	if err != nil {
		t.Fatalf("CommitChanges: %v", err)
	}
	if len(summary.Failed) != 1 {
		t.Fatalf("expected 1 failed change, got %d", len(summary.Failed))
	}
	if !strings.Contains(summary.Errors["../../etc/evil.txt"], "escapes base directory") {
		t.Errorf("expected a PathViolation message, got %q", summary.Errors["../../etc/evil.txt"])
	}
}

func strPtr(s string) *string { return &s }
