package diffparse

import "testing"

func TestParse_Unified(t *testing.T) {
	input := "--- a/x.go\n+++ b/x.go\n@@ -1,3 +1,3 @@\n context\n-old\n+new\n context2\n"
	hunks, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(hunks))
	}
	h := hunks[0]
	if h.OldStart != 1 || h.NewStart != 1 {
		t.Errorf("start = (%d,%d), want (1,1)", h.OldStart, h.NewStart)
	}
	if h.OldContent() != "context\nold\ncontext2" {
		t.Errorf("OldContent = %q", h.OldContent())
	}
	if h.NewContent() != "context\nnew\ncontext2" {
		t.Errorf("NewContent = %q", h.NewContent())
	}
}

func TestParse_Simplified(t *testing.T) {
	input := "@@\n context\n-old\n+new\n"
	hunks, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(hunks) != 1 {
		t.Fatalf("expected 1 hunk, got %d", len(hunks))
	}
	if hunks[0].OldStart != 1 {
		t.Errorf("OldStart = %d, want 1 (default)", hunks[0].OldStart)
	}
}

func TestParse_ZeroHunksIsError(t *testing.T) {
	_, err := Parse("just some prose, no diff markers here")
	if err == nil {
		t.Fatal("expected error for zero hunks, got nil")
	}
}

func TestParse_PureAddition(t *testing.T) {
	input := "@@\n+brand new line\n"
	hunks, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if !hunks[0].IsPureAddition() {
		t.Error("expected IsPureAddition() to be true")
	}
}
