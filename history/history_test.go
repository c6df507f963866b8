package history

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHistory_Empty(t *testing.T) {
	h := New(Options{})
	if h.CanUndo() {
		t.Fatalf("expected CanUndo=false")
	}
	if h.CanRedo() {
		t.Fatalf("expected CanRedo=false")
	}
	if got := h.Cursor(); got != -1 {
		t.Fatalf("cursor: got %d, want %d", got, -1)
	}
	if _, ok := h.Undo(); ok {
		t.Fatalf("expected Undo=false")
	}
	if _, ok := h.Redo(); ok {
		t.Fatalf("expected Redo=false")
	}
}

func TestHistory_RecordSeedsPreEditDocument(t *testing.T) {
	h := New(Options{})
	if ok := h.Record("", "H"); !ok {
		t.Fatalf("expected Record=true")
	}
	if diff := cmp.Diff([]string{"", "H"}, h.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
	if got := h.Cursor(); got != 1 {
		t.Fatalf("cursor: got %d, want %d", got, 1)
	}

	doc, ok := h.Undo()
	if !ok {
		t.Fatalf("expected Undo=true")
	}
	if doc != "" {
		t.Fatalf("undo doc: got %q, want %q", doc, "")
	}
}

func TestHistory_RecordSkipsUnchanged(t *testing.T) {
	h := New(Options{})
	if ok := h.Record("a", "a"); ok {
		t.Fatalf("expected Record=false for identical documents")
	}
	h.Record("a", "ab")
	if ok := h.Record("ab", "ab"); ok {
		t.Fatalf("expected Record=false when next equals current snapshot")
	}
	if got := h.Len(); got != 2 {
		t.Fatalf("len: got %d, want %d", got, 2)
	}
}

func TestHistory_UndoRedoIdempotence(t *testing.T) {
	h := New(Options{})
	h.Record("", "a")
	h.Record("a", "ab")
	h.Record("ab", "abc")

	doc, _ := h.Undo()
	if doc != "ab" {
		t.Fatalf("undo: got %q, want %q", doc, "ab")
	}
	redone, _ := h.Redo()
	if redone != "abc" {
		t.Fatalf("redo: got %q, want %q", redone, "abc")
	}
	again, _ := h.Undo()
	if again != doc {
		t.Fatalf("undo after redo: got %q, want %q", again, doc)
	}
}

func TestHistory_NewEditAfterUndoDiscardsRedoBranch(t *testing.T) {
	h := New(Options{})
	h.Record("", "a")
	h.Record("a", "ab")
	h.Undo()
	if !h.CanRedo() {
		t.Fatalf("expected CanRedo=true")
	}

	h.Record("a", "aX")
	if h.CanRedo() {
		t.Fatalf("expected CanRedo=false after new edit")
	}
	if diff := cmp.Diff([]string{"", "a", "aX"}, h.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
}

func TestHistory_BoundariesAreNoOps(t *testing.T) {
	h := New(Options{})
	h.Record("", "a")

	h.Undo()
	if _, ok := h.Undo(); ok {
		t.Fatalf("expected Undo=false at head")
	}
	if got := h.Cursor(); got != 0 {
		t.Fatalf("cursor at head: got %d, want %d", got, 0)
	}

	h.Redo()
	if _, ok := h.Redo(); ok {
		t.Fatalf("expected Redo=false at tail")
	}
	if got := h.Cursor(); got != 1 {
		t.Fatalf("cursor at tail: got %d, want %d", got, 1)
	}
}

func TestHistory_LimitDropsOldest(t *testing.T) {
	h := New(Options{Limit: 3})
	h.Record("", "a")
	h.Record("a", "ab")
	h.Record("ab", "abc")

	if diff := cmp.Diff([]string{"a", "ab", "abc"}, h.Entries()); diff != "" {
		t.Fatalf("entries mismatch (-want +got):\n%s", diff)
	}
	h.Undo()
	h.Undo()
	if _, ok := h.Undo(); ok {
		t.Fatalf("expected Undo=false (limit reached)")
	}
}

func TestHistory_NegativeLimitDisables(t *testing.T) {
	h := New(Options{Limit: -1})
	if ok := h.Record("", "a"); ok {
		t.Fatalf("expected Record=false with history disabled")
	}
	if h.Len() != 0 {
		t.Fatalf("len: got %d, want 0", h.Len())
	}
}

func TestHistory_CursorStaysInBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	h := New(Options{Limit: 16})
	doc := ""
	for i := 0; i < 2000; i++ {
		switch rng.Intn(3) {
		case 0:
			next := doc + string(rune('a'+rng.Intn(26)))
			h.Record(doc, next)
			doc = next
		case 1:
			if d, ok := h.Undo(); ok {
				doc = d
			}
		case 2:
			if d, ok := h.Redo(); ok {
				doc = d
			}
		}

		if h.Len() == 0 {
			continue
		}
		if c := h.Cursor(); c < 0 || c >= h.Len() {
			t.Fatalf("step %d: cursor %d out of [0,%d)", i, c, h.Len())
		}
		if cur, _ := h.Current(); cur != doc {
			t.Fatalf("step %d: current %q, want %q", i, cur, doc)
		}
	}
}

func TestHistory_Reset(t *testing.T) {
	h := New(Options{})
	h.Record("", "a")
	h.Reset()
	if h.Len() != 0 || h.CanUndo() || h.CanRedo() {
		t.Fatalf("expected empty history after reset")
	}
}
