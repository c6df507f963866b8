package surface

import "testing"

func TestSurface_SnapshotRestore(t *testing.T) {
	s := New("hello")
	s.SetCursor(5)
	s.Move(Move{Unit: MoveGrapheme, Dir: DirLeft, Extend: true})
	snap := s.Snapshot()

	s.InsertText("X")
	if got, want := s.Text(), "hellX"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}

	v := s.Version()
	s.Restore(snap)
	if got, want := s.Text(), "hello"; got != want {
		t.Fatalf("restored text: got %q, want %q", got, want)
	}
	raw, ok := s.SelectionRaw()
	if !ok || raw != (Range{Start: 5, End: 4}) {
		t.Fatalf("restored selection: got %v/%v, want {5 4}/true", raw, ok)
	}
	if s.Version() == v {
		t.Fatalf("expected version bump on restore")
	}

	v = s.Version()
	s.Restore(snap)
	if s.Version() != v {
		t.Fatalf("restore of identical state must not bump version")
	}
}
