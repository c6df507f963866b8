package surface

import "testing"

func TestSurface_InsertAndDelete(t *testing.T) {
	s := New("")
	s.InsertText("Hello")
	if got, want := s.Text(), "Hello"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got, want := s.Cursor(), 5; got != want {
		t.Fatalf("cursor: got %d, want %d", got, want)
	}

	s.DeleteBackward()
	if got, want := s.Text(), "Hell"; got != want {
		t.Fatalf("text after backspace: got %q, want %q", got, want)
	}

	s.SetCursor(0)
	s.DeleteForward()
	if got, want := s.Text(), "ell"; got != want {
		t.Fatalf("text after delete: got %q, want %q", got, want)
	}

	s.SetCursor(0)
	s.DeleteBackward()
	if got, want := s.Text(), "ell"; got != want {
		t.Fatalf("backspace at start must be a no-op: got %q", got)
	}
}

func TestSurface_DeleteBackward_WholeGrapheme(t *testing.T) {
	s := New("aé")
	s.DeleteBackward()
	if got, want := s.Text(), "a"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
}

func TestSurface_InsertReplacesSelection(t *testing.T) {
	s := New("hello world")
	s.SetSelection(Range{Start: 6, End: 11})
	s.InsertText("there")
	if got, want := s.Text(), "hello there"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if _, ok := s.Selection(); ok {
		t.Fatalf("expected selection cleared after insert")
	}
}

func TestSurface_VersionOnlyOnEffectiveChange(t *testing.T) {
	s := New("ab")
	v := s.Version()
	s.SetCursor(2)
	if s.Version() != v {
		t.Fatalf("version changed on no-op cursor set")
	}
	s.ReplaceRange(Range{Start: 1, End: 1}, "")
	if s.Version() != v {
		t.Fatalf("version changed on empty replace")
	}
	s.InsertText("c")
	if s.Version() != v+1 {
		t.Fatalf("version: got %d, want %d", s.Version(), v+1)
	}
}

func TestSurface_MoveGraphemeAndExtend(t *testing.T) {
	s := New("abcd")
	s.SetCursor(1)

	s.Move(Move{Unit: MoveGrapheme, Dir: DirRight, Extend: true})
	s.Move(Move{Unit: MoveGrapheme, Dir: DirRight, Extend: true})
	r, ok := s.Selection()
	if !ok {
		t.Fatalf("expected selection")
	}
	if got, want := r, (Range{Start: 1, End: 3}); got != want {
		t.Fatalf("selection: got %v, want %v", got, want)
	}
	if got := s.SelectedText(); got != "bc" {
		t.Fatalf("selected text: got %q, want %q", got, "bc")
	}

	s.Move(Move{Unit: MoveGrapheme, Dir: DirLeft})
	if got, want := s.Cursor(), 1; got != want {
		t.Fatalf("cursor after collapse: got %d, want %d", got, want)
	}
	if _, ok := s.Selection(); ok {
		t.Fatalf("expected selection collapsed")
	}
}

func TestSurface_SelectionKeepsDirection(t *testing.T) {
	s := New("abcd")
	s.SetCursor(3)
	s.Move(Move{Unit: MoveGrapheme, Dir: DirLeft, Extend: true})
	s.Move(Move{Unit: MoveGrapheme, Dir: DirLeft, Extend: true})

	raw, ok := s.SelectionRaw()
	if !ok {
		t.Fatalf("expected selection")
	}
	if got, want := raw, (Range{Start: 3, End: 1}); got != want {
		t.Fatalf("raw selection: got %v, want %v", got, want)
	}
	if got, want := s.Cursor(), 1; got != want {
		t.Fatalf("cursor: got %d, want %d", got, want)
	}
}

func TestSurface_MoveWordStopsAtMarkup(t *testing.T) {
	s := New("<b>bold</b> text")
	s.SetCursor(0)
	s.Move(Move{Unit: MoveWord, Dir: DirRight})
	if got, want := s.Cursor(), 1; got != want {
		t.Fatalf("cursor past '<': got %d, want %d", got, want)
	}
	s.SetCursor(3)
	s.Move(Move{Unit: MoveWord, Dir: DirRight})
	if got, want := s.Cursor(), 8; got != want {
		t.Fatalf("cursor after word: got %d, want %d", got, want)
	}

	s.SetCursor(len(s.Text()))
	s.Move(Move{Unit: MoveWord, Dir: DirLeft})
	if got, want := s.Cursor(), 12; got != want {
		t.Fatalf("cursor after word left: got %d, want %d", got, want)
	}
}

func TestSurface_VerticalMovesKeepColumn(t *testing.T) {
	s := New("abcd\nxy\nlong line")
	s.SetCursor(3) // "abc|d"

	s.Move(Move{Unit: MoveLine, Dir: DirDown})
	if got, want := s.Position(s.Cursor()), (Pos{Row: 1, Col: 2}); got != want {
		t.Fatalf("pos after down: got %v, want %v", got, want)
	}
	s.Move(Move{Unit: MoveLine, Dir: DirDown})
	if got, want := s.Position(s.Cursor()), (Pos{Row: 2, Col: 2}); got != want {
		t.Fatalf("pos after second down: got %v, want %v", got, want)
	}
	s.Move(Move{Unit: MoveLine, Dir: DirDown})
	if got, want := s.Cursor(), len(s.Text()); got != want {
		t.Fatalf("down on last row: got %d, want %d", got, want)
	}

	s.Move(Move{Unit: MoveLine, Dir: DirHome})
	if got, want := s.Position(s.Cursor()), (Pos{Row: 2, Col: 0}); got != want {
		t.Fatalf("pos after home: got %v, want %v", got, want)
	}
	s.Move(Move{Unit: MoveDocument, Dir: DirHome})
	if got := s.Cursor(); got != 0 {
		t.Fatalf("document home: got %d, want 0", got)
	}
}

func TestSurface_LineBeforeCursor(t *testing.T) {
	s := New("first\n## ")
	s.SetCursor(len("first\n##"))
	if got, want := s.LineBeforeCursor(), "##"; got != want {
		t.Fatalf("line before cursor: got %q, want %q", got, want)
	}
	start, end := s.LineBounds(s.Cursor())
	if start != 6 || end != 9 {
		t.Fatalf("line bounds: got [%d,%d), want [6,9)", start, end)
	}
}

func TestSurface_SetTextResetsCursor(t *testing.T) {
	s := New("abc")
	s.SetSelection(Range{Start: 0, End: 2})
	s.SetText("xyz!")
	if got, want := s.Cursor(), 4; got != want {
		t.Fatalf("cursor: got %d, want %d", got, want)
	}
	if _, ok := s.Selection(); ok {
		t.Fatalf("expected selection cleared")
	}
}
