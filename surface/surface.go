package surface

import (
	"strings"

	"github.com/iw2rmb/quill/internal/grapheme"
)

type selectionState struct {
	active bool
	anchor int
	end    int
}

// Surface holds editable HTML with a cursor and selection.
//
// Version increments on every effective change to text, cursor or
// selection, so hosts can cheaply detect staleness.
type Surface struct {
	text    string
	version uint64

	cursor int
	sel    selectionState
}

func New(text string) *Surface {
	return &Surface{text: text, cursor: len(text)}
}

func (s *Surface) Text() string { return s.text }

func (s *Surface) Version() uint64 { return s.version }

func (s *Surface) Cursor() int { return s.cursor }

// SetText replaces the whole content, moving the cursor to the end.
func (s *Surface) SetText(text string) {
	if text == s.text && s.cursor == len(text) && !s.sel.active {
		return
	}
	s.text = text
	s.cursor = len(text)
	s.sel = selectionState{}
	s.version++
}

func (s *Surface) SetCursor(off int) {
	next := grapheme.Snap(s.text, clampInt(off, 0, len(s.text)))
	if next == s.cursor && !s.sel.active {
		return
	}
	s.cursor = next
	s.sel = selectionState{}
	s.version++
}

func (s *Surface) Selection() (Range, bool) {
	if !s.sel.active {
		return Range{}, false
	}
	r := NormalizeRange(Range{Start: s.sel.anchor, End: s.sel.end})
	if r.IsEmpty() {
		return Range{}, false
	}
	return r, true
}

// SelectionRaw returns the anchor/end pair without normalization, which
// preserves the selection direction.
func (s *Surface) SelectionRaw() (Range, bool) {
	if !s.sel.active || s.sel.anchor == s.sel.end {
		return Range{}, false
	}
	return Range{Start: s.sel.anchor, End: s.sel.end}, true
}

// SetSelection selects r; the cursor moves to r.End. An empty range clears
// the selection.
func (s *Surface) SetSelection(r Range) {
	anchor := grapheme.Snap(s.text, clampInt(r.Start, 0, len(s.text)))
	end := grapheme.Snap(s.text, clampInt(r.End, 0, len(s.text)))

	prev := s.sel
	prevCursor := s.cursor
	if anchor == end {
		s.sel = selectionState{}
	} else {
		s.sel = selectionState{active: true, anchor: anchor, end: end}
	}
	s.cursor = end
	if prev != s.sel || prevCursor != s.cursor {
		s.version++
	}
}

func (s *Surface) SelectAll() {
	s.SetSelection(Range{Start: 0, End: len(s.text)})
}

func (s *Surface) ClearSelection() {
	if !s.sel.active {
		return
	}
	s.sel = selectionState{}
	s.version++
}

// SelectedText returns the selected HTML source, or "".
func (s *Surface) SelectedText() string {
	r, ok := s.Selection()
	if !ok {
		return ""
	}
	return s.text[r.Start:r.End]
}

// InsertText inserts at the cursor, or replaces the active selection.
func (s *Surface) InsertText(text string) {
	r, ok := s.Selection()
	if !ok {
		r = Range{Start: s.cursor, End: s.cursor}
	}
	s.ReplaceRange(r, text)
}

// ReplaceRange replaces r with text and leaves the cursor after it.
func (s *Surface) ReplaceRange(r Range, text string) {
	r = NormalizeRange(r)
	r.Start = clampInt(r.Start, 0, len(s.text))
	r.End = clampInt(r.End, r.Start, len(s.text))
	if r.IsEmpty() && text == "" {
		return
	}

	s.text = s.text[:r.Start] + text + s.text[r.End:]
	s.cursor = r.Start + len(text)
	s.sel = selectionState{}
	s.version++
}

// DeleteSelection removes the selected text. It reports whether anything
// was removed.
func (s *Surface) DeleteSelection() bool {
	r, ok := s.Selection()
	if !ok {
		return false
	}
	s.ReplaceRange(r, "")
	return true
}

// DeleteBackward applies backspace semantics.
func (s *Surface) DeleteBackward() {
	if s.DeleteSelection() {
		return
	}
	if s.cursor == 0 {
		return
	}
	s.ReplaceRange(Range{Start: grapheme.Prev(s.text, s.cursor), End: s.cursor}, "")
}

// DeleteForward applies delete-key semantics.
func (s *Surface) DeleteForward() {
	if s.DeleteSelection() {
		return
	}
	if s.cursor >= len(s.text) {
		return
	}
	s.ReplaceRange(Range{Start: s.cursor, End: grapheme.Next(s.text, s.cursor)}, "")
}

// LineBounds returns the [start, end) offsets of the line containing off,
// excluding the trailing newline.
func (s *Surface) LineBounds(off int) (int, int) {
	off = clampInt(off, 0, len(s.text))
	start := strings.LastIndexByte(s.text[:off], '\n') + 1
	end := len(s.text)
	if i := strings.IndexByte(s.text[off:], '\n'); i >= 0 {
		end = off + i
	}
	return start, end
}

// LineBeforeCursor returns the text between the start of the cursor's line
// and the cursor.
func (s *Surface) LineBeforeCursor() string {
	start, _ := s.LineBounds(s.cursor)
	return s.text[start:s.cursor]
}

// Lines splits the content on newlines. An empty surface has one empty line.
func (s *Surface) Lines() []string {
	return strings.Split(s.text, "\n")
}

// Position converts an offset into a row and grapheme column.
func (s *Surface) Position(off int) Pos {
	off = clampInt(off, 0, len(s.text))
	row := strings.Count(s.text[:off], "\n")
	start, _ := s.LineBounds(off)
	return Pos{Row: row, Col: grapheme.Count(s.text[start:off])}
}

// Offset converts a row and grapheme column into an offset, clamping both.
func (s *Surface) Offset(p Pos) int {
	lines := s.Lines()
	row := clampInt(p.Row, 0, len(lines)-1)
	off := 0
	for i := 0; i < row; i++ {
		off += len(lines[i]) + 1
	}
	return off + grapheme.OffsetAtCol(lines[row], p.Col)
}
