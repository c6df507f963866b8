package surface

import "github.com/iw2rmb/quill/internal/grapheme"

// Move moves the cursor, optionally extending the selection.
//
// Without Extend, a horizontal grapheme move over an active selection
// collapses it to the corresponding edge.
func (s *Surface) Move(m Move) {
	from := s.cursor
	r, hasSel := s.Selection()

	if !m.Extend && hasSel && m.Unit == MoveGrapheme {
		switch m.Dir {
		case DirLeft:
			s.SetCursor(r.Start)
			return
		case DirRight:
			s.SetCursor(r.End)
			return
		}
	}

	to := s.target(from, m)
	if !m.Extend {
		s.SetCursor(to)
		return
	}

	anchor := from
	if s.sel.active {
		anchor = s.sel.anchor
	}
	s.SetSelection(Range{Start: anchor, End: to})
}

func (s *Surface) target(from int, m Move) int {
	switch m.Unit {
	case MoveGrapheme:
		switch m.Dir {
		case DirLeft:
			return grapheme.Prev(s.text, from)
		case DirRight:
			return grapheme.Next(s.text, from)
		case DirUp, DirDown:
			return s.vertical(from, m.Dir)
		case DirHome, DirEnd:
			return s.lineEdge(from, m.Dir)
		}
	case MoveWord:
		switch m.Dir {
		case DirLeft:
			return s.wordLeft(from)
		case DirRight:
			return s.wordRight(from)
		}
	case MoveLine:
		switch m.Dir {
		case DirUp, DirDown:
			return s.vertical(from, m.Dir)
		case DirHome, DirEnd:
			return s.lineEdge(from, m.Dir)
		}
	case MoveDocument:
		switch m.Dir {
		case DirLeft, DirUp, DirHome:
			return 0
		case DirRight, DirDown, DirEnd:
			return len(s.text)
		}
	}
	return from
}

func (s *Surface) lineEdge(from int, dir MoveDir) int {
	start, end := s.LineBounds(from)
	if dir == DirHome {
		return start
	}
	return end
}

func (s *Surface) vertical(from int, dir MoveDir) int {
	p := s.Position(from)
	switch dir {
	case DirUp:
		if p.Row == 0 {
			return 0
		}
		p.Row--
	case DirDown:
		if p.Row >= len(s.Lines())-1 {
			return len(s.text)
		}
		p.Row++
	}
	return s.Offset(p)
}

func (s *Surface) wordLeft(from int) int {
	off := from
	for off > 0 {
		prev := grapheme.Prev(s.text, off)
		if !isWordBreak(s.text[prev:off]) {
			break
		}
		off = prev
	}
	for off > 0 {
		prev := grapheme.Prev(s.text, off)
		if isWordBreak(s.text[prev:off]) {
			break
		}
		off = prev
	}
	return off
}

func (s *Surface) wordRight(from int) int {
	off := from
	for off < len(s.text) {
		next := grapheme.Next(s.text, off)
		if isWordBreak(s.text[off:next]) {
			break
		}
		off = next
	}
	for off < len(s.text) {
		next := grapheme.Next(s.text, off)
		if !isWordBreak(s.text[off:next]) {
			break
		}
		off = next
	}
	return off
}

// Tag delimiters count as breaks so word moves stop at markup.
func isWordBreak(cluster string) bool {
	return grapheme.IsSpace(cluster) || cluster == "<" || cluster == ">"
}
