package surface

// Snapshot captures text, cursor and selection so a failed edit can be
// rolled back.
type Snapshot struct {
	Text   string
	Cursor int

	// Selection keeps the anchor/end direction.
	Selection       Range
	SelectionActive bool
}

func (s *Surface) Snapshot() Snapshot {
	snap := Snapshot{Text: s.text, Cursor: s.cursor}
	if r, ok := s.SelectionRaw(); ok {
		snap.Selection = r
		snap.SelectionActive = true
	}
	return snap
}

// Restore puts the surface back into snap. The version still increments
// when anything differs, so observers re-read.
func (s *Surface) Restore(snap Snapshot) {
	prev := s.Snapshot()
	if prev == snap {
		return
	}
	s.text = snap.Text
	s.cursor = clampInt(snap.Cursor, 0, len(s.text))
	s.sel = selectionState{}
	if snap.SelectionActive {
		s.sel = selectionState{
			active: true,
			anchor: clampInt(snap.Selection.Start, 0, len(s.text)),
			end:    clampInt(snap.Selection.End, 0, len(s.text)),
		}
	}
	s.version++
}
