package editor

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/quill/surface"
)

func (m Model) updateMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	toolbarRows := 0
	if rows, _, _ := m.renderToolbar(); len(rows) > 0 {
		toolbarRows = len(rows)
	}

	// Wheel scrolling is handled by the viewport; adjust y into its space.
	vmsg := msg
	vmsg.Y -= toolbarRows
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(vmsg)

	s := m.sess
	if s.Closed() || m.prompt.active() {
		return m, cmd
	}

	// Only handle selection/cursor changes for left button interactions.
	switch msg.Action { //nolint:exhaustive
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, cmd
		}
		if msg.Y < toolbarRows {
			pressCmd := m.pressToolbar(msg.X, msg.Y)
			m.refresh()
			return m, tea.Batch(cmd, pressCmd)
		}
		off, ok := m.screenToOffset(msg.X, msg.Y-toolbarRows)
		if !ok {
			return m, cmd
		}
		s.Focus()
		if msg.Shift {
			snap := s.Snapshot()
			anchor := snap.Cursor
			if snap.SelectionActive {
				anchor = snap.Selection.Start
			}
			m.mouseAnchor = anchor
			s.Select(surface.Range{Start: anchor, End: off})
		} else {
			m.mouseAnchor = off
			s.SetCursor(off)
		}
		m.mouseDragging = true

	case tea.MouseActionMotion:
		if !m.mouseDragging {
			return m, cmd
		}
		off, ok := m.screenToOffset(msg.X, msg.Y-toolbarRows)
		if !ok {
			return m, cmd
		}
		s.Select(surface.Range{Start: m.mouseAnchor, End: off})

	case tea.MouseActionRelease:
		m.mouseDragging = false
		return m, cmd

	default:
		return m, cmd
	}

	m.refresh()
	return m, cmd
}

// screenToOffset maps a point inside the surface area to a byte offset,
// clamping to the rendered rows.
func (m Model) screenToOffset(x, y int) (int, bool) {
	if y < 0 || y >= m.viewport.Height || len(m.layout.rows) == 0 {
		return 0, false
	}
	row := m.viewport.YOffset + y
	if row >= len(m.layout.rows) {
		row = len(m.layout.rows) - 1
	}
	col := x - m.cfg.FontSize.padding()
	if col < 0 {
		col = 0
	}
	return offsetAt(m.layout.text, m.layout.rows[row], col), true
}
