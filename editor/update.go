package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/iw2rmb/quill/richtext"
	"github.com/iw2rmb/quill/surface"
)

func (m Model) updateKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	s := m.sess
	if !s.Focused() || s.Closed() {
		return m, nil
	}
	m.notice = ""

	// Paste events should always insert literal text and never trigger shortcuts.
	if msg.Type == tea.KeyRunes && msg.Paste && len(msg.Runes) > 0 {
		s.Paste(string(msg.Runes))
		m.refresh()
		return m, nil
	}

	if m.cfg.KeyboardShortcuts {
		if cmd, ok := m.updateShortcut(msg); ok {
			m.refresh()
			return m, cmd
		}
	}

	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Left):
		s.Move(surface.Move{Unit: surface.MoveGrapheme, Dir: surface.DirLeft})
	case key.Matches(msg, km.Right):
		s.Move(surface.Move{Unit: surface.MoveGrapheme, Dir: surface.DirRight})
	case key.Matches(msg, km.Up):
		s.Move(surface.Move{Unit: surface.MoveLine, Dir: surface.DirUp})
	case key.Matches(msg, km.Down):
		s.Move(surface.Move{Unit: surface.MoveLine, Dir: surface.DirDown})

	case key.Matches(msg, km.ShiftLeft):
		s.Move(surface.Move{Unit: surface.MoveGrapheme, Dir: surface.DirLeft, Extend: true})
	case key.Matches(msg, km.ShiftRight):
		s.Move(surface.Move{Unit: surface.MoveGrapheme, Dir: surface.DirRight, Extend: true})
	case key.Matches(msg, km.ShiftUp):
		s.Move(surface.Move{Unit: surface.MoveLine, Dir: surface.DirUp, Extend: true})
	case key.Matches(msg, km.ShiftDown):
		s.Move(surface.Move{Unit: surface.MoveLine, Dir: surface.DirDown, Extend: true})

	case key.Matches(msg, km.WordLeft):
		s.Move(surface.Move{Unit: surface.MoveWord, Dir: surface.DirLeft})
	case key.Matches(msg, km.WordRight):
		s.Move(surface.Move{Unit: surface.MoveWord, Dir: surface.DirRight})

	case key.Matches(msg, km.Home):
		s.Move(surface.Move{Unit: surface.MoveLine, Dir: surface.DirHome})
	case key.Matches(msg, km.End):
		s.Move(surface.Move{Unit: surface.MoveLine, Dir: surface.DirEnd})
	case key.Matches(msg, km.DocStart):
		s.Move(surface.Move{Unit: surface.MoveDocument, Dir: surface.DirHome})
	case key.Matches(msg, km.DocEnd):
		s.Move(surface.Move{Unit: surface.MoveDocument, Dir: surface.DirEnd})
	case key.Matches(msg, km.SelectAll):
		s.SelectAll()

	case key.Matches(msg, km.Backspace):
		s.Backspace()
	case key.Matches(msg, km.Delete):
		s.Delete()
	case key.Matches(msg, km.Enter):
		s.Newline()
	case key.Matches(msg, km.Tab):
		s.Type("\t")

	case key.Matches(msg, km.Copy):
		m.copySelection()
	case key.Matches(msg, km.Cut):
		if s.Editable() {
			m.cutSelection()
		} else {
			m.copySelection()
		}
	case key.Matches(msg, km.Paste):
		m.pasteClipboard()

	case msg.Type == tea.KeySpace:
		if !s.HandleSpace() {
			s.Type(" ")
		}

	default:
		if msg.Type == tea.KeyRunes && len(msg.Runes) > 0 && !msg.Alt {
			s.Type(string(msg.Runes))
		}
	}

	m.refresh()
	return m, nil
}

// updateShortcut handles formatting, insert, history, save and fullscreen
// keys. Save and fullscreen go through the Hub when one is configured.
func (m *Model) updateShortcut(msg tea.KeyMsg) (tea.Cmd, bool) {
	s := m.sess
	km := m.cfg.KeyMap

	if m.cfg.Hub == nil {
		switch {
		case key.Matches(msg, km.Save):
			return m.saveCmd(), true
		case key.Matches(msg, km.Fullscreen):
			s.ToggleFullscreen()
			return nil, true
		}
	}

	switch {
	case key.Matches(msg, km.Bold):
		m.notify(s.Exec(richtext.CmdBold, ""))
	case key.Matches(msg, km.Italic):
		m.notify(s.Exec(richtext.CmdItalic, ""))
	case key.Matches(msg, km.Underline):
		m.notify(s.Exec(richtext.CmdUnderline, ""))
	case key.Matches(msg, km.Link):
		m.openPrompt(promptLink)
	case key.Matches(msg, km.Table):
		m.openPrompt(promptTable)
	case key.Matches(msg, km.Image):
		m.openPrompt(promptImage)
	case key.Matches(msg, km.Video):
		m.openPrompt(promptVideo)
	case key.Matches(msg, km.Emoji):
		m.openPrompt(promptEmoji)
	case key.Matches(msg, km.Undo):
		s.Undo()
	case key.Matches(msg, km.Redo):
		s.Redo()
	default:
		return nil, false
	}
	return nil, true
}

func (m Model) copySelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	text := m.sess.SelectedText()
	if text == "" {
		return
	}
	if err := m.cfg.Clipboard.WriteText(text); err != nil {
		m.sess.log.Debug("clipboard write failed", "err", err)
	}
}

func (m Model) cutSelection() {
	if m.cfg.Clipboard == nil {
		return
	}
	if m.sess.SelectedText() == "" {
		return
	}
	if err := m.cfg.Clipboard.WriteText(m.sess.Cut()); err != nil {
		m.sess.log.Debug("clipboard write failed", "err", err)
	}
}

func (m Model) pasteClipboard() {
	if m.cfg.Clipboard == nil || !m.sess.Editable() {
		return
	}
	text, err := m.cfg.Clipboard.ReadText()
	if err != nil {
		m.sess.log.Debug("clipboard read failed", "err", err)
		return
	}
	// Normalize newlines from external sources.
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	m.sess.Paste(text)
}
