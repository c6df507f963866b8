package editor

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/quill/richtext"
)

// ToolbarButton is a built-in toolbar entry.
type ToolbarButton uint8

const (
	ButtonSeparator ToolbarButton = iota

	ButtonBold
	ButtonItalic
	ButtonUnderline
	ButtonStrikethrough
	ButtonSubscript
	ButtonSuperscript
	ButtonForeColor
	ButtonBackColor
	ButtonRemoveFormat

	ButtonHeading1
	ButtonHeading2
	ButtonHeading3
	ButtonParagraph
	ButtonBlockquote
	ButtonCodeBlock
	ButtonUnorderedList
	ButtonOrderedList
	ButtonIndent
	ButtonOutdent
	ButtonAlignLeft
	ButtonAlignCenter
	ButtonAlignRight
	ButtonAlignJustify

	ButtonLink
	ButtonTable
	ButtonImage
	ButtonVideo
	ButtonEmoji

	ButtonUndo
	ButtonRedo
	ButtonSave
	ButtonFullscreen
)

// DefaultToolbar returns the built-in button layout.
func DefaultToolbar() []ToolbarButton {
	return []ToolbarButton{
		ButtonBold, ButtonItalic, ButtonUnderline, ButtonStrikethrough,
		ButtonSeparator,
		ButtonHeading1, ButtonHeading2, ButtonHeading3, ButtonBlockquote, ButtonCodeBlock,
		ButtonSeparator,
		ButtonUnorderedList, ButtonOrderedList, ButtonAlignLeft, ButtonAlignCenter, ButtonAlignRight,
		ButtonSeparator,
		ButtonLink, ButtonTable, ButtonImage, ButtonEmoji,
		ButtonSeparator,
		ButtonUndo, ButtonRedo, ButtonFullscreen,
	}
}

type buttonInfo struct {
	label string

	cmd    richtext.Command
	value  string
	hasCmd bool
	// query lights the button from QueryState(cmd).
	query bool

	prompt promptKind
}

var buttonInfos = map[ToolbarButton]buttonInfo{
	ButtonBold:          {label: "B", cmd: richtext.CmdBold, hasCmd: true, query: true},
	ButtonItalic:        {label: "I", cmd: richtext.CmdItalic, hasCmd: true, query: true},
	ButtonUnderline:     {label: "U", cmd: richtext.CmdUnderline, hasCmd: true, query: true},
	ButtonStrikethrough: {label: "S", cmd: richtext.CmdStrikethrough, hasCmd: true, query: true},
	ButtonSubscript:     {label: "x₂", cmd: richtext.CmdSubscript, hasCmd: true, query: true},
	ButtonSuperscript:   {label: "x²", cmd: richtext.CmdSuperscript, hasCmd: true, query: true},
	ButtonForeColor:     {label: "Color", prompt: promptForeColor},
	ButtonBackColor:     {label: "Bg", prompt: promptBackColor},
	ButtonRemoveFormat:  {label: "Clear", cmd: richtext.CmdRemoveFormat, hasCmd: true},

	ButtonHeading1:      {label: "H1", cmd: richtext.CmdHeading, value: "1", hasCmd: true},
	ButtonHeading2:      {label: "H2", cmd: richtext.CmdHeading, value: "2", hasCmd: true},
	ButtonHeading3:      {label: "H3", cmd: richtext.CmdHeading, value: "3", hasCmd: true},
	ButtonParagraph:     {label: "P", cmd: richtext.CmdParagraph, hasCmd: true, query: true},
	ButtonBlockquote:    {label: "Quote", cmd: richtext.CmdBlockquote, hasCmd: true, query: true},
	ButtonCodeBlock:     {label: "Code", cmd: richtext.CmdCodeBlock, hasCmd: true, query: true},
	ButtonUnorderedList: {label: "• List", cmd: richtext.CmdUnorderedList, hasCmd: true, query: true},
	ButtonOrderedList:   {label: "1. List", cmd: richtext.CmdOrderedList, hasCmd: true, query: true},
	ButtonIndent:        {label: "Indent", cmd: richtext.CmdIndent, hasCmd: true},
	ButtonOutdent:       {label: "Outdent", cmd: richtext.CmdOutdent, hasCmd: true},
	ButtonAlignLeft:     {label: "Left", cmd: richtext.CmdAlignLeft, hasCmd: true, query: true},
	ButtonAlignCenter:   {label: "Center", cmd: richtext.CmdAlignCenter, hasCmd: true, query: true},
	ButtonAlignRight:    {label: "Right", cmd: richtext.CmdAlignRight, hasCmd: true, query: true},
	ButtonAlignJustify:  {label: "Justify", cmd: richtext.CmdAlignJustify, hasCmd: true, query: true},

	ButtonLink:  {label: "Link", prompt: promptLink},
	ButtonTable: {label: "Table", prompt: promptTable},
	ButtonImage: {label: "Image", prompt: promptImage},
	ButtonVideo: {label: "Video", prompt: promptVideo},
	ButtonEmoji: {label: "Emoji", prompt: promptEmoji},

	ButtonUndo:       {label: "Undo"},
	ButtonRedo:       {label: "Redo"},
	ButtonSave:       {label: "Save"},
	ButtonFullscreen: {label: "Full"},
}

type toolbarEntry struct {
	label    string
	active   bool
	disabled bool
	sep      bool
	press    func(m *Model) tea.Cmd
}

// toolbarHit is the screen area of one entry.
type toolbarHit struct {
	row, x0, x1 int
	entry       int
}

func (m Model) toolbarButtons() []ToolbarButton {
	if m.cfg.Toolbar != nil {
		return m.cfg.Toolbar
	}
	return DefaultToolbar()
}

func (m Model) toolbarEntries() []toolbarEntry {
	s := m.sess
	editable := s.Editable()

	var out []toolbarEntry
	for _, b := range m.toolbarButtons() {
		if b == ButtonSeparator {
			out = append(out, toolbarEntry{sep: true})
			continue
		}
		info, ok := buttonInfos[b]
		if !ok {
			continue
		}
		e := toolbarEntry{label: info.label, disabled: !editable}
		switch {
		case info.hasCmd:
			if info.query {
				e.active = s.QueryState(info.cmd)
			}
			e.press = func(m *Model) tea.Cmd {
				_ = m.sess.Exec(info.cmd, info.value)
				return nil
			}
		case info.prompt != promptNone:
			e.press = func(m *Model) tea.Cmd {
				m.openPrompt(info.prompt)
				return nil
			}
		}

		switch b {
		case ButtonUndo:
			e.disabled = !s.CanUndo()
			e.press = func(m *Model) tea.Cmd {
				m.sess.Undo()
				return nil
			}
		case ButtonRedo:
			e.disabled = !s.CanRedo()
			e.press = func(m *Model) tea.Cmd {
				m.sess.Redo()
				return nil
			}
		case ButtonSave:
			e.disabled = false
			e.press = func(m *Model) tea.Cmd { return m.saveCmd() }
		case ButtonFullscreen:
			e.disabled = false
			e.active = s.Fullscreen()
			e.press = func(m *Model) tea.Cmd {
				m.sess.ToggleFullscreen()
				return nil
			}
		}
		out = append(out, e)
	}

	for _, item := range m.cfg.ToolbarItems {
		label := item.Label
		if item.Icon != "" {
			label = item.Icon
		}
		e := toolbarEntry{label: label, disabled: !editable}
		e.active = m.itemActive(item)
		e.press = func(m *Model) tea.Cmd {
			m.runItem(item)
			return nil
		}
		out = append(out, e)
	}
	return out
}

func (m Model) itemActive(item ToolbarItem) (active bool) {
	if item.Active == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			m.sess.log.Warn("toolbar item state panicked", "item", item.Label, "panic", r)
			active = false
		}
	}()
	return item.Active(m.sess)
}

func (m Model) runItem(item ToolbarItem) {
	if item.Action == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			m.sess.log.Error("toolbar item panicked", "item", item.Label, "panic", r)
		}
	}()
	item.Action(m.sess)
}

// layoutToolbar renders entries into rows no wider than width (0 means one
// row) and records where each entry landed.
func (m Model) layoutToolbar(entries []toolbarEntry, width int) ([]string, []toolbarHit) {
	st := m.style

	var rows []string
	var hits []toolbarHit
	var line string
	x := 0
	for i, e := range entries {
		var cell string
		switch {
		case e.sep:
			cell = st.ToolbarDisabled.Render("|")
		case e.disabled:
			cell = st.ToolbarDisabled.Render(e.label)
		case e.active:
			cell = st.ToolbarActive.Render(e.label)
		default:
			cell = st.ToolbarButton.Render(e.label)
		}
		w := lipgloss.Width(cell)
		if width > 0 && x > 0 && x+w > width {
			rows = append(rows, line)
			line, x = "", 0
			if e.sep {
				continue
			}
		}
		if !e.sep {
			hits = append(hits, toolbarHit{row: len(rows), x0: x, x1: x + w, entry: i})
		}
		line += cell
		x += w
	}
	if line != "" || len(rows) == 0 {
		rows = append(rows, line)
	}

	for i, row := range rows {
		bar := st.Toolbar
		if width > 0 {
			bar = bar.Width(width)
		}
		rows[i] = bar.Render(row)
	}
	return rows, hits
}

func (m Model) renderToolbar() ([]string, []toolbarEntry, []toolbarHit) {
	if !m.cfg.ShowToolbar {
		return nil, nil, nil
	}
	entries := m.toolbarEntries()
	rows, hits := m.layoutToolbar(entries, m.width)
	return rows, entries, hits
}

// pressToolbar runs the entry under (x, row) of the toolbar.
func (m *Model) pressToolbar(x, row int) tea.Cmd {
	_, entries, hits := m.renderToolbar()
	for _, h := range hits {
		if h.row != row || x < h.x0 || x >= h.x1 {
			continue
		}
		e := entries[h.entry]
		if e.disabled || e.press == nil {
			return nil
		}
		return e.press(m)
	}
	return nil
}
