package editor

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/quill/richtext"
)

type promptKind uint8

const (
	promptNone promptKind = iota
	promptLink
	promptTable
	promptImage
	promptVideo
	promptEmoji
	promptForeColor
	promptBackColor
)

type promptField struct {
	label       string
	placeholder string
}

var promptFields = map[promptKind][]promptField{
	promptLink:      {{"URL", "https://"}, {"Text", "link text (optional)"}},
	promptTable:     {{"Rows", "3"}, {"Columns", "3"}},
	promptImage:     {{"Image file", "path/to/image.png"}},
	promptVideo:     {{"Video file", "path/to/video.mp4"}},
	promptEmoji:     {{"Emoji", "1-" + strconv.Itoa(len(richtext.Emojis)) + " or a character"}},
	promptForeColor: {{"Text color", "#c0392b"}},
	promptBackColor: {{"Background", "#fff3b0"}},
}

// prompt collects the values of an insert command, one textinput per
// field. The zero value is closed.
type prompt struct {
	kind   promptKind
	fields []textinput.Model
	focus  int
}

func newPrompt(kind promptKind) prompt {
	specs := promptFields[kind]
	p := prompt{kind: kind, fields: make([]textinput.Model, len(specs))}
	for i, spec := range specs {
		ti := textinput.New()
		ti.Prompt = spec.label + ": "
		ti.Placeholder = spec.placeholder
		ti.CharLimit = 4096
		p.fields[i] = ti
	}
	if len(p.fields) > 0 {
		p.fields[0].Focus()
	}
	return p
}

func (p prompt) active() bool { return p.kind != promptNone }

func (p prompt) values() []string {
	out := make([]string, len(p.fields))
	for i, f := range p.fields {
		out[i] = f.Value()
	}
	return out
}

func (p *prompt) setFocus(i int) {
	if len(p.fields) == 0 {
		return
	}
	p.fields[p.focus].Blur()
	p.focus = (i + len(p.fields)) % len(p.fields)
	p.fields[p.focus].Focus()
}

func (m *Model) openPrompt(kind promptKind) {
	if !m.sess.Editable() {
		return
	}
	m.prompt = newPrompt(kind)
	m.sess.Blur()
}

func (m *Model) closePrompt() {
	m.prompt = prompt{}
	m.sess.Focus()
}

func (m Model) updatePrompt(msg tea.KeyMsg) (Model, tea.Cmd) {
	km := m.cfg.KeyMap
	switch {
	case key.Matches(msg, km.Cancel):
		kind := m.prompt.kind
		m.closePrompt()
		// A cancelled table prompt still inserts the default grid.
		if kind == promptTable {
			m.notify(m.sess.InsertTable("", ""))
		}
		m.refresh()
		return m, nil

	case msg.Type == tea.KeyEnter:
		if m.prompt.focus < len(m.prompt.fields)-1 {
			m.prompt.setFocus(m.prompt.focus + 1)
			return m, nil
		}
		p := m.prompt
		m.closePrompt()
		m.notify(m.submitPrompt(p.kind, p.values()))
		m.refresh()
		return m, nil

	case msg.Type == tea.KeyTab:
		m.prompt.setFocus(m.prompt.focus + 1)
		return m, nil
	case msg.Type == tea.KeyShiftTab:
		m.prompt.setFocus(m.prompt.focus - 1)
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt.fields[m.prompt.focus], cmd = m.prompt.fields[m.prompt.focus].Update(msg)
	return m, cmd
}

func (m Model) submitPrompt(kind promptKind, v []string) error {
	s := m.sess
	switch kind {
	case promptLink:
		return s.InsertLink(v[0], v[1])
	case promptTable:
		return s.InsertTable(v[0], v[1])
	case promptImage:
		return insertPath(s, richtext.MediaImage, v[0])
	case promptVideo:
		return insertPath(s, richtext.MediaVideo, v[0])
	case promptEmoji:
		return s.InsertEmoji(pickEmoji(v[0]))
	case promptForeColor:
		return s.Exec(richtext.CmdForeColor, v[0])
	case promptBackColor:
		return s.Exec(richtext.CmdBackColor, v[0])
	}
	return nil
}

func insertPath(s *Session, kind richtext.MediaKind, path string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}
	return s.InsertMediaFile(kind, path)
}

// pickEmoji resolves a 1-based palette index; anything else is inserted
// verbatim.
func pickEmoji(v string) string {
	v = strings.TrimSpace(v)
	if n, err := strconv.Atoi(v); err == nil {
		if n >= 1 && n <= len(richtext.Emojis) {
			return richtext.Emojis[n-1]
		}
		return ""
	}
	return v
}

func (m Model) renderPrompt() string {
	if !m.prompt.active() {
		return ""
	}
	rows := make([]string, 0, len(m.prompt.fields)+1)
	for _, f := range m.prompt.fields {
		rows = append(rows, f.View())
	}
	if m.prompt.kind == promptEmoji {
		rows = append(rows, emojiPalette())
	}
	st := m.style.Prompt
	if m.width > 0 {
		st = st.Width(m.width - st.GetHorizontalBorderSize())
	}
	return st.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func emojiPalette() string {
	var sb strings.Builder
	for i, e := range richtext.Emojis {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(strconv.Itoa(i + 1))
		sb.WriteByte(':')
		sb.WriteString(e)
	}
	return sb.String()
}
