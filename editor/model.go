package editor

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/quill/autosave"
)

// SavedMsg carries an autosave outcome into Update.
type SavedMsg struct {
	autosave.Event
}

type noticeMsg string

// Model is a Bubble Tea component that presents a Session: toolbar,
// surface and status line.
type Model struct {
	cfg   Config
	sess  *Session
	style Style

	viewport viewport.Model
	width    int
	height   int

	layout surfaceLayout
	prompt prompt
	notice string

	mouseAnchor   int
	mouseDragging bool
}

// New creates a Session from cfg and wraps it in a Model.
func New(cfg Config) Model {
	return NewWithSession(NewSession(cfg))
}

// NewWithSession presents an existing session.
func NewWithSession(s *Session) Model {
	cfg := s.Config()
	style := ThemeStyle(cfg.Theme)
	if cfg.Style != nil {
		style = *cfg.Style
	}
	m := Model{
		cfg:      cfg,
		sess:     s,
		style:    style,
		viewport: viewport.New(0, 0),
	}
	m.refresh()
	return m
}

func (m Model) Session() *Session { return m.sess }

func (m Model) Value() string { return m.sess.Value() }

// Init starts listening for autosave outcomes.
func (m Model) Init() tea.Cmd { return waitForSave(m.sess.SaveEvents()) }

func waitForSave(ch <-chan autosave.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return SavedMsg{Event: ev}
	}
}

func (m Model) SetSize(width, height int) Model {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.width = width
	m.height = height
	m.refresh()
	return m
}

func (m Model) Focus() Model {
	m.sess.Focus()
	m.refresh()
	return m
}

func (m Model) Blur() Model {
	m.sess.Blur()
	m.refresh()
	return m
}

func (m Model) Focused() bool { return m.sess.Focused() }

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		if m.prompt.active() {
			return m.updatePrompt(msg)
		}
		return m.updateKey(msg)
	case tea.MouseMsg:
		return m.updateMouse(msg)
	case SavedMsg:
		if msg.Err != nil {
			m.notice = "save failed: " + msg.Err.Error()
		}
		return m, waitForSave(m.sess.SaveEvents())
	case noticeMsg:
		m.notice = string(msg)
		return m, nil
	}
	// The host may have changed the session directly.
	m.refresh()
	return m, nil
}

func (m Model) View() string {
	toolbar, _, _ := m.renderToolbar()
	parts := append([]string(nil), toolbar...)
	parts = append(parts, m.viewport.View())
	if m.prompt.active() {
		parts = append(parts, m.renderPrompt())
	}
	parts = append(parts, m.renderStatus())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) notify(err error) {
	if err != nil && !errors.Is(err, ErrNotEditable) {
		m.notice = err.Error()
	}
}

func (m Model) saveCmd() tea.Cmd {
	s := m.sess
	return func() tea.Msg {
		if err := s.Save(); errors.Is(err, autosave.ErrNoSaveFunc) {
			return noticeMsg("nothing to save to")
		}
		// Outcomes arrive as SavedMsg.
		return nil
	}
}

func (m Model) contentWidth() int {
	if m.width <= 0 {
		return 0
	}
	w := m.width - 2*m.cfg.FontSize.padding()
	if w < 1 {
		w = 1
	}
	return w
}

// refresh re-renders the surface from the session and resizes the viewport
// around it, keeping the cursor row visible.
func (m *Model) refresh() {
	snap := m.sess.Snapshot()
	m.layout = renderSurface(snap, m.style, m.sess.Focused(), m.contentWidth(), m.cfg.FontSize.padding(), m.cfg.Placeholder)

	m.viewport.Width = m.width
	m.viewport.Height = m.surfaceHeight(len(m.layout.lines))
	m.viewport.SetContent(strings.Join(m.layout.lines, "\n"))
	m.followCursor(m.layout.cursorRow)
}

func (m Model) chromeHeight() int {
	h := 1 // status
	if rows, _, _ := m.renderToolbar(); len(rows) > 0 {
		h += len(rows)
	}
	if m.prompt.active() {
		h += lipgloss.Height(m.renderPrompt())
	}
	return h
}

func (m Model) surfaceHeight(rows int) int {
	h := rows
	avail := m.height - m.chromeHeight()
	switch {
	case m.sess.Fullscreen() && m.height > 0:
		h = avail
	default:
		if h < m.cfg.MinHeight {
			h = m.cfg.MinHeight
		}
		if m.cfg.MaxHeight > 0 && h > m.cfg.MaxHeight {
			h = m.cfg.MaxHeight
		}
		if m.height > 0 && h > avail {
			h = avail
		}
	}
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) followCursor(row int) {
	h := m.viewport.Height
	if h <= 0 {
		return
	}
	y := m.viewport.YOffset
	if row < y {
		m.viewport.SetYOffset(row)
		return
	}
	if row >= y+h {
		m.viewport.SetYOffset(row - h + 1)
	}
}
