package editor

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/iw2rmb/quill/metrics"
)

func (m Model) levelStyle(l metrics.Level) lipgloss.Style {
	switch l {
	case metrics.LevelWarning:
		return m.style.Warning
	case metrics.LevelExceeded:
		return m.style.Exceeded
	}
	return m.style.Status
}

// countLabel renders "12 words" or, with a limit, "12/500 words".
func countLabel(n, max int, unit string) string {
	s := strconv.Itoa(n)
	if max > 0 {
		s += "/" + strconv.Itoa(max)
	}
	if n == 1 && max <= 0 {
		return s + " " + unit
	}
	return s + " " + unit + "s"
}

func (m Model) renderStatus() string {
	s := m.sess
	st := m.style
	rep := s.Report()

	var parts []string
	if m.cfg.ShowWordCount {
		parts = append(parts, m.levelStyle(rep.WordLevel).Render(countLabel(rep.Words, m.cfg.MaxWords, "word")))
	}
	if m.cfg.ShowCharCount {
		parts = append(parts, m.levelStyle(rep.CharLevel).Render(countLabel(rep.Chars, m.cfg.MaxChars, "char")))
	}

	if m.cfg.AutoSave || m.cfg.OnAutoSave != nil {
		if s.Dirty() {
			label := "unsaved"
			if d := s.UnsavedDiff(); !d.IsZero() {
				label += " +" + strconv.Itoa(d.Inserted) + " -" + strconv.Itoa(d.Deleted)
			}
			parts = append(parts, st.Unsaved.Render(label))
		} else if at, ok := s.LastSaved(); ok {
			parts = append(parts, st.Saved.Render("saved "+at.Format("15:04:05")))
		}
	}

	cfg := s.Config()
	switch {
	case cfg.Disabled:
		parts = append(parts, st.Status.Render("disabled"))
	case cfg.ReadOnly:
		parts = append(parts, st.Status.Render("read-only"))
	}
	if s.Fullscreen() {
		parts = append(parts, st.Status.Render("fullscreen"))
	}
	if m.notice != "" {
		parts = append(parts, st.Exceeded.Render(m.notice))
	}

	return strings.Join(parts, st.Status.Render(" · "))
}
