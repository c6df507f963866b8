package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/iw2rmb/quill/internal/grapheme"
	"github.com/iw2rmb/quill/surface"
)

const tabWidth = 4

type runKind int8

const (
	runNone runKind = iota - 1
	runText
	runMarkup
	runSelected
	runCursor
)

// rowSpan is the byte range of the source shown on one visual row.
type rowSpan struct {
	start, end int
}

type surfaceLayout struct {
	text      string
	lines     []string
	rows      []rowSpan
	cursorRow int
}

type surfaceRenderer struct {
	st    Style
	width int
	pad   string

	out  surfaceLayout
	line strings.Builder
	run  strings.Builder
	kind runKind
	cell int
	// start of the current visual row
	start int
}

func (r *surfaceRenderer) style(k runKind) lipgloss.Style {
	switch k {
	case runMarkup:
		return r.st.Markup
	case runSelected:
		return r.st.Selection
	case runCursor:
		return r.st.Cursor
	}
	return r.st.Text
}

func (r *surfaceRenderer) flush() {
	if r.run.Len() == 0 {
		return
	}
	r.line.WriteString(r.style(r.kind).Render(r.run.String()))
	r.run.Reset()
}

func (r *surfaceRenderer) emit(k runKind, s string, w int) {
	if k != r.kind {
		r.flush()
		r.kind = k
	}
	r.run.WriteString(s)
	r.cell += w
}

func (r *surfaceRenderer) endRow(end int) {
	r.flush()
	r.kind = runNone
	r.out.lines = append(r.out.lines, r.pad+r.line.String())
	r.out.rows = append(r.out.rows, rowSpan{start: r.start, end: end})
	r.line.Reset()
	r.cell = 0
	r.start = end
}

// wrapFor starts a new visual row when w more cells would not fit.
func (r *surfaceRenderer) wrapFor(w, at int) {
	if r.width > 0 && r.cell > 0 && r.cell+w > r.width {
		r.endRow(at)
	}
}

// renderSurface lays the HTML source out in visual rows of at most width
// cells (0 disables wrapping). Markup is styled apart from text; the
// selection and, when focused, the cursor are overlaid.
func renderSurface(snap surface.Snapshot, st Style, focused bool, width, pad int, placeholder string) surfaceLayout {
	r := &surfaceRenderer{st: st, width: width, pad: strings.Repeat(" ", pad), kind: runNone}
	text := snap.Text
	r.out.text = text

	if text == "" {
		if focused {
			r.emit(runCursor, " ", 1)
		}
		r.flush()
		if placeholder != "" {
			r.line.WriteString(st.Placeholder.Render(placeholder))
		}
		r.endRow(0)
		return r.out
	}

	sel := surface.NormalizeRange(snap.Selection)
	selOK := snap.SelectionActive && !sel.IsEmpty()
	inTag := false

	off := 0
	for {
		if off == len(text) || text[off] == '\n' {
			if off == snap.Cursor {
				r.wrapFor(1, off)
				r.out.cursorRow = len(r.out.rows)
				if focused {
					r.emit(runCursor, " ", 1)
				}
			}
			r.endRow(off)
			if off == len(text) {
				break
			}
			off++
			r.start = off
			continue
		}

		next := grapheme.Next(text, off)
		cluster := text[off:next]
		if strings.HasPrefix(cluster, "\r") {
			// Keep "\r\n" from swallowing the line break.
			next = off + 1
			cluster = ""
		}
		display, w := cluster, runewidth.StringWidth(cluster)
		if cluster == "\t" {
			display, w = strings.Repeat(" ", tabWidth), tabWidth
		}

		kind := runText
		if cluster == "<" {
			inTag = true
		}
		if inTag {
			kind = runMarkup
		}
		if cluster == ">" {
			inTag = false
		}
		if selOK && off >= sel.Start && off < sel.End {
			kind = runSelected
		}

		r.wrapFor(w, off)
		if off == snap.Cursor {
			r.out.cursorRow = len(r.out.rows)
			if focused {
				kind = runCursor
			}
		}
		if display != "" {
			r.emit(kind, display, w)
		}
		off = next
	}
	return r.out
}

// offsetAt maps a cell column on a visual row back to a byte offset.
func offsetAt(text string, row rowSpan, col int) int {
	cell := 0
	off := row.start
	for off < row.end {
		next := grapheme.Next(text, off)
		cluster := text[off:next]
		w := runewidth.StringWidth(cluster)
		if cluster == "\t" {
			w = tabWidth
		}
		if col < cell+w {
			return off
		}
		cell += w
		off = next
	}
	return row.end
}
