package richtext

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/iw2rmb/quill/surface"
)

var (
	colorRE       = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]{3,20}|rgba?\(\s*[0-9.,\s%]+\))$`)
	inlineTagRE   = regexp.MustCompile(`(?i)</?(b|strong|i|em|u|s|strike|del|sub|sup|span|font)\b[^>]*>`)
	alignOpenRE   = regexp.MustCompile(`^<div style="text-align: (left|center|right|justify)">`)
	blockOpenRE   = regexp.MustCompile(`^<(h[1-6]|p|pre|blockquote)>`)
	listItemRE    = regexp.MustCompile(`(?s)<li>(.*?)</li>`)
	openOrCloseRE = tagMatchers("b", "i", "u", "s", "sub", "sup", "ul", "ol")
)

func tagMatchers(tags ...string) map[string]*regexp.Regexp {
	out := make(map[string]*regexp.Regexp, len(tags))
	for _, tag := range tags {
		out[tag] = regexp.MustCompile(`(?i)<(/?)` + regexp.QuoteMeta(tag) + `(?:\s[^>]*)?>`)
	}
	return out
}

// SourceBackend formats the HTML source of a surface directly: inline styles
// wrap or unwrap the selection in tags and block formats rewrite the lines
// the selection touches. Each source line is treated as one block.
type SourceBackend struct {
	s *surface.Surface
}

func NewSourceBackend(s *surface.Surface) *SourceBackend {
	return &SourceBackend{s: s}
}

func inlineTags(style InlineStyle, value string) (open, close string, err error) {
	switch style {
	case StyleBold:
		return "<b>", "</b>", nil
	case StyleItalic:
		return "<i>", "</i>", nil
	case StyleUnderline:
		return "<u>", "</u>", nil
	case StyleStrikethrough:
		return "<s>", "</s>", nil
	case StyleSubscript:
		return "<sub>", "</sub>", nil
	case StyleSuperscript:
		return "<sup>", "</sup>", nil
	case StyleForeColor, StyleBackColor:
		value = strings.TrimSpace(value)
		if !colorRE.MatchString(value) {
			return "", "", fmt.Errorf("color %q: %w", value, ErrInvalidValue)
		}
		prop := "color"
		if style == StyleBackColor {
			prop = "background-color"
		}
		return `<span style="` + prop + `: ` + value + `">`, "</span>", nil
	}
	return "", "", ErrUnsupported
}

func (b *SourceBackend) ApplyInlineStyle(style InlineStyle, value string) error {
	if style == StyleClear {
		return b.clearInline()
	}
	open, close, err := inlineTags(style, value)
	if err != nil {
		return err
	}
	toggles := style != StyleForeColor && style != StyleBackColor

	text := b.s.Text()
	r, ok := b.s.Selection()
	if !ok {
		// Collapsed selection: open an empty styled run at the cursor.
		at := b.s.Cursor()
		b.s.ReplaceRange(surface.Range{Start: at, End: at}, open+close)
		b.s.SetCursor(at + len(open))
		return nil
	}

	selected := text[r.Start:r.End]
	switch {
	case toggles && strings.HasPrefix(selected, open) && strings.HasSuffix(selected, close) && len(selected) >= len(open)+len(close):
		inner := selected[len(open) : len(selected)-len(close)]
		b.s.ReplaceRange(r, inner)
		b.s.SetSelection(surface.Range{Start: r.Start, End: r.Start + len(inner)})
	case toggles && strings.HasSuffix(text[:r.Start], open) && strings.HasPrefix(text[r.End:], close):
		outer := surface.Range{Start: r.Start - len(open), End: r.End + len(close)}
		b.s.ReplaceRange(outer, selected)
		b.s.SetSelection(surface.Range{Start: outer.Start, End: outer.Start + len(selected)})
	default:
		b.s.ReplaceRange(r, open+selected+close)
		b.s.SetSelection(surface.Range{Start: r.Start + len(open), End: r.End + len(open)})
	}
	return nil
}

func (b *SourceBackend) clearInline() error {
	r, ok := b.s.Selection()
	if !ok {
		return nil
	}
	cleaned := inlineTagRE.ReplaceAllString(b.s.Text()[r.Start:r.End], "")
	b.s.ReplaceRange(r, cleaned)
	b.s.SetSelection(surface.Range{Start: r.Start, End: r.Start + len(cleaned)})
	return nil
}

func (b *SourceBackend) InsertFragment(html string) error {
	if html == "" {
		return ErrEmptyFragment
	}
	b.s.InsertText(html)
	return nil
}

// ApplyBlockFormat rewrites every line touched by the selection (or the
// cursor's line) and leaves the cursor at the end of the rewritten content.
func (b *SourceBackend) ApplyBlockFormat(format BlockFormat, value string) error {
	text := b.s.Text()
	r, ok := b.s.Selection()
	if !ok {
		r = surface.Range{Start: b.s.Cursor(), End: b.s.Cursor()}
	}
	start, _ := b.s.LineBounds(r.Start)
	_, end := b.s.LineBounds(r.End)
	lines := strings.Split(text[start:end], "\n")

	var out string
	var caret int
	var err error
	switch format {
	case FormatOrderedList, FormatUnorderedList:
		out, caret = toggleList(lines, format == FormatOrderedList)
	default:
		out, caret, err = formatLines(lines, format, value)
	}
	if err != nil {
		return err
	}

	b.s.ReplaceRange(surface.Range{Start: start, End: end}, out)
	b.s.SetCursor(start + caret)
	return nil
}

func formatLines(lines []string, format BlockFormat, value string) (string, int, error) {
	out := make([]string, len(lines))
	caret := 0
	offset := 0
	for i, line := range lines {
		next, innerEnd, err := formatLine(line, format, value)
		if err != nil {
			return "", 0, err
		}
		out[i] = next
		caret = offset + innerEnd
		offset += len(next) + 1
	}
	return strings.Join(out, "\n"), caret, nil
}

// formatLine returns the rewritten line and the offset just past its text
// content.
func formatLine(line string, format BlockFormat, value string) (string, int, error) {
	wrap := func(tag, inner string) (string, int) {
		open := "<" + tag + ">"
		return open + inner + "</" + tag + ">", len(open) + len(inner)
	}

	switch format {
	case FormatParagraph:
		out, end := wrap("p", unwrapBlock(line))
		return out, end, nil
	case FormatHeading:
		level, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil || level < 1 || level > 6 {
			return "", 0, fmt.Errorf("heading level %q: %w", value, ErrInvalidValue)
		}
		out, end := wrap("h"+strconv.Itoa(level), unwrapBlock(line))
		return out, end, nil
	case FormatBlockquote:
		out, end := wrap("blockquote", unwrapBlock(line))
		return out, end, nil
	case FormatCode:
		out, end := wrap("pre", unwrapBlock(line))
		return out, end, nil
	case FormatIndent:
		out, end := wrap("blockquote", line)
		return out, end, nil
	case FormatOutdent:
		if inner, ok := unwrapTag(line, "blockquote"); ok {
			return inner, len(inner), nil
		}
		return line, len(line), nil
	case FormatAlign:
		switch value {
		case "left", "center", "right", "justify":
		default:
			return "", 0, fmt.Errorf("alignment %q: %w", value, ErrInvalidValue)
		}
		inner := line
		if m := alignOpenRE.FindString(line); m != "" && strings.HasSuffix(line, "</div>") {
			inner = line[len(m) : len(line)-len("</div>")]
		}
		open := `<div style="text-align: ` + value + `">`
		return open + inner + "</div>", len(open) + len(inner), nil
	}
	return "", 0, ErrUnsupported
}

// toggleList turns lines into one list, swaps the list kind, or unwraps a
// list of the same kind back into plain lines.
func toggleList(lines []string, ordered bool) (string, int) {
	tag, other := "ul", "ol"
	if ordered {
		tag, other = "ol", "ul"
	}

	if len(lines) == 1 {
		line := lines[0]
		if inner, ok := unwrapTag(line, tag); ok {
			items := listItems(inner)
			out := strings.Join(items, "\n")
			return out, len(out)
		}
		if inner, ok := unwrapTag(line, other); ok {
			out := "<" + tag + ">" + inner + "</" + tag + ">"
			caret := strings.LastIndex(out, "</li>")
			if caret < 0 {
				caret = len(out) - len("</"+tag+">")
			}
			return out, caret
		}
	}

	var sb strings.Builder
	sb.WriteString("<" + tag + ">")
	for _, line := range lines {
		sb.WriteString("<li>" + unwrapBlock(line) + "</li>")
	}
	caret := sb.Len() - len("</li>")
	sb.WriteString("</" + tag + ">")
	return sb.String(), caret
}

func listItems(inner string) []string {
	matches := listItemRE.FindAllStringSubmatch(inner, -1)
	if len(matches) == 0 {
		return []string{inner}
	}
	items := make([]string, 0, len(matches))
	for _, m := range matches {
		items = append(items, m[1])
	}
	return items
}

// unwrapBlock strips one outer block-level wrapper, if any.
func unwrapBlock(line string) string {
	m := blockOpenRE.FindStringSubmatch(line)
	if m == nil {
		return line
	}
	if inner, ok := unwrapTag(line, m[1]); ok {
		return inner
	}
	return line
}

func unwrapTag(line, tag string) (string, bool) {
	open, close := "<"+tag+">", "</"+tag+">"
	if len(line) < len(open)+len(close) || !strings.HasPrefix(line, open) || !strings.HasSuffix(line, close) {
		return "", false
	}
	return line[len(open) : len(line)-len(close)], true
}

// QueryState reports whether cmd is active at the cursor (or selection start).
func (b *SourceBackend) QueryState(cmd Command) bool {
	text := b.s.Text()
	at := b.s.Cursor()
	if r, ok := b.s.Selection(); ok {
		at = r.Start
		// A selection that begins with the opening tag counts as styled.
		if tag := inlineTagName(cmd); tag != "" && strings.HasPrefix(text[r.Start:r.End], "<"+tag+">") {
			return true
		}
	}

	if tag := inlineTagName(cmd); tag != "" {
		return openDepth(text[:at], tag) > 0
	}

	start, end := b.s.LineBounds(at)
	line := text[start:end]
	switch cmd {
	case CmdHeading:
		m := blockOpenRE.FindStringSubmatch(line)
		return m != nil && m[1][0] == 'h'
	case CmdParagraph:
		return strings.HasPrefix(line, "<p>")
	case CmdBlockquote, CmdIndent:
		return strings.HasPrefix(line, "<blockquote>")
	case CmdCodeBlock:
		return strings.HasPrefix(line, "<pre>")
	case CmdOrderedList:
		return openDepth(text[:at], "ol") > 0
	case CmdUnorderedList:
		return openDepth(text[:at], "ul") > 0
	case CmdAlignLeft, CmdAlignCenter, CmdAlignRight, CmdAlignJustify:
		m := alignOpenRE.FindStringSubmatch(line)
		want := map[Command]string{
			CmdAlignLeft:    "left",
			CmdAlignCenter:  "center",
			CmdAlignRight:   "right",
			CmdAlignJustify: "justify",
		}[cmd]
		if m == nil {
			return cmd == CmdAlignLeft
		}
		return m[1] == want
	}
	return false
}

func inlineTagName(cmd Command) string {
	switch cmd {
	case CmdBold:
		return "b"
	case CmdItalic:
		return "i"
	case CmdUnderline:
		return "u"
	case CmdStrikethrough:
		return "s"
	case CmdSubscript:
		return "sub"
	case CmdSuperscript:
		return "sup"
	}
	return ""
}

// openDepth counts unclosed <tag> elements in prefix.
func openDepth(prefix, tag string) int {
	re, ok := openOrCloseRE[tag]
	if !ok {
		return 0
	}
	depth := 0
	for _, m := range re.FindAllStringSubmatch(prefix, -1) {
		if m[1] == "/" {
			if depth > 0 {
				depth--
			}
			continue
		}
		depth++
	}
	return depth
}
