package richtext

import (
	"errors"
	"testing"

	"github.com/iw2rmb/quill/surface"
)

func selected(text string, start, end int) (*surface.Surface, *SourceBackend) {
	s := surface.New(text)
	s.SetSelection(surface.Range{Start: start, End: end})
	return s, NewSourceBackend(s)
}

func TestSourceBackend_BoldWrapsAndToggles(t *testing.T) {
	s, b := selected("Hello", 0, 5)

	if err := Apply(b, CmdBold, ""); err != nil {
		t.Fatalf("bold: %v", err)
	}
	if got, want := s.Text(), "<b>Hello</b>"; got != want {
		t.Fatalf("text after bold: got %q, want %q", got, want)
	}
	if got := s.SelectedText(); got != "Hello" {
		t.Fatalf("selection after bold: got %q, want %q", got, "Hello")
	}
	if !b.QueryState(CmdBold) {
		t.Fatalf("expected bold state on")
	}

	if err := Apply(b, CmdBold, ""); err != nil {
		t.Fatalf("bold toggle: %v", err)
	}
	if got, want := s.Text(), "Hello"; got != want {
		t.Fatalf("text after toggle: got %q, want %q", got, want)
	}
	if b.QueryState(CmdBold) {
		t.Fatalf("expected bold state off")
	}
}

func TestSourceBackend_ToggleWhenSelectionIncludesTags(t *testing.T) {
	s, b := selected("a <i>b</i> c", 2, 10)
	if err := Apply(b, CmdItalic, ""); err != nil {
		t.Fatalf("italic: %v", err)
	}
	if got, want := s.Text(), "a b c"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
}

func TestSourceBackend_CollapsedSelectionOpensEmptyRun(t *testing.T) {
	s := surface.New("ab")
	b := NewSourceBackend(s)
	s.SetCursor(1)

	if err := b.ApplyInlineStyle(StyleUnderline, ""); err != nil {
		t.Fatalf("underline: %v", err)
	}
	if got, want := s.Text(), "a<u></u>b"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got, want := s.Cursor(), 4; got != want {
		t.Fatalf("cursor: got %d, want %d", got, want)
	}
	if !b.QueryState(CmdUnderline) {
		t.Fatalf("expected underline state inside empty run")
	}
}

func TestSourceBackend_Colors(t *testing.T) {
	s, b := selected("red", 0, 3)
	if err := Apply(b, CmdForeColor, "#ff0000"); err != nil {
		t.Fatalf("fore color: %v", err)
	}
	if got, want := s.Text(), `<span style="color: #ff0000">red</span>`; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}

	_, b = selected("x", 0, 1)
	if err := Apply(b, CmdBackColor, `red" onclick="x`); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("injected color: got %v, want %v", err, ErrInvalidValue)
	}
}

func TestSourceBackend_RemoveFormat(t *testing.T) {
	src := `<b>a</b> <span style="color: red">b</span>`
	s, b := selected(src, 0, len(src))
	if err := Apply(b, CmdRemoveFormat, ""); err != nil {
		t.Fatalf("remove format: %v", err)
	}
	if got, want := s.Text(), "a b"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
}

func TestSourceBackend_HeadingReplacesBlock(t *testing.T) {
	s := surface.New("intro\n<p>Title</p>\noutro")
	b := NewSourceBackend(s)
	s.SetCursor(len("intro\n<p>Ti"))

	if err := Apply(b, CmdHeading, "2"); err != nil {
		t.Fatalf("heading: %v", err)
	}
	if got, want := s.Text(), "intro\n<h2>Title</h2>\noutro"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if got, want := s.Cursor(), len("intro\n<h2>Title"); got != want {
		t.Fatalf("cursor: got %d, want %d", got, want)
	}
	if !b.QueryState(CmdHeading) {
		t.Fatalf("expected heading state")
	}

	if err := Apply(b, CmdHeading, "7"); !errors.Is(err, ErrInvalidValue) {
		t.Fatalf("heading 7: got %v, want %v", err, ErrInvalidValue)
	}
}

func TestSourceBackend_ListsToggleAndSwap(t *testing.T) {
	s := surface.New("one\ntwo")
	b := NewSourceBackend(s)
	s.SelectAll()

	if err := Apply(b, CmdUnorderedList, ""); err != nil {
		t.Fatalf("ul: %v", err)
	}
	if got, want := s.Text(), "<ul><li>one</li><li>two</li></ul>"; got != want {
		t.Fatalf("text after ul: got %q, want %q", got, want)
	}
	if !b.QueryState(CmdUnorderedList) {
		t.Fatalf("expected unordered list state")
	}

	if err := Apply(b, CmdOrderedList, ""); err != nil {
		t.Fatalf("ol: %v", err)
	}
	if got, want := s.Text(), "<ol><li>one</li><li>two</li></ol>"; got != want {
		t.Fatalf("text after ol: got %q, want %q", got, want)
	}

	if err := Apply(b, CmdOrderedList, ""); err != nil {
		t.Fatalf("ol toggle: %v", err)
	}
	if got, want := s.Text(), "one\ntwo"; got != want {
		t.Fatalf("text after toggle: got %q, want %q", got, want)
	}
}

func TestSourceBackend_AlignIndentOutdent(t *testing.T) {
	s := surface.New("text")
	b := NewSourceBackend(s)

	if err := Apply(b, CmdAlignCenter, ""); err != nil {
		t.Fatalf("center: %v", err)
	}
	if got, want := s.Text(), `<div style="text-align: center">text</div>`; got != want {
		t.Fatalf("text after center: got %q, want %q", got, want)
	}
	if !b.QueryState(CmdAlignCenter) || b.QueryState(CmdAlignLeft) {
		t.Fatalf("expected center alignment state only")
	}

	if err := Apply(b, CmdAlignRight, ""); err != nil {
		t.Fatalf("right: %v", err)
	}
	if got, want := s.Text(), `<div style="text-align: right">text</div>`; got != want {
		t.Fatalf("text after right: got %q, want %q", got, want)
	}

	s.SetText("p")
	if err := Apply(b, CmdIndent, ""); err != nil {
		t.Fatalf("indent: %v", err)
	}
	if got, want := s.Text(), "<blockquote>p</blockquote>"; got != want {
		t.Fatalf("text after indent: got %q, want %q", got, want)
	}
	if err := Apply(b, CmdOutdent, ""); err != nil {
		t.Fatalf("outdent: %v", err)
	}
	if got, want := s.Text(), "p"; got != want {
		t.Fatalf("text after outdent: got %q, want %q", got, want)
	}
	if err := Apply(b, CmdOutdent, ""); err != nil {
		t.Fatalf("outdent without indent: %v", err)
	}
	if got, want := s.Text(), "p"; got != want {
		t.Fatalf("outdent must be a no-op: got %q", got)
	}
}

func TestApply_InsertCommands(t *testing.T) {
	s := surface.New("ab")
	b := NewSourceBackend(s)
	s.SetCursor(1)

	if err := Apply(b, CmdInsertEmoji, "🎉"); err != nil {
		t.Fatalf("emoji: %v", err)
	}
	if got, want := s.Text(), "a🎉b"; got != want {
		t.Fatalf("text: got %q, want %q", got, want)
	}
	if err := Apply(b, CmdInsertHTML, ""); !errors.Is(err, ErrEmptyFragment) {
		t.Fatalf("empty fragment: got %v, want %v", err, ErrEmptyFragment)
	}
}

func TestCommand_Names(t *testing.T) {
	for _, c := range Commands() {
		got, ok := ParseCommand(c.String())
		if !ok || got != c {
			t.Fatalf("ParseCommand(%q): got %v/%v, want %v", c.String(), got, ok, c)
		}
	}
	if _, ok := ParseCommand("nope"); ok {
		t.Fatalf("expected unknown command")
	}
}
