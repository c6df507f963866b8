package richtext

import "fmt"

// Command identifies one entry of the formatting catalog.
type Command uint8

const (
	CmdBold Command = iota
	CmdItalic
	CmdUnderline
	CmdStrikethrough
	CmdSubscript
	CmdSuperscript
	CmdForeColor
	CmdBackColor
	CmdRemoveFormat

	CmdAlignLeft
	CmdAlignCenter
	CmdAlignRight
	CmdAlignJustify
	CmdOrderedList
	CmdUnorderedList
	CmdIndent
	CmdOutdent
	CmdHeading // value: "1".."6"
	CmdParagraph
	CmdBlockquote
	CmdCodeBlock

	// Insert commands take a ready-built HTML fragment as their value.
	CmdInsertEmoji
	CmdInsertLink
	CmdInsertTable
	CmdInsertImage
	CmdInsertVideo
	CmdInsertHTML
)

var commandNames = [...]string{
	CmdBold:          "bold",
	CmdItalic:        "italic",
	CmdUnderline:     "underline",
	CmdStrikethrough: "strikethrough",
	CmdSubscript:     "subscript",
	CmdSuperscript:   "superscript",
	CmdForeColor:     "foreColor",
	CmdBackColor:     "backColor",
	CmdRemoveFormat:  "removeFormat",
	CmdAlignLeft:     "justifyLeft",
	CmdAlignCenter:   "justifyCenter",
	CmdAlignRight:    "justifyRight",
	CmdAlignJustify:  "justifyFull",
	CmdOrderedList:   "insertOrderedList",
	CmdUnorderedList: "insertUnorderedList",
	CmdIndent:        "indent",
	CmdOutdent:       "outdent",
	CmdHeading:       "heading",
	CmdParagraph:     "paragraph",
	CmdBlockquote:    "blockquote",
	CmdCodeBlock:     "codeBlock",
	CmdInsertEmoji:   "insertEmoji",
	CmdInsertLink:    "insertLink",
	CmdInsertTable:   "insertTable",
	CmdInsertImage:   "insertImage",
	CmdInsertVideo:   "insertVideo",
	CmdInsertHTML:    "insertHTML",
}

func (c Command) String() string {
	if int(c) < len(commandNames) && commandNames[c] != "" {
		return commandNames[c]
	}
	return fmt.Sprintf("Command(%d)", uint8(c))
}

// ParseCommand resolves a catalog name as returned by Command.String.
func ParseCommand(name string) (Command, bool) {
	for i, n := range commandNames {
		if n == name {
			return Command(i), true
		}
	}
	return 0, false
}

// Commands returns the whole catalog in declaration order.
func Commands() []Command {
	out := make([]Command, 0, len(commandNames))
	for i := range commandNames {
		out = append(out, Command(i))
	}
	return out
}

// IsInsert reports whether c inserts a fragment rather than formatting.
func (c Command) IsInsert() bool { return c >= CmdInsertEmoji }

// InlineStyle is a character-level formatting primitive.
type InlineStyle uint8

const (
	StyleBold InlineStyle = iota
	StyleItalic
	StyleUnderline
	StyleStrikethrough
	StyleSubscript
	StyleSuperscript
	StyleForeColor
	StyleBackColor
	// StyleClear removes inline formatting from the selection.
	StyleClear
)

// BlockFormat is a line-level formatting primitive.
type BlockFormat uint8

const (
	FormatParagraph BlockFormat = iota
	FormatHeading               // value: "1".."6"
	FormatBlockquote
	FormatCode
	FormatOrderedList
	FormatUnorderedList
	FormatAlign // value: left, center, right, justify
	FormatIndent
	FormatOutdent
)

// Backend is the rich-text capability the dispatcher drives. A browser
// surface, a structured document model or the HTML source editor in this
// package can each implement it.
type Backend interface {
	ApplyInlineStyle(style InlineStyle, value string) error
	ApplyBlockFormat(format BlockFormat, value string) error
	InsertFragment(html string) error
	QueryState(cmd Command) bool
}

// Apply runs cmd against b.
func Apply(b Backend, cmd Command, value string) error {
	switch cmd {
	case CmdBold:
		return b.ApplyInlineStyle(StyleBold, value)
	case CmdItalic:
		return b.ApplyInlineStyle(StyleItalic, value)
	case CmdUnderline:
		return b.ApplyInlineStyle(StyleUnderline, value)
	case CmdStrikethrough:
		return b.ApplyInlineStyle(StyleStrikethrough, value)
	case CmdSubscript:
		return b.ApplyInlineStyle(StyleSubscript, value)
	case CmdSuperscript:
		return b.ApplyInlineStyle(StyleSuperscript, value)
	case CmdForeColor:
		return b.ApplyInlineStyle(StyleForeColor, value)
	case CmdBackColor:
		return b.ApplyInlineStyle(StyleBackColor, value)
	case CmdRemoveFormat:
		return b.ApplyInlineStyle(StyleClear, value)

	case CmdAlignLeft:
		return b.ApplyBlockFormat(FormatAlign, "left")
	case CmdAlignCenter:
		return b.ApplyBlockFormat(FormatAlign, "center")
	case CmdAlignRight:
		return b.ApplyBlockFormat(FormatAlign, "right")
	case CmdAlignJustify:
		return b.ApplyBlockFormat(FormatAlign, "justify")
	case CmdOrderedList:
		return b.ApplyBlockFormat(FormatOrderedList, value)
	case CmdUnorderedList:
		return b.ApplyBlockFormat(FormatUnorderedList, value)
	case CmdIndent:
		return b.ApplyBlockFormat(FormatIndent, value)
	case CmdOutdent:
		return b.ApplyBlockFormat(FormatOutdent, value)
	case CmdHeading:
		return b.ApplyBlockFormat(FormatHeading, value)
	case CmdParagraph:
		return b.ApplyBlockFormat(FormatParagraph, value)
	case CmdBlockquote:
		return b.ApplyBlockFormat(FormatBlockquote, value)
	case CmdCodeBlock:
		return b.ApplyBlockFormat(FormatCode, value)
	}

	if cmd.IsInsert() && int(cmd) < len(commandNames) {
		if value == "" {
			return fmt.Errorf("%s: %w", cmd, ErrEmptyFragment)
		}
		return b.InsertFragment(value)
	}
	return fmt.Errorf("%s: %w", cmd, ErrUnsupported)
}
