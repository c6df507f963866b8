package editor

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/iw2rmb/quill/autosave"
	"github.com/iw2rmb/quill/richtext"
	"github.com/iw2rmb/quill/surface"
)

// Theme selects the colour set of the component.
type Theme uint8

const (
	ThemeLight Theme = iota
	ThemeDark
)

func (t Theme) String() string {
	if t == ThemeDark {
		return "dark"
	}
	return "light"
}

// ParseTheme accepts "light" and "dark".
func ParseTheme(s string) (Theme, bool) {
	switch s {
	case "light":
		return ThemeLight, true
	case "dark":
		return ThemeDark, true
	}
	return ThemeLight, false
}

// FontSize maps to horizontal padding of the surface in the terminal view.
type FontSize uint8

const (
	FontBase FontSize = iota
	FontSmall
	FontLarge
)

func (f FontSize) String() string {
	switch f {
	case FontSmall:
		return "small"
	case FontLarge:
		return "large"
	}
	return "base"
}

func ParseFontSize(s string) (FontSize, bool) {
	switch s {
	case "small", "sm":
		return FontSmall, true
	case "base", "medium", "":
		return FontBase, true
	case "large", "lg":
		return FontLarge, true
	}
	return FontBase, false
}

func (f FontSize) padding() int {
	switch f {
	case FontSmall:
		return 0
	case FontLarge:
		return 2
	}
	return 1
}

// ToolbarItem is a host-provided toolbar button.
type ToolbarItem struct {
	Label string
	// Icon is rendered instead of Label when set.
	Icon   string
	Action func(*Session)
	// Active reports the highlighted state. Optional.
	Active func(*Session) bool
}

// Config configures a Session and the Model that presents it.
//
// Boolean options default to false; DefaultConfig returns the usual
// defaults for an interactive editor.
type Config struct {
	// Initial document (HTML).
	Text string

	// OnChange is called after every accepted change to the document.
	// It runs without the session lock held and may call back into the
	// session. A panic is recovered and logged.
	OnChange func(ChangeEvent)

	Placeholder string

	// Height bounds of the surface in rows. MaxHeight 0 means unbounded.
	MinHeight int
	MaxHeight int

	Disabled bool
	ReadOnly bool

	ShowWordCount bool
	ShowCharCount bool
	// Limits for the counters; 0 disables the check.
	MaxWords int
	MaxChars int

	AutoSave         bool
	AutoSaveInterval time.Duration
	// See autosave.Options.MaxWait.
	AutoSaveMaxWait time.Duration
	OnAutoSave      autosave.SaveFunc

	Theme    Theme
	FontSize FontSize
	// Spellcheck is forwarded to hosts that render the document natively.
	// The terminal view has no spellchecker and only reports the flag.
	Spellcheck bool

	KeyboardShortcuts bool
	MarkdownShortcuts bool

	ShowToolbar bool
	// Toolbar lists the built-in buttons in display order.
	// Nil means DefaultToolbar.
	Toolbar      []ToolbarButton
	ToolbarItems []ToolbarItem

	// HistoryLimit caps undo history. 0 means history.DefaultLimit;
	// negative disables history.
	HistoryLimit int

	Clipboard Clipboard
	Logger    *log.Logger
	Clock     autosave.Clock

	// Hub receives global key events from the host. When set, save and
	// fullscreen keys are handled through it instead of the Model.
	Hub *Hub

	// KeyMap zero value means DefaultKeyMap.
	KeyMap KeyMap
	// Style nil means ThemeStyle(Theme).
	Style *Style

	// NewBackend builds the formatting backend over the session surface.
	// Nil means richtext.NewSourceBackend.
	NewBackend func(*surface.Surface) richtext.Backend
}

// DefaultConfig returns the defaults of an interactive editor.
func DefaultConfig() Config {
	return Config{
		Placeholder:       "Start writing...",
		MinHeight:         5,
		ShowWordCount:     true,
		ShowCharCount:     true,
		AutoSaveInterval:  autosave.DefaultInterval,
		Spellcheck:        true,
		KeyboardShortcuts: true,
		MarkdownShortcuts: true,
		ShowToolbar:       true,
	}
}
