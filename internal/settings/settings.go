// Package settings loads the optional quill configuration file and applies
// it onto an editor.Config.
package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/iw2rmb/quill/editor"
)

// EnvPrefix prefixes environment overrides, e.g. QUILL_THEME.
const EnvPrefix = "QUILL_"

// Settings mirrors the configuration file. Pointer fields distinguish
// "unset" from zero values so only what the file names is applied.
type Settings struct {
	Editor   Editor   `toml:"editor"`
	Limits   Limits   `toml:"limits"`
	Autosave Autosave `toml:"autosave"`
	Log      Log      `toml:"log"`
}

type Editor struct {
	Theme       string  `toml:"theme"`
	FontSize    string  `toml:"font_size"`
	Placeholder *string `toml:"placeholder"`
	MinHeight   *int    `toml:"min_height"`
	MaxHeight   *int    `toml:"max_height"`

	ReadOnly          *bool `toml:"read_only"`
	Spellcheck        *bool `toml:"spellcheck"`
	KeyboardShortcuts *bool `toml:"keyboard_shortcuts"`
	MarkdownShortcuts *bool `toml:"markdown_shortcuts"`
	ShowToolbar       *bool `toml:"show_toolbar"`
	ShowWordCount     *bool `toml:"show_word_count"`
	ShowCharCount     *bool `toml:"show_char_count"`

	HistoryLimit *int `toml:"history_limit"`
}

type Limits struct {
	MaxWords *int `toml:"max_words"`
	MaxChars *int `toml:"max_chars"`
}

type Autosave struct {
	Enabled  *bool    `toml:"enabled"`
	Interval Duration `toml:"interval"`
	MaxWait  Duration `toml:"max_wait"`
}

type Log struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// Duration reads Go duration strings such as "30s" or "1m30s".
type Duration struct {
	time.Duration
	Set bool
}

func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(b)))
	if err != nil {
		return err
	}
	d.Duration, d.Set = v, true
	return nil
}

// ParseError reports a malformed configuration file.
type ParseError struct {
	Path   string
	Line   int
	Column int
	Err    error
}

func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %v", e.Path, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// DefaultPath returns the per-user configuration file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "quill", "config.toml"), nil
}

// Load reads path. A missing file yields empty Settings and no error.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Settings{}, nil
		}
		return Settings{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return Parse(bytes.NewReader(data), path)
}

// Parse decodes TOML from r. Unknown keys are rejected so typos surface.
func Parse(r io.Reader, source string) (Settings, error) {
	var s Settings
	dec := toml.NewDecoder(r).DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		perr := &ParseError{Path: source, Err: err}
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			perr.Line, perr.Column = derr.Position()
		}
		return Settings{}, perr
	}
	if err := s.Validate(); err != nil {
		return Settings{}, &ParseError{Path: source, Err: err}
	}
	return s, nil
}

func (s Settings) Validate() error {
	if s.Editor.Theme != "" {
		if _, ok := editor.ParseTheme(s.Editor.Theme); !ok {
			return fmt.Errorf("editor.theme: unknown theme %q", s.Editor.Theme)
		}
	}
	if _, ok := editor.ParseFontSize(s.Editor.FontSize); !ok {
		return fmt.Errorf("editor.font_size: unknown size %q", s.Editor.FontSize)
	}
	for name, v := range map[string]*int{
		"editor.min_height": s.Editor.MinHeight,
		"editor.max_height": s.Editor.MaxHeight,
		"limits.max_words":  s.Limits.MaxWords,
		"limits.max_chars":  s.Limits.MaxChars,
	} {
		if v != nil && *v < 0 {
			return fmt.Errorf("%s: must not be negative, got %d", name, *v)
		}
	}
	if s.Autosave.Interval.Set && s.Autosave.Interval.Duration <= 0 {
		return fmt.Errorf("autosave.interval: must be positive, got %s", s.Autosave.Interval.Duration)
	}
	return nil
}

// ApplyEnv overrides settings from QUILL_* variables found by lookup
// (usually os.LookupEnv).
func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvPrefix + "THEME"); ok {
		s.Editor.Theme = v
	}
	if v, ok := lookup(EnvPrefix + "FONT_SIZE"); ok {
		s.Editor.FontSize = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_LEVEL"); ok {
		s.Log.Level = v
	}
	if v, ok := lookup(EnvPrefix + "LOG_FILE"); ok {
		s.Log.File = v
	}
	if v, ok := lookup(EnvPrefix + "AUTOSAVE_INTERVAL"); ok {
		if err := s.Autosave.Interval.UnmarshalText([]byte(v)); err != nil {
			return fmt.Errorf("%sAUTOSAVE_INTERVAL: %w", EnvPrefix, err)
		}
	}
	return s.Validate()
}

// Apply copies every set field onto cfg.
func (s Settings) Apply(cfg *editor.Config) {
	e := s.Editor
	if t, ok := editor.ParseTheme(e.Theme); ok && e.Theme != "" {
		cfg.Theme = t
	}
	if f, ok := editor.ParseFontSize(e.FontSize); ok && e.FontSize != "" {
		cfg.FontSize = f
	}
	setString(&cfg.Placeholder, e.Placeholder)
	setInt(&cfg.MinHeight, e.MinHeight)
	setInt(&cfg.MaxHeight, e.MaxHeight)
	setBool(&cfg.ReadOnly, e.ReadOnly)
	setBool(&cfg.Spellcheck, e.Spellcheck)
	setBool(&cfg.KeyboardShortcuts, e.KeyboardShortcuts)
	setBool(&cfg.MarkdownShortcuts, e.MarkdownShortcuts)
	setBool(&cfg.ShowToolbar, e.ShowToolbar)
	setBool(&cfg.ShowWordCount, e.ShowWordCount)
	setBool(&cfg.ShowCharCount, e.ShowCharCount)
	setInt(&cfg.HistoryLimit, e.HistoryLimit)

	setInt(&cfg.MaxWords, s.Limits.MaxWords)
	setInt(&cfg.MaxChars, s.Limits.MaxChars)

	setBool(&cfg.AutoSave, s.Autosave.Enabled)
	if s.Autosave.Interval.Set {
		cfg.AutoSaveInterval = s.Autosave.Interval.Duration
	}
	if s.Autosave.MaxWait.Set {
		cfg.AutoSaveMaxWait = s.Autosave.MaxWait.Duration
	}
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}
