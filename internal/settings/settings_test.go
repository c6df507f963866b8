package settings

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/iw2rmb/quill/editor"
)

const sample = `
[editor]
theme = "dark"
font_size = "large"
placeholder = "Type here"
max_height = 12
read_only = true
markdown_shortcuts = false

[limits]
max_words = 500

[autosave]
enabled = true
interval = "10s"
max_wait = "1m"

[log]
level = "debug"
`

func TestLoad_MissingFileIsEmpty(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if diff := cmp.Diff(Settings{}, s); diff != "" {
		t.Fatalf("settings (-want +got):\n%s", diff)
	}
}

func TestLoad_AppliesOntoConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	cfg := editor.DefaultConfig()
	s.Apply(&cfg)

	if cfg.Theme != editor.ThemeDark || cfg.FontSize != editor.FontLarge {
		t.Fatalf("theme/font: got %v/%v", cfg.Theme, cfg.FontSize)
	}
	if cfg.Placeholder != "Type here" || cfg.MaxHeight != 12 || cfg.MinHeight != 5 {
		t.Fatalf("placeholder/heights: got %q %d %d", cfg.Placeholder, cfg.MaxHeight, cfg.MinHeight)
	}
	if !cfg.ReadOnly || cfg.MarkdownShortcuts || !cfg.KeyboardShortcuts {
		t.Fatalf("flags: readonly=%v markdown=%v keyboard=%v", cfg.ReadOnly, cfg.MarkdownShortcuts, cfg.KeyboardShortcuts)
	}
	if cfg.MaxWords != 500 || cfg.MaxChars != 0 {
		t.Fatalf("limits: got %d/%d", cfg.MaxWords, cfg.MaxChars)
	}
	if !cfg.AutoSave || cfg.AutoSaveInterval != 10*time.Second || cfg.AutoSaveMaxWait != time.Minute {
		t.Fatalf("autosave: got %v %s %s", cfg.AutoSave, cfg.AutoSaveInterval, cfg.AutoSaveMaxWait)
	}
	if s.Log.Level != "debug" {
		t.Fatalf("log level: got %q", s.Log.Level)
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"syntax", "[editor\ntheme = 1", "config.toml:1"},
		{"unknown key", "[editor]\ncolour = \"red\"", "config.toml"},
		{"bad theme", "[editor]\ntheme = \"sepia\"", "unknown theme"},
		{"negative limit", "[limits]\nmax_chars = -1", "must not be negative"},
		{"bad duration", "[autosave]\ninterval = \"soon\"", "config.toml"},
		{"zero interval", "[autosave]\ninterval = \"0s\"", "must be positive"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tc.in), "config.toml")
			var perr *ParseError
			if !errors.As(err, &perr) {
				t.Fatalf("expected *ParseError, got %T (%v)", err, err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"QUILL_THEME":             "dark",
		"QUILL_AUTOSAVE_INTERVAL": "45s",
		"OTHER_THEME":             "light",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }

	var s Settings
	if err := s.ApplyEnv(lookup); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	cfg := editor.DefaultConfig()
	s.Apply(&cfg)
	if cfg.Theme != editor.ThemeDark || cfg.AutoSaveInterval != 45*time.Second {
		t.Fatalf("env overrides: theme %v interval %s", cfg.Theme, cfg.AutoSaveInterval)
	}

	env["QUILL_FONT_SIZE"] = "huge"
	if err := s.ApplyEnv(lookup); err == nil {
		t.Fatalf("expected an invalid font size to be rejected")
	}
}
