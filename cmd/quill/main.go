// Command quill edits an HTML fragment in the terminal and autosaves it
// back to disk.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/iw2rmb/quill"
	"github.com/iw2rmb/quill/editor"
	"github.com/iw2rmb/quill/internal/settings"
)

type options struct {
	file     string
	config   string
	logFile  string
	theme    string
	readOnly bool
	version  bool
}

func parseFlags(args []string) (options, error) {
	var o options
	fs := flag.NewFlagSet("quill", flag.ContinueOnError)
	fs.StringVar(&o.config, "config", "", "path to config.toml (default: user config dir)")
	fs.StringVar(&o.logFile, "log", "", "write debug logs to this file")
	fs.StringVar(&o.theme, "theme", "", "light or dark")
	fs.BoolVar(&o.readOnly, "readonly", false, "open the document read-only")
	fs.BoolVar(&o.version, "version", false, "print the version and exit")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: quill [flags] FILE.html\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.version {
		return o, nil
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return o, errors.New("expected exactly one file")
	}
	o.file = fs.Arg(0)
	return o, nil
}

// model wraps the editor with the application's quit handling and the
// global key hub.
type model struct {
	editor editor.Model
	hub    *editor.Hub
}

type hubHandled struct{}

func (m model) Init() tea.Cmd { return m.editor.Init() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor = m.editor.SetSize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+q" {
			return m, tea.Quit
		}
		if m.hub.Dispatch(msg) {
			// Unknown messages make the editor re-read its session.
			m.editor, _ = m.editor.Update(hubHandled{})
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m model) View() string { return m.editor.View() }

func loadSettings(o options) (settings.Settings, error) {
	path := o.config
	if path == "" {
		p, err := settings.DefaultPath()
		if err != nil {
			return settings.Settings{}, nil
		}
		path = p
	}
	s, err := settings.Load(path)
	if err != nil {
		return s, err
	}
	if err := s.ApplyEnv(os.LookupEnv); err != nil {
		return s, err
	}
	if o.theme != "" {
		s.Editor.Theme = o.theme
	}
	return s, s.Validate()
}

func newLogger(s settings.Settings, o options) (*log.Logger, func(), error) {
	file := o.logFile
	if file == "" {
		file = s.Log.File
	}
	if file == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := tea.LogToFile(file, "quill")
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: quill.UserAgent()})
	if s.Log.Level != "" {
		lvl, err := log.ParseLevel(s.Log.Level)
		if err != nil {
			_ = f.Close()
			return nil, nil, fmt.Errorf("log level: %w", err)
		}
		logger.SetLevel(lvl)
	}
	return logger, func() { _ = f.Close() }, nil
}

func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

func writeDocument(path string) func(string) error {
	return func(doc string) error {
		tmp := path + ".tmp"
		if err := os.WriteFile(tmp, []byte(doc), 0o644); err != nil {
			return err
		}
		return os.Rename(tmp, path)
	}
}

func run(args []string) error {
	o, err := parseFlags(args)
	if err != nil {
		return err
	}
	if o.version {
		fmt.Println(quill.VersionTag())
		return nil
	}

	s, err := loadSettings(o)
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(s, o)
	if err != nil {
		return err
	}
	defer closeLog()

	text, err := readDocument(o.file)
	if err != nil {
		return err
	}

	hub := editor.NewHub()
	cfg := editor.DefaultConfig()
	cfg.AutoSave = true
	s.Apply(&cfg)
	cfg.Text = text
	cfg.ReadOnly = cfg.ReadOnly || o.readOnly
	cfg.OnAutoSave = writeDocument(o.file)
	cfg.Logger = logger
	cfg.Hub = hub
	if editor.ClipboardAvailable() {
		cfg.Clipboard = editor.SystemClipboard{}
	}

	logger.Info("opening", "file", o.file, "theme", cfg.Theme, "readonly", cfg.ReadOnly)

	ed := editor.New(cfg)
	sess := ed.Session()
	defer sess.Close()

	p := tea.NewProgram(model{editor: ed, hub: hub}, tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil {
		return err
	}

	if sess.Dirty() {
		if err := sess.Save(); err != nil {
			return fmt.Errorf("saving %s: %w", o.file, err)
		}
		logger.Info("saved on exit", "file", o.file)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		_, _ = os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
