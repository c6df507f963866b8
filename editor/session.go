package editor

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/iw2rmb/quill/autosave"
	"github.com/iw2rmb/quill/history"
	"github.com/iw2rmb/quill/metrics"
	"github.com/iw2rmb/quill/richtext"
	"github.com/iw2rmb/quill/surface"
)

var (
	// ErrNotEditable is returned by explicit commands on a disabled,
	// read-only or closed session.
	ErrNotEditable = errors.New("editor: session is not editable")
	// ErrCommandPanicked wraps a recovered panic of a formatting backend.
	ErrCommandPanicked = errors.New("editor: command panicked")
)

// Session is the headless editing core: one document with its surface,
// undo history, autosave scheduler and metrics.
//
// All methods are safe for concurrent use. Config.OnChange is always
// called without the internal lock held.
type Session struct {
	mu sync.Mutex

	cfg     Config
	log     *log.Logger
	surf    *surface.Surface
	backend richtext.Backend
	hist    *history.History
	saver   *autosave.Scheduler
	limits  metrics.Limits

	doc     string
	metrics metrics.Metrics
	version uint64

	readOnly   bool
	disabled   bool
	focused    bool
	fullscreen bool
	closed     bool

	subs []*Subscription
}

func NewSession(cfg Config) *Session {
	if cfg.KeyMap.isZero() {
		cfg.KeyMap = DefaultKeyMap()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	s := &Session{
		cfg:      cfg,
		log:      logger,
		surf:     surface.New(cfg.Text),
		hist:     history.New(history.Options{Limit: cfg.HistoryLimit}),
		limits:   metrics.Limits{MaxWords: cfg.MaxWords, MaxChars: cfg.MaxChars},
		doc:      cfg.Text,
		metrics:  metrics.Count(cfg.Text),
		readOnly: cfg.ReadOnly,
		disabled: cfg.Disabled,
		focused:  true,
	}
	if cfg.NewBackend != nil {
		s.backend = cfg.NewBackend(s.surf)
	} else {
		s.backend = richtext.NewSourceBackend(s.surf)
	}
	s.saver = autosave.New(autosave.Options{
		Enabled:  cfg.AutoSave,
		Interval: cfg.AutoSaveInterval,
		MaxWait:  cfg.AutoSaveMaxWait,
		Save:     cfg.OnAutoSave,
		Clock:    cfg.Clock,
		Logger:   logger,
	})
	s.saver.Sync(cfg.Text)

	if cfg.Hub != nil {
		s.subs = append(s.subs, cfg.Hub.Subscribe(s.handleGlobalKey))
	}
	return s
}

// Config returns the configuration the session was built with, with
// defaults filled in and the current read-only/disabled state.
func (s *Session) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	cfg := s.cfg
	cfg.ReadOnly = s.readOnly
	cfg.Disabled = s.disabled
	return cfg
}

func (s *Session) Value() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Version increments once per accepted change to the document.
func (s *Session) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Snapshot returns the surface text, cursor and selection in one read.
func (s *Session) Snapshot() surface.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surf.Snapshot()
}

func (s *Session) Metrics() metrics.Metrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metrics
}

// Report returns the metrics checked against MaxWords and MaxChars.
func (s *Session) Report() metrics.Report {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.limits.Report(s.metrics)
}

// SetValue syncs the document from outside (a controlled value). Nothing
// happens when v equals the current document. Otherwise the document and
// surface are replaced, history restarts from v and v counts as saved.
// OnChange is not called.
func (s *Session) SetValue(v string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || v == s.doc {
		return
	}
	s.surf.SetText(v)
	s.doc = v
	s.metrics = metrics.Count(v)
	s.version++
	s.hist.Reset()
	s.saver.Sync(v)
}

// Input replaces the document with serialized content captured from the
// surface.
func (s *Session) Input(html string) {
	_ = s.mutate(ChangeInput, func() error {
		s.surf.SetText(html)
		return nil
	})
}

// Type inserts text at the cursor, replacing the selection.
func (s *Session) Type(text string) {
	if text == "" {
		return
	}
	_ = s.mutate(ChangeInput, func() error {
		s.surf.InsertText(text)
		return nil
	})
}

func (s *Session) Newline() { s.Type("\n") }

func (s *Session) Backspace() {
	_ = s.mutate(ChangeInput, func() error {
		s.surf.DeleteBackward()
		return nil
	})
}

func (s *Session) Delete() {
	_ = s.mutate(ChangeInput, func() error {
		s.surf.DeleteForward()
		return nil
	})
}

// Cut deletes the selection and returns the removed source.
func (s *Session) Cut() string {
	var cut string
	_ = s.mutate(ChangeInput, func() error {
		cut = s.surf.SelectedText()
		s.surf.DeleteSelection()
		return nil
	})
	return cut
}

// Paste inserts clipboard data. Markup is sanitized; plain text is escaped
// with newlines turned into <br>.
func (s *Session) Paste(data string) {
	_ = s.mutate(ChangePaste, func() error {
		frag := richtext.PasteFragment(data)
		if frag == "" {
			return nil
		}
		return s.backend.InsertFragment(frag)
	})
}

// HandleSpace applies a markdown shortcut when the text between line start
// and cursor is a recognised prefix. It reports whether the space was
// consumed; when false the caller inserts the space itself.
func (s *Session) HandleSpace() bool {
	s.mu.Lock()
	if !s.cfg.MarkdownShortcuts || !s.editableLocked() {
		s.mu.Unlock()
		return false
	}
	if _, ok := s.surf.Selection(); ok {
		s.mu.Unlock()
		return false
	}
	sc, ok := richtext.MatchShortcut(s.surf.LineBeforeCursor())
	if !ok {
		s.mu.Unlock()
		return false
	}
	ev, changed, err := s.applyLocked(ChangeCommand, func() error {
		at := s.surf.Cursor()
		s.surf.ReplaceRange(surface.Range{Start: at - len(sc.Marker), End: at}, "")
		return s.backend.ApplyBlockFormat(sc.Format, sc.Value)
	})
	s.mu.Unlock()

	if err != nil {
		s.log.Warn("markdown shortcut failed", "marker", sc.Marker, "err", err)
		return false
	}
	if changed {
		s.notify(ev)
	}
	return true
}

// Move moves the cursor. Read-only sessions can still move; disabled ones
// cannot.
func (s *Session) Move(m surface.Move) {
	s.navigate(func() { s.surf.Move(m) })
}

func (s *Session) SetCursor(off int) {
	s.navigate(func() { s.surf.SetCursor(off) })
}

func (s *Session) Select(r surface.Range) {
	s.navigate(func() { s.surf.SetSelection(r) })
}

func (s *Session) SelectAll() {
	s.navigate(s.surf.SelectAll)
}

func (s *Session) ClearSelection() {
	s.navigate(s.surf.ClearSelection)
}

func (s *Session) SelectedText() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surf.SelectedText()
}

func (s *Session) navigate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed || s.disabled {
		return
	}
	fn()
}

func (s *Session) Undo() bool { return s.step(ChangeUndo, s.hist.Undo) }

func (s *Session) Redo() bool { return s.step(ChangeRedo, s.hist.Redo) }

func (s *Session) step(src ChangeSource, fn func() (string, bool)) bool {
	s.mu.Lock()
	if !s.editableLocked() {
		s.mu.Unlock()
		return false
	}
	doc, ok := fn()
	if !ok {
		s.mu.Unlock()
		return false
	}
	s.surf.SetText(doc)
	s.doc = doc
	ev := s.publishLocked(src)
	s.mu.Unlock()

	s.notify(ev)
	return true
}

func (s *Session) CanUndo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editableLocked() && s.hist.CanUndo()
}

func (s *Session) CanRedo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editableLocked() && s.hist.CanRedo()
}

// HistoryLen returns the number of retained snapshots.
func (s *Session) HistoryLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hist.Len()
}

// Save persists the document immediately through OnAutoSave.
func (s *Session) Save() error {
	err := s.saver.SaveNow()
	if errors.Is(err, autosave.ErrNoSaveFunc) {
		s.log.Debug("save requested without a save func")
	}
	return err
}

func (s *Session) Dirty() bool { return s.saver.Dirty() }

func (s *Session) LastSaved() (time.Time, bool) { return s.saver.LastSaved() }

// SaveEvents delivers autosave outcomes; it is closed by Close.
func (s *Session) SaveEvents() <-chan autosave.Event { return s.saver.Events() }

func (s *Session) Focus() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focused = true
}

func (s *Session) Blur() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.focused = false
}

func (s *Session) Focused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focused
}

// ToggleFullscreen flips the layout flag. The document is not touched.
func (s *Session) ToggleFullscreen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fullscreen = !s.fullscreen
}

func (s *Session) Fullscreen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fullscreen
}

func (s *Session) SetReadOnly(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.readOnly = v
}

func (s *Session) SetDisabled(v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.disabled = v
}

// Editable reports whether mutations are currently accepted.
func (s *Session) Editable() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editableLocked()
}

// Close releases global subscriptions and stops autosave. A pending
// debounced save is dropped; call Save first to flush it.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	subs := s.subs
	s.subs = nil
	s.mu.Unlock()

	for _, sub := range subs {
		sub.Release()
	}
	s.saver.Stop()
}

func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) handleGlobalKey(msg tea.KeyMsg) bool {
	s.mu.Lock()
	active := !s.closed && s.cfg.KeyboardShortcuts
	km := s.cfg.KeyMap
	s.mu.Unlock()
	if !active {
		return false
	}

	switch {
	case key.Matches(msg, km.Save):
		_ = s.Save()
		return true
	case key.Matches(msg, km.Fullscreen):
		s.ToggleFullscreen()
		return true
	}
	return false
}

func (s *Session) editableLocked() bool {
	return !s.closed && !s.disabled && !s.readOnly
}

// mutate runs fn against the surface and commits the result.
func (s *Session) mutate(src ChangeSource, fn func() error) error {
	s.mu.Lock()
	if !s.editableLocked() {
		s.mu.Unlock()
		return ErrNotEditable
	}
	ev, changed, err := s.applyLocked(src, fn)
	s.mu.Unlock()

	if changed {
		s.notify(ev)
	}
	return err
}

// applyLocked restores the surface when fn fails or panics, so a failed
// edit never reaches the document.
func (s *Session) applyLocked(src ChangeSource, fn func() error) (ChangeEvent, bool, error) {
	snap := s.surf.Snapshot()
	if err := guard(fn); err != nil {
		s.surf.Restore(snap)
		return ChangeEvent{}, false, err
	}
	ev, changed := s.commitLocked(src)
	return ev, changed, nil
}

func (s *Session) commitLocked(src ChangeSource) (ChangeEvent, bool) {
	next := s.surf.Text()
	if next == s.doc {
		return ChangeEvent{}, false
	}
	prev := s.doc
	s.doc = next
	s.hist.Record(prev, next)
	return s.publishLocked(src), true
}

func (s *Session) publishLocked(src ChangeSource) ChangeEvent {
	s.metrics = metrics.Count(s.doc)
	s.version++
	s.saver.Touch(s.doc)
	return ChangeEvent{
		Version: s.version,
		Source:  src,
		HTML:    s.doc,
		Metrics: s.metrics,
	}
}

func (s *Session) notify(ev ChangeEvent) {
	if s.cfg.OnChange == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			s.log.Error("change callback panicked", "panic", r, "version", ev.Version)
		}
	}()
	s.cfg.OnChange(ev)
}

func guard(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrCommandPanicked, r)
		}
	}()
	return fn()
}
