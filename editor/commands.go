package editor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/iw2rmb/quill/metrics"
	"github.com/iw2rmb/quill/richtext"
)

// Exec runs a catalog command against the selection and commits the
// result. A failing or panicking command is logged and leaves the
// document unchanged.
func (s *Session) Exec(cmd richtext.Command, value string) error {
	s.mu.Lock()
	if !s.editableLocked() {
		s.mu.Unlock()
		return ErrNotEditable
	}
	s.focused = true
	ev, changed, err := s.applyLocked(ChangeCommand, func() error {
		return richtext.Apply(s.backend, cmd, value)
	})
	s.mu.Unlock()

	if err != nil {
		s.log.Warn("command failed", "cmd", cmd, "err", err)
		return err
	}
	if changed {
		s.notify(ev)
	}
	return nil
}

// QueryState reports whether cmd is active at the cursor.
func (s *Session) QueryState(cmd richtext.Command) (active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			s.log.Warn("query state panicked", "cmd", cmd, "panic", r)
			active = false
		}
	}()
	return s.backend.QueryState(cmd)
}

// InsertLink inserts an anchor opening in a new tab. An empty URL is a
// no-op. Without text the plain text of the selection is used, then the
// URL itself.
func (s *Session) InsertLink(url, text string) error {
	if text == "" {
		text = metrics.PlainText(s.SelectedText())
	}
	frag, err := richtext.LinkFragment(url, text)
	if errors.Is(err, richtext.ErrEmptyURL) {
		return nil
	}
	if err != nil {
		s.log.Warn("link rejected", "url", url, "err", err)
		return err
	}
	return s.Exec(richtext.CmdInsertLink, frag)
}

// InsertTable inserts an empty grid. Sizes come straight from a prompt:
// empty or invalid input means 3.
func (s *Session) InsertTable(rows, cols string) error {
	r, c := richtext.ParseTableSize(rows, cols)
	return s.Exec(richtext.CmdInsertTable, richtext.TableFragment(r, c))
}

func (s *Session) InsertEmoji(emoji string) error {
	if emoji == "" {
		return nil
	}
	return s.Exec(richtext.CmdInsertEmoji, emoji)
}

// InsertHTML inserts fragment as is.
func (s *Session) InsertHTML(fragment string) error {
	return s.Exec(richtext.CmdInsertHTML, fragment)
}

// InsertMedia embeds data as an image or video. A content type that does
// not match kind is rejected without touching the document.
func (s *Session) InsertMedia(kind richtext.MediaKind, name, contentType string, data []byte) error {
	frag, err := richtext.MediaFragment(kind, name, contentType, data)
	if err != nil {
		s.log.Warn("media rejected", "name", name, "type", contentType, "err", err)
		return err
	}
	cmd := richtext.CmdInsertImage
	if kind == richtext.MediaVideo {
		cmd = richtext.CmdInsertVideo
	}
	return s.Exec(cmd, frag)
}

// InsertMediaFile reads path and inserts it with InsertMedia.
func (s *Session) InsertMediaFile(kind richtext.MediaKind, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		s.log.Warn("media read failed", "path", path, "err", err)
		return fmt.Errorf("read %s: %w", kind, err)
	}
	return s.InsertMedia(kind, filepath.Base(path), richtext.DetectMediaType(path, data), data)
}
