package editor

import "github.com/atotto/clipboard"

// Clipboard provides editor-level clipboard integration.
//
// Errors must not crash the UI; failures are logged and ignored.
type Clipboard interface {
	ReadText() (string, error)
	WriteText(s string) error
}

// SystemClipboard uses the platform clipboard (pbcopy, xclip/xsel,
// wl-clipboard or the Windows API).
type SystemClipboard struct{}

func (SystemClipboard) ReadText() (string, error) { return clipboard.ReadAll() }

func (SystemClipboard) WriteText(s string) error { return clipboard.WriteAll(s) }

// ClipboardAvailable reports whether SystemClipboard can work here.
func ClipboardAvailable() bool { return !clipboard.Unsupported }
