package editor

import "github.com/iw2rmb/quill/metrics"

// ChangeSource names the entry point that produced a change.
type ChangeSource uint8

const (
	ChangeInput ChangeSource = iota
	ChangeCommand
	ChangePaste
	ChangeUndo
	ChangeRedo
)

func (s ChangeSource) String() string {
	switch s {
	case ChangeCommand:
		return "command"
	case ChangePaste:
		return "paste"
	case ChangeUndo:
		return "undo"
	case ChangeRedo:
		return "redo"
	}
	return "input"
}

// ChangeEvent is delivered to Config.OnChange after the document changed.
type ChangeEvent struct {
	// Version increments once per accepted change.
	Version uint64
	Source  ChangeSource

	HTML    string
	Metrics metrics.Metrics
}
