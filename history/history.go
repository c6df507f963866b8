package history

// DefaultLimit bounds the number of retained snapshots when Options.Limit is 0.
const DefaultLimit = 1000

type Options struct {
	Limit int // default: DefaultLimit; negative disables history
}

// History is a snapshot stack with a cursor.
//
// Invariant: 0 <= cursor < len(entries) whenever entries is non-empty.
type History struct {
	entries []string
	cursor  int
	opt     Options
}

func New(opt Options) *History {
	if opt.Limit == 0 {
		opt.Limit = DefaultLimit
	}
	return &History{opt: opt}
}

func (h *History) Len() int { return len(h.entries) }

// Cursor returns the index of the displayed snapshot, or -1 when empty.
func (h *History) Cursor() int {
	if len(h.entries) == 0 {
		return -1
	}
	return h.cursor
}

// Current returns the displayed snapshot.
func (h *History) Current() (string, bool) {
	if len(h.entries) == 0 {
		return "", false
	}
	return h.entries[h.cursor], true
}

// Entries returns a copy of the retained snapshots in insertion order.
func (h *History) Entries() []string {
	return append([]string(nil), h.entries...)
}

// Record captures an edit from prev to next.
//
// The pre-edit document seeds an empty history so the first edit can be
// undone. Record is a no-op when next equals the displayed snapshot.
func (h *History) Record(prev, next string) bool {
	if h.opt.Limit < 0 {
		return false
	}
	if cur, ok := h.Current(); ok {
		if cur == next {
			return false
		}
	} else if prev == next {
		return false
	}

	if len(h.entries) == 0 {
		h.entries = append(h.entries, prev)
	} else {
		h.entries = h.entries[:h.cursor+1]
	}
	h.entries = append(h.entries, next)

	if excess := len(h.entries) - h.opt.Limit; excess > 0 {
		h.entries = append([]string(nil), h.entries[excess:]...)
	}
	h.cursor = len(h.entries) - 1
	return true
}

func (h *History) CanUndo() bool { return len(h.entries) > 0 && h.cursor > 0 }

func (h *History) CanRedo() bool { return len(h.entries) > 0 && h.cursor < len(h.entries)-1 }

func (h *History) Undo() (string, bool) {
	if !h.CanUndo() {
		return "", false
	}
	h.cursor--
	return h.entries[h.cursor], true
}

func (h *History) Redo() (string, bool) {
	if !h.CanRedo() {
		return "", false
	}
	h.cursor++
	return h.entries[h.cursor], true
}

// Reset drops every snapshot.
func (h *History) Reset() {
	h.entries = nil
	h.cursor = 0
}
