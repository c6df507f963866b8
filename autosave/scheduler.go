package autosave

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// DefaultInterval is used when Options.Interval is 0.
const DefaultInterval = 30 * time.Second

var (
	ErrNoSaveFunc = errors.New("autosave: no save func configured")
	ErrStopped    = errors.New("autosave: scheduler stopped")
)

// SaveFunc persists a document. It runs on the scheduler's timer goroutine
// for debounced saves and on the caller's goroutine for SaveNow.
type SaveFunc func(doc string) error

type Options struct {
	// Enabled arms the debounce on dirty edits. SaveNow works regardless.
	Enabled bool
	// Interval is the quiet period before a save fires. Default: DefaultInterval.
	Interval time.Duration
	// MaxWait caps how long a continuous burst of edits can postpone a save,
	// measured from the first dirty edit of the burst.
	// 0 means Interval; negative means no cap (pure trailing edge).
	MaxWait time.Duration

	Save   SaveFunc
	Clock  Clock
	Logger *log.Logger
}

// Event reports the outcome of one save attempt.
type Event struct {
	Doc    string
	At     time.Time
	Err    error
	Manual bool
}

// Scheduler debounces persistence of a single document.
type Scheduler struct {
	mu  sync.Mutex
	opt Options

	task *Task

	doc        string
	saved      string
	gen        uint64
	dirty      bool
	burstStart time.Time
	lastSaved  time.Time
	stopped    bool

	events chan Event
}

func New(opt Options) *Scheduler {
	if opt.Interval <= 0 {
		opt.Interval = DefaultInterval
	}
	if opt.MaxWait == 0 {
		opt.MaxWait = opt.Interval
	}
	if opt.Clock == nil {
		opt.Clock = SystemClock{}
	}
	if opt.Logger == nil {
		opt.Logger = log.New(io.Discard)
	}
	return &Scheduler{
		opt:    opt,
		task:   NewTask(opt.Clock),
		events: make(chan Event, 1),
	}
}

// Events delivers save outcomes. Sends never block: when the consumer lags
// only the oldest undelivered event is kept. The channel is closed by Stop.
func (s *Scheduler) Events() <-chan Event { return s.events }

// Touch records doc as the latest dirty document and (re)arms the pending save.
func (s *Scheduler) Touch(doc string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.doc = doc
	s.dirty = true
	s.gen++

	if !s.opt.Enabled || s.opt.Save == nil {
		return
	}

	now := s.opt.Clock.Now()
	if s.burstStart.IsZero() {
		s.burstStart = now
	}
	delay := s.opt.Interval
	if s.opt.MaxWait > 0 {
		remaining := s.burstStart.Add(s.opt.MaxWait).Sub(now)
		if remaining < 0 {
			remaining = 0
		}
		if remaining < delay {
			delay = remaining
		}
	}
	s.task.Schedule(delay, s.fire)
}

// Sync marks doc as externally acknowledged: the dirty flag is cleared and
// any pending save is dropped.
func (s *Scheduler) Sync(doc string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.doc = doc
	s.saved = doc
	s.dirty = false
	s.gen++
	s.burstStart = time.Time{}
	s.task.Cancel()
}

// SaveNow saves the latest document immediately, bypassing the debounce.
func (s *Scheduler) SaveNow() error {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return ErrStopped
	}
	if s.opt.Save == nil {
		s.mu.Unlock()
		return ErrNoSaveFunc
	}
	s.task.Cancel()
	s.burstStart = time.Time{}
	doc, gen := s.doc, s.gen
	s.mu.Unlock()

	return s.save(doc, gen, true)
}

func (s *Scheduler) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dirty
}

// LastSaved returns the time of the last successful save.
func (s *Scheduler) LastSaved() (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSaved, !s.lastSaved.IsZero()
}

// Saved returns the document of the last successful save or Sync.
func (s *Scheduler) Saved() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved
}

func (s *Scheduler) Pending() bool { return s.task.Pending() }

// Stop cancels the pending save and closes Events. Later calls are no-ops.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}
	s.stopped = true
	s.task.Cancel()
	close(s.events)
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.burstStart = time.Time{}
	doc, gen := s.doc, s.gen
	s.mu.Unlock()

	_ = s.save(doc, gen, false)
}

func (s *Scheduler) save(doc string, gen uint64, manual bool) error {
	err := callSave(s.opt.Save, doc)
	at := s.opt.Clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		// No retry: the next edit rearms the task.
		s.opt.Logger.Error("autosave failed", "err", err, "manual", manual, "bytes", len(doc))
	} else {
		s.lastSaved = at
		s.saved = doc
		// A newer edit arrived while saving; that document is still unsaved.
		if s.gen == gen {
			s.dirty = false
		}
		s.opt.Logger.Debug("autosaved", "manual", manual, "bytes", len(doc))
	}

	if !s.stopped {
		select {
		case s.events <- Event{Doc: doc, At: at, Err: err, Manual: manual}:
		default:
		}
	}
	return err
}

func callSave(fn SaveFunc, doc string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("autosave: save panicked: %v", r)
		}
	}()
	return fn(doc)
}
