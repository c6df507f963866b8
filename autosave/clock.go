package autosave

import "time"

// Timer is the subset of *time.Timer used by Task.
type Timer interface {
	Stop() bool
}

// Clock abstracts wall time so schedules can be driven by tests.
type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
}

// SystemClock is the real clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

func (SystemClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }
