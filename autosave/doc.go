// Package autosave debounces document persistence.
//
// A Scheduler owns the dirty flag, the last-saved timestamp and a single
// pending Task. Every dirty edit cancels the pending task and schedules a
// new one, so at most one save fires per quiet period.
package autosave
