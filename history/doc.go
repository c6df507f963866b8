// Package history implements linear undo/redo over document snapshots.
//
// Snapshots are whole documents. The cursor always points at the snapshot
// currently displayed; recording a new snapshot after an undo discards the
// redo branch.
package history
