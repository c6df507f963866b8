// Package editor provides the rich-text editing session and a Bubble Tea
// component that presents it.
//
// Session is the headless core: it owns the HTML document, the surface
// (source text, cursor and selection), undo history, autosave scheduling
// and word/character metrics, and runs formatting commands through a
// richtext.Backend. Model renders a Session in a terminal with a toolbar,
// a soft-wrapped view of the HTML source and a status line.
package editor
