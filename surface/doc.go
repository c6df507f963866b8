// Package surface implements the editable surface: the serialized HTML of a
// document together with a cursor and an optional selection.
//
// Offsets are byte offsets into the HTML and always sit on grapheme
// boundaries. Ranges are half-open: [Start, End).
package surface
