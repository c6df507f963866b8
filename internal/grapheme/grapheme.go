package grapheme

import (
	"unicode"

	"github.com/rivo/uniseg"
)

// Count returns the number of grapheme clusters in text.
func Count(text string) int {
	if text == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(text)
}

// Next returns the byte offset of the grapheme boundary after off.
// Offsets at or past the end clamp to len(text).
func Next(text string, off int) int {
	if off < 0 {
		off = 0
	}
	if off >= len(text) {
		return len(text)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeClusterInString(text[off:], -1)
	return off + len(cluster)
}

// Prev returns the byte offset of the grapheme boundary before off.
func Prev(text string, off int) int {
	if off > len(text) {
		off = len(text)
	}
	if off <= 0 {
		return 0
	}
	last := 0
	state := -1
	rest := text[:off]
	pos := 0
	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		last = pos
		pos += len(cluster)
	}
	return last
}

// Snap moves off back to the nearest grapheme boundary at or before it.
func Snap(text string, off int) int {
	if off <= 0 {
		return 0
	}
	if off >= len(text) {
		return len(text)
	}
	pos := 0
	state := -1
	rest := text
	for rest != "" {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		if pos+len(cluster) > off {
			return pos
		}
		pos += len(cluster)
	}
	return pos
}

// OffsetAtCol returns the byte offset of the col-th grapheme of line,
// clamped to the end of line.
func OffsetAtCol(line string, col int) int {
	if col <= 0 {
		return 0
	}
	pos := 0
	state := -1
	rest := line
	for i := 0; i < col && rest != ""; i++ {
		var cluster string
		cluster, rest, _, state = uniseg.FirstGraphemeClusterInString(rest, state)
		pos += len(cluster)
	}
	return pos
}

// At returns the grapheme cluster that starts at off.
func At(text string, off int) string {
	if off < 0 || off >= len(text) {
		return ""
	}
	return text[off:Next(text, off)]
}

// IsSpace reports whether all runes in cluster are Unicode whitespace.
func IsSpace(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsPunct reports whether all runes in cluster are Unicode punctuation.
func IsPunct(cluster string) bool {
	if cluster == "" {
		return false
	}
	for _, r := range cluster {
		if !unicode.IsPunct(r) {
			return false
		}
	}
	return true
}
