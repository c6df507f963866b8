package richtext

import (
	"regexp"
	"strconv"
)

var shortcutRE = regexp.MustCompile(`^\s*(#{1,6}|[-*]|\d+\.)$`)

// Shortcut is the block format a markdown-style line prefix converts to.
type Shortcut struct {
	Format BlockFormat
	Value  string
	// Marker is the matched prefix, including leading whitespace.
	Marker string
}

// MatchShortcut checks the text between the line start and the cursor:
// "#".."######" map to headings, "-" and "*" to an unordered list and "N."
// to an ordered list.
func MatchShortcut(linePrefix string) (Shortcut, bool) {
	m := shortcutRE.FindStringSubmatch(linePrefix)
	if m == nil {
		return Shortcut{}, false
	}
	marker := m[1]
	switch {
	case marker[0] == '#':
		return Shortcut{Format: FormatHeading, Value: strconv.Itoa(len(marker)), Marker: linePrefix}, true
	case marker == "-" || marker == "*":
		return Shortcut{Format: FormatUnorderedList, Marker: linePrefix}, true
	default:
		return Shortcut{Format: FormatOrderedList, Marker: linePrefix}, true
	}
}
