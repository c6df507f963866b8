// Package metrics derives word and character counts from HTML documents.
package metrics

import (
	"html"
	"regexp"
	"strings"

	"github.com/iw2rmb/quill/internal/grapheme"
)

var tagRE = regexp.MustCompile(`<[^>]*>`)

// Metrics are counts derived from a document. They are never persisted.
type Metrics struct {
	Words int
	Chars int
}

// PlainText strips markup, decodes entities and trims surrounding space.
func PlainText(doc string) string {
	text := tagRE.ReplaceAllString(doc, "")
	text = html.UnescapeString(text)
	return strings.TrimSpace(text)
}

// Count returns word and character counts for doc. Words are runs of
// non-space text; characters are grapheme clusters of the stripped text.
func Count(doc string) Metrics {
	text := PlainText(doc)
	if text == "" {
		return Metrics{}
	}
	return Metrics{
		Words: len(strings.Fields(text)),
		Chars: grapheme.Count(text),
	}
}

// Level classifies a count against a configured maximum.
type Level uint8

const (
	LevelNormal Level = iota
	// LevelWarning: past 80% of the maximum.
	LevelWarning
	LevelExceeded
)

func (l Level) String() string {
	switch l {
	case LevelWarning:
		return "warning"
	case LevelExceeded:
		return "exceeded"
	default:
		return "normal"
	}
}

// Check classifies count against max. A max <= 0 means no limit.
func Check(count, max int) Level {
	if max <= 0 {
		return LevelNormal
	}
	if count > max {
		return LevelExceeded
	}
	// count > 0.8*max without floating point.
	if count*5 > max*4 {
		return LevelWarning
	}
	return LevelNormal
}

// Limits are the configured maxima; zero disables a limit.
type Limits struct {
	MaxWords int
	MaxChars int
}

// Report bundles counts with their threshold levels.
type Report struct {
	Metrics
	WordLevel Level
	CharLevel Level
}

func (l Limits) Report(m Metrics) Report {
	return Report{
		Metrics:   m,
		WordLevel: Check(m.Words, l.MaxWords),
		CharLevel: Check(m.Chars, l.MaxChars),
	}
}

func (r Report) Warning() bool { return r.WordLevel == LevelWarning || r.CharLevel == LevelWarning }

func (r Report) Exceeded() bool {
	return r.WordLevel == LevelExceeded || r.CharLevel == LevelExceeded
}
