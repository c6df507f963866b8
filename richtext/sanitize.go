package richtext

import (
	"html"
	"regexp"
	"strings"
)

var (
	scriptRE      = regexp.MustCompile(`(?is)<script\b[^>]*>.*?</script\s*>`)
	styleBlockRE  = regexp.MustCompile(`(?is)<style\b[^>]*>.*?</style\s*>`)
	strayTagRE    = regexp.MustCompile(`(?i)</?(script|style)\b[^>]*>`)
	handlerAttrRE = regexp.MustCompile(`(?i)\s+on[a-z]+\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
	styleAttrRE   = regexp.MustCompile(`(?i)\s+style\s*=\s*("[^"]*"|'[^']*'|[^\s>]+)`)
	markupRE      = regexp.MustCompile(`<[a-zA-Z/!][^>]*>`)
)

// SanitizePaste removes script and style elements, inline event handlers
// and style attributes from pasted HTML.
//
// This is string stripping, not a security boundary. Authored HTML must be
// sanitized again wherever it is rendered or stored.
func SanitizePaste(s string) string {
	s = scriptRE.ReplaceAllString(s, "")
	s = styleBlockRE.ReplaceAllString(s, "")
	s = strayTagRE.ReplaceAllString(s, "")
	s = handlerAttrRE.ReplaceAllString(s, "")
	s = styleAttrRE.ReplaceAllString(s, "")
	return s
}

// LooksLikeHTML reports whether s contains at least one tag.
func LooksLikeHTML(s string) bool {
	return markupRE.MatchString(s)
}

// PlainToHTML escapes text and turns line breaks into <br>.
func PlainToHTML(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}

// PasteFragment prepares clipboard data for insertion: markup is sanitized,
// plain text is escaped.
func PasteFragment(data string) string {
	if LooksLikeHTML(data) {
		return SanitizePaste(data)
	}
	return PlainToHTML(data)
}
