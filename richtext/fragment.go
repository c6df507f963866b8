package richtext

import (
	"encoding/base64"
	"fmt"
	"html"
	"mime"
	"net/http"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	DefaultTableSize = 3
	MaxTableSize     = 50
)

// LinkFragment builds an anchor that opens in a new browsing context.
// Empty text falls back to the URL.
func LinkFragment(rawURL, text string) (string, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return "", ErrEmptyURL
	}
	if u, err := url.Parse(rawURL); err == nil {
		switch strings.ToLower(u.Scheme) {
		case "javascript", "vbscript", "data":
			return "", fmt.Errorf("%q: %w", u.Scheme, ErrUnsafeURL)
		}
	}
	if strings.TrimSpace(text) == "" {
		text = rawURL
	}
	return `<a href="` + html.EscapeString(rawURL) + `" target="_blank" rel="noopener noreferrer">` +
		html.EscapeString(text) + `</a>`, nil
}

// ParseTableSize reads prompted row and column counts. Cancelled, empty,
// non-numeric or non-positive input falls back to DefaultTableSize.
func ParseTableSize(rows, cols string) (int, int) {
	return parseTableDim(rows), parseTableDim(cols)
}

func parseTableDim(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return DefaultTableSize
	}
	if n > MaxTableSize {
		return MaxTableSize
	}
	return n
}

// TableFragment builds a rows x cols grid of empty cells.
func TableFragment(rows, cols int) string {
	var sb strings.Builder
	sb.WriteString("<table><tbody>")
	for r := 0; r < rows; r++ {
		sb.WriteString("<tr>")
		for c := 0; c < cols; c++ {
			sb.WriteString("<td><br></td>")
		}
		sb.WriteString("</tr>")
	}
	sb.WriteString("</tbody></table>")
	return sb.String()
}

// MediaKind is the kind of element a media insertion produces.
type MediaKind uint8

const (
	MediaImage MediaKind = iota
	MediaVideo
)

func (k MediaKind) String() string {
	if k == MediaVideo {
		return "video"
	}
	return "image"
}

// Accepts reports whether contentType declares this kind of media.
func (k MediaKind) Accepts(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, k.String()+"/")
}

// DetectMediaType returns the declared type for a file: by extension first,
// then by sniffing the content.
func DetectMediaType(name string, data []byte) string {
	if t := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); t != "" {
		return t
	}
	return http.DetectContentType(data)
}

// MediaFragment embeds data as a data URI in an <img> or <video> element
// sized to fit its container.
func MediaFragment(kind MediaKind, name, contentType string, data []byte) (string, error) {
	if !kind.Accepts(contentType) {
		return "", fmt.Errorf("%s %q (%s): %w", kind, name, contentType, ErrMediaType)
	}
	mediaType, _, _ := mime.ParseMediaType(contentType)
	src := "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)

	if kind == MediaVideo {
		return `<video src="` + src + `" controls style="max-width: 100%;"></video>`, nil
	}
	return `<img src="` + src + `" alt="` + html.EscapeString(name) + `" style="max-width: 100%; height: auto;">`, nil
}

// Emojis is the default picker palette.
var Emojis = []string{
	"😀", "😂", "😍", "🤔", "😎", "😢", "👍", "👎",
	"🙏", "👏", "🎉", "🔥", "❤️", "✨", "✅", "❌",
	"⭐", "💡", "📌", "📝", "🚀", "☕", "🌱", "🐛",
}
