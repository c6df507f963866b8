package richtext

import (
	"errors"
	"strings"
	"testing"
)

func TestLinkFragment(t *testing.T) {
	got, err := LinkFragment(" https://example.com/?a=1&b=2 ", "")
	if err != nil {
		t.Fatalf("LinkFragment: %v", err)
	}
	want := `<a href="https://example.com/?a=1&amp;b=2" target="_blank" rel="noopener noreferrer">https://example.com/?a=1&amp;b=2</a>`
	if got != want {
		t.Fatalf("link:\n got %q\nwant %q", got, want)
	}

	if _, err := LinkFragment("  ", "x"); !errors.Is(err, ErrEmptyURL) {
		t.Fatalf("empty url: got %v, want %v", err, ErrEmptyURL)
	}
	if _, err := LinkFragment("JavaScript:alert(1)", "x"); !errors.Is(err, ErrUnsafeURL) {
		t.Fatalf("javascript url: got %v, want %v", err, ErrUnsafeURL)
	}
}

func TestParseTableSize(t *testing.T) {
	cases := []struct {
		rows, cols string
		r, c       int
	}{
		{rows: "2", cols: "4", r: 2, c: 4},
		{rows: "", cols: "", r: 3, c: 3},
		{rows: "abc", cols: "5", r: 3, c: 5},
		{rows: "-1", cols: "0", r: 3, c: 3},
		{rows: " 7 ", cols: "1000", r: 7, c: MaxTableSize},
	}
	for _, tc := range cases {
		r, c := ParseTableSize(tc.rows, tc.cols)
		if r != tc.r || c != tc.c {
			t.Fatalf("ParseTableSize(%q, %q): got %dx%d, want %dx%d", tc.rows, tc.cols, r, c, tc.r, tc.c)
		}
	}
}

func TestTableFragment(t *testing.T) {
	got := TableFragment(2, 3)
	if n := strings.Count(got, "<tr>"); n != 2 {
		t.Fatalf("rows: got %d, want 2", n)
	}
	if n := strings.Count(got, "<td><br></td>"); n != 6 {
		t.Fatalf("cells: got %d, want 6", n)
	}
}

func TestMediaFragment(t *testing.T) {
	got, err := MediaFragment(MediaImage, `a"b.png`, "image/png", []byte{1, 2, 3})
	if err != nil {
		t.Fatalf("image: %v", err)
	}
	want := `<img src="data:image/png;base64,AQID" alt="a&#34;b.png" style="max-width: 100%; height: auto;">`
	if got != want {
		t.Fatalf("image:\n got %q\nwant %q", got, want)
	}

	got, err = MediaFragment(MediaVideo, "clip.mp4", "video/mp4", []byte{0})
	if err != nil {
		t.Fatalf("video: %v", err)
	}
	if !strings.HasPrefix(got, `<video src="data:video/mp4;base64,AA=="`) {
		t.Fatalf("video: got %q", got)
	}

	if _, err := MediaFragment(MediaImage, "clip.mp4", "video/mp4", nil); !errors.Is(err, ErrMediaType) {
		t.Fatalf("mismatch: got %v, want %v", err, ErrMediaType)
	}
	if _, err := MediaFragment(MediaVideo, "x", "", nil); !errors.Is(err, ErrMediaType) {
		t.Fatalf("empty type: got %v, want %v", err, ErrMediaType)
	}
}

func TestDetectMediaType(t *testing.T) {
	if got := DetectMediaType("photo.PNG", nil); got != "image/png" {
		t.Fatalf("by extension: got %q, want %q", got, "image/png")
	}
	gif := []byte("GIF89a\x01\x00\x01\x00")
	if got := DetectMediaType("noext", gif); got != "image/gif" {
		t.Fatalf("by content: got %q, want %q", got, "image/gif")
	}
}
