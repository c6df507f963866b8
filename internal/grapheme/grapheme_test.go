package grapheme

import "testing"

const family = "\U0001F468\u200d\U0001F469\u200d\U0001F467\u200d\U0001F466"

func TestCount_MultiRuneGraphemes(t *testing.T) {
	text := "a" + "é" + family + "b"
	if c := Count(text); c != 4 {
		t.Fatalf("count=%d, want %d", c, 4)
	}
	if c := Count(""); c != 0 {
		t.Fatalf("count empty=%d, want 0", c)
	}
}

func TestNextPrev_StepWholeClusters(t *testing.T) {
	text := "a" + "é" + family + "b"
	a := 0
	e := Next(text, a)
	if e != 1 {
		t.Fatalf("next from a=%d, want %d", e, 1)
	}
	f := Next(text, e)
	if got, want := text[e:f], "é"; got != want {
		t.Fatalf("cluster=%q, want %q", got, want)
	}
	b := Next(text, f)
	if got := text[f:b]; got != family {
		t.Fatalf("cluster=%q, want family emoji", got)
	}
	if got := Next(text, len(text)); got != len(text) {
		t.Fatalf("next at end=%d, want %d", got, len(text))
	}

	if got := Prev(text, b); got != f {
		t.Fatalf("prev from b=%d, want %d", got, f)
	}
	if got := Prev(text, f); got != e {
		t.Fatalf("prev from family=%d, want %d", got, e)
	}
	if got := Prev(text, 0); got != 0 {
		t.Fatalf("prev at start=%d, want 0", got)
	}
}

func TestSnap_InsideCluster(t *testing.T) {
	text := "x" + family
	if got := Snap(text, 3); got != 1 {
		t.Fatalf("snap=%d, want %d", got, 1)
	}
	if got := Snap(text, 99); got != len(text) {
		t.Fatalf("snap past end=%d, want %d", got, len(text))
	}
}

func TestOffsetAtCol(t *testing.T) {
	line := "πéz"
	if got, want := OffsetAtCol(line, 2), len("πé"); got != want {
		t.Fatalf("offset=%d, want %d", got, want)
	}
	if got := OffsetAtCol(line, 10); got != len(line) {
		t.Fatalf("offset past end=%d, want %d", got, len(line))
	}
}

func TestClassifiers(t *testing.T) {
	if !IsSpace("\t") {
		t.Fatalf("tab should be space")
	}
	if IsSpace("a") {
		t.Fatalf("letter should not be space")
	}
	if !IsPunct("!") {
		t.Fatalf("exclamation should be punct")
	}
	if IsPunct("a") {
		t.Fatalf("letter should not be punct")
	}
	if got := At("ab", 1); got != "b" {
		t.Fatalf("at=%q, want %q", got, "b")
	}
}
