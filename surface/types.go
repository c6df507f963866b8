package surface

// Range is a half-open byte range [Start, End).
type Range struct {
	Start int
	End   int
}

// Pos locates an offset for rendering: 0-based row and grapheme column.
type Pos struct {
	Row int
	Col int
}

func NormalizeRange(r Range) Range {
	if r.Start <= r.End {
		return r
	}
	return Range{Start: r.End, End: r.Start}
}

func (r Range) IsEmpty() bool { return r.Start == r.End }

func (r Range) Len() int {
	r = NormalizeRange(r)
	return r.End - r.Start
}

type MoveUnit uint8

const (
	MoveGrapheme MoveUnit = iota
	MoveWord
	MoveLine
	MoveDocument
)

type MoveDir uint8

const (
	DirLeft MoveDir = iota
	DirRight
	DirUp
	DirDown
	DirHome
	DirEnd
)

// Move describes a cursor movement. Extend grows the selection from its
// anchor instead of collapsing it.
type Move struct {
	Unit   MoveUnit
	Dir    MoveDir
	Extend bool
}

func clampInt(v, min, max int) int {
	if max < min {
		return min
	}
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
