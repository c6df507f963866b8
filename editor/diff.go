package editor

import (
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/iw2rmb/quill/internal/grapheme"
)

// DiffStat summarises how the document differs from the last saved one,
// in grapheme clusters of HTML source.
type DiffStat struct {
	Inserted int
	Deleted  int
}

func (d DiffStat) IsZero() bool { return d.Inserted == 0 && d.Deleted == 0 }

func (s *Session) unsavedDiffs() (string, []diffmatchpatch.Diff) {
	saved := s.saver.Saved()
	doc := s.Value()
	if saved == doc {
		return saved, nil
	}
	dmp := diffmatchpatch.New()
	return saved, dmp.DiffCleanupSemantic(dmp.DiffMain(saved, doc, false))
}

// UnsavedDiff compares the document with what was last saved (or set with
// SetValue).
func (s *Session) UnsavedDiff() DiffStat {
	_, diffs := s.unsavedDiffs()
	var st DiffStat
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			st.Inserted += grapheme.Count(d.Text)
		case diffmatchpatch.DiffDelete:
			st.Deleted += grapheme.Count(d.Text)
		}
	}
	return st
}

// UnsavedPatch returns the unsaved changes as a patch in diff-match-patch
// text format, or "" when there are none. Hosts can ship it instead of the
// whole document.
func (s *Session) UnsavedPatch() string {
	saved, diffs := s.unsavedDiffs()
	if len(diffs) == 0 {
		return ""
	}
	dmp := diffmatchpatch.New()
	return dmp.PatchToText(dmp.PatchMake(saved, diffs))
}
