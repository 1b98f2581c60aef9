package diff

import (
	"maps"
	"slices"

	"github.com/sergi/go-diff/diffmatchpatch"

	"go.senan.xyz/preptag/metadata"
	"go.senan.xyz/preptag/rename"
)

var dmp = diffmatchpatch.New()

type Diff struct {
	Field         string
	Before, After string
	Changes       []diffmatchpatch.Diff
}

func New(field, before, after string) Diff {
	return Diff{Field: field, Before: before, After: after, Changes: dmp.DiffMain(before, after, false)}
}

// Pretty renders the changes inline with ANSI colours, deletions in red and
// insertions in green.
func (d Diff) Pretty() string {
	return dmp.DiffPrettyText(d.Changes)
}

func Rename(a rename.Action) Diff {
	return New(a.Kind.String(), a.Source, a.Target)
}

// Tags diffs each updated tag against its current value, sorted by tag key.
func Tags(a metadata.Action) []Diff {
	var diffs []Diff
	for _, k := range slices.Sorted(maps.Keys(a.Updates)) {
		diffs = append(diffs, New(k, a.Current[k], a.Updates[k]))
	}
	return diffs
}
