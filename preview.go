package preptag

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"go.senan.xyz/natcmp"
	"go.senan.xyz/table/table"

	"go.senan.xyz/preptag/diff"
	"go.senan.xyz/preptag/metadata"
	"go.senan.xyz/preptag/rename"
)

const maxCurrentWidth = 28

func WriteRenamePreview(w io.Writer, actions []rename.Action, pretty bool) {
	if len(actions) == 0 {
		fmt.Fprintln(w, "No matching folders/files found. Nothing to rename.")
		return
	}

	var dirs, files []rename.Action
	for _, a := range actions {
		switch a.Kind {
		case rename.Dir:
			dirs = append(dirs, a)
		default:
			files = append(files, a)
		}
	}
	bySource := func(a, b rename.Action) int { return natcmp.Compare(a.Source, b.Source) }
	slices.SortStableFunc(dirs, bySource)
	slices.SortStableFunc(files, bySource)

	writeLine := func(a rename.Action) {
		if pretty {
			fmt.Fprintf(w, "  %s\n", diff.Rename(a).Pretty())
			return
		}
		fmt.Fprintf(w, "  %s -> %s\n", a.Source, a.Target)
	}

	fmt.Fprintln(w, "Preview of planned renames")
	fmt.Fprintln(w, strings.Repeat("=", 26))
	if len(dirs) > 0 {
		fmt.Fprintln(w, "\nFolders:")
		for _, a := range dirs {
			writeLine(a)
		}
	}
	if len(files) > 0 {
		fmt.Fprintln(w, "\nFiles:")
		for _, a := range files {
			writeLine(a)
		}
	}
	fmt.Fprintf(w, "\nTotal: %d rename(s)\n", len(actions))
}

func WriteMetadataPreview(w io.Writer, actions []metadata.Action) {
	if len(actions) == 0 {
		fmt.Fprintln(w, "No metadata updates required.")
		return
	}

	actions = slices.Clone(actions)
	slices.SortStableFunc(actions, func(a, b metadata.Action) int {
		return natcmp.Compare(a.Path, b.Path)
	})

	fmt.Fprintln(w, "Metadata update preview")
	fmt.Fprintln(w, strings.Repeat("=", 23))
	for i, a := range actions {
		fmt.Fprintf(w, "\n[%d] %s\n", i+1, a.Path)

		t := table.NewStringWriter()
		fmt.Fprintf(t, "%s\t%s\t%s\n", "tag", "current", "-> new")
		for _, d := range diff.Tags(a) {
			fmt.Fprintf(t, "%s\t%s\t-> %s\n", d.Field, fmtCurrent(d.Before), d.After)
		}
		for _, row := range strings.Split(strings.TrimRight(t.String(), "\n"), "\n") {
			fmt.Fprintf(w, "    %s\n", row)
		}
	}
	fmt.Fprintf(w, "\nTotal files to update: %d\n", len(actions))
}

func fmtCurrent(v string) string {
	if v == "" {
		return "[empty]"
	}
	if r := []rune(v); len(r) > maxCurrentWidth {
		return string(r[:maxCurrentWidth])
	}
	return v
}
