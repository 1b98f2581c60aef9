// Package naming holds the rules that map raw album directory and track file
// names to their canonical forms, and back from canonical names to tag values.
//
// No rule returns an error. A name that doesn't fit a rule's pattern is reported
// with ok == false and callers skip it.
package naming

import (
	"regexp"
	"strconv"
	"strings"

	"go.senan.xyz/preptag/pathformat"
)

const (
	DefaultAlbumFormat = "{album} ({year})"
	DefaultTrackFormat = "{track:02d} {title}"
)

var (
	AlbumFields = pathformat.Fields{"album": pathformat.String, "year": pathformat.String}
	TrackFields = pathformat.Fields{"track": pathformat.Int, "title": pathformat.String}
)

func ParseAlbumFormat(str string) (pathformat.Format, error) {
	var pf pathformat.Format
	err := pf.Parse(str, AlbumFields)
	return pf, err
}

func ParseTrackFormat(str string) (pathformat.Format, error) {
	var pf pathformat.Format
	err := pf.Parse(str, TrackFields)
	return pf, err
}

var (
	albumDirExpr  = regexp.MustCompile(`^(\d{4})\s*-\s*(.+)$`)
	trackFileExpr = regexp.MustCompile(`^(\d{1,3})\s*-\s*(.+)$`)
	albumYearExpr = regexp.MustCompile(`^(.+?)\s*\((\d{4})\)$`)
	trackNumExpr  = regexp.MustCompile(`^(\d{2})\b`)
)

// AlbumDir renames "2001 - Discovery" style directory names with pf.
func AlbumDir(name string, pf *pathformat.Format) (string, bool) {
	m := albumDirExpr.FindStringSubmatch(name)
	if m == nil {
		return "", false
	}
	year, album := m[1], strings.TrimSpace(m[2])
	r, err := pf.Execute(pathformat.Data{"album": album, "year": year})
	if err != nil || r == name {
		return "", false
	}
	return r, true
}

// TrackFile renames "1 - One More Time" style file stems with pf. The track number
// is passed to the format as an int, so "1" and "01" normalise the same way.
func TrackFile(stem string, pf *pathformat.Format) (string, bool) {
	m := trackFileExpr.FindStringSubmatch(stem)
	if m == nil {
		return "", false
	}
	track, _ := strconv.Atoi(m[1])
	title := strings.TrimSpace(m[2])
	r, err := pf.Execute(pathformat.Data{"track": track, "title": title})
	if err != nil || r == stem {
		return "", false
	}
	return r, true
}

// AlbumYear reads "Discovery (2001)" directory names.
func AlbumYear(name string) (album, year string, ok bool) {
	m := albumYearExpr.FindStringSubmatch(name)
	if m == nil {
		return "", "", false
	}
	return strings.TrimSpace(m[1]), m[2], true
}

// TrackNumber reads the two digit prefix of a file stem, as written. "05 Title"
// gives "05". Longer runs of digits like "100 Title" have no word boundary after
// the first two digits and don't match.
func TrackNumber(stem string) (string, bool) {
	m := trackNumExpr.FindStringSubmatch(stem)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// SplitExt splits a file name at its last dot. A single leading dot, as in ".hidden",
// is part of the stem and not an extension.
func SplitExt(name string) (stem, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return name, ""
	}
	return name[:i], name[i:]
}
