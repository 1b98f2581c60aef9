package pathformat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.senan.xyz/preptag/pathformat"
)

var testFields = pathformat.Fields{
	"album": pathformat.String,
	"year":  pathformat.String,
	"track": pathformat.Int,
	"title": pathformat.String,
}

func TestValidation(t *testing.T) {
	var pf pathformat.Format
	_, err := pf.Execute(pathformat.Data{})
	assert.Error(t, err) // we didn't initalise with Parse() yet

	// bad format
	assert.ErrorIs(t, pf.Parse("", testFields), pathformat.ErrInvalidFormat)
	assert.ErrorIs(t, pf.Parse(" ", testFields), pathformat.ErrInvalidFormat)
	assert.ErrorIs(t, pf.Parse("{album", testFields), pathformat.ErrInvalidFormat)
	assert.ErrorIs(t, pf.Parse("album}", testFields), pathformat.ErrInvalidFormat)
	assert.ErrorIs(t, pf.Parse("{album}/{year}", testFields), pathformat.ErrInvalidFormat)
	assert.ErrorIs(t, pf.Parse("{track:>3}", testFields), pathformat.ErrInvalidFormat)
	assert.ErrorIs(t, pf.Parse("{title:02d}", testFields), pathformat.ErrInvalidFormat)

	// unknown placeholders are rejected up front
	assert.ErrorIs(t, pf.Parse("{artist} - {album}", testFields), pathformat.ErrUnknownPlaceholder)
	assert.ErrorIs(t, pf.Parse("{}", testFields), pathformat.ErrUnknownPlaceholder)

	// good
	assert.NoError(t, pf.Parse("{album} ({year})", testFields))
	assert.Equal(t, "{album} ({year})", pf.String())
	assert.NoError(t, pf.Parse("{track:02d} {title}", testFields))
	assert.NoError(t, pf.Parse("{track:d}. {title:s}", testFields))
	assert.NoError(t, pf.Parse("no placeholders", testFields))
}

func TestExecute(t *testing.T) {
	t.Parallel()

	exec := func(format string, data pathformat.Data) string {
		t.Helper()

		var pf pathformat.Format
		require.NoError(t, pf.Parse(format, testFields))
		r, err := pf.Execute(data)
		require.NoError(t, err)
		return r
	}

	assert.Equal(t, "Discovery (2001)", exec("{album} ({year})", pathformat.Data{"album": "Discovery", "year": "2001"}))
	assert.Equal(t, "01 One More Time", exec("{track:02d} {title}", pathformat.Data{"track": 1, "title": "One More Time"}))
	assert.Equal(t, "001 x", exec("{track:03d} {title}", pathformat.Data{"track": 1, "title": "x"}))
	assert.Equal(t, "100 x", exec("{track:02d} {title}", pathformat.Data{"track": 100, "title": "x"}))
	assert.Equal(t, " 7 x", exec("{track:2d} {title}", pathformat.Data{"track": 7, "title": "x"}))
	assert.Equal(t, "7 x", exec("{track} {title}", pathformat.Data{"track": 7, "title": "x"}))
	assert.Equal(t, "{2001} Discovery", exec("{{{year}}} {album}", pathformat.Data{"album": "Discovery", "year": "2001"}))
	assert.Equal(t, "x", exec("{title}", pathformat.Data{"title": "x", "unused": 1}))
}

func TestBadData(t *testing.T) {
	t.Parallel()

	var pf pathformat.Format
	require.NoError(t, pf.Parse("{track:02d} {title}", testFields))

	_, err := pf.Execute(pathformat.Data{"title": "x"})
	assert.ErrorIs(t, err, pathformat.ErrBadData)

	_, err = pf.Execute(pathformat.Data{"track": "1", "title": "x"})
	assert.ErrorIs(t, err, pathformat.ErrBadData)
}

func TestMustParse(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() { pathformat.MustParse("{album}", testFields) })
	assert.Panics(t, func() { pathformat.MustParse("{nope}", testFields) })
}
