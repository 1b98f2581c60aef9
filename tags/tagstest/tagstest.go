// Package tagstest provides an in memory tags.Codec.
package tagstest

import (
	"fmt"
	"maps"
	"slices"

	"go.senan.xyz/preptag/tags"
)

var _ tags.Codec = (*Codec)(nil)

// Codec keeps tags per path. Only paths registered with Put are supported, any
// other path opens with tags.ErrUnsupported.
type Codec struct {
	files map[string]map[string][]string

	OpenErr error // returned from every Open if set
	SaveErr error // returned from every Save if set
	Saves   int
}

func New() *Codec {
	return &Codec{files: map[string]map[string][]string{}}
}

// Put registers path as a supported file with kv pairs of tags.
func (c *Codec) Put(path string, kvs ...string) {
	if len(kvs)%2 != 0 {
		panic("kvs should be kv pairs")
	}
	t := map[string][]string{}
	for i := 0; i < len(kvs)-1; i += 2 {
		t[tags.NormKey(kvs[i])] = append(t[tags.NormKey(kvs[i])], kvs[i+1])
	}
	c.files[path] = t
}

// Tags returns the stored tags for path, nil if it was never Put.
func (c *Codec) Tags(path string) map[string][]string {
	return c.files[path]
}

func (c *Codec) Open(path string) (tags.File, error) {
	if c.OpenErr != nil {
		return nil, c.OpenErr
	}
	t, ok := c.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", tags.ErrUnsupported, path)
	}
	raw := maps.Clone(t)
	for k, vs := range raw {
		raw[k] = slices.Clone(vs)
	}
	return &file{c: c, path: path, raw: raw}, nil
}

type file struct {
	c    *Codec
	path string
	raw  map[string][]string
}

func (f *file) Lookup(key string) ([]string, bool) {
	vs, ok := f.raw[tags.NormKey(key)]
	return vs, ok
}

func (f *file) Set(key string, values ...string) {
	f.raw[tags.NormKey(key)] = values
}

func (f *file) Save() error {
	if f.c.SaveErr != nil {
		return f.c.SaveErr
	}
	f.c.files[f.path] = f.raw
	f.c.Saves++
	return nil
}

func (f *file) Close() {}
