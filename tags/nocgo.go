//go:build !cgo

package tags

// Default reports ErrNoCodec, taglib needs cgo.
func Default() (Codec, error) {
	return nil, ErrNoCodec
}
