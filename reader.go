package pagecache

import (
	"errors"
	"io"
)

// ErrInvalidSeek is returned when Seek is called with a whence value other
// than io.SeekStart, io.SeekCurrent, or io.SeekEnd.
var ErrInvalidSeek = errors.New("pagecache: invalid seek whence")

// CacheReader adapts any Cache into a positioned io.ReadSeeker, so a cache
// can be consumed by code expecting a stream, and so caches can be stacked:
// a CacheReader wrapping one cache is itself a valid Source for another.
// Stacking is only sensible when every layer pages (wrapping a FullCache
// with another cache duplicates memory for no benefit), but nothing in this
// type special-cases that -- it is the caller's responsibility.
//
// CacheReader is single-threaded by convention: it carries a mutable
// position and concurrent external use must be synchronized by the caller.
type CacheReader struct {
	cache Cache
	pos   int64
}

var _ Source = (*CacheReader)(nil)

// NewCacheReader wraps cache in a zero-positioned CacheReader.
func NewCacheReader(cache Cache) *CacheReader {
	return &CacheReader{cache: cache}
}

// Read copies cached bytes starting at the reader's current position,
// advancing the position by the number of bytes copied. It honors the
// io.Reader contract: an empty source or a position at the end returns
// (0, io.EOF) rather than the cache capability's raw (0, nil).
func (r *CacheReader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	n, err := r.cache.Read(r.pos, p)
	r.pos += int64(n)

	if err != nil {
		if ce, ok := err.(*Error); ok && ce.IsIO() {
			return n, err
		}
		// The host stream interface has no channel for Poison or
		// ZeroCache, so re-package them as a generic I/O failure.
		return n, ioError("cache read failed", err)
	}
	if n == 0 {
		return 0, io.EOF
	}
	return n, nil
}

// Seek updates the reader's position with saturation at [0, Length()]. It
// never fails for io.SeekStart, io.SeekCurrent, or io.SeekEnd; any other
// whence leaves the position unchanged and returns ErrInvalidSeek.
func (r *CacheReader) Seek(offset int64, whence int) (int64, error) {
	length := r.cache.Length()

	var newPos int64
	switch whence {
	case io.SeekStart:
		newPos = offset
	case io.SeekCurrent:
		newPos = r.pos + offset
	case io.SeekEnd:
		newPos = length + offset
	default:
		return r.pos, ErrInvalidSeek
	}

	switch {
	case newPos < 0:
		newPos = 0
	case newPos > length:
		newPos = length
	}

	r.pos = newPos
	return r.pos, nil
}

// Position returns the reader's current position.
func (r *CacheReader) Position() int64 { return r.pos }

// Inner returns the wrapped cache without consuming the reader.
func (r *CacheReader) Inner() Cache { return r.cache }

// IntoInner consumes the reader, returning the wrapped cache.
func (r *CacheReader) IntoInner() Cache { return r.cache }
