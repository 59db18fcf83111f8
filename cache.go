package pagecache

import "io"

// Source is the capability a cache requires of the byte source it wraps:
// blocking positioned access expressed as seek-then-read, plus length
// discovery via seeking to the end. A cache takes ownership of its Source
// for its lifetime; the source must not be used by any other code while the
// cache is live, and the cache never observes it concurrently from more than
// one traversal at a time.
//
// Any io.ReadSeeker qualifies, including *os.File, an afero.File, or a
// *CacheReader wrapping another cache -- which is how caches stack.
type Source interface {
	io.Reader
	io.Seeker
}

// Visitor is called once per resident chunk delivered by Traverse, in
// strictly ascending offset order. chunk is borrowed and only valid for the
// duration of the call; returning a non-nil error aborts the traversal and
// that error is returned from Traverse verbatim.
type Visitor func(chunk []byte) error

// Cache is the capability every cache flavor in this package satisfies.
type Cache interface {
	// Length returns the source's byte length, fixed at construction.
	Length() int64

	// ResidentSize returns the in-memory budget allocated to cached source
	// bytes, excluding bookkeeping overhead.
	ResidentSize() int64

	// Traverse calls visit once per resident chunk covering
	// [start, end) ∩ [0, Length()), in ascending, contiguous,
	// non-overlapping order. Out-of-range bounds are clamped silently; an
	// empty clamped range invokes visit zero times.
	Traverse(start, end int64, visit Visitor) error

	// Read copies consecutive source bytes starting at offset into buf
	// until buf is full or the source is exhausted, returning the number
	// of bytes copied.
	Read(offset int64, buf []byte) (int, error)

	// IntoSource consumes the cache, returning the original source with
	// its read position reset to the start. The cache must not be used
	// again afterward.
	IntoSource() (Source, error)
}

// clampRange clamps [start, end) to [0, length), returning a range with
// start <= end. Out-of-range starts collapse to an empty range at length.
func clampRange(start, end, length int64) (int64, int64) {
	if start < 0 {
		start = 0
	}
	if end > length {
		end = length
	}
	if start > length {
		start = length
	}
	if end < start {
		end = start
	}
	return start, end
}

// readViaTraverse implements the Cache.Read contract in terms of Traverse,
// shared by every concrete cache so the copy-until-full-or-EOF logic lives
// in one place.
func readViaTraverse(c Cache, offset int64, buf []byte) (int, error) {
	if len(buf) == 0 {
		return 0, nil
	}
	n := 0
	err := c.Traverse(offset, offset+int64(len(buf)), func(chunk []byte) error {
		n += copy(buf[n:], chunk)
		return nil
	})
	return n, err
}
