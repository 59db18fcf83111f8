package pagecache

import (
	"io"
	"log/slog"
)

// FullCache reads an entire source into one contiguous in-memory buffer at
// construction and serves any request as a single borrowed chunk. It
// dominates SwapCache whenever the source comfortably fits in memory: one
// copy beats any paging scheme.
//
// FullCache is effectively immutable after construction: Length,
// ResidentSize, Read, and Traverse may all be called concurrently from any
// number of goroutines.
type FullCache struct {
	data   []byte
	source Source
	log    *slog.Logger
	id     string
}

var _ Cache = (*FullCache)(nil)

// NewFullCache reads source fully into memory and returns a FullCache
// wrapping it. The only failures possible are I/O failures during
// construction; once built, a FullCache's steady-state operations never
// fail except through the visitor passed to Traverse.
func NewFullCache(source Source, opts ...Option) (*FullCache, error) {
	o := resolveOptions(opts)

	if _, err := source.Seek(0, io.SeekStart); err != nil {
		return nil, ioError("seek to start", err)
	}

	data, err := io.ReadAll(source)
	if err != nil {
		return nil, ioError("read source to end", err)
	}

	o.logger.Debug("full cache built", "cache_id", o.id, "bytes", len(data))

	return &FullCache{data: data, source: source, log: o.logger, id: o.id}, nil
}

// Length returns the source's byte length.
func (c *FullCache) Length() int64 { return int64(len(c.data)) }

// ResidentSize equals Length: the whole source is resident.
func (c *FullCache) ResidentSize() int64 { return int64(len(c.data)) }

// Traverse delivers the requested, clamped range as exactly one chunk, or
// invokes visit zero times when the clamped range is empty.
func (c *FullCache) Traverse(start, end int64, visit Visitor) error {
	start, end = clampRange(start, end, int64(len(c.data)))
	if start >= end {
		return nil
	}
	return visit(c.data[start:end])
}

// Read copies up to len(buf) bytes starting at offset.
func (c *FullCache) Read(offset int64, buf []byte) (int, error) {
	return readViaTraverse(c, offset, buf)
}

// IntoSource returns the original source, seeked back to the start.
func (c *FullCache) IntoSource() (Source, error) {
	if _, err := c.source.Seek(0, io.SeekStart); err != nil {
		return nil, ioError("seek source to start on teardown", err)
	}
	c.log.Debug("full cache torn down", "cache_id", c.id)
	return c.source, nil
}
