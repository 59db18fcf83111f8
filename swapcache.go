package pagecache

import (
	"io"
	"log/slog"
	"sync"

	"github.com/sourcegraph/conc/panics"

	"github.com/javi11/pagecache/internal/frlist"
)

// frame is one fixed-size resident page slot. Its buffer is allocated once
// at construction and never reallocated; only its contents and page index
// change as pages are evicted and reloaded.
type frame struct {
	data []byte
	page int64
}

// SwapCache keeps a fixed number of fixed-size page frames resident and
// pages the rest of the source in on demand, evicting the least-recently-
// used resident page to make room. It is the core of this package: a
// frame arena, a page-index-to-frame map, an LRU list over frame indices
// (internal/frlist), and a single mutex making the whole interior
// thread-safe.
//
// All mutable state is guarded by one coarse lock; Traverse holds it for
// its entire duration so that chunk borrows and LRU updates stay atomic. If
// a visitor passed to Traverse panics, the lock is marked poisoned (see the
// Poison error kind) and the cache is no longer usable -- the
// same failure mode a poisoned Rust Mutex has, reproduced here with
// sourcegraph/conc/panics rather than an unwind-aware lock, since Go has
// neither.
type SwapCache struct {
	mu       sync.Mutex
	poisoned bool

	source   Source
	length   int64
	pageSize int64

	frames      []frame
	pageToFrame map[int64]int32
	list        *frlist.List

	log *slog.Logger
	id  string
	ctr counters
}

var _ Cache = (*SwapCache)(nil)

// NewSwapCache builds a SwapCache over source with the given page size and
// frame count, both of which must be > 0. Construction seeks to determine
// the source length, then prefills the first frameCount pages sequentially
// from offset 0.
func NewSwapCache(source Source, pageSize, frameCount int64, opts ...Option) (*SwapCache, error) {
	if pageSize <= 0 {
		return nil, zeroCacheError("page size must be > 0")
	}
	if frameCount <= 0 {
		return nil, zeroCacheError("frame count must be > 0")
	}

	o := resolveOptions(opts)

	l, err := sourceLength(source)
	if err != nil {
		return nil, err
	}

	if _, err := source.Seek(0, io.SeekStart); err != nil {
		return nil, ioError("seek to start", err)
	}

	frames := make([]frame, frameCount)
	pageToFrame := make(map[int64]int32, frameCount)

	for i := int64(0); i < frameCount; i++ {
		frames[i].data = make([]byte, pageSize)
		frames[i].page = i
		if err := fillPage(source, frames[i].data); err != nil {
			return nil, ioError("prefill page", err)
		}
		pageToFrame[i] = int32(i)
	}

	c := &SwapCache{
		source:      source,
		length:      l,
		pageSize:    pageSize,
		frames:      frames,
		pageToFrame: pageToFrame,
		list:        frlist.New(int(frameCount)),
		log:         o.logger,
		id:          o.id,
	}

	c.log.Debug("swap cache built", "cache_id", c.id, "page_size", pageSize, "frame_count", frameCount, "length", l)
	return c, nil
}

// sourceLength discovers a source's length by seeking to its end.
func sourceLength(source Source) (int64, error) {
	l, err := source.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, ioError("seek to end", err)
	}
	return l, nil
}

// fillPage reads a full page from source into buf, looping until buf is
// full or the source is exhausted. A short read at EOF is not an error: a
// page straddling the end of the source is expected (the source length is
// rarely a multiple of the page size), and the remainder of buf is
// zero-padded rather than left with stale frame contents from whatever page
// previously occupied this frame.
func fillPage(source Source, buf []byte) error {
	n, err := io.ReadFull(source, buf)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			clear(buf[n:])
			return nil
		}
		return err
	}
	return nil
}

// Length returns the source's byte length, fixed at construction.
func (c *SwapCache) Length() int64 { return c.length }

// ResidentSize returns page_size * frame_count, constant for the cache's
// life.
func (c *SwapCache) ResidentSize() int64 {
	return c.pageSize * int64(len(c.frames))
}

// Stats returns a snapshot of usage counters.
func (c *SwapCache) Stats() Stats { return c.ctr.snapshot() }

// Traverse delivers [start, end) ∩ [0, Length()) as one chunk per touched
// page, loading and promoting pages as needed. The entire
// call executes under the cache's single lock.
func (c *SwapCache) Traverse(start, end int64, visit Visitor) error {
	c.mu.Lock()

	if c.poisoned {
		c.mu.Unlock()
		return poisonError("swap cache lock poisoned by a previous panicking visitor")
	}

	var traverseErr error
	var catcher panics.Catcher
	catcher.Try(func() {
		traverseErr = c.traverseLocked(start, end, visit)
	})

	if r := catcher.Recovered(); r != nil {
		c.poisoned = true
		c.log.Warn("swap cache poisoned by panicking visitor", "cache_id", c.id)
		c.mu.Unlock()
		r.Repanic()
	}

	c.mu.Unlock()
	return traverseErr
}

// traverseLocked implements the traversal loop from spec; the caller must
// already hold c.mu.
func (c *SwapCache) traverseLocked(start, end int64, visit Visitor) error {
	start, end = clampRange(start, end, c.length)
	if start >= end {
		return nil
	}

	pos := start
	for {
		chunk, err := c.getChunkAtLocked(pos)
		if err != nil {
			return err
		}

		newPos := pos + int64(len(chunk))
		if newPos >= end {
			return visit(chunk[:end-pos])
		}
		if err := visit(chunk); err != nil {
			return err
		}
		pos = newPos
	}
}

// getChunkAtLocked returns a borrowed view of the page containing pos, from
// pos's intra-page offset to the end of the page, loading and promoting the
// page as needed. The caller must already hold c.mu.
func (c *SwapCache) getChunkAtLocked(pos int64) ([]byte, error) {
	p := pos / c.pageSize
	c.ctr.lookups.Add(1)

	f, ok := c.pageToFrame[p]
	if ok {
		c.ctr.hits.Add(1)
	} else {
		var err error
		f, err = c.loadPageLocked(p)
		if err != nil {
			return nil, err
		}
	}

	c.list.Promote(f)

	intraPageOffset := pos - p*c.pageSize
	return c.frames[f].data[intraPageOffset:], nil
}

// loadPageLocked evicts the LRU frame and loads page p into it. The caller
// must already hold c.mu.
func (c *SwapCache) loadPageLocked(p int64) (int32, error) {
	f := c.list.Front()
	evictedPage := c.frames[f].page

	delete(c.pageToFrame, evictedPage)
	c.ctr.evictions.Add(1)

	if _, err := c.source.Seek(p*c.pageSize, io.SeekStart); err != nil {
		// The map entry for the evicted page was already removed; leave
		// the frame's page index pointing at the attempted page p so it is
		// simply re-evicted (and the load re-attempted) the next time it
		// reaches the front of the list, per the "always remove on evict,
		// never reinsert on failure" discipline.
		c.frames[f].page = p
		return 0, ioError("seek for page load", err)
	}
	if err := fillPage(c.source, c.frames[f].data); err != nil {
		c.frames[f].page = p
		return 0, ioError("read page", err)
	}

	c.frames[f].page = p
	c.pageToFrame[p] = f
	c.ctr.loads.Add(1)
	c.log.Debug("page loaded", "cache_id", c.id, "page", p, "frame", f)

	return f, nil
}

// Read copies up to len(buf) bytes starting at offset.
func (c *SwapCache) Read(offset int64, buf []byte) (int, error) {
	return readViaTraverse(c, offset, buf)
}

// IntoSource returns the original source, seeked back to the start.
func (c *SwapCache) IntoSource() (Source, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.poisoned {
		return nil, poisonError("swap cache lock poisoned by a previous panicking visitor")
	}

	if _, err := c.source.Seek(0, io.SeekStart); err != nil {
		return nil, ioError("seek source to start on teardown", err)
	}
	c.log.Debug("swap cache torn down", "cache_id", c.id)
	return c.source, nil
}
