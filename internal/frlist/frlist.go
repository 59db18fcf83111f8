// Package frlist implements the fixed-size, index-linked doubly-linked list
// that backs SwapCache's LRU ordering.
//
// Unlike a general-purpose intrusive list (compare
// segmentio/datastructures/list, which links *Node pointers embedded in
// caller structs via reflection), this list never crosses its API boundary
// with a pointer: every node is identified by its integer frame index into
// a flat array, so the whole structure is trivially movable and safe to
// share behind a single mutex without worrying about pointer stability.
package frlist

// None is the sentinel index marking the absence of a neighbor.
const None int32 = -1

// List is a doubly-linked list over exactly N fixed frame indices,
// 0..n-1. Front is the least-recently-used end (the eviction candidate);
// Back is the most-recently-used end.
type List struct {
	next  []int32
	prev  []int32
	front int32
	back  int32
}

// New returns a list over n frames, initialized so that frame 0 is at the
// MRU end and frame n-1 is at the LRU end, chained n-1 <-> n-2 <-> ... <-> 0.
// n must be > 0.
func New(n int) *List {
	l := &List{
		next: make([]int32, n),
		prev: make([]int32, n),
	}
	if n == 1 {
		l.next[0] = None
		l.prev[0] = None
		l.front, l.back = 0, 0
		return l
	}
	for i := 0; i < n; i++ {
		switch {
		case i == 0:
			l.next[i] = None
			l.prev[i] = 1
		case i == n-1:
			l.next[i] = int32(i - 1)
			l.prev[i] = None
		default:
			l.next[i] = int32(i - 1)
			l.prev[i] = int32(i + 1)
		}
	}
	l.back = 0
	l.front = int32(n - 1)
	return l
}

// Front returns the current LRU (eviction candidate) frame index.
func (l *List) Front() int32 { return l.front }

// Back returns the current MRU frame index.
func (l *List) Back() int32 { return l.back }

// Promote moves frame f to the MRU end in O(1). It is a no-op when f is
// already the MRU frame, and a no-op for a singleton list.
func (l *List) Promote(f int32) {
	if l.back == l.front {
		// Singleton list: nothing to reorder.
		return
	}
	if l.next[f] == None {
		// Already the MRU frame.
		return
	}

	nxt := l.next[f]
	prv := l.prev[f]

	l.prev[nxt] = prv
	if prv == None {
		l.front = nxt
	} else {
		l.next[prv] = nxt
	}

	l.next[l.back] = f
	l.prev[f] = l.back
	l.next[f] = None
	l.back = f
}
