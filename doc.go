// Package pagecache implements a read-only byte-range cache over an
// arbitrary seekable source.
//
// Two concrete cache flavors share the Cache capability: FullCache reads an
// entire source into one contiguous buffer, and SwapCache keeps a fixed
// number of fixed-size page frames resident and pages the rest in on demand
// under an LRU eviction policy. AutoCache picks between the two from a
// memory budget, and CacheReader adapts any Cache into a positioned
// io.ReadSeeker so caches can be stacked.
//
// The package never mutates the source and never writes back to it. Every
// cache takes ownership of its source for its lifetime and returns it,
// seeked back to the start, when torn down via IntoSource.
package pagecache
