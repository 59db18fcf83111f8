package pagecache

import "math"

// Variant reports which concrete cache flavor an AutoCache selected.
type Variant int

const (
	// VariantFull means the source fit entirely within the memory budget.
	VariantFull Variant = iota
	// VariantSwap means the source exceeded the memory budget and a
	// paged SwapCache was built instead.
	VariantSwap
)

func (v Variant) String() string {
	if v == VariantFull {
		return "full"
	}
	return "swap"
}

// AutoCache picks between FullCache and SwapCache from a memory budget and
// the source's length: when the source fits the budget, a single
// contiguous copy beats any paging design, so AutoCache builds a FullCache;
// otherwise it sizes a square-ish SwapCache (page size ≈ frame count) to
// minimize both eviction frequency and per-miss I/O under uniform random
// access.
type AutoCache struct {
	inner   Cache
	variant Variant
}

var _ Cache = (*AutoCache)(nil)

// NewAutoCache builds an AutoCache over source with a memory budget of
// memMax bytes. memMax must be > 0.
func NewAutoCache(source Source, memMax int64, opts ...Option) (*AutoCache, error) {
	if memMax <= 0 {
		return nil, zeroCacheError("memory budget must be > 0")
	}

	length, err := sourceLength(source)
	if err != nil {
		return nil, err
	}

	if length <= memMax {
		full, err := NewFullCache(source, opts...)
		if err != nil {
			return nil, err
		}
		return &AutoCache{inner: full, variant: VariantFull}, nil
	}

	pageSize := int64(math.Sqrt(float64(memMax)))
	if pageSize == 0 {
		return nil, zeroCacheError("chosen page size would be 0")
	}

	frameCount := pageSize + 1
	if pageSize*frameCount > memMax {
		frameCount = pageSize
	}

	swap, err := NewSwapCache(source, pageSize, frameCount, opts...)
	if err != nil {
		return nil, err
	}
	return &AutoCache{inner: swap, variant: VariantSwap}, nil
}

// Variant reports which concrete cache flavor was selected.
func (c *AutoCache) Variant() Variant { return c.variant }

// Length returns the source's byte length.
func (c *AutoCache) Length() int64 { return c.inner.Length() }

// ResidentSize returns the selected variant's resident memory footprint.
func (c *AutoCache) ResidentSize() int64 { return c.inner.ResidentSize() }

// Traverse delegates to the selected variant.
func (c *AutoCache) Traverse(start, end int64, visit Visitor) error {
	return c.inner.Traverse(start, end, visit)
}

// Read delegates to the selected variant.
func (c *AutoCache) Read(offset int64, buf []byte) (int, error) {
	return c.inner.Read(offset, buf)
}

// IntoSource delegates to the selected variant.
func (c *AutoCache) IntoSource() (Source, error) {
	return c.inner.IntoSource()
}
