package pagecache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAutoCache_SmallBudgetSelectsSwap(t *testing.T) {
	text := genText(610_000)
	c, err := NewAutoCache(memSource(t, text), 2_500)
	require.NoError(t, err)

	assert.Equal(t, VariantSwap, c.Variant())
	assert.Equal(t, int64(610_000), c.Length())
	assert.Equal(t, int64(2_500), c.ResidentSize())
}

func TestAutoCache_GenerousBudgetSelectsFull(t *testing.T) {
	text := genText(610_000)
	c, err := NewAutoCache(memSource(t, text), 610_000)
	require.NoError(t, err)

	assert.Equal(t, VariantFull, c.Variant())
	assert.Equal(t, int64(610_000), c.Length())
	assert.Equal(t, int64(610_000), c.ResidentSize())
}

func TestAutoCache_BudgetEqualToLengthSelectsFull(t *testing.T) {
	text := genText(1_000)
	c, err := NewAutoCache(memSource(t, text), 1_000)
	require.NoError(t, err)
	assert.Equal(t, VariantFull, c.Variant())
}

func TestAutoCache_RejectsNonPositiveBudget(t *testing.T) {
	text := genText(10)
	_, err := NewAutoCache(memSource(t, text), 0)
	require.Error(t, err)
	var ce *Error
	require.ErrorAs(t, err, &ce)
	assert.True(t, ce.IsZeroCache())
}

func TestAutoCache_SwapVariantReadsReconstructSource(t *testing.T) {
	text := genText(610_000)
	c, err := NewAutoCache(memSource(t, text), 2_500)
	require.NoError(t, err)

	buf := make([]byte, c.Length())
	n, err := c.Read(0, buf)
	require.NoError(t, err)
	require.Equal(t, len(text), n)
	assert.Equal(t, text, buf)
}

func TestAutoCache_FullVariantReadsReconstructSource(t *testing.T) {
	text := genText(610_000)
	c, err := NewAutoCache(memSource(t, text), 610_000)
	require.NoError(t, err)

	buf := make([]byte, c.Length())
	n, err := c.Read(0, buf)
	require.NoError(t, err)
	require.Equal(t, len(text), n)
	assert.Equal(t, text, buf)
}

func TestAutoCache_FallsBackWhenSquareFrameCountExceedsBudget(t *testing.T) {
	// memMax = 100 -> pageSize = 10, frameCount = 11, 10*11=110 > 100, so
	// frameCount falls back to 10, giving resident size exactly 100.
	text := genText(10_000)
	c, err := NewAutoCache(memSource(t, text), 100)
	require.NoError(t, err)

	assert.Equal(t, VariantSwap, c.Variant())
	assert.Equal(t, int64(100), c.ResidentSize())
}
