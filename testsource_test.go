package pagecache

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// genText deterministically generates n bytes of filler text by cycling a
// short public-domain-style passage, giving tests a readable, reproducible
// byte source of any size without checking in a large fixture file.
func genText(n int) []byte {
	const passage = "Call me Ishmael. Some years ago, never mind how long precisely, " +
		"having little or no money in my purse, and nothing particular to interest me " +
		"on shore, I thought I would sail about a little and see the watery part of " +
		"the world. It is a way I have of driving off the spleen, and regulating the " +
		"circulation. "
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = passage[i%len(passage)]
	}
	return out
}

// memSource returns a Source backed by an in-memory afero filesystem,
// seeded with data, so tests need no real temp file.
func memSource(t *testing.T, data []byte) Source {
	t.Helper()
	fs := afero.NewMemMapFs()
	const path = "/source.bin"
	require.NoError(t, afero.WriteFile(fs, path, data, 0o644))
	f, err := fs.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })
	return f
}
