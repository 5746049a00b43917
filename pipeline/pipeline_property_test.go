package pipeline

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/xtaci/evenodd/diskio"
)

var propertyPrimes = []int{3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47}

// For every odd prime p in propertyPrimes and a variety of N,
// read(write(F, p)) must equal F.
func TestPropertyRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := rapid.SampledFrom(propertyPrimes).Draw(t, "p")
		n := rapid.IntRange(0, 5000).Draw(t, "n")

		root := t.TempDir()
		inDir := t.TempDir()
		data := make([]byte, n)
		_, err := rand.Read(data)
		require.NoError(t, err)

		in := filepath.Join(inDir, "f")
		require.NoError(t, os.WriteFile(in, data, 0o644))
		require.NoError(t, EncodeFile(root, in, p))

		out := filepath.Join(inDir, "out")
		require.NoError(t, DecodeFile(root, in, out))

		got, err := os.ReadFile(out)
		require.NoError(t, err)
		require.Equal(t, data, got)
	})
}

// For every odd prime p in propertyPrimes and any single disk index,
// deleting that disk and
// repairing it restores it byte-for-byte.
func TestPropertySingleErasureRecovery(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := rapid.SampledFrom(propertyPrimes).Draw(t, "p")
		n := rapid.IntRange(0, 3000).Draw(t, "n")

		root := t.TempDir()
		inDir := t.TempDir()
		data := make([]byte, n)
		_, err := rand.Read(data)
		require.NoError(t, err)

		in := filepath.Join(inDir, "f")
		require.NoError(t, os.WriteFile(in, data, 0o644))
		require.NoError(t, EncodeFile(root, in, p))

		d := rapid.IntRange(0, p+1).Draw(t, "d")
		diskPath := diskio.DiskPath(root, d, in)
		original, err := os.ReadFile(diskPath)
		require.NoError(t, err)

		require.NoError(t, os.Remove(diskPath))
		require.NoError(t, RepairFile(root, in, ModeFull))

		restored, err := os.ReadFile(diskPath)
		require.NoError(t, err)
		require.Equal(t, original, restored)
	})
}

// For every odd prime p in propertyPrimes and any pair of disk indices,
// deleting both and
// repairing restores both byte-for-byte, across all four Reconstruct2
// sub-cases.
func TestPropertyTwoErasureRecovery(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		p := rapid.SampledFrom(propertyPrimes).Draw(t, "p")
		n := rapid.IntRange(0, 3000).Draw(t, "n")

		root := t.TempDir()
		inDir := t.TempDir()
		data := make([]byte, n)
		_, err := rand.Read(data)
		require.NoError(t, err)

		in := filepath.Join(inDir, "f")
		require.NoError(t, os.WriteFile(in, data, 0o644))
		require.NoError(t, EncodeFile(root, in, p))

		i := rapid.IntRange(0, p).Draw(t, "i")
		j := rapid.IntRange(i+1, p+1).Draw(t, "j")

		pathI := diskio.DiskPath(root, i, in)
		pathJ := diskio.DiskPath(root, j, in)
		origI, err := os.ReadFile(pathI)
		require.NoError(t, err)
		origJ, err := os.ReadFile(pathJ)
		require.NoError(t, err)

		require.NoError(t, os.Remove(pathI))
		require.NoError(t, os.Remove(pathJ))
		require.NoError(t, RepairFile(root, in, ModeFull))

		gotI, err := os.ReadFile(pathI)
		require.NoError(t, err)
		gotJ, err := os.ReadFile(pathJ)
		require.NoError(t, err)
		require.Equal(t, origI, gotI)
		require.Equal(t, origJ, gotJ)
	})
}
