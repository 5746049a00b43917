package pipeline

import (
	"crypto/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/xtaci/evenodd/diskio"
)

func writeInputFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o777))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func randomBytes(t *testing.T, n int) []byte {
	t.Helper()
	buf := make([]byte, n)
	_, err := rand.Read(buf)
	require.NoError(t, err)
	return buf
}

func TestEncodeDecodeRoundTripConcreteScenarios(t *testing.T) {
	cases := []struct {
		name string
		n    int
		p    int
	}{
		{"empty", 0, 3},
		{"single-byte", 1, 3},
		{"one-stripe", 8 * 2 * 3, 3}, // N = 8*(p-1)*p, p=3
		{"multi-stripe", 10000, 5},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			root := t.TempDir()
			inDir := t.TempDir()
			data := randomBytes(t, c.n)
			in := writeInputFile(t, inDir, "f", data)

			require.NoError(t, EncodeFile(root, in, c.p))

			out := filepath.Join(inDir, "out")
			require.NoError(t, DecodeFile(root, in, out))

			got, err := os.ReadFile(out)
			require.NoError(t, err)
			require.Equal(t, data, got)
		})
	}
}

func TestRoundTripLargeMultiStripe(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping large round trip in -short mode")
	}
	root := t.TempDir()
	inDir := t.TempDir()
	data := randomBytes(t, 10_000_000)
	in := writeInputFile(t, inDir, "f", data)
	p := 97

	require.NoError(t, EncodeFile(root, in, p))

	out := filepath.Join(inDir, "out")
	require.NoError(t, DecodeFile(root, in, out))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, data, got)
}

func TestHeaderAgreementAcrossDisks(t *testing.T) {
	root := t.TempDir()
	inDir := t.TempDir()
	data := randomBytes(t, 1000)
	in := writeInputFile(t, inDir, "f", data)
	p := 5

	require.NoError(t, EncodeFile(root, in, p))

	for d := 0; d < p+2; d++ {
		n, gotP, err := diskio.ReadHeader(diskio.DiskPath(root, d, in))
		require.NoError(t, err)
		require.Equal(t, int64(len(data)), n)
		require.Equal(t, p, gotP)
	}
}

func TestFinalSizesMatchFormula(t *testing.T) {
	root := t.TempDir()
	inDir := t.TempDir()
	data := randomBytes(t, 1000)
	in := writeInputFile(t, inDir, "f", data)
	p := 5

	require.NoError(t, EncodeFile(root, in, p))

	want := diskio.ColumnFileSize(int64(len(data)), p)
	for d := 0; d < p+2; d++ {
		info, err := os.Stat(diskio.DiskPath(root, d, in))
		require.NoError(t, err)
		require.Equal(t, want, info.Size())
	}
}

func TestSingleErasureRecovery(t *testing.T) {
	root := t.TempDir()
	inDir := t.TempDir()
	data := randomBytes(t, 1000)
	in := writeInputFile(t, inDir, "f", data)
	p := 5

	require.NoError(t, EncodeFile(root, in, p))

	for d := 0; d < p+2; d++ {
		diskPath := diskio.DiskPath(root, d, in)
		original, err := os.ReadFile(diskPath)
		require.NoError(t, err)

		require.NoError(t, os.Remove(diskPath))
		require.NoError(t, RepairFile(root, in, ModeFull))

		restored, err := os.ReadFile(diskPath)
		require.NoError(t, err)
		require.Equal(t, original, restored, "disk %d", d)
	}
}

func TestTwoErasureRecoveryAllSubCases(t *testing.T) {
	root := t.TempDir()
	inDir := t.TempDir()
	data := randomBytes(t, 1000)
	in := writeInputFile(t, inDir, "f", data)
	p := 5

	require.NoError(t, EncodeFile(root, in, p))

	pairs := [][2]int{
		{p, p + 1}, // both parities
		{0, p},     // data + row parity
		{0, p + 1}, // data + diag parity
		{0, 1},     // two data columns
		{2, 4},     // two data columns, different offset
	}

	for _, pair := range pairs {
		i, j := pair[0], pair[1]
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
		require.Equal(t, origI, gotI, "i=%d j=%d", i, j)
		require.Equal(t, origJ, gotJ, "i=%d j=%d", i, j)
	}
}

func TestContentOnlyReadWithParityLoss(t *testing.T) {
	root := t.TempDir()
	inDir := t.TempDir()
	data := randomBytes(t, 1000)
	in := writeInputFile(t, inDir, "f", data)
	p := 5

	require.NoError(t, EncodeFile(root, in, p))
	require.NoError(t, os.Remove(diskio.DiskPath(root, p, in)))
	require.NoError(t, os.Remove(diskio.DiskPath(root, p+1, in)))

	out := filepath.Join(inDir, "out")
	require.NoError(t, DecodeFile(root, in, out))

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Equal(t, data, got)

	_, err = os.Stat(diskio.DiskPath(root, p, in))
	require.True(t, os.IsNotExist(err), "content-only read must not rewrite the parity disks")
}

func TestTooManyErasuresDetection(t *testing.T) {
	root := t.TempDir()
	inDir := t.TempDir()
	data := randomBytes(t, 1000)
	in := writeInputFile(t, inDir, "f", data)
	p := 5

	require.NoError(t, EncodeFile(root, in, p))
	for _, d := range []int{0, 1, 2} {
		require.NoError(t, os.Remove(diskio.DiskPath(root, d, in)))
	}

	out := filepath.Join(inDir, "out")
	err := DecodeFile(root, in, out)
	require.ErrorIs(t, err, ErrFileCorrupted)

	err = RepairFile(root, in, ModeFull)
	require.ErrorIs(t, err, ErrTooManyCorruptions)

	for d := 3; d < p+2; d++ {
		_, statErr := os.Stat(diskio.DiskPath(root, d, in))
		require.NoError(t, statErr, "surviving disk %d must be untouched", d)
	}
}

func TestDecodeFileMissingInput(t *testing.T) {
	root := t.TempDir()
	err := DecodeFile(root, "does-not-exist", filepath.Join(t.TempDir(), "out"))
	require.ErrorIs(t, err, ErrFileNotFound)
}

func TestEncodeFileCreatesNestedPath(t *testing.T) {
	// Mirrors actual CLI usage: cwd doubles as both the disk root and the
	// location of the input file, addressed by its relative logical name.
	root := t.TempDir()
	data := randomBytes(t, 3)
	logical := filepath.Join("a", "b", "c")
	writeInputFile(t, root, logical, data)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(root))
	defer os.Chdir(cwd)

	require.NoError(t, EncodeFile(root, logical, 3))

	diskPath := diskio.DiskPath(root, 2, logical)
	n, p, err := diskio.ReadHeader(diskPath)
	require.NoError(t, err)
	require.Equal(t, int64(3), n)
	require.Equal(t, 3, p)
}
