package stripe

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// primes lists every odd prime up to MaxP, the set codec_property_test
// draws p from.
var primes = []int{3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53, 59,
	61, 67, 71, 73, 79, 83, 89, 97}

func fillRandomData(b *Buffer, rng *rand.Rand) {
	for d := 0; d < b.P; d++ {
		for r := range b.Columns[d] {
			b.Columns[d][r] = rng.Uint64()
		}
	}
}

func cloneColumns(cols [][]uint64) [][]uint64 {
	out := make([][]uint64, len(cols))
	for i, c := range cols {
		out[i] = append([]uint64(nil), c...)
	}
	return out
}

func TestEncodeRowParityInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for _, p := range []int{3, 5, 7, 11} {
		b := NewBuffer(p)
		fillRandomData(b, rng)
		Encode(b)

		for r := 0; r < b.Rows(); r++ {
			var want uint64
			for d := 0; d < p; d++ {
				want ^= b.Columns[d][r]
			}
			assert.Equal(t, want, b.Columns[p][r], "p=%d row=%d", p, r)
		}
	}
}

func TestReconstruct1EveryColumn(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	for _, p := range []int{3, 5, 7, 11, 13} {
		original := NewBuffer(p)
		fillRandomData(original, rng)
		Encode(original)
		want := cloneColumns(original.Columns)

		for missing := 0; missing < p+2; missing++ {
			b := NewBuffer(p)
			b.Columns = cloneColumns(want)
			for i := range b.Columns[missing] {
				b.Columns[missing][i] = 0
			}
			Reconstruct1(b, missing)
			assert.Equal(t, want[missing], b.Columns[missing], "p=%d missing=%d", p, missing)
		}
	}
}

func TestReconstruct2AllSubCases(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, p := range []int{3, 5, 7, 11, 13} {
		original := NewBuffer(p)
		fillRandomData(original, rng)
		Encode(original)
		want := cloneColumns(original.Columns)

		pairs := [][2]int{
			{p, p + 1}, // sub-case 1: both parities
			{0, p},     // sub-case 2: data + row parity
			{0, p + 1}, // sub-case 3: data + diag parity
			{0, 1},     // sub-case 4: two data columns
		}
		if p >= 5 {
			pairs = append(pairs, [2]int{1, 3})
		}

		for _, pair := range pairs {
			i, j := pair[0], pair[1]
			b := NewBuffer(p)
			b.Columns = cloneColumns(want)
			for _, idx := range []int{i, j} {
				for k := range b.Columns[idx] {
					b.Columns[idx][k] = 0
				}
			}
			Reconstruct2(b, i, j)
			assert.Equal(t, want[i], b.Columns[i], "p=%d i=%d j=%d col=i", p, i, j)
			assert.Equal(t, want[j], b.Columns[j], "p=%d i=%d j=%d col=j", p, i, j)
		}
	}
}

func TestReconstruct2TwoDataColumnsAllPairs(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	p := 7
	original := NewBuffer(p)
	fillRandomData(original, rng)
	Encode(original)
	want := cloneColumns(original.Columns)

	for i := 0; i < p; i++ {
		for j := i + 1; j < p; j++ {
			b := NewBuffer(p)
			b.Columns = cloneColumns(want)
			for k := range b.Columns[i] {
				b.Columns[i][k] = 0
				b.Columns[j][k] = 0
			}
			Reconstruct2(b, i, j)
			require.Equal(t, want[i], b.Columns[i], "i=%d j=%d", i, j)
			require.Equal(t, want[j], b.Columns[j], "i=%d j=%d", i, j)
		}
	}
}

func TestDiagScratchTreatsNilAsZero(t *testing.T) {
	p := 5
	cols := make([][]uint64, p)
	for i := range cols {
		cols[i] = make([]uint64, p-1)
	}
	cols[2] = nil

	got := diagScratch(cols, p)
	require.Len(t, got, p)
	for _, v := range got {
		assert.Equal(t, uint64(0), v)
	}
}
