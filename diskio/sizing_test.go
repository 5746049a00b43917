package diskio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStripeCountAndColumnFileSizeConcreteScenarios(t *testing.T) {
	// N=0, p=3 -> 5 disk files of length 8 (header only).
	assert.Equal(t, int64(0), StripeCount(0, 3))
	assert.Equal(t, int64(8), ColumnFileSize(0, 3))

	// N=1, p=3 -> files of length 8+2*8=24.
	assert.Equal(t, int64(1), StripeCount(1, 3))
	assert.Equal(t, int64(24), ColumnFileSize(1, 3))

	// N=192 bytes, p=3: 192/8=24 words, one stripe holds p*(p-1)=6 words,
	// so 4 full stripes.
	assert.Equal(t, int64(4), StripeCount(192, 3))
	assert.Equal(t, int64(8+4*2*8), ColumnFileSize(192, 3))
}

func TestColumnFileSizeAlwaysIncludesHeader(t *testing.T) {
	for _, p := range []int{3, 5, 97} {
		assert.Equal(t, int64(HeaderSize), ColumnFileSize(0, p))
	}
}
