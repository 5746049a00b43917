// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package stripe

// Encode fills the row-parity and diagonal-parity columns (P and P+1) of b
// from its P data columns (0..P-1), which must already be populated.
func Encode(b *Buffer) {
	recomputeParities(b)
}

// Reconstruct1 recomputes a single missing column from all the others,
// which must be present. missing is a column index in [0, P+1].
func Reconstruct1(b *Buffer, missing int) {
	p := b.P
	switch {
	case missing == p:
		xorAllInto(b.Columns[p], b.Columns[0:p])
	case missing == p+1:
		recomputeDiagParity(b)
	default:
		reconstructDataFromRowParity(b, missing)
	}
}

// Reconstruct2 recomputes two missing columns i < j from the remaining P
// columns, which must be present.
func Reconstruct2(b *Buffer, i, j int) {
	p := b.P
	switch {
	case i == p && j == p+1:
		recomputeParities(b)
	case i < p && j == p:
		reconstructDataFromDiagParity(b, i)
		xorAllInto(b.Columns[p], b.Columns[0:p])
	case i < p && j == p+1:
		reconstructDataFromRowParity(b, i)
		recomputeDiagParity(b)
	case i < p && j < p:
		reconstructTwoDataColumns(b, i, j)
	default:
		panic("stripe: Reconstruct2 called with unsupported missing pair")
	}
}

func recomputeParities(b *Buffer) {
	p := b.P
	xorAllInto(b.Columns[p], b.Columns[0:p])
	recomputeDiagParity(b)
}

// recomputeDiagParity fills column P+1 from the P data columns.
func recomputeDiagParity(b *Buffer) {
	p := b.P
	diag := diagScratch(b.Columns[0:p], p)
	pp1 := b.Columns[p+1]
	t := diag[p-1]
	for k := range pp1 {
		pp1[k] = diag[k] ^ t
	}
}

// reconstructDataFromRowParity recovers data column i by XORing it together
// with every other present column in [0, P] (row parity included).
func reconstructDataFromRowParity(b *Buffer, i int) {
	p := b.P
	srcs := make([][]uint64, 0, p)
	for d := 0; d < p; d++ {
		if d != i {
			srcs = append(srcs, b.Columns[d])
		}
	}
	srcs = append(srcs, b.Columns[p])
	xorAllInto(b.Columns[i], srcs)
}

// reconstructDataFromDiagParity recovers data column i using the diagonal
// parity column and the remaining data columns: one data column lost
// alongside the row-parity column.
func reconstructDataFromDiagParity(b *Buffer, i int) {
	p := b.P
	dataExcl := withColumnExcluded(b.Columns[0:p], i)
	S := diagScratch(dataExcl, p)
	pp1 := b.Columns[p+1]
	for l := 0; l < p-1; l++ {
		S[l] ^= pp1[l]
	}
	t := S[modP(i-1, p)]
	col := b.Columns[i]
	for k := 0; k < p-1; k++ {
		col[k] = S[modP(i+k-p, p)] ^ t
	}
}

// reconstructTwoDataColumns recovers data columns i < j together, the hard
// case of EVENODD's two-erasure recovery: it walks the mod-p chain that ties
// the row-parity and diagonal-parity equations together.
func reconstructTwoDataColumns(b *Buffer, i, j int) {
	p := b.P
	parityCol := b.Columns[p]
	diagCol := b.Columns[p+1]
	dataExcl := withColumnsExcluded(b.Columns[0:p], i, j)

	S0 := make([]uint64, p-1)
	xorAllInto(S0, dataExcl)
	var Sb uint64
	for l := 0; l < p-1; l++ {
		S0[l] ^= parityCol[l]
		Sb ^= parityCol[l] ^ diagCol[l]
	}

	S1 := diagScratch(dataExcl, p)
	for l := 0; l < p; l++ {
		S1[l] ^= Sb ^ columnAt(diagCol, l)
	}

	ij := modP(i-j, p)
	ji := modP(j-i, p)
	colI := b.Columns[i]
	colJ := b.Columns[j]

	s := modP(ij-1, p)
	for count := 0; count < p-1; count++ {
		aj := S1[modP(j+s-p, p)] ^ columnAt(colI, modP(s-ij, p))
		colJ[s] = aj
		colI[s] = S0[s] ^ aj
		s = modP(s-ji, p)
	}
}

// diagScratch lays out the length-(2p-1) scratch B from the given data
// columns (any of which may be nil, treated as all-zero) and returns the
// length-p diagonal array: diag[k] = B[k]^B[k+p] for k in [0,p-1), and
// diag[p-1] = B[p-1] (the unreduced adjuster / syndrome).
func diagScratch(data [][]uint64, p int) []uint64 {
	B := make([]uint64, 2*p-1)
	for i, col := range data {
		if col == nil {
			continue
		}
		xorRangeInto(B, i, col)
	}
	diag := make([]uint64, p)
	for k := 0; k < p-1; k++ {
		diag[k] = B[k] ^ B[k+p]
	}
	diag[p-1] = B[p-1]
	return diag
}

// columnAt returns the word at logical row idx of a (p-1)-long column,
// treating row p-1 as an implicit zero pad. This mirrors the fixed-size row
// arrays in the original C implementation, whose last row is always zeroed,
// and lets the chain-walk formulas above reference "row p-1" without a
// special case at every call site.
func columnAt(col []uint64, idx int) uint64 {
	if idx >= len(col) {
		return 0
	}
	return col[idx]
}

func modP(x, p int) int {
	x %= p
	if x < 0 {
		x += p
	}
	return x
}

func withColumnExcluded(cols [][]uint64, excl int) [][]uint64 {
	out := make([][]uint64, len(cols))
	copy(out, cols)
	out[excl] = nil
	return out
}

func withColumnsExcluded(cols [][]uint64, excl1, excl2 int) [][]uint64 {
	out := make([][]uint64, len(cols))
	copy(out, cols)
	out[excl1] = nil
	out[excl2] = nil
	return out
}
