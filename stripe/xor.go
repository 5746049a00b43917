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

import (
	"unsafe"

	"github.com/templexxx/xorsimd"
)

// wordsAsBytes reinterprets a []uint64 column as a []byte view without
// copying. This is safe for our purposes because every operation performed
// on the result is XOR, which is bit-for-bit independent of how the
// underlying bytes are grouped into words — the same reinterpretation
// trick klauspost/reedsolomon's unsafe.go uses to hand aligned byte buffers
// to its own vectorized routines.
func wordsAsBytes(w []uint64) []byte {
	if len(w) == 0 {
		return nil
	}
	return unsafe.Slice((*byte)(unsafe.Pointer(&w[0])), len(w)*8)
}

// xorInto XORs src into dst in place: dst ^= src.
func xorInto(dst, src []uint64) {
	if len(src) == 0 {
		return
	}
	db := wordsAsBytes(dst)
	xorsimd.Bytes(db, db, wordsAsBytes(src))
}

// xorRangeInto XORs src into dst[offset:offset+len(src)] in place.
func xorRangeInto(dst []uint64, offset int, src []uint64) {
	xorInto(dst[offset:offset+len(src)], src)
}

// xorAllInto computes the XOR of every column in srcs and writes it to dst.
// Columns of srcs may be nil (treated as all-zero, i.e. skipped).
func xorAllInto(dst []uint64, srcs [][]uint64) {
	for i := range dst {
		dst[i] = 0
	}
	present := make([][]byte, 0, len(srcs))
	for _, s := range srcs {
		if s == nil {
			continue
		}
		present = append(present, wordsAsBytes(s))
	}
	if len(present) == 0 {
		return
	}
	xorsimd.Encode(wordsAsBytes(dst), present)
}
