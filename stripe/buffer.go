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

// Package stripe implements the EVENODD stripe geometry: the fixed-shape
// (p+2)x(p-1) word workspace that the rest of the module streams file bytes
// through, and the pure encode/reconstruct transforms over it.
package stripe

import "fmt"

// MaxP is the largest prime parameter this package supports.
const MaxP = 100

// Buffer is one encoding stripe: P+2 columns (P data columns, one row-parity
// column, one diagonal-parity column), each P-1 machine words tall.
//
// Columns[0:P]   are data
// Columns[P]     is row parity
// Columns[P+1]   is diagonal parity
type Buffer struct {
	P       int
	Columns [][]uint64
}

// NewBuffer allocates a stripe workspace for prime parameter p. p must
// already be validated with ValidateP; NewBuffer panics otherwise, since a
// bad p here is a programmer error, not a recoverable condition.
func NewBuffer(p int) *Buffer {
	if err := ValidateP(p); err != nil {
		panic(err)
	}
	b := &Buffer{P: p, Columns: make([][]uint64, p+2)}
	for i := range b.Columns {
		b.Columns[i] = make([]uint64, p-1)
	}
	return b
}

// Rows reports the number of words in every column (p-1).
func (b *Buffer) Rows() int { return b.P - 1 }

// RowParityCol is the index of the row-parity column (p).
func (b *Buffer) RowParityCol() int { return b.P }

// DiagParityCol is the index of the diagonal-parity column (p+1).
func (b *Buffer) DiagParityCol() int { return b.P + 1 }

// Reset zeroes every column, readying the buffer for the next stripe.
func (b *Buffer) Reset() {
	for _, col := range b.Columns {
		for i := range col {
			col[i] = 0
		}
	}
}

// ValidateP reports whether p is an odd prime no greater than MaxP; any
// other value is a precondition violation the caller should treat as a
// programmer error. The CLI layer checks the same rule before parsing
// proceeds any further.
func ValidateP(p int) error {
	if p < 3 || p > MaxP {
		return fmt.Errorf("stripe: p=%d out of range [3,%d]", p, MaxP)
	}
	if p%2 == 0 {
		return fmt.Errorf("stripe: p=%d is even", p)
	}
	if !isPrime(p) {
		return fmt.Errorf("stripe: p=%d is not prime", p)
	}
	return nil
}

func isPrime(n int) bool {
	if n < 2 {
		return false
	}
	for d := 2; d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}
