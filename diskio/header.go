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

// Package diskio implements the per-disk stripe I/O layer: the 8-byte
// header, the column reader/writer pair that stream one disk's share of
// every stripe, and the byte-level reader/writer used at the file's two
// ends (the original input and the reconstructed output).
package diskio

import (
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
)

// HeaderSize is the width, in bytes, of the per-disk file header.
const HeaderSize = 8

// EncodeHeader packs the original byte length and prime parameter into the
// single 64-bit value stored at the start of every disk file: (n<<8)|p.
func EncodeHeader(n int64, p int) uint64 {
	return uint64(n)<<8 | uint64(p)
}

// DecodeHeader is the inverse of EncodeHeader.
func DecodeHeader(raw uint64) (n int64, p int) {
	return int64(raw >> 8), int(raw & 0xFF)
}

// ReadHeader opens path and reads its 8-byte header, returning the original
// file length and prime parameter. Any surviving disk's header agrees with
// every other, so callers only need to read one.
func ReadHeader(path string) (n int64, p int, err error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, errors.WithStack(err)
	}
	defer f.Close()

	var raw [HeaderSize]byte
	if _, err := io.ReadFull(f, raw[:]); err != nil {
		return 0, 0, errors.Wrapf(err, "diskio: read header %s", path)
	}
	n, p = DecodeHeader(binary.LittleEndian.Uint64(raw[:]))
	return n, p, nil
}
