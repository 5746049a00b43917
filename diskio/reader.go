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

package diskio

import (
	"bufio"
	"encoding/binary"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/xtaci/evenodd/stripe"
)

// StripeReader reads an input file stripe by stripe, zero-padding the final
// partial stripe, for the encode path.
type StripeReader struct {
	f *os.File
	r *bufio.Reader
}

// NewStripeReader opens path for streaming stripe reads.
func NewStripeReader(path string) (*StripeReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "diskio: open %s", path)
	}
	return &StripeReader{f: f, r: bufio.NewReaderSize(f, DefaultBufferSize)}, nil
}

// ReadStripe fills b's P data columns (0..P-1) with the next p*(p-1) words
// from the input, in column-major order. Past end of input, remaining words
// are left at zero.
func (sr *StripeReader) ReadStripe(b *stripe.Buffer) error {
	for d := 0; d < b.P; d++ {
		if err := readWordsZeroPad(sr.r, b.Columns[d]); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the underlying file.
func (sr *StripeReader) Close() error {
	return errors.WithStack(sr.f.Close())
}

// DiskColumnReader streams one disk's column per stripe, having already
// consumed the 8-byte header.
type DiskColumnReader struct {
	f *os.File
	r *bufio.Reader
}

// NewDiskColumnReader opens disk d's copy of name under root and skips its
// header.
func NewDiskColumnReader(root string, d int, name string) (*DiskColumnReader, error) {
	path := DiskPath(root, d, name)
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "diskio: open %s", path)
	}
	r := bufio.NewReaderSize(f, DefaultBufferSize)
	var hdr [HeaderSize]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "diskio: read header %s", path)
	}
	return &DiskColumnReader{f: f, r: r}, nil
}

// ReadColumn fills dst with the next len(dst) words from this disk.
func (dr *DiskColumnReader) ReadColumn(dst []uint64) error {
	buf := make([]byte, len(dst)*8)
	if _, err := io.ReadFull(dr.r, buf); err != nil {
		return errors.WithStack(err)
	}
	for i := range dst {
		dst[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
	return nil
}

// Close releases the underlying file.
func (dr *DiskColumnReader) Close() error {
	return errors.WithStack(dr.f.Close())
}

// readWordsZeroPad reads up to len(dst)*8 bytes from r into dst as
// little-endian words, zero-filling whatever runs past end of input.
func readWordsZeroPad(r io.Reader, dst []uint64) error {
	buf := make([]byte, len(dst)*8)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return errors.WithStack(err)
	}

	full := n / 8
	for i := 0; i < full; i++ {
		dst[i] = binary.LittleEndian.Uint64(buf[i*8:])
	}
	for i := full; i < len(dst); i++ {
		dst[i] = 0
	}
	if rem := n % 8; rem != 0 {
		var tail [8]byte
		copy(tail[:], buf[full*8:n])
		dst[full] = binary.LittleEndian.Uint64(tail[:])
	}
	return nil
}
