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
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

// DiskColumnWriter creates (and, if necessary, the parent directory of) one
// disk's copy of a logical file, writes its header, and then streams one
// column per stripe.
type DiskColumnWriter struct {
	f    *os.File
	w    *bufio.Writer
	n    int64
	p    int
	path string
}

// NewDiskColumnWriter creates disk d's copy of name under root, creating
// ancestor directories as needed, and writes the 8-byte header (n<<8)|p.
func NewDiskColumnWriter(root string, d int, name string, n int64, p int) (*DiskColumnWriter, error) {
	path := DiskPath(root, d, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o777); err != nil {
		return nil, errors.Wrapf(err, "diskio: mkdir for %s", path)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "diskio: create %s", path)
	}
	w := bufio.NewWriterSize(f, DefaultBufferSize)

	var hdr [HeaderSize]byte
	binary.LittleEndian.PutUint64(hdr[:], EncodeHeader(n, p))
	if _, err := w.Write(hdr[:]); err != nil {
		f.Close()
		return nil, errors.Wrapf(err, "diskio: write header %s", path)
	}
	return &DiskColumnWriter{f: f, w: w, n: n, p: p, path: path}, nil
}

// WriteColumn appends one stripe's worth of words (p-1 of them) to this
// disk's file.
func (dw *DiskColumnWriter) WriteColumn(col []uint64) error {
	buf := make([]byte, len(col)*8)
	for i, v := range col {
		binary.LittleEndian.PutUint64(buf[i*8:], v)
	}
	if _, err := dw.w.Write(buf); err != nil {
		return errors.Wrapf(err, "diskio: write column %s", dw.path)
	}
	return nil
}

// Close flushes buffered output and truncates the file to its exact final
// length: header + stripes*(p-1)*8 bytes.
func (dw *DiskColumnWriter) Close() error {
	if err := dw.w.Flush(); err != nil {
		dw.f.Close()
		return errors.Wrapf(err, "diskio: flush %s", dw.path)
	}
	size := ColumnFileSize(dw.n, dw.p)
	if err := dw.f.Truncate(size); err != nil {
		dw.f.Close()
		return errors.Wrapf(err, "diskio: truncate %s", dw.path)
	}
	return errors.WithStack(dw.f.Close())
}

// ByteWriter assembles decoded output from words, truncating to an exact
// byte length on Close.
type ByteWriter struct {
	f    *os.File
	w    *bufio.Writer
	n    int64
	path string
}

// NewByteWriter creates path (and its ancestor directories) for a decoded
// output of exactly n bytes.
func NewByteWriter(path string, n int64) (*ByteWriter, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o777); err != nil {
			return nil, errors.Wrapf(err, "diskio: mkdir for %s", path)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errors.Wrapf(err, "diskio: create %s", path)
	}
	return &ByteWriter{f: f, w: bufio.NewWriterSize(f, DefaultBufferSize), n: n, path: path}, nil
}

// WriteWords appends words to the output as little-endian bytes.
func (bw *ByteWriter) WriteWords(words []uint64) error {
	buf := make([]byte, len(words)*8)
	for i, v := range words {
		binary.LittleEndian.PutUint64(buf[i*8:], v)
	}
	if _, err := bw.w.Write(buf); err != nil {
		return errors.Wrapf(err, "diskio: write %s", bw.path)
	}
	return nil
}

// Close flushes buffered output and truncates the file down to exactly n
// bytes, dropping the tail-stripe zero padding.
func (bw *ByteWriter) Close() error {
	if err := bw.w.Flush(); err != nil {
		bw.f.Close()
		return errors.Wrapf(err, "diskio: flush %s", bw.path)
	}
	if err := bw.f.Truncate(bw.n); err != nil {
		bw.f.Close()
		return errors.Wrapf(err, "diskio: truncate %s", bw.path)
	}
	return errors.WithStack(bw.f.Close())
}
