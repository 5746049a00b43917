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

package pipeline

import (
	"github.com/xtaci/evenodd/discovery"
	"github.com/xtaci/evenodd/diskio"
	"github.com/xtaci/evenodd/stripe"
)

// DecodeFile reconstructs path into outPath, repairing data columns first if
// necessary. It returns ErrFileNotFound or ErrFileCorrupted for the two
// recoverable conditions rather than a wrapped I/O error.
func DecodeFile(root, path, outPath string) error {
	bootstrapMissing, ok, err := discovery.EnumerateErasures(root, path, stripe.MaxP+1)
	if err != nil {
		return err
	}
	if ok == -1 {
		return ErrFileNotFound
	}
	if ok >= 3 {
		return ErrFileCorrupted
	}

	n, p, err := diskio.ReadHeader(diskio.DiskPath(root, ok, path))
	if err != nil {
		return err
	}

	missing := withinDiskSet(bootstrapMissing, p)
	if len(missing) > 2 {
		return ErrFileCorrupted
	}

	if missingDataColumn(missing, p) {
		if err := RepairFile(root, path, ModeContentOnly); err != nil {
			return err
		}
	}

	return readDataColumns(root, path, outPath, n, p)
}

func missingDataColumn(missing []int, p int) bool {
	for _, d := range missing {
		if d < p {
			return true
		}
	}
	return false
}

func withinDiskSet(missing []int, p int) []int {
	out := make([]int, 0, len(missing))
	for _, d := range missing {
		if d <= p+1 {
			out = append(out, d)
		}
	}
	return out
}

func readDataColumns(root, path, outPath string, n int64, p int) error {
	readers := make([]*diskio.DiskColumnReader, p)
	for d := 0; d < p; d++ {
		r, err := diskio.NewDiskColumnReader(root, d, path)
		if err != nil {
			closeColumnReaders(readers)
			return err
		}
		readers[d] = r
	}
	defer closeColumnReaders(readers)

	bw, err := diskio.NewByteWriter(outPath, n)
	if err != nil {
		return err
	}

	stripes := diskio.StripeCount(n, p)
	col := make([]uint64, p-1)
	for s := int64(0); s < stripes; s++ {
		for d := 0; d < p; d++ {
			if err := readers[d].ReadColumn(col); err != nil {
				bw.Close()
				return err
			}
			if err := bw.WriteWords(col); err != nil {
				bw.Close()
				return err
			}
		}
	}
	return bw.Close()
}

func closeColumnReaders(rs []*diskio.DiskColumnReader) {
	for _, r := range rs {
		if r != nil {
			r.Close()
		}
	}
}
