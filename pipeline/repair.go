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

// RepairFile reconstructs whatever of path's p+2 disk copies are missing
// (up to two), writing them back in place. With mode == ModeContentOnly it
// is a no-op when every missing index is a parity column.
func RepairFile(root, path string, mode RepairMode) error {
	bootstrapMissing, ok, err := discovery.EnumerateErasures(root, path, stripe.MaxP+1)
	if err != nil {
		return err
	}
	if ok == -1 {
		return ErrFileNotFound
	}

	n, p, err := diskio.ReadHeader(diskio.DiskPath(root, ok, path))
	if err != nil {
		return err
	}

	missing := withinDiskSet(bootstrapMissing, p)
	if len(missing) > 2 {
		return ErrTooManyCorruptions
	}
	if len(missing) == 0 {
		return nil
	}
	if mode == ModeContentOnly && !missingDataColumn(missing, p) {
		return nil
	}

	return reconstructDisks(root, path, n, p, missing)
}

// RepairDirectory walks diskDir (a surviving disk's tree) and repairs every
// logical file found there, stopping at the first file with more than two
// erasures.
func RepairDirectory(root, diskDir string) error {
	files, err := discovery.WalkSurvivingDisk(diskDir)
	if err != nil {
		return err
	}
	for _, f := range files {
		if err := RepairFile(root, f, ModeFull); err != nil {
			return err
		}
	}
	return nil
}

func reconstructDisks(root, path string, n int64, p int, missing []int) error {
	present := make([]int, 0, p+2-len(missing))
	for d := 0; d < p+2; d++ {
		if !containsInt(missing, d) {
			present = append(present, d)
		}
	}

	readers := make(map[int]*diskio.DiskColumnReader, len(present))
	for _, d := range present {
		r, err := diskio.NewDiskColumnReader(root, d, path)
		if err != nil {
			closeColumnReaderMap(readers)
			return err
		}
		readers[d] = r
	}
	defer closeColumnReaderMap(readers)

	writers := make(map[int]*diskio.DiskColumnWriter, len(missing))
	for _, d := range missing {
		w, err := diskio.NewDiskColumnWriter(root, d, path, n, p)
		if err != nil {
			closeColumnWriterMap(writers)
			return err
		}
		writers[d] = w
	}

	b := stripe.NewBuffer(p)
	stripes := diskio.StripeCount(n, p)
	for s := int64(0); s < stripes; s++ {
		b.Reset()
		for _, d := range present {
			if err := readers[d].ReadColumn(b.Columns[d]); err != nil {
				closeColumnWriterMap(writers)
				return err
			}
		}
		if len(missing) == 1 {
			stripe.Reconstruct1(b, missing[0])
		} else {
			stripe.Reconstruct2(b, missing[0], missing[1])
		}
		for _, d := range missing {
			if err := writers[d].WriteColumn(b.Columns[d]); err != nil {
				closeColumnWriterMap(writers)
				return err
			}
		}
	}

	for _, d := range missing {
		if err := writers[d].Close(); err != nil {
			return err
		}
	}
	return nil
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func closeColumnReaderMap(rs map[int]*diskio.DiskColumnReader) {
	for _, r := range rs {
		r.Close()
	}
}

func closeColumnWriterMap(ws map[int]*diskio.DiskColumnWriter) {
	for _, w := range ws {
		w.Close()
	}
}
