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
	"os"

	"github.com/pkg/errors"

	"github.com/xtaci/evenodd/diskio"
	"github.com/xtaci/evenodd/stripe"
)

// EncodeFile streams path, encodes it under prime parameter p, and writes
// the p+2 disk copies disk_0/path .. disk_{p+1}/path under root.
func EncodeFile(root, path string, p int) error {
	if err := stripe.ValidateP(p); err != nil {
		return err
	}
	info, err := os.Stat(path)
	if err != nil {
		return errors.Wrapf(err, "pipeline: stat %s", path)
	}
	n := info.Size()
	stripes := diskio.StripeCount(n, p)

	sr, err := diskio.NewStripeReader(path)
	if err != nil {
		return err
	}
	defer sr.Close()

	writers := make([]*diskio.DiskColumnWriter, p+2)
	for d := 0; d < p+2; d++ {
		w, err := diskio.NewDiskColumnWriter(root, d, path, n, p)
		if err != nil {
			closeColumnWriters(writers)
			return err
		}
		writers[d] = w
	}

	b := stripe.NewBuffer(p)
	for s := int64(0); s < stripes; s++ {
		b.Reset()
		if err := sr.ReadStripe(b); err != nil {
			closeColumnWriters(writers)
			return err
		}
		stripe.Encode(b)
		for d := 0; d < p+2; d++ {
			if err := writers[d].WriteColumn(b.Columns[d]); err != nil {
				closeColumnWriters(writers)
				return err
			}
		}
	}

	for d := 0; d < p+2; d++ {
		if err := writers[d].Close(); err != nil {
			return err
		}
	}
	return nil
}

func closeColumnWriters(ws []*diskio.DiskColumnWriter) {
	for _, w := range ws {
		if w != nil {
			w.Close()
		}
	}
}
