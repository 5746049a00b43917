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

// Buffer budget constants: a suggested <= 256 MiB total working set across
// all concurrently open disk buffers, <= 1 MiB per individual buffer.
const (
	DefaultBufferSize  = 1 << 16 // 64 KiB: the per-file bufio size this package actually uses
	MaxPerIOBufferSize = 1 << 20 // 1 MiB ceiling a caller may opt into
	MaxBufferBudget    = 1 << 28 // 256 MiB ceiling across all concurrently open disk buffers
)

// StripeCount returns the number of stripes an N-byte file encodes into
// under prime parameter p: ceil(ceil(N/8) / (p*(p-1))).
func StripeCount(n int64, p int) int64 {
	words := (n + 7) / 8
	perStripe := int64(p) * int64(p-1)
	if perStripe == 0 {
		return 0
	}
	return (words + perStripe - 1) / perStripe
}

// ColumnFileSize returns the final length of each of the p+2 disk files for
// an N-byte input: the header plus (p-1) words per stripe.
func ColumnFileSize(n int64, p int) int64 {
	return HeaderSize + StripeCount(n, p)*int64(p-1)*8
}
