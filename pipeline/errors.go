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

// Package pipeline drives the per-file encode/decode/repair loop by
// composing the stripe codec with the disk I/O layer, one stripe at a time.
package pipeline

import "github.com/pkg/errors"

// RepairMode selects how much work RepairFile does.
type RepairMode int

const (
	// ModeContentOnly returns success without rewriting any disk when every
	// missing index is a parity column (>= p): the data columns a
	// subsequent DecodeFile needs are already intact.
	ModeContentOnly RepairMode = iota
	// ModeFull always reconstructs every missing disk.
	ModeFull
)

// Sentinel errors for the three recoverable conditions the CLI layer
// reports with a status line and exit code 0, never with a wrapped stack.
var (
	ErrFileNotFound       = errors.New("pipeline: file does not exist")
	ErrFileCorrupted      = errors.New("pipeline: file corrupted")
	ErrTooManyCorruptions = errors.New("pipeline: too many corruptions")
)
