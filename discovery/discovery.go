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

// Package discovery answers the two filesystem questions the file pipeline
// and the repair CLI verb need but don't want to know the layout details
// of: which of a logical file's disk copies exist, and which logical files
// live under a given disk's directory tree.
package discovery

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/xtaci/evenodd/diskio"
)

// EnumerateErasures scans disk_0/path .. disk_maxDisk/path under root and
// reports which indices are absent and the lowest-index disk that is
// present (-1 if none are).
func EnumerateErasures(root, path string, maxDisk int) (missing []int, okIndex int, err error) {
	okIndex = -1
	for d := 0; d <= maxDisk; d++ {
		p := diskio.DiskPath(root, d, path)
		_, statErr := os.Stat(p)
		switch {
		case statErr == nil:
			if okIndex == -1 {
				okIndex = d
			}
		case os.IsNotExist(statErr):
			missing = append(missing, d)
		default:
			return nil, -1, errors.Wrapf(statErr, "discovery: stat %s", p)
		}
	}
	return missing, okIndex, nil
}

// WalkSurvivingDisk recursively lists regular files under diskDir, returning
// paths relative to diskDir — the logical filenames repair should visit.
func WalkSurvivingDisk(diskDir string) ([]string, error) {
	var out []string
	err := filepath.Walk(diskDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			rel, relErr := filepath.Rel(diskDir, path)
			if relErr != nil {
				return relErr
			}
			out = append(out, rel)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "discovery: walk %s", diskDir)
	}
	return out, nil
}
