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

// gendata writes random bytes to a file, for exercising the write/read/repair
// pipeline without needing a real dataset on hand.
package main

import (
	"bufio"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const bufSize = 1 << 20

func usage() {
	fmt.Println("usage: gendata <file_bytes> <file_name>")
	fmt.Println("       gendata <file_bytes> <file_name> <seed>")
}

func main() {
	if len(os.Args) < 3 || len(os.Args) > 4 {
		usage()
		os.Exit(1)
	}

	fileBytes, err := strconv.ParseInt(os.Args[1], 10, 64)
	if err != nil || fileBytes < 0 {
		usage()
		os.Exit(1)
	}
	fileName := os.Args[2]

	seed := time.Now().UnixNano()
	if len(os.Args) == 4 {
		s, err := strconv.ParseInt(os.Args[3], 10, 64)
		if err != nil {
			usage()
			os.Exit(1)
		}
		seed = s
	}

	if err := createFile(fileName); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := writeRandom(fileName, fileBytes, seed); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func createFile(name string) error {
	if dir := filepath.Dir(name); dir != "." {
		if err := os.MkdirAll(dir, 0o777); err != nil {
			return err
		}
	}
	return nil
}

func writeRandom(name string, n int64, seed int64) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriterSize(f, bufSize)
	rng := rand.New(rand.NewSource(seed))

	buf := make([]byte, bufSize)
	for remaining := n; remaining > 0; {
		chunk := int64(len(buf))
		if remaining < chunk {
			chunk = remaining
		}
		for i := int64(0); i < chunk; i++ {
			buf[i] = byte(rng.Intn(256))
		}
		if _, err := w.Write(buf[:chunk]); err != nil {
			return err
		}
		remaining -= chunk
	}
	return w.Flush()
}
