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

package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/fatih/color"
	"github.com/pkg/errors"
	"github.com/urfave/cli"

	"github.com/xtaci/evenodd/diskio"
	"github.com/xtaci/evenodd/pipeline"
	"github.com/xtaci/evenodd/stripe"
)

// VERSION is injected by buildflags
var VERSION = "SELFBUILD"

func main() {
	if VERSION == "SELFBUILD" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	myApp := cli.NewApp()
	myApp.Name = "evenodd"
	myApp.Usage = "EVENODD erasure-coded file storage"
	myApp.Version = VERSION
	myApp.Commands = []cli.Command{
		{
			Name:      "write",
			Usage:     "encode a file across p+2 disks",
			ArgsUsage: "<file_name> <p>",
			Action:    cmdWrite,
		},
		{
			Name:      "read",
			Usage:     "reconstruct a file from its disk copies",
			ArgsUsage: "<file_name> <save_as>",
			Action:    cmdRead,
		},
		{
			Name:      "repair",
			Usage:     "repair every logical file under the named failed disk(s)",
			ArgsUsage: "<k> <idx0> [<idx1>]",
			Action:    cmdRepair,
		},
	}
	myApp.CommandNotFound = func(c *cli.Context, cmd string) {
		cli.ShowAppHelp(c)
	}
	myApp.Action = func(c *cli.Context) error {
		fmt.Println("usage: evenodd write <file_name> <p>")
		fmt.Println("usage: evenodd read <file_name> <save_as>")
		fmt.Println("usage: evenodd repair <k> <idx0> [<idx1>]")
		return cli.NewExitError("", 1)
	}

	if err := myApp.Run(os.Args); err != nil {
		log.Fatalf("%+v", err)
	}
}

func cmdWrite(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.NewExitError("usage: evenodd write <file_name> <p>", 1)
	}
	fileName := c.Args().Get(0)
	p, err := strconv.Atoi(c.Args().Get(1))
	if err != nil {
		return cli.NewExitError("usage: evenodd write <file_name> <p>", 1)
	}
	if err := stripe.ValidateP(p); err != nil {
		return cli.NewExitError(fmt.Sprintf("invalid p: %v", err), 1)
	}

	root, err := os.Getwd()
	if err != nil {
		return err
	}
	return pipeline.EncodeFile(root, fileName, p)
}

func cmdRead(c *cli.Context) error {
	if c.NArg() != 2 {
		return cli.NewExitError("usage: evenodd read <file_name> <save_as>", 1)
	}
	fileName := c.Args().Get(0)
	saveAs := c.Args().Get(1)

	root, err := os.Getwd()
	if err != nil {
		return err
	}

	err = pipeline.DecodeFile(root, fileName, saveAs)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pipeline.ErrFileNotFound):
		color.Red("File does not exist!")
		return nil
	case errors.Is(err, pipeline.ErrFileCorrupted):
		color.Red("File corrupted!")
		return nil
	default:
		return err
	}
}

func cmdRepair(c *cli.Context) error {
	if c.NArg() < 1 {
		return cli.NewExitError("usage: evenodd repair <k> <idx0> [<idx1>]", 1)
	}
	k, err := strconv.Atoi(c.Args().Get(0))
	if err != nil || k < 0 || k != c.NArg()-1 {
		return cli.NewExitError("usage: evenodd repair <k> <idx0> [<idx1>]", 1)
	}
	// k > 2 is reported and returns immediately, without ever looking at the
	// idx arguments beyond the first two: a true k-ary erasure count, not
	// one capped by the repair path's own two-erasure ceiling.
	if k > 2 {
		color.Red("Too many corruptions!")
		return nil
	}

	missing := make([]int, 0, k)
	for i := 0; i < k; i++ {
		idx, err := strconv.Atoi(c.Args().Get(1 + i))
		if err != nil {
			return cli.NewExitError("usage: evenodd repair <k> <idx0> [<idx1>]", 1)
		}
		missing = append(missing, idx)
	}

	root, err := os.Getwd()
	if err != nil {
		return err
	}

	survivor := -1
	for d := 0; d <= stripe.MaxP+1; d++ {
		if containsIdx(missing, d) {
			continue
		}
		if info, statErr := os.Stat(diskio.DiskPath(root, d, "")); statErr == nil && info.IsDir() {
			survivor = d
			break
		}
	}
	if survivor == -1 {
		color.Red("Too many corruptions!")
		return nil
	}

	err = pipeline.RepairDirectory(root, diskio.DiskPath(root, survivor, ""))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pipeline.ErrTooManyCorruptions):
		color.Red("Too many corruptions!")
		return nil
	default:
		return err
	}
}

func containsIdx(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}
