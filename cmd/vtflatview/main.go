// Copyright 2025 The TCell Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command vtflatview dumps a shared screen-buffer file as a flat character
// table, one screen row per output line, with no escape sequences or
// colour information: a plain-text snapshot for scripting and debugging.
// Grounded on console-flat-table-viewer.cpp's role, trimmed similarly (no
// paging, no attribute rendering).
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/vt48/term/screenbuf"
)

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: vtflatview <screenbuffer-file>")
		os.Exit(100)
	}

	buf, err := screenbuf.OpenExisting(flag.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, "vtflatview:", err)
		os.Exit(111)
	}
	defer buf.Close()

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	dump := func() error {
		width2, height2 := buf.Size()
		for y := 0; y < height2; y++ {
			for x := 0; x < width2; x++ {
				c := buf.ReadCell(x, y)
				ch := c.Character
				if ch == 0 {
					ch = ' '
				}
				w.WriteRune(ch)
			}
			w.WriteByte('\n')
		}
		return nil
	}
	// a shared lock keeps this snapshot from interleaving with another
	// state-file reader; the producer itself never locks for cell writes.
	if f := buf.File(); f != nil {
		if err := screenbuf.WithSharedLock(f, dump); err != nil {
			fmt.Fprintln(os.Stderr, "vtflatview:", err)
			os.Exit(111)
		}
	} else {
		_ = dump()
	}
}
