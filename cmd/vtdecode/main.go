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

// Command vtdecode traces the ECMA-48 events a byte stream decodes into,
// one line per event, for debugging escape sequences by hand. Grounded on
// console-decode-ecma48.cpp's role, trimmed to the decoder trace itself
// (no DocBook/ncurses paging, which is out of scope).
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/vt48/term/ecma48"
)

func main() {
	in := bufio.NewReaderSize(os.Stdin, 64*1024)
	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	dec := ecma48.NewDecoder(ecma48.Flags{PermitControlStrings: true, PermitCancel: true}, func(e ecma48.Event) {
		printEvent(out, e)
	})

	for {
		b, err := in.ReadByte()
		if err != nil {
			if err != io.EOF {
				fmt.Fprintln(os.Stderr, "vtdecode:", err)
				os.Exit(111)
			}
			return
		}
		dec.Feed(b)
	}
}

func printEvent(out *bufio.Writer, e ecma48.Event) {
	switch e.Kind {
	case ecma48.KindPrintable:
		fmt.Fprintf(out, "printable %q shift=%d error=%v\n", e.Rune, e.ShiftLevel, e.Error)
	case ecma48.KindControl:
		fmt.Fprintf(out, "control 0x%02X\n", e.Control)
	case ecma48.KindEscape:
		fmt.Fprintf(out, "escape final=%q intermediate=%q\n", e.Final, e.Intermediate)
	case ecma48.KindControlSequence:
		fmt.Fprintf(out, "csi final=%q private=%q intermediate=%q args=%v\n", e.Final, e.Private, e.Intermediate, e.Args)
	case ecma48.KindControlString:
		fmt.Fprintf(out, "string kind=%d text=%q\n", e.StringKind, e.Text)
	}
}
