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

// Command vtemu is the producer half of the producer/consumer split: it
// runs the virtual-terminal state machine over a shared screen-buffer
// file, consuming application output on stdin and writing the terminal's
// own replies (device attributes, status reports) to stdout. One or more
// vtrealize processes render the buffer onto real terminals. Grounded on
// original_source/source/VirtualTerminalBackEnd.cpp's role as the producer
// process, with the application's bytes arriving on a plain pipe rather
// than through its pty plumbing.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/vt48/term/capability"
	"github.com/vt48/term/screenbuf"
	"github.com/vt48/term/softterm"
)

func main() {
	width := flag.Int("width", 80, "initial screen width in columns")
	height := flag.Int("height", 25, "initial screen height in rows")
	inputPipe := flag.String("input", "", "named pipe to create and drain realizer input messages from")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: vtemu [-width n] [-height n] [-input fifo] <screenbuffer-file>")
		os.Exit(100)
	}

	buf, err := screenbuf.OpenMapped(flag.Arg(0), *width, *height)
	if err != nil {
		fmt.Fprintln(os.Stderr, "vtemu:", err)
		os.Exit(111)
	}
	defer buf.Close()

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	term := softterm.NewOver(buf, capability.FromEnvironment(), func(b []byte) {
		out.Write(b)
		out.Flush()
	})

	if *inputPipe != "" {
		pipe, err := screenbuf.CreateInputPipe(*inputPipe)
		if err != nil {
			fmt.Fprintln(os.Stderr, "vtemu:", err)
			os.Exit(111)
		}
		defer pipe.Close()
		go drainInput(pipe, out)
	}

	in := bufio.NewReaderSize(os.Stdin, 64*1024)
	for {
		b, err := in.ReadByte()
		if err != nil {
			if err != io.EOF {
				fmt.Fprintln(os.Stderr, "vtemu:", err)
				os.Exit(111)
			}
			return
		}
		term.Feed(b)
	}
}

// drainInput decodes realizer input messages and echoes the character
// family back to the application's input (stdout here doubles as the
// application-facing reply channel, the same stream DA responses use).
func drainInput(pipe *os.File, out *bufio.Writer) {
	var msg [4]byte
	for {
		if _, err := io.ReadFull(pipe, msg[:]); err != nil {
			return
		}
		m := screenbuf.DecodeMsg(msg)
		if m.Tag == screenbuf.TagUCS3 && m.A > 0 {
			out.WriteRune(rune(m.A))
			out.Flush()
		}
	}
}
