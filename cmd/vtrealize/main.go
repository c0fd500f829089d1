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

// Command vtrealize is the consumer half of the producer/consumer split: it
// opens a shared screen-buffer file written by some other process and
// continuously mirrors it onto the real host terminal, polling for updates
// and driving a tuiout.Output to emit the minimal capability-gated diff.
// Grounded on original_source/source/VirtualTerminalRealizer.cpp's role as
// the consumer process, without its keyboard/mouse input aggregation (an
// external collaborator, out of scope here).
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vt48/term/capability"
	"github.com/vt48/term/cellmodel"
	"github.com/vt48/term/screenbuf"
	"github.com/vt48/term/tty"
	"github.com/vt48/term/tuiout"
	vtutf8 "github.com/vt48/term/utf8"
)

func main() {
	interval := flag.Duration("poll", 20*time.Millisecond, "how often to poll the screen buffer for changes")
	stdio := flag.Bool("stdio", false, "drive the realizer over stdin/stdout instead of opening /dev/tty directly (for use under a supervisor that has already attached the controlling terminal to file descriptors 0 and 1)")
	input := flag.String("input", "", "named pipe to forward typed characters to the producer through")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: vtrealize [-stdio] <screenbuffer-file>")
		os.Exit(100)
	}

	newTty := tty.NewDevTty
	if *stdio {
		newTty = tty.NewStdIoTty
	}
	t, err := newTty()
	if err != nil {
		fmt.Fprintln(os.Stderr, "vtrealize:", err)
		os.Exit(111)
	}
	if err := t.Start(); err != nil {
		fmt.Fprintln(os.Stderr, "vtrealize:", err)
		os.Exit(111)
	}

	ws, err := t.WindowSize()
	if err != nil {
		fmt.Fprintln(os.Stderr, "vtrealize:", err)
		os.Exit(111)
	}

	path := flag.Arg(0)
	buf, err := screenbuf.OpenExisting(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "vtrealize:", err)
		os.Exit(111)
	}
	defer func() { buf.Close() }()

	cd := capability.FromEnvironment()
	out := tuiout.New(t, cd, ws.Width, ws.Height)
	if err := out.EnterFullScreen(); err != nil {
		fmt.Fprintln(os.Stderr, "vtrealize:", err)
		os.Exit(111)
	}
	defer out.ExitFullScreen()

	var pipe *os.File
	keys := make(chan rune, 64)
	if *input != "" {
		pipe, err = screenbuf.OpenInputPipe(*input)
		if err != nil {
			fmt.Fprintln(os.Stderr, "vtrealize:", err)
			os.Exit(111)
		}
		defer pipe.Close()
		go forwardInput(t, keys)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	resized := make(chan bool, 1)
	t.NotifyResize(resized)
	defer t.NotifyResize(nil)

	ticker := time.NewTicker(*interval)
	defer ticker.Stop()

	var queue screenbuf.OutQueue
	for {
		select {
		case <-sigs:
			return
		case r := <-keys:
			queue.Push(screenbuf.Msg{Tag: screenbuf.TagUCS3, A: int32(r)})
			for len(keys) > 0 {
				queue.Push(screenbuf.Msg{Tag: screenbuf.TagUCS3, A: int32(<-keys)})
			}
			if err := queue.FlushTo(pipe); err != nil {
				fmt.Fprintln(os.Stderr, "vtrealize:", err)
			}
		case <-resized:
			// only the compositor follows the host window; the buffer's
			// geometry belongs to the producer.
			if ws, err = t.WindowSize(); err == nil {
				out.Resize(ws.Width, ws.Height)
			}
		case <-ticker.C:
			if buf.Stale() {
				// the producer resized: rebuild the mapping, per the
				// torn-read recovery model.
				if fresh, err := screenbuf.OpenExisting(path); err == nil {
					buf.Close()
					buf = fresh
				}
			}
			mirror(buf, out)
			if err := out.Render(); err != nil {
				fmt.Fprintln(os.Stderr, "vtrealize:", err)
				return
			}
		}
	}
}

// forwardInput reads the host tty byte by byte and decodes it into code
// points for the producer's input queue. Only plain characters are
// forwarded here; function-key and mouse decoding belongs to the input
// aggregation layer, which is a separate collaborator.
func forwardInput(t tty.Tty, keys chan<- rune) {
	dec := vtutf8.NewDecoder(func(r vtutf8.Result) {
		if !r.Error {
			keys <- r.Rune
		}
	})
	buf := make([]byte, 1)
	for {
		n, err := t.Read(buf)
		if err != nil {
			return
		}
		if n == 1 {
			dec.Feed(buf[0])
		}
	}
}

// mirror copies every cell of buf into out's compositor, along with the
// cursor sprite, pointer, and screen flags from the header, letting the
// compositor's own touched-bit diffing (against the previous frame) decide
// what actually needs to be redrawn.
func mirror(buf *screenbuf.Buffer, out *tuiout.Output) {
	width, height := buf.Size()
	comp := out.Compositor()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := buf.ReadCell(x, y)
			if c.Character == 0 {
				c.Character = ' '
			}
			comp.Poke(y, x, c)
		}
	}
	cx, cy := buf.CursorPos()
	comp.MoveCursor(cx, cy)
	glyph, attr := buf.CursorType()
	comp.SetCursorState(cellmodel.CursorSprite{Attribute: attr, Glyph: glyph})
	comp.SetPointerAttributes(cellmodel.PointerSprite{Attribute: buf.PointerType()})
	comp.SetFlags(buf.ScreenFlags())
}
