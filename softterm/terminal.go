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

// Package softterm implements the virtual-terminal state machine: it
// consumes ECMA-48 events from an ecma48.Decoder and applies them to a
// screenbuf.Buffer, tracking everything that sits above the buffer itself
// (cursor, attributes, margins, modes, saved states). It is the direct
// generalisation of the teacher's vt.Backend consumer loop, widened to the
// margins, alternate-screen, and status-report surface a full DEC/xterm
// emulation needs.
package softterm

import (
	"github.com/vt48/term/capability"
	"github.com/vt48/term/cellmodel"
	"github.com/vt48/term/ecma48"
	"github.com/vt48/term/screenbuf"
)

// Responder receives bytes a Terminal wants delivered back to the
// application, as if they had been typed: device-attribute/status replies
// and the like. It is distinct from screenbuf.OutQueue, which carries
// consumer-to-producer input messages across a process boundary; Responder
// is the producer's own reply channel.
type Responder func([]byte)

// Terminal is the full virtual-terminal state machine. It is not safe for
// concurrent use; exactly one goroutine should call Feed.
type Terminal struct {
	alt *screenbuf.AltBuffer
	dec *ecma48.Decoder
	cap capability.Descriptor
	out Responder

	width, height int

	cursorX, cursorY int
	pendingWrap      bool

	attr    cellmodel.Attr
	colours cellmodel.Pair

	savedAttr    cellmodel.Attr
	savedColours cellmodel.Pair

	// scroll_origin/scroll_margin: the active DECSTBM/DECSLRM region.
	// display_origin/display_margin is always the full buffer in this
	// implementation (SPEC_FULL.md's "effectively static" note), so only
	// the scroll region is tracked explicitly.
	scrollTop, scrollBottom int // rows [scrollTop, scrollBottom)
	scrollLeft, scrollRight int // cols [scrollLeft, scrollRight)

	originMode   bool // DECOM
	wrapMode     bool // DECAWM, default on
	reverseVideo bool // DECSCNM
	overstrike   bool // printables overwrite rather than insert; IRM is its inverse
	square       bool // when true, wide glyphs are not given a shadow cell

	backgroundColourErase bool // DECECM, mode 117: default on

	lastPrintable rune

	saved savedState
	alt1049Saved savedState
	haveSaved    bool

	modes      privateModes
	savedModes privateModes
	tabs       tabStops
	vtabs      tabStops
	title      string

	sendDECLocator       bool
	locatorPressEvents   bool
	locatorReleaseEvents bool
}

type savedState struct {
	x, y       int
	attr       cellmodel.Attr
	colours    cellmodel.Pair
	originMode bool
	wrapMode   bool
}

// New constructs a Terminal of the given size over a freshly allocated
// primary/alternate buffer pair, reporting device responses through out
// (which may be nil to discard them).
func New(width, height int, cd capability.Descriptor, out Responder) *Terminal {
	return NewOver(screenbuf.New(width, height), cd, out)
}

// NewOver runs the state machine over an existing primary buffer — for a
// producer process, one created with screenbuf.OpenMapped, so every
// mutation lands in the shared file. The alternate buffer is always a
// fresh in-memory shadow; only primary content is shared.
func NewOver(primary *screenbuf.Buffer, cd capability.Descriptor, out Responder) *Terminal {
	width, height := primary.Size()
	t := &Terminal{
		alt:    screenbuf.NewAltBuffer(primary),
		cap:    cd,
		out:    out,
		width:  width,
		height: height,
		colours:               cellmodel.PairDefault,
		savedColours:          cellmodel.PairDefault,
		wrapMode:              true,
		overstrike:            true,
		square:                true,
		backgroundColourErase: true,
		modes:                 defaultPrivateModes(),
	}
	t.savedModes = t.modes
	t.resetMargins()
	t.dec = ecma48.NewDecoder(ecma48.Flags{
		PermitControlStrings: true,
		PermitCancel:         true,
		Permit7BitExtensions: true,
	}, t.handleEvent)
	return t
}

// Buffer exposes the active screen buffer for a realizer to read; it always
// reflects whichever of primary/alternate is currently selected.
func (t *Terminal) Buffer() *screenbuf.Buffer { return t.alt.Active() }

// Feed decodes one input byte and applies its effect to the terminal.
func (t *Terminal) Feed(b byte) { t.dec.Feed(b) }

// Write feeds an entire byte slice, for convenience (io.Writer-shaped).
func (t *Terminal) Write(p []byte) (int, error) {
	for _, b := range p {
		t.Feed(b)
	}
	return len(p), nil
}

func (t *Terminal) respond(b []byte) {
	if t.out != nil {
		t.out(b)
	}
}

func (t *Terminal) resetMargins() {
	t.scrollTop, t.scrollBottom = 0, t.height
	t.scrollLeft, t.scrollRight = 0, t.width
}

// Resize changes the logical screen size, preserving content the way
// screenbuf.Buffer.SetSize does, and resets the scroll region to the full
// new size (matching the original's Resize, which has no notion of a
// margin surviving a geometry change).
func (t *Terminal) Resize(width, height int) {
	t.width, t.height = width, height
	t.alt.SetSize(width, height)
	t.resetMargins()
	if t.cursorX >= width {
		t.cursorX = width - 1
	}
	if t.cursorY >= height {
		t.cursorY = height - 1
	}
	t.pendingWrap = false
}

func (t *Terminal) handleEvent(e ecma48.Event) {
	switch e.Kind {
	case ecma48.KindPrintable:
		t.printableCharacter(e.Error, e.ShiftLevel, e.Rune)
	case ecma48.KindControl:
		t.controlCharacter(e.Control)
	case ecma48.KindEscape:
		t.escapeSequence(e.Intermediate, e.Final)
	case ecma48.KindControlSequence:
		t.controlSequence(e)
	case ecma48.KindControlString:
		t.controlString(e)
	}
}
