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

// Package ecma48out emits ECMA-48/DEC/xterm control sequences honouring a
// capability.Descriptor: it is the encode-side mirror of the ecma48
// package's decoder, choosing among several dialects for the same effect
// (7-bit vs 8-bit C1, colon vs semicolon SGR colour sub-parameters, DEC vs
// SCO cursor-shape selectors) rather than ever failing on a capability
// mismatch.
package ecma48out

import (
	"fmt"
	"strings"

	"github.com/vt48/term/capability"
	"github.com/vt48/term/cellmodel"
)

// Emitter accumulates output bytes for one frame; a realizer calls its
// methods in response to compositor diffs, then takes the accumulated
// bytes with Bytes (and Reset to start the next frame).
type Emitter struct {
	cap capability.Descriptor
	buf strings.Builder
}

func New(cd capability.Descriptor) *Emitter {
	return &Emitter{cap: cd}
}

func (e *Emitter) Bytes() []byte {
	b := []byte(e.buf.String())
	e.buf.Reset()
	return b
}

// csi writes the introducer appropriate to the capability's C1 preference:
// ESC [ for a 7-bit host, the single C1 byte for an 8-bit one.
func (e *Emitter) csi() {
	if e.cap.Use8BitC1 {
		e.buf.WriteByte(0x9B)
		return
	}
	e.buf.WriteString("\x1b[")
}

// c1 writes a bare C1 control in whichever encoding the session selected.
func (e *Emitter) c1(c byte) {
	if e.cap.Use8BitC1 {
		e.buf.WriteByte(c)
		return
	}
	e.buf.WriteByte(0x1B)
	e.buf.WriteByte(c - 0x40)
}

func (e *Emitter) writeCSI(params string, final byte) {
	e.csi()
	e.buf.WriteString(params)
	e.buf.WriteByte(final)
}

// GotoYX (CUP) moves the cursor, preferring the shortest correct sequence:
// bare H/f when both coordinates are at the origin-relative 1, otherwise
// the full two-parameter form.
func (e *Emitter) GotoYX(row, col int) {
	if row == 1 && col == 1 {
		e.writeCSI("", 'H')
		return
	}
	e.writeCSI(fmt.Sprintf("%d;%d", row, col), 'H')
}

func (e *Emitter) CUU(n int) {
	if n <= 0 {
		return
	}
	e.writeCSI(count(n), 'A')
}

func (e *Emitter) CUD(n int) {
	if n <= 0 {
		return
	}
	e.writeCSI(count(n), 'B')
}

func (e *Emitter) CUF(n int) {
	if n <= 0 {
		return
	}
	e.writeCSI(count(n), 'C')
}

func (e *Emitter) CUB(n int) {
	if n <= 0 {
		return
	}
	e.writeCSI(count(n), 'D')
}

func count(n int) string {
	if n == 1 {
		return ""
	}
	return fmt.Sprintf("%d", n)
}

// WriteRune emits a single glyph literally, re-encoded as UTF-8 regardless
// of the capability descriptor: this engine never speaks a non-UTF-8
// charset (ISO 2022 switching is out of scope), so there is no dialect
// choice to make here, unlike the control-sequence emitters above.
func (e *Emitter) WriteRune(r rune) {
	e.buf.WriteRune(r)
}

// SetScrollRegion (DECSTBM) restricts IND/RI's effect to [top,bottom]
// (1-based, inclusive), used by tuiout's scroll optimisation so that a
// burst of IND/RI only moves the rows actually being scrolled.
func (e *Emitter) SetScrollRegion(top, bottom int) {
	e.writeCSI(fmt.Sprintf("%d;%d", top, bottom), 'r')
}

// ResetScrollRegion restores the scroll region to the full screen.
func (e *Emitter) ResetScrollRegion(height int) {
	e.writeCSI(fmt.Sprintf("1;%d", height), 'r')
}

// EL (erase in line) mode 0 by default, honouring LacksREP-style capability
// gaps is not needed here since EL is ubiquitous; kept simple.
func (e *Emitter) EL(mode int) {
	if mode == 0 {
		e.writeCSI("", 'K')
		return
	}
	e.writeCSI(fmt.Sprintf("%d", mode), 'K')
}

// REP repeats the last emitted character n times, when the capability
// descriptor says the host supports it; callers must check
// cap.LacksREP themselves before preferring this over literal repetition,
// since the fallback (writing the glyph n times) needs the glyph, which
// this emitter does not retain across calls.
func (e *Emitter) REP(n int) {
	if n <= 1 {
		return
	}
	e.writeCSI(fmt.Sprintf("%d", n), 'b')
}

// IND/RI move the cursor down/up one row inside the scroll region; NEL
// degrades to CR+LF when the capability says the host lacks it (the Linux
// console notably does).
func (e *Emitter) IND() { e.c1(0x84) }

func (e *Emitter) RI() { e.c1(0x8D) }

func (e *Emitter) NEL() {
	if e.cap.LacksNEL {
		e.buf.WriteString("\r\n")
		return
	}
	e.c1(0x85)
}

// DECPrivateMode emits DECSET/DECRST for mode, preferring the DEC private
// form the capability descriptor says the host accepts.
func (e *Emitter) DECPrivateMode(mode int, on bool) {
	final := byte('l')
	if on {
		final = 'h'
	}
	if e.cap.UseSCOPrivateMode && !e.cap.UseDECPrivateMode {
		e.writeCSI(fmt.Sprintf("=%d", mode), final)
		return
	}
	e.writeCSI(fmt.Sprintf("?%d", mode), final)
}

// DECTCEM shows or hides the host terminal's own cursor.
func (e *Emitter) DECTCEM(on bool) {
	e.DECPrivateMode(25, on)
}

// SGRReset drops the host terminal back to its default rendition, used at
// full-screen entry/exit so no stale attribute outlives this process.
func (e *Emitter) SGRReset() {
	e.writeCSI("0", 'm')
}

// DECSCUSR/LINUXSCUSR select a cursor shape, picking the dialect the
// capability descriptor names.
func (e *Emitter) CursorStyle(glyph cellmodel.CursorGlyph, blink bool) {
	switch e.cap.CursorShapeCommand {
	case capability.CursorShapeLinuxSCUSR:
		n := 2
		if glyph == cellmodel.CursorBlock {
			n = 8
		}
		e.writeCSI(fmt.Sprintf("?%d", n), 'c')
	case capability.CursorShapeNone:
		// nothing this emitter can do on a host with no cursor-shape
		// command at all.
	default:
		n := decscusrCode(glyph, blink)
		e.csi()
		e.buf.WriteString(fmt.Sprintf("%d", n))
		e.buf.WriteByte(' ')
		e.buf.WriteByte('q')
	}
}

func decscusrCode(glyph cellmodel.CursorGlyph, blink bool) int {
	base := 1
	switch glyph {
	case cellmodel.CursorUnderline:
		base = 3
	case cellmodel.CursorBar:
		base = 5
	default:
		base = 1
	}
	if !blink {
		base++
	}
	return base
}
