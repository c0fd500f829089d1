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

package softterm

import (
	"github.com/vt48/term/cellmodel"
	"github.com/vt48/term/ecma48"
)

// SetCursorStyle (DECSCUSR, CSI SP q) maps the style numbers onto
// glyph/blink pairs. 0-6 are the xterm set most emulators standardised on
// (blinking/steady block, underline, bar); 7-14 extend the same
// odd-blinks/even-steady pattern through the box, star, under-and-over, and
// mirrored-L glyphs.
func (t *Terminal) SetCursorStyle(n int) {
	glyph := cellmodel.CursorBlock
	blink := n%2 != 0 || n == 0
	switch n {
	case 0, 1, 2:
		glyph = cellmodel.CursorBlock
	case 3, 4:
		glyph = cellmodel.CursorUnderline
	case 5, 6:
		glyph = cellmodel.CursorBar
	case 7, 8:
		glyph = cellmodel.CursorBox
	case 9, 10:
		glyph = cellmodel.CursorStar
	case 11, 12:
		glyph = cellmodel.CursorUnderOver
	case 13, 14:
		glyph = cellmodel.CursorMirrorL
	default:
		return
	}
	_, attr := t.alt.Active().CursorType()
	attr &^= cellmodel.CursorBlink
	if blink {
		attr |= cellmodel.CursorBlink
	}
	t.alt.Active().SetCursorType(glyph, attr)
}

// SetLinuxCursorType reproduces the Linux console's CSI ? n c dialect (see
// Linux's VGA-softcursor documentation): 0 default block, 1 invisible, 2
// underscore, 3-5 progressively taller lower blocks (all rendered as the
// box glyph here), 6 and up a full block.
func (t *Terminal) SetLinuxCursorType(n int) {
	glyph, attr := t.alt.Active().CursorType()
	switch n & 0x0F {
	case 0:
		attr |= cellmodel.CursorVisible
		glyph = cellmodel.CursorBlock
	case 1:
		attr &^= cellmodel.CursorVisible
		glyph = cellmodel.CursorUnderline
	case 2:
		attr |= cellmodel.CursorVisible
		glyph = cellmodel.CursorUnderline
	case 3, 4, 5:
		attr |= cellmodel.CursorVisible
		glyph = cellmodel.CursorBox
	default:
		attr |= cellmodel.CursorVisible
		glyph = cellmodel.CursorBlock
	}
	t.alt.Active().SetCursorType(glyph, attr)
}

// SetSCOCursorType (SCOSCUSR, CSI = n C) accepts the three values the SCO
// console documents: 0 steady visible block, 1 blinking visible block, 5
// hidden underline. Exactly one parameter is required; custom per-scanline
// shapes do not fit this cursor model and are ignored.
func (t *Terminal) SetSCOCursorType(a ecma48.ArgVector) {
	if a.QueryArgCount() != 1 {
		return
	}
	glyph, attr := t.alt.Active().CursorType()
	switch a.GetArgZeroIfEmpty(0, 0) {
	case 0:
		attr |= cellmodel.CursorVisible
		attr &^= cellmodel.CursorBlink
		glyph = cellmodel.CursorBlock
	case 1:
		attr |= cellmodel.CursorVisible | cellmodel.CursorBlink
		glyph = cellmodel.CursorBlock
	case 5:
		attr &^= cellmodel.CursorVisible | cellmodel.CursorBlink
		glyph = cellmodel.CursorUnderline
	default:
		return
	}
	t.alt.Active().SetCursorType(glyph, attr)
}
