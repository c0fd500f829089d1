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

// eraseFill is the cell written by clear/scroll operations. With DECECM
// (mode 117) in its default reset state, background-colour erase is on and
// the cell carries the current colour pair, so erasing paints with the
// active SGR colours; with DECECM set it uses the fixed erased-colour pair
// instead, so clears are unaffected by whatever colour happens to be
// selected.
func (t *Terminal) eraseFill() cellmodel.Cell {
	if t.backgroundColourErase {
		return cellmodel.Cell{Character: ' ', Colours: t.colours}
	}
	return cellmodel.Cell{Character: ' ', Colours: cellmodel.PairErased}
}

func (t *Terminal) buf() interface {
	WriteNCells(x, y, n int, c cellmodel.Cell)
	CopyNCells(dstX, dstY, srcX, srcY, n int)
	ModifyNCells(x, y, n int, f func(cellmodel.Cell) cellmodel.Cell)
} {
	return t.alt.Active()
}

// ClearDisplay erases the entire screen.
func (t *Terminal) ClearDisplay() {
	t.buf().WriteNCells(0, 0, t.width*t.height, t.eraseFill())
}

// ClearToEOD erases from the cursor (inclusive) to the end of the display.
func (t *Terminal) ClearToEOD() {
	n := (t.height-t.cursorY-1)*t.width + (t.width - t.cursorX)
	t.buf().WriteNCells(t.cursorX, t.cursorY, n, t.eraseFill())
}

// ClearFromBOD erases from the start of the display to the cursor
// (inclusive).
func (t *Terminal) ClearFromBOD() {
	n := t.cursorY*t.width + t.cursorX + 1
	t.buf().WriteNCells(0, 0, n, t.eraseFill())
}

// ClearLine erases the cursor's entire row.
func (t *Terminal) ClearLine() {
	t.buf().WriteNCells(0, t.cursorY, t.width, t.eraseFill())
}

// ClearToEOL erases from the cursor (inclusive) to the end of its row.
func (t *Terminal) ClearToEOL() {
	t.buf().WriteNCells(t.cursorX, t.cursorY, t.width-t.cursorX, t.eraseFill())
}

// ClearFromBOL erases from the start of the cursor's row to the cursor
// (inclusive).
func (t *Terminal) ClearFromBOL() {
	t.buf().WriteNCells(0, t.cursorY, t.cursorX+1, t.eraseFill())
}

// EraseCharacters (ECH) erases n cells starting at the cursor, without
// shifting anything: the DEC "erase" as opposed to "delete" primitive.
func (t *Terminal) EraseCharacters(n int) {
	if n <= 0 {
		n = 1
	}
	right := t.width
	if t.inScrollColumns() {
		right = t.scrollRight
	}
	if t.cursorX+n > right {
		n = right - t.cursorX
	}
	if n > 0 {
		t.buf().WriteNCells(t.cursorX, t.cursorY, n, t.eraseFill())
	}
}

// rowRight returns the right edge (exclusive) of the cursor's editing
// window: the scroll-region right margin when the cursor sits within the
// scroll columns, else the full row.
func (t *Terminal) rowRight() int {
	if t.inScrollColumns() {
		return t.scrollRight
	}
	return t.width
}

// InsertCharacters (ICH) shifts cells from the cursor to the row's right
// edge right by n, discarding what falls off the edge, and fills the
// vacated cells at the cursor with blanks.
func (t *Terminal) InsertCharacters(n int) {
	if n <= 0 {
		n = 1
	}
	right := t.rowRight()
	width := right - t.cursorX
	if n > width {
		n = width
	}
	if n <= 0 {
		return
	}
	if width-n > 0 {
		t.buf().CopyNCells(t.cursorX+n, t.cursorY, t.cursorX, t.cursorY, width-n)
	}
	t.buf().WriteNCells(t.cursorX, t.cursorY, n, t.eraseFill())
}

// DeleteCharacters (DCH) shifts cells from just right of the deleted range
// left by n, filling the vacated cells at the row's right edge.
func (t *Terminal) DeleteCharacters(n int) {
	if n <= 0 {
		n = 1
	}
	right := t.rowRight()
	width := right - t.cursorX
	if n > width {
		n = width
	}
	if n <= 0 {
		return
	}
	if width-n > 0 {
		t.buf().CopyNCells(t.cursorX, t.cursorY, t.cursorX+n, t.cursorY, width-n)
	}
	t.buf().WriteNCells(right-n, t.cursorY, n, t.eraseFill())
}

// InsertLinesInScrollAreaAt (IL) scrolls rows [y, scrollBottom) within the
// active column margins down by n, counted from row y rather than the
// cursor; CSI L passes the cursor row.
func (t *Terminal) InsertLinesInScrollAreaAt(y, n int) {
	if y < t.scrollTop || y >= t.scrollBottom {
		return
	}
	if n <= 0 {
		n = 1
	}
	top, bottom := y, t.scrollBottom
	if n > bottom-top {
		n = bottom - top
	}
	b := t.alt.Active()
	if bottom-top-n > 0 {
		// shift existing rows down by relocating through ScrollDown scoped
		// to [top,bottom).
		b.ScrollDown(top, bottom, t.scrollLeft, t.scrollRight, n, t.eraseFill())
	} else {
		for y := top; y < bottom; y++ {
			b.WriteNCells(t.scrollLeft, y, t.scrollRight-t.scrollLeft, t.eraseFill())
		}
	}
}

// DeleteLinesInScrollAreaAt (DL) scrolls rows [y, scrollBottom) up by n.
func (t *Terminal) DeleteLinesInScrollAreaAt(y, n int) {
	if y < t.scrollTop || y >= t.scrollBottom {
		return
	}
	if n <= 0 {
		n = 1
	}
	t.alt.Active().ScrollUp(y, t.scrollBottom, t.scrollLeft, t.scrollRight, n, t.eraseFill())
}

// InsertColumnsInScrollAreaAt (DECIC) shifts columns [x, scrollRight) right
// by n within the full scroll row range.
func (t *Terminal) InsertColumnsInScrollAreaAt(x, n int) {
	if x < t.scrollLeft || x >= t.scrollRight {
		return
	}
	if n <= 0 {
		n = 1
	}
	for y := t.scrollTop; y < t.scrollBottom; y++ {
		width := t.scrollRight - x
		if n > width {
			n = width
		}
		if width-n > 0 {
			t.alt.Active().CopyNCells(x+n, y, x, y, width-n)
		}
		t.alt.Active().WriteNCells(x, y, n, t.eraseFill())
	}
}

// DeleteColumnsInScrollAreaAt (DECDC) shifts columns [x, scrollRight) left
// by n.
func (t *Terminal) DeleteColumnsInScrollAreaAt(x, n int) {
	if x < t.scrollLeft || x >= t.scrollRight {
		return
	}
	if n <= 0 {
		n = 1
	}
	for y := t.scrollTop; y < t.scrollBottom; y++ {
		width := t.scrollRight - x
		if n > width {
			n = width
		}
		if width-n > 0 {
			t.alt.Active().CopyNCells(x, y, x+n, y, width-n)
		}
		t.alt.Active().WriteNCells(t.scrollRight-n, y, n, t.eraseFill())
	}
}

// ChangeAreaAttributes (DECCARA) rewrites the attribute/colour of every
// cell in [top,bottom)x[left,right) via ModifyNCells, leaving the
// character untouched.
func (t *Terminal) ChangeAreaAttributes(top, left, bottom, right int, attr cellmodel.Attr, set bool) {
	for y := top; y < bottom && y < t.height; y++ {
		n := right - left
		if left+n > t.width {
			n = t.width - left
		}
		if n <= 0 {
			continue
		}
		t.buf().ModifyNCells(left, y, n, func(c cellmodel.Cell) cellmodel.Cell {
			if set {
				c.Attr |= attr
			} else {
				c.Attr &^= attr
			}
			return c
		})
	}
}

// changeAreaAttributes parses the CSI $ r form of DECCARA: four DEC
// coordinates bounding the area (relative to the scroll origin when origin
// mode is on), then an SGR-style parameter list applied as a
// turn-off/flip-on rewrite across the area.
func (t *Terminal) changeAreaAttributes(a ecma48.ArgVector) {
	originX, originY := 0, 0
	limW, limH := t.width, t.height
	if t.originMode {
		originX, originY = t.scrollLeft, t.scrollTop
		limW, limH = t.scrollRight-t.scrollLeft, t.scrollBottom-t.scrollTop
	}
	top := a.GetArgOneIfZeroOrEmpty(0, 0) - 1
	left := a.GetArgOneIfZeroOrEmpty(1, 0) - 1
	bottom := a.GetArgThisIfZeroOrEmpty(2, 0, limH)
	right := a.GetArgThisIfZeroOrEmpty(3, 0, limW)
	if top >= bottom || left >= right {
		return
	}
	top += originY
	bottom += originY
	left += originX
	right += originX

	turnOff, flipOn, fg, bg := sgrAreaChanges(a, 4)
	for y := top; y < bottom && y < t.height; y++ {
		n := right - left
		if left+n > t.width {
			n = t.width - left
		}
		if n <= 0 {
			continue
		}
		t.buf().ModifyNCells(left, y, n, func(c cellmodel.Cell) cellmodel.Cell {
			c.Attr = (c.Attr &^ turnOff) | flipOn
			if fg != nil {
				c.Colours.Foreground = *fg
			}
			if bg != nil {
				c.Colours.Background = *bg
			}
			return c
		})
	}
}

// reverseAreaAttributes parses the CSI $ t form of DECRARA: the same
// coordinate prefix as DECCARA, with the trailing SGR parameters naming the
// attribute bits to toggle rather than to set.
func (t *Terminal) reverseAreaAttributes(a ecma48.ArgVector) {
	originX, originY := 0, 0
	limW, limH := t.width, t.height
	if t.originMode {
		originX, originY = t.scrollLeft, t.scrollTop
		limW, limH = t.scrollRight-t.scrollLeft, t.scrollBottom-t.scrollTop
	}
	top := a.GetArgOneIfZeroOrEmpty(0, 0) - 1
	left := a.GetArgOneIfZeroOrEmpty(1, 0) - 1
	bottom := a.GetArgThisIfZeroOrEmpty(2, 0, limH)
	right := a.GetArgThisIfZeroOrEmpty(3, 0, limW)
	if top >= bottom || left >= right {
		return
	}
	turnOff, flipOn, _, _ := sgrAreaChanges(a, 4)
	t.ReverseAreaAttributes(top+originY, left+originX, bottom+originY, right+originX, (turnOff|flipOn)&^cellmodel.Underlines)
}

// ReverseAreaAttributes (DECRARA) toggles attr in every cell of the region.
func (t *Terminal) ReverseAreaAttributes(top, left, bottom, right int, attr cellmodel.Attr) {
	for y := top; y < bottom && y < t.height; y++ {
		n := right - left
		if left+n > t.width {
			n = t.width - left
		}
		if n <= 0 {
			continue
		}
		t.buf().ModifyNCells(left, y, n, func(c cellmodel.Cell) cellmodel.Cell {
			c.Attr ^= attr
			return c
		})
	}
}
