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

// Package compositor holds the double-buffered cell arrays a realizer
// diffs against the host terminal: `new` (what the screen buffer currently
// says), and `cur` (what the host terminal currently shows, plus a
// touched bit marking cells that still need to be written). Grounded on
// the dirty-bit bookkeeping in the teacher's cell.go/buffered.go, widened
// to the new/cur split and cursor/pointer touch tracking this spec
// describes.
package compositor

import "github.com/vt48/term/cellmodel"

type tracked struct {
	cell    cellmodel.Cell
	touched bool
}

// Compositor is not safe for concurrent use; a single realizer goroutine
// owns it.
type Compositor struct {
	width, height int

	new []cellmodel.Cell
	cur []tracked

	cursorX, cursorY         int
	pointerX, pointerY, pointerDepth int
	cursorSprite             cellmodel.CursorSprite
	pointerSprite            cellmodel.PointerSprite
	flags                    cellmodel.ScreenFlags

	softwareCursor bool // when true, cursor/pointer moves touch their cell positions
}

// New creates a Compositor of the given size, fully touched (so the first
// frame always performs a full repaint).
func New(width, height int) *Compositor {
	c := &Compositor{}
	c.Resize(width, height)
	return c
}

func (c *Compositor) idx(x, y int) int { return y*c.width + x }

// Resize reallocates both arrays and touches every cell.
func (c *Compositor) Resize(width, height int) {
	c.width, c.height = width, height
	n := width * height
	c.new = make([]cellmodel.Cell, n)
	c.cur = make([]tracked, n)
	for i := range c.new {
		c.new[i] = cellmodel.Erased
	}
	c.TouchAll()
}

func (c *Compositor) Size() (int, int) { return c.width, c.height }

// TouchAll marks every cell touched, forcing a full repaint on the next
// write_changed_cells_to_output pass.
func (c *Compositor) TouchAll() {
	for i := range c.cur {
		c.cur[i].touched = true
	}
}

// ScrollUp shifts cur up by h rows (content moves toward row 0) and marks
// the exposed rows at the bottom touched; h >= height touches everything.
func (c *Compositor) ScrollUp(h int) {
	if h >= c.height {
		c.TouchAll()
		return
	}
	copy(c.cur, c.cur[h*c.width:])
	for y := c.height - h; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			c.cur[c.idx(x, y)].touched = true
		}
	}
}

// ScrollDown shifts cur down by h rows and marks the exposed rows at the
// top touched.
func (c *Compositor) ScrollDown(h int) {
	if h >= c.height {
		c.TouchAll()
		return
	}
	copy(c.cur[h*c.width:], c.cur[:(c.height-h)*c.width])
	for y := 0; y < h; y++ {
		for x := 0; x < c.width; x++ {
			c.cur[c.idx(x, y)].touched = true
		}
	}
}

// Poke writes a cell into `new` at (y,x). It does not itself touch `cur`;
// that happens in RepaintNewToCur.
func (c *Compositor) Poke(y, x int, cell cellmodel.Cell) {
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return
	}
	c.new[c.idx(x, y)] = cell
}

// TouchWidthChangeShadows re-touches the cell(s) to the right of (x,y) that
// a previously wider glyph's footprint occupied, when the glyph at (x,y)
// has since become narrower (or vanished). oldWidth is the footprint width
// the cell previously had.
func (c *Compositor) TouchWidthChangeShadows(x, y, oldWidth, newWidth int) {
	if newWidth >= oldWidth {
		return
	}
	for i := x + newWidth; i < x+oldWidth && i < c.width; i++ {
		c.cur[c.idx(i, y)].touched = true
	}
}

// TouchWidthShadows sweeps the whole grid ahead of RepaintNewToCur,
// re-touching the cells a shrinking glyph's old footprint occupied: a wide
// glyph the host already painted covers its neighbour cell, so replacing it
// with a narrow one must also rewrite that neighbour even when the
// neighbour's own cell value is unchanged. width maps a character to its
// column count (the shared uniclass.Width model).
func (c *Compositor) TouchWidthShadows(width func(rune) int) {
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			i := c.idx(x, y)
			oldW := width(c.cur[i].cell.Character)
			newW := width(c.new[i].Character)
			if newW < oldW && c.new[i] != c.cur[i].cell {
				c.TouchWidthChangeShadows(x, y, oldW, newW)
			}
		}
	}
}

// RepaintNewToCur copies `new` into `cur`, setting `touched` on exactly the
// cells where the two differed.
func (c *Compositor) RepaintNewToCur() {
	for i := range c.new {
		if c.cur[i].cell != c.new[i] {
			c.cur[i] = tracked{cell: c.new[i], touched: true}
		}
	}
}

// Cur returns the current cell and whether it is touched.
func (c *Compositor) Cur(x, y int) (cellmodel.Cell, bool) {
	t := c.cur[c.idx(x, y)]
	return t.cell, t.touched
}

// Untouch clears the touched bit at (x,y), called once a realizer has
// written the cell to the host terminal.
func (c *Compositor) Untouch(x, y int) {
	c.cur[c.idx(x, y)].touched = false
}

// SetSoftwareCursor enables/disables cursor-and-pointer touch tracking; a
// realizer that relies on the host terminal's own cursor does not need
// this (and should leave it false to avoid spurious repaints).
func (c *Compositor) SetSoftwareCursor(on bool) { c.softwareCursor = on }

func (c *Compositor) touchIfSoftwareCursor(x, y int) {
	if c.softwareCursor && x >= 0 && x < c.width && y >= 0 && y < c.height {
		c.cur[c.idx(x, y)].touched = true
	}
}

// MoveCursor updates the logical cursor position, touching the old and new
// cell when software-cursor rendering is enabled.
func (c *Compositor) MoveCursor(x, y int) {
	c.touchIfSoftwareCursor(c.cursorX, c.cursorY)
	c.cursorX, c.cursorY = x, y
	c.touchIfSoftwareCursor(x, y)
}

func (c *Compositor) CursorPos() (int, int) { return c.cursorX, c.cursorY }

// ChangePointerRow/Col/Depth move one axis of the pointer position,
// touching old and new positions when software-cursor rendering is
// enabled (depth changes alone do not move which cell is touched, but
// still trigger a repaint of the current position since sprite choice may
// depend on depth).
func (c *Compositor) ChangePointerRow(y int) {
	c.touchIfSoftwareCursor(c.pointerX, c.pointerY)
	c.pointerY = y
	c.touchIfSoftwareCursor(c.pointerX, c.pointerY)
}

func (c *Compositor) ChangePointerCol(x int) {
	c.touchIfSoftwareCursor(c.pointerX, c.pointerY)
	c.pointerX = x
	c.touchIfSoftwareCursor(c.pointerX, c.pointerY)
}

func (c *Compositor) ChangePointerDepth(depth int) {
	c.pointerDepth = depth
	c.touchIfSoftwareCursor(c.pointerX, c.pointerY)
}

func (c *Compositor) PointerPos() (x, y, depth int) {
	return c.pointerX, c.pointerY, c.pointerDepth
}

// IsMarked reports whether (x,y) is the cursor's cell.
func (c *Compositor) IsMarked(x, y int) bool { return x == c.cursorX && y == c.cursorY }

// IsPointer reports whether (x,y) is the pointer's cell.
func (c *Compositor) IsPointer(x, y int) bool { return x == c.pointerX && y == c.pointerY }

// SetCursorState updates the cursor sprite, touching its cell if changed.
func (c *Compositor) SetCursorState(s cellmodel.CursorSprite) {
	if s != c.cursorSprite {
		c.cursorSprite = s
		c.touchIfSoftwareCursor(c.cursorX, c.cursorY)
	}
}

func (c *Compositor) CursorSprite() cellmodel.CursorSprite { return c.cursorSprite }

// SetPointerAttributes updates the pointer sprite, touching its cell if
// changed.
func (c *Compositor) SetPointerAttributes(p cellmodel.PointerSprite) {
	if p != c.pointerSprite {
		c.pointerSprite = p
		c.touchIfSoftwareCursor(c.pointerX, c.pointerY)
	}
}

func (c *Compositor) PointerSprite() cellmodel.PointerSprite { return c.pointerSprite }

func (c *Compositor) SetFlags(f cellmodel.ScreenFlags) { c.flags = f }
func (c *Compositor) Flags() cellmodel.ScreenFlags     { return c.flags }
