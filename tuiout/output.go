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

// Package tuiout is the realizer's diff-driver: it reads a compositor's
// new/cur cell arrays, asks it to repaint, and writes the minimal
// capability-gated byte sequence (via ecma48out.Emitter) needed to bring
// the host terminal's display in line. It is the direct generalisation of
// the teacher's tScreen.draw/drawCell loop, widened to the margin-free,
// row-major write-optimisation tiers the original TUIOutputBase used.
package tuiout

import (
	"github.com/vt48/term/capability"
	"github.com/vt48/term/cellmodel"
	"github.com/vt48/term/compositor"
	"github.com/vt48/term/ecma48out"
	"github.com/vt48/term/tty"
	"github.com/vt48/term/uniclass"
)

// Options tunes per-cell rendering for hosts whose attribute support is
// thin enough that colour changes are the better rendition.
type Options struct {
	BoldAsColour  bool // render BOLD by brightening the foreground
	FaintAsColour bool // render FAINT by dimming the foreground
	SquareMode    bool // host cells are square; wide glyphs need no shadow rewrites
}

// pointerGlyph is drawn in place of whatever cell the software pointer
// covers.
const pointerGlyph = '↖'

// Output drives one host terminal from one compositor. It is not safe for
// concurrent use.
type Output struct {
	t    tty.Tty
	c    *compositor.Compositor
	e    *ecma48out.Emitter
	cap  capability.Descriptor
	opts Options

	width, height int

	lastAttr    cellmodel.Attr
	lastColours cellmodel.Pair
	cursorY, cursorX int
	haveCursor  bool

	fullScreen bool
}

// New wires a compositor of the given size to t, emitting through the
// dialect cd describes.
func New(t tty.Tty, cd capability.Descriptor, width, height int) *Output {
	return &Output{
		t:      t,
		c:      compositor.New(width, height),
		e:      ecma48out.New(cd),
		cap:    cd,
		width:  width,
		height: height,
	}
}

func (o *Output) Compositor() *compositor.Compositor { return o.c }

// SetOptions replaces the rendering options; takes effect on the next
// Render.
func (o *Output) SetOptions(opts Options) { o.opts = opts }

// EnterFullScreen puts the host tty in raw mode and establishes the
// session-wide terminal state every frame then assumes: alternate screen,
// default rendition, autowrap off (this driver positions every cell
// explicitly), backarrow-sends-BS on, all mouse reporting off, host cursor
// hidden until the first frame places it. ExitFullScreen reverses the
// sequence; both are idempotent so a signal path may call them again
// safely.
func (o *Output) EnterFullScreen() error {
	if o.fullScreen {
		return nil
	}
	if err := o.t.Start(); err != nil {
		return err
	}
	o.e.DECPrivateMode(1049, true)
	o.e.SGRReset()
	o.e.DECPrivateMode(7, false) // DECAWM off
	if o.cap.UseDECPrivateMode {
		o.e.DECPrivateMode(67, true) // DECBKM
	}
	for _, mode := range []int{1000, 1002, 1003, 1006} {
		o.e.DECPrivateMode(mode, false)
	}
	o.e.DECTCEM(false)
	o.lastAttr, o.lastColours = 0, cellmodel.PairDefault
	o.haveCursor = false
	o.fullScreen = true
	o.c.TouchAll()
	return o.flush()
}

func (o *Output) ExitFullScreen() error {
	if !o.fullScreen {
		return nil
	}
	o.e.DECTCEM(true)
	o.e.SGRReset()
	o.e.DECPrivateMode(7, true)
	o.e.DECPrivateMode(1049, false)
	o.fullScreen = false
	if err := o.flush(); err != nil {
		return err
	}
	if err := o.t.Drain(); err != nil {
		return err
	}
	return o.t.Stop()
}

func (o *Output) flush() error {
	b := o.e.Bytes()
	if len(b) == 0 {
		return nil
	}
	_, err := o.t.Write(b)
	return err
}

// Resize reallocates the compositor for the new dimensions and forces a
// full repaint on the next Render.
func (o *Output) Resize(width, height int) {
	o.width, o.height = width, height
	o.c.Resize(width, height)
	o.haveCursor = false
}

// Render asks the compositor to diff its new buffer against cur, then
// writes every touched cell using write_changed_cells_to_output's
// three-tier strategy: trailing-blank runs collapse to an erase-to-EOL,
// repeated glyphs collapse to REP when the capability allows it, and
// everything else falls back to literal per-cell SGR+glyph output.
func (o *Output) Render() error {
	if !o.opts.SquareMode {
		o.c.TouchWidthShadows(uniclass.Width)
	}
	o.c.RepaintNewToCur()
	o.e.DECTCEM(false)
	for y := 0; y < o.height; y++ {
		o.renderRow(y)
	}
	o.placeCursor()
	sprite := o.c.CursorSprite()
	if sprite.Attribute&cellmodel.CursorVisible != 0 {
		o.e.CursorStyle(sprite.Glyph, sprite.Attribute&cellmodel.CursorBlink != 0)
		o.e.DECTCEM(true)
	}
	return o.flush()
}

func (o *Output) renderRow(y int) {
	x := 0
	for x < o.width {
		cell, touched := o.c.Cur(x, y)
		if !touched {
			x++
			continue
		}
		if o.isTrailingBlankRun(x, y) && !o.cap.FaultyInverseErase {
			o.gotoCell(x, y)
			o.writeAttr(cellmodel.Erased)
			o.e.EL(0)
			for ; x < o.width; x++ {
				o.c.Untouch(x, y)
			}
			return
		}
		run := o.repeatRun(x, y, cell)
		if run >= minREPRun && !o.cap.LacksREP && repeatable(cell, o.cap) {
			o.gotoCell(x, y)
			o.writeCell(cell, x, y)
			o.e.REP(run - 1)
			for i := 0; i < run; i++ {
				o.c.Untouch(x+i, y)
			}
			x += run
			o.cursorX += run
			continue
		}
		o.gotoCell(x, y)
		o.writeCell(cell, x, y)
		o.c.Untouch(x, y)
		o.cursorX++
		x++
	}
}

// repeatable reports whether REP may legally repeat this glyph on the host:
// non-BMP characters confuse hosts with the SP-REP fault, which repeat the
// replacement they drew instead of the glyph.
func repeatable(cell cellmodel.Cell, cd capability.Descriptor) bool {
	if cd.FaultySPREP {
		return uniclass.IsASCII(cell.Character)
	}
	return uniclass.IsBMP(cell.Character)
}

const minREPRun = 4

// isTrailingBlankRun reports whether every touched cell from (x,y) to the
// row's right edge is an erased blank, the condition under which an
// erase-to-EOL is strictly cheaper than writing each cell.
func (o *Output) isTrailingBlankRun(x, y int) bool {
	for cx := x; cx < o.width; cx++ {
		cell, touched := o.c.Cur(cx, y)
		if !touched {
			return false
		}
		if cell != cellmodel.Erased {
			return false
		}
	}
	return true
}

// repeatRun returns how many consecutive touched cells starting at (x,y)
// equal cell.
func (o *Output) repeatRun(x, y int, cell cellmodel.Cell) int {
	n := 0
	for cx := x; cx < o.width; cx++ {
		c, touched := o.c.Cur(cx, y)
		if !touched || c != cell {
			break
		}
		n++
	}
	return n
}

// gotoCell positions the host cursor, preferring short relative motions
// (CR for column zero, CUF/CUB/CUU/CUD for nearby cells) over a full CUP
// when the current position is known.
func (o *Output) gotoCell(x, y int) {
	defer func() { o.cursorX, o.cursorY, o.haveCursor = x, y, true }()
	if !o.haveCursor {
		o.e.GotoYX(y+1, x+1)
		return
	}
	if o.cursorX == x && o.cursorY == y {
		return
	}
	if o.cursorY == y {
		if x == 0 {
			o.e.WriteRune('\r')
			return
		}
		if d := x - o.cursorX; d > 0 && d <= 4 {
			o.e.CUF(d)
			return
		} else if d < 0 && d >= -4 {
			o.e.CUB(-d)
			return
		}
	}
	if o.cursorX == x {
		if d := y - o.cursorY; d > 0 && d <= 4 {
			o.e.CUD(d)
			return
		} else if d < 0 && d >= -4 {
			o.e.CUU(-d)
			return
		}
	}
	if x == 0 && y > o.cursorY && y-o.cursorY <= 6 {
		o.e.WriteRune('\r')
		for i := o.cursorY; i < y; i++ {
			o.e.WriteRune('\n')
		}
		return
	}
	o.e.GotoYX(y+1, x+1)
}

func (o *Output) writeCell(cell cellmodel.Cell, x, y int) {
	cell = o.fixup(cell, x, y)
	o.writeAttr(cell)
	o.e.WriteRune(cell.Character)
}

func (o *Output) writeAttr(cell cellmodel.Cell) {
	o.e.SGRAttr(o.lastAttr, cell.Attr, o.lastColours, cell.Colours)
	o.lastAttr, o.lastColours = cell.Attr, cell.Colours
}

// fixup rewrites a cell just before emission to compensate for host quirks
// and to overlay the whole-screen and sprite state that is not part of the
// cell itself: DECSCNM inversion, bold/faint rendered as brightness when
// configured, invisible text on hosts with no invisible attribute, the
// pointer glyph, and colour complementing under the software cursor.
func (o *Output) fixup(cell cellmodel.Cell, x, y int) cellmodel.Cell {
	if o.c.Flags()&cellmodel.FlagInverted != 0 {
		cell.Attr ^= cellmodel.Inverse
	}
	if o.opts.BoldAsColour && cell.Attr.Has(cellmodel.Bold) {
		cell.Attr &^= cellmodel.Bold
		if cell.Attr.Has(cellmodel.Inverse) {
			cell.Colours.Background = cell.Colours.Background.Brightened()
		} else {
			cell.Colours.Foreground = cell.Colours.Foreground.Brightened()
		}
	}
	if o.opts.FaintAsColour && cell.Attr.Has(cellmodel.Faint) {
		cell.Attr &^= cellmodel.Faint
		if cell.Attr.Has(cellmodel.Inverse) {
			cell.Colours.Background = cell.Colours.Background.Dimmed()
		} else {
			cell.Colours.Foreground = cell.Colours.Foreground.Dimmed()
		}
	}
	if o.cap.LacksInvisible && cell.Attr.Has(cellmodel.Invisible) {
		cell.Attr &^= cellmodel.Invisible
		cell.Colours.Foreground = cell.Colours.Background
	}
	if o.cap.LacksStrikeThrough {
		cell.Attr &^= cellmodel.StrikeThrough
	}
	if o.c.PointerSprite().Attribute&cellmodel.PointerVisible != 0 && o.c.IsPointer(x, y) {
		cell.Character = pointerGlyph
		cell.Attr ^= cellmodel.Inverse
	}
	if o.c.IsMarked(x, y) && o.c.CursorSprite().Attribute&cellmodel.CursorVisible != 0 && o.softwareCursor() {
		cell.Colours.Foreground = cell.Colours.Foreground.Complement()
		cell.Colours.Background = cell.Colours.Background.Complement()
	}
	return cell
}

// softwareCursor reports whether this output draws the cursor itself (by
// complementing the marked cell) instead of relying on the host cursor.
func (o *Output) softwareCursor() bool {
	return o.cap.CursorShapeCommand == capability.CursorShapeNone
}

func (o *Output) placeCursor() {
	x, y := o.c.CursorPos()
	o.gotoCell(x, y)
}

// ScrollOptimize asks the host to scroll the whole screen by n rows
// (positive scrolls content up via IND, negative down via RI) instead of
// rewriting every affected cell, then rotates the compositor's cur to
// match so only the newly-exposed rows remain touched. It reports whether
// the optimisation was applied; when the host lacks the needed control the
// caller simply lets the ordinary full diff repaint the moved rows.
func (o *Output) ScrollOptimize(n int) bool {
	if n == 0 {
		return true
	}
	if (n > 0 && o.cap.LacksIND) || (n < 0 && o.cap.LacksRI) {
		return false
	}
	o.e.SetScrollRegion(1, o.height)
	if n > 0 {
		o.gotoCell(0, o.height-1)
		for i := 0; i < n; i++ {
			o.e.IND()
		}
		o.c.ScrollUp(n)
	} else {
		o.gotoCell(0, 0)
		for i := 0; i < -n; i++ {
			o.e.RI()
		}
		o.c.ScrollDown(-n)
	}
	o.e.ResetScrollRegion(o.height)
	o.haveCursor = false
	return true
}
