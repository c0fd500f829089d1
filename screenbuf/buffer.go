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

package screenbuf

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"

	"github.com/vt48/term/cellmodel"
)

// Buffer is the producer-side view of a screen buffer: an in-process byte
// region (backed either by a plain slice or an mmap'd file) laid out per
// layout.go, mutated only through the narrow API below. SoftTerm is the
// only writer; any number of realizers may read concurrently without
// coordinating with it.
type Buffer struct {
	mem    []byte // the mapped or allocated region
	mapped bool
	file   *os.File

	width, height int
}

// New allocates an in-memory buffer (no backing file), useful for tests and
// for an embedded producer/consumer pair in a single process.
func New(width, height int) *Buffer {
	b := &Buffer{width: width, height: height}
	b.mem = make([]byte, HeaderSize+width*height*CellSize)
	b.SetSize(width, height)
	return b
}

// OpenMapped creates (or truncates) path to the right size and mmaps it,
// for sharing with out-of-process realizers.
func OpenMapped(path string, width, height int) (*Buffer, error) {
	size := HeaderSize + width*height*CellSize
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0o600)
	if err != nil {
		return nil, fmt.Errorf("screenbuf: open %s: %w", path, err)
	}
	if err := f.Truncate(int64(size)); err != nil {
		f.Close()
		return nil, fmt.Errorf("screenbuf: truncate %s: %w", path, err)
	}
	mem, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("screenbuf: mmap %s: %w", path, err)
	}
	b := &Buffer{mem: mem, mapped: true, file: f, width: width, height: height}
	b.SetSize(width, height)
	return b, nil
}

// OpenExisting maps a buffer file some other process created, at the
// geometry its header records, without truncating or resizing anything:
// the producer owns the file's geometry, a consumer only observes it.
func OpenExisting(path string) (*Buffer, error) {
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("screenbuf: open %s: %w", path, err)
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("screenbuf: stat %s: %w", path, err)
	}
	size := int(st.Size())
	if size < HeaderSize {
		f.Close()
		return nil, fmt.Errorf("screenbuf: %s: short file", path)
	}
	mem, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("screenbuf: mmap %s: %w", path, err)
	}
	h := decodeHeader(mem)
	width, height := int(h.Width), int(h.Height)
	if width < 1 || height < 1 || HeaderSize+width*height*CellSize > size {
		unix.Munmap(mem)
		f.Close()
		return nil, fmt.Errorf("screenbuf: %s: header claims %dx%d, beyond the file", path, width, height)
	}
	return &Buffer{mem: mem, mapped: true, file: f, width: width, height: height}, nil
}

// Stale reports whether the header's geometry no longer matches the
// mapping, meaning the producer has resized and the consumer must reopen.
// A torn header read at worst reports stale one tick early; the follow-up
// notification resolves it.
func (b *Buffer) Stale() bool {
	h := b.header()
	return int(h.Width) != b.width || int(h.Height) != b.height
}

// Close unmaps and closes the backing file, if any.
func (b *Buffer) Close() error {
	if !b.mapped {
		return nil
	}
	err := unix.Munmap(b.mem)
	cerr := b.file.Close()
	if err != nil {
		return err
	}
	return cerr
}

func (b *Buffer) Size() (width, height int) { return b.width, b.height }

// File returns the backing file of a mapped buffer, or nil for a purely
// in-memory one; snapshot readers use it to take the advisory lock.
func (b *Buffer) File() *os.File {
	if !b.mapped {
		return nil
	}
	return b.file
}

func (b *Buffer) header() Header { return decodeHeader(b.mem) }

func (b *Buffer) setHeader(h Header) { h.encode(b.mem) }

func (b *Buffer) cellOffset(x, y int) int {
	return HeaderSize + (y*b.width+x)*CellSize
}

// inBounds clamps (x,y) to the buffer's rectangle, matching the spec's
// policy that impossible coordinates are clamped rather than rejected.
func (b *Buffer) inBounds(x, y int) (int, int) {
	if x < 0 {
		x = 0
	}
	if x >= b.width {
		x = b.width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= b.height {
		y = b.height - 1
	}
	return x, y
}

// SetSize reallocates the buffer to width x height, preserving as much of
// the previous content (row by row, from the top-left) as the new
// dimensions allow and filling any newly exposed cells with Erased. A
// mapped buffer's backing file is truncated and remapped, so consumers
// observe the geometry change through the header and reopen; if the
// remapping fails the buffer degrades to a private in-memory copy rather
// than failing the resize.
func (b *Buffer) SetSize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	newSize := HeaderSize + width*height*CellSize

	// snapshot the old content before touching the mapping: accessing a
	// shrunken mapping after truncation would fault.
	h := Header{}
	if len(b.mem) >= HeaderSize {
		h = b.header()
	}
	oldW, oldH := b.width, b.height
	old := append([]byte(nil), b.mem...)

	var newMem []byte
	if b.mapped {
		_ = unix.Munmap(b.mem)
		if err := b.file.Truncate(int64(newSize)); err == nil {
			if m, merr := unix.Mmap(int(b.file.Fd()), 0, newSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED); merr == nil {
				newMem = m
			}
		}
		if newMem == nil {
			b.mapped = false
			b.file.Close()
			b.file = nil
		}
	}
	if newMem == nil {
		newMem = make([]byte, newSize)
	}

	h.Width, h.Height = uint16(width), uint16(height)
	if int(h.CursorX) >= width {
		h.CursorX = uint16(width - 1)
	}
	if int(h.CursorY) >= height {
		h.CursorY = uint16(height - 1)
	}
	h.encode(newMem)

	b.mem = newMem
	b.width, b.height = width, height
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			var c cellmodel.Cell = cellmodel.Erased
			if x < oldW && y < oldH && len(old) >= HeaderSize+((y*oldW+x)+1)*CellSize {
				off := HeaderSize + (y*oldW+x)*CellSize
				c = decodeCell(old[off : off+CellSize])
			}
			encodeCell(b.mem[b.cellOffset(x, y):], c)
		}
	}
}

// ReadCell returns the cell at (x,y), clamped to bounds.
func (b *Buffer) ReadCell(x, y int) cellmodel.Cell {
	x, y = b.inBounds(x, y)
	off := b.cellOffset(x, y)
	return decodeCell(b.mem[off : off+CellSize])
}

// WriteNCells fills n cells starting at (x,y), row-major, wrapping to
// subsequent rows, with c.
func (b *Buffer) WriteNCells(x, y, n int, c cellmodel.Cell) {
	for i := 0; i < n; i++ {
		cx, cy := x+i, y
		for cx >= b.width {
			cx -= b.width
			cy++
		}
		if cy >= b.height {
			return
		}
		encodeCell(b.mem[b.cellOffset(cx, cy):], c)
	}
}

// CopyNCells moves n cells from (srcX,srcY) to (dstX,dstY), both row-major
// runs, correctly handling overlap.
func (b *Buffer) CopyNCells(dstX, dstY, srcX, srcY, n int) {
	cells := make([]cellmodel.Cell, 0, n)
	cx, cy := srcX, srcY
	for i := 0; i < n; i++ {
		if cy >= b.height {
			cells = append(cells, cellmodel.Erased)
			continue
		}
		cells = append(cells, b.ReadCell(cx, cy))
		cx++
		for cx >= b.width {
			cx -= b.width
			cy++
		}
	}
	cx, cy = dstX, dstY
	for _, c := range cells {
		if cy >= b.height {
			return
		}
		encodeCell(b.mem[b.cellOffset(cx, cy):], c)
		cx++
		for cx >= b.width {
			cx -= b.width
			cy++
		}
	}
}

// clampRange bounds a [top,bottom)x[left,right) request to the buffer's
// rectangle; a caller handing over a degenerate region must not be able to
// reach a negative cell offset.
func (b *Buffer) clampRange(top, bottom, left, right int) (int, int, int, int) {
	if top < 0 {
		top = 0
	}
	if bottom > b.height {
		bottom = b.height
	}
	if left < 0 {
		left = 0
	}
	if right > b.width {
		right = b.width
	}
	return top, bottom, left, right
}

// ScrollUp shifts rows [top, bottom) up by n within columns [left, right),
// filling vacated rows at the bottom with fill.
func (b *Buffer) ScrollUp(top, bottom, left, right, n int, fill cellmodel.Cell) {
	top, bottom, left, right = b.clampRange(top, bottom, left, right)
	if n <= 0 {
		return
	}
	for y := top; y < bottom; y++ {
		srcY := y + n
		for x := left; x < right; x++ {
			var c cellmodel.Cell
			if srcY < bottom {
				c = b.ReadCell(x, srcY)
			} else {
				c = fill
			}
			encodeCell(b.mem[b.cellOffset(x, y):], c)
		}
	}
}

// ScrollDown shifts rows [top, bottom) down by n within columns [left,
// right), filling vacated rows at the top with fill.
func (b *Buffer) ScrollDown(top, bottom, left, right, n int, fill cellmodel.Cell) {
	top, bottom, left, right = b.clampRange(top, bottom, left, right)
	if n <= 0 {
		return
	}
	for y := bottom - 1; y >= top; y-- {
		srcY := y - n
		for x := left; x < right; x++ {
			var c cellmodel.Cell
			if srcY >= top {
				c = b.ReadCell(x, srcY)
			} else {
				c = fill
			}
			encodeCell(b.mem[b.cellOffset(x, y):], c)
		}
	}
}

// ModifyNCells rewrites n cells starting at (x,y) using f, which receives
// the existing cell and returns the replacement; this is the
// attribute-preserving rewrite ChangeAreaAttributes needs.
func (b *Buffer) ModifyNCells(x, y, n int, f func(cellmodel.Cell) cellmodel.Cell) {
	cx, cy := x, y
	for i := 0; i < n; i++ {
		if cy >= b.height {
			return
		}
		encodeCell(b.mem[b.cellOffset(cx, cy):], f(b.ReadCell(cx, cy)))
		cx++
		for cx >= b.width {
			cx -= b.width
			cy++
		}
	}
}

func (b *Buffer) SetCursorPos(x, y int) {
	h := b.header()
	x, y = b.inBounds(x, y)
	h.CursorX, h.CursorY = uint16(x), uint16(y)
	b.setHeader(h)
}

func (b *Buffer) SetCursorType(glyph cellmodel.CursorGlyph, attr cellmodel.CursorAttr) {
	h := b.header()
	h.CursorGlyph = uint8(glyph) & 0x0F
	h.CursorAttr = uint8(attr) & 0x0F
	b.setHeader(h)
}

func (b *Buffer) SetPointerType(attr cellmodel.PointerAttr) {
	h := b.header()
	h.PointerAttrAndFlag = (h.PointerAttrAndFlag & 0xF0) | (uint8(attr) & 0x0F)
	b.setHeader(h)
}

func (b *Buffer) SetScreenFlags(flags cellmodel.ScreenFlags) {
	h := b.header()
	h.PointerAttrAndFlag = (h.PointerAttrAndFlag & 0x0F) | (uint8(flags) << 4)
	b.setHeader(h)
}

func (b *Buffer) CursorPos() (x, y int) {
	h := b.header()
	return int(h.CursorX), int(h.CursorY)
}

func (b *Buffer) CursorType() (cellmodel.CursorGlyph, cellmodel.CursorAttr) {
	h := b.header()
	return cellmodel.CursorGlyph(h.CursorGlyph), cellmodel.CursorAttr(h.CursorAttr)
}

func (b *Buffer) PointerType() cellmodel.PointerAttr {
	return cellmodel.PointerAttr(b.header().PointerAttrAndFlag & 0x0F)
}

func (b *Buffer) ScreenFlags() cellmodel.ScreenFlags {
	return cellmodel.ScreenFlags(b.header().PointerAttrAndFlag >> 4)
}

// AltBuffer is a second Buffer of identical size swapped in for SetAltBuffer.
type AltBuffer struct {
	primary, alt *Buffer
	onAlt        bool
}

// NewAltBuffer wraps primary with a freshly allocated shadow buffer of the
// same dimensions.
func NewAltBuffer(primary *Buffer) *AltBuffer {
	w, h := primary.Size()
	return &AltBuffer{primary: primary, alt: New(w, h)}
}

// SetAltBuffer swaps which buffer is "active"; the primary buffer's
// contents are preserved untouched while the alt buffer is active, so that
// restoring primary reproduces it byte-for-byte.
func (ab *AltBuffer) SetAltBuffer(on bool) { ab.onAlt = on }

// SetSize resizes both buffers together, so that a later swap never exposes
// a stale geometry.
func (ab *AltBuffer) SetSize(width, height int) {
	ab.primary.SetSize(width, height)
	ab.alt.SetSize(width, height)
}

func (ab *AltBuffer) Active() *Buffer {
	if ab.onAlt {
		return ab.alt
	}
	return ab.primary
}
