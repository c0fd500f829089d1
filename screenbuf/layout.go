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

// Package screenbuf implements the persisted, shareable screen buffer: a
// little-endian byte layout a single producer (softterm) writes and any
// number of consumer realizers read, optionally through a memory-mapped
// file. Writes within a cell or to a scalar header field are allowed to be
// observed torn by a consumer; nothing here takes a lock for the
// producer's own writes, matching the single-writer assumption in the
// concurrency model.
package screenbuf

import (
	"encoding/binary"

	"github.com/vt48/term/cellmodel"
)

const (
	HeaderSize = 16
	CellSize   = 16
)

// Header mirrors the 16-byte on-disk header exactly: reserved[4]; width,
// height, cursor_x, cursor_y (u16 each); cursor_glyph (low nibble);
// cursor_attr (low nibble); pointer_attr (low nibble) | screen_flags<<4;
// reserved.
type Header struct {
	Width, Height      uint16
	CursorX, CursorY   uint16
	CursorGlyph        uint8
	CursorAttr         uint8
	PointerAttrAndFlag uint8
	_                  uint8
}

func (h Header) encode(b []byte) {
	_ = b[HeaderSize-1]
	binary.LittleEndian.PutUint32(b[0:4], 0)
	binary.LittleEndian.PutUint16(b[4:6], h.Width)
	binary.LittleEndian.PutUint16(b[6:8], h.Height)
	binary.LittleEndian.PutUint16(b[8:10], h.CursorX)
	binary.LittleEndian.PutUint16(b[10:12], h.CursorY)
	b[12] = h.CursorGlyph & 0x0F
	b[13] = h.CursorAttr & 0x0F
	b[14] = h.PointerAttrAndFlag
	b[15] = 0
}

func decodeHeader(b []byte) Header {
	_ = b[HeaderSize-1]
	return Header{
		Width:              binary.LittleEndian.Uint16(b[4:6]),
		Height:             binary.LittleEndian.Uint16(b[6:8]),
		CursorX:            binary.LittleEndian.Uint16(b[8:10]),
		CursorY:            binary.LittleEndian.Uint16(b[10:12]),
		CursorGlyph:        b[12] & 0x0F,
		CursorAttr:         b[13] & 0x0F,
		PointerAttrAndFlag: b[14],
	}
}

// encodeCell writes one 16-byte cell record: fg(a,r,g,b); bg(a,r,g,b);
// u32-LE character; u16-LE attributes; 2 bytes reserved.
func encodeCell(b []byte, c cellmodel.Cell) {
	_ = b[CellSize-1]
	fg, bg := c.Colours.Foreground, c.Colours.Background
	b[0], b[1], b[2], b[3] = uint8(fg.Alpha), fg.R, fg.G, fg.B
	b[4], b[5], b[6], b[7] = uint8(bg.Alpha), bg.R, bg.G, bg.B
	binary.LittleEndian.PutUint32(b[8:12], uint32(c.Character))
	binary.LittleEndian.PutUint16(b[12:14], uint16(c.Attr))
	b[14], b[15] = 0, 0
}

func decodeCell(b []byte) cellmodel.Cell {
	_ = b[CellSize-1]
	fg := cellmodel.Colour{Alpha: cellmodel.Alpha(b[0]), R: b[1], G: b[2], B: b[3]}
	bg := cellmodel.Colour{Alpha: cellmodel.Alpha(b[4]), R: b[5], G: b[6], B: b[7]}
	return cellmodel.Cell{
		Character: rune(binary.LittleEndian.Uint32(b[8:12])),
		Attr:      cellmodel.Attr(binary.LittleEndian.Uint16(b[12:14])),
		Colours:   cellmodel.Pair{Foreground: fg, Background: bg},
	}
}
