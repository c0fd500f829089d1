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

package cellmodel

// Cell is the atomic unit of screen content: one displayed character (which
// may be a single combined grapheme), its rendering attributes, and its
// colour pair. It is a flat value type, not a hierarchy, so that it can be
// copied, diffed, and laid out as fixed-size records in the shared screen
// buffer without any virtual dispatch.
type Cell struct {
	Character rune
	Attr      Attr
	Colours   Pair
}

// Erased is the cell value that fills freshly cleared screen regions.
var Erased = Cell{Character: ' ', Colours: PairErased}

// Blank is a space with no attributes in the default colour pair. Freshly
// cleared regions use Erased instead.
var Blank = Cell{Character: ' ', Colours: PairDefault}

// CursorSprite describes how the terminal cursor is to be rendered. It is
// logically overlaid on top of whatever Cell sits at the cursor position.
type CursorSprite struct {
	Attribute CursorAttr
	Glyph     CursorGlyph
}

type CursorAttr uint8

const (
	CursorVisible CursorAttr = 1 << iota
	CursorBlink
)

// CursorGlyph selects which cursor shape family a realizer should draw;
// mapping a glyph to an actual host escape sequence is the
// CapabilityDescriptor's job, not this package's.
type CursorGlyph uint8

const (
	CursorUnderline CursorGlyph = iota
	CursorBar
	CursorBox
	CursorBlock
	CursorStar
	CursorUnderOver
	CursorMirrorL
)

// PointerSprite describes how a mouse pointer is to be rendered, on
// backends that overlay one onto the screen buffer rather than relying on
// the host's own pointer.
type PointerSprite struct {
	Attribute PointerAttr
}

type PointerAttr uint8

const PointerVisible PointerAttr = 1 << 0

// ScreenFlags carries whole-screen rendering state that is not per-cell,
// such as DEC screen-reverse-video (DECSCNM).
type ScreenFlags uint8

const FlagInverted ScreenFlags = 1 << 0
