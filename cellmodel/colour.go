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

// Package cellmodel defines the value types shared by every layer of the
// terminal engine: the colour quadruple, the attribute bitmask, the
// character cell, and the small cursor/pointer sprite records that travel
// alongside a cell in the shared screen buffer.
package cellmodel

// Alpha tags the provenance of a Colour, not its transparency. It tells a
// renderer which colour space the RGB triple was chosen from, so that a
// downstream capability-limited emitter knows how it is allowed to
// downsample the colour.
type Alpha uint8

const (
	AlphaErased  Alpha = 0
	AlphaDefault Alpha = 1
	Alpha16      Alpha = 2
	Alpha256     Alpha = 3
	AlphaTrue    Alpha = 4
	AlphaMouse   Alpha = 31
)

// Colour is a four-component colour value: an Alpha provenance tag plus an
// 8-bit RGB triple. The zero Colour is erased-black.
type Colour struct {
	Alpha      Alpha
	R, G, B    uint8
}

// Indexed ECMA-48 colour numbers, as used by SGR 30-37/40-47/90-97/100-107
// and by Map16Colour/Map256Colour.
const (
	ColourBlack = iota
	ColourRed
	ColourGreen
	ColourYellow
	ColourBlue
	ColourMagenta
	ColourCyan
	ColourWhite
)

// Conventional, non-ECMA-48-standard indices into the xterm 256-colour
// palette for a few named colours.
const (
	ColourDarkViolet  = 92
	ColourDarkOrange1 = 64
	ColourDarkOrange3 = 130
	ColourLightOrange = 0xD6
	ColourLightCyan   = 50
)

var (
	ErasedForeground  = Colour{AlphaErased, 0xC0, 0xC0, 0xC0}
	ErasedBackground  = Colour{AlphaErased, 0, 0, 0}
	DefaultForeground = Colour{AlphaDefault, 0xC0, 0xC0, 0xC0}
	DefaultBackground = Colour{AlphaDefault, 0, 0, 0}
	dimErasedForeground    = Colour{AlphaErased, 0x80, 0x80, 0x80}
	brightErasedBackground = Colour{AlphaErased, 0x40, 0x40, 0x40}

	// Impossible is never equal to any real colour; it is used to force a
	// full repaint of a cell whose previous colour is unknown.
	Impossible = Colour{Alpha(0xFF), 0, 0, 0}
)

// Pair is a foreground/background colour pair, the unit SGR colour
// selectors operate on.
type Pair struct {
	Foreground, Background Colour
}

var (
	PairImpossible  = Pair{Impossible, Impossible}
	PairDefault     = Pair{DefaultForeground, DefaultBackground}
	PairErased      = Pair{dimErasedForeground, brightErasedBackground}
	PairWhiteOnBlack = Pair{Map256Colour(ColourWhite), Map256Colour(ColourBlack)}
)

// Dim darkens a single colour component, used for SGR faint rendering on
// backends with no native faint attribute.
func Dim(c uint8) uint8 {
	if c > 0x40 {
		return c - 0x40
	}
	return 0
}

// Bright lightens a single colour component, used for SGR bold-as-colour
// rendering on backends with no native bold attribute.
func Bright(c uint8) uint8 {
	if c < 0xC0 {
		return c + 0x40
	}
	return 0xFF
}

func (c Colour) Dimmed() Colour {
	c.R, c.G, c.B = Dim(c.R), Dim(c.G), Dim(c.B)
	return c
}

func (c Colour) Brightened() Colour {
	c.R, c.G, c.B = Bright(c.R), Bright(c.G), Bright(c.B)
	return c
}

func (c Colour) Complement() Colour {
	c.R, c.G, c.B = ^c.R, ^c.G, ^c.B
	return c
}

func (c Colour) IsDefaultOrErased() bool {
	return c.Alpha == AlphaErased || c.Alpha == AlphaDefault
}

func (c Colour) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// Map16Colour maps an ECMA-48/AIXTerm indexed colour (0-15, wrapping modulo
// 16) to RGB. Index 7 (dark white) is rendered as a 0xBF grey, brighter
// than the 127 level of the other dark colours, and index 8 (bright black)
// shares that same grey; index 4 (dark blue) is rendered as Web Indigo
// rather than pure blue, matching the long-standing terminal convention
// this engine reproduces rather than "fixes".
func Map16Colour(c uint8) Colour {
	c %= 16
	switch {
	case c == 7 || c == 8:
		return Colour{Alpha16, 0xBF, 0xBF, 0xBF}
	case c == 4:
		return Colour{Alpha16, 0x4B, 0x00, 0x82}
	default:
		h := uint8(127)
		if c&8 != 0 {
			h = 255
		}
		var r, g, b uint8
		if c&1 != 0 {
			r = h
		}
		if c&2 != 0 {
			g = h
		}
		if c&4 != 0 {
			b = h
		}
		return Colour{Alpha16, r, g, b}
	}
}

// Map256Colour maps an xterm 256-colour palette index to RGB: the first 16
// entries alias Map16Colour, the next 216 form a 6x6x6 colour cube with
// breakpoints {0, 95, 135, 175, 215, 255}, and the final 24 form a greyscale
// ramp from 0x08 to 0xEE in steps of 10.
func Map256Colour(c uint8) Colour {
	switch {
	case c < 16:
		r := Map16Colour(c)
		r.Alpha = Alpha256
		return r
	case c < 232:
		c -= 16
		b, g, r := c%6, (c/6)%6, c/36
		if r > 0 {
			r = r*40 + 55
		}
		if g > 0 {
			g = g*40 + 55
		}
		if b > 0 {
			b = b*40 + 55
		}
		return Colour{Alpha256, r, g, b}
	default:
		c -= 232
		v := c*10 + 8
		return Colour{Alpha256, v, v, v}
	}
}

// MapTrueColour wraps an arbitrary 24-bit RGB triple as a true-colour Colour.
func MapTrueColour(r, g, b uint8) Colour {
	return Colour{AlphaTrue, r, g, b}
}

// SquaredDistance is the exact nearest-colour metric this engine uses for
// palette downsampling: the sum of squared differences of all four
// components, alpha included. It is deliberately not a perceptual metric
// (no CIE Lab conversion) so that downsampling results are reproducible
// from the raw component values alone.
func SquaredDistance(a, b Colour) int {
	da := int(a.Alpha) - int(b.Alpha)
	dr := int(a.R) - int(b.R)
	dg := int(a.G) - int(b.G)
	db := int(a.B) - int(b.B)
	return da*da + dr*dr + dg*dg + db*db
}

// NearestIndexed returns the index into palette whose Colour minimises
// SquaredDistance to target, and that distance.
func NearestIndexed(target Colour, palette []Colour) (index int, distance int) {
	best := -1
	bestD := 0
	for i, p := range palette {
		d := SquaredDistance(target, p)
		if best < 0 || d < bestD {
			best, bestD = i, d
		}
	}
	return best, bestD
}
