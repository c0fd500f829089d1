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

package ecma48out

import (
	"fmt"
	"strings"

	"github.com/vt48/term/capability"
	"github.com/vt48/term/cellmodel"
)

// palette16/palette256 are precomputed once so SGRColour's nearest-match
// search does not recompute Map16Colour/Map256Colour per cell.
var palette16 = buildPalette(16)
var palette256 = buildPalette(256)

func buildPalette(n int) []cellmodel.Colour {
	p := make([]cellmodel.Colour, n)
	for i := range p {
		if n == 16 {
			p[i] = cellmodel.Map16Colour(uint8(i))
		} else {
			p[i] = cellmodel.Map256Colour(uint8(i))
		}
	}
	return p
}

// SGRAttr emits the minimal SGR sequence needed to move from prev to cur,
// matching the teacher's delta-emission style: a full reset only when no
// individual toggle would do, otherwise one parameter per changed bit.
func (e *Emitter) SGRAttr(prev, cur cellmodel.Attr, prevC, curC cellmodel.Pair) {
	var params []string

	if cur == 0 && prev != 0 {
		params = append(params, "0")
		prev = 0
	}

	toggle := func(flag cellmodel.Attr, on, off string) {
		if cur.Has(flag) && !prev.Has(flag) {
			params = append(params, on)
		} else if !cur.Has(flag) && prev.Has(flag) {
			params = append(params, off)
		}
	}
	toggle(cellmodel.Bold, "1", "22")
	toggle(cellmodel.Faint, "2", "22")
	toggle(cellmodel.Italic, "3", "23")
	toggle(cellmodel.Blink, "5", "25")
	toggle(cellmodel.Inverse, "7", "27")
	toggle(cellmodel.Invisible, "8", "28")
	toggle(cellmodel.StrikeThrough, "9", "29")
	if cur.Underline() != prev.Underline() {
		if cur.Underline() == 0 {
			params = append(params, "24")
		} else {
			params = append(params, fmt.Sprintf("4:%d", underlineSubParam(cur.Underline())))
		}
	}

	if curC.Foreground != prevC.Foreground {
		params = append(params, e.sgrColourParams(curC.Foreground, false)...)
	}
	if curC.Background != prevC.Background {
		params = append(params, e.sgrColourParams(curC.Background, true)...)
	}

	if len(params) == 0 {
		return
	}
	e.writeCSI(strings.Join(params, ";"), 'm')
}

func underlineSubParam(style cellmodel.Attr) int {
	switch style {
	case cellmodel.DoubleUnderline:
		return 2
	case cellmodel.CurlyUnderline:
		return 3
	case cellmodel.DottedUnderline:
		return 4
	case cellmodel.DashedUnderline:
		return 5
	default:
		return 1
	}
}

// sgrColourParams renders c as the best SGR parameter sequence the
// capability descriptor's colour level allows, downsampling true/256
// colours toward whatever the host actually supports. Grounded on
// ECMA48Output.cpp's colour-selection order: an ecma-16-provenance colour
// that exactly matches one of the eight standard colours takes the 30-37/
// 40-47 short form whenever the level is indexed or direct; an indexed-
// provenance colour that exists in the 256-colour palette takes the
// indexed form on a direct-colour host; everything else falls to the
// nearest colour at the level's ceiling.
func (e *Emitter) sgrColourParams(c cellmodel.Colour, background bool) []string {
	base := 30
	if background {
		base = 40
	}
	if e.cap.ColourLevel == capability.ColourNone {
		return nil
	}
	if c.IsDefaultOrErased() {
		if background {
			return []string{"49"}
		}
		return []string{"39"}
	}
	if c.Alpha == cellmodel.Alpha16 && e.cap.ColourLevel >= capability.Colour256Faulty {
		// only the standard eight: indices above 7 might erroneously end up
		// blinking or bold on hosts that fake the bright ramp.
		for i := 0; i < 8; i++ {
			if cellmodel.SquaredDistance(c, palette16[i]) == 0 {
				return []string{fmt.Sprintf("%d", base+i)}
			}
		}
	}
	if (c.Alpha == cellmodel.Alpha16 || c.Alpha == cellmodel.Alpha256) &&
		(e.cap.ColourLevel == capability.ColourDirectFaulty || e.cap.ColourLevel == capability.ColourDirectISO) {
		for i := 0; i < 256; i++ {
			if cellmodel.SquaredDistance(c, palette256[i]) == 0 {
				return e.indexedParams(base, i)
			}
		}
	}
	switch e.cap.ColourLevel {
	case capability.ColourECMA8:
		idx, _ := cellmodel.NearestIndexed(c, palette16[:8])
		return []string{fmt.Sprintf("%d", base+idx)}
	case capability.ColourECMA16:
		idx, _ := cellmodel.NearestIndexed(c, palette16)
		if idx < 8 {
			return []string{fmt.Sprintf("%d", base+idx)}
		}
		return []string{fmt.Sprintf("%d", base+60+idx-8)}
	case capability.Colour256Faulty, capability.Colour256ISO:
		return e.indexedParams(base, nearest256(c))
	case capability.ColourDirectFaulty:
		selector := base + 8
		return []string{fmt.Sprintf("%d", selector), "2", fmt.Sprintf("%d", c.R), fmt.Sprintf("%d", c.G), fmt.Sprintf("%d", c.B)}
	case capability.ColourDirectISO:
		selector := base + 8
		return []string{fmt.Sprintf("%d:2::%d:%d:%d", selector, c.R, c.G, c.B)}
	}
	return nil
}

// nearest256 picks the closest 256-palette index, biased toward the
// non-AIXTerm copies of the sixteen base colours (the cube and greyscale
// entries, which "colourschemes" rarely remap) unless the colour was an
// ecma-16 colour in the first place.
func nearest256(c cellmodel.Colour) int {
	preferStandard := c.Alpha == cellmodel.Alpha16
	best, bestD := 0, -1
	for i := 0; i < 256; i++ {
		d := cellmodel.SquaredDistance(c, palette256[i])
		if bestD < 0 || d < bestD || (!preferStandard && d == bestD) {
			best, bestD = i, d
			if preferStandard && d == 0 {
				break
			}
		}
	}
	return best
}

// indexedParams renders a 256-colour index in the colon or semicolon
// dialect the capability names.
func (e *Emitter) indexedParams(base, idx int) []string {
	selector := base + 8
	if e.cap.ColourLevel == capability.Colour256ISO || e.cap.ColourLevel == capability.ColourDirectISO {
		return []string{fmt.Sprintf("%d:5:%d", selector, idx)}
	}
	return []string{fmt.Sprintf("%d", selector), "5", fmt.Sprintf("%d", idx)}
}
