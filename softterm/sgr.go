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

// SetAttributes (SGR) walks each semicolon-separated parameter, applying
// its effect to the running attribute/colour state. 38/48 colour selectors
// take their payload from the parameter's own sub-arguments in the ISO
// 8613-6 colon form, and fold the following parameters in through
// CollapseArgsToSubArgs in the historically common semicolon form, so that
// both forms are accepted identically.
func (t *Terminal) SetAttributes(args ecma48.ArgVector) {
	if len(args) == 0 {
		t.resetAttributes()
		return
	}
	for i := 0; i < len(args); i++ {
		code := 0
		if len(args[i]) > 0 {
			code = args[i][0]
		}
		switch {
		case code == 0:
			t.resetAttributes()
		case code == 1:
			t.attr |= cellmodel.Bold
		case code == 2:
			t.attr |= cellmodel.Faint
		case code == 3:
			t.attr |= cellmodel.Italic
		case code == 4:
			style := cellmodel.SimpleUnderline
			if len(args[i]) > 1 {
				style = underlineStyleFromSubParam(args[i][1])
			}
			t.attr = t.attr.WithUnderline(style)
		case code == 5 || code == 6:
			t.attr |= cellmodel.Blink
		case code == 7:
			t.attr |= cellmodel.Inverse
		case code == 8:
			t.attr |= cellmodel.Invisible
		case code == 9:
			t.attr |= cellmodel.StrikeThrough
		case code == 21:
			t.attr = t.attr.WithUnderline(cellmodel.DoubleUnderline)
		case code == 22:
			t.attr &^= cellmodel.Bold | cellmodel.Faint
		case code == 23:
			t.attr &^= cellmodel.Italic
		case code == 24:
			t.attr = t.attr.WithUnderline(0)
		case code == 25:
			t.attr &^= cellmodel.Blink
		case code == 27:
			t.attr &^= cellmodel.Inverse
		case code == 28:
			t.attr &^= cellmodel.Invisible
		case code == 29:
			t.attr &^= cellmodel.StrikeThrough
		case code == 51:
			t.attr |= cellmodel.Frame
		case code == 52:
			t.attr |= cellmodel.Encircle
		case code == 53:
			t.attr |= cellmodel.Overline
		case code == 54:
			t.attr &^= cellmodel.Frame | cellmodel.Encircle
		case code == 55:
			t.attr &^= cellmodel.Overline
		case code >= 30 && code <= 37:
			t.colours.Foreground = cellmodel.Map16Colour(uint8(code - 30))
		case code == 38, code == 48:
			var sub []int
			if len(args[i]) > 1 {
				// ISO 8613-6 colon form: the whole selector is one parameter
				// and the sub-arguments after the 38/48 are the payload.
				sub = args[i][1:]
			} else {
				// historical semicolon form: the payload is spread over the
				// following parameters; fold them away so the loop does not
				// re-interpret 5/2/r/g/b as independent SGR codes.
				var rest ecma48.ArgVector
				sub, rest = ecma48.CollapseArgsToSubArgs(args, i+1)
				args = append(append(ecma48.ArgVector{}, rest[:i]...), rest[i+1:]...)
				i--
			}
			if col, ok := colourFromSubArgs(sub); ok {
				if code == 38 {
					t.colours.Foreground = col
				} else {
					t.colours.Background = col
				}
			}
		case code == 39:
			t.colours.Foreground = cellmodel.DefaultForeground
		case code >= 40 && code <= 47:
			t.colours.Background = cellmodel.Map16Colour(uint8(code - 40))
		case code == 49:
			t.colours.Background = cellmodel.DefaultBackground
		case code >= 90 && code <= 97:
			t.colours.Foreground = cellmodel.Map16Colour(uint8(code - 90 + 8))
		case code >= 100 && code <= 107:
			t.colours.Background = cellmodel.Map16Colour(uint8(code - 100 + 8))
		}
	}
}

func underlineStyleFromSubParam(n int) cellmodel.Attr {
	switch n {
	case 0:
		return 0
	case 2:
		return cellmodel.DoubleUnderline
	case 3:
		return cellmodel.CurlyUnderline
	case 4:
		return cellmodel.DottedUnderline
	case 5:
		return cellmodel.DashedUnderline
	default:
		return cellmodel.SimpleUnderline
	}
}

// colourFromSubArgs interprets a collapsed 38/48 payload: {5, idx} selects
// a 256-colour index, {2, r, g, b} or {2, cs, r, g, b} a true colour
// (accepting both the 5-slot standard form and the common form that omits
// the colour-space slot, by taking the trailing three values). An
// unrecognised or incomplete payload reports false, and the caller leaves
// the colour untouched, per the silently-ignore-malformed policy.
func colourFromSubArgs(sub []int) (cellmodel.Colour, bool) {
	if len(sub) == 0 {
		return cellmodel.Colour{}, false
	}
	switch sub[0] {
	case 5:
		if len(sub) > 1 {
			return cellmodel.Map256Colour(uint8(sub[1])), true
		}
	case 2:
		if len(sub) >= 4 {
			r, g, b := sub[len(sub)-3], sub[len(sub)-2], sub[len(sub)-1]
			return cellmodel.MapTrueColour(uint8(r), uint8(g), uint8(b)), true
		}
	}
	return cellmodel.Colour{}, false
}

func (t *Terminal) resetAttributes() {
	t.attr = 0
	t.colours = cellmodel.PairDefault
}

// SaveAttributes/RestoreAttributes stash the SGR state in a slot of its own,
// separate from the cursor record; saveCursor and restoreCursor (DECSC/
// DECRC) call them.
func (t *Terminal) SaveAttributes() {
	t.savedAttr, t.savedColours = t.attr, t.colours
}

func (t *Terminal) RestoreAttributes() {
	t.attr, t.colours = t.savedAttr, t.savedColours
}

// sgrAreaChanges interprets args[from:] as the SGR subset DECCARA accepts,
// folding it into a turn-off mask, a flip-on mask, and optional replacement
// colours rather than mutating the terminal's own SGR state.
func sgrAreaChanges(args ecma48.ArgVector, from int) (turnOff, flipOn cellmodel.Attr, fg, bg *cellmodel.Colour) {
	for i := from; i < len(args); i++ {
		code := 0
		if len(args[i]) > 0 {
			code = args[i][0]
		}
		switch {
		case code == 0:
			turnOff = ^cellmodel.Attr(0)
			flipOn = 0
			fg, bg = nil, nil
		case code == 1:
			flipOn |= cellmodel.Bold
		case code == 4:
			turnOff |= cellmodel.Underlines
			flipOn = flipOn.WithUnderline(cellmodel.SimpleUnderline)
		case code == 5:
			flipOn |= cellmodel.Blink
		case code == 7:
			flipOn |= cellmodel.Inverse
		case code == 8:
			flipOn |= cellmodel.Invisible
		case code == 22:
			turnOff |= cellmodel.Bold | cellmodel.Faint
		case code == 24:
			turnOff |= cellmodel.Underlines
		case code == 25:
			turnOff |= cellmodel.Blink
		case code == 27:
			turnOff |= cellmodel.Inverse
		case code == 28:
			turnOff |= cellmodel.Invisible
		case code >= 30 && code <= 37:
			c := cellmodel.Map16Colour(uint8(code - 30))
			fg = &c
		case code == 39:
			c := cellmodel.DefaultForeground
			fg = &c
		case code >= 40 && code <= 47:
			c := cellmodel.Map16Colour(uint8(code - 40))
			bg = &c
		case code == 49:
			c := cellmodel.DefaultBackground
			bg = &c
		case code >= 90 && code <= 97:
			c := cellmodel.Map16Colour(uint8(code - 90 + 8))
			fg = &c
		case code >= 100 && code <= 107:
			c := cellmodel.Map16Colour(uint8(code - 100 + 8))
			bg = &c
		}
	}
	return turnOff, flipOn, fg, bg
}

// SetSCOAttributes (SCOSGR, CSI x) selects colours through the 256-colour
// palette with an initial subcommand parameter: 0 resets both colours, 1
// sets the background, 2 the foreground.
func (t *Terminal) SetSCOAttributes(args ecma48.ArgVector) {
	if args.QueryArgCount() < 1 {
		return
	}
	switch args.GetArgZeroIfEmpty(0, 0) {
	case 0:
		t.colours = cellmodel.PairDefault
	case 1:
		if args.QueryArgCount() > 1 {
			t.colours.Background = cellmodel.Map256Colour(uint8(args.GetArgZeroIfEmpty(1, 0) % 256))
		}
	case 2:
		if args.QueryArgCount() > 1 {
			t.colours.Foreground = cellmodel.Map256Colour(uint8(args.GetArgZeroIfEmpty(1, 0) % 256))
		}
	}
}
