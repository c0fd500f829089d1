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

// Attr is the SGR rendering-attribute bitmask for a cell. The low eight
// bits are independent on/off flags; bits 8-11 hold one of eleven mutually
// exclusive underline styles rather than a separate flag per style.
type Attr uint16

const (
	Bold Attr = 1 << iota
	Italic
	Overline
	Blink
	Inverse
	StrikeThrough
	Invisible
	Faint
)

// UNDERLINES occupies bits 8-11; its value is one of the style constants
// below, not a bitmask to be OR'd with others.
const Underlines Attr = 15 << 8

const (
	SimpleUnderline    Attr = 1 << 8
	DoubleUnderline    Attr = 2 << 8
	CurlyUnderline     Attr = 3 << 8
	DottedUnderline    Attr = 4 << 8
	DashedUnderline    Attr = 5 << 8
	LDottedUnderline   Attr = 6 << 8
	LDashedUnderline   Attr = 7 << 8
	LCurlyUnderline    Attr = 8 << 8
	LLDottedUnderline  Attr = 9 << 8
	LLDashedUnderline  Attr = 10 << 8
)

const (
	Frame Attr = 1 << 12
	Encircle Attr = 1 << 13
)

// Underline reports the underline style encoded in the attribute, or 0 (no
// underline) if none is set.
func (a Attr) Underline() Attr {
	return a & Underlines
}

// WithUnderline returns a copy of a with its underline field replaced by
// style (which must already be one of the *Underline constants, or 0).
func (a Attr) WithUnderline(style Attr) Attr {
	return (a &^ Underlines) | (style & Underlines)
}

func (a Attr) Has(flag Attr) bool {
	return a&flag != 0
}
