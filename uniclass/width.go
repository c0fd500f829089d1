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

// Package uniclass holds the pure Unicode predicates shared by the producer
// (SoftTerm, deciding how many columns a glyph occupies) and the consumer
// (the compositor and output emitter, deciding how to lay cells out).
package uniclass

import (
	"unicode"

	"github.com/mattn/go-runewidth"
)

// IsOtherFormat reports whether r is in Unicode general category Cf.
func IsOtherFormat(r rune) bool { return unicode.Is(unicode.Cf, r) }

// IsOtherControl reports whether r is in Unicode general category Cc.
func IsOtherControl(r rune) bool { return unicode.Is(unicode.Cc, r) }

// IsOtherSurrogate reports whether r is in Unicode general category Cs.
func IsOtherSurrogate(r rune) bool { return unicode.Is(unicode.Cs, r) }

// IsMarkNonSpacing reports whether r is in Unicode general category Mn.
func IsMarkNonSpacing(r rune) bool { return unicode.Is(unicode.Mn, r) }

// IsMarkEnclosing reports whether r is in Unicode general category Me.
func IsMarkEnclosing(r rune) bool { return unicode.Is(unicode.Me, r) }

// IsBMP reports whether r fits in the Basic Multilingual Plane.
func IsBMP(r rune) bool { return r <= 0xFFFF }

// IsASCII reports whether r is a 7-bit code point.
func IsASCII(r rune) bool { return r <= 0x7F }

// softHyphen is U+00AD, explicitly zero-width in this model though several
// East Asian width tables treat it as narrow-but-printable.
const softHyphen = 0x00AD

// Hangul Jamo trailing consonants: these combine with a preceding syllable
// block rather than occupying their own column.
const (
	hangulJamoTrailingLo = 0x11A8
	hangulJamoTrailingHi = 0x11FF
)

// IsWideOrFull reports whether r is rendered in two columns: the East Asian
// Wide or Fullwidth categories.
func IsWideOrFull(r rune) bool {
	return runewidth.RuneWidth(r) == 2
}

// Width returns the column count (0, 1, or 2) a code point occupies on a
// character-cell display. Soft hyphen, trailing Hangul Jamo, and the
// Format/Surrogate/Control/Mark-non-spacing/Mark-enclosing categories are
// zero width; East Asian Wide/Fullwidth is two; everything else is one.
func Width(r rune) int {
	switch {
	case r == softHyphen:
		return 0
	case r >= hangulJamoTrailingLo && r <= hangulJamoTrailingHi:
		return 0
	case IsOtherFormat(r), IsOtherSurrogate(r), IsOtherControl(r):
		return 0
	case IsMarkNonSpacing(r), IsMarkEnclosing(r):
		return 0
	case IsWideOrFull(r):
		return 2
	default:
		return 1
	}
}
