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

package uniclass

import (
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CombineUnicode implements NFC-style pairwise composition limited to
// precomposed-character pairs: base followed by combining is composed only
// when doing so collapses the two runes into exactly one. It returns the
// composed rune and true on success, or base and false when the pair does
// not compose (the caller should then try the peculiar-non-combiner or
// dead-key tables, or simply fail to combine).
func CombineUnicode(base, combining rune) (rune, bool) {
	var buf [8]byte
	n := 0
	n += copy(buf[n:], string(base))
	n += copy(buf[n:], string(combining))
	composed := norm.NFC.String(string(buf[:n]))
	runes := []rune(composed)
	if len(runes) == 1 && runes[0] != base {
		return runes[0], true
	}
	return base, false
}

// combinePeculiarNonCombiners maps a combining mark to the "peculiar"
// spacing character that renders the same glyph standalone. A terminal
// needs this when a combining mark is sitting alone in a cell and the next
// printable refuses to compose with it: the mark is downgraded to its
// spacing clone so it keeps its own column.
var combinePeculiarNonCombiners = map[rune]rune{
	0x0300: 0x0060, // combining grave -> grave accent
	0x0301: 0x00B4, // combining acute -> acute accent
	0x0302: 0x005E, // combining circumflex -> circumflex accent
	0x0303: 0x007E, // combining tilde -> tilde
	0x0304: 0x00AF, // combining macron -> macron
	0x0306: 0x02D8, // combining breve -> breve
	0x0307: 0x02D9, // combining dot above -> dot above
	0x0308: 0x00A8, // combining diaeresis -> diaeresis
	0x030A: 0x02DA, // combining ring above -> ring above
	0x030B: 0x02DD, // combining double acute -> double acute accent
	0x030C: 0x02C7, // combining caron -> caron
	0x0327: 0x00B8, // combining cedilla -> cedilla
	0x0328: 0x02DB, // combining ogonek -> ogonek
}

// CombinePeculiarNonCombiner returns the spacing clone of a combining
// mark, if it has one.
func CombinePeculiarNonCombiner(mark rune) (rune, bool) {
	r, ok := combinePeculiarNonCombiners[mark]
	return r, ok
}

// combineDeadKeys implements the ISO 9995-3 dead-key + letter pairs used by
// keyboard input (as distinct from CombineUnicode, which composes
// already-typed code points). Keyed the same way for symmetry with the
// peculiar-non-combiner table.
var combineDeadKeys = map[[2]rune]rune{
	{0x02CB, 'a'}: 'à', {0x02CB, 'e'}: 'è', {0x02CB, 'i'}: 'ì', {0x02CB, 'o'}: 'ò', {0x02CB, 'u'}: 'ù', // grave
	{0x02CA, 'a'}: 'á', {0x02CA, 'e'}: 'é', {0x02CA, 'i'}: 'í', {0x02CA, 'o'}: 'ó', {0x02CA, 'u'}: 'ú', // acute
	{0x02C6, 'a'}: 'â', {0x02C6, 'e'}: 'ê', {0x02C6, 'i'}: 'î', {0x02C6, 'o'}: 'ô', {0x02C6, 'u'}: 'û', // circumflex
	{0x02DC, 'a'}: 'ã', {0x02DC, 'n'}: 'ñ', {0x02DC, 'o'}: 'õ', // tilde
	{0x00A8, 'a'}: 'ä', {0x00A8, 'e'}: 'ë', {0x00A8, 'i'}: 'ï', {0x00A8, 'o'}: 'ö', {0x00A8, 'u'}: 'ü', // diaeresis
}

// CombineDeadKey looks up the ISO 9995-3 dead-key table.
func CombineDeadKey(dead, letter rune) (rune, bool) {
	r, ok := combineDeadKeys[[2]rune{dead, letter}]
	return r, ok
}

// LowerCombiningClass reports whether a sorts before b under the Unicode
// canonical combining class, falling back to code point order when the
// classes are equal. This gives SoftTerm a stable order in which to apply
// a run of combining marks to the same base character.
func LowerCombiningClass(a, b rune) bool {
	ca, cb := combiningClass(a), combiningClass(b)
	if ca != cb {
		return ca < cb
	}
	return a < b
}

func combiningClass(r rune) uint8 {
	p := norm.NFC.Properties([]byte(string(r)))
	return p.CCC()
}

// IsCombiningMark reports whether r is the kind of mark SoftTerm's
// printable-character handler tries to combine into the previous cell
// rather than writing to a fresh one.
func IsCombiningMark(r rune) bool {
	return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Me, r)
}
