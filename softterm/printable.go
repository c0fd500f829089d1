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
	"github.com/vt48/term/uniclass"
)

// printableCharacter is grounded on SoftTerm::PrintableCharacter: formatting
// and surrogate code points are silently dropped; a malformed-input or
// shifted-in (SS2/SS3) character is drawn inverse; a combining mark is
// written into the cursor cell without advancing, and a following
// printable that composes with the mark in that cell replaces it with the
// composed character; wide glyphs get a shadow blank cell to their right
// unless square-mode geometry says otherwise.
func (t *Terminal) printableCharacter(errFlag bool, shiftLevel int, character rune) {
	t.lastPrintable = character
	if uniclass.IsOtherFormat(character) || uniclass.IsOtherSurrogate(character) {
		return
	}

	a := t.attr
	if errFlag || shiftLevel != 1 {
		a ^= cellmodel.Inverse
	}

	t.resolvePendingAdvance()

	read := t.alt.Active().ReadCell(t.cursorX, t.cursorY)
	cell := cellmodel.Cell{Character: character, Attr: a, Colours: t.colours}

	if uniclass.IsMarkNonSpacing(read.Character) || uniclass.IsMarkEnclosing(read.Character) {
		if composed, ok := uniclass.CombineUnicode(cell.Character, read.Character); ok {
			cell.Character = composed
		} else if !t.overstrike {
			if repl, ok := uniclass.CombinePeculiarNonCombiner(read.Character); ok {
				read.Character = repl
				t.buf().WriteNCells(t.cursorX, t.cursorY, 1, read)
				t.InsertCharacters(1)
			}
		}
	} else if !t.overstrike {
		t.InsertCharacters(1)
	}

	t.buf().WriteNCells(t.cursorX, t.cursorY, 1, cell)

	if !uniclass.IsMarkNonSpacing(cell.Character) && !uniclass.IsMarkEnclosing(cell.Character) {
		startX := t.cursorX
		t.AdvanceOrPend()
		if !t.square && uniclass.IsWideOrFull(cell.Character) {
			// the shadow blank fits only when the glyph itself started left
			// of the right margin; a wide glyph at the margin keeps a single
			// column rather than spilling into the next row.
			if startX < t.scrollRight-1 {
				t.ClearPendingAdvance()
				if !t.overstrike {
					t.InsertCharacters(1)
				}
				t.buf().WriteNCells(t.cursorX, t.cursorY, 1, cellmodel.Cell{Character: ' ', Attr: a, Colours: t.colours})
				t.AdvanceOrPend()
			}
		}
	}
}

// RepeatPrintableCharacter (REP) re-prints the last printable character n
// times (or once if n is 0), each as an unshifted, error-free character.
// The count is capped at a screenful under autowrap and a lineful without
// it, since repetitions beyond that only overwrite their predecessors.
func (t *Terminal) RepeatPrintableCharacter(n int) {
	if n <= 0 {
		n = 1
	}
	if t.lastPrintable == 0 {
		return
	}
	if t.wrapMode {
		if m := t.width * t.height; n > m {
			n = m
		}
	} else if n > t.width {
		n = t.width
	}
	for i := 0; i < n; i++ {
		t.printableCharacter(false, 1, t.lastPrintable)
	}
}
