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
	"testing"

	"github.com/vt48/term/capability"
	"github.com/vt48/term/cellmodel"
)

func feed(t *Terminal, s string) {
	for i := 0; i < len(s); i++ {
		t.Feed(s[i])
	}
}

func TestPrintableAdvancesCursor(t *testing.T) {
	term := New(10, 5, capability.Descriptor{}, nil)
	feed(term, "abc")
	if term.cursorX != 3 || term.cursorY != 0 {
		t.Fatalf("cursor = (%d,%d), want (3,0)", term.cursorX, term.cursorY)
	}
	if c := term.Buffer().ReadCell(0, 0); c.Character != 'a' {
		t.Fatalf("cell(0,0) = %q, want 'a'", c.Character)
	}
}

func TestWrapAtRightMargin(t *testing.T) {
	term := New(5, 3, capability.Descriptor{}, nil)
	feed(term, "abcde")
	if term.cursorY != 0 {
		t.Fatalf("cursor should not have wrapped yet, y=%d", term.cursorY)
	}
	feed(term, "f")
	if term.cursorY != 1 {
		t.Fatalf("expected wrap to row 1, got y=%d", term.cursorY)
	}
	if c := term.Buffer().ReadCell(0, 1); c.Character != 'f' {
		t.Fatalf("cell(0,1) = %q, want 'f'", c.Character)
	}
}

func TestLineFeedScrollsAtBottomMargin(t *testing.T) {
	term := New(4, 2, capability.Descriptor{}, nil)
	feed(term, "AA\r\nBB")
	if term.cursorY != 1 {
		t.Fatalf("cursor y = %d, want 1", term.cursorY)
	}
	feed(term, "\r\n")
	if c := term.Buffer().ReadCell(0, 0); c.Character != 'B' {
		t.Fatalf("after scroll, cell(0,0) = %q, want 'B'", c.Character)
	}
}

func TestSGRColours(t *testing.T) {
	term := New(10, 2, capability.Descriptor{}, nil)
	feed(term, "\x1b[31mX")
	c := term.Buffer().ReadCell(0, 0)
	if c.Colours.Foreground.Alpha == 0 {
		t.Fatalf("expected foreground colour to be set")
	}
}

func TestClearDisplay(t *testing.T) {
	term := New(4, 2, capability.Descriptor{}, nil)
	feed(term, "abcd\x1b[2J")
	c := term.Buffer().ReadCell(0, 0)
	if c.Character != ' ' {
		t.Fatalf("expected cleared cell, got %q", c.Character)
	}
}

func TestDeviceAttributesResponse(t *testing.T) {
	var got []byte
	term := New(10, 2, capability.Descriptor{}, func(b []byte) { got = append(got, b...) })
	feed(term, "\x1b[c")
	if len(got) == 0 {
		t.Fatalf("expected a DA1 response")
	}
}

func TestAltScreenPreservesPrimary(t *testing.T) {
	term := New(4, 2, capability.Descriptor{}, nil)
	feed(term, "AAAA")
	feed(term, "\x1b[?1049h")
	feed(term, "\x1b[2JBBBB")
	feed(term, "\x1b[?1049l")
	c := term.Buffer().ReadCell(0, 0)
	if c.Character != 'A' {
		t.Fatalf("primary screen content lost, got %q", c.Character)
	}
}

func TestResetToInitialState(t *testing.T) {
	term := New(4, 2, capability.Descriptor{}, nil)
	feed(term, "\x1b[31mAAAA\x1bc")
	c := term.Buffer().ReadCell(0, 0)
	if c.Character != ' ' {
		t.Fatalf("expected RIS to clear the display, got %q", c.Character)
	}
	if term.attr != 0 {
		t.Fatalf("expected RIS to reset attributes")
	}
}

func TestCSIsIsSCOSCWithoutDECLRMM(t *testing.T) {
	term := New(10, 5, capability.Descriptor{}, nil)
	feed(term, "\x1b[3;3H\x1b[s")
	if term.scrollLeft != 0 || term.scrollRight != term.width {
		t.Fatalf("CSI s without DECLRMM must not touch margins, got [%d,%d)", term.scrollLeft, term.scrollRight)
	}
	feed(term, "\x1b[1;1H\x1b[u")
	if term.cursorX != 2 || term.cursorY != 2 {
		t.Fatalf("CSI u should restore the cursor saved by CSI s, got (%d,%d)", term.cursorX, term.cursorY)
	}
}

func TestCSIsIsDECSLRMWithDECLRMM(t *testing.T) {
	term := New(10, 2, capability.Descriptor{}, nil)
	feed(term, "\x1b[?69h\x1b[3;7s")
	if term.scrollLeft != 2 || term.scrollRight != 7 {
		t.Fatalf("DECSLRM via CSI s with DECLRMM on: margins = [%d,%d), want [2,7)", term.scrollLeft, term.scrollRight)
	}
}

func TestSetLeftRightMarginsRequiresDECLRMM(t *testing.T) {
	term := New(10, 2, capability.Descriptor{}, nil)
	term.SetLeftRightMargins(2, 7)
	if term.scrollLeft != 0 || term.scrollRight != term.width {
		t.Fatalf("DECSLRM must be rejected while DECLRMM is off, got [%d,%d)", term.scrollLeft, term.scrollRight)
	}
}

func TestDECCOLMResizesAndClears(t *testing.T) {
	term := New(80, 24, capability.Descriptor{}, nil)
	feed(term, "X")
	feed(term, "\x1b[?3h")
	if term.width != 132 {
		t.Fatalf("DECCOLM on: width = %d, want 132", term.width)
	}
	if c := term.Buffer().ReadCell(0, 0); c.Character != ' ' {
		t.Fatalf("DECCOLM should clear the display by default, got %q", c.Character)
	}
}

func TestDECNCSMSuppressesDECCOLMClear(t *testing.T) {
	term := New(80, 24, capability.Descriptor{}, nil)
	feed(term, "\x1b[?95h")
	feed(term, "X")
	feed(term, "\x1b[?3h")
	if c := term.Buffer().ReadCell(0, 0); c.Character != 'X' {
		t.Fatalf("DECNCSM should suppress the DECCOLM clear, got %q", c.Character)
	}
}

func TestDECECMTogglesBackgroundColourErase(t *testing.T) {
	term := New(4, 2, capability.Descriptor{}, nil)
	feed(term, "\x1b[31m\x1b[?117h\x1b[2J")
	c := term.Buffer().ReadCell(0, 0)
	if c.Colours != cellmodel.PairErased {
		t.Fatalf("with DECECM set, erase should use the fixed erased pair, got %+v", c.Colours)
	}
	feed(term, "\x1b[?117l\x1b[2J")
	c = term.Buffer().ReadCell(0, 0)
	if c.Colours == cellmodel.PairErased {
		t.Fatalf("with DECECM reset, erase should paint with the current colours")
	}
}

func TestColourSelectorFormsAreEquivalent(t *testing.T) {
	term := New(10, 2, capability.Descriptor{}, nil)
	feed(term, "\x1b[38;5;200mA\x1b[38:5:200mB")
	a, b := term.Buffer().ReadCell(0, 0), term.Buffer().ReadCell(1, 0)
	if a.Colours.Foreground != b.Colours.Foreground {
		t.Fatalf("38;5;N and 38:5:N differ: %+v vs %+v", a.Colours.Foreground, b.Colours.Foreground)
	}
	feed(term, "\x1b[38;2;10;20;30mC\x1b[38:2::10:20:30mD")
	c, d := term.Buffer().ReadCell(2, 0), term.Buffer().ReadCell(3, 0)
	if c.Colours.Foreground != d.Colours.Foreground {
		t.Fatalf("semicolon and colon truecolour differ: %+v vs %+v", c.Colours.Foreground, d.Colours.Foreground)
	}
	want := cellmodel.MapTrueColour(10, 20, 30)
	if c.Colours.Foreground != want {
		t.Fatalf("truecolour fg = %+v, want %+v", c.Colours.Foreground, want)
	}
}

func TestSGR39ResetsForegroundToDefault(t *testing.T) {
	term := New(10, 2, capability.Descriptor{}, nil)
	feed(term, "\x1b[31mX\x1b[39mY")
	c := term.Buffer().ReadCell(1, 0)
	if !c.Colours.Foreground.IsDefaultOrErased() {
		t.Fatalf("expected SGR 39 to reset the foreground to default")
	}
}

func TestPrintOverwritesByDefault(t *testing.T) {
	term := New(10, 2, capability.Descriptor{}, nil)
	feed(term, "ABC\rX")
	want := []rune{'X', 'B', 'C'}
	for i, w := range want {
		if c := term.Buffer().ReadCell(i, 0); c.Character != w {
			t.Fatalf("cell(%d,0) = %q, want %q", i, c.Character, w)
		}
	}
}

func TestIRMInsertsInsteadOfOverwriting(t *testing.T) {
	term := New(10, 2, capability.Descriptor{}, nil)
	feed(term, "ABC\r\x1b[4hX")
	want := []rune{'X', 'A', 'B', 'C'}
	for i, w := range want {
		if c := term.Buffer().ReadCell(i, 0); c.Character != w {
			t.Fatalf("cell(%d,0) = %q, want %q", i, c.Character, w)
		}
	}
	feed(term, "\x1b[4l\rY")
	if c := term.Buffer().ReadCell(1, 0); c.Character != 'A' {
		t.Fatalf("after IRM off, printing must overwrite: cell(1,0) = %q, want 'A'", c.Character)
	}
}

func TestSoftResetRestoresRegularTabStops(t *testing.T) {
	term := New(40, 4, capability.Descriptor{}, nil)
	feed(term, "\x1b[3g")     // clear every tab stop
	feed(term, "\x1b[!p")     // DECSTR
	feed(term, "\tX")
	if c := term.Buffer().ReadCell(8, 0); c.Character != 'X' {
		t.Fatalf("after DECSTR, HT should stop at column 8; found %q there", c.Character)
	}
	if !term.wrapMode || !term.overstrike || !term.backgroundColourErase {
		t.Fatalf("DECSTR defaults wrong: wrap=%v overstrike=%v bce=%v", term.wrapMode, term.overstrike, term.backgroundColourErase)
	}
	glyph, attr := term.Buffer().CursorType()
	if glyph != cellmodel.CursorBlock || attr != cellmodel.CursorVisible|cellmodel.CursorBlink {
		t.Fatalf("DECSTR cursor = (%v, %v), want visible blinking block", glyph, attr)
	}
}

func TestREPRepeatsLastPrintable(t *testing.T) {
	term := New(20, 2, capability.Descriptor{}, nil)
	feed(term, "X\x1b[5b")
	for i := 0; i < 6; i++ {
		if c := term.Buffer().ReadCell(i, 0); c.Character != 'X' {
			t.Fatalf("cell(%d,0) = %q, want 'X'", i, c.Character)
		}
	}
	if term.cursorX != 6 {
		t.Fatalf("cursor x = %d, want 6", term.cursorX)
	}
}

func TestDECCARAAppliesAttributesToArea(t *testing.T) {
	term := New(10, 3, capability.Descriptor{}, nil)
	feed(term, "ABCD")
	feed(term, "\x1b[1;1;1;4;7$r")
	for i := 0; i < 4; i++ {
		if c := term.Buffer().ReadCell(i, 0); !c.Attr.Has(cellmodel.Inverse) {
			t.Fatalf("cell(%d,0) should be inverse after DECCARA", i)
		}
	}
	if c := term.Buffer().ReadCell(4, 0); c.Attr.Has(cellmodel.Inverse) {
		t.Fatalf("cell(4,0) lies outside the DECCARA area")
	}
	if c := term.Buffer().ReadCell(0, 0); c.Character != 'A' {
		t.Fatalf("DECCARA must not rewrite characters, got %q", c.Character)
	}
}

func TestWideGlyphOccupiesTwoColumnsWhenSquareOff(t *testing.T) {
	term := New(10, 2, capability.Descriptor{}, nil)
	feed(term, "\x1b[=1l") // SCO square mode off: host cells are not square
	feed(term, "漢")
	if c := term.Buffer().ReadCell(0, 0); c.Character != '漢' {
		t.Fatalf("cell(0,0) = %q, want the wide glyph", c.Character)
	}
	if c := term.Buffer().ReadCell(1, 0); c.Character != ' ' {
		t.Fatalf("cell(1,0) = %q, want the shadow blank", c.Character)
	}
	if term.cursorX != 2 {
		t.Fatalf("cursor x = %d, want 2", term.cursorX)
	}
}

func TestWideGlyphAtMarginSetsPendingAdvance(t *testing.T) {
	term := New(80, 25, capability.Descriptor{}, nil)
	feed(term, "\x1b[=1l\x1b[1;79H")
	feed(term, "漢")
	if !term.pendingWrap {
		t.Fatalf("wide glyph filling columns 78-79 should leave advance pending")
	}
	feed(term, "x")
	if term.cursorY != 1 || term.Buffer().ReadCell(0, 1).Character != 'x' {
		t.Fatalf("next printable should wrap to row 1 column 0, cursor=(%d,%d)", term.cursorX, term.cursorY)
	}
}

func TestDECSCUSRExtendedStyles(t *testing.T) {
	term := New(10, 2, capability.Descriptor{}, nil)
	feed(term, "\x1b[9 q")
	glyph, attr := term.Buffer().CursorType()
	if glyph != cellmodel.CursorStar || attr&cellmodel.CursorBlink == 0 {
		t.Fatalf("CSI 9 SP q = (%v, %v), want blinking star", glyph, attr)
	}
	feed(term, "\x1b[4 q")
	glyph, attr = term.Buffer().CursorType()
	if glyph != cellmodel.CursorUnderline || attr&cellmodel.CursorBlink != 0 {
		t.Fatalf("CSI 4 SP q = (%v, %v), want steady underline", glyph, attr)
	}
}

func TestDECTABSRListsTabStops(t *testing.T) {
	var got []byte
	term := New(24, 2, capability.Descriptor{}, func(b []byte) { got = append(got, b...) })
	feed(term, "\x1b[2$w")
	want := "\x1bP2$u1/9/17\x1b\\"
	if string(got) != want {
		t.Fatalf("DECTABSR = %q, want %q", got, want)
	}
}

func TestRISRestoresEightyByTwentyFive(t *testing.T) {
	term := New(40, 10, capability.Descriptor{}, nil)
	feed(term, "\x1bc")
	if term.width != 80 || term.height != 25 {
		t.Fatalf("RIS geometry = %dx%d, want 80x25", term.width, term.height)
	}
}

func TestBareDECSTBMResetsMargins(t *testing.T) {
	term := New(10, 5, capability.Descriptor{}, nil)
	feed(term, "\x1b[2;4r")
	if term.scrollTop != 1 || term.scrollBottom != 4 {
		t.Fatalf("margins = [%d,%d), want [1,4)", term.scrollTop, term.scrollBottom)
	}
	feed(term, "\x1b[r")
	if term.scrollTop != 0 || term.scrollBottom != term.height {
		t.Fatalf("bare CSI r must reset to the full screen, got [%d,%d)", term.scrollTop, term.scrollBottom)
	}
}

func TestDegenerateDECSTBMDoesNotCrashScrolling(t *testing.T) {
	term := New(10, 5, capability.Descriptor{}, nil)
	// a reversed range must reset rather than install a negative region,
	// and scrolling afterwards must stay inside the buffer.
	feed(term, "\x1b[5;2r\x1b[S\x1b[T")
	if term.scrollTop != 0 || term.scrollBottom != term.height {
		t.Fatalf("reversed DECSTBM should reset, got [%d,%d)", term.scrollTop, term.scrollBottom)
	}
	feed(term, "\x1b[0;0r\x1b[2S\x1b[2T\n\n\n\n\n\n")
	if term.scrollTop < 0 || term.scrollBottom > term.height {
		t.Fatalf("degenerate DECSTBM left margins [%d,%d)", term.scrollTop, term.scrollBottom)
	}
}

func TestDECBIScrollsRegionRightAtLeftMargin(t *testing.T) {
	term := New(10, 3, capability.Descriptor{}, nil)
	feed(term, "ABC\x1b[1;1H")
	feed(term, "\x1b6") // DECBI at the left margin
	if c := term.Buffer().ReadCell(1, 0); c.Character != 'A' {
		t.Fatalf("cell(1,0) = %q, want 'A' shifted right", c.Character)
	}
	if c := term.Buffer().ReadCell(0, 0); c.Character != ' ' {
		t.Fatalf("cell(0,0) = %q, want the blank column DECBI exposed", c.Character)
	}
	if term.cursorX != 0 {
		t.Fatalf("cursor x = %d, want to stay at the margin", term.cursorX)
	}
	// away from the margin it is a plain back index: cursor moves, no scroll.
	feed(term, "\x1b[1;3H\x1b6")
	if term.cursorX != 1 {
		t.Fatalf("cursor x = %d, want 1", term.cursorX)
	}
	if c := term.Buffer().ReadCell(1, 0); c.Character != 'A' {
		t.Fatalf("DECBI inside the region must not scroll, cell(1,0) = %q", c.Character)
	}
}

func TestDECFIScrollsRegionLeftAtRightMargin(t *testing.T) {
	term := New(10, 3, capability.Descriptor{}, nil)
	feed(term, "ABC\x1b[1;10H")
	feed(term, "\x1b9") // DECFI at the right margin
	if c := term.Buffer().ReadCell(0, 0); c.Character != 'B' {
		t.Fatalf("cell(0,0) = %q, want 'B' shifted left", c.Character)
	}
	if c := term.Buffer().ReadCell(9, 0); c.Character != ' ' {
		t.Fatalf("cell(9,0) = %q, want the blank column DECFI exposed", c.Character)
	}
	if term.cursorX != 9 {
		t.Fatalf("cursor x = %d, want to stay at the margin", term.cursorX)
	}
}

func TestSLShiftsScrollAreaLeft(t *testing.T) {
	term := New(10, 2, capability.Descriptor{}, nil)
	feed(term, "ABCDE")
	feed(term, "\x1b[2 @")
	want := []rune{'C', 'D', 'E'}
	for i, w := range want {
		if c := term.Buffer().ReadCell(i, 0); c.Character != w {
			t.Fatalf("after SL 2, cell(%d,0) = %q, want %q", i, c.Character, w)
		}
	}
	if c := term.Buffer().ReadCell(8, 0); c.Character != ' ' {
		t.Fatalf("SL must blank the vacated right-hand columns")
	}
}

func TestCombiningMarkMergesIntoCell(t *testing.T) {
	// A combining mark printed with nothing preceding it is stored alone
	// (and does not advance the cursor); the base letter that follows at
	// the same cell position then composes with it.
	term := New(10, 2, capability.Descriptor{}, nil)
	feed(term, "́")
	if term.cursorX != 0 {
		t.Fatalf("a lone combining mark should not advance the cursor, x=%d", term.cursorX)
	}
	feed(term, "e")
	c := term.Buffer().ReadCell(0, 0)
	if c.Character != 'é' {
		t.Fatalf("cell(0,0) = %q, want combined 'é'", c.Character)
	}
}
