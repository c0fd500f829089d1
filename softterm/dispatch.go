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

import "github.com/vt48/term/ecma48"

// controlCharacter dispatches the C0/C1 control set, grounded on
// SoftTerm::ControlCharacter's switch.
func (t *Terminal) controlCharacter(b byte) {
	switch b {
	case 0x07: // BEL
	case 0x08: // BS
		t.CursorLeft(1, false)
	case 0x09: // HT
		t.horizontalTab(1)
	case 0x0A, 0x0B, 0x0C: // LF, VT, FF
		t.lineFeed()
	case 0x0D: // CR
		t.setCursor(t.scrollLeftOrZero(), t.cursorY)
	case 0x84: // IND (C1)
		t.lineFeed()
	case 0x85: // NEL (C1)
		t.setCursor(t.scrollLeftOrZero(), t.cursorY)
		t.lineFeed()
	case 0x88: // HTS
		t.setTabStop()
	case 0x8D: // RI (C1)
		t.reverseLineFeed()
	}
}

func (t *Terminal) scrollLeftOrZero() int {
	if t.inScrollColumns() {
		return t.scrollLeft
	}
	return 0
}

// escapeSequence dispatches the 2-byte ESC sequences (ESC F, with an
// optional single intermediate) that are not CSI/DCS/OSC introducers.
func (t *Terminal) escapeSequence(intermediate, final byte) {
	if intermediate != 0 {
		return // no multi-intermediate escape sequences are implemented
	}
	switch final {
	case 'D': // IND
		t.lineFeed()
	case 'E': // NEL
		t.setCursor(t.scrollLeftOrZero(), t.cursorY)
		t.lineFeed()
	case 'H': // HTS
		t.setTabStop()
	case 'M': // RI
		t.reverseLineFeed()
	case 'c': // RIS
		t.ResetToInitialState()
	case '6': // DECBI: back index, scrolling the region right at the margin
		t.CursorLeft(1, true)
	case '7': // DECSC
		t.saveCursor()
	case '8': // DECRC
		t.restoreCursor()
	case '9': // DECFI: forward index, scrolling the region left at the margin
		t.CursorRight(1, true)
	case '=': // DECKPAM
		t.modes.keypadApp = true
	case '>': // DECKPNM
		t.modes.keypadApp = false
	}
}

// controlSequence dispatches CSI events, grounded on SoftTerm's CSI master
// dispatch table: the last intermediate byte selects the sequence family
// first, then the private marker selects between ANSI, DEC ('?'), and SCO
// ('=' or '>') parameter interpretations for the final bytes they share.
func (t *Terminal) controlSequence(e ecma48.Event) {
	hasArgs := len(e.Args) > 0
	a := ecma48.MinimumOneArg(e.Args)
	n := func(i int) int { return a.GetArgOneIfZeroOrEmpty(i, 0) }
	z := func(i int) int { return a.GetArgZeroIfEmpty(i, 0) }

	switch e.Intermediate {
	case 0:
		switch e.Private {
		case 0:
			t.dispatchANSI(e.Final, a, n, z, hasArgs)
		case '?':
			t.dispatchDEC(e.Final, a, n, z)
		case '=', '>':
			t.dispatchSCO(e.Private, e.Final, a, n, z)
		}
	case ' ':
		if e.Private != 0 {
			return
		}
		switch e.Final {
		case '@': // SL
			t.ScrollLeft(n(0))
		case 'A': // SR
			t.ScrollRight(n(0))
		case 'q': // DECSCUSR
			for i := 0; i < a.QueryArgCount(); i++ {
				t.SetCursorStyle(a.GetArgZDIfZeroOneIfEmpty(i, 0))
			}
		}
	case '!':
		if e.Private == 0 && e.Final == 'p' { // DECSTR
			t.SoftReset()
		}
	case '$':
		if e.Private != 0 {
			return // DECRQM/DECRPM as application output: ignored
		}
		switch e.Final {
		case 'r': // DECCARA
			t.changeAreaAttributes(a)
		case 't': // DECRARA
			t.reverseAreaAttributes(a)
		case 'w': // DECRQPSR
			for i := 0; i < a.QueryArgCount(); i++ {
				t.ReportDECPresentationState(a.GetArgZeroIfEmpty(i, 0))
			}
		case '|': // DECSCPP
			if cols := a.GetArgOneIfZeroOrEmpty(a.QueryArgCount()-1, 0); cols >= 2 {
				t.Resize(cols, t.height)
			}
		}
	case '*':
		if e.Private == 0 && e.Final == '|' { // DECSNLS
			if rows := a.GetArgOneIfZeroOrEmpty(a.QueryArgCount()-1, 0); rows >= 2 {
				t.Resize(t.width, rows)
			}
		}
	case '\'':
		if e.Private != 0 {
			return
		}
		switch e.Final {
		case 'z': // DECELR
			t.EnableLocatorReports(a)
		case '{': // DECSLE
			t.SelectLocatorEvents(a)
		case '|': // DECRQLP
			t.RequestLocatorReport()
		}
	}
}

func (t *Terminal) dispatchANSI(final byte, a ecma48.ArgVector, n, z func(int) int, hasArgs bool) {
	switch final {
	case 'A':
		t.CursorUp(n(0), false)
	case 'B', 'e':
		t.CursorDown(n(0), false)
	case 'C', 'a':
		t.CursorRight(n(0), false)
	case 'D':
		t.CursorLeft(n(0), false)
	case 'E':
		t.setCursor(t.scrollLeftOrZero(), t.cursorY)
		t.CursorDown(n(0), false)
	case 'F':
		t.setCursor(t.scrollLeftOrZero(), t.cursorY)
		t.CursorUp(n(0), false)
	case 'G', '`':
		t.GotoX(z(0) - 1)
	case 'H', 'f':
		t.GotoYX(z(0)-1, a.GetArgZeroIfEmpty(1, 0)-1)
	case 'I':
		t.horizontalTab(n(0))
	case 'J':
		switch z(0) {
		case 0:
			t.ClearToEOD()
		case 1:
			t.ClearFromBOD()
		case 2, 3:
			t.ClearDisplay()
		}
	case 'K':
		switch z(0) {
		case 0:
			t.ClearToEOL()
		case 1:
			t.ClearFromBOL()
		case 2:
			t.ClearLine()
		}
	case 'L':
		t.InsertLinesInScrollAreaAt(t.cursorY, n(0))
	case 'M':
		t.DeleteLinesInScrollAreaAt(t.cursorY, n(0))
	case 'P':
		t.DeleteCharacters(n(0))
	case 'S':
		t.scrollRegionUp(n(0))
	case 'T':
		t.scrollRegionDown(n(0))
	case 'W':
		t.CursorTabulationControl(a)
	case 'X':
		t.EraseCharacters(n(0))
	case 'Y':
		t.verticalTab(n(0))
	case 'Z':
		t.horizontalTab(-n(0))
	case '@':
		t.InsertCharacters(n(0))
	case 'b':
		t.RepeatPrintableCharacter(z(0))
	case 'c':
		t.ReportDeviceAttributes1()
	case 'd':
		t.GotoY(z(0) - 1)
	case 'g':
		for i := 0; i < a.QueryArgCount(); i++ {
			switch a.GetArgZeroIfEmpty(i, 0) {
			case 0, 1:
				t.clearTabStop()
			case 2, 3:
				t.clearAllTabStops()
			case 4:
				t.clearAllVerticalTabStops()
			case 5:
				t.clearAllTabStops()
				t.clearAllVerticalTabStops()
			}
		}
	case 'h':
		for i := 0; i < a.QueryArgCount(); i++ {
			t.SetMode(a.GetArgZeroIfEmpty(i, 0), true)
		}
	case 'j':
		t.CursorLeft(n(0), false)
	case 'k':
		t.CursorUp(n(0), false)
	case 'l':
		for i := 0; i < a.QueryArgCount(); i++ {
			t.SetMode(a.GetArgZeroIfEmpty(i, 0), false)
		}
	case 'm':
		t.SetAttributes(a)
	case 'n':
		t.ReportDeviceStatus(z(0))
	case 'r':
		t.SetTopBottomMargins(n(0)-1, a.GetArgZeroIfEmpty(1, 0))
	case 's':
		// xterm's CSI s heuristic: with DECLRMM (mode 69) enabled, any
		// argument present means DECSLRM; otherwise (or with DECLRMM off)
		// it's SCOSC. Per spec §9 this is an xterm compatibility
		// heuristic, not a standard.
		if t.modes.leftRightMargins && hasArgs {
			t.SetLeftRightMargins(z(0)-1, a.GetArgZeroIfEmpty(1, 0))
		} else {
			t.saveCursor()
		}
	case 't': // DECSLPP, with the dtterm/xterm resize extension
		t.setLinesPerPageOrDTTerm(a)
	case 'u':
		t.restoreCursor()
	case 'x': // SCOSGR, per the screen(HW) manual; not DECREQTPARM
		t.SetSCOAttributes(a)
	}
}

// setLinesPerPageOrDTTerm handles CSI t: a leading 8 is the dtterm/xterm
// resize-text-area extension (rows and columns follow, in either the
// semicolon or the ISO 8613-3 colon form); anything else is DECSLPP, where
// the last parameter is the new page length. The two may be mixed when the
// colon form is used, matching xterm's own tolerance.
func (t *Terminal) setLinesPerPageOrDTTerm(a ecma48.ArgVector) {
	if a.GetArgOneIfZeroOrEmpty(0, 0) == 8 {
		rows, cols := 0, 0
		if a.QuerySubArgCount(0) > 1 {
			rows, cols = a.GetArgZeroIfEmpty(0, 1), a.GetArgZeroIfEmpty(0, 2)
		} else {
			rows, cols = a.GetArgZeroIfEmpty(1, 0), a.GetArgZeroIfEmpty(2, 0)
		}
		if cols == 0 {
			cols = t.width
		}
		if rows == 0 {
			rows = t.height
		}
		if cols != 1 && rows != 1 {
			t.Resize(cols, rows)
		}
		consumed := 1
		if a.QuerySubArgCount(0) <= 1 {
			consumed = 3 // the semicolon form spent two whole parameters on rows/cols
		}
		if a.QueryArgCount() <= consumed {
			return
		}
	}
	if rows := a.GetArgOneIfZeroOrEmpty(a.QueryArgCount()-1, 0); rows >= 2 {
		t.Resize(t.width, rows)
	}
}

func (t *Terminal) dispatchDEC(final byte, a ecma48.ArgVector, n, z func(int) int) {
	switch final {
	case 'W': // DECCTC
		for i := 0; i < a.QueryArgCount(); i++ {
			if a.GetArgZeroIfEmpty(i, 0) == 5 { // DECST8C
				t.setRegularTabStops(8)
			}
		}
	case 'c': // Linux console SCUSR (VGA-softcursor dialect)
		t.SetLinuxCursorType(z(0))
	case 'h':
		for i := 0; i < a.QueryArgCount(); i++ {
			t.SetPrivateMode(a.GetArgZeroIfEmpty(i, 0), true)
		}
	case 'l':
		for i := 0; i < a.QueryArgCount(); i++ {
			t.SetPrivateMode(a.GetArgZeroIfEmpty(i, 0), false)
		}
	case 'n':
		t.ReportDECDeviceStatus(z(0))
	case 'J':
		switch z(0) {
		case 0:
			t.ClearToEOD()
		case 1:
			t.ClearFromBOD()
		case 2, 3:
			t.ClearDisplay()
		}
	case 'K':
		switch z(0) {
		case 0:
			t.ClearToEOL()
		case 1:
			t.ClearFromBOL()
		case 2:
			t.ClearLine()
		}
	}
}

func (t *Terminal) dispatchSCO(private, final byte, a ecma48.ArgVector, n, z func(int) int) {
	if private == '>' {
		if final == 'c' {
			t.ReportDeviceAttributes2()
		}
		return
	}
	switch final {
	case 'c':
		t.ReportDeviceAttributes3()
	case 'C', 'S': // SCOSCUSR; 'S' is CONS25's "local" spelling of the same
		t.SetSCOCursorType(a)
	case 'h':
		for i := 0; i < a.QueryArgCount(); i++ {
			t.SetSCOMode(a.GetArgZeroIfEmpty(i, 0), true)
		}
	case 'l':
		for i := 0; i < a.QueryArgCount(); i++ {
			t.SetSCOMode(a.GetArgZeroIfEmpty(i, 0), false)
		}
	}
}
