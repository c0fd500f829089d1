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

import "github.com/vt48/term/cellmodel"

// privateModes tracks the handful of DEC private modes whose effect is not
// simply a field elsewhere on Terminal (mouse/focus/bracketed-paste
// reporting, which this engine reports through but does not itself act on;
// the realizer side owns the actual host wiring).
type privateModes struct {
	mouseButton, mouseDrag, mouseMotion bool
	mouseSGR, mouseSGRPixel             bool
	focusReports                        bool
	bracketedPaste                      bool
	cursorKeysApp                       bool
	keypadApp                           bool
	leftRightMargins                    bool // DECLRMM, mode 69
	backarrowSendsBS                    bool // DECBKM, mode 67
	noClearOnDECCOLM                    bool // DECNCSM, mode 95
	reflowPending                       bool // DECRPL, mode 112: recorded only, see DESIGN.md
	cursorBlink                         bool // private mode 12
	deleteKeySendsDEL                   bool // private mode 1037
	zeroDefault                         bool // ZDM, ANSI mode 22 (deprecated but accepted)

	// SCO-mode keyboard dialect selections (SCOSM/SCORM 2..4); recorded for
	// the input side, which owns the actual keymap decoding.
	decFunctionKeys, scoFunctionKeys, tekenFunctionKeys bool
}

// defaultPrivateModes is the state SoftReset/RIS restore: every reporting
// mode off, the three function-key dialects enabled.
func defaultPrivateModes() privateModes {
	return privateModes{
		decFunctionKeys:   true,
		scoFunctionKeys:   true,
		tekenFunctionKeys: true,
	}
}

// SetMode (SM/RM, ANSI modes) handles the numbered ANSI modes this engine
// tracks; unrecognised codes are silently ignored per the no-fail policy.
func (t *Terminal) SetMode(code int, on bool) {
	switch code {
	case 4: // IRM: insert mode is simply the inverse of overstrike
		t.overstrike = !on
	case 22: // ZDM, deprecated in ECMA-48:1986 but accepted anyway
		t.modes.zeroDefault = on
	case 20: // LNM, line feed / new line mode: not separately modelled
	}
}

// SetSCOMode (SCOSM/SCORM, CSI = h / CSI = l) handles the SCO console mode
// numbers: 1 selects square (framebuffer-cell) glyph geometry, 2-4 choose
// which function-key dialects the keyboard side should speak.
func (t *Terminal) SetSCOMode(code int, on bool) {
	switch code {
	case 1:
		t.square = on
	case 2:
		t.modes.decFunctionKeys = on
	case 3:
		t.modes.scoFunctionKeys = on
	case 4:
		t.modes.tekenFunctionKeys = on
	}
}

// SaveModes/RestoreModes copy the whole mode record, the coarse-grained
// companion to DECSC/DECRC that a few DEC applications rely on.
func (t *Terminal) SaveModes()    { t.savedModes = t.modes }
func (t *Terminal) RestoreModes() { t.modes = t.savedModes }

// SetPrivateMode (DECSET/DECRST) handles the DEC private-mode numbers named
// in SPEC_FULL.md, including the three distinct alternate-screen toggles
// (47, 1047, 1049), each reproduced with its own save/clear/restore
// behaviour rather than unified into one, per the decision recorded in
// DESIGN.md.
func (t *Terminal) SetPrivateMode(code int, on bool) {
	switch code {
	case 1: // DECCKM
		t.modes.cursorKeysApp = on
	case 3: // DECCOLM: switches between 80- and 132-column mode
		width := 80
		if on {
			width = 132
		}
		t.Resize(width, t.height)
		if !t.modes.noClearOnDECCOLM {
			t.Home()
			t.ClearDisplay()
		}
		t.ResetMargins()
	case 5: // DECSCNM
		t.reverseVideo = on
		flags := cellmodel.ScreenFlags(0)
		if on {
			flags = cellmodel.FlagInverted
		}
		t.alt.Active().SetScreenFlags(flags)
	case 6: // DECOM
		t.originMode = on
		t.Home()
	case 7: // DECAWM
		t.wrapMode = on
	case 12: // cursor blink
		t.setCursorBlink(on)
	case 25: // DECTCEM
		t.setCursorVisible(on)
	case 47:
		t.setAltScreen(on, false, false)
	case 66: // DECNKM
		t.modes.keypadApp = on
	case 67: // DECBKM
		t.modes.backarrowSendsBS = on
	case 69: // DECLRMM: gates SetLeftRightMargins' acceptance of DECSLRM
		t.modes.leftRightMargins = on
	case 95: // DECNCSM
		t.modes.noClearOnDECCOLM = on
	case 112: // DECRPL: recorded only, see DESIGN.md
		t.modes.reflowPending = on
	case 117: // DECECM: set (on) actually disables background-colour erase
		t.backgroundColourErase = !on
	case 1000:
		t.modes.mouseButton = on
		t.updatePointerType()
	case 1002:
		t.modes.mouseDrag = on
		t.updatePointerType()
	case 1003:
		t.modes.mouseMotion = on
		t.updatePointerType()
	case 1004:
		t.modes.focusReports = on
	case 1006:
		t.modes.mouseSGR = on
	case 1016:
		t.modes.mouseSGRPixel = on
	case 1047:
		t.setAltScreen(on, true, false)
	case 1048:
		if on {
			t.saveCursor()
		} else {
			t.restoreCursor()
		}
	case 1037: // XTerm extension: Delete key sends DEL instead of its escape
		t.modes.deleteKeySendsDEL = on
	case 1049:
		t.setAltScreen(on, true, true)
	case 2004:
		t.modes.bracketedPaste = on
	}
}

func (t *Terminal) setCursorBlink(on bool) {
	glyph, attr := t.alt.Active().CursorType()
	if on {
		attr |= cellmodel.CursorBlink
	} else {
		attr &^= cellmodel.CursorBlink
	}
	t.alt.Active().SetCursorType(glyph, attr)
	t.modes.cursorBlink = on
}

func (t *Terminal) setCursorVisible(on bool) {
	glyph, attr := t.alt.Active().CursorType()
	if on {
		attr |= cellmodel.CursorVisible
	} else {
		attr &^= cellmodel.CursorVisible
	}
	t.alt.Active().SetCursorType(glyph, attr)
}

// setAltScreen implements the three xterm alternate-screen private modes.
// Mode 47 switches buffers without ever clearing either one, and swapping
// back shows whatever was left on the primary buffer. Mode 1047 additionally
// clears the alternate screen on entry (so a fresh alternate session never
// sees stale content) when clearOnEnter is set. Mode 1049 further saves and
// restores the cursor around the switch, the behaviour most full-screen
// applications (e.g. $PAGER, editors) actually rely on.
func (t *Terminal) setAltScreen(on, clearOnEnter, saveCursor bool) {
	if on {
		if saveCursor {
			t.alt1049Saved = t.captureCursor()
		}
		t.alt.SetAltBuffer(true)
		if clearOnEnter {
			t.ClearDisplay()
			t.setCursor(0, 0)
		}
	} else {
		t.alt.SetAltBuffer(false)
		if saveCursor {
			t.applyCursor(t.alt1049Saved)
		}
	}
}

func (t *Terminal) captureCursor() savedState {
	return savedState{
		x: t.cursorX, y: t.cursorY,
		attr: t.attr, colours: t.colours,
		originMode: t.originMode, wrapMode: t.wrapMode,
	}
}

func (t *Terminal) applyCursor(s savedState) {
	t.attr, t.colours = s.attr, s.colours
	t.originMode, t.wrapMode = s.originMode, s.wrapMode
	t.setCursor(s.x, s.y)
}

// saveCursor (DECSC) preserves cursor position, attributes/colours,
// origin/wrap mode, and the mode record.
func (t *Terminal) saveCursor() {
	t.saved = t.captureCursor()
	t.SaveAttributes()
	t.SaveModes()
	t.haveSaved = true
}

// restoreCursor (DECRC) restores what DECSC last saved; a no-op if nothing
// was ever saved, matching the original's tolerance of an unpaired DECRC.
func (t *Terminal) restoreCursor() {
	if !t.haveSaved {
		return
	}
	t.applyCursor(t.saved)
	t.RestoreAttributes()
	t.RestoreModes()
}

// SetLeftRightMargins (DECSLRM) sets the scroll columns; left/right are
// 0-based and inclusive-exclusive like the rest of this package's ranges.
// Only takes effect when DECLRMM (mode 69) is enabled, and only when
// left<right holds; otherwise the current margins are left untouched.
func (t *Terminal) SetLeftRightMargins(left, right int) {
	if !t.modes.leftRightMargins {
		return
	}
	if right > t.width {
		right = t.width
	}
	if left < 0 {
		left = 0
	}
	if left >= right {
		return
	}
	t.scrollLeft, t.scrollRight = left, right
	t.Home()
}

// SetTopBottomMargins (DECSTBM) sets the scroll rows; a degenerate range
// (including out-of-range arguments) resets to the full screen.
func (t *Terminal) SetTopBottomMargins(top, bottom int) {
	if top < 0 {
		top = 0
	}
	if bottom > t.height {
		bottom = t.height
	}
	if bottom <= top {
		top, bottom = 0, t.height
	}
	t.scrollTop, t.scrollBottom = top, bottom
	t.Home()
}

// ResetMargins (part of DECSTR/RIS) restores both margins to the full
// screen.
func (t *Terminal) ResetMargins() { t.resetMargins() }
