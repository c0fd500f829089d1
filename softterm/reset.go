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

// SoftReset (DECSTR) restores the state a well-behaved application expects
// after a reset without touching screen content: back to the primary
// buffer, full-screen margins, tab stops at every eighth column, a visible
// blinking block cursor, locators off, SGR and both colours at defaults,
// and the default mode record (overwrite printing, autowrap on,
// background-colour erase on).
func (t *Terminal) SoftReset() {
	t.alt.SetAltBuffer(false)
	t.resetMargins()
	t.setRegularTabStops(8)
	t.clearAllVerticalTabStops()
	t.alt.Active().SetCursorType(cellmodel.CursorBlock, cellmodel.CursorVisible|cellmodel.CursorBlink)
	t.sendDECLocator = false
	t.locatorPressEvents = false
	t.locatorReleaseEvents = false
	t.attr = 0
	t.colours = cellmodel.PairDefault
	t.savedAttr = 0
	t.savedColours = cellmodel.PairDefault
	t.originMode = false
	t.wrapMode = true
	t.overstrike = true
	t.square = true
	t.backgroundColourErase = true
	t.modes = defaultPrivateModes()
	t.savedModes = t.modes
	t.updatePointerType()
	t.haveSaved = false
	t.pendingWrap = false
}

// ResetToInitialState (RIS) additionally returns the geometry to 80x25,
// clears the display, homes the cursor, and forgets the last printable
// character REP depends on. Per the VT420 programmers' reference, RIS does
// little more than DECSTR once serial-line concerns are ignored.
func (t *Terminal) ResetToInitialState() {
	t.Resize(80, 25)
	t.reverseVideo = false
	t.alt.Active().SetScreenFlags(0)
	t.lastPrintable = 0
	t.SoftReset()
	t.setCursor(0, 0)
	t.ClearDisplay()
}
