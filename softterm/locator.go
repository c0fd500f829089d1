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
	"fmt"

	"github.com/vt48/term/cellmodel"
	"github.com/vt48/term/ecma48"
)

// DEC locator (mouse) control. The engine records the locator policy and
// keeps the shared buffer's pointer sprite in sync with it; the realizer
// ecosystem owns the actual mouse hardware and consults this state through
// the input-message queue.

// EnableLocatorReports (DECELR) turns locator reporting off (0), on (1), or
// on-for-one-report (2, treated as on). A second parameter of 1 requests
// pixel coordinates, which this cell-based emulation does not grant.
func (t *Terminal) EnableLocatorReports(a ecma48.ArgVector) {
	t.sendDECLocator = a.GetArgZeroIfEmpty(0, 0) != 0
	t.updatePointerType()
}

// SelectLocatorEvents (DECSLE) chooses which button transitions generate
// reports: 0 none, 1/2 press on/off, 3/4 release on/off.
func (t *Terminal) SelectLocatorEvents(a ecma48.ArgVector) {
	for i := 0; i < a.QueryArgCount(); i++ {
		switch a.GetArgZeroIfEmpty(i, 0) {
		case 0:
			t.locatorPressEvents = false
			t.locatorReleaseEvents = false
		case 1, 2:
			t.locatorPressEvents = a.GetArgZeroIfEmpty(i, 0) == 1
		case 3, 4:
			t.locatorReleaseEvents = a.GetArgZeroIfEmpty(i, 0) == 3
		}
	}
}

// RequestLocatorReport (DECRQLP) answers with the shared buffer's text
// cursor position as the locator position (no separate pointer position is
// tracked here), or the "locator unavailable" report when reporting is not
// enabled.
func (t *Terminal) RequestLocatorReport() {
	if !t.sendDECLocator {
		t.respond([]byte("\x1b[0&w"))
		return
	}
	x, y := t.alt.Active().CursorPos()
	t.respond([]byte(fmt.Sprintf("\x1b[1;0;%d;%d;1&w", y+1, x+1)))
}

// updatePointerType shows the pointer sprite whenever either mouse protocol
// (DEC locator or the xterm 1000-series modes) wants events.
func (t *Terminal) updatePointerType() {
	var attr cellmodel.PointerAttr
	if t.sendDECLocator || t.modes.mouseButton || t.modes.mouseDrag || t.modes.mouseMotion {
		attr = cellmodel.PointerVisible
	}
	t.alt.Active().SetPointerType(attr)
}
