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
	"strings"

	"github.com/vt48/term/cellmodel"
)

// Device-attribute/status report bodies, reproduced verbatim from the
// original implementation's fixed response strings (SoftTerm.cpp's DA1/
// DA2/DA3/DSR/DECDSR/DECRQPSR handlers) rather than derived from the
// capability descriptor: these identify the emulator itself, not the host
// it happens to be running inside.
const (
	da1Response = "\x1b[?64;1;9;15;21;22c"
	da2Response = "\x1b[>64;0;0c"
	da3Response = "\x1bP!|00000000\x1b\\"
)

// ReportDeviceAttributes1 (DA1, CSI c / CSI 0 c) identifies the terminal as
// a VT420-class device (64) reporting 132 columns (1), national replacement
// character sets (9), technical characters (15), horizontal scrolling (21)
// and ANSI colour (22).
func (t *Terminal) ReportDeviceAttributes1() { t.respond([]byte(da1Response)) }

// ReportDeviceAttributes2 (DA2, CSI > c) reports firmware version 0,
// cartridge 0.
func (t *Terminal) ReportDeviceAttributes2() { t.respond([]byte(da2Response)) }

// ReportDeviceAttributes3 (DA3, CSI = c) reports an all-zero unit ID.
func (t *Terminal) ReportDeviceAttributes3() { t.respond([]byte(da3Response)) }

// ReportDeviceStatus (DSR) answers the two ANSI status codes this engine
// supports: 5 (are you OK -> always "OK") and 6 (report cursor position).
func (t *Terminal) ReportDeviceStatus(code int) {
	switch code {
	case 5:
		t.respond([]byte("\x1b[0n"))
	case 6:
		t.reportCursorPosition(false)
	}
}

// ReportDECDeviceStatus (DECDSR, CSI ? n) answers the DEC private status
// codes: 6 (extended cursor position report, DECXCPR), 15 (printer status,
// always "no printer"), 25 (UDK status, always "locked"), 26 (keyboard
// status, always North American), 53/55 (locator present and enabled), 56
// (locator is a mouse), 75 (no serial communications errors possible), 85
// (no sessions available).
func (t *Terminal) ReportDECDeviceStatus(code int) {
	switch code {
	case 6:
		t.reportCursorPosition(true)
	case 15:
		t.respond([]byte("\x1b[?13n"))
	case 25:
		t.respond([]byte("\x1b[?21n"))
	case 26:
		t.respond([]byte("\x1b[?27;1n"))
	case 53, 55:
		t.respond([]byte("\x1b[?50n"))
	case 56:
		t.respond([]byte("\x1b[?57;1n"))
	case 75:
		t.respond([]byte("\x1b[?70n"))
	case 85:
		t.respond([]byte("\x1b[?83n"))
	}
}

func (t *Terminal) reportCursorPosition(extended bool) {
	row, col := t.cursorY-t.originY()+1, t.cursorX-t.originX()+1
	if extended {
		t.respond([]byte(fmt.Sprintf("\x1b[?%d;%d;1R", row, col)))
		return
	}
	t.respond([]byte(fmt.Sprintf("\x1b[%d;%dR", row, col)))
}

// ReportDECPresentationState (DECRQPSR) answers the two presentation-state
// queries this engine supports: 1 (DECCIR, the cursor information report a
// later restore can replay) and 2 (DECTABSR, listing every set tab column
// as a 1-based position). The ISO 2022 graphic-set fields of DECCIR are
// omitted, since graphic-set switching is not part of this emulation.
func (t *Terminal) ReportDECPresentationState(code int) {
	switch code {
	case 1:
		row, col := t.cursorY-t.originY()+1, t.cursorX-t.originX()+1
		srend := byte(0x40)
		if t.attr.Has(cellmodel.Inverse) {
			srend |= 0x08
		}
		if t.attr.Has(cellmodel.Blink) {
			srend |= 0x04
		}
		if t.attr.Underline() != 0 {
			srend |= 0x02
		}
		if t.attr.Has(cellmodel.Bold) {
			srend |= 0x01
		}
		sflag := byte(0x40)
		if t.pendingWrap {
			sflag |= 0x08
		}
		if t.originMode {
			sflag |= 0x01
		}
		t.respond([]byte(fmt.Sprintf("\x1bP1$u%d;%d;1;%c;%c;%c;;;;\x1b\\", row, col, srend, 0x40, sflag)))
	case 2:
		t.ensureTabStops()
		var cols []string
		for x, set := range t.tabs.set {
			if set {
				cols = append(cols, fmt.Sprintf("%d", x+1))
			}
		}
		t.respond([]byte(fmt.Sprintf("\x1bP2$u%s\x1b\\", strings.Join(cols, "/"))))
	}
}
