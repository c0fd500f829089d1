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

// tabStops tracks which columns are tab stops; it is reallocated on resize
// and reset to every eighth column, matching capability.Descriptor's
// ResetSetsTabs convention.
type tabStops struct {
	set []bool
}

func (t *Terminal) ensureTabStops() {
	if t.tabs.set == nil || len(t.tabs.set) != t.width {
		t.tabs.set = make([]bool, t.width)
		for x := 0; x < t.width; x += 8 {
			t.tabs.set[x] = true
		}
	}
}

func (t *Terminal) setTabStop() {
	t.ensureTabStops()
	if t.cursorX < len(t.tabs.set) {
		t.tabs.set[t.cursorX] = true
	}
}

func (t *Terminal) clearTabStop() {
	t.ensureTabStops()
	if t.cursorX < len(t.tabs.set) {
		t.tabs.set[t.cursorX] = false
	}
}

func (t *Terminal) clearAllTabStops() {
	t.ensureTabStops()
	for i := range t.tabs.set {
		t.tabs.set[i] = false
	}
}

// setRegularTabStops (DECST8C and the reset paths) pins a stop at every nth
// column, clearing the rest.
func (t *Terminal) setRegularTabStops(n int) {
	t.tabs.set = make([]bool, t.width)
	for x := 0; x < t.width; x += n {
		t.tabs.set[x] = true
	}
}

func (t *Terminal) ensureVerticalTabStops() {
	if t.vtabs.set == nil || len(t.vtabs.set) != t.height {
		t.vtabs.set = make([]bool, t.height)
	}
}

func (t *Terminal) setVerticalTabStop(y int, on bool) {
	t.ensureVerticalTabStops()
	if y >= 0 && y < len(t.vtabs.set) {
		t.vtabs.set[y] = on
	}
}

func (t *Terminal) clearAllVerticalTabStops() {
	t.ensureVerticalTabStops()
	for i := range t.vtabs.set {
		t.vtabs.set[i] = false
	}
}

// CursorTabulationControl (CTC) sets or clears horizontal and vertical tab
// stops at the cursor, one operation per parameter.
func (t *Terminal) CursorTabulationControl(a ecma48.ArgVector) {
	for i := 0; i < a.QueryArgCount(); i++ {
		switch a.GetArgZeroIfEmpty(i, 0) {
		case 0:
			t.setTabStop()
		case 1:
			t.setVerticalTabStop(t.cursorY, true)
		case 2:
			t.clearTabStop()
		case 3:
			t.setVerticalTabStop(t.cursorY, false)
		case 4, 5:
			t.clearAllTabStops()
		case 6:
			t.clearAllVerticalTabStops()
		}
	}
}

// verticalTab (CVT) moves the cursor to the nth following vertical tab
// stop, stopping at the scroll region's bottom edge; with no stops set it
// simply lands there.
func (t *Terminal) verticalTab(n int) {
	t.ensureVerticalTabStops()
	t.ClearPendingAdvance()
	y := t.cursorY
	bottom := t.scrollBottom - 1
	for y < bottom && n > 0 {
		y++
		if t.vtabs.set[y] {
			n--
		}
	}
	t.setCursor(t.cursorX, y)
}

// horizontalTab (HT, n > 0) or CBT (n < 0) moves the cursor to the nth next
// (or, for negative n, previous) tab stop, stopping at the row edge.
func (t *Terminal) horizontalTab(n int) {
	t.ensureTabStops()
	t.ClearPendingAdvance()
	x := t.cursorX
	if n >= 0 {
		for ; n > 0; n-- {
			x++
			for x < t.width && !t.tabs.set[x] {
				x++
			}
			if x >= t.width {
				x = t.width - 1
				break
			}
		}
	} else {
		for ; n < 0; n++ {
			x--
			for x > 0 && !t.tabs.set[x] {
				x--
			}
			if x < 0 {
				x = 0
				break
			}
		}
	}
	t.setCursor(x, t.cursorY)
}
