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

// Cursor motion, grounded on SoftTerm.cpp's CursorUp/Down/Left/Right and
// GotoX/GotoY/GotoYX family: movement clamps to the active scroll region
// when the cursor started inside it, and to the full screen otherwise. For
// the index operations (scrollAtEdge set), a movement that would cross the
// scroll region's edge scrolls the region by the remainder instead of
// merely clamping.

func (t *Terminal) originX() int {
	if t.originMode {
		return t.scrollLeft
	}
	return 0
}

func (t *Terminal) originY() int {
	if t.originMode {
		return t.scrollTop
	}
	return 0
}

func (t *Terminal) limitX() int {
	if t.originMode {
		return t.scrollRight - 1
	}
	return t.width - 1
}

func (t *Terminal) limitY() int {
	if t.originMode {
		return t.scrollBottom - 1
	}
	return t.height - 1
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// inScrollColumns reports whether the cursor's column sits within the
// active left/right scroll margin, the condition SoftTerm gates its
// scroll-on-overrun behaviour on.
func (t *Terminal) inScrollColumns() bool {
	return t.cursorX >= t.scrollLeft && t.cursorX < t.scrollRight
}

func (t *Terminal) setCursor(x, y int) {
	t.cursorX, t.cursorY = x, y
	t.ClearPendingAdvance()
	t.alt.Active().SetCursorPos(x, y)
}

func (t *Terminal) ClearPendingAdvance() { t.pendingWrap = false }

// AdvanceOrPend moves the cursor right by one cell, or, if already at the
// right edge of the scroll region (or screen), sets a pending-wrap flag
// that the next printable character resolves into a wrap-and-advance
// instead of advancing immediately.
func (t *Terminal) AdvanceOrPend() {
	right := t.scrollRight - 1
	if !t.inScrollColumns() {
		right = t.width - 1
	}
	if t.cursorX >= right {
		t.pendingWrap = true
		return
	}
	t.cursorX++
	t.alt.Active().SetCursorPos(t.cursorX, t.cursorY)
}

// resolvePendingAdvance performs the wrap a pending AdvanceOrPend deferred,
// called immediately before the next printable character is written.
func (t *Terminal) resolvePendingAdvance() {
	if !t.pendingWrap {
		return
	}
	t.pendingWrap = false
	if !t.wrapMode {
		return
	}
	t.cursorX = t.scrollLeft
	if !t.inScrollColumns() {
		t.cursorX = 0
	}
	t.lineFeed()
}

// lineFeed moves the cursor down one row, scrolling the active region up
// by one when the cursor was already at its bottom edge.
func (t *Terminal) lineFeed() {
	bottom := t.scrollBottom - 1
	inRegion := t.cursorY >= t.scrollTop && t.cursorY < t.scrollBottom
	if !inRegion {
		bottom = t.height - 1
	}
	if t.cursorY >= bottom {
		if inRegion {
			t.scrollRegionUp(1)
		}
		return
	}
	t.cursorY++
	t.alt.Active().SetCursorPos(t.cursorX, t.cursorY)
}

// reverseLineFeed (RI) is lineFeed's mirror image: moves up, scrolling the
// region down by one at the top edge.
func (t *Terminal) reverseLineFeed() {
	top := t.scrollTop
	inRegion := t.cursorY >= t.scrollTop && t.cursorY < t.scrollBottom
	if !inRegion {
		top = 0
	}
	if t.cursorY <= top {
		if inRegion {
			t.scrollRegionDown(1)
		}
		return
	}
	t.cursorY--
	t.alt.Active().SetCursorPos(t.cursorX, t.cursorY)
}

func (t *Terminal) scrollRegionUp(n int) {
	t.alt.Active().ScrollUp(t.scrollTop, t.scrollBottom, t.scrollLeft, t.scrollRight, n, t.eraseFill())
}

func (t *Terminal) scrollRegionDown(n int) {
	t.alt.Active().ScrollDown(t.scrollTop, t.scrollBottom, t.scrollLeft, t.scrollRight, n, t.eraseFill())
}

// ScrollLeft (SL) pans the scroll area left by n columns; new blank
// columns appear at the right margin. Scrolling always operates only
// inside the margins.
func (t *Terminal) ScrollLeft(n int) {
	t.DeleteColumnsInScrollAreaAt(t.scrollLeft, n)
}

// ScrollRight (SR) pans the scroll area right by n columns.
func (t *Terminal) ScrollRight(n int) {
	t.InsertColumnsInScrollAreaAt(t.scrollLeft, n)
}

// CursorUp (CUU, and the index family with scrollAtEdge set) moves the
// cursor up n rows, stopping at the scroll region's top edge when the
// cursor started at or below it; any remainder either scrolls the region
// down (scrollAtEdge) or is discarded. A cursor outside the region moves
// toward the display edge instead.
func (t *Terminal) CursorUp(n int, scrollAtEdge bool) {
	t.ClearPendingAdvance()
	if n <= 0 {
		return
	}
	top := 0
	inRegion := t.inScrollColumns() && t.cursorY >= t.scrollTop
	if inRegion {
		top = t.scrollTop
	}
	moved := t.cursorY - clamp(t.cursorY-n, top, t.height-1)
	t.cursorY -= moved
	t.alt.Active().SetCursorPos(t.cursorX, t.cursorY)
	if rest := n - moved; rest > 0 && scrollAtEdge && inRegion {
		t.scrollRegionDown(rest)
	}
}

func (t *Terminal) CursorDown(n int, scrollAtEdge bool) {
	t.ClearPendingAdvance()
	if n <= 0 {
		return
	}
	bottom := t.height - 1
	inRegion := t.inScrollColumns() && t.cursorY < t.scrollBottom
	if inRegion {
		bottom = t.scrollBottom - 1
	}
	moved := clamp(t.cursorY+n, 0, bottom) - t.cursorY
	t.cursorY += moved
	t.alt.Active().SetCursorPos(t.cursorX, t.cursorY)
	if rest := n - moved; rest > 0 && scrollAtEdge && inRegion {
		t.scrollRegionUp(rest)
	}
}

// CursorLeft (CUB; DECBI with scrollAtEdge) stops at the left scroll
// margin when the cursor started at or right of it, scrolling the region
// right by the remainder when asked.
func (t *Terminal) CursorLeft(n int, scrollAtEdge bool) {
	t.ClearPendingAdvance()
	if n <= 0 {
		return
	}
	left := 0
	inRegion := t.cursorX >= t.scrollLeft
	if inRegion {
		left = t.scrollLeft
	}
	moved := t.cursorX - clamp(t.cursorX-n, left, t.width-1)
	t.cursorX -= moved
	t.alt.Active().SetCursorPos(t.cursorX, t.cursorY)
	if rest := n - moved; rest > 0 && scrollAtEdge && inRegion {
		t.ScrollRight(rest)
	}
}

// CursorRight (CUF; DECFI with scrollAtEdge) mirrors CursorLeft at the
// right margin, scrolling the region left by the remainder.
func (t *Terminal) CursorRight(n int, scrollAtEdge bool) {
	t.ClearPendingAdvance()
	if n <= 0 {
		return
	}
	right := t.width - 1
	inRegion := t.cursorX < t.scrollRight
	if inRegion {
		right = t.scrollRight - 1
	}
	moved := clamp(t.cursorX+n, 0, right) - t.cursorX
	t.cursorX += moved
	t.alt.Active().SetCursorPos(t.cursorX, t.cursorY)
	if rest := n - moved; rest > 0 && scrollAtEdge && inRegion {
		t.ScrollLeft(rest)
	}
}

// Home moves the cursor to the origin (top-left of the scroll region under
// DECOM, else the screen's top-left).
func (t *Terminal) Home() {
	t.setCursor(t.originX(), t.originY())
}

// GotoX/GotoY/GotoYX take 0-based coordinates already translated from the
// DEC 1-based forms; under origin mode they are relative to the scroll
// origin and clamped within the scroll margins.
func (t *Terminal) GotoX(x int) {
	t.setCursor(clamp(t.originX()+x, t.originX(), t.limitX()), t.cursorY)
}

func (t *Terminal) GotoY(y int) {
	t.setCursor(t.cursorX, clamp(t.originY()+y, t.originY(), t.limitY()))
}

func (t *Terminal) GotoYX(y, x int) {
	t.setCursor(clamp(t.originX()+x, t.originX(), t.limitX()), clamp(t.originY()+y, t.originY(), t.limitY()))
}

// Advance unconditionally steps the cursor right by one without wrap
// semantics, stopping at the last column.
func (t *Terminal) Advance() {
	if t.cursorX < t.width-1 {
		t.cursorX++
		t.alt.Active().SetCursorPos(t.cursorX, t.cursorY)
	}
}
