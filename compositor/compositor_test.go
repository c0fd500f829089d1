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

package compositor

import (
	"testing"

	"github.com/vt48/term/cellmodel"
	"github.com/vt48/term/uniclass"
)

func TestRepaintTouchesOnlyDifferences(t *testing.T) {
	c := New(3, 1)
	for x := 0; x < 3; x++ {
		c.Poke(0, x, cellmodel.Erased)
	}
	c.RepaintNewToCur()
	for x := 0; x < 3; x++ {
		c.Untouch(x, 0)
	}
	c.Poke(0, 1, cellmodel.Cell{Character: 'X'})
	c.RepaintNewToCur()
	for x := 0; x < 3; x++ {
		_, touched := c.Cur(x, 0)
		want := x == 1
		if touched != want {
			t.Errorf("cell %d touched=%v, want %v", x, touched, want)
		}
	}
}

func TestScrollUpTouchesExposedRows(t *testing.T) {
	c := New(2, 3)
	for i := range c.cur {
		c.cur[i].touched = false
	}
	c.ScrollUp(1)
	for x := 0; x < 2; x++ {
		if _, touched := c.Cur(x, 2); !touched {
			t.Errorf("exposed row not touched at col %d", x)
		}
		if _, touched := c.Cur(x, 0); touched {
			t.Errorf("unexposed row unexpectedly touched at col %d", x)
		}
	}
}

func TestWidthShadowRetouchedWhenGlyphNarrows(t *testing.T) {
	c := New(4, 1)
	c.Poke(0, 0, cellmodel.Cell{Character: '漢'})
	c.Poke(0, 1, cellmodel.Cell{Character: ' '})
	c.RepaintNewToCur()
	for x := 0; x < 4; x++ {
		c.Untouch(x, 0)
	}
	// replace the wide glyph with a narrow one; its old second column holds
	// an unchanged blank that must nonetheless be rewritten on the host.
	c.Poke(0, 0, cellmodel.Cell{Character: 'x'})
	c.TouchWidthShadows(uniclass.Width)
	c.RepaintNewToCur()
	if _, touched := c.Cur(1, 0); !touched {
		t.Errorf("shadow cell of the narrowed glyph should be touched")
	}
}

func TestSoftwareCursorTouchesOldAndNewPosition(t *testing.T) {
	c := New(5, 5)
	c.SetSoftwareCursor(true)
	for i := range c.cur {
		c.cur[i].touched = false
	}
	c.MoveCursor(2, 2)
	c.MoveCursor(3, 3)
	if _, touched := c.Cur(2, 2); !touched {
		t.Errorf("old cursor cell should be touched")
	}
	if _, touched := c.Cur(3, 3); !touched {
		t.Errorf("new cursor cell should be touched")
	}
}
