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

package screenbuf

import (
	"io"
	"testing"

	"github.com/vt48/term/cellmodel"
)

func TestWriteAndReadCell(t *testing.T) {
	b := New(10, 5)
	c := cellmodel.Cell{Character: 'X', Colours: cellmodel.PairDefault}
	b.WriteNCells(2, 1, 1, c)
	got := b.ReadCell(2, 1)
	if got.Character != 'X' {
		t.Errorf("ReadCell = %+v, want character X", got)
	}
}

func TestScrollUpFillsVacatedRow(t *testing.T) {
	b := New(4, 3)
	b.WriteNCells(0, 0, 4, cellmodel.Cell{Character: 'A'})
	b.WriteNCells(0, 1, 4, cellmodel.Cell{Character: 'B'})
	b.WriteNCells(0, 2, 4, cellmodel.Cell{Character: 'C'})
	fill := cellmodel.Cell{Character: ' ', Colours: cellmodel.PairErased}
	b.ScrollUp(0, 3, 0, 4, 1, fill)
	if b.ReadCell(0, 0).Character != 'B' {
		t.Errorf("row 0 after scroll = %q, want B", b.ReadCell(0, 0).Character)
	}
	if b.ReadCell(0, 2).Character != ' ' {
		t.Errorf("vacated row not filled: %+v", b.ReadCell(0, 2))
	}
}

func TestScrollClampsDegenerateRanges(t *testing.T) {
	b := New(4, 3)
	b.WriteNCells(0, 0, 4, cellmodel.Cell{Character: 'A'})
	fill := cellmodel.Cell{Character: ' ', Colours: cellmodel.PairErased}
	// negative and oversized bounds must be confined to the buffer, not
	// reach a negative cell offset.
	b.ScrollUp(-1, 100, -5, 100, 1, fill)
	b.ScrollDown(-1, 0, 0, 4, 1, fill)
	if got := b.ReadCell(3, 2); got.Character != ' ' {
		t.Errorf("bottom row after clamped scroll = %q, want fill", got.Character)
	}
}

func TestCopyNCellsHandlesOverlap(t *testing.T) {
	b := New(10, 1)
	for i := 0; i < 5; i++ {
		b.WriteNCells(i, 0, 1, cellmodel.Cell{Character: rune('A' + i)})
	}
	b.CopyNCells(2, 0, 0, 0, 5) // shift right by 2, overlapping source/dest
	want := "ABABCDE"
	for i, want := range []rune(want) {
		if got := b.ReadCell(i, 0).Character; got != want {
			t.Errorf("cell %d = %q, want %q", i, got, want)
		}
	}
}

func TestCursorClampedToBounds(t *testing.T) {
	b := New(5, 5)
	b.SetCursorPos(100, 100)
	x, y := b.CursorPos()
	if x != 4 || y != 4 {
		t.Errorf("cursor = (%d,%d), want clamped to (4,4)", x, y)
	}
}

func TestAltBufferRestoresPrimaryByteForByte(t *testing.T) {
	primary := New(3, 1)
	primary.WriteNCells(0, 0, 3, cellmodel.Cell{Character: 'P'})
	ab := NewAltBuffer(primary)
	ab.SetAltBuffer(true)
	ab.Active().WriteNCells(0, 0, 3, cellmodel.Cell{Character: 'A'})
	ab.SetAltBuffer(false)
	for i := 0; i < 3; i++ {
		if got := ab.Active().ReadCell(i, 0).Character; got != 'P' {
			t.Errorf("cell %d after restoring primary = %q, want P", i, got)
		}
	}
}

func TestInputPipeCarriesQueuedMessages(t *testing.T) {
	path := t.TempDir() + "/input"
	r, err := CreateInputPipe(path)
	if err != nil {
		t.Fatalf("CreateInputPipe: %v", err)
	}
	defer r.Close()
	w, err := OpenInputPipe(path)
	if err != nil {
		t.Fatalf("OpenInputPipe: %v", err)
	}
	defer w.Close()

	var q OutQueue
	q.Push(Msg{Tag: TagUCS3, A: 'q'})
	if err := q.FlushTo(w); err != nil {
		t.Fatalf("FlushTo: %v", err)
	}
	if !q.Empty() {
		t.Fatalf("queue should be drained after a flush")
	}
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		t.Fatalf("reading pipe: %v", err)
	}
	if m := DecodeMsg(buf); m.Tag != TagUCS3 || m.A != 'q' {
		t.Fatalf("decoded %+v, want the queued UCS3 'q'", m)
	}
}

func TestMsgRoundTrip(t *testing.T) {
	m := Msg{Tag: TagUCS3, A: 0x1F389}
	got := DecodeMsg(m.Encode())
	if got.Tag != TagUCS3 || got.A != 0x1F389 {
		t.Errorf("round trip = %+v, want %+v", got, m)
	}

	wheel := Msg{Tag: TagMouseWheel, Mod: ModControl, A: 0, B: -3}
	got = DecodeMsg(wheel.Encode())
	if got.B != -3 || got.Mod != ModControl {
		t.Errorf("wheel round trip = %+v, want %+v", got, wheel)
	}
}
