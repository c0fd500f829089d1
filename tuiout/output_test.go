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

package tuiout

import (
	"bytes"
	"testing"

	"github.com/vt48/term/capability"
	"github.com/vt48/term/cellmodel"
	"github.com/vt48/term/tty"
)

// fakeTty is a minimal tty.Tty satisfying the interface for tests; it
// records everything written and never produces input.
type fakeTty struct {
	bytes.Buffer
}

func (f *fakeTty) Start() error                    { return nil }
func (f *fakeTty) Stop() error                      { return nil }
func (f *fakeTty) Drain() error                     { return nil }
func (f *fakeTty) NotifyResize(chan<- bool)         {}
func (f *fakeTty) WindowSize() (tty.WindowSize, error) {
	return tty.WindowSize{Width: 10, Height: 3}, nil
}
func (f *fakeTty) Close() error { return nil }

func TestRenderWritesTouchedCells(t *testing.T) {
	ft := &fakeTty{}
	o := New(ft, capability.Descriptor{ColourLevel: capability.ColourECMA16}, 10, 3)
	o.Compositor().Poke(0, 0, cellmodel.Cell{Character: 'X', Colours: cellmodel.PairDefault})
	if err := o.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if ft.Len() == 0 {
		t.Fatalf("expected output bytes")
	}
	if !bytes.Contains(ft.Bytes(), []byte{'X'}) {
		t.Fatalf("expected written glyph 'X' in output, got %q", ft.String())
	}
}

func TestScrollOptimizeRotatesCurAndEmitsIND(t *testing.T) {
	ft := &fakeTty{}
	o := New(ft, capability.Descriptor{}, 10, 3)
	if err := o.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	ft.Reset()
	if !o.ScrollOptimize(1) {
		t.Fatalf("ScrollOptimize should succeed on a host with IND")
	}
	if err := o.flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if !bytes.Contains(ft.Bytes(), []byte("\x1bD")) {
		t.Fatalf("expected an IND in scroll output, got %q", ft.String())
	}
	for x := 0; x < 10; x++ {
		if _, touched := o.c.Cur(x, 2); !touched {
			t.Fatalf("exposed bottom row should be touched after scroll")
		}
	}
}

func TestScrollOptimizeRefusedWithoutRI(t *testing.T) {
	ft := &fakeTty{}
	o := New(ft, capability.Descriptor{LacksRI: true}, 10, 3)
	if o.ScrollOptimize(-1) {
		t.Fatalf("ScrollOptimize must refuse RI scrolling when the host lacks RI")
	}
}

func TestFixupInvisibleWithoutHostSupport(t *testing.T) {
	ft := &fakeTty{}
	o := New(ft, capability.Descriptor{LacksInvisible: true}, 10, 3)
	in := cellmodel.Cell{Character: 'S', Attr: cellmodel.Invisible, Colours: cellmodel.PairDefault}
	out := o.fixup(in, 5, 1)
	if out.Attr.Has(cellmodel.Invisible) {
		t.Fatalf("invisible attribute should be stripped for this host")
	}
	if out.Colours.Foreground != out.Colours.Background {
		t.Fatalf("invisible text must be rendered fg=bg, got %+v", out.Colours)
	}
}

func TestEnterFullScreenDisablesAutowrap(t *testing.T) {
	ft := &fakeTty{}
	o := New(ft, capability.Descriptor{}, 10, 3)
	if err := o.EnterFullScreen(); err != nil {
		t.Fatalf("EnterFullScreen: %v", err)
	}
	if !bytes.Contains(ft.Bytes(), []byte("\x1b[?7l")) {
		t.Fatalf("expected DECAWM off in full-screen entry, got %q", ft.String())
	}
	if !bytes.Contains(ft.Bytes(), []byte("\x1b[?1049h")) {
		t.Fatalf("expected alternate-screen entry, got %q", ft.String())
	}
}

func TestRenderTrailingBlankUsesEraseToEOL(t *testing.T) {
	ft := &fakeTty{}
	o := New(ft, capability.Descriptor{}, 10, 3)
	if err := o.Render(); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !bytes.Contains(ft.Bytes(), []byte("\x1b[K")) {
		t.Fatalf("expected an erase-to-EOL sequence in first-frame output, got %q", ft.String())
	}
}
