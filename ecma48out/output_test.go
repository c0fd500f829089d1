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

package ecma48out

import (
	"strings"
	"testing"

	"github.com/vt48/term/capability"
	"github.com/vt48/term/cellmodel"
)

func TestGotoYXOrigin(t *testing.T) {
	e := New(capability.Descriptor{})
	e.GotoYX(1, 1)
	if got := string(e.Bytes()); got != "\x1b[H" {
		t.Fatalf("GotoYX(1,1) = %q, want bare CUP", got)
	}
}

func TestGotoYXGeneral(t *testing.T) {
	e := New(capability.Descriptor{})
	e.GotoYX(3, 5)
	if got := string(e.Bytes()); got != "\x1b[3;5H" {
		t.Fatalf("GotoYX(3,5) = %q", got)
	}
}

func TestSGRAttrNoChangeEmitsNothing(t *testing.T) {
	e := New(capability.Descriptor{ColourLevel: capability.ColourECMA16})
	e.SGRAttr(cellmodel.Bold, cellmodel.Bold, cellmodel.PairDefault, cellmodel.PairDefault)
	if got := e.Bytes(); len(got) != 0 {
		t.Fatalf("expected no output for unchanged attrs, got %q", got)
	}
}

func TestSGRAttrBoldToggle(t *testing.T) {
	e := New(capability.Descriptor{})
	e.SGRAttr(0, cellmodel.Bold, cellmodel.PairDefault, cellmodel.PairDefault)
	if got := string(e.Bytes()); !strings.Contains(got, "1") {
		t.Fatalf("expected bold-on param, got %q", got)
	}
}

func TestSGRColourDirectISO(t *testing.T) {
	e := New(capability.Descriptor{ColourLevel: capability.ColourDirectISO})
	params := e.sgrColourParams(cellmodel.MapTrueColour(10, 20, 30), false)
	if len(params) != 1 || !strings.Contains(params[0], "38:2::10:20:30") {
		t.Fatalf("params = %v", params)
	}
}
