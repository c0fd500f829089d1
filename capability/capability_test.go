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

package capability

import "testing"

func TestXtermTruecolor(t *testing.T) {
	d := FromEnv("xterm-256color", "truecolor", "", "en_US.UTF-8")
	if d.ColourLevel != ColourDirectISO {
		t.Errorf("ColourLevel = %v, want ColourDirectISO", d.ColourLevel)
	}
	if d.CursorShapeCommand != CursorShapeXTermDECSCUSR {
		t.Errorf("CursorShapeCommand = %v, want xterm DECSCUSR", d.CursorShapeCommand)
	}
}

func TestLinuxConsoleDegradesGracefully(t *testing.T) {
	d := FromEnv("linux", "", "", "C")
	if !d.LacksREP || !d.LacksNEL {
		t.Errorf("linux console should lack REP and NEL: %+v", d)
	}
	if d.CursorShapeCommand != CursorShapeLinuxSCUSR {
		t.Errorf("linux console should use SCUSR, got %v", d.CursorShapeCommand)
	}
}

func TestDumbTermDegradesToNoColour(t *testing.T) {
	d := FromEnv("dumb", "", "", "")
	if d.ColourLevel != ColourNone {
		t.Errorf("dumb terminal should have no colour, got %v", d.ColourLevel)
	}
}
