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

package ecma48

import "testing"

func decodeAll(flags Flags, s string) []Event {
	var events []Event
	d := NewDecoder(flags, func(e Event) { events = append(events, e) })
	for _, b := range []byte(s) {
		d.Feed(b)
	}
	return events
}

func TestPrintableRun(t *testing.T) {
	events := decodeAll(Flags{}, "ABC")
	if len(events) != 3 {
		t.Fatalf("expected 3 printable events, got %d", len(events))
	}
	for i, want := range []rune{'A', 'B', 'C'} {
		if events[i].Kind != KindPrintable || events[i].Rune != want {
			t.Errorf("event %d = %+v, want printable %q", i, events[i], want)
		}
	}
}

func TestCSISequenceClassicForm(t *testing.T) {
	events := decodeAll(Flags{}, "\x1b[2J")
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d: %+v", len(events), events)
	}
	e := events[0]
	if e.Kind != KindControlSequence || e.Final != 'J' {
		t.Fatalf("unexpected event: %+v", e)
	}
	if e.Args.GetArgOneIfZeroOrEmpty(0, 0) != 2 {
		t.Errorf("arg 0 = %d, want 2", e.Args.GetArgZeroIfEmpty(0, 0))
	}
}

func TestCSIPrivateMarker(t *testing.T) {
	events := decodeAll(Flags{}, "\x1b[?1049h")
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Private != '?' || e.Final != 'h' {
		t.Fatalf("unexpected event: %+v", e)
	}
	if e.Args.GetArgZeroIfEmpty(0, 0) != 1049 {
		t.Errorf("arg = %d, want 1049", e.Args.GetArgZeroIfEmpty(0, 0))
	}
}

func TestCSIColonSubArguments(t *testing.T) {
	events := decodeAll(Flags{}, "\x1b[38:2::10:20:30m")
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Args.QuerySubArgCount(0) != 6 {
		t.Fatalf("expected 6 sub-args on parameter 0, got %d: %+v", e.Args.QuerySubArgCount(0), e.Args)
	}
}

func TestSemicolonAndColonFormsCollapseEqually(t *testing.T) {
	semi := decodeAll(Flags{}, "\x1b[38;5;200m")[0]
	collapsed, _ := CollapseArgsToSubArgs(semi.Args, 1)
	if len(collapsed) != 2 || collapsed[0] != 5 || collapsed[1] != 200 {
		t.Errorf("collapsed semicolon form = %+v, want [5 200]", collapsed)
	}
	colon := decodeAll(Flags{}, "\x1b[38:5:200m")[0]
	if payload := colon.Args[0][1:]; len(payload) != 2 || payload[0] != 5 || payload[1] != 200 {
		t.Errorf("colon form payload = %+v, want the same [5 200]", payload)
	}
}

func TestEscapeSequenceWithIntermediate(t *testing.T) {
	events := decodeAll(Flags{}, "\x1b#8")
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	e := events[0]
	if e.Kind != KindEscape || e.Intermediate != '#' || e.Final != '8' {
		t.Errorf("unexpected event: %+v", e)
	}
}

func TestControlStringDeliveredWhenPermitted(t *testing.T) {
	events := decodeAll(Flags{PermitControlStrings: true}, "\x1b]0;title\x07")
	if len(events) != 1 || events[0].Kind != KindControlString {
		t.Fatalf("expected 1 control-string event, got %+v", events)
	}
	if events[0].Text != "0;title" {
		t.Errorf("text = %q, want %q", events[0].Text, "0;title")
	}
}

func TestControlStringDroppedWhenNotPermitted(t *testing.T) {
	events := decodeAll(Flags{PermitControlStrings: false}, "\x1b]0;title\x07A")
	if len(events) != 1 || events[0].Kind != KindPrintable {
		t.Fatalf("expected only the trailing printable, got %+v", events)
	}
}

func TestShiftLevelDefaultsToOne(t *testing.T) {
	events := decodeAll(Flags{}, "A")
	if events[0].ShiftLevel != 1 {
		t.Fatalf("first printable shift level = %d, want 1", events[0].ShiftLevel)
	}
}

func TestSS2RaisesShiftForOnePrintable(t *testing.T) {
	events := decodeAll(Flags{Permit7BitExtensions: true}, "\x1bNAB")
	if len(events) != 2 {
		t.Fatalf("expected 2 printables, got %+v", events)
	}
	if events[0].ShiftLevel != 2 {
		t.Errorf("printable after SS2 shift = %d, want 2", events[0].ShiftLevel)
	}
	if events[1].ShiftLevel != 1 {
		t.Errorf("shift must fall back to 1 after one printable, got %d", events[1].ShiftLevel)
	}
}

func TestEscFeTreatedAsC1WhenPermitted(t *testing.T) {
	// ESC D is IND; with 7-bit extensions on it must surface as the C1
	// control 0x84, not as a plain escape sequence.
	events := decodeAll(Flags{Permit7BitExtensions: true}, "\x1bD")
	if len(events) != 1 || events[0].Kind != KindControl || events[0].Control != 0x84 {
		t.Fatalf("ESC D = %+v, want control 0x84", events)
	}
}

func TestCANAbortsSequence(t *testing.T) {
	events := decodeAll(Flags{PermitCancel: true}, "\x1b[1;2\x18A")
	if len(events) != 1 || events[0].Kind != KindPrintable || events[0].Rune != 'A' {
		t.Fatalf("expected CAN to elide the sequence, got %+v", events)
	}
}
