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

import (
	"strconv"
	"strings"

	"github.com/vt48/term/utf8"
)

// Flags configures dialect variations the decoder must tolerate. None of
// them change the event shapes delivered to the sink, only which bytes are
// accepted in which states.
type Flags struct {
	PermitControlStrings bool // deliver DCS/OSC/PM/APC/SOS as KindControlString instead of discarding
	PermitCancel         bool // honour CAN/SUB aborting the sequence in progress
	Permit7BitExtensions bool // accept bare ESC Fe (0x40-0x5F) as the equivalent C1 control
	InterixMode          bool
	RxvtMode             bool
	LinuxFKeys           bool
}

// Sink receives classified events, one call per Event.
type Sink func(Event)

// Decoder classifies a byte stream (via an embedded utf8.Decoder) into
// ECMA-48 events. It is the direct generalisation of the teacher's
// byte-at-a-time inbXxx state functions, widened to cover colon
// sub-arguments, private markers, and the full string-introducer set.
type Decoder struct {
	flags Flags
	sink  Sink
	u     *utf8.Decoder

	state func(rune)

	shiftLevel int // raised by SS2/SS3 for exactly the next printable

	// escape/CSI accumulation
	intermediate byte
	private      byte
	param        strings.Builder // raw parameter text between SI and final
	stringKind   StringKind
	str          strings.Builder
}

// NewDecoder returns a Decoder that delivers events to sink.
func NewDecoder(flags Flags, sink Sink) *Decoder {
	d := &Decoder{flags: flags, sink: sink, shiftLevel: 1}
	d.state = d.ground
	d.u = utf8.NewDecoder(d.feedRune)
	return d
}

// Feed decodes one input byte, classifying any completed UTF-8 code point
// through the ECMA-48 state machine.
func (d *Decoder) Feed(b byte) {
	d.u.Feed(b)
}

func (d *Decoder) feedRune(r utf8.Result) {
	if r.Error && r.Rune > 0x7F {
		// malformed multi-byte input in the middle of ground state: surface
		// it as a flagged printable rather than attempting to classify
		// garbage as a control.
		d.emitPrintable(r.Rune, true)
		return
	}
	d.state(r.Rune)
}

func (d *Decoder) emitPrintable(r rune, errFlag bool) {
	level := d.shiftLevel
	d.shiftLevel = 1
	d.sink(Event{Kind: KindPrintable, Rune: r, ShiftLevel: level, Error: errFlag})
}

func (d *Decoder) emitControl(b byte) {
	d.sink(Event{Kind: KindControl, Control: b})
}

func (d *Decoder) ground(r rune) {
	switch {
	case r >= 0x20 && r != 0x7F && r < 0x80:
		d.emitPrintable(r, false)
	case r >= 0xA0:
		d.emitPrintable(r, false)
	case r == 0x1B:
		d.resetSeq()
		d.state = d.afterEsc
	case r == 0x18, r == 0x1A: // CAN, SUB
		d.emitControl(byte(r))
	case r == 0x90: // DCS (C1)
		d.beginString(StringDCS)
	case r == 0x9D: // OSC (C1)
		d.beginString(StringOSC)
	case r == 0x9E: // PM (C1)
		d.beginString(StringPM)
	case r == 0x9F: // APC (C1)
		d.beginString(StringAPC)
	case r == 0x98: // SOS (C1)
		d.beginString(StringSOS)
	case r == 0x9B: // CSI (C1)
		d.resetSeq()
		d.state = d.csiParam
	case r == 0x8E: // SS2
		d.shiftLevel = 2
	case r == 0x8F: // SS3
		d.shiftLevel = 3
	case r < 0x20 || r == 0x7F:
		d.emitControl(byte(r))
	default:
		d.emitControl(byte(r))
	}
}

func (d *Decoder) resetSeq() {
	d.intermediate = 0
	d.private = 0
	d.param.Reset()
}

func (d *Decoder) afterEsc(r rune) {
	d.state = d.ground
	switch {
	case r == '[':
		d.resetSeq()
		d.state = d.csiParam
	case r == 'P':
		d.beginString(StringDCS)
	case r == ']':
		d.beginString(StringOSC)
	case r == '^':
		d.beginString(StringPM)
	case r == '_':
		d.beginString(StringAPC)
	case r == 'X':
		d.beginString(StringSOS)
	case r >= 0x20 && r <= 0x2F:
		d.intermediate = byte(r)
		d.state = d.escIntermediate
	case d.flags.Permit7BitExtensions && r >= 0x40 && r <= 0x5F:
		// ESC Fe is the 7-bit encoding of the C1 control 0x40 higher; the
		// string introducers and CSI above are just the cases common enough
		// to be handled even with the extension flag off.
		d.feedRune(utf8.Result{Rune: rune(r) + 0x40})
	case r >= 0x30 && r <= 0x7E:
		d.sink(Event{Kind: KindEscape, Final: byte(r)})
	default:
		// malformed escape: drop silently, matching SoftTerm's policy of
		// never failing on unrecognised input.
	}
}

func (d *Decoder) escIntermediate(r rune) {
	switch {
	case r >= 0x20 && r <= 0x2F:
		// only the first intermediate is retained per spec; later ones are
		// consumed but not reported.
	case r >= 0x30 && r <= 0x7E:
		d.state = d.ground
		d.sink(Event{Kind: KindEscape, Final: byte(r), Intermediate: d.intermediate})
	default:
		d.state = d.ground
	}
}

func (d *Decoder) csiParam(r rune) {
	switch {
	case d.flags.PermitCancel && (r == 0x18 || r == 0x1A):
		d.state = d.ground
	case r >= 0x3C && r <= 0x3F && d.param.Len() == 0:
		d.private = byte(r)
	case r >= 0x30 && r <= 0x3F:
		d.param.WriteRune(r)
	case r >= 0x20 && r <= 0x2F:
		d.intermediate = byte(r)
		d.state = d.csiIntermediate
	case r >= 0x40 && r <= 0x7E:
		d.finishCSI(byte(r))
	default:
		d.state = d.ground
	}
}

func (d *Decoder) csiIntermediate(r rune) {
	switch {
	case d.flags.PermitCancel && (r == 0x18 || r == 0x1A):
		d.state = d.ground
	case r >= 0x20 && r <= 0x2F:
		// each further intermediate replaces the last: a control sequence
		// reports its last intermediate byte
		d.intermediate = byte(r)
	case r >= 0x40 && r <= 0x7E:
		d.finishCSI(byte(r))
	default:
		d.state = d.ground
	}
}

func (d *Decoder) finishCSI(final byte) {
	d.state = d.ground
	d.sink(Event{
		Kind:         KindControlSequence,
		Final:        final,
		Intermediate: d.intermediate,
		Private:      d.private,
		Args:         parseArgs(d.param.String()),
	})
}

func (d *Decoder) beginString(kind StringKind) {
	d.stringKind = kind
	if !d.flags.PermitControlStrings {
		d.state = d.discardString
		return
	}
	d.str.Reset()
	d.state = d.inString
}

func (d *Decoder) inString(r rune) {
	switch {
	case r == 0x9C: // ST (C1)
		d.state = d.ground
		d.sink(Event{Kind: KindControlString, StringKind: d.stringKind, Text: d.str.String()})
	case r == 0x07 && d.stringKind == StringOSC:
		// xterm convention: BEL terminates an OSC string.
		d.state = d.ground
		d.sink(Event{Kind: KindControlString, StringKind: d.stringKind, Text: d.str.String()})
	case r == 0x1B:
		d.state = d.stringEsc
	case d.flags.PermitCancel && (r == 0x18 || r == 0x1A):
		d.state = d.ground
	default:
		d.str.WriteRune(r)
	}
}

func (d *Decoder) stringEsc(r rune) {
	if r == '\\' {
		d.state = d.ground
		d.sink(Event{Kind: KindControlString, StringKind: d.stringKind, Text: d.str.String()})
		return
	}
	d.str.WriteRune(0x1B)
	d.state = d.inString
	d.inString(r)
}

func (d *Decoder) discardString(r rune) {
	switch {
	case r == 0x9C:
		d.state = d.ground
	case r == 0x07 && d.stringKind == StringOSC:
		d.state = d.ground
	case r == 0x1B:
		d.state = d.discardStringEsc
	case d.flags.PermitCancel && (r == 0x18 || r == 0x1A):
		d.state = d.ground
	}
}

func (d *Decoder) discardStringEsc(r rune) {
	if r == '\\' {
		d.state = d.ground
		return
	}
	d.state = d.discardString
	d.discardString(r)
}

// parseArgs splits raw CSI parameter text (already stripped of any private
// marker) into an ArgVector: semicolon-separated parameters, each itself
// colon-separated sub-arguments, with omitted fields left as a nil or
// empty slice rather than defaulted here (the ECMA48Output/SoftTerm layer
// applies its own zero-default policy via the Get* helpers).
func parseArgs(raw string) ArgVector {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ";")
	out := make(ArgVector, len(parts))
	for i, p := range parts {
		if p == "" {
			continue
		}
		subs := strings.Split(p, ":")
		vec := make([]int, len(subs))
		for j, s := range subs {
			if s == "" {
				continue
			}
			v, err := strconv.Atoi(s)
			if err != nil {
				continue
			}
			vec[j] = v
		}
		out[i] = vec
	}
	return out
}
