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

// Package utf8 decodes a raw byte stream into Unicode code points one byte
// at a time, the way Decoder's sole consumer (the ecma48 package) needs to
// feed it: synchronously, with no buffering beyond the bytes of the
// sequence currently in flight.
package utf8

const (
	maxCodePoint  = 0x10FFFF
	surrogateLo   = 0xD800
	surrogateHi   = 0xDFFF
	replacement   = 0xFFFD
)

// Result is what the Decoder reports for a single assembled code point (or
// a replacement emitted for a broken sequence).
type Result struct {
	Rune     rune
	Error    bool // malformed input: overlong, surrogate, out of range, bad continuation
	Overlong bool
}

// Sink receives one Result per emitted code point, including the
// replacement rune emitted when a sequence breaks partway through.
type Sink func(Result)

// Decoder assembles UTF-8 code points byte by byte. Create one with
// NewDecoder; the zero value has no state function and no sink.
type Decoder struct {
	state func(byte)
	sink  Sink

	need int    // continuation bytes still expected
	got  int    // continuation bytes already consumed
	acc  rune   // accumulated code point
	min  rune   // minimum legal value for the in-progress length (overlong check)
}

// NewDecoder returns a Decoder that calls sink for every decoded code point.
func NewDecoder(sink Sink) *Decoder {
	d := &Decoder{sink: sink}
	d.state = d.ground
	return d
}

// Feed decodes a single input byte, synchronously invoking the sink zero or
// more times (zero while a multi-byte sequence is still in flight, once
// when it completes or is aborted, or twice if the current byte both
// aborts a partial sequence and starts a fresh one).
func (d *Decoder) Feed(b byte) {
	d.state(b)
}

func (d *Decoder) ground(b byte) {
	switch {
	case b < 0x80:
		d.sink(Result{Rune: rune(b)})
	case b&0xE0 == 0xC0:
		d.begin(b&0x1F, 1, 0x80)
	case b&0xF0 == 0xE0:
		d.begin(b&0x0F, 2, 0x800)
	case b&0xF8 == 0xF0:
		d.begin(b&0x07, 3, 0x10000)
	case b&0xFC == 0xF8:
		// archaic 5- and 6-byte forms: structurally consumed so the stream
		// stays in sync, though the result is always out of range.
		d.begin(b&0x03, 4, 0x200000)
	case b&0xFE == 0xFC:
		d.begin(b&0x01, 5, 0x4000000)
	default:
		// either a continuation byte with no start, or an invalid
		// start byte (0x80-0xBF alone, or 0xFE/0xFF).
		d.sink(Result{Rune: rune(b), Error: true})
	}
}

func (d *Decoder) begin(lead byte, need int, min rune) {
	d.acc = rune(lead)
	d.need = need
	d.got = 0
	d.min = min
	d.state = d.continuation
}

func (d *Decoder) continuation(b byte) {
	if b&0xC0 != 0x80 {
		// continuation expected but not seen: emit replacement for the
		// partial state, then restart classification with the new byte.
		d.sink(Result{Rune: replacement, Error: true})
		d.state = d.ground
		d.state(b)
		return
	}
	d.acc = (d.acc << 6) | rune(b&0x3F)
	d.got++
	if d.got < d.need {
		return
	}
	d.state = d.ground
	r := d.acc
	overlong := r < d.min
	bad := overlong || r > maxCodePoint || (r >= surrogateLo && r <= surrogateHi)
	d.sink(Result{Rune: r, Error: bad, Overlong: overlong})
}

// DecodeString is a convenience wrapper for tests and CLIs: it runs the full
// byte sequence through a fresh Decoder and returns the emitted Results.
func DecodeString(b []byte) []Result {
	var out []Result
	d := NewDecoder(func(r Result) { out = append(out, r) })
	for _, c := range b {
		d.Feed(c)
	}
	return out
}
