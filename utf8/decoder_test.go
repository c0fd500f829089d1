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

package utf8

import (
	"testing"
	goutf8 "unicode/utf8"
)

func TestASCIIRoundTrip(t *testing.T) {
	in := []byte("Hello, World!")
	results := DecodeString(in)
	var out []byte
	for _, r := range results {
		if r.Error {
			t.Fatalf("unexpected decode error for ASCII input")
		}
		var buf [4]byte
		n := goutf8.EncodeRune(buf[:], r.Rune)
		out = append(out, buf[:n]...)
	}
	if string(out) != string(in) {
		t.Errorf("round trip mismatch: got %q want %q", out, in)
	}
}

func TestMultiByteRoundTrip(t *testing.T) {
	in := []byte("héllo wörld 世界 🎉")
	results := DecodeString(in)
	var out []byte
	for _, r := range results {
		if r.Error {
			t.Fatalf("unexpected decode error: %+v", r)
		}
		var buf [4]byte
		n := goutf8.EncodeRune(buf[:], r.Rune)
		out = append(out, buf[:n]...)
	}
	if string(out) != string(in) {
		t.Errorf("round trip mismatch: got %q want %q", out, in)
	}
}

func TestBrokenContinuationRestarts(t *testing.T) {
	// 0xC2 starts a 2-byte sequence, but 'A' (0x41) is not a continuation
	// byte: the decoder should emit a replacement for the partial state
	// and then decode 'A' as plain ASCII.
	in := []byte{0xC2, 'A'}
	results := DecodeString(in)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %+v", len(results), results)
	}
	if !results[0].Error || results[0].Rune != replacement {
		t.Errorf("first result should be a replacement error, got %+v", results[0])
	}
	if results[1].Error || results[1].Rune != 'A' {
		t.Errorf("second result should decode 'A' cleanly, got %+v", results[1])
	}
}

func TestOverlongDetected(t *testing.T) {
	// 0xC0 0x80 is an overlong encoding of NUL.
	results := DecodeString([]byte{0xC0, 0x80})
	if len(results) != 1 || !results[0].Overlong || !results[0].Error {
		t.Errorf("expected overlong error, got %+v", results)
	}
}

func TestSurrogateFlaggedButEmitted(t *testing.T) {
	// 0xED 0xA0 0x80 encodes U+D800, a UTF-16 surrogate.
	results := DecodeString([]byte{0xED, 0xA0, 0x80})
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if !results[0].Error {
		t.Errorf("expected surrogate to be flagged as error")
	}
	if results[0].Rune != 0xD800 {
		t.Errorf("surrogate code point should still be emitted: got %x", results[0].Rune)
	}
}

func TestLoneContinuationByte(t *testing.T) {
	results := DecodeString([]byte{0x80})
	if len(results) != 1 || !results[0].Error || results[0].Rune != 0x80 {
		t.Errorf("lone continuation byte should emit error with raw byte, got %+v", results)
	}
}

func TestArchaicSixByteFormConsumedInSync(t *testing.T) {
	// FC 80 80 80 80 80 is the archaic 6-byte encoding of U+0000: one
	// flagged result, and the following byte decodes cleanly.
	results := DecodeString([]byte{0xFC, 0x80, 0x80, 0x80, 0x80, 0x80, 'A'})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d: %+v", len(results), results)
	}
	if !results[0].Error || !results[0].Overlong {
		t.Errorf("6-byte NUL should be flagged overlong, got %+v", results[0])
	}
	if results[1].Rune != 'A' || results[1].Error {
		t.Errorf("stream out of sync after archaic form: %+v", results[1])
	}
}
