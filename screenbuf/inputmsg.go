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

import "encoding/binary"

// MsgTag classes the fixed 4-byte input messages a consumer realizer
// writes back to the producer through the named-pipe input queue. The
// layout mirrors the KeyCode/Modifier split in the teacher's vt.KbdEvent,
// but flattened into a tagged wire record rather than a Go struct, since
// this travels between processes.
type MsgTag uint8

const (
	TagUCS3 MsgTag = iota
	TagAcceleratorKey
	TagExtendedKey
	TagFunctionKey
	TagConsumerKey
	TagSystemKey
	TagSessionSelector
	TagMouseColumn
	TagMouseRow
	TagMouseDepth
	TagMouseButton
	TagMouseWheel
)

// Modifier mask bits, shared across every tag that carries modifiers.
const (
	ModControl Modifier = 0x01
	ModLevel2  Modifier = 0x02
	ModLevel3  Modifier = 0x04
	ModGroup2  Modifier = 0x08
	ModSuper   Modifier = 0x10
)

type Modifier uint8

// Msg is the decoded form of one 4-byte wire message.
type Msg struct {
	Tag  MsgTag
	Mod  Modifier
	A, B int32 // tag-specific payload; see Encode for the packing per tag
}

// Encode packs m into 4 little-endian bytes: byte 0 is the tag, byte 1 is
// the modifier mask (when applicable), bytes 2-3 (or, for UCS3, bytes 1-3)
// carry the tag-specific payload.
func (m Msg) Encode() [4]byte {
	var buf [4]byte
	buf[0] = byte(m.Tag)
	switch m.Tag {
	case TagUCS3:
		// 3-byte (24-bit) code point, enough for all of Unicode.
		v := uint32(m.A)
		buf[1] = byte(v)
		buf[2] = byte(v >> 8)
		buf[3] = byte(v >> 16)
	case TagMouseButton, TagMouseWheel:
		buf[1] = byte(m.Mod)
		buf[2] = byte(m.A) // button number, or wheel axis
		buf[3] = byte(m.B) // pressed flag, or signed delta
	case TagMouseColumn, TagMouseRow, TagMouseDepth:
		binary.LittleEndian.PutUint16(buf[2:4], uint16(m.A))
	default: // key-family tags: code + modifiers
		buf[1] = byte(m.Mod)
		binary.LittleEndian.PutUint16(buf[2:4], uint16(m.A))
	}
	return buf
}

// DecodeMsg unpacks a 4-byte wire message.
func DecodeMsg(buf [4]byte) Msg {
	m := Msg{Tag: MsgTag(buf[0])}
	switch m.Tag {
	case TagUCS3:
		m.A = int32(buf[1]) | int32(buf[2])<<8 | int32(buf[3])<<16
	case TagMouseButton, TagMouseWheel:
		m.Mod = Modifier(buf[1])
		m.A = int32(buf[2])
		m.B = int32(int8(buf[3]))
	case TagMouseColumn, TagMouseRow, TagMouseDepth:
		m.A = int32(binary.LittleEndian.Uint16(buf[2:4]))
	default:
		m.Mod = Modifier(buf[1])
		m.A = int32(binary.LittleEndian.Uint16(buf[2:4]))
	}
	return m
}

// OutQueue is the consumer-side outbound buffer of pending input messages;
// FlushTo writes to the input-pipe descriptor only while it is non-empty.
type OutQueue struct {
	pending []byte
}

func (q *OutQueue) Push(m Msg) {
	b := m.Encode()
	q.pending = append(q.pending, b[:]...)
}

func (q *OutQueue) Empty() bool { return len(q.pending) == 0 }

// Drain returns the buffered bytes and clears the queue. On a write error
// the caller should simply discard the pending buffer, per the error
// handling design (a write error to the input pipe is reported and the
// pending buffer discarded, not retried byte-for-byte).
func (q *OutQueue) Drain() []byte {
	b := q.pending
	q.pending = nil
	return b
}
