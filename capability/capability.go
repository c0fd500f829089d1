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

// Package capability builds the enumerated host-terminal capability record
// that ecma48out and tuiout consult to pick output dialects. Unlike the
// teacher's terminfo database (terminfo.go plus a per-terminal database
// under terminfo/), this is a small, explicit record constructed from a
// handful of environment variables, matching this engine's deliberate
// departure from terminfo lookups.
package capability

import (
	"os"
	"strings"
)

// ColourLevel enumerates how rich a colour palette the output emitter may
// assume, plus which colon/semicolon dialect it should use once it decides
// to emit an indexed or direct colour.
type ColourLevel int

const (
	ColourNone ColourLevel = iota
	ColourECMA8
	ColourECMA16
	Colour256Faulty
	Colour256ISO
	ColourDirectFaulty
	ColourDirectISO
)

// CursorShapeCommand selects which DECSCUSR dialect (if any) a terminal
// accepts for cursor-shape changes.
type CursorShapeCommand int

const (
	CursorShapeNone CursorShapeCommand = iota
	CursorShapeOriginalDECSCUSR
	CursorShapeXTermDECSCUSR
	CursorShapeExtendedDECSCUSR
	CursorShapeLinuxSCUSR
)

// KeymapVariant selects which function-key escape-sequence dialect the
// decoder side should assume for this host.
type KeymapVariant int

const (
	KeymapDefault KeymapVariant = iota
	KeymapLinuxEditing
	KeymapInterixFunction
	KeymapTekenFunction
	KeymapSCOFunction
	KeymapRxvtFunction
	KeymapLinuxFunction
)

// Descriptor is the full enumerated capability record.
type Descriptor struct {
	ColourLevel        ColourLevel
	CursorShapeCommand CursorShapeCommand
	Keymap             KeymapVariant

	// Use8BitC1 selects the single-byte 0x80-0x9F C1 encoding over the
	// two-byte ESC Fe form, decided once per session; safe only on hosts
	// known to run a full 8-bit ECMA-48 decoder in a non-UTF-8-conflicting
	// mode, so no terminal profile here turns it on by default.
	Use8BitC1 bool

	LacksPendingWrap  bool
	LacksNEL          bool
	LacksRI           bool
	LacksIND          bool
	LacksCTC          bool
	LacksHPA          bool
	LacksREP          bool
	LacksInvisible    bool
	LacksStrikeThrough bool
	LacksReverseOff   bool
	FaultyReverseVideo bool
	FaultyInverseErase bool
	FaultySPREP        bool

	UseDECPrivateMode bool
	UseSCOPrivateMode bool
	UseDECSTR         bool
	UseDECST8C        bool
	UseDECLocator     bool
	UseDECSNLS        bool
	UseDECSCPP        bool
	UseDECSLRM        bool
	UseDECNKM         bool

	HasDECECM                   bool
	InitialDECECM                bool
	HasDTTermDECSLPPExtensions   bool
	HasXTerm1006Mouse            bool
	HasSquareMode                bool
	HasExtendedUnderline         bool
	ResetSetsTabs                bool
}

// FromEnvironment builds a Descriptor the way TERM/COLORTERM/TERM_PROGRAM/
// LANG-driven detection conventionally works: a small table of well-known
// TERM prefixes, refined by the richer-signal variables when present.
// A TERM outside the table gets the ECMA-16 colour level over the common
// DEC baseline; vt100, vt102, vt220, ansi, dumb and an empty TERM get no
// colour. Detection never fails.
func FromEnvironment() Descriptor {
	return FromEnv(os.Getenv("TERM"), os.Getenv("COLORTERM"), os.Getenv("TERM_PROGRAM"), os.Getenv("LANG"))
}

// FromEnv is the environment-independent core of FromEnvironment, exposed
// directly so that tests and alternative front ends (e.g. the realizer
// honouring a --term override) do not have to mutate process environment.
func FromEnv(term, colorTerm, termProgram, lang string) Descriptor {
	d := baseline()

	switch {
	case strings.Contains(colorTerm, "truecolor"), strings.Contains(colorTerm, "24bit"):
		d.ColourLevel = ColourDirectISO
	case strings.HasPrefix(term, "xterm"), strings.Contains(term, "256color"):
		d.ColourLevel = Colour256ISO
	case term == "linux":
		d = linuxConsole()
	case strings.HasPrefix(term, "screen"), strings.HasPrefix(term, "tmux"):
		d.ColourLevel = Colour256Faulty
	case term == "vt100", term == "vt102", term == "vt220", term == "ansi", term == "dumb", term == "":
		d.ColourLevel = ColourNone
	default:
		d.ColourLevel = ColourECMA16
	}

	switch {
	case strings.HasPrefix(term, "xterm"):
		d.CursorShapeCommand = CursorShapeXTermDECSCUSR
		d.HasXTerm1006Mouse = true
		d.UseDECLocator = true
		d.HasSquareMode = true
		d.HasExtendedUnderline = true
	case term == "linux":
		d.CursorShapeCommand = CursorShapeLinuxSCUSR
		d.Keymap = KeymapLinuxFunction
	case termProgram == "vte", termProgram == "gnome-terminal":
		d.CursorShapeCommand = CursorShapeExtendedDECSCUSR
	}

	_ = lang // reserved for future charset-aware decisions; ISO 2022 is out of scope

	return d
}

// baseline is the conservative DEC/xterm-compatible profile most terminals
// emulated well enough to satisfy: the bulk of the private-mode and DEC
// extension surface is assumed present, with only the known-faulty and
// known-absent bits turned off per terminal family below.
func baseline() Descriptor {
	return Descriptor{
		ColourLevel:        ColourECMA16,
		CursorShapeCommand: CursorShapeOriginalDECSCUSR,
		Keymap:             KeymapDefault,

		UseDECPrivateMode: true,
		UseDECSTR:         true,
		UseDECST8C:        true,
		UseDECSNLS:        true,
		UseDECSCPP:        true,
		UseDECSLRM:        true,
		UseDECNKM:         true,

		HasDECECM:    true,
		HasSquareMode: true,
		ResetSetsTabs: true,
	}
}

// linuxConsole reproduces the Linux virtual console's well-known gaps: no
// REP, no NEL, faulty reverse video, and its own SCUSR cursor-shape dialect
// instead of DECSCUSR.
func linuxConsole() Descriptor {
	d := baseline()
	d.ColourLevel = ColourECMA16
	d.CursorShapeCommand = CursorShapeLinuxSCUSR
	d.Keymap = KeymapLinuxFunction
	d.LacksREP = true
	d.LacksNEL = true
	d.FaultyReverseVideo = true
	d.UseDECLocator = false
	d.HasSquareMode = false
	return d
}
