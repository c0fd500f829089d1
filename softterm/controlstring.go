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

package softterm

import (
	"strconv"
	"strings"

	"github.com/vt48/term/ecma48"
)

// controlString dispatches the small set of DCS/OSC requests this engine
// actually understands; everything else is accepted and discarded, per the
// no-fail policy (an application probing for an unsupported feature must
// never desynchronise the stream).
func (t *Terminal) controlString(e ecma48.Event) {
	switch e.StringKind {
	case ecma48.StringDCS:
		t.dcs(e.Text)
	case ecma48.StringOSC:
		t.osc(e.Text)
	}
}

// dcs handles DECRQSS (request selection/setting); any other DCS body is
// accepted and discarded.
func (t *Terminal) dcs(text string) {
	if strings.HasPrefix(text, "$q") {
		t.respondDECRQSS(strings.TrimPrefix(text, "$q"))
	}
}

// respondDECRQSS answers a handful of DECRQSS queries: "r" with the current
// top and bottom margins, "m" and `"q` with the fixed replies "0m" and
// `0"q` whatever the current setting. It reports success ("1$r...") for
// those and failure ("0$r") for an unrecognised request, matching xterm's
// own DECRQSS contract.
func (t *Terminal) respondDECRQSS(request string) {
	switch request {
	case "m":
		t.respond([]byte("\x1bP1$r0m\x1b\\"))
	case "r":
		t.respond([]byte("\x1bP1$r" + strconv.Itoa(t.scrollTop+1) + ";" + strconv.Itoa(t.scrollBottom) + "r\x1b\\"))
	case `"q`:
		t.respond([]byte("\x1bP1$r0\"q\x1b\\"))
	default:
		t.respond([]byte("\x1bP0$r\x1b\\"))
	}
}

// osc handles the xterm OSC requests this engine answers: window-title
// sets are accepted and stored but not themselves surfaced (a realizer
// reads them via Title), and colour queries are not answered, since this
// engine has no notion of a host palette to report back.
func (t *Terminal) osc(text string) {
	semi := strings.IndexByte(text, ';')
	if semi < 0 {
		return
	}
	code, err := strconv.Atoi(text[:semi])
	if err != nil {
		return
	}
	switch code {
	case 0, 1, 2:
		t.title = text[semi+1:]
	}
}

// Title returns the most recently set OSC 0/1/2 window title.
func (t *Terminal) Title() string { return t.title }
