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

//go:build aix || darwin || dragonfly || freebsd || linux || netbsd || openbsd || solaris || zos
// +build aix darwin dragonfly freebsd linux netbsd openbsd solaris zos

package tty

import (
	"os"
	"os/signal"
	"syscall"
)

// resizeNotifier bridges SIGWINCH to a caller-supplied bool channel; both
// the /dev/tty and stdio backends need identical bridging (a vtrealize
// consumer re-queries WindowSize and calls screenbuf.Buffer.SetSize/
// tuiout.Output.Resize whenever this fires), so it is implemented once here
// and embedded by both rather than duplicated per backend.
type resizeNotifier struct {
	sig chan os.Signal
}

func (r *resizeNotifier) notifyResize(resizeQ chan<- bool) {
	sigQ := r.sig
	r.sig = nil

	if sigQ != nil {
		signal.Stop(sigQ)
		close(sigQ)
	}

	if resizeQ == nil {
		return
	}

	sigQ = make(chan os.Signal, 1)
	signal.Notify(sigQ, syscall.SIGWINCH)

	r.sig = sigQ

	go func() {
		for range sigQ {
			select {
			case resizeQ <- true:
			default: // queue full, so nvm.
			}
		}
	}()
}
