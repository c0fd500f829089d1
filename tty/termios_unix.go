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

import "golang.org/x/sys/unix"

// The get/set termios ioctl requests differ across the BSD (TIOCGETA/
// TIOCSETA) and Linux-family (TCGETS/TCSETS) targets; termiosRequests,
// defined once per build target, supplies the right pair.

// tcSetBufParams adjusts VMIN/VTIME on fd so that pending reads return
// immediately instead of blocking. Drain uses this, together with a
// SetReadDeadline in the past, to guarantee a blocked Read wakes up before
// Stop tears the tty down.
func tcSetBufParams(fd int, vmin uint8, vtime uint8) error {
	req, setReq := termiosRequests()
	term, err := unix.IoctlGetTermios(fd, req)
	if err != nil {
		return err
	}
	term.Cc[unix.VMIN] = vmin
	term.Cc[unix.VTIME] = vtime
	return unix.IoctlSetTermios(fd, setReq, term)
}
