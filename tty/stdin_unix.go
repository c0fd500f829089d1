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
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/term"
)

// stdIoTty is an implementation of the Tty API based upon stdin/stdout, used
// by cmd/vtrealize's -stdio flag for running under a supervisor that has
// already attached the controlling terminal to file descriptors 0 and 1
// rather than leaving /dev/tty available to reopen.
type stdIoTty struct {
	resizeNotifier

	fd      int
	in      *os.File
	out     *os.File
	saved   *term.State
	started bool
}

func (tty *stdIoTty) Read(b []byte) (int, error) {
	return tty.in.Read(b)
}

func (tty *stdIoTty) Write(b []byte) (int, error) {
	return tty.out.Write(b)
}

func (tty *stdIoTty) Close() error {
	return nil
}

func (tty *stdIoTty) Start() error {
	if tty.started {
		return nil
	}

	tty.in = os.Stdin
	tty.out = os.Stdout
	tty.fd = int(tty.in.Fd())

	if !term.IsTerminal(tty.fd) {
		return errors.New("device is not a terminal")
	}

	_ = tty.in.SetReadDeadline(time.Time{})
	saved, err := term.MakeRaw(tty.fd) // also sets vMin and vTime
	if err != nil {
		return err
	}
	tty.saved = saved
	tty.started = true

	return nil
}

// Drain forces VMIN/VTIME to zero, for the same reason devTty.Drain does: a
// blocked Read must return before Stop restores cooked mode.
func (tty *stdIoTty) Drain() error {
	_ = tty.in.SetReadDeadline(time.Now())
	if err := tcSetBufParams(tty.fd, 0, 0); err != nil {
		return err
	}
	return nil
}

func (tty *stdIoTty) Stop() error {
	if err := term.Restore(tty.fd, tty.saved); err != nil {
		return err
	}
	_ = tty.in.SetReadDeadline(time.Now())

	tty.notifyResize(nil)

	tty.started = false

	return nil
}

func (tty *stdIoTty) WindowSize() (WindowSize, error) {
	return windowSizeFromFd(tty.fd)
}

func (tty *stdIoTty) NotifyResize(resizeQ chan<- bool) {
	tty.notifyResize(resizeQ)
}

// NewStdIoTty opens a tty using standard input/output.
func NewStdIoTty() (Tty, error) {
	tty := &stdIoTty{
		in:  os.Stdin,
		out: os.Stdout,
	}
	tty.fd = int(tty.in.Fd())
	if !term.IsTerminal(tty.fd) {
		return nil, errors.New("not a terminal")
	}
	var err error
	if tty.saved, err = term.GetState(tty.fd); err != nil {
		return nil, fmt.Errorf("failed to get state: %w", err)
	}
	return tty, nil
}
