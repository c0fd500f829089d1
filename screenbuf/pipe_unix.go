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

package screenbuf

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// The input-message pipe is the consumer-to-producer half of the shared
// terminal: a named pipe next to the screen buffer file, carrying the
// 4-byte messages of inputmsg.go. The producer creates and reads it; any
// realizer opens it for writing.

// CreateInputPipe makes the fifo at path if it does not already exist and
// opens the producer's reading end. The fifo is opened read-write: the
// producer's own writer half keeps reads blocking (rather than returning
// EOF) across realizers detaching and reattaching.
func CreateInputPipe(path string) (*os.File, error) {
	if err := unix.Mkfifo(path, 0o600); err != nil && err != unix.EEXIST {
		return nil, fmt.Errorf("screenbuf: mkfifo %s: %w", path, err)
	}
	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("screenbuf: open %s: %w", path, err)
	}
	return f, nil
}

// OpenInputPipe opens the consumer's writing end, non-blocking so that a
// realizer starting before its producer fails fast (ENXIO) instead of
// hanging.
func OpenInputPipe(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("screenbuf: open %s: %w", path, err)
	}
	return f, nil
}

// FlushTo writes the queue's pending bytes to the pipe. The pending buffer
// is consumed either way: a write error means the messages are discarded
// and reported, not retried byte-for-byte.
func (q *OutQueue) FlushTo(f *os.File) error {
	if q.Empty() {
		return nil
	}
	if _, err := f.Write(q.Drain()); err != nil {
		return fmt.Errorf("screenbuf: input pipe: %w", err)
	}
	return nil
}

// WithSharedLock runs fn while holding an advisory shared flock on f,
// used by snapshot readers (state files, whole-buffer dumps) in the
// realizer ecosystem. The producer's own cell writes never lock; a single
// producer owns each buffer.
func WithSharedLock(f *os.File, fn func() error) error {
	return withLock(f, unix.LOCK_SH, fn)
}

// WithExclusiveLock runs fn while holding an advisory exclusive flock on f.
func WithExclusiveLock(f *os.File, fn func() error) error {
	return withLock(f, unix.LOCK_EX, fn)
}

func withLock(f *os.File, how int, fn func() error) error {
	if err := unix.Flock(int(f.Fd()), how); err != nil {
		return fmt.Errorf("screenbuf: flock: %w", err)
	}
	defer unix.Flock(int(f.Fd()), unix.LOCK_UN)
	return fn()
}
