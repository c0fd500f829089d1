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
	"strconv"

	"golang.org/x/sys/unix"
)

// defaultColumns/defaultRows are the geometry a vtrealize consumer falls
// back to when neither TIOCGWINSZ nor the COLUMNS/LINES environment
// variables report anything usable: the classic 80-column DECCOLM default
// with a 25-row VT220-style screen.
const (
	defaultColumns = 80
	defaultRows    = 25
)

// windowSizeFromFd is shared by devTty and stdIoTty, which otherwise differ
// only in which file descriptor they query.
func windowSizeFromFd(fd int) (WindowSize, error) {
	size := WindowSize{}
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil {
		return size, err
	}
	w := int(ws.Col)
	h := int(ws.Row)
	if w == 0 {
		w, _ = strconv.Atoi(os.Getenv("COLUMNS"))
	}
	if w == 0 {
		w = defaultColumns
	}
	if h == 0 {
		h, _ = strconv.Atoi(os.Getenv("LINES"))
	}
	if h == 0 {
		h = defaultRows
	}
	size.Width = w
	size.Height = h
	size.PixelWidth = int(ws.Xpixel)
	size.PixelHeight = int(ws.Ypixel)
	return size, nil
}
