// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

//go:build linux
// +build linux

package blockdev

import (
	"os"

	"golang.org/x/sys/unix"
)

// blkSSZGet and blkGetSize64 mirror the kernel ioctl numbers used by
// util-linux; there is no exported constant for either in x/sys/unix.
const (
	blkSSZGet    = 0x1268
	blkGetSize64 = 0x80081272
)

// probeDeviceGeometry returns the physical sector size and total size of a
// Linux block device. It is a no-op (returns 0, 0, nil) for regular files;
// callers fall back to DefaultSectorSize and os.File.Stat in that case.
func probeDeviceGeometry(f *os.File) (sectorSize int, totalSize int64, err error) {
	fi, err := f.Stat()
	if err != nil {
		return 0, 0, err
	}
	if fi.Mode()&os.ModeDevice == 0 {
		return 0, 0, nil
	}

	sz, err := unix.IoctlGetInt(int(f.Fd()), blkSSZGet)
	if err != nil {
		return 0, 0, err
	}
	size, err := unix.IoctlGetInt(int(f.Fd()), blkGetSize64)
	if err != nil {
		return 0, 0, err
	}
	return sz, int64(size), nil
}
