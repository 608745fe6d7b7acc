//go:build linux
// +build linux

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
package blockdev

import (
	"fmt"
	"os"
	"syscall"
)

// MmapDevice is a sector reader backed by a whole-file memory mapping,
// avoiding a syscall per ReadSectors call. It is read-only: the mapping
// is established with PROT_READ and never written back.
type MmapDevice struct {
	data       []byte
	file       *os.File
	sectorSize int
}

// OpenMmap maps path into memory in full and returns a device reading
// sectors directly out of the mapping.
func OpenMmap(path string) (*MmapDevice, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("blockdev: failed to open %q: %w", path, err)
	}

	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("blockdev: failed to stat %q: %w", path, err)
	}
	size := int(fi.Size())
	if size == 0 {
		f.Close()
		return nil, fmt.Errorf("blockdev: %q is empty, cannot map", path)
	}

	data, err := syscall.Mmap(int(f.Fd()), 0, size, syscall.PROT_READ, syscall.MAP_SHARED)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("blockdev: failed to map %q: %w", path, err)
	}

	return &MmapDevice{data: data, file: f, sectorSize: DefaultSectorSize}, nil
}

// Close unmaps the file and closes the underlying descriptor.
func (d *MmapDevice) Close() error {
	err := syscall.Munmap(d.data)
	d.data = nil
	if cerr := d.file.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}

func (d *MmapDevice) SetSectorSize(n int) { d.sectorSize = n }
func (d *MmapDevice) SectorSize() int     { return d.sectorSize }

// ReadSectors copies count*SectorSize() bytes starting at sector index
// directly out of the mapping. A request starting at or past the end of the
// mapping returns 0 bytes with a nil error; a request that only runs past
// the end copies the bytes that are mapped and returns that shorter count
// (Device returns 0 for any short read).
func (d *MmapDevice) ReadSectors(index uint64, count int, out []byte) (int, error) {
	want := count * d.sectorSize
	if len(out) < want {
		return 0, fmt.Errorf("blockdev: output buffer too small: have %d, need %d", len(out), want)
	}

	off := int64(index) * int64(d.sectorSize)
	if off < 0 || off >= int64(len(d.data)) {
		return 0, nil
	}

	end := off + int64(want)
	if end > int64(len(d.data)) {
		end = int64(len(d.data))
	}
	n := copy(out, d.data[off:end])
	return n, nil
}
