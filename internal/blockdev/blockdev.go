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

// Package blockdev services fixed-size, sector-addressed reads against a
// host file or raw block device. It performs no caching: callers that want
// efficiency issue one bulk ReadSectors call rather than many ReadSector
// calls.
package blockdev

import (
	"fmt"
	"os"

	"github.com/ostafen/fatview/internal/fs"
)

// DefaultSectorSize is used until a volume mount overrides it with the
// value decoded from the boot sector.
const DefaultSectorSize = 512

// Device is a host file or block device opened for sector-addressed reads.
type Device struct {
	path       string
	file       fs.File
	sectorSize int

	// IsDevice and PhysicalSectorSize are populated on Linux when path
	// refers to a raw block device rather than a regular image file.
	IsDevice           bool
	PhysicalSectorSize int
}

// Open opens path for binary reading. The logical sector size starts at
// DefaultSectorSize until SetSectorSize is called. If path is a raw Linux
// block device, the probed physical sector size is recorded in
// PhysicalSectorSize; the logical sector size is not changed by it.
func Open(path string) (*Device, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("blockdev: failed to open %q: %w", path, err)
	}

	d := &Device{
		path:       path,
		file:       f,
		sectorSize: DefaultSectorSize,
	}

	if osFile, ok := f.(*os.File); ok {
		if sectorSize, _, probeErr := probeDeviceGeometry(osFile); probeErr == nil && sectorSize > 0 {
			d.IsDevice = true
			d.PhysicalSectorSize = sectorSize
		}
	}
	return d, nil
}

// Close releases the underlying file handle.
func (d *Device) Close() error {
	return d.file.Close()
}

// SetSectorSize adjusts the logical sector size used by subsequent reads.
func (d *Device) SetSectorSize(n int) {
	d.sectorSize = n
}

// SectorSize returns the current logical sector size.
func (d *Device) SectorSize() int {
	return d.sectorSize
}

// ReadSector reads one sector at the given index. It returns 0 bytes
// (with a nil error) on a short read — the caller treats that identically
// to end-of-stream, per the read-only browser's failure semantics.
func (d *Device) ReadSector(index uint64, out []byte) (int, error) {
	return d.ReadSectors(index, 1, out)
}

// ReadSectors reads count contiguous sectors starting at index into out,
// which must be at least count*SectorSize() bytes long.
func (d *Device) ReadSectors(index uint64, count int, out []byte) (int, error) {
	want := count * d.sectorSize
	if len(out) < want {
		return 0, fmt.Errorf("blockdev: output buffer too small: have %d, need %d", len(out), want)
	}

	off := int64(index) * int64(d.sectorSize)
	n, err := d.file.ReadAt(out[:want], off)
	if err != nil {
		// Short/failed reads are end-of-data, not fatal, for a read-only
		// browser walking a possibly-truncated image.
		return 0, nil
	}
	return n, nil
}
