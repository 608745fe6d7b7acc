//go:build !linux
// +build !linux

package blockdev

import "os"

// probeDeviceGeometry has no non-Linux implementation; Open falls back to
// DefaultSectorSize and os.File.Stat for the image size.
func probeDeviceGeometry(f *os.File) (sectorSize int, totalSize int64, err error) {
	return 0, 0, nil
}
