package blockdev

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDeviceReadSectorsRejectsTooSmallBuffer(t *testing.T) {
	dev := &Device{path: "fake", sectorSize: 512}
	// file is nil; exercise the buffer-size guard instead of a real read.
	out := make([]byte, 10)
	_, err := dev.ReadSectors(0, 1, out)
	require.Error(t, err) // buffer too small for one 512-byte sector
}
