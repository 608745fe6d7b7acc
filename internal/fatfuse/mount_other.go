//go:build !linux
// +build !linux

package fatfuse

import (
	"fmt"

	"github.com/ostafen/fatview/internal/fat"
)

// Mount is unsupported outside Linux: bazil.org/fuse requires a kernel
// FUSE driver that this module does not probe for on other platforms.
func Mount(mountpoint string, vol *fat.Volume) error {
	return fmt.Errorf("fatfuse: mount is only supported on Linux")
}
