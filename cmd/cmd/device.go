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
package cmd

import (
	"github.com/ostafen/fatview/internal/blockdev"
	"github.com/ostafen/fatview/internal/disk"
	"github.com/ostafen/fatview/internal/fat"
	"github.com/spf13/cobra"
)

// mountVolume opens path and mounts a FAT volume directly on top of it. The
// image is assumed to start at the volume boot record; partitioned media
// (MBR/GPT) is out of scope.
func mountVolume(cmd *cobra.Command, path string) (*fat.Volume, *blockdev.Device, error) {
	path = disk.NormalizeVolumePath(path)

	dev, err := blockdev.Open(path)
	if err != nil {
		return nil, nil, err
	}

	vol, err := fat.Mount(dev)
	if err != nil {
		dev.Close()
		return nil, nil, err
	}
	return vol, dev, nil
}
