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

// Package fat decodes a FAT12/16/32 volume sitting on top of a block
// device: boot sector, FAT table and directory tree. It never writes to
// the underlying device.
package fat

import (
	"bytes"
	"fmt"
)

// SectorReader is the subset of a block device a Volume needs: anything
// that can report/override its sector size and read whole sectors. Both
// *blockdev.Device and *blockdev.MmapDevice satisfy it, and tests can
// supply a fake without touching a real file.
type SectorReader interface {
	SectorSize() int
	SetSectorSize(int)
	ReadSectors(index uint64, count int, out []byte) (int, error)
}

// Volume is a mounted FAT filesystem: a block device plus its decoded
// geometry and FAT table. It is an explicit, caller-owned value rather
// than a process-wide singleton, so a program can hold several mounted
// images at once.
type Volume struct {
	dev  SectorReader
	Info Info
	fat  Table
}

// Mount reads the boot sector and first FAT copy from dev and returns a
// ready-to-browse Volume. dev's sector size is switched to the value
// recorded in the boot sector once decoded.
func Mount(dev SectorReader) (*Volume, error) {
	boot := make([]byte, BootSectorSize)
	if _, err := dev.ReadSectors(0, 1, boot); err != nil {
		return nil, fmt.Errorf("fat: %w: %s", ErrImageOpen, err)
	}

	b, err := parseBPB(boot)
	if err != nil {
		return nil, err
	}
	info := classify(b)
	if info.BytesPerSector == 0 || info.SectorsPerCluster == 0 {
		return nil, ErrBadBootSector
	}

	dev.SetSectorSize(int(info.BytesPerSector))

	fatBytes := int(info.SectorsPerFat) * int(info.BytesPerSector)
	raw := make([]byte, fatBytes)
	if _, err := dev.ReadSectors(uint64(info.FirstFatSector), int(info.SectorsPerFat), raw); err != nil {
		return nil, fmt.Errorf("fat: failed to read FAT table: %w", err)
	}

	return &Volume{
		dev:  dev,
		Info: info,
		fat:  decodeTable(raw, info.Variant),
	}, nil
}

// ReadRoot returns the entries of the volume's root directory.
func (v *Volume) ReadRoot() ([]DirEntry, error) {
	if v.Info.Variant == FAT32 {
		return v.readChain(v.Info.Fat32RootCluster)
	}

	size := int(v.Info.RootSectorCount) * int(v.Info.BytesPerSector)
	data := make([]byte, size)
	if _, err := v.dev.ReadSectors(uint64(v.Info.RootFirstSector), int(v.Info.RootSectorCount), data); err != nil {
		return nil, fmt.Errorf("fat: failed to read root directory: %w", err)
	}
	return decodeDirectory(data), nil
}

// ReadDirectory returns the entries of the subdirectory starting at the
// given first cluster.
func (v *Volume) ReadDirectory(firstCluster uint32) ([]DirEntry, error) {
	return v.readChain(firstCluster)
}

// ReadFile returns the first size bytes of the file starting at
// firstCluster, truncating the final cluster's trailing padding rather
// than returning it: a file dump stops exactly at its recorded size, not
// at the cluster boundary.
func (v *Volume) ReadFile(firstCluster uint32, size uint32) ([]byte, error) {
	data, err := v.readClusterBytes(firstCluster)
	if err != nil {
		return nil, err
	}
	if uint32(len(data)) > size {
		data = data[:size]
	}
	return data, nil
}

// readChain follows a cluster chain and decodes each cluster's contents
// as consecutive directory records.
func (v *Volume) readChain(firstCluster uint32) ([]DirEntry, error) {
	data, err := v.readClusterBytes(firstCluster)
	if err != nil {
		return nil, err
	}
	return decodeDirectory(data), nil
}

// readClusterBytes reads every cluster in the chain starting at
// firstCluster and concatenates their raw contents.
func (v *Volume) readClusterBytes(firstCluster uint32) ([]byte, error) {
	var buf bytes.Buffer

	clusterSize := v.Info.ClusterByteSize()
	sectorsPerCluster := int(v.Info.SectorsPerCluster)
	eof := v.Info.EOFMarker()

	cluster := firstCluster
	visited := make(map[uint32]bool)

	for cluster >= 2 && cluster < eof {
		if visited[cluster] {
			return nil, fmt.Errorf("fat: cluster chain loops at cluster %d", cluster)
		}
		visited[cluster] = true

		sector := v.Info.DataSector(cluster)
		data := make([]byte, clusterSize)
		if _, err := v.dev.ReadSectors(uint64(sector), sectorsPerCluster, data); err != nil {
			return nil, fmt.Errorf("fat: failed to read cluster %d: %w", cluster, err)
		}
		buf.Write(data)

		if int(cluster) >= len(v.fat) {
			break
		}
		cluster = v.fat[cluster]
	}
	return buf.Bytes(), nil
}
