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
package fat

import "encoding/binary"

// BootSectorSize is the fixed size of sector 0, which holds the BPB.
const BootSectorSize = 512

// Variant identifies which of the three FAT table layouts a volume uses.
type Variant uint8

const (
	Unknown Variant = iota
	FAT12
	FAT16
	FAT32
)

func (v Variant) String() string {
	switch v {
	case FAT12:
		return "FAT12"
	case FAT16:
		return "FAT16"
	case FAT32:
		return "FAT32"
	default:
		return "unknown"
	}
}

// EOFMarker returns the variant-specific FAT sentinel that terminates a
// cluster chain.
func (v Variant) EOFMarker() uint32 {
	switch v {
	case FAT12:
		return 0x0FFF
	case FAT16:
		return 0xFFFF
	case FAT32:
		return 0x0FFFFFFF
	default:
		return 0
	}
}

// bpb holds the fields of the BIOS Parameter Block read at the fixed
// little-endian offsets documented in the boot sector layout.
type bpb struct {
	bytesPerSector      uint16 // offset 11
	sectorsPerCluster   uint8  // offset 13
	reservedSectorCount uint16 // offset 14
	fatCount            uint8  // offset 16
	rootEntryCount      uint16 // offset 17
	totalSectors16      uint16 // offset 19
	sectorsPerFat16     uint16 // offset 22
	totalSectors32      uint32 // offset 32
	sectorsPerFat32     uint32 // offset 36, FAT32 only
	rootFirstCluster32  uint32 // offset 44, FAT32 only
}

func parseBPB(sector []byte) (bpb, error) {
	if len(sector) != BootSectorSize {
		return bpb{}, ErrBadBootSector
	}
	le := binary.LittleEndian
	return bpb{
		bytesPerSector:      le.Uint16(sector[11:13]),
		sectorsPerCluster:   sector[13],
		reservedSectorCount: le.Uint16(sector[14:16]),
		fatCount:            sector[16],
		rootEntryCount:      le.Uint16(sector[17:19]),
		totalSectors16:      le.Uint16(sector[19:21]),
		sectorsPerFat16:     le.Uint16(sector[22:24]),
		totalSectors32:      le.Uint32(sector[32:36]),
		sectorsPerFat32:     le.Uint32(sector[36:40]),
		rootFirstCluster32:  le.Uint32(sector[44:48]),
	}, nil
}

// Info is the decoded, immutable geometry of a mounted volume.
type Info struct {
	BytesPerSector      uint16
	SectorsPerCluster   uint8
	ReservedSectorCount uint16
	FatCount            uint8
	SectorsPerFat       uint32
	RootSectorCount     uint32
	RootEntryCount      uint16

	FirstFatSector  uint32
	RootFirstSector uint32
	DataFirstSector uint32

	Fat32RootCluster uint32

	Variant Variant
}

// EOFMarker returns Variant.EOFMarker() for this volume.
func (i Info) EOFMarker() uint32 { return i.Variant.EOFMarker() }

// ClusterByteSize is bytes_per_sector * sectors_per_cluster.
func (i Info) ClusterByteSize() int {
	return int(i.BytesPerSector) * int(i.SectorsPerCluster)
}

// DataSector returns the absolute sector index holding cluster c's data.
// c must be >= 2; clusters 0 and 1 are reserved.
func (i Info) DataSector(c uint32) uint32 {
	return i.DataFirstSector + (c-2)*uint32(i.SectorsPerCluster)
}

// classify determines the FAT variant and derived geometry of a volume.
// FAT32 is detected first by its boot-sector signature
// (sectorsPerFat16==0 && totalSectors16==0); otherwise the root directory
// geometry is computed and the cluster count decides FAT12 vs FAT16.
func classify(b bpb) Info {
	info := Info{
		BytesPerSector:      b.bytesPerSector,
		SectorsPerCluster:   b.sectorsPerCluster,
		ReservedSectorCount: b.reservedSectorCount,
		FatCount:            b.fatCount,
		RootEntryCount:      b.rootEntryCount,
		FirstFatSector:      uint32(b.reservedSectorCount),
	}

	if b.sectorsPerFat16 == 0 && b.totalSectors16 == 0 {
		info.Variant = FAT32
		info.SectorsPerFat = b.sectorsPerFat32
		info.Fat32RootCluster = b.rootFirstCluster32
		info.DataFirstSector = info.FirstFatSector + uint32(info.FatCount)*info.SectorsPerFat
		info.RootFirstSector = info.DataSector(info.Fat32RootCluster)
		return info
	}

	info.SectorsPerFat = uint32(b.sectorsPerFat16)
	info.RootSectorCount = (uint32(b.rootEntryCount)*32 + uint32(b.bytesPerSector) - 1) / uint32(b.bytesPerSector)
	info.RootFirstSector = info.FirstFatSector + uint32(info.FatCount)*info.SectorsPerFat
	info.DataFirstSector = info.RootFirstSector + info.RootSectorCount

	if b.totalSectors16 == 0 {
		info.Variant = FAT16
		return info
	}

	clusterCount := (uint32(b.totalSectors16) - info.DataFirstSector) / uint32(b.sectorsPerCluster)
	if clusterCount < 4085 {
		info.Variant = FAT12
	} else {
		info.Variant = FAT16
	}
	return info
}
