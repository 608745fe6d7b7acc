package fat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// memDevice is a fake SectorReader backed by an in-memory byte slice, so
// volume tests never touch a real file or device.
type memDevice struct {
	data       []byte
	sectorSize int
}

func newMemDevice(data []byte) *memDevice {
	return &memDevice{data: data, sectorSize: BootSectorSize}
}

func (m *memDevice) SectorSize() int     { return m.sectorSize }
func (m *memDevice) SetSectorSize(n int) { m.sectorSize = n }

func (m *memDevice) ReadSectors(index uint64, count int, out []byte) (int, error) {
	off := int(index) * m.sectorSize
	want := count * m.sectorSize
	if off+want > len(m.data) {
		return 0, nil
	}
	n := copy(out, m.data[off:off+want])
	return n, nil
}

// buildFAT12Image assembles a minimal FAT12 image: boot sector, one FAT
// copy, a fixed-size root directory and enough cluster space to hold one
// two-cluster file.
func buildFAT12Image(t *testing.T) (*memDevice, uint32) {
	t.Helper()

	const (
		bytesPerSector    = 512
		sectorsPerCluster = 1
		reservedSectors   = 1
		fatCount          = 1
		rootEntries       = 16
		sectorsPerFat     = 1
	)
	rootSectors := (rootEntries*32 + bytesPerSector - 1) / bytesPerSector
	dataFirstSector := reservedSectors + fatCount*sectorsPerFat + rootSectors

	totalClusters := uint32(10)
	totalSectors := dataFirstSector + int(totalClusters)*sectorsPerCluster

	img := make([]byte, totalSectors*bytesPerSector)
	le := func(off int, v uint32, width int) {
		for i := 0; i < width; i++ {
			img[off+i] = byte(v >> (8 * i))
		}
	}
	le(11, bytesPerSector, 2)
	img[13] = sectorsPerCluster
	le(14, reservedSectors, 2)
	img[16] = fatCount
	le(17, rootEntries, 2)
	le(19, uint32(totalSectors), 2)
	le(22, sectorsPerFat, 2)

	// FAT table: cluster 2 -> 3 -> EOF (a two-cluster file), written as
	// packed 12-bit entries starting at the first FAT sector.
	fatOff := reservedSectors * bytesPerSector
	writeFAT12Pair := func(base int, a, b uint32) {
		packed := (a & 0x0FFF) | (b&0x0FFF)<<12
		img[base] = byte(packed)
		img[base+1] = byte(packed >> 8)
		img[base+2] = byte(packed >> 16)
	}
	// Entries 0,1 are reserved media/EOF markers; entries 2,3 hold the chain.
	writeFAT12Pair(fatOff, 0x0FF0, 0x0FFF)
	writeFAT12Pair(fatOff+3, 3, 0x0FFF)

	// Root directory: one file entry named FILE.TXT starting at cluster 2,
	// size spanning both clusters.
	rootOff := (reservedSectors + fatCount*sectorsPerFat) * bytesPerSector
	copy(img[rootOff:rootOff+11], "FILE    TXT")
	img[rootOff+11] = attrArchive
	img[rootOff+26] = 2 // first cluster lo
	img[rootOff+27] = 0
	size := uint32(bytesPerSector + 100)
	img[rootOff+28] = byte(size)
	img[rootOff+29] = byte(size >> 8)
	img[rootOff+30] = byte(size >> 16)
	img[rootOff+31] = byte(size >> 24)

	// Cluster 2's data: fill with 'A', cluster 3: fill with 'B'.
	c2Off := dataFirstSector * bytesPerSector
	for i := 0; i < bytesPerSector; i++ {
		img[c2Off+i] = 'A'
	}
	c3Off := c2Off + bytesPerSector
	for i := 0; i < bytesPerSector; i++ {
		img[c3Off+i] = 'B'
	}

	return newMemDevice(img), size
}

func TestMountFAT12AndReadRoot(t *testing.T) {
	dev, _ := buildFAT12Image(t)
	vol, err := Mount(dev)
	require.NoError(t, err)
	require.Equal(t, FAT12, vol.Info.Variant)

	entries, err := vol.ReadRoot()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "FILE.TXT", entries[0].Name)
	require.Equal(t, uint32(2), entries[0].FirstClus)
}

func TestReadFileTruncatesToRecordedSize(t *testing.T) {
	dev, size := buildFAT12Image(t)
	vol, err := Mount(dev)
	require.NoError(t, err)

	entries, err := vol.ReadRoot()
	require.NoError(t, err)
	require.Len(t, entries, 1)

	data, err := vol.ReadFile(entries[0].FirstClus, entries[0].Size)
	require.NoError(t, err)
	require.Equal(t, int(size), len(data))
	require.Equal(t, byte('A'), data[0])
	require.Equal(t, byte('B'), data[512])
}

func TestReadClusterChainLoopDetection(t *testing.T) {
	dev, _ := buildFAT12Image(t)
	vol, err := Mount(dev)
	require.NoError(t, err)

	// Corrupt the FAT so cluster 2 points back to itself.
	vol.fat[2] = 2

	_, err = vol.ReadFile(2, 1)
	require.Error(t, err)
}
