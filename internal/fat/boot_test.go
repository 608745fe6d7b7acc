package fat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// boundary builds a bpb whose totalSectors16 yields exactly the requested
// cluster count, given 1 FAT, 1 sector per FAT, 1 reserved sector, 512
// root entries and 1 sector per cluster.
func boundary(clusterCount uint32) bpb {
	b := bpb{
		bytesPerSector:      512,
		sectorsPerCluster:   1,
		reservedSectorCount: 1,
		fatCount:            1,
		rootEntryCount:      512,
		sectorsPerFat16:     1,
	}
	info := classify(b)
	b.totalSectors16 = uint16(info.DataFirstSector + clusterCount)
	return b
}

func TestClassifyFAT12BelowThreshold(t *testing.T) {
	info := classify(boundary(4084))
	require.Equal(t, FAT12, info.Variant)
}

func TestClassifyFAT16AtThreshold(t *testing.T) {
	info := classify(boundary(4085))
	require.Equal(t, FAT16, info.Variant)
}

func TestClassifyFAT32(t *testing.T) {
	b := bpb{
		bytesPerSector:      512,
		sectorsPerCluster:   8,
		reservedSectorCount: 32,
		fatCount:            2,
		sectorsPerFat32:     1000,
		rootFirstCluster32:  2,
		totalSectors32:      1000000,
	}
	info := classify(b)
	require.Equal(t, FAT32, info.Variant)
	require.Equal(t, uint32(32+2*1000), info.DataFirstSector)
	require.Equal(t, info.DataFirstSector, info.RootFirstSector)
}

func TestVariantEOFMarker(t *testing.T) {
	require.Equal(t, uint32(0x0FFF), FAT12.EOFMarker())
	require.Equal(t, uint32(0xFFFF), FAT16.EOFMarker())
	require.Equal(t, uint32(0x0FFFFFFF), FAT32.EOFMarker())
}

func TestParseBPBRejectsWrongSize(t *testing.T) {
	_, err := parseBPB(make([]byte, 100))
	require.ErrorIs(t, err, ErrBadBootSector)
}
