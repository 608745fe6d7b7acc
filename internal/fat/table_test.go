package fat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeTableFAT12(t *testing.T) {
	// Three packed bytes encode two 12-bit links: 0x123 and 0x456.
	raw := []byte{0x23, 0x61, 0x45}
	links := decodeTable(raw, FAT12)
	require.Equal(t, Table{0x123, 0x456}, links)
}

func TestDecodeTableFAT12Multiple(t *testing.T) {
	// Two packed triples: (0xFFF, 0x002) and (0x000, 0xFF8).
	raw := []byte{0xFF, 0x2F, 0x00, 0x00, 0x80, 0xFF}
	links := decodeTable(raw, FAT12)
	require.Equal(t, Table{0xFFF, 0x002, 0x000, 0xFF8}, links)
}

func TestDecodeTableFAT16(t *testing.T) {
	raw := []byte{0x02, 0x00, 0xF8, 0xFF}
	links := decodeTable(raw, FAT16)
	require.Equal(t, Table{0x0002, 0xFFF8}, links)
}

func TestDecodeTableFAT32(t *testing.T) {
	raw := []byte{0x02, 0x00, 0x00, 0x00, 0xF8, 0xFF, 0xFF, 0x0F}
	links := decodeTable(raw, FAT32)
	require.Equal(t, Table{0x00000002, 0x0FFFFFF8}, links)
}
