package fat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// mainEntry builds one 32-byte short-name directory record.
func mainEntry(name11 string, attr byte, firstClus, size uint32) []byte {
	raw := make([]byte, dirEntrySize)
	copy(raw[0:11], name11)
	raw[11] = attr
	raw[20] = byte(firstClus >> 16)
	raw[21] = byte(firstClus >> 24)
	raw[26] = byte(firstClus)
	raw[27] = byte(firstClus >> 8)
	raw[28] = byte(size)
	raw[29] = byte(size >> 8)
	raw[30] = byte(size >> 16)
	raw[31] = byte(size >> 24)
	return raw
}

// lfnEntry builds one LFN sub-entry holding up to 13 UCS-2 characters of
// name, tagged with the given sequence number (OR 0x40 for the final one
// in the run, matching on-disk convention).
func lfnEntry(seq byte, chars string) []byte {
	raw := make([]byte, dirEntrySize)
	raw[0] = seq
	raw[11] = attrLFN

	runes := []rune(chars)
	pos := 0
	write := func(off, count int) {
		for i := 0; i < count; i++ {
			switch {
			case pos < len(runes):
				raw[off+i*2] = byte(runes[pos])
				raw[off+i*2+1] = byte(runes[pos] >> 8)
			case pos == len(runes):
				raw[off+i*2] = 0x00
				raw[off+i*2+1] = 0x00
			default:
				raw[off+i*2] = 0xFF
				raw[off+i*2+1] = 0xFF
			}
			pos++
		}
	}
	write(1, 5)
	write(14, 6)
	write(28, 2)
	return raw
}

func TestDecodeDirEntryShortName(t *testing.T) {
	raw := mainEntry("README  TXT", attrArchive, 5, 1234)
	entry, isLFN, ok := decodeDirEntry(raw, "")
	require.True(t, ok)
	require.False(t, isLFN)
	require.Equal(t, "README.TXT", entry.Name)
	require.Equal(t, "README.TXT", entry.ShortName)
	require.False(t, entry.IsDir)
	require.Equal(t, uint32(5), entry.FirstClus)
	require.Equal(t, uint32(1234), entry.Size)
}

func TestDecodeDirEntrySkipsDeleted(t *testing.T) {
	raw := mainEntry("README  TXT", attrArchive, 5, 1234)
	raw[0] = entryDeleted
	_, _, ok := decodeDirEntry(raw, "")
	require.False(t, ok)
}

func TestDecodeDirEntryMarksFree(t *testing.T) {
	raw := mainEntry("README  TXT", attrArchive, 5, 1234)
	raw[0] = entryFree
	_, _, ok := decodeDirEntry(raw, "")
	require.False(t, ok)
}

func TestDecodeDirEntryLFNFlag(t *testing.T) {
	raw := lfnEntry(0x41, "readme.txt")
	_, isLFN, ok := decodeDirEntry(raw, "")
	require.True(t, isLFN)
	require.False(t, ok)
}

func TestDecodeDirectoryReassemblesLFN(t *testing.T) {
	var data []byte
	data = append(data, lfnEntry(0x42, "long-filename-example.txt"[13:])...)
	data = append(data, lfnEntry(0x01, "long-filename-example.txt"[:13])...)
	data = append(data, mainEntry("LONGFI~1TXT", attrArchive, 10, 42)...)
	data = append(data, make([]byte, dirEntrySize)...) // free slot terminates the walk

	entries := decodeDirectory(data)
	require.Len(t, entries, 1)
	require.Equal(t, "long-filename-example.txt", entries[0].Name)
	require.Equal(t, "LONGFI~1.TXT", entries[0].ShortName)
}

func TestDecodeDirectoryStopsAtFreeEntry(t *testing.T) {
	var data []byte
	data = append(data, mainEntry("A       TXT", attrArchive, 3, 1)...)
	data = append(data, make([]byte, dirEntrySize)...)
	data = append(data, mainEntry("B       TXT", attrArchive, 4, 1)...)

	entries := decodeDirectory(data)
	require.Len(t, entries, 1)
	require.Equal(t, "A.TXT", entries[0].Name)
}

func TestDecodeDirectorySkipsDeletedBetweenLiveEntries(t *testing.T) {
	var data []byte
	data = append(data, mainEntry("A       TXT", attrArchive, 3, 1)...)
	deleted := mainEntry("B       TXT", attrArchive, 4, 1)
	deleted[0] = entryDeleted
	data = append(data, deleted...)
	data = append(data, mainEntry("C       TXT", attrArchive, 5, 1)...)

	entries := decodeDirectory(data)
	require.Len(t, entries, 2)
	require.Equal(t, "A.TXT", entries[0].Name)
	require.Equal(t, "C.TXT", entries[1].Name)
}

func TestIsDot(t *testing.T) {
	require.True(t, DirEntry{ShortName: "."}.IsDot())
	require.True(t, DirEntry{ShortName: ".."}.IsDot())
	require.False(t, DirEntry{ShortName: ".BASHRC"}.IsDot())
}
