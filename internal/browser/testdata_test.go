package browser

import "testing"

// memDevice is a minimal fat.SectorReader backed by an in-memory image, used
// to exercise the browser against a real (if tiny) FAT12 volume rather than
// mocking fat.Volume's internals.
type memDevice struct {
	data       []byte
	sectorSize int
}

func (m *memDevice) SectorSize() int     { return m.sectorSize }
func (m *memDevice) SetSectorSize(n int) { m.sectorSize = n }

func (m *memDevice) ReadSectors(index uint64, count int, out []byte) (int, error) {
	off := int(index) * m.sectorSize
	want := count * m.sectorSize
	if off+want > len(m.data) {
		return 0, nil
	}
	return copy(out, m.data[off:off+want]), nil
}

// newBrowserTestDevice builds a one-file FAT12 image: root directory holds
// a single "FILE.TXT" entry at cluster 2, whose one-cluster contents are
// four 'A' bytes padded with the rest of the cluster, truncated on read by
// the recorded 4-byte size field.
func newBrowserTestDevice(t *testing.T) *memDevice {
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
	totalSectors := dataFirstSector + 4

	img := make([]byte, totalSectors*bytesPerSector)
	le16 := func(off int, v uint16) {
		img[off] = byte(v)
		img[off+1] = byte(v >> 8)
	}
	le16(11, bytesPerSector)
	img[13] = sectorsPerCluster
	le16(14, reservedSectors)
	img[16] = fatCount
	le16(17, rootEntries)
	le16(19, uint16(totalSectors))
	le16(22, sectorsPerFat)

	fatOff := reservedSectors * bytesPerSector
	packed := uint32(0x0FF0) | uint32(0x0FFF)<<12
	img[fatOff] = byte(packed)
	img[fatOff+1] = byte(packed >> 8)
	img[fatOff+2] = byte(packed >> 16)

	rootOff := (reservedSectors + fatCount*sectorsPerFat) * bytesPerSector
	copy(img[rootOff:rootOff+11], "FILE    TXT")
	img[rootOff+11] = 0x20 // attrArchive
	img[rootOff+26] = 2
	size := uint32(4)
	img[rootOff+28] = byte(size)

	c2Off := dataFirstSector * bytesPerSector
	copy(img[c2Off:c2Off+4], "AAAA")

	return &memDevice{data: img, sectorSize: bytesPerSector}
}
