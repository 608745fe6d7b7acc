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

import (
	"encoding/binary"
	"strings"
)

const (
	dirEntrySize = 32

	attrReadOnly = 0x01
	attrHidden   = 0x02
	attrSystem   = 0x04
	attrVolumeID = 0x08
	attrDir      = 0x10
	attrArchive  = 0x20
	attrLFN      = attrReadOnly | attrHidden | attrSystem | attrVolumeID

	entryFree    = 0x00
	entryDeleted = 0xE5
)

// DirEntry is one decoded directory record, with the long name (if any)
// already reassembled onto the short 8.3 name.
type DirEntry struct {
	Name       string
	ShortName  string
	IsDir      bool
	IsReadOnly bool
	IsHidden   bool
	Size       uint32
	FirstClus  uint32
	ModDate    Date
	ModTime    Time
}

// IsDot reports whether the entry is the "." or ".." pseudo-directory,
// judged by its decoded short name rather than raw first-byte comparison:
// a byte-level check misclassifies real files that happen to start with
// 0x2E.
func (e DirEntry) IsDot() bool {
	return e.ShortName == "." || e.ShortName == ".."
}

// lfnAccumulator reassembles a sequence of long-file-name sub-entries that
// precede a main entry on disk. Sub-entries are stored in descending
// sequence-number order immediately before the main entry they annotate, so
// the accumulator is filled back-to-front and flushed (then reset) the
// moment a main entry is reached.
type lfnAccumulator struct {
	parts map[int]string
}

func (a *lfnAccumulator) reset() {
	a.parts = nil
}

func (a *lfnAccumulator) add(raw []byte) {
	seq := raw[0] & 0x1F
	if seq == 0 {
		return
	}
	if a.parts == nil {
		a.parts = make(map[int]string)
	}

	var sb strings.Builder
	for _, off := range []int{1, 14, 28} {
		width := 10
		if off == 14 {
			width = 12
		} else if off == 28 {
			width = 4
		}
		for i := 0; i < width; i += 2 {
			lo := raw[off+i]
			hi := raw[off+i+1]
			if lo == 0x00 && hi == 0x00 {
				a.parts[int(seq)] = sb.String()
				return
			}
			if lo == 0xFF && hi == 0xFF {
				continue
			}
			// Only the low byte of each UCS-2 unit is kept, giving an
			// ASCII-like representation rather than full Unicode.
			sb.WriteByte(lo)
		}
	}
	a.parts[int(seq)] = sb.String()
}

// take returns the reassembled long name in sequence order and clears the
// accumulator for the next run of sub-entries.
func (a *lfnAccumulator) take() string {
	if len(a.parts) == 0 {
		return ""
	}
	var sb strings.Builder
	for i := 1; i <= len(a.parts); i++ {
		sb.WriteString(a.parts[i])
	}
	a.reset()
	return sb.String()
}

// decodeShortName converts the packed 8+3 on-disk name into the familiar
// "NAME.EXT" form, trimming the padding spaces from each half.
func decodeShortName(raw [11]byte) string {
	base := strings.TrimRight(string(raw[0:8]), " ")
	ext := strings.TrimRight(string(raw[8:11]), " ")
	if ext == "" {
		return base
	}
	return base + "." + ext
}

// decodeDirEntry decodes one 32-byte directory record. ok is false for
// free slots, LFN sub-entries (the caller accumulates those separately),
// and deleted entries: a leading 0xE5 marks a deleted record, which must
// be skipped rather than surfaced as live.
func decodeDirEntry(raw []byte, lfnName string) (entry DirEntry, isLFN bool, ok bool) {
	if len(raw) < dirEntrySize {
		return DirEntry{}, false, false
	}

	first := raw[0]
	if first == entryFree || first == entryDeleted {
		return DirEntry{}, false, false
	}

	attr := raw[11]
	if attr&attrLFN == attrLFN {
		return DirEntry{}, true, false
	}

	var name11 [11]byte
	copy(name11[:], raw[0:11])
	short := decodeShortName(name11)

	le := binary.LittleEndian
	hiClus := le.Uint16(raw[20:22])
	loClus := le.Uint16(raw[26:28])
	firstClus := uint32(hiClus)<<16 | uint32(loClus)

	// File size is a full 4-byte little-endian field at offset 28, not a
	// 2-byte read: a 2-byte read silently truncates any file larger than
	// 64KiB.
	size := le.Uint32(raw[28:32])

	writeTime := le.Uint16(raw[22:24])
	writeDate := le.Uint16(raw[24:26])

	display := short
	if lfnName != "" {
		display = lfnName
	}

	e := DirEntry{
		Name:       display,
		ShortName:  short,
		IsDir:      attr&attrDir != 0,
		IsReadOnly: attr&attrReadOnly != 0,
		IsHidden:   attr&attrHidden != 0,
		Size:       size,
		FirstClus:  firstClus,
		ModDate:    decodeDate(writeDate),
		ModTime:    decodeTime(writeTime),
	}
	return e, false, true
}

// decodeDirectory walks a full directory region (one or more 32-byte
// records) and returns the live entries in on-disk order. The walk stops
// at the first free (0x00) entry, which marks the logical end of the
// directory — any records after it are leftover, previously-used slots.
func decodeDirectory(data []byte) []DirEntry {
	var entries []DirEntry
	var lfn lfnAccumulator

	for off := 0; off+dirEntrySize <= len(data); off += dirEntrySize {
		raw := data[off : off+dirEntrySize]

		if raw[0] == entryFree {
			break
		}
		if raw[0] == entryDeleted {
			lfn.reset()
			continue
		}

		attr := raw[11]
		if attr&attrLFN == attrLFN {
			lfn.add(raw)
			continue
		}

		name := lfn.take()
		entry, _, ok := decodeDirEntry(raw, name)
		if !ok {
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}
