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

// Table is the decoded FAT: one next-cluster link per cluster slot, always
// widened to 32 bits regardless of on-disk variant.
type Table []uint32

// decodeTable turns the raw bytes of one FAT copy into a uniform link
// array, applying each variant's own packing rules.
func decodeTable(raw []byte, variant Variant) Table {
	le := binary.LittleEndian

	switch variant {
	case FAT32:
		links := make(Table, len(raw)/4)
		for i := range links {
			links[i] = le.Uint32(raw[i*4:])
		}
		return links

	case FAT16:
		links := make(Table, len(raw)/2)
		for i := range links {
			links[i] = uint32(le.Uint16(raw[i*2:]))
		}
		return links

	case FAT12:
		// Packed 12-bit entries: three raw bytes yield two 12-bit links.
		pairs := len(raw) / 3
		links := make(Table, 0, pairs*2)
		for i := 0; i < pairs; i++ {
			b := raw[i*3 : i*3+3]
			packed := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16
			links = append(links, packed&0x0FFF)
			links = append(links, packed>>12)
		}
		return links

	default:
		return nil
	}
}
