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

// Time is a decoded DOS time field: hours:minutes:seconds_div_2 packed as
// bits [15:11][10:5][4:0].
type Time struct {
	Hours   uint8
	Minutes uint8
	Seconds uint8 // already multiplied by 2
}

// Date is a decoded DOS date field: year_since_1980:month:day packed as
// bits [15:9][8:5][4:0].
type Date struct {
	Year  uint16 // full calendar year, e.g. 2024
	Month uint8
	Day   uint8
}

func decodeTime(raw uint16) Time {
	return Time{
		Hours:   uint8((raw >> 11) & 0x1F),
		Minutes: uint8((raw >> 5) & 0x3F),
		Seconds: uint8((raw & 0x1F) * 2),
	}
}

// decodeDate adds the stored year field directly to 1980, with no
// 1900/2000-offset remapping.
func decodeDate(raw uint16) Date {
	return Date{
		Year:  1980 + (raw >> 9),
		Month: uint8((raw >> 5) & 0x0F),
		Day:   uint8(raw & 0x1F),
	}
}
