package fat

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeDate(t *testing.T) {
	// 2024-03-15: year field 44 (1980+44=2024), month 3, day 15.
	raw := uint16(44)<<9 | uint16(3)<<5 | uint16(15)
	d := decodeDate(raw)
	require.Equal(t, Date{Year: 2024, Month: 3, Day: 15}, d)
}

func TestDecodeDateEpoch(t *testing.T) {
	// All-zero field decodes to 1980-00-00, the packed representation's
	// literal minimum rather than a remapped sentinel.
	d := decodeDate(0)
	require.Equal(t, uint16(1980), d.Year)
}

func TestDecodeTime(t *testing.T) {
	// 13:45:30: hours 13, minutes 45, seconds/2 = 15.
	raw := uint16(13)<<11 | uint16(45)<<5 | uint16(15)
	tm := decodeTime(raw)
	require.Equal(t, Time{Hours: 13, Minutes: 45, Seconds: 30}, tm)
}
