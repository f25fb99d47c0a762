package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDPIRoundTrip(t *testing.T) {
	for dpi := DPI_MIN; dpi <= DPI_MAX; dpi += 50 {
		raw, err := dpiToRaw(dpi)
		require.NoError(t, err, "dpi %d", dpi)
		decoded, err := rawToDPI(raw)
		require.NoError(t, err, "dpi %d raw %02x", dpi, raw)
		assert.Equal(t, dpi, decoded)
	}
}

func TestDPIToRaw(t *testing.T) {
	tests := []struct {
		dpi      int
		expected [3]byte
	}{
		{50, [3]byte{0x00, 0x00, 0x00}},
		{800, [3]byte{0x0f, 0x0f, 0x00}},
		{12800, [3]byte{0xff, 0xff, 0x00}},
		{12850, [3]byte{0x00, 0x00, 0x44}},
		{25600, [3]byte{0xff, 0xff, 0x44}},
		{25650, [3]byte{0x00, 0x00, 0x88}},
		{26000, [3]byte{0x07, 0x07, 0x88}},
	}
	for _, tt := range tests {
		raw, err := dpiToRaw(tt.dpi)
		require.NoError(t, err, "dpi %d", tt.dpi)
		assert.Equal(t, tt.expected, raw, "dpi %d", tt.dpi)
	}
}

func TestDPIToRawErrors(t *testing.T) {
	_, err := dpiToRaw(49)
	assert.ErrorIs(t, err, ErrDPIOutOfRange)

	_, err = dpiToRaw(26050)
	assert.ErrorIs(t, err, ErrDPIOutOfRange)

	_, err = dpiToRaw(0)
	assert.ErrorIs(t, err, ErrDPIOutOfRange)

	_, err = dpiToRaw(75)
	assert.ErrorIs(t, err, ErrDPINotMultiple)
}

func TestRawToDPIErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  [3]byte
	}{
		{"first two bytes differ", [3]byte{0x01, 0x02, 0x00}},
		{"nibbles differ", [3]byte{0x00, 0x00, 0x40}},
		{"low nibble bits set", [3]byte{0x00, 0x00, 0x11}},
		{"factor out of pattern", [3]byte{0x00, 0x00, 0x33}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rawToDPI(tt.raw)
			assert.ErrorIs(t, err, ErrDPIInconsistent)
		})
	}
}
