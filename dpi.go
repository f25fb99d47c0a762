package main

import (
	"errors"
	"fmt"
)

var (
	ErrDPIOutOfRange   = errors.New("dpi out of range")
	ErrDPINotMultiple  = errors.New("dpi must be a multiple of 50")
	ErrDPIInconsistent = errors.New("inconsistent raw dpi bytes")
)

// dpiToRaw converts a DPI value to the device's 3-byte representation:
//
//	byte 0: same as byte 1
//	byte 1: (dpi/50 - 1) mod 256, sequential 0x00 to 0xff
//	byte 2: 12800-step factor packed into both nibbles
//	        0x00: factor 0,    50 <= dpi <= 12800
//	        0x44: factor 1, 12850 <= dpi <= 25600
//	        0x88: factor 2, 25650 <= dpi <= 26000
//
// The duplicated bytes and the mirrored nibbles are part of the on-device
// format, not redundancy.
func dpiToRaw(dpi int) ([3]byte, error) {
	if dpi < DPI_MIN || dpi > DPI_MAX {
		return [3]byte{}, fmt.Errorf("%w: %d not in [%d, %d]", ErrDPIOutOfRange, dpi, DPI_MIN, DPI_MAX)
	}
	if dpi%50 != 0 {
		return [3]byte{}, fmt.Errorf("%w: %d", ErrDPINotMultiple, dpi)
	}
	quo := dpi/50 - 1
	factor12800 := byte(quo / 256)
	factor50 := byte(quo % 256)
	return [3]byte{factor50, factor50, factor12800<<2 | factor12800<<6}, nil
}

// rawToDPI is the inverse of dpiToRaw and rejects any byte pattern the
// encoder cannot produce.
func rawToDPI(raw [3]byte) (int, error) {
	if raw[0] != raw[1] {
		return 0, fmt.Errorf("%w: %02x != %02x", ErrDPIInconsistent, raw[0], raw[1])
	}
	factor50 := int(raw[1]) + 1

	nib1 := raw[2] & 0x0f
	nib2 := raw[2] >> 4
	if nib1 != nib2 {
		return 0, fmt.Errorf("%w: nibbles %x/%x differ", ErrDPIInconsistent, nib1, nib2)
	}
	if nib1 != nib1&0b1100 {
		return 0, fmt.Errorf("%w: nibble %x has low bits set", ErrDPIInconsistent, nib1)
	}
	factor12800 := int(nib1 >> 2)
	return factor50*50 + factor12800*12800, nil
}
