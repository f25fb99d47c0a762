package main

import (
	"errors"
	"fmt"
)

const (
	PAYLOAD_HEADER = 0x08
	FRAME_SIZE     = 17
	CHECKSUM_BASE  = 0x55
)

// Command is the opcode at byte 1 of every frame.
type Command byte

const (
	CMD_STATUS             Command = 0x03
	CMD_POWER              Command = 0x04
	CMD_MEM_SET            Command = 0x07
	CMD_MEM_GET            Command = 0x08
	CMD_RESTORE            Command = 0x09
	CMD_DEVICE_EVENT       Command = 0x0a
	CMD_ACTIVE_PROFILE_GET Command = 0x0e
	CMD_ACTIVE_PROFILE_SET Command = 0x0f
)

var (
	ErrChecksumMismatch   = errors.New("checksum mismatch")
	ErrMalformedFrame     = errors.New("malformed frame")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrUnknownDeviceEvent = errors.New("unknown device event")
	ErrNotImplemented     = errors.New("not implemented")
	ErrUnexpectedResponse = errors.New("unexpected response")
)

// Checksum folds a byte sequence into the single verification byte the device
// expects: 0x55 minus the sum, with 8-bit wraparound.
func Checksum(values ...byte) byte {
	var sum byte
	for _, v := range values {
		sum += v
	}
	return CHECKSUM_BASE - sum
}

// BuildFrame assembles a 17-byte frame from a command and up to 14 parameter
// bytes (frame indices 2-15). Unset parameters are zero-filled.
func BuildFrame(cmd Command, params ...byte) []byte {
	if len(params) > FRAME_SIZE-3 {
		panic(fmt.Sprintf("too many frame parameters: %d", len(params)))
	}
	frame := make([]byte, FRAME_SIZE)
	frame[0] = PAYLOAD_HEADER
	frame[1] = byte(cmd)
	copy(frame[2:], params)
	frame[FRAME_SIZE-1] = Checksum(frame[:FRAME_SIZE-1]...)
	return frame
}

// ValidateFrame checks the fixed length and the trailing checksum.
func ValidateFrame(data []byte) error {
	if len(data) != FRAME_SIZE {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrMalformedFrame, len(data), FRAME_SIZE)
	}
	if data[FRAME_SIZE-1] != Checksum(data[:FRAME_SIZE-1]...) {
		return fmt.Errorf("%w: frame %02x", ErrChecksumMismatch, data)
	}
	return nil
}

func byteToBool(v byte) (bool, error) {
	switch v {
	case 0x00:
		return false, nil
	case 0x01:
		return true, nil
	default:
		return false, fmt.Errorf("%w: 0x%02x is not a boolean", ErrUnexpectedResponse, v)
	}
}

func boolToByte(v bool) byte {
	if v {
		return 0x01
	}
	return 0x00
}
