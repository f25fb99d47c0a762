package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	tests := []struct {
		name     string
		values   []byte
		expected byte
	}{
		{
			name:     "no values",
			values:   nil,
			expected: 0x55,
		},
		{
			name:     "single byte",
			values:   []byte{0x01},
			expected: 0x54,
		},
		{
			name:     "wraps below zero",
			values:   []byte{0x56},
			expected: 0xff,
		},
		{
			name:     "sum overflows a byte",
			values:   []byte{0xff, 0xff, 0x02},
			expected: 0x55,
		},
		{
			name:     "bare power request frame body",
			values:   []byte{0x08, 0x04, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0},
			expected: 0x49,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Checksum(tt.values...))
		})
	}
}

func TestChecksumMatchesFormula(t *testing.T) {
	// Against the reference definition with int arithmetic.
	seqs := [][]byte{
		{0x08, 0x0a, 0x00, 0x00, 0x00, 0x0a, 0x04, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00},
		{0xde, 0xad, 0xbe, 0xef},
		{0x00},
		{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff},
	}
	for _, seq := range seqs {
		sum := 0
		for _, v := range seq {
			sum += int(v)
		}
		expected := byte(((0x55-sum)%256 + 256) % 256)
		assert.Equal(t, expected, Checksum(seq...))
	}
}

func TestBuildFrame(t *testing.T) {
	frame := BuildFrame(CMD_RESTORE)
	require.Len(t, frame, FRAME_SIZE)
	assert.Equal(t, byte(PAYLOAD_HEADER), frame[0])
	assert.Equal(t, byte(CMD_RESTORE), frame[1])
	for i := 2; i < FRAME_SIZE-1; i++ {
		assert.Equal(t, byte(0), frame[i], "parameter byte %d should be zero-filled", i)
	}
	assert.Equal(t, Checksum(frame[:FRAME_SIZE-1]...), frame[FRAME_SIZE-1])
}

func TestBuildFrameParams(t *testing.T) {
	frame := BuildFrame(CMD_MEM_GET, 0x00, 0x00, 0x14, 0x0a)
	assert.Equal(t, byte(0x14), frame[4])
	assert.Equal(t, byte(0x0a), frame[5])
	require.NoError(t, ValidateFrame(frame))
}

func TestBuildFrameSelfConsistent(t *testing.T) {
	// parse(build(cmd, params)) succeeds for every parseable command.
	for _, frame := range [][]byte{
		BuildFrame(CMD_RESTORE),
		BuildFrame(CMD_POWER),
		BuildFrame(CMD_ACTIVE_PROFILE_GET),
		BuildFrame(CMD_ACTIVE_PROFILE_SET, 0x00, 0x00, 0x00, 0x01, 0x02),
		BuildFrame(CMD_DEVICE_EVENT, 0x00, 0x00, 0x00, 0x0a, 0x01),
	} {
		_, err := ParsePayload(frame)
		assert.NoError(t, err, "frame %02x", frame)
	}
}

func TestValidateFrameLength(t *testing.T) {
	for _, size := range []int{0, 1, 8, 16, 18, 64} {
		err := ValidateFrame(make([]byte, size))
		assert.ErrorIs(t, err, ErrMalformedFrame, "length %d", size)
	}
}

func TestValidateFrameChecksum(t *testing.T) {
	frame := BuildFrame(CMD_STATUS)
	frame[16]++
	assert.ErrorIs(t, ValidateFrame(frame), ErrChecksumMismatch)

	// A corrupted body invalidates the trailer too.
	frame = BuildFrame(CMD_STATUS)
	frame[6] = 0x01
	assert.ErrorIs(t, ValidateFrame(frame), ErrChecksumMismatch)
}

func TestByteToBool(t *testing.T) {
	v, err := byteToBool(0x00)
	require.NoError(t, err)
	assert.False(t, v)

	v, err = byteToBool(0x01)
	require.NoError(t, err)
	assert.True(t, v)

	_, err = byteToBool(0x02)
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}
