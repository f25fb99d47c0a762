package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPayloadRoundTrip(t *testing.T) {
	tests := []struct {
		name    string
		payload Payload
	}{
		{"restore", RestorePayload{}},
		{"request active profile", RequestActiveProfilePayload{}},
		{"set active profile", SetActiveProfilePayload{Profile: 3}},
		{"current active profile", CurrentActiveProfilePayload{Profile: 1}},
		{"request power details", RequestPowerDetailsPayload{}},
		{"device event dpi mode", DeviceEventPayload{Kind: EVENT_DPI_MODE}},
		{"device event power", DeviceEventPayload{Kind: EVENT_POWER}},
		{"device event unknown-1", DeviceEventPayload{Kind: EVENT_UNKNOWN_1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parsed, err := ParsePayload(tt.payload.Bytes())
			require.NoError(t, err)
			assert.Equal(t, tt.payload, parsed)
		})
	}
}

func TestSetActiveProfileWireFormat(t *testing.T) {
	expected := []byte{
		0x08, 0x0f, 0x00, 0x00, 0x00, 0x01, 0x03,
		0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00,
		0x3a,
	}
	assert.Equal(t, expected, SetActiveProfilePayload{Profile: 3}.Bytes())
}

func TestParsePayloadRequestVsResponse(t *testing.T) {
	// A bare ACTIVE_PROFILE_GET frame is the request; with byte 5 set it
	// carries the current profile.
	parsed, err := ParsePayload(BuildFrame(CMD_ACTIVE_PROFILE_GET))
	require.NoError(t, err)
	assert.Equal(t, RequestActiveProfilePayload{}, parsed)

	parsed, err = ParsePayload(BuildFrame(CMD_ACTIVE_PROFILE_GET, 0x00, 0x00, 0x00, 0x01, 0x02))
	require.NoError(t, err)
	assert.Equal(t, CurrentActiveProfilePayload{Profile: 2}, parsed)
}

func TestParsePayloadUnknownCommand(t *testing.T) {
	_, err := ParsePayload(BuildFrame(Command(0x42)))
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestParsePayloadUnknownDeviceEvent(t *testing.T) {
	_, err := ParsePayload(BuildFrame(CMD_DEVICE_EVENT, 0x00, 0x00, 0x00, 0x0a, 0x7f))
	assert.ErrorIs(t, err, ErrUnknownDeviceEvent)
}

func TestParsePayloadReservedCommands(t *testing.T) {
	for _, cmd := range []Command{CMD_STATUS, CMD_MEM_SET, CMD_MEM_GET} {
		_, err := ParsePayload(BuildFrame(cmd))
		assert.ErrorIs(t, err, ErrNotImplemented, "command 0x%02x", byte(cmd))
	}
}

func TestParsePayloadPowerResponseNotImplemented(t *testing.T) {
	// A POWER frame that is not the bare request goes to the controller's
	// offset parser, not through the dispatcher.
	_, err := ParsePayload(BuildFrame(CMD_POWER, 0x00, 0x00, 0x00, 0x00, 0x5a, 0x01, 0x0f, 0xa0))
	assert.ErrorIs(t, err, ErrNotImplemented)
}

func TestParsePayloadChecksum(t *testing.T) {
	frame := SetActiveProfilePayload{Profile: 3}.Bytes()
	frame[16] ^= 0xff
	_, err := ParsePayload(frame)
	assert.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestParsePayloadMalformedLength(t *testing.T) {
	for _, size := range []int{0, 16, 18} {
		_, err := ParsePayload(make([]byte, size))
		assert.ErrorIs(t, err, ErrMalformedFrame, "length %d", size)
	}
}

func TestParsePayloadNonCanonicalShape(t *testing.T) {
	// Valid checksum, known command, but stray bytes the canonical form
	// does not produce: the round-trip check must reject it.
	frame := BuildFrame(CMD_ACTIVE_PROFILE_SET, 0x00, 0x00, 0x00, 0x01, 0x03, 0x01)
	_, err := ParsePayload(frame)
	assert.ErrorIs(t, err, ErrUnexpectedResponse)

	frame = BuildFrame(CMD_RESTORE, 0x01)
	_, err = ParsePayload(frame)
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestParsePowerDetails(t *testing.T) {
	frame := BuildFrame(CMD_POWER, 0x00, 0x00, 0x00, 0x00, 90, 0x01, 0x0f, 0xa0)
	details, err := parsePowerDetails(frame)
	require.NoError(t, err)
	assert.Equal(t, 90, details.BatteryPercent)
	assert.True(t, details.PowerConnected)
	assert.Equal(t, 4000, details.BatteryMillivolts)
}

func TestParsePowerDetailsBadFlag(t *testing.T) {
	frame := BuildFrame(CMD_POWER, 0x00, 0x00, 0x00, 0x00, 90, 0x02, 0x0f, 0xa0)
	_, err := parsePowerDetails(frame)
	assert.ErrorIs(t, err, ErrUnexpectedResponse)
}

func TestDeviceEventString(t *testing.T) {
	assert.Equal(t, "dpi-mode", DeviceEventPayload{Kind: EVENT_DPI_MODE}.String())
	assert.Equal(t, "power", DeviceEventPayload{Kind: EVENT_POWER}.String())
	assert.Equal(t, "event-0x7f", DeviceEventPayload{Kind: 0x7f}.String())
}
