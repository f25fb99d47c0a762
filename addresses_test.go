package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModeAddrsFor(t *testing.T) {
	expected := []modeAddrs{
		{0x0c, 0x0d, 0x0e, 0x0f, 0x2c, 0x2d, 0x2e, 0x2f},
		{0x10, 0x11, 0x12, 0x13, 0x30, 0x31, 0x32, 0x33},
		{0x14, 0x15, 0x16, 0x17, 0x34, 0x35, 0x36, 0x37},
		{0x18, 0x19, 0x1a, 0x1b, 0x38, 0x39, 0x3a, 0x3b},
	}
	for mode, want := range expected {
		assert.Equal(t, want, modeAddrsFor(mode), "mode %d", mode)
	}
}

func TestPollingRateTable(t *testing.T) {
	for hz, raw := range pollingRateHz {
		back, ok := pollingRateFromRaw(raw)
		assert.True(t, ok)
		assert.Equal(t, hz, back)
	}

	_, ok := pollingRateFromRaw(0x20)
	assert.False(t, ok)
}

func TestSettingsLayout(t *testing.T) {
	// Spot checks on the fixed layout; these offsets are a device contract.
	assert.Equal(t, 0x00, ADDR_POLLING_RATE)
	assert.Equal(t, 0x04, ADDR_DPI_MODE)
	assert.Equal(t, 0x4c, ADDR_LED_EFFECT)
	assert.Equal(t, 0xa9, ADDR_DEBOUNCE_TIME)
	assert.Equal(t, 0xb7, ADDR_AUTOSLEEP_TIME)
	assert.Equal(t, 0xb8, ADDR_AUTOSLEEP_TIME_CHECKSUM)
}
