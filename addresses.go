package main

// Byte offsets inside the device's persistent settings space. Every value
// field is paired with an adjacent checksum field that must hold
// Checksum(value). The layout is a device contract; offsets are exact.
const (
	ADDR_POLLING_RATE          = 0x00
	ADDR_POLLING_RATE_CHECKSUM = 0x01
	ADDR_DPI_MODE_CT           = 0x02
	ADDR_DPI_MODE_CT_CHECKSUM  = 0x03
	ADDR_DPI_MODE              = 0x04
	ADDR_DPI_MODE_CHECKSUM     = 0x05
	ADDR_LOD_MM                = 0x0a
	ADDR_LOD_MM_CHECKSUM       = 0x0b

	// Four per-mode blocks follow each base at a fixed 4-byte stride:
	// 3 DPI bytes + checksum from 0x0c, 3 LED color bytes + checksum
	// from 0x2c.
	ADDR_MODE0_DPI       = 0x0c
	ADDR_MODE0_LED_COLOR = 0x2c
	MODE_BLOCK_STRIDE    = 4

	ADDR_LED_EFFECT                 = 0x4c
	ADDR_LED_EFFECT_CHECKSUM        = 0x4d
	ADDR_LED_BRIGHTNESS             = 0x4e
	ADDR_LED_BRIGHTNESS_CHECKSUM    = 0x4f
	ADDR_LED_BREATHE_SPEED          = 0x50
	ADDR_LED_BREATHE_SPEED_CHECKSUM = 0x51
	ADDR_LED_ENABLED                = 0x52
	ADDR_LED_ENABLED_CHECKSUM       = 0x53

	// Button slots are 4-byte records: mode byte, two argument bytes,
	// checksum.
	ADDR_BUTTON_LEFT    = 0x60
	ADDR_BUTTON_RIGHT   = 0x64
	ADDR_BUTTON_WHEEL   = 0x68
	ADDR_BUTTON_BACK    = 0x6c
	ADDR_BUTTON_FORWARD = 0x70

	ADDR_DEBOUNCE_TIME           = 0xa9
	ADDR_DEBOUNCE_TIME_CHECKSUM  = 0xaa
	ADDR_MOTION_SYNC             = 0xab
	ADDR_MOTION_SYNC_CHECKSUM    = 0xac
	ADDR_ANGLE_SNAPPING          = 0xaf
	ADDR_ANGLE_SNAPPING_CHECKSUM = 0xb0
	ADDR_LOD_RIPPLE              = 0xb1
	ADDR_LOD_RIPPLE_CHECKSUM     = 0xb2
	ADDR_AUTOSLEEP_TIME          = 0xb7
	ADDR_AUTOSLEEP_TIME_CHECKSUM = 0xb8
)

const (
	DEBOUNCE_TIME_MIN = 0x00
	DEBOUNCE_TIME_MAX = 0x1e

	LOD_MM_MIN = 0x01
	LOD_MM_MAX = 0x02

	DPI_MODE_MIN = 0x00
	DPI_MODE_MAX = 0x03

	AUTOSLEEP_TIME_MIN = 0x01 // 10 seconds
	AUTOSLEEP_TIME_MAX = 0x3c // 10 minutes

	LED_BRIGHTNESS_MIN = 0x00
	LED_BRIGHTNESS_MAX = 0xff

	LED_BREATHE_SPEED_MIN = 0x01
	LED_BREATHE_SPEED_MAX = 0x05

	DPI_MODE_CT_MIN = 0x01
	DPI_MODE_CT_MAX = 0x04

	DPI_MIN = 50
	DPI_MAX = 26000
)

// pollingRateHz maps a polling rate in Hz to its on-device byte.
var pollingRateHz = map[int]byte{
	1000: 0x01,
	500:  0x02,
	250:  0x04,
	125:  0x08,
}

func pollingRateFromRaw(raw byte) (int, bool) {
	for hz, v := range pollingRateHz {
		if v == raw {
			return hz, true
		}
	}
	return 0, false
}

type LEDEffect byte

const (
	LED_EFFECT_STEADY  LEDEffect = 0x01
	LED_EFFECT_BREATHE LEDEffect = 0x02
)

type ButtonMode byte

const (
	BUTTON_DISABLED       ButtonMode = 0x00
	BUTTON_MOUSE          ButtonMode = 0x01
	BUTTON_DPI_CHANGE     ButtonMode = 0x02
	BUTTON_CUSTOM1        ButtonMode = 0x05
	BUTTON_PROFILE_CHANGE ButtonMode = 0x09
	BUTTON_DPI_LOCK       ButtonMode = 0x0a
)

type MouseKey byte

const (
	MOUSE_KEY_LEFT    MouseKey = 0x01
	MOUSE_KEY_RIGHT   MouseKey = 0x02
	MOUSE_KEY_WHEEL   MouseKey = 0x04
	MOUSE_KEY_BACK    MouseKey = 0x08
	MOUSE_KEY_FORWARD MouseKey = 0x10
)

type DPIChangeKey byte

const (
	DPI_CHANGE_LOOP  DPIChangeKey = 0x01
	DPI_CHANGE_PLUS  DPIChangeKey = 0x02
	DPI_CHANGE_MINUS DPIChangeKey = 0x03
)

// modeAddrs is the address record for one DPI mode: the 3 raw DPI bytes with
// their checksum and the LED color triple with its checksum.
type modeAddrs struct {
	dpiIndex1   byte
	dpiIndex2   byte
	dpiIndex3   byte
	dpiChecksum byte
	ledColorR   byte
	ledColorG   byte
	ledColorB   byte
	ledChecksum byte
}

// modeAddrsFor derives the address block of a DPI mode (0-3) from the fixed
// base offsets and stride.
func modeAddrsFor(mode int) modeAddrs {
	dpi := byte(ADDR_MODE0_DPI + mode*MODE_BLOCK_STRIDE)
	led := byte(ADDR_MODE0_LED_COLOR + mode*MODE_BLOCK_STRIDE)
	return modeAddrs{
		dpiIndex1:   dpi,
		dpiIndex2:   dpi + 1,
		dpiIndex3:   dpi + 2,
		dpiChecksum: dpi + 3,
		ledColorR:   led,
		ledColorG:   led + 1,
		ledColorB:   led + 2,
		ledChecksum: led + 3,
	}
}
