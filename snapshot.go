package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

type PowerInfo struct {
	Connected         bool `json:"connected"`
	BatteryPercent    int  `json:"battery_percent"`
	BatteryMillivolts int  `json:"battery_millivolts"`
}

type DPIModeInfo struct {
	DPIMode  int    `json:"dpi_mode"`
	LEDColor string `json:"led_color"`
	DPI      int    `json:"dpi"`
}

type LODInfo struct {
	MM            int  `json:"mm"`
	RippleEnabled bool `json:"ripple_enabled"`
}

type LEDInfo struct {
	Enabled      bool    `json:"enabled"`
	Effect       *string `json:"effect"`
	Color        string  `json:"color,omitempty"`
	Brightness   *int    `json:"brightness,omitempty"`
	BreatheSpeed *int    `json:"breathe_speed,omitempty"`
}

// Snapshot is the full device state printed after a configuration run.
type Snapshot struct {
	Power                PowerInfo     `json:"power"`
	DPIModes             []DPIModeInfo `json:"dpi_modes"`
	ActiveProfile        int           `json:"active_profile"`
	ActiveDPIMode        int           `json:"active_dpi_mode"`
	AngleSnappingEnabled bool          `json:"angle_snapping_enabled"`
	AutosleepSeconds     int           `json:"autosleep_seconds"`
	DebounceMilliseconds int           `json:"debounce_milliseconds"`
	LOD                  LODInfo       `json:"lod"`
	MotionSyncEnabled    bool          `json:"motion_sync_enabled"`
	PollingRateHz        int           `json:"polling_rate_hz"`
	LED                  LEDInfo       `json:"led"`
}

// buildSnapshot assembles the snapshot from the controller. Every field goes
// through the typed accessors, so a snapshot after Restore re-reads the
// device.
func buildSnapshot(mouse *X2V2Mini) (*Snapshot, error) {
	snap := &Snapshot{}

	power, err := mouse.GetPower()
	if err != nil {
		return nil, fmt.Errorf("failed to read power details: %w", err)
	}
	snap.Power = PowerInfo{
		Connected:         power.PowerConnected,
		BatteryPercent:    power.BatteryPercent,
		BatteryMillivolts: power.BatteryMillivolts,
	}

	modeCount, err := mouse.DPIModeCount()
	if err != nil {
		return nil, err
	}
	for mode := 0; mode < modeCount; mode++ {
		color, err := mouse.GetLEDColor(mode)
		if err != nil {
			return nil, err
		}
		dpi, err := mouse.GetDPI(mode)
		if err != nil {
			return nil, err
		}
		snap.DPIModes = append(snap.DPIModes, DPIModeInfo{
			DPIMode:  mode,
			LEDColor: color,
			DPI:      dpi,
		})
	}

	profile, err := mouse.Profile()
	if err != nil {
		return nil, err
	}
	snap.ActiveProfile = int(profile)

	if snap.ActiveDPIMode, err = mouse.DPIMode(); err != nil {
		return nil, err
	}
	if snap.AngleSnappingEnabled, err = mouse.AngleSnapping(); err != nil {
		return nil, err
	}
	if snap.AutosleepSeconds, err = mouse.AutosleepSeconds(); err != nil {
		return nil, err
	}
	if snap.DebounceMilliseconds, err = mouse.DebounceTime(); err != nil {
		return nil, err
	}
	if snap.LOD.MM, err = mouse.LodMM(); err != nil {
		return nil, err
	}
	if snap.LOD.RippleEnabled, err = mouse.LodRipple(); err != nil {
		return nil, err
	}
	if snap.MotionSyncEnabled, err = mouse.MotionSync(); err != nil {
		return nil, err
	}
	if snap.PollingRateHz, err = mouse.PollingRate(); err != nil {
		return nil, err
	}

	enabled, err := mouse.LEDEnabled()
	if err != nil {
		return nil, err
	}
	snap.LED.Enabled = enabled
	if enabled {
		effect, err := mouse.LEDEffect()
		if err != nil {
			return nil, err
		}
		color, err := mouse.ActiveLEDColor()
		if err != nil {
			return nil, err
		}
		snap.LED.Color = color
		switch effect {
		case LED_EFFECT_BREATHE:
			name := "breathe"
			snap.LED.Effect = &name
			speed, err := mouse.LEDBreatheSpeed()
			if err != nil {
				return nil, err
			}
			snap.LED.BreatheSpeed = &speed
		case LED_EFFECT_STEADY:
			name := "steady"
			snap.LED.Effect = &name
			brightness, err := mouse.LEDBrightness()
			if err != nil {
				return nil, err
			}
			snap.LED.Brightness = &brightness
		}
	}

	return snap, nil
}

func (s *Snapshot) JSON() (string, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal snapshot: %w", err)
	}
	return string(data), nil
}

// colorToRGB parses a "#rrggbb" (or "rrggbb") hex color string.
func colorToRGB(color string) (r, g, b byte, err error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(color, "#"))
	if err != nil {
		return 0, 0, 0, fmt.Errorf("invalid color %q: %w", color, err)
	}
	if len(raw) != 3 {
		return 0, 0, 0, fmt.Errorf("invalid color %q: want 6 hex digits", color)
	}
	return raw[0], raw[1], raw[2], nil
}

func rgbToColor(r, g, b byte) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
