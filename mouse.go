package main

import (
	"bytes"
	"errors"
	"fmt"
)

var (
	ErrInvalidWriteSpan = errors.New("write span must be 1-10 contiguous addresses")
	ErrDeviceOff        = errors.New("device is off")
)

// The maximum number of settings bytes a single MEM_GET/MEM_SET can carry.
const MEM_CHUNK_SIZE = 10

// Highest settings address covered by a full settings sweep.
const SETTINGS_MAX_ADDR = ADDR_AUTOSLEEP_TIME_CHECKSUM

// X2V2Mini drives a Pulsar X2V2 Mini through a frame transport. It keeps a
// local mirror of the device's settings space, filled lazily by ReadSettings
// and kept coherent by every write, plus a cached active profile.
//
// Not safe for concurrent use: the on-check before a memory write and the
// write itself are separate exchanges, and the protocol has no way to make
// the pair atomic.
type X2V2Mini struct {
	dev      Transport
	settings map[byte]byte
	profile  *byte
}

func NewX2V2Mini(dev Transport) *X2V2Mini {
	return &X2V2Mini{
		dev:      dev,
		settings: make(map[byte]byte),
	}
}

// readMatching reads frames until one carries the awaited command byte,
// discarding interleaved unsolicited frames (device events arrive on the
// same channel as command responses). The returned frame is checksum-valid.
func (m *X2V2Mini) readMatching(cmd Command) ([]byte, error) {
	for {
		resp, err := m.dev.Read()
		if err != nil {
			return nil, err
		}
		if err := ValidateFrame(resp); err != nil {
			return nil, err
		}
		if Command(resp[1]) == cmd {
			return resp, nil
		}
		if verbose {
			fmt.Printf("🔕 Discarding unsolicited frame: command 0x%02x\n", resp[1])
		}
	}
}

// GetPower queries the device's power telemetry.
func (m *X2V2Mini) GetPower() (PowerDetails, error) {
	if err := m.dev.Write(BuildFrame(CMD_POWER)); err != nil {
		return PowerDetails{}, err
	}
	resp, err := m.readMatching(CMD_POWER)
	if err != nil {
		return PowerDetails{}, err
	}
	return parsePowerDetails(resp)
}

// IsOn reports whether the mouse itself (not the receiver) is powered on.
func (m *X2V2Mini) IsOn() (bool, error) {
	if err := m.dev.Write(BuildFrame(CMD_STATUS)); err != nil {
		return false, err
	}
	resp, err := m.readMatching(CMD_STATUS)
	if err != nil {
		return false, err
	}
	on, err := byteToBool(resp[6])
	if err != nil {
		return false, fmt.Errorf("status byte: %w", err)
	}
	return on, nil
}

// ReadSettings sweeps the settings space in 10-byte windows and replaces the
// local mirror with the result.
func (m *X2V2Mini) ReadSettings() error {
	settings := make(map[byte]byte)
	for start := 0; start <= SETTINGS_MAX_ADDR+MEM_CHUNK_SIZE; start += MEM_CHUNK_SIZE {
		frame := BuildFrame(CMD_MEM_GET, 0x00, 0x00, byte(start), MEM_CHUNK_SIZE)
		if err := m.dev.Write(frame); err != nil {
			return err
		}
		resp, err := m.readMatching(CMD_MEM_GET)
		if err != nil {
			return err
		}
		if resp[4] != byte(start) || resp[5] != MEM_CHUNK_SIZE {
			return fmt.Errorf("%w: memory read echoed 0x%02x/%d, want 0x%02x/%d",
				ErrUnexpectedResponse, resp[4], resp[5], start, MEM_CHUNK_SIZE)
		}
		for i := 0; i < MEM_CHUNK_SIZE; i++ {
			settings[byte(start+i)] = resp[6+i]
		}
	}
	m.settings = settings
	return nil
}

// ensureSettings fills the mirror on first use (and after Restore cleared it).
func (m *X2V2Mini) ensureSettings() error {
	if len(m.settings) > 0 {
		return nil
	}
	return m.ReadSettings()
}

func (m *X2V2Mini) setting(addr byte) (byte, error) {
	if err := m.ensureSettings(); err != nil {
		return 0, err
	}
	return m.settings[addr], nil
}

// memSet is the sole write path into the settings space. The addresses must
// form a contiguous block of at most 10 bytes, and the device must currently
// report powered-on, since a write while the mouse is asleep is silently
// lost. Setters pass value/checksum address pairs so the checksum-pairing
// invariant is enforced here, once.
func (m *X2V2Mini) memSet(addresses map[byte]byte) error {
	length := len(addresses)
	if length < 1 || length > MEM_CHUNK_SIZE {
		return fmt.Errorf("%w: got %d addresses", ErrInvalidWriteSpan, length)
	}

	start := byte(0xff)
	for addr := range addresses {
		if addr < start {
			start = addr
		}
	}

	params := make([]byte, 4+length)
	params[2] = start
	params[3] = byte(length)
	for i := 0; i < length; i++ {
		value, ok := addresses[start+byte(i)]
		if !ok {
			return fmt.Errorf("%w: missing address 0x%02x", ErrInvalidWriteSpan, start+byte(i))
		}
		params[4+i] = value
	}

	on, err := m.IsOn()
	if err != nil {
		return err
	}
	if !on {
		return ErrDeviceOff
	}

	if err := m.dev.Write(BuildFrame(CMD_MEM_SET, params...)); err != nil {
		return err
	}
	if _, err := m.readMatching(CMD_MEM_SET); err != nil {
		return err
	}

	for addr, value := range addresses {
		m.settings[addr] = value
	}
	return nil
}

// Profile returns the active configuration profile, fetching it from the
// device on first use.
func (m *X2V2Mini) Profile() (byte, error) {
	if m.profile != nil {
		return *m.profile, nil
	}
	if err := m.dev.Write(RequestActiveProfilePayload{}.Bytes()); err != nil {
		return 0, err
	}
	for {
		resp, err := m.dev.Read()
		if err != nil {
			return 0, err
		}
		inst, err := ParsePayload(resp)
		if err != nil {
			return 0, err
		}
		if current, ok := inst.(CurrentActiveProfilePayload); ok {
			m.profile = &current.Profile
			return current.Profile, nil
		}
	}
}

// SetProfile switches the active profile and requires the device to echo the
// requested profile back.
func (m *X2V2Mini) SetProfile(profile byte) error {
	req := SetActiveProfilePayload{Profile: profile}
	if err := m.dev.Write(req.Bytes()); err != nil {
		return err
	}
	for {
		resp, err := m.dev.Read()
		if err != nil {
			return err
		}
		inst, err := ParsePayload(resp)
		if err != nil {
			return err
		}
		echo, ok := inst.(SetActiveProfilePayload)
		if !ok {
			continue
		}
		if echo.Profile != profile {
			return fmt.Errorf("%w: device switched to profile %d, want %d",
				ErrUnexpectedResponse, echo.Profile, profile)
		}
		m.profile = &profile
		return nil
	}
}

// Restore resets the device to factory defaults. The device echoes the
// request verbatim; anything else is a failed exchange. The settings mirror
// and profile cache are dropped so the next access re-reads the device.
func (m *X2V2Mini) Restore() error {
	req := BuildFrame(CMD_RESTORE)
	if err := m.dev.Write(req); err != nil {
		return err
	}
	resp, err := m.readMatching(CMD_RESTORE)
	if err != nil {
		return err
	}
	if !bytes.Equal(resp, req) {
		return fmt.Errorf("%w: restore echo %02x", ErrUnexpectedResponse, resp)
	}
	m.settings = make(map[byte]byte)
	m.profile = nil
	return nil
}

// DumpMemory reads the full 0x00-0xff device memory, beyond the documented
// settings range. Useful for protocol exploration.
func (m *X2V2Mini) DumpMemory() ([]byte, error) {
	var dump []byte
	for start := 0x00; start < 0xff; start += MEM_CHUNK_SIZE {
		frame := BuildFrame(CMD_MEM_GET, 0x00, 0x00, byte(start), MEM_CHUNK_SIZE)
		if err := m.dev.Write(frame); err != nil {
			return nil, err
		}
		resp, err := m.readMatching(CMD_MEM_GET)
		if err != nil {
			return nil, err
		}
		if resp[4] != byte(start) || resp[5] != MEM_CHUNK_SIZE {
			return nil, fmt.Errorf("%w: memory dump echoed 0x%02x/%d, want 0x%02x/%d",
				ErrUnexpectedResponse, resp[4], resp[5], start, MEM_CHUNK_SIZE)
		}
		dump = append(dump, resp[6:6+MEM_CHUNK_SIZE]...)
	}
	return dump, nil
}

func (m *X2V2Mini) PollingRate() (int, error) {
	raw, err := m.setting(ADDR_POLLING_RATE)
	if err != nil {
		return 0, err
	}
	hz, ok := pollingRateFromRaw(raw)
	if !ok {
		return 0, fmt.Errorf("unknown polling rate value: 0x%02x", raw)
	}
	return hz, nil
}

func (m *X2V2Mini) SetPollingRate(hz int) error {
	raw, ok := pollingRateHz[hz]
	if !ok {
		return fmt.Errorf("invalid polling rate: %d", hz)
	}
	return m.memSet(map[byte]byte{
		ADDR_POLLING_RATE:          raw,
		ADDR_POLLING_RATE_CHECKSUM: Checksum(raw),
	})
}

func (m *X2V2Mini) DPIMode() (int, error) {
	raw, err := m.setting(ADDR_DPI_MODE)
	if err != nil {
		return 0, err
	}
	return int(raw), nil
}

func (m *X2V2Mini) SetDPIMode(mode int) error {
	if mode < DPI_MODE_MIN || mode > DPI_MODE_MAX {
		return fmt.Errorf("invalid dpi mode: %d", mode)
	}
	value := byte(mode)
	return m.memSet(map[byte]byte{
		ADDR_DPI_MODE:          value,
		ADDR_DPI_MODE_CHECKSUM: Checksum(value),
	})
}

func (m *X2V2Mini) DPIModeCount() (int, error) {
	raw, err := m.setting(ADDR_DPI_MODE_CT)
	if err != nil {
		return 0, err
	}
	return int(raw), nil
}

// LodMM returns the lift-off distance in millimeters.
func (m *X2V2Mini) LodMM() (int, error) {
	raw, err := m.setting(ADDR_LOD_MM)
	if err != nil {
		return 0, err
	}
	return int(raw), nil
}

func (m *X2V2Mini) SetLodMM(mm int) error {
	if mm < LOD_MM_MIN || mm > LOD_MM_MAX {
		return fmt.Errorf("invalid lift-off distance: %dmm", mm)
	}
	value := byte(mm)
	return m.memSet(map[byte]byte{
		ADDR_LOD_MM:          value,
		ADDR_LOD_MM_CHECKSUM: Checksum(value),
	})
}

// DebounceTime returns the button debounce time in milliseconds.
func (m *X2V2Mini) DebounceTime() (int, error) {
	raw, err := m.setting(ADDR_DEBOUNCE_TIME)
	if err != nil {
		return 0, err
	}
	return int(raw), nil
}

func (m *X2V2Mini) MotionSync() (bool, error) {
	raw, err := m.setting(ADDR_MOTION_SYNC)
	if err != nil {
		return false, err
	}
	return raw != 0, nil
}

func (m *X2V2Mini) SetMotionSync(enabled bool) error {
	value := boolToByte(enabled)
	return m.memSet(map[byte]byte{
		ADDR_MOTION_SYNC:          value,
		ADDR_MOTION_SYNC_CHECKSUM: Checksum(value),
	})
}

func (m *X2V2Mini) LodRipple() (bool, error) {
	raw, err := m.setting(ADDR_LOD_RIPPLE)
	if err != nil {
		return false, err
	}
	return raw != 0, nil
}

func (m *X2V2Mini) SetLodRipple(enabled bool) error {
	value := boolToByte(enabled)
	return m.memSet(map[byte]byte{
		ADDR_LOD_RIPPLE:          value,
		ADDR_LOD_RIPPLE_CHECKSUM: Checksum(value),
	})
}

func (m *X2V2Mini) AngleSnapping() (bool, error) {
	raw, err := m.setting(ADDR_ANGLE_SNAPPING)
	if err != nil {
		return false, err
	}
	return raw != 0, nil
}

func (m *X2V2Mini) SetAngleSnapping(enabled bool) error {
	value := boolToByte(enabled)
	return m.memSet(map[byte]byte{
		ADDR_ANGLE_SNAPPING:          value,
		ADDR_ANGLE_SNAPPING_CHECKSUM: Checksum(value),
	})
}

func (m *X2V2Mini) LEDEffect() (LEDEffect, error) {
	raw, err := m.setting(ADDR_LED_EFFECT)
	if err != nil {
		return 0, err
	}
	return LEDEffect(raw), nil
}

func (m *X2V2Mini) SetLEDEffect(effect LEDEffect) error {
	if effect != LED_EFFECT_STEADY && effect != LED_EFFECT_BREATHE {
		return fmt.Errorf("invalid led effect: 0x%02x", byte(effect))
	}
	value := byte(effect)
	return m.memSet(map[byte]byte{
		ADDR_LED_EFFECT:          value,
		ADDR_LED_EFFECT_CHECKSUM: Checksum(value),
	})
}

func (m *X2V2Mini) LEDBrightness() (int, error) {
	raw, err := m.setting(ADDR_LED_BRIGHTNESS)
	if err != nil {
		return 0, err
	}
	return int(raw), nil
}

func (m *X2V2Mini) SetLEDBrightness(brightness int) error {
	if brightness < LED_BRIGHTNESS_MIN || brightness > LED_BRIGHTNESS_MAX {
		return fmt.Errorf("invalid led brightness: %d", brightness)
	}
	value := byte(brightness)
	return m.memSet(map[byte]byte{
		ADDR_LED_BRIGHTNESS:          value,
		ADDR_LED_BRIGHTNESS_CHECKSUM: Checksum(value),
	})
}

func (m *X2V2Mini) LEDBreatheSpeed() (int, error) {
	raw, err := m.setting(ADDR_LED_BREATHE_SPEED)
	if err != nil {
		return 0, err
	}
	return int(raw), nil
}

func (m *X2V2Mini) LEDEnabled() (bool, error) {
	raw, err := m.setting(ADDR_LED_ENABLED)
	if err != nil {
		return false, err
	}
	return raw != 0, nil
}

func (m *X2V2Mini) SetLEDEnabled(enabled bool) error {
	value := boolToByte(enabled)
	return m.memSet(map[byte]byte{
		ADDR_LED_ENABLED:          value,
		ADDR_LED_ENABLED_CHECKSUM: Checksum(value),
	})
}

// AutosleepSeconds returns the idle timeout before the mouse sleeps. The
// device stores it in 10-second units.
func (m *X2V2Mini) AutosleepSeconds() (int, error) {
	raw, err := m.setting(ADDR_AUTOSLEEP_TIME)
	if err != nil {
		return 0, err
	}
	return int(raw) * 10, nil
}

// GetDPI returns the DPI configured for one of the four DPI modes.
func (m *X2V2Mini) GetDPI(mode int) (int, error) {
	if mode < DPI_MODE_MIN || mode > DPI_MODE_MAX {
		return 0, fmt.Errorf("invalid dpi mode: %d", mode)
	}
	addrs := modeAddrsFor(mode)
	var raw [3]byte
	for i, addr := range []byte{addrs.dpiIndex1, addrs.dpiIndex2, addrs.dpiIndex3} {
		v, err := m.setting(addr)
		if err != nil {
			return 0, err
		}
		raw[i] = v
	}
	return rawToDPI(raw)
}

func (m *X2V2Mini) SetDPI(mode int, dpi int) error {
	if mode < DPI_MODE_MIN || mode > DPI_MODE_MAX {
		return fmt.Errorf("invalid dpi mode: %d", mode)
	}
	raw, err := dpiToRaw(dpi)
	if err != nil {
		return err
	}
	addrs := modeAddrsFor(mode)
	return m.memSet(map[byte]byte{
		addrs.dpiIndex1:   raw[0],
		addrs.dpiIndex2:   raw[1],
		addrs.dpiIndex3:   raw[2],
		addrs.dpiChecksum: Checksum(raw[0], raw[1], raw[2]),
	})
}

// ActiveDPI returns the DPI of the currently active mode.
func (m *X2V2Mini) ActiveDPI() (int, error) {
	mode, err := m.DPIMode()
	if err != nil {
		return 0, err
	}
	return m.GetDPI(mode)
}

func (m *X2V2Mini) SetActiveDPI(dpi int) error {
	mode, err := m.DPIMode()
	if err != nil {
		return err
	}
	return m.SetDPI(mode, dpi)
}

// GetLEDColor returns the LED color of a DPI mode as a "#rrggbb" string.
func (m *X2V2Mini) GetLEDColor(mode int) (string, error) {
	if mode < DPI_MODE_MIN || mode > DPI_MODE_MAX {
		return "", fmt.Errorf("invalid dpi mode: %d", mode)
	}
	addrs := modeAddrsFor(mode)
	var rgb [3]byte
	for i, addr := range []byte{addrs.ledColorR, addrs.ledColorG, addrs.ledColorB} {
		v, err := m.setting(addr)
		if err != nil {
			return "", err
		}
		rgb[i] = v
	}
	return rgbToColor(rgb[0], rgb[1], rgb[2]), nil
}

func (m *X2V2Mini) SetLEDColor(mode int, color string) error {
	if mode < DPI_MODE_MIN || mode > DPI_MODE_MAX {
		return fmt.Errorf("invalid dpi mode: %d", mode)
	}
	r, g, b, err := colorToRGB(color)
	if err != nil {
		return err
	}
	addrs := modeAddrsFor(mode)
	return m.memSet(map[byte]byte{
		addrs.ledColorR:   r,
		addrs.ledColorG:   g,
		addrs.ledColorB:   b,
		addrs.ledChecksum: Checksum(r, g, b),
	})
}

func (m *X2V2Mini) ActiveLEDColor() (string, error) {
	mode, err := m.DPIMode()
	if err != nil {
		return "", err
	}
	return m.GetLEDColor(mode)
}

func (m *X2V2Mini) SetActiveLEDColor(color string) error {
	mode, err := m.DPIMode()
	if err != nil {
		return err
	}
	return m.SetLEDColor(mode, color)
}
