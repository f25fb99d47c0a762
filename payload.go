package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
)

// Payload is the parsed, typed meaning of a frame. Every variant serializes
// back to its canonical 17-byte form; ParsePayload only returns a variant
// whose canonical form is byte-identical to the input.
type Payload interface {
	Bytes() []byte
}

type RestorePayload struct{}

func (p RestorePayload) Bytes() []byte {
	return BuildFrame(CMD_RESTORE)
}

type RequestActiveProfilePayload struct{}

func (p RequestActiveProfilePayload) Bytes() []byte {
	return BuildFrame(CMD_ACTIVE_PROFILE_GET)
}

type SetActiveProfilePayload struct {
	Profile byte
}

func (p SetActiveProfilePayload) Bytes() []byte {
	return BuildFrame(CMD_ACTIVE_PROFILE_SET, 0x00, 0x00, 0x00, 0x01, p.Profile)
}

type CurrentActiveProfilePayload struct {
	Profile byte
}

func (p CurrentActiveProfilePayload) Bytes() []byte {
	return BuildFrame(CMD_ACTIVE_PROFILE_GET, 0x00, 0x00, 0x00, 0x01, p.Profile)
}

type RequestPowerDetailsPayload struct{}

func (p RequestPowerDetailsPayload) Bytes() []byte {
	return BuildFrame(CMD_POWER)
}

// DeviceEventKind identifies an unsolicited event frame by the byte the
// device places at frame index 6.
type DeviceEventKind byte

const (
	EVENT_DPI_MODE  DeviceEventKind = 0x01
	EVENT_UNKNOWN_1 DeviceEventKind = 0x04
	EVENT_POWER     DeviceEventKind = 0x40
)

// deviceEventNames is the closed registry of event kinds the device is known
// to emit. An inbound event outside this table is a protocol error.
var deviceEventNames = map[DeviceEventKind]string{
	EVENT_DPI_MODE:  "dpi-mode",
	EVENT_UNKNOWN_1: "unknown-1",
	EVENT_POWER:     "power",
}

type DeviceEventPayload struct {
	Kind DeviceEventKind
}

func (p DeviceEventPayload) Bytes() []byte {
	return BuildFrame(CMD_DEVICE_EVENT, 0x00, 0x00, 0x00, 0x0a, byte(p.Kind))
}

func (p DeviceEventPayload) String() string {
	if name, ok := deviceEventNames[p.Kind]; ok {
		return name
	}
	return fmt.Sprintf("event-0x%02x", byte(p.Kind))
}

// PowerDetails is the power telemetry carried by a POWER response. The
// response frame itself has no canonical payload variant; the controller
// parses it at fixed offsets.
type PowerDetails struct {
	BatteryPercent    int
	PowerConnected    bool
	BatteryMillivolts int
}

func parsePowerDetails(frame []byte) (PowerDetails, error) {
	if err := ValidateFrame(frame); err != nil {
		return PowerDetails{}, err
	}
	connected, err := byteToBool(frame[7])
	if err != nil {
		return PowerDetails{}, fmt.Errorf("power connected flag: %w", err)
	}
	return PowerDetails{
		BatteryPercent:    int(frame[6]),
		PowerConnected:    connected,
		BatteryMillivolts: int(binary.BigEndian.Uint16(frame[8:10])),
	}, nil
}

// ParsePayload validates a 17-byte frame and dispatches on its command byte.
// Non-trivial variants are reconstructed from their extracted fields and
// compared byte-for-byte against the input, so a misparsed frame fails
// instead of yielding a wrong value.
func ParsePayload(data []byte) (Payload, error) {
	if err := ValidateFrame(data); err != nil {
		return nil, err
	}

	switch Command(data[1]) {
	case CMD_POWER:
		req := RequestPowerDetailsPayload{}
		if bytes.Equal(data, req.Bytes()) {
			return req, nil
		}
		// Power responses are parsed at raw offsets by the controller,
		// not through this dispatcher.
		return nil, fmt.Errorf("%w: power response payload", ErrNotImplemented)

	case CMD_RESTORE:
		req := RestorePayload{}
		if !bytes.Equal(data, req.Bytes()) {
			return nil, fmt.Errorf("%w: restore frame %02x", ErrUnexpectedResponse, data)
		}
		return req, nil

	case CMD_STATUS:
		return nil, fmt.Errorf("%w: status payload", ErrNotImplemented)

	case CMD_MEM_SET:
		return nil, fmt.Errorf("%w: memory write payload", ErrNotImplemented)

	case CMD_MEM_GET:
		return nil, fmt.Errorf("%w: memory read payload", ErrNotImplemented)

	case CMD_DEVICE_EVENT:
		kind := DeviceEventKind(data[6])
		if _, ok := deviceEventNames[kind]; !ok {
			return nil, fmt.Errorf("%w: kind 0x%02x", ErrUnknownDeviceEvent, data[6])
		}
		event := DeviceEventPayload{Kind: kind}
		if !bytes.Equal(data, event.Bytes()) {
			return nil, fmt.Errorf("%w: device event frame %02x", ErrUnexpectedResponse, data)
		}
		return event, nil

	case CMD_ACTIVE_PROFILE_SET:
		inst := SetActiveProfilePayload{Profile: data[6]}
		if !bytes.Equal(data, inst.Bytes()) {
			return nil, fmt.Errorf("%w: set-profile frame %02x", ErrUnexpectedResponse, data)
		}
		return inst, nil

	case CMD_ACTIVE_PROFILE_GET:
		req := RequestActiveProfilePayload{}
		if bytes.Equal(data, req.Bytes()) {
			return req, nil
		}
		inst := CurrentActiveProfilePayload{Profile: data[6]}
		if !bytes.Equal(data, inst.Bytes()) {
			return nil, fmt.Errorf("%w: active-profile frame %02x", ErrUnexpectedResponse, data)
		}
		return inst, nil

	default:
		return nil, fmt.Errorf("%w: 0x%02x", ErrUnknownCommand, data[1])
	}
}
