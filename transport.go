package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/sstallion/go-hid"
)

const (
	PULSAR_VID = 0x3554 // Pulsar
	PULSAR_PID = 0xf508 // X2V2 Mini (regular wireless dongle)

	// The receiver exposes three HID interfaces with fixed report lengths
	// (8, 17 and 7 bytes); interface 1 carries the 17-byte command channel.
	COMMAND_INTERFACE = 1
)

// ErrReadTimeout is returned when no frame arrives within the configured
// read timeout. Callers that keep waiting (the event watcher) treat it as
// idle; request/response exchanges surface it as a failed exchange.
var ErrReadTimeout = errors.New("read timeout")

// Transport is the raw frame channel to the device: one 17-byte frame per
// write, one per read. Reads block until a frame arrives or the timeout
// elapses.
type Transport interface {
	Write(frame []byte) error
	Read() ([]byte, error)
	Close() error
}

type hidTransport struct {
	dev     *hid.Device
	path    string
	timeout time.Duration
}

// OpenHIDTransport finds the receiver by vendor/product ID, picks the
// command interface and opens it.
func OpenHIDTransport(config *Config) (*hidTransport, error) {
	if err := hid.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize hidapi: %w", err)
	}

	var path string
	err := hid.Enumerate(config.VendorID, config.ProductID, func(info *hid.DeviceInfo) error {
		if verbose {
			fmt.Printf("🔍 Checking device: %s (interface %d)\n", info.Path, info.InterfaceNbr)
		}
		if info.InterfaceNbr == COMMAND_INTERFACE && path == "" {
			path = info.Path
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate HID devices: %w", err)
	}
	if path == "" {
		return nil, fmt.Errorf("Pulsar device not found (VID=0x%04X, PID=0x%04X) - make sure it's connected and you have permission to access it",
			config.VendorID, config.ProductID)
	}

	dev, err := hid.OpenPath(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open device: %w", err)
	}

	if verbose {
		fmt.Printf("🔌 Connected to Pulsar device: %s\n", path)
	}

	return &hidTransport{
		dev:     dev,
		path:    path,
		timeout: config.ReadTimeout,
	}, nil
}

func (t *hidTransport) Write(frame []byte) error {
	n, err := t.dev.Write(frame)
	if err != nil {
		return fmt.Errorf("failed to write frame: %w", err)
	}
	if n != len(frame) {
		return fmt.Errorf("short write: %d of %d bytes", n, len(frame))
	}
	return nil
}

func (t *hidTransport) Read() ([]byte, error) {
	buf := make([]byte, FRAME_SIZE)
	n, err := t.dev.ReadWithTimeout(buf, t.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to read frame: %w", err)
	}
	if n == 0 {
		return nil, ErrReadTimeout
	}
	return buf[:n], nil
}

func (t *hidTransport) Close() error {
	if t.dev == nil {
		return nil
	}
	err := t.dev.Close()
	t.dev = nil
	hid.Exit()
	return err
}
