package main

import (
	"errors"
	"fmt"
)

// EventWatcher consumes unsolicited device-event frames from the transport
// and forwards them to the notification manager. It owns the transport while
// running; no controller exchange may share the channel with it.
type EventWatcher struct {
	dev           Transport
	config        *Config
	notifications *NotificationManager
	stopCh        chan struct{}
	doneCh        chan struct{}
}

func NewEventWatcher(dev Transport, config *Config, notifications *NotificationManager) *EventWatcher {
	return &EventWatcher{
		dev:           dev,
		config:        config,
		notifications: notifications,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
}

func (ew *EventWatcher) Start() {
	go func() {
		defer close(ew.doneCh)
		for {
			select {
			case <-ew.stopCh:
				return
			default:
			}
			ew.readEvent()
		}
	}()
}

func (ew *EventWatcher) Stop() {
	close(ew.stopCh)
	<-ew.doneCh
}

func (ew *EventWatcher) readEvent() {
	frame, err := ew.dev.Read()
	if err != nil {
		if errors.Is(err, ErrReadTimeout) {
			return
		}
		if verbose {
			fmt.Printf("❌ Error reading frame: %v\n", err)
		}
		return
	}

	inst, err := ParsePayload(frame)
	if err != nil {
		if verbose {
			fmt.Printf("⚠️ Ignoring unparseable frame: %v\n", err)
		}
		return
	}

	event, ok := inst.(DeviceEventPayload)
	if !ok {
		return
	}

	switch event.Kind {
	case EVENT_DPI_MODE:
		fmt.Println("🎯 DPI mode button pressed")
		if ew.config.Notifications {
			ew.notifications.ShowDPIModeChanged()
		}
	case EVENT_POWER:
		fmt.Println("🔋 Power event reported")
		if ew.config.Notifications {
			ew.notifications.ShowPowerEvent()
		}
	default:
		if verbose {
			fmt.Printf("❓ Device event: %s\n", event)
		}
	}
}
