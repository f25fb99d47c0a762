//go:build !windows

package main

import "fmt"

// NotificationManager prints to stdout on platforms without toast support
type NotificationManager struct{}

func NewNotificationManager() *NotificationManager {
	return &NotificationManager{}
}

func (nm *NotificationManager) push(title, message string) {
	fmt.Printf("🔔 %s: %s\n", title, message)
}

func (nm *NotificationManager) ShowWatcherStarted() {
	nm.push("Pulsar Config", "🚀 Watching for device events...")
}

func (nm *NotificationManager) ShowDPIModeChanged() {
	nm.push("DPI Mode Changed", "🎯 DPI mode button was pressed")
}

func (nm *NotificationManager) ShowPowerEvent() {
	nm.push("Power Event", "🔋 The mouse reported a power event")
}

func (nm *NotificationManager) ShowError(title, message string) {
	nm.push(title, fmt.Sprintf("❌ %s", message))
}
