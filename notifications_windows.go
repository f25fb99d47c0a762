//go:build windows

package main

import (
	"fmt"
	"path/filepath"

	"github.com/go-toast/toast"
)

// NotificationManager handles Windows toast notifications
type NotificationManager struct {
	appID    string
	iconPath string
}

// NewNotificationManager creates a new notification manager
func NewNotificationManager() *NotificationManager {
	// Get the executable path for icon
	execPath, err := filepath.Abs(".")
	iconPath := ""
	if err == nil {
		iconPath = filepath.Join(execPath, "icon.png")
	}

	return &NotificationManager{
		appID:    "Pulsar.ConfigTool",
		iconPath: iconPath,
	}
}

func (nm *NotificationManager) push(title, message string) {
	notification := toast.Notification{
		AppID:   nm.appID,
		Title:   title,
		Message: message,
		Icon:    nm.iconPath,
	}

	if err := notification.Push(); err != nil && verbose {
		fmt.Printf("⚠️ Failed to show notification: %v\n", err)
	}
}

// ShowWatcherStarted shows notification when the event watcher starts
func (nm *NotificationManager) ShowWatcherStarted() {
	nm.push("Pulsar Config", "🚀 Watching for device events...")
}

// ShowDPIModeChanged shows notification when the DPI mode button is pressed
func (nm *NotificationManager) ShowDPIModeChanged() {
	nm.push("DPI Mode Changed", "🎯 DPI mode button was pressed")
}

// ShowPowerEvent shows notification on a power event
func (nm *NotificationManager) ShowPowerEvent() {
	nm.push("Power Event", "🔋 The mouse reported a power event")
}

// ShowError shows error notification
func (nm *NotificationManager) ShowError(title, message string) {
	nm.push(title, fmt.Sprintf("❌ %s", message))
}
