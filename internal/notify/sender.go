// Package notify provides the in-memory notification log, the calendar
// reminder monitor, and the platform notification side effect.
package notify

import (
	"log"

	"github.com/fleet-dispatch/backend/internal/models"
)

// Sender delivers a notification to a platform surface (desktop toast, push
// gateway). Delivery is best-effort: a failed send is logged and the in-app
// log entry is unaffected.
type Sender interface {
	Send(n models.Notification) error
}

// NopSender discards every notification. Used when no platform surface is
// available or permission was not granted.
type NopSender struct{}

// Send discards the notification.
func (NopSender) Send(models.Notification) error { return nil }

// LogSender writes notifications to the process log. Useful for headless
// deployments and local runs.
type LogSender struct{}

// Send logs the notification.
func (LogSender) Send(n models.Notification) error {
	log.Printf("[%s] %s: %s", n.Type, n.Title, n.Message)
	return nil
}
