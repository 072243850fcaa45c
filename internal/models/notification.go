package models

import "time"

// NotificationType is the display level of a notification.
type NotificationType string

// Notification type constants
const (
	NotificationInfo    NotificationType = "info"
	NotificationWarning NotificationType = "warning"
	NotificationError   NotificationType = "error"
	NotificationSuccess NotificationType = "success"
)

// ReminderType identifies which time-to-start bracket produced a
// calendar-linked notification.
type ReminderType string

// Reminder type constants
const (
	ReminderUpcoming ReminderType = "upcoming"
	ReminderDue      ReminderType = "due"
	ReminderOverdue  ReminderType = "overdue"
	ReminderSoon     ReminderType = "reminder"
)

// Notification is one entry in the append-only notification log.
// Calendar-linked notifications also carry the event linkage fields.
type Notification struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	Type      NotificationType `json:"type"`
	Priority  Priority         `json:"priority"`
	Timestamp time.Time        `json:"timestamp"`
	Read      bool             `json:"read"`

	// Calendar linkage, set only for reminder notifications.
	EventID      string       `json:"event_id,omitempty"`
	EventType    EventType    `json:"event_type,omitempty"`
	EventDate    *time.Time   `json:"event_date,omitempty"`
	ReminderType ReminderType `json:"reminder_type,omitempty"`
}
