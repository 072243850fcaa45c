// Package models contains the domain models for the application.
package models

import (
	"strings"
	"time"
)

// EventType classifies a calendar event by the kind of work it represents.
type EventType string

// Event type constants
const (
	EventTypeLoad        EventType = "load"
	EventTypePickup      EventType = "pickup"
	EventTypeDelivery    EventType = "delivery"
	EventTypeMaintenance EventType = "maintenance"
	EventTypeCompliance  EventType = "compliance"
	EventTypeDriver      EventType = "driver"
	EventTypeMeeting     EventType = "meeting"
	EventTypeBreak       EventType = "break"
	EventTypeTraining    EventType = "training"
	EventTypeInspection  EventType = "inspection"
	EventTypeCustom      EventType = "custom"
)

// EventStatus is the normalized scheduling status of an event.
type EventStatus string

// Event status constants
const (
	EventStatusScheduled  EventStatus = "scheduled"
	EventStatusInProgress EventStatus = "in-progress"
	EventStatusCompleted  EventStatus = "completed"
	EventStatusCancelled  EventStatus = "cancelled"
)

// Priority indicates how urgent an event or notification is.
type Priority string

// Priority constants
const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

// Domain prefixes for event IDs. Every event ID carries the prefix of the
// domain it was normalized from, which keeps IDs collision-free across
// domains and lets a sync replace exactly one domain's events.
const (
	PrefixLoad        = "load-"
	PrefixMaintenance = "maintenance-"
	PrefixCompliance  = "compliance-"
	PrefixDriver      = "driver-"
)

// CalendarEvent is the canonical normalized unit of schedulable information.
// One event is produced per load, maintenance, compliance, or driver record.
type CalendarEvent struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Location    string      `json:"location,omitempty"`
	Type        EventType   `json:"type"`
	Start       time.Time   `json:"start"`
	End         time.Time   `json:"end"`
	AllDay      bool        `json:"all_day"`
	Status      EventStatus `json:"status"`
	Priority    Priority    `json:"priority"`
	Color       string      `json:"color"`
	Meta        EventMeta   `json:"metadata,omitempty"`
}

// EventMeta carries the domain-specific fields of an event. Each domain has
// its own variant; the shared accessors expose the resource identifiers the
// conflict detector groups by. An empty string means the event does not
// occupy that resource.
type EventMeta interface {
	DriverID() string
	VehicleID() string
}

// LoadMeta is the metadata variant for load events.
type LoadMeta struct {
	LoadID    string  `json:"load_id"`
	Driver    string  `json:"driver_id,omitempty"`
	Rate      float64 `json:"rate,omitempty"`
	Equipment string  `json:"equipment,omitempty"`
}

// DriverID returns the driver assigned to the load, if any.
func (m LoadMeta) DriverID() string { return m.Driver }

// VehicleID returns "" — load records do not carry a vehicle identifier.
func (m LoadMeta) VehicleID() string { return "" }

// MaintenanceMeta is the metadata variant for maintenance events.
type MaintenanceMeta struct {
	RecordID        string  `json:"record_id"`
	Vehicle         string  `json:"vehicle_id"`
	VehicleNumber   string  `json:"vehicle_number,omitempty"`
	ServiceType     string  `json:"service_type,omitempty"`
	ServiceProvider string  `json:"service_provider,omitempty"`
	Cost            float64 `json:"cost,omitempty"`
	DurationMin     int     `json:"duration_min,omitempty"`
}

// DriverID returns "" — maintenance is scheduled against a vehicle.
func (m MaintenanceMeta) DriverID() string { return "" }

// VehicleID returns the vehicle the service is scheduled for.
func (m MaintenanceMeta) VehicleID() string { return m.Vehicle }

// ComplianceMeta is the metadata variant for compliance events.
type ComplianceMeta struct {
	RecordID string `json:"record_id"`
	Entity   string `json:"entity,omitempty"`
}

// DriverID returns "" — compliance items are not resource-bound.
func (m ComplianceMeta) DriverID() string { return "" }

// VehicleID returns "".
func (m ComplianceMeta) VehicleID() string { return "" }

// DriverActionMeta is the metadata variant for driver action events.
type DriverActionMeta struct {
	RecordID   string `json:"record_id"`
	Driver     string `json:"driver_id"`
	DriverName string `json:"driver_name,omitempty"`
	ActionType string `json:"action_type,omitempty"`
}

// DriverID returns the driver the action item belongs to.
func (m DriverActionMeta) DriverID() string { return m.Driver }

// VehicleID returns "".
func (m DriverActionMeta) VehicleID() string { return "" }

// HasPrefix reports whether the event belongs to the given domain prefix.
func (e *CalendarEvent) HasPrefix(prefix string) bool {
	return strings.HasPrefix(e.ID, prefix)
}

// Overlaps reports whether two events strictly overlap in time.
// Back-to-back events (one ends exactly when the other starts) do not
// overlap.
func (e *CalendarEvent) Overlaps(other *CalendarEvent) bool {
	return e.Start.Before(other.End) && other.Start.Before(e.End)
}

// IsFinished reports whether the event no longer needs attention.
func (e *CalendarEvent) IsFinished() bool {
	return e.Status == EventStatusCompleted || e.Status == EventStatusCancelled
}

// IsOverdue reports whether the event should have started but is still
// sitting in the scheduled state.
func (e *CalendarEvent) IsOverdue(now time.Time) bool {
	return e.Start.Before(now) && e.Status == EventStatusScheduled
}
