// Package calendar provides event normalization, the in-memory event
// registry, and resource conflict detection.
package calendar

import (
	"fmt"
	"time"

	"github.com/fleet-dispatch/backend/internal/models"
)

// MalformedRecordError is returned when a domain record cannot be normalized
// into a calendar event. Malformed records are rejected at this boundary so
// invalid intervals never reach the registry or the conflict math.
type MalformedRecordError struct {
	Domain   string
	RecordID string
	Reason   string
}

// Error implements the error interface.
func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed %s record %q: %s", e.Domain, e.RecordID, e.Reason)
}

// Display colors keyed by event status (loads) or priority (everything
// else).
var statusColors = map[models.EventStatus]string{
	models.EventStatusScheduled:  "#3b82f6",
	models.EventStatusInProgress: "#f59e0b",
	models.EventStatusCompleted:  "#10b981",
	models.EventStatusCancelled:  "#6b7280",
}

var priorityColors = map[models.Priority]string{
	models.PriorityLow:    "#10b981",
	models.PriorityMedium: "#3b82f6",
	models.PriorityHigh:   "#f59e0b",
	models.PriorityUrgent: "#ef4444",
}

// StatusColor returns the display color for an event status.
func StatusColor(status models.EventStatus) string {
	if c, ok := statusColors[status]; ok {
		return c
	}
	return statusColors[models.EventStatusScheduled]
}

// PriorityColor returns the display color for a priority.
func PriorityColor(priority models.Priority) string {
	if c, ok := priorityColors[priority]; ok {
		return c
	}
	return priorityColors[models.PriorityMedium]
}

// loadStatuses maps load board statuses onto normalized event statuses.
var loadStatuses = map[models.LoadStatus]models.EventStatus{
	models.LoadStatusBooked:    models.EventStatusScheduled,
	models.LoadStatusInTransit: models.EventStatusInProgress,
	models.LoadStatusDelivered: models.EventStatusCompleted,
	models.LoadStatusCancelled: models.EventStatusCancelled,
}

// NormalizeLoad converts a load record into a calendar event spanning pickup
// to delivery.
func NormalizeLoad(l models.Load) (models.CalendarEvent, error) {
	if l.ID == "" {
		return models.CalendarEvent{}, &MalformedRecordError{Domain: "load", Reason: "missing id"}
	}
	if l.PickupDate.IsZero() || l.DeliveryDate.IsZero() {
		return models.CalendarEvent{}, &MalformedRecordError{Domain: "load", RecordID: l.ID, Reason: "missing pickup or delivery date"}
	}
	if l.DeliveryDate.Before(l.PickupDate) {
		return models.CalendarEvent{}, &MalformedRecordError{Domain: "load", RecordID: l.ID, Reason: "delivery date before pickup date"}
	}

	status, ok := loadStatuses[l.Status]
	if !ok {
		return models.CalendarEvent{}, &MalformedRecordError{Domain: "load", RecordID: l.ID, Reason: fmt.Sprintf("unknown status %q", l.Status)}
	}

	return models.CalendarEvent{
		ID:          models.PrefixLoad + l.ID,
		Title:       fmt.Sprintf("Load %s: %s to %s", l.ID, l.PickupLocation, l.DeliveryLocation),
		Description: l.SpecialInstructions,
		Location:    l.PickupLocation,
		Type:        models.EventTypeLoad,
		Start:       l.PickupDate,
		End:         l.DeliveryDate,
		Status:      status,
		Priority:    models.PriorityMedium,
		Color:       StatusColor(status),
		Meta: models.LoadMeta{
			LoadID:    l.ID,
			Driver:    l.Driver,
			Rate:      l.Rate,
			Equipment: l.Equipment,
		},
	}, nil
}

// NormalizeMaintenance converts a maintenance record into a calendar event
// spanning the scheduled date plus the estimated duration.
func NormalizeMaintenance(m models.MaintenanceRecord) (models.CalendarEvent, error) {
	if m.ID == "" {
		return models.CalendarEvent{}, &MalformedRecordError{Domain: "maintenance", Reason: "missing id"}
	}
	if m.ScheduledDate.IsZero() {
		return models.CalendarEvent{}, &MalformedRecordError{Domain: "maintenance", RecordID: m.ID, Reason: "missing scheduled date"}
	}
	if m.EstimatedDurMin < 0 {
		return models.CalendarEvent{}, &MalformedRecordError{Domain: "maintenance", RecordID: m.ID, Reason: "negative estimated duration"}
	}

	priority := defaultPriority(m.Priority)
	end := m.ScheduledDate.Add(time.Duration(m.EstimatedDurMin) * time.Minute)

	return models.CalendarEvent{
		ID:          models.PrefixMaintenance + m.ID,
		Title:       fmt.Sprintf("%s - %s", m.ServiceType, m.VehicleNumber),
		Description: m.Description,
		Location:    m.ServiceProvider,
		Type:        models.EventTypeMaintenance,
		Start:       m.ScheduledDate,
		End:         end,
		Status:      models.EventStatusScheduled,
		Priority:    priority,
		Color:       PriorityColor(priority),
		Meta: models.MaintenanceMeta{
			RecordID:        m.ID,
			Vehicle:         m.VehicleID,
			VehicleNumber:   m.VehicleNumber,
			ServiceType:     m.ServiceType,
			ServiceProvider: m.ServiceProvider,
			Cost:            m.Cost,
			DurationMin:     m.EstimatedDurMin,
		},
	}, nil
}

// NormalizeCompliance converts a compliance record into an all-day event on
// its due date.
func NormalizeCompliance(c models.ComplianceRecord) (models.CalendarEvent, error) {
	if c.ID == "" {
		return models.CalendarEvent{}, &MalformedRecordError{Domain: "compliance", Reason: "missing id"}
	}
	if c.DueDate.IsZero() {
		return models.CalendarEvent{}, &MalformedRecordError{Domain: "compliance", RecordID: c.ID, Reason: "missing due date"}
	}

	priority := defaultPriority(c.Priority)

	return models.CalendarEvent{
		ID:          models.PrefixCompliance + c.ID,
		Title:       fmt.Sprintf("%s - %s", c.Type, c.Entity),
		Description: c.Description,
		Type:        models.EventTypeCompliance,
		Start:       c.DueDate,
		End:         c.DueDate,
		AllDay:      true,
		Status:      models.EventStatusScheduled,
		Priority:    priority,
		Color:       PriorityColor(priority),
		Meta: models.ComplianceMeta{
			RecordID: c.ID,
			Entity:   c.Entity,
		},
	}, nil
}

// NormalizeDriver converts a driver action record into an all-day event on
// its due date.
func NormalizeDriver(d models.DriverRecord) (models.CalendarEvent, error) {
	if d.ID == "" {
		return models.CalendarEvent{}, &MalformedRecordError{Domain: "driver", Reason: "missing id"}
	}
	if d.DueDate.IsZero() {
		return models.CalendarEvent{}, &MalformedRecordError{Domain: "driver", RecordID: d.ID, Reason: "missing due date"}
	}

	priority := defaultPriority(d.Priority)

	return models.CalendarEvent{
		ID:          models.PrefixDriver + d.ID,
		Title:       fmt.Sprintf("%s - %s", d.Type, d.DriverName),
		Description: d.Description,
		Type:        models.EventTypeDriver,
		Start:       d.DueDate,
		End:         d.DueDate,
		AllDay:      true,
		Status:      models.EventStatusScheduled,
		Priority:    priority,
		Color:       PriorityColor(priority),
		Meta: models.DriverActionMeta{
			RecordID:   d.ID,
			Driver:     d.DriverID,
			DriverName: d.DriverName,
			ActionType: d.Type,
		},
	}, nil
}

// NormalizeLoads converts a batch of load records. The batch fails as a
// whole on the first malformed record so a partial set never enters the
// registry.
func NormalizeLoads(loads []models.Load) ([]models.CalendarEvent, error) {
	events := make([]models.CalendarEvent, 0, len(loads))
	for _, l := range loads {
		event, err := NormalizeLoad(l)
		if err != nil {
			return nil, fmt.Errorf("normalizing loads: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}

// NormalizeMaintenanceRecords converts a batch of maintenance records.
func NormalizeMaintenanceRecords(records []models.MaintenanceRecord) ([]models.CalendarEvent, error) {
	events := make([]models.CalendarEvent, 0, len(records))
	for _, m := range records {
		event, err := NormalizeMaintenance(m)
		if err != nil {
			return nil, fmt.Errorf("normalizing maintenance: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}

// NormalizeComplianceRecords converts a batch of compliance records.
func NormalizeComplianceRecords(records []models.ComplianceRecord) ([]models.CalendarEvent, error) {
	events := make([]models.CalendarEvent, 0, len(records))
	for _, c := range records {
		event, err := NormalizeCompliance(c)
		if err != nil {
			return nil, fmt.Errorf("normalizing compliance: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}

// NormalizeDriverRecords converts a batch of driver action records.
func NormalizeDriverRecords(records []models.DriverRecord) ([]models.CalendarEvent, error) {
	events := make([]models.CalendarEvent, 0, len(records))
	for _, d := range records {
		event, err := NormalizeDriver(d)
		if err != nil {
			return nil, fmt.Errorf("normalizing drivers: %w", err)
		}
		events = append(events, event)
	}
	return events, nil
}

// defaultPriority falls back to medium when a record carries no priority.
func defaultPriority(p models.Priority) models.Priority {
	switch p {
	case models.PriorityLow, models.PriorityMedium, models.PriorityHigh, models.PriorityUrgent:
		return p
	}
	return models.PriorityMedium
}
