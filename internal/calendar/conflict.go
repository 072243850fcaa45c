package calendar

import (
	"fmt"
	"sort"

	"github.com/fleet-dispatch/backend/internal/models"
)

// Detector finds resource double-bookings in an event snapshot. Detection is
// a full re-scan every time: it is pure over its input, so repeated calls on
// an unchanged snapshot return an identical conflict set.
type Detector struct{}

// NewDetector creates a conflict detector.
func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns one conflict per pair of events that share a resource and
// strictly overlap in time. Events carrying both a driver and a vehicle
// participate in both groupings independently. Touching intervals are not
// conflicts.
func (d *Detector) Detect(events []models.CalendarEvent) []models.Conflict {
	var conflicts []models.Conflict
	conflicts = append(conflicts, d.detectForResource(events, models.ResourceDriver)...)
	conflicts = append(conflicts, d.detectForResource(events, models.ResourceVehicle)...)
	return conflicts
}

// Watch subscribes the detector to a store so conflicts are recomputed on
// every registry change. The returned func cancels the subscription.
func (d *Detector) Watch(store *Store, fn func(conflicts []models.Conflict)) (stop func()) {
	return store.Subscribe(func(events []models.CalendarEvent) {
		fn(d.Detect(events))
	})
}

// detectForResource groups events by one resource dimension and flags every
// strictly overlapping pair within each group.
func (d *Detector) detectForResource(events []models.CalendarEvent, resource models.ResourceType) []models.Conflict {
	groups := make(map[string][]models.CalendarEvent)
	for _, e := range events {
		id := resourceID(&e, resource)
		if id == "" {
			continue
		}
		groups[id] = append(groups[id], e)
	}

	// Scan groups in sorted resource order so output is deterministic.
	ids := make([]string, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	var conflicts []models.Conflict
	for _, id := range ids {
		group := groups[id]
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i], group[j]
				if !a.Overlaps(&b) {
					continue
				}
				conflicts = append(conflicts, models.Conflict{
					ID:           fmt.Sprintf("conflict-%s-%s", a.ID, b.ID),
					Type:         models.ConflictHardClash,
					Severity:     models.SeverityHigh,
					ResourceType: resource,
					ResourceID:   id,
					Message:      conflictMessage(resource, id, &a, &b),
					Events:       []models.CalendarEvent{a, b},
				})
			}
		}
	}
	return conflicts
}

// resourceID extracts one resource dimension from an event's metadata.
func resourceID(e *models.CalendarEvent, resource models.ResourceType) string {
	if e.Meta == nil {
		return ""
	}
	if resource == models.ResourceDriver {
		return e.Meta.DriverID()
	}
	return e.Meta.VehicleID()
}

// conflictMessage builds the human-readable double-booking description.
func conflictMessage(resource models.ResourceType, id string, a, b *models.CalendarEvent) string {
	label := "Vehicle"
	if resource == models.ResourceDriver {
		label = "Driver"
	}
	return fmt.Sprintf("%s %s is double-booked: %q overlaps %q", label, id, a.Title, b.Title)
}
