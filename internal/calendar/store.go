package calendar

import (
	"errors"
	"sync"
	"time"

	"github.com/fleet-dispatch/backend/internal/models"
)

// ErrEventNotFound is returned when an event ID is not in the registry.
var ErrEventNotFound = errors.New("event not found")

// upcomingWindow is how far ahead UpcomingEvents looks.
const upcomingWindow = 7 * 24 * time.Hour

// SyncResult contains the results of one domain sync.
type SyncResult struct {
	Domain        string    `json:"domain"`
	EventsRemoved int       `json:"events_removed"`
	EventsAdded   int       `json:"events_added"`
	SyncedAt      time.Time `json:"synced_at"`
}

// Listener receives the full event snapshot after every registry mutation.
// There is no diffing; subscribers always see the complete current set.
type Listener func(events []models.CalendarEvent)

// Store is the process-wide in-memory registry of calendar events. Events are
// partitioned by domain ID prefix, and each domain sync replaces that
// domain's events wholesale. Construct one Store per process and pass it to
// consumers; there is no implicit singleton.
type Store struct {
	mu        sync.RWMutex
	events    []models.CalendarEvent
	listeners map[int]Listener
	nextSub   int

	now func() time.Time
}

// NewStore creates an empty event registry.
func NewStore() *Store {
	return &Store{
		listeners: make(map[int]Listener),
		now:       time.Now,
	}
}

// SyncLoads replaces all load events with the normalized form of the given
// records. An empty list legitimately clears the load domain.
func (s *Store) SyncLoads(loads []models.Load) (SyncResult, error) {
	events, err := NormalizeLoads(loads)
	if err != nil {
		return SyncResult{}, err
	}
	return s.replaceDomain("load", models.PrefixLoad, events), nil
}

// SyncMaintenance replaces all maintenance events.
func (s *Store) SyncMaintenance(records []models.MaintenanceRecord) (SyncResult, error) {
	events, err := NormalizeMaintenanceRecords(records)
	if err != nil {
		return SyncResult{}, err
	}
	return s.replaceDomain("maintenance", models.PrefixMaintenance, events), nil
}

// SyncCompliance replaces all compliance events.
func (s *Store) SyncCompliance(records []models.ComplianceRecord) (SyncResult, error) {
	events, err := NormalizeComplianceRecords(records)
	if err != nil {
		return SyncResult{}, err
	}
	return s.replaceDomain("compliance", models.PrefixCompliance, events), nil
}

// SyncDrivers replaces all driver action events.
func (s *Store) SyncDrivers(records []models.DriverRecord) (SyncResult, error) {
	events, err := NormalizeDriverRecords(records)
	if err != nil {
		return SyncResult{}, err
	}
	return s.replaceDomain("driver", models.PrefixDriver, events), nil
}

// replaceDomain drops every event carrying the domain prefix, appends the
// new events, and notifies listeners.
func (s *Store) replaceDomain(domain, prefix string, events []models.CalendarEvent) SyncResult {
	s.mu.Lock()

	kept := s.events[:0:0]
	removed := 0
	for _, e := range s.events {
		if e.HasPrefix(prefix) {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.events = append(kept, events...)

	result := SyncResult{
		Domain:        domain,
		EventsRemoved: removed,
		EventsAdded:   len(events),
		SyncedAt:      s.now().UTC(),
	}
	s.mu.Unlock()

	s.notify()
	return result
}

// AllEvents returns a defensive copy of the full registry.
func (s *Store) AllEvents() []models.CalendarEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// EventsByType returns all events of the given type.
func (s *Store) EventsByType(t models.EventType) []models.CalendarEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.CalendarEvent
	for _, e := range s.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// EventsInRange returns events whose start falls within [from, to]
// inclusive.
func (s *Store) EventsInRange(from, to time.Time) []models.CalendarEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.CalendarEvent
	for _, e := range s.events {
		if !e.Start.Before(from) && !e.Start.After(to) {
			out = append(out, e)
		}
	}
	return out
}

// UpcomingEvents returns events starting within the next 7 days.
func (s *Store) UpcomingEvents() []models.CalendarEvent {
	now := s.now()
	return s.EventsInRange(now, now.Add(upcomingWindow))
}

// OverdueEvents returns events that should have started but are still
// scheduled.
func (s *Store) OverdueEvents() []models.CalendarEvent {
	s.mu.RLock()
	defer s.mu.RUnlock()

	now := s.now()
	var out []models.CalendarEvent
	for _, e := range s.events {
		if e.IsOverdue(now) {
			out = append(out, e)
		}
	}
	return out
}

// RemoveEvent removes a single event by ID.
func (s *Store) RemoveEvent(id string) error {
	s.mu.Lock()
	found := false
	kept := s.events[:0:0]
	for _, e := range s.events {
		if e.ID == id {
			found = true
			continue
		}
		kept = append(kept, e)
	}
	s.events = kept
	s.mu.Unlock()

	if !found {
		return ErrEventNotFound
	}
	s.notify()
	return nil
}

// UpdateEventStatus updates the status of a single event in place. Status is
// the only field that may change after normalization.
func (s *Store) UpdateEventStatus(id string, status models.EventStatus) error {
	s.mu.Lock()
	found := false
	for i := range s.events {
		if s.events[i].ID == id {
			s.events[i].Status = status
			// Load colors are keyed by status; the other domains stay on
			// their priority color.
			if s.events[i].Type == models.EventTypeLoad {
				s.events[i].Color = StatusColor(status)
			}
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return ErrEventNotFound
	}
	s.notify()
	return nil
}

// Clear removes every event from the registry.
func (s *Store) Clear() {
	s.mu.Lock()
	s.events = nil
	s.mu.Unlock()

	s.notify()
}

// Subscribe registers a listener for registry changes and returns an
// unsubscribe func. The listener is invoked synchronously with a full
// snapshot after every mutating call.
func (s *Store) Subscribe(fn Listener) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// notify delivers the current snapshot to every listener. Listeners are
// called outside the registry lock so they can query the store.
func (s *Store) notify() {
	s.mu.RLock()
	listeners := make([]Listener, 0, len(s.listeners))
	for _, fn := range s.listeners {
		listeners = append(listeners, fn)
	}
	s.mu.RUnlock()

	for _, fn := range listeners {
		s.mu.RLock()
		snapshot := s.snapshotLocked()
		s.mu.RUnlock()
		fn(snapshot)
	}
}

// snapshotLocked copies the event slice. Callers must hold at least a read
// lock.
func (s *Store) snapshotLocked() []models.CalendarEvent {
	out := make([]models.CalendarEvent, len(s.events))
	copy(out, s.events)
	return out
}
