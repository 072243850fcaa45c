package notify

import (
	"errors"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fleet-dispatch/backend/internal/models"
)

// DefaultMaxEntries is the notification log cap. Once exceeded, the oldest
// entries are evicted.
const DefaultMaxEntries = 100

// ErrNotificationNotFound is returned when a notification ID is not in the
// log.
var ErrNotificationNotFound = errors.New("notification not found")

// Payload is the caller-supplied part of a notification.
type Payload struct {
	Title    string
	Message  string
	Type     models.NotificationType
	Priority models.Priority
}

// Listener receives the full notification snapshot after every change.
type Listener func(notifications []models.Notification)

// Service is the process-wide notification log: append-only, most recent
// first, capped. Construct one Service per process and pass it to consumers.
type Service struct {
	mu            sync.RWMutex
	notifications []models.Notification
	listeners     map[int]Listener
	nextSub       int
	maxEntries    int

	sender Sender
	now    func() time.Time
}

// NewService creates a notification service. A nil sender skips the platform
// side effect; maxEntries <= 0 uses the default cap.
func NewService(sender Sender, maxEntries int) *Service {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Service{
		listeners:  make(map[int]Listener),
		maxEntries: maxEntries,
		sender:     sender,
		now:        time.Now,
	}
}

// Add appends a new notification and returns the stored record.
func (s *Service) Add(p Payload) models.Notification {
	return s.push(models.Notification{
		Title:    p.Title,
		Message:  p.Message,
		Type:     p.Type,
		Priority: p.Priority,
	})
}

// AddCalendar appends a calendar-linked notification carrying the event
// linkage fields.
func (s *Service) AddCalendar(eventID string, eventType models.EventType, eventDate time.Time, reminderType models.ReminderType, p Payload) models.Notification {
	date := eventDate
	return s.push(models.Notification{
		Title:        p.Title,
		Message:      p.Message,
		Type:         p.Type,
		Priority:     p.Priority,
		EventID:      eventID,
		EventType:    eventType,
		EventDate:    &date,
		ReminderType: reminderType,
	})
}

// push stamps, stores, and delivers a notification.
func (s *Service) push(n models.Notification) models.Notification {
	n.ID = uuid.NewString()
	n.Timestamp = s.now().UTC()
	n.Read = false

	s.mu.Lock()
	s.notifications = append([]models.Notification{n}, s.notifications...)
	if len(s.notifications) > s.maxEntries {
		s.notifications = s.notifications[:s.maxEntries]
	}
	s.mu.Unlock()

	if s.sender != nil {
		if err := s.sender.Send(n); err != nil {
			log.Printf("Failed to deliver platform notification %s: %v", n.ID, err)
		}
	}

	s.notify()
	return n
}

// All returns a defensive copy of the log, most recent first.
func (s *Service) All() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// UnreadCount returns the number of unread notifications.
func (s *Service) UnreadCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notifications {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkRead flags a single notification as read.
func (s *Service) MarkRead(id string) error {
	s.mu.Lock()
	found := false
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].Read = true
			found = true
			break
		}
	}
	s.mu.Unlock()

	if !found {
		return ErrNotificationNotFound
	}
	s.notify()
	return nil
}

// MarkAllRead flags every notification as read.
func (s *Service) MarkAllRead() {
	s.mu.Lock()
	for i := range s.notifications {
		s.notifications[i].Read = true
	}
	s.mu.Unlock()

	s.notify()
}

// Remove deletes a single notification from the log.
func (s *Service) Remove(id string) error {
	s.mu.Lock()
	found := false
	kept := s.notifications[:0:0]
	for _, n := range s.notifications {
		if n.ID == id {
			found = true
			continue
		}
		kept = append(kept, n)
	}
	s.notifications = kept
	s.mu.Unlock()

	if !found {
		return ErrNotificationNotFound
	}
	s.notify()
	return nil
}

// Clear empties the log.
func (s *Service) Clear() {
	s.mu.Lock()
	s.notifications = nil
	s.mu.Unlock()

	s.notify()
}

// Subscribe registers a listener for log changes and returns an unsubscribe
// func.
func (s *Service) Subscribe(fn Listener) (unsubscribe func()) {
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

// notify delivers the current snapshot to every listener outside the lock.
func (s *Service) notify() {
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

func (s *Service) snapshotLocked() []models.Notification {
	out := make([]models.Notification, len(s.notifications))
	copy(out, s.notifications)
	return out
}
