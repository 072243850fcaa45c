package notify

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fleet-dispatch/backend/internal/calendar"
	"github.com/fleet-dispatch/backend/internal/models"
)

// DefaultScanInterval is how often the monitor scans the event registry.
const DefaultScanInterval = time.Minute

// Monitor periodically scans the event registry and emits reminder
// notifications for events approaching or past their start. Each
// (event, reminder type) combination is emitted at most once.
type Monitor struct {
	cron    *cron.Cron
	store   *calendar.Store
	service *Service

	interval time.Duration
	now      func() time.Time

	mu   sync.Mutex
	seen map[string]bool // eventID + "|" + reminderType
}

// NewMonitor creates a reminder monitor over the given store and service.
// interval <= 0 uses the default one-minute scan.
func NewMonitor(store *calendar.Store, service *Service, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultScanInterval
	}
	return &Monitor{
		cron:     cron.New(cron.WithSeconds()),
		store:    store,
		service:  service,
		interval: interval,
		now:      time.Now,
		seen:     make(map[string]bool),
	}
}

// Start begins the periodic scan.
func (m *Monitor) Start() {
	log.Println("Starting event reminder monitor...")

	m.cron.AddFunc("@every "+m.interval.String(), func() {
		m.scan()
	})

	// Initial scan so a fresh process does not wait a full interval.
	go m.scan()

	m.cron.Start()
	log.Println("Event reminder monitor started")
}

// Stop cancels the periodic scan and forgets emission state.
func (m *Monitor) Stop() {
	log.Println("Stopping event reminder monitor...")
	ctx := m.cron.Stop()
	<-ctx.Done()

	m.mu.Lock()
	m.seen = make(map[string]bool)
	m.mu.Unlock()

	log.Println("Event reminder monitor stopped")
}

// scan evaluates every event in the registry against the reminder windows.
// The scan works on one consistent snapshot.
func (m *Monitor) scan() {
	events := m.store.AllEvents()
	now := m.now()

	live := make(map[string]bool, len(events))
	for _, e := range events {
		live[e.ID] = true

		if e.IsFinished() {
			continue
		}

		untilStart := e.Start.Sub(now)
		switch {
		case untilStart > 0 && untilStart <= time.Hour:
			m.emit(e, models.ReminderSoon, Payload{
				Title:    "Event Starting Soon",
				Message:  fmt.Sprintf("%s is starting in less than 1 hour", e.Title),
				Type:     models.NotificationWarning,
				Priority: models.PriorityHigh,
			})
		case untilStart > 23*time.Hour && untilStart <= 24*time.Hour:
			m.emit(e, models.ReminderUpcoming, Payload{
				Title:    "Upcoming Event",
				Message:  fmt.Sprintf("%s is scheduled for tomorrow", e.Title),
				Type:     models.NotificationInfo,
				Priority: models.PriorityMedium,
			})
		case untilStart < 0 && e.Status == models.EventStatusScheduled:
			m.emit(e, models.ReminderOverdue, Payload{
				Title:    "Overdue Event",
				Message:  fmt.Sprintf("%s should have started and is still scheduled", e.Title),
				Type:     models.NotificationError,
				Priority: models.PriorityUrgent,
			})
		}
	}

	// Drop emission state for events no longer in the registry so the map
	// stays bounded and a re-synced event can remind again.
	m.mu.Lock()
	for key := range m.seen {
		if !live[reminderKeyEventID(key)] {
			delete(m.seen, key)
		}
	}
	m.mu.Unlock()
}

// emit adds the reminder unless this (event, reminder type) combination was
// already announced.
func (m *Monitor) emit(e models.CalendarEvent, rt models.ReminderType, p Payload) {
	key := e.ID + "|" + string(rt)

	m.mu.Lock()
	if m.seen[key] {
		m.mu.Unlock()
		return
	}
	m.seen[key] = true
	m.mu.Unlock()

	m.service.AddCalendar(e.ID, e.Type, e.Start, rt, p)
}

// reminderKeyEventID strips the reminder type suffix from a dedupe key.
func reminderKeyEventID(key string) string {
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '|' {
			return key[:i]
		}
	}
	return key
}
