package notify

import (
	"fmt"
	"sync"

	"github.com/fleet-dispatch/backend/internal/models"
)

// Broadcaster turns domain happenings into notification log entries. It
// wraps the service with one method per event kind so callers never build
// payloads by hand.
type Broadcaster struct {
	service *Service

	// Conflict notifications are emitted once per conflict ID so a store
	// snapshot that still contains a known conflict does not re-announce it.
	mu   sync.Mutex
	seen map[string]bool
}

// NewBroadcaster creates a broadcaster over the given service.
func NewBroadcaster(service *Service) *Broadcaster {
	return &Broadcaster{
		service: service,
		seen:    make(map[string]bool),
	}
}

// LoadBooked announces a newly booked load.
func (b *Broadcaster) LoadBooked(l models.Load) {
	b.service.Add(Payload{
		Title:    "Load Booked",
		Message:  fmt.Sprintf("Load %s booked: %s to %s", l.ID, l.PickupLocation, l.DeliveryLocation),
		Type:     models.NotificationSuccess,
		Priority: models.PriorityMedium,
	})
}

// LoadAssigned announces a load assigned to a driver.
func (b *Broadcaster) LoadAssigned(loadID, driverID string) {
	b.service.Add(Payload{
		Title:    "Load Assigned",
		Message:  fmt.Sprintf("Load %s assigned to driver %s", loadID, driverID),
		Type:     models.NotificationInfo,
		Priority: models.PriorityMedium,
	})
}

// ConflictsDetected announces each conflict not seen before. Conflict IDs
// are deterministic over the involved events, so a re-detection of the same
// overlap stays silent.
func (b *Broadcaster) ConflictsDetected(conflicts []models.Conflict) {
	for _, c := range conflicts {
		b.mu.Lock()
		known := b.seen[c.ID]
		if !known {
			b.seen[c.ID] = true
		}
		b.mu.Unlock()

		if known {
			continue
		}
		b.service.Add(Payload{
			Title:    "Scheduling Conflict",
			Message:  c.Message,
			Type:     models.NotificationWarning,
			Priority: models.PriorityHigh,
		})
	}
}

// AcceptanceExpired announces an assignment whose acceptance window lapsed
// and which reverted to the load board.
func (b *Broadcaster) AcceptanceExpired(a models.Assignment) {
	b.service.Add(Payload{
		Title:    "Rate Con Expired",
		Message:  fmt.Sprintf("Driver %s did not accept load %s in time; load returned to the board", a.DriverID, a.LoadID),
		Type:     models.NotificationError,
		Priority: models.PriorityUrgent,
	})
}
