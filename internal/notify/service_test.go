package notify

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleet-dispatch/backend/internal/models"
)

func TestService_AddStampsAndPrepends(t *testing.T) {
	service := NewService(nil, 0)

	first := service.Add(Payload{Title: "first", Type: models.NotificationInfo, Priority: models.PriorityLow})
	second := service.Add(Payload{Title: "second", Type: models.NotificationInfo, Priority: models.PriorityLow})

	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, second.ID)
	assert.False(t, first.Read)

	all := service.All()
	require.Len(t, all, 2)
	assert.Equal(t, "second", all[0].Title, "most recent first")
	assert.Equal(t, "first", all[1].Title)
}

func TestService_CapEvictsOldest(t *testing.T) {
	service := NewService(nil, 0)

	for i := 0; i < 101; i++ {
		service.Add(Payload{
			Title:    fmt.Sprintf("n-%d", i),
			Type:     models.NotificationInfo,
			Priority: models.PriorityLow,
		})
	}

	all := service.All()
	require.Len(t, all, 100)
	assert.Equal(t, "n-100", all[0].Title)
	assert.Equal(t, "n-1", all[99].Title, "oldest entry evicted")
}

func TestService_AddCalendarCarriesLinkage(t *testing.T) {
	service := NewService(nil, 0)
	eventDate := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)

	n := service.AddCalendar("load-LD-1", models.EventTypeLoad, eventDate, models.ReminderSoon, Payload{
		Title:    "Event Starting Soon",
		Message:  "Load LD-1 is starting in less than 1 hour",
		Type:     models.NotificationWarning,
		Priority: models.PriorityHigh,
	})

	assert.Equal(t, "load-LD-1", n.EventID)
	assert.Equal(t, models.EventTypeLoad, n.EventType)
	require.NotNil(t, n.EventDate)
	assert.Equal(t, eventDate, *n.EventDate)
	assert.Equal(t, models.ReminderSoon, n.ReminderType)
}

func TestService_MarkReadAndUnreadCount(t *testing.T) {
	service := NewService(nil, 0)

	a := service.Add(Payload{Title: "a", Type: models.NotificationInfo, Priority: models.PriorityLow})
	service.Add(Payload{Title: "b", Type: models.NotificationInfo, Priority: models.PriorityLow})

	assert.Equal(t, 2, service.UnreadCount())
	require.NoError(t, service.MarkRead(a.ID))
	assert.Equal(t, 1, service.UnreadCount())

	service.MarkAllRead()
	assert.Equal(t, 0, service.UnreadCount())

	assert.ErrorIs(t, service.MarkRead("missing"), ErrNotificationNotFound)
}

func TestService_RemoveAndClear(t *testing.T) {
	service := NewService(nil, 0)

	a := service.Add(Payload{Title: "a", Type: models.NotificationInfo, Priority: models.PriorityLow})
	service.Add(Payload{Title: "b", Type: models.NotificationInfo, Priority: models.PriorityLow})

	require.NoError(t, service.Remove(a.ID))
	require.Len(t, service.All(), 1)
	assert.ErrorIs(t, service.Remove(a.ID), ErrNotificationNotFound)

	service.Clear()
	assert.Empty(t, service.All())
}

func TestService_SubscribeAndUnsubscribe(t *testing.T) {
	service := NewService(nil, 0)

	var snapshots [][]models.Notification
	unsubscribe := service.Subscribe(func(notifications []models.Notification) {
		snapshots = append(snapshots, notifications)
	})

	service.Add(Payload{Title: "a", Type: models.NotificationInfo, Priority: models.PriorityLow})
	require.Len(t, snapshots, 1)
	assert.Len(t, snapshots[0], 1)

	unsubscribe()
	service.Add(Payload{Title: "b", Type: models.NotificationInfo, Priority: models.PriorityLow})
	assert.Len(t, snapshots, 1, "no delivery after unsubscribe")
}

// failingSender always errors, standing in for a denied platform permission.
type failingSender struct{ calls int }

func (s *failingSender) Send(models.Notification) error {
	s.calls++
	return errors.New("permission denied")
}

func TestService_SenderFailureIsNonFatal(t *testing.T) {
	sender := &failingSender{}
	service := NewService(sender, 0)

	service.Add(Payload{Title: "a", Type: models.NotificationInfo, Priority: models.PriorityLow})

	assert.Equal(t, 1, sender.calls)
	assert.Len(t, service.All(), 1, "in-app log entry unaffected by delivery failure")
}

func TestBroadcaster_ConflictAnnouncedOnce(t *testing.T) {
	service := NewService(nil, 0)
	broadcaster := NewBroadcaster(service)

	conflict := models.Conflict{
		ID:         "conflict-load-1-load-2",
		Message:    "Driver drv-7 is double-booked",
		ResourceID: "drv-7",
	}

	broadcaster.ConflictsDetected([]models.Conflict{conflict})
	broadcaster.ConflictsDetected([]models.Conflict{conflict})

	assert.Len(t, service.All(), 1, "same conflict id announced once")
}

func TestBroadcaster_LoadBooked(t *testing.T) {
	service := NewService(nil, 0)
	broadcaster := NewBroadcaster(service)

	broadcaster.LoadBooked(models.Load{
		ID:               "LD-1",
		PickupLocation:   "Chicago, IL",
		DeliveryLocation: "Dallas, TX",
	})

	all := service.All()
	require.Len(t, all, 1)
	assert.Equal(t, "Load Booked", all[0].Title)
	assert.Equal(t, models.NotificationSuccess, all[0].Type)
}
