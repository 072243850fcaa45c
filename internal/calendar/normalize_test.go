package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleet-dispatch/backend/internal/models"
)

func TestNormalizeLoad(t *testing.T) {
	pickup := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	delivery := time.Date(2026, 3, 12, 16, 0, 0, 0, time.UTC)

	load := models.Load{
		ID:               "LD-1001",
		PickupDate:       pickup,
		DeliveryDate:     delivery,
		PickupLocation:   "Chicago, IL",
		DeliveryLocation: "Dallas, TX",
		Driver:           "drv-7",
		Status:           models.LoadStatusBooked,
		Rate:             2450,
		Equipment:        "Dry Van",
	}

	event, err := NormalizeLoad(load)
	require.NoError(t, err)

	assert.Equal(t, "load-LD-1001", event.ID)
	assert.Equal(t, models.EventTypeLoad, event.Type)
	assert.Equal(t, pickup, event.Start)
	assert.Equal(t, delivery, event.End)
	assert.Equal(t, models.EventStatusScheduled, event.Status)
	assert.Equal(t, StatusColor(models.EventStatusScheduled), event.Color)
	assert.False(t, event.AllDay)

	meta, ok := event.Meta.(models.LoadMeta)
	require.True(t, ok, "load events carry LoadMeta")
	assert.Equal(t, "LD-1001", meta.LoadID)
	assert.Equal(t, "drv-7", meta.DriverID())
	assert.Empty(t, meta.VehicleID())
}

func TestNormalizeLoad_StatusMapping(t *testing.T) {
	tests := []struct {
		load models.LoadStatus
		want models.EventStatus
	}{
		{models.LoadStatusBooked, models.EventStatusScheduled},
		{models.LoadStatusInTransit, models.EventStatusInProgress},
		{models.LoadStatusDelivered, models.EventStatusCompleted},
		{models.LoadStatusCancelled, models.EventStatusCancelled},
	}

	for _, tt := range tests {
		t.Run(string(tt.load), func(t *testing.T) {
			event, err := NormalizeLoad(models.Load{
				ID:           "LD-1",
				PickupDate:   time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
				DeliveryDate: time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC),
				Status:       tt.load,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, event.Status)
			assert.Equal(t, StatusColor(tt.want), event.Color)
		})
	}
}

func TestNormalizeLoad_Malformed(t *testing.T) {
	valid := models.Load{
		ID:           "LD-1",
		PickupDate:   time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
		DeliveryDate: time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC),
		Status:       models.LoadStatusBooked,
	}

	tests := []struct {
		name   string
		mutate func(*models.Load)
	}{
		{"missing id", func(l *models.Load) { l.ID = "" }},
		{"zero pickup date", func(l *models.Load) { l.PickupDate = time.Time{} }},
		{"zero delivery date", func(l *models.Load) { l.DeliveryDate = time.Time{} }},
		{"delivery before pickup", func(l *models.Load) {
			l.DeliveryDate = l.PickupDate.Add(-time.Hour)
		}},
		{"unknown status", func(l *models.Load) { l.Status = "teleported" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			load := valid
			tt.mutate(&load)

			_, err := NormalizeLoad(load)
			require.Error(t, err)

			var malformed *MalformedRecordError
			assert.ErrorAs(t, err, &malformed)
		})
	}
}

func TestNormalizeMaintenance(t *testing.T) {
	scheduled := time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC)

	event, err := NormalizeMaintenance(models.MaintenanceRecord{
		ID:              "MNT-42",
		VehicleID:       "veh-12",
		VehicleNumber:   "T-112",
		ServiceType:     "Oil Change",
		ScheduledDate:   scheduled,
		EstimatedDurMin: 90,
		ServiceProvider: "Fleet Service Co",
		Cost:            350,
		Priority:        models.PriorityHigh,
	})
	require.NoError(t, err)

	assert.Equal(t, "maintenance-MNT-42", event.ID)
	assert.Equal(t, scheduled, event.Start)
	assert.Equal(t, scheduled.Add(90*time.Minute), event.End)
	assert.Equal(t, models.PriorityHigh, event.Priority)
	assert.Equal(t, PriorityColor(models.PriorityHigh), event.Color)
	assert.Equal(t, "veh-12", event.Meta.VehicleID())
	assert.Empty(t, event.Meta.DriverID())
}

func TestNormalizeMaintenance_NegativeDuration(t *testing.T) {
	_, err := NormalizeMaintenance(models.MaintenanceRecord{
		ID:              "MNT-1",
		ScheduledDate:   time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC),
		EstimatedDurMin: -30,
	})

	var malformed *MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Equal(t, "maintenance", malformed.Domain)
}

func TestNormalizeCompliance_AllDay(t *testing.T) {
	due := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	event, err := NormalizeCompliance(models.ComplianceRecord{
		ID:       "CMP-9",
		Type:     "IFTA Filing",
		Entity:   "Company",
		DueDate:  due,
		Priority: models.PriorityUrgent,
	})
	require.NoError(t, err)

	assert.Equal(t, "compliance-CMP-9", event.ID)
	assert.True(t, event.AllDay)
	assert.Equal(t, due, event.Start)
	assert.Equal(t, due, event.End, "all-day events use a single nominal day")
	assert.Equal(t, PriorityColor(models.PriorityUrgent), event.Color)
}

func TestNormalizeDriver(t *testing.T) {
	due := time.Date(2026, 5, 20, 0, 0, 0, 0, time.UTC)

	event, err := NormalizeDriver(models.DriverRecord{
		ID:         "DRA-3",
		DriverID:   "drv-7",
		DriverName: "J. Miller",
		Type:       "Medical Card Renewal",
		DueDate:    due,
	})
	require.NoError(t, err)

	assert.Equal(t, "driver-DRA-3", event.ID)
	assert.True(t, event.AllDay)
	assert.Equal(t, models.PriorityMedium, event.Priority, "missing priority defaults to medium")
	assert.Equal(t, "drv-7", event.Meta.DriverID())
}

func TestNormalizeLoads_RejectsBatchOnFirstMalformed(t *testing.T) {
	loads := []models.Load{
		{
			ID:           "LD-1",
			PickupDate:   time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
			DeliveryDate: time.Date(2026, 3, 11, 8, 0, 0, 0, time.UTC),
			Status:       models.LoadStatusBooked,
		},
		{ID: "LD-2", Status: models.LoadStatusBooked}, // no dates
	}

	events, err := NormalizeLoads(loads)
	require.Error(t, err)
	assert.Nil(t, events, "a partial batch must not be returned")
}
