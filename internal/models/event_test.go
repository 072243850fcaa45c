package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCalendarEvent_Overlaps(t *testing.T) {
	at := func(hour int) time.Time {
		return time.Date(2026, 3, 10, hour, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name string
		a, b [2]int // start, end hours
		want bool
	}{
		{"partial overlap", [2]int{9, 12}, [2]int{11, 14}, true},
		{"containment", [2]int{9, 17}, [2]int{10, 11}, true},
		{"identical", [2]int{9, 12}, [2]int{9, 12}, true},
		{"touching", [2]int{9, 10}, [2]int{10, 11}, false},
		{"disjoint", [2]int{9, 10}, [2]int{12, 13}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := CalendarEvent{Start: at(tt.a[0]), End: at(tt.a[1])}
			b := CalendarEvent{Start: at(tt.b[0]), End: at(tt.b[1])}
			assert.Equal(t, tt.want, a.Overlaps(&b))
			assert.Equal(t, tt.want, b.Overlaps(&a), "overlap is symmetric")
		})
	}
}

func TestAssignment_AcceptanceExpired(t *testing.T) {
	deadline := time.Date(2026, 3, 10, 12, 30, 0, 0, time.UTC)

	signed := Assignment{
		Status:                   AssignmentDispatchSigned,
		DriverAcceptanceDeadline: &deadline,
	}

	assert.False(t, signed.AcceptanceExpired(deadline.Add(-time.Second)))
	assert.True(t, signed.AcceptanceExpired(deadline))
	assert.True(t, signed.AcceptanceExpired(deadline.Add(time.Minute)))

	accepted := signed
	accepted.DriverAccepted = true
	assert.False(t, accepted.AcceptanceExpired(deadline.Add(time.Minute)))

	returned := signed
	returned.Status = AssignmentExpiredReturned
	assert.False(t, returned.AcceptanceExpired(deadline.Add(time.Minute)), "status guard makes expiry one-shot")
}
