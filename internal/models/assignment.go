package models

import "time"

// AssignmentStatus tracks an assignment through the rate confirmation
// acceptance workflow.
type AssignmentStatus string

// Assignment status constants
const (
	AssignmentUnsigned        AssignmentStatus = "unsigned"
	AssignmentDispatchSigned  AssignmentStatus = "dispatch_signed"
	AssignmentDriverAccepted  AssignmentStatus = "driver_accepted"
	AssignmentExpiredReturned AssignmentStatus = "expired_returned"
)

// Assignment pairs a load with a driver and tracks the time-boxed rate
// confirmation acceptance. Once dispatch signs the rate con, the driver has
// until DriverAcceptanceDeadline to accept before the load reverts to the
// board.
type Assignment struct {
	ID       string           `json:"id"`
	LoadID   string           `json:"load_id"`
	DriverID string           `json:"driver_id"`
	Status   AssignmentStatus `json:"status"`

	RateConSigned            bool       `json:"rate_con_signed"`
	DispatchSignedAt         *time.Time `json:"dispatch_signed_at,omitempty"`
	DriverAcceptanceDeadline *time.Time `json:"driver_acceptance_deadline,omitempty"`
	DriverAccepted           bool       `json:"driver_accepted"`
	DriverAcceptedAt         *time.Time `json:"driver_accepted_at,omitempty"`
	ReturnedAt               *time.Time `json:"returned_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AcceptanceExpired reports whether the acceptance window has lapsed without
// the driver accepting. The status guard makes the expiry transition fire at
// most once.
func (a *Assignment) AcceptanceExpired(now time.Time) bool {
	if a.Status != AssignmentDispatchSigned || a.DriverAccepted {
		return false
	}
	return a.DriverAcceptanceDeadline != nil && !now.Before(*a.DriverAcceptanceDeadline)
}

// Assignable reports whether the assignment can be (re-)signed by dispatch.
// Expired assignments returned to the board are eligible again.
func (a *Assignment) Assignable() bool {
	return a.Status == AssignmentUnsigned || a.Status == AssignmentExpiredReturned
}
