// Package dispatch implements the time-boxed rate confirmation acceptance
// workflow: once dispatch signs, the assigned driver has a fixed window to
// accept before the load reverts to the board.
package dispatch

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fleet-dispatch/backend/internal/models"
)

// DefaultAcceptanceWindow is how long a driver has to accept after dispatch
// signs the rate confirmation.
const DefaultAcceptanceWindow = 30 * time.Minute

// Board errors
var (
	ErrAssignmentNotFound = errors.New("assignment not found")
	ErrAlreadySigned      = errors.New("rate confirmation already signed")
	ErrNotSigned          = errors.New("rate confirmation not signed")
	ErrDeadlinePassed     = errors.New("driver acceptance deadline has passed")
)

// Board is the in-memory registry of load assignments. Construct one Board
// per process and pass it to consumers.
type Board struct {
	mu          sync.RWMutex
	assignments map[string]*models.Assignment

	window time.Duration
	now    func() time.Time
}

// NewBoard creates an assignment board. window <= 0 uses the default
// 30-minute acceptance window.
func NewBoard(window time.Duration) *Board {
	if window <= 0 {
		window = DefaultAcceptanceWindow
	}
	return &Board{
		assignments: make(map[string]*models.Assignment),
		window:      window,
		now:         time.Now,
	}
}

// Assign creates an unsigned assignment pairing a load with a driver.
func (b *Board) Assign(loadID, driverID string) models.Assignment {
	now := b.now().UTC()
	a := &models.Assignment{
		ID:        uuid.NewString(),
		LoadID:    loadID,
		DriverID:  driverID,
		Status:    models.AssignmentUnsigned,
		CreatedAt: now,
		UpdatedAt: now,
	}

	b.mu.Lock()
	b.assignments[a.ID] = a
	b.mu.Unlock()

	return *a
}

// Get returns a copy of one assignment.
func (b *Board) Get(id string) (models.Assignment, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	a, ok := b.assignments[id]
	if !ok {
		return models.Assignment{}, ErrAssignmentNotFound
	}
	return *a, nil
}

// All returns a copy of every assignment on the board.
func (b *Board) All() []models.Assignment {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]models.Assignment, 0, len(b.assignments))
	for _, a := range b.assignments {
		out = append(out, *a)
	}
	return out
}

// SignRateCon records the dispatch signature and starts the acceptance
// countdown. Assignments returned to the board after an expiry can be signed
// again.
func (b *Board) SignRateCon(id string) (models.Assignment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.assignments[id]
	if !ok {
		return models.Assignment{}, ErrAssignmentNotFound
	}
	if !a.Assignable() {
		return *a, ErrAlreadySigned
	}

	now := b.now().UTC()
	deadline := now.Add(b.window)

	a.Status = models.AssignmentDispatchSigned
	a.RateConSigned = true
	a.DispatchSignedAt = &now
	a.DriverAcceptanceDeadline = &deadline
	a.DriverAccepted = false
	a.DriverAcceptedAt = nil
	a.ReturnedAt = nil
	a.UpdatedAt = now

	return *a, nil
}

// DriverAccept records the driver's acceptance. Accepting after the deadline
// fails without mutating the assignment; the expiry tick owns that
// transition. Once accepted, the deadline is inert.
func (b *Board) DriverAccept(id string) (models.Assignment, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	a, ok := b.assignments[id]
	if !ok {
		return models.Assignment{}, ErrAssignmentNotFound
	}
	if a.Status != models.AssignmentDispatchSigned {
		return *a, ErrNotSigned
	}

	now := b.now().UTC()
	if a.DriverAcceptanceDeadline != nil && !now.Before(*a.DriverAcceptanceDeadline) {
		return *a, ErrDeadlinePassed
	}

	a.Status = models.AssignmentDriverAccepted
	a.DriverAccepted = true
	a.DriverAcceptedAt = &now
	a.UpdatedAt = now

	return *a, nil
}

// ExpireOverdue reverts every signed-but-unaccepted assignment whose
// deadline has passed, and returns the reverted assignments. The status
// guard in AcceptanceExpired makes the transition fire exactly once per
// expiry; later calls leave the record untouched.
func (b *Board) ExpireOverdue() []models.Assignment {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now().UTC()
	var expired []models.Assignment
	for _, a := range b.assignments {
		if !a.AcceptanceExpired(now) {
			continue
		}

		a.Status = models.AssignmentExpiredReturned
		a.RateConSigned = false
		a.DriverAccepted = false
		a.DispatchSignedAt = nil
		a.DriverAcceptanceDeadline = nil
		a.ReturnedAt = &now
		a.UpdatedAt = now

		expired = append(expired, *a)
	}
	return expired
}

// Remove deletes an assignment from the board.
func (b *Board) Remove(id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.assignments[id]; !ok {
		return ErrAssignmentNotFound
	}
	delete(b.assignments, id)
	return nil
}
