package models

// ResourceType identifies which kind of shared resource two events collide
// on.
type ResourceType string

// Resource type constants
const (
	ResourceDriver  ResourceType = "driver"
	ResourceVehicle ResourceType = "vehicle"
)

// ConflictType classifies a detected conflict.
type ConflictType string

// ConflictSeverity grades a detected conflict.
type ConflictSeverity string

// Conflict classification constants. Resource double-booking is the only
// conflict kind detected today, and it is always severe.
const (
	ConflictHardClash ConflictType = "hard_clash"

	SeverityHigh ConflictSeverity = "high"
)

// Conflict is a detected pairwise temporal overlap between two events that
// share the same resource. Conflicts are derived from an event snapshot and
// are never stored.
type Conflict struct {
	ID           string           `json:"id"`
	Type         ConflictType     `json:"type"`
	Severity     ConflictSeverity `json:"severity"`
	ResourceType ResourceType     `json:"resource_type"`
	ResourceID   string           `json:"resource_id"`
	Message      string           `json:"message"`
	Events       []CalendarEvent  `json:"events"`
}
