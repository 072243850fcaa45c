package models

import "time"

// LoadStatus is the dispatch status of a freight load as reported by the
// load board.
type LoadStatus string

// Load status constants
const (
	LoadStatusBooked    LoadStatus = "booked"
	LoadStatusInTransit LoadStatus = "in-transit"
	LoadStatusDelivered LoadStatus = "delivered"
	LoadStatusCancelled LoadStatus = "cancelled"
)

// Load represents a freight load as received from the load board.
type Load struct {
	ID                  string     `json:"id"`
	PickupDate          time.Time  `json:"pickup_date"`
	DeliveryDate        time.Time  `json:"delivery_date"`
	PickupLocation      string     `json:"pickup_location"`
	DeliveryLocation    string     `json:"delivery_location"`
	Driver              string     `json:"driver,omitempty"`
	Status              LoadStatus `json:"status"`
	Rate                float64    `json:"rate"`
	Equipment           string     `json:"equipment"`
	SpecialInstructions string     `json:"special_instructions,omitempty"`
}

// MaintenanceRecord represents a scheduled vehicle service.
type MaintenanceRecord struct {
	ID              string    `json:"id"`
	VehicleID       string    `json:"vehicle_id"`
	VehicleNumber   string    `json:"vehicle_number"`
	ServiceType     string    `json:"service_type"`
	ScheduledDate   time.Time `json:"scheduled_date"`
	EstimatedDurMin int       `json:"estimated_duration_min"`
	ServiceProvider string    `json:"service_provider"`
	Cost            float64   `json:"cost"`
	Priority        Priority  `json:"priority"`
	Description     string    `json:"description"`
	Status          string    `json:"status"`
}

// ComplianceRecord represents a compliance item (permit renewal, audit,
// filing) with a due date.
type ComplianceRecord struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Entity      string    `json:"entity"`
	DueDate     time.Time `json:"due_date"`
	Priority    Priority  `json:"priority"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
}

// DriverRecord represents a driver action item (license renewal, medical
// card, training) with a due date.
type DriverRecord struct {
	ID          string    `json:"id"`
	DriverID    string    `json:"driver_id"`
	DriverName  string    `json:"driver_name"`
	Type        string    `json:"type"`
	DueDate     time.Time `json:"due_date"`
	Priority    Priority  `json:"priority"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
}
