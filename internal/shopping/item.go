package shopping

import (
	"time"

	"github.com/google/uuid"
)

// Priority of a wish-list item.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

// Status of a wish-list item.
type Status string

const (
	StatusPlanned   Status = "planned"
	StatusPurchased Status = "purchased"
)

// Item is an entry on the class shopping / wish list. Unlike payments, items
// support full edits and hard deletes.
type Item struct {
	ID          uuid.UUID
	Name        string
	Price       int64 // whole rupiah
	Category    string
	Priority    Priority
	Link        string
	Description string
	Quantity    int
	Status      Status
	CreatedAt   time.Time
	UpdatedAt   *time.Time
}
