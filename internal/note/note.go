package note

import (
	"time"

	"github.com/google/uuid"
)

// Note is a shared rich-text note. Content is the HTML produced by the
// browser editor; it is stored verbatim.
type Note struct {
	ID        uuid.UUID
	Title     string
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
}
