package confession

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of a confession. Confessions are never
// physically removed by the admin path; deletion flips the status.
type Status string

const (
	StatusActive  Status = "active"
	StatusDeleted Status = "deleted"
)

// MentionType classifies who a confession is aimed at.
type MentionType string

const (
	MentionPeople MentionType = "people"
	MentionKelas  MentionType = "kelas"
	MentionOther  MentionType = "other"
)

// Mention is an optional shout-out attached to a confession.
type Mention struct {
	Type   MentionType
	Target string
}

// Confession is an anonymous message submitted through the public form.
type Confession struct {
	ID        uuid.UUID
	Message   string
	Name      string // defaults to "Anonymous"
	Kelas     string
	Mention   *Mention
	CreatedAt time.Time
	Status    Status
}
