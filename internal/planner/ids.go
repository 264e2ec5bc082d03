package planner

import (
	"time"

	"github.com/google/uuid"
)

// IDIssuer hands out task identifiers. Issued ids must never repeat.
type IDIssuer interface {
	IssueTaskID() string
}

// UUIDIssuer issues random (v4) UUIDs.
type UUIDIssuer struct{}

func (UUIDIssuer) IssueTaskID() string {
	return uuid.NewString()
}

// Clock returns the current time; it stamps CreatedAt on new tasks.
type Clock func() time.Time
