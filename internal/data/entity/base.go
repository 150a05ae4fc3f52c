package entity

import (
	"time"

	"github.com/google/uuid"
)

// Base is embedded by rows that are hard deleted and carry both timestamps.
type Base struct {
	ID        uuid.UUID `db:"id"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type Status string

const (
	StatusDraft      Status = "draft"
	StatusPublished  Status = "published"
	StatusProcessing Status = "processing"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusProcessing:
		return true
	}
	return false
}
