package model

import (
	"time"

	"github.com/google/uuid"
)

// SnapshotRecord is one archived snapshot document in the database.
// Payload is the encoded snapshot as written by the snapshot codec.
type SnapshotRecord struct {
	RID         uuid.UUID `json:"rid"`
	Name        string    `json:"name"`
	EntityCount int       `json:"entity_count"`
	Payload     []byte    `json:"payload"`
	CreatedAt   time.Time `json:"created_at"`
}
