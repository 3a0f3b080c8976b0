package shared

import (
	"github.com/google/uuid"
)

// NewID generates a new entity identifier.
// IDs are plain strings so that data imported from older backups keeps its
// original identifiers untouched.
func NewID() string {
	return uuid.NewString()
}
