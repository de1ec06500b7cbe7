package domain

import (
	"time"

	"github.com/google/uuid"
)

// AccountRecord is the backend account service's view of the user, keyed by
// the provider subject. Fetched per login attempt; never persisted by the
// client.
type AccountRecord struct {
	ID          uuid.UUID `json:"id"`
	SubjectID   string    `json:"subject_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Clone returns a copy so snapshots never alias store-owned state.
func (a *AccountRecord) Clone() *AccountRecord {
	if a == nil {
		return nil
	}
	c := *a
	return &c
}
