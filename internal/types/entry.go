package types

import (
	"time"

	"github.com/google/uuid"
)

// Entry is a persisted history or favorite record: the recipe together with
// the request that produced it. CreatedAt is the client-side ISO-8601 stamp;
// Timestamp is assigned by the store on write.
type Entry struct {
	ID        uuid.UUID            `json:"id"`
	Recipe    Recipe               `json:"recipe"`
	Filters   CustomizationRequest `json:"filters"`
	CreatedAt string               `json:"createdAt,omitempty"`
	Timestamp time.Time            `json:"timestamp,omitempty"`
}

// DisplayDate derives the date shown to the user. The client stamp wins over
// the server timestamp, and "now" is the last resort; the same chain is
// applied on every read so sort order stays deterministic.
func (e Entry) DisplayDate() time.Time {
	if e.CreatedAt != "" {
		if t, err := time.Parse(time.RFC3339, e.CreatedAt); err == nil {
			return t
		}
	}
	if !e.Timestamp.IsZero() {
		return e.Timestamp
	}
	return time.Now()
}

// ConversationTurn is one message in a recipe chat transcript.
type ConversationTurn struct {
	Role string `json:"role"` // "user" or "assistant"
	Text string `json:"text"`
}
