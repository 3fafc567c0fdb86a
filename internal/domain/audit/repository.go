package audit

import (
	"context"
	"encoding/json"
)

// Recorder is the port mutation paths use to append a revision. Entity
// repositories call it inside the same transaction as the write so a
// mutation and its revision commit or roll back together.
type Recorder interface {
	Record(ctx context.Context, entityType EntityType, entityID uint, kind ChangeKind, snapshot any) error
}

// RevisionRepository is the query side of the revision store.
type RevisionRepository interface {
	Append(ctx context.Context, revision *Revision) error

	// ListByEntity returns every revision for one entity ordered by
	// revision number ascending (oldest first).
	ListByEntity(ctx context.Context, entityType EntityType, entityID uint) ([]*Revision, error)

	// GetByNumber fetches the single revision of an entity; a nil result
	// means no such revision exists for that entity/id pair.
	GetByNumber(ctx context.Context, entityType EntityType, entityID uint, number uint64) (*Revision, error)

	// RecentByType returns the most recent revisions of one entity type,
	// newest first, truncated to limit.
	RecentByType(ctx context.Context, entityType EntityType, limit int) ([]*Revision, error)
}

// UserSnapshot is the audited shape of a user revision.
type UserSnapshot struct {
	ID      uint   `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Country string `json:"country"`
}

// SubscriptionSnapshot is the audited shape of a subscription revision.
type SubscriptionSnapshot struct {
	ID              uint    `json:"id"`
	UserID          uint    `json:"user_id"`
	PlanID          uint    `json:"plan_id"`
	Status          string  `json:"status"`
	StartDate       string  `json:"start_date"`
	EndDate         *string `json:"end_date,omitempty"`
	AutoRenew       bool    `json:"auto_renew"`
	NextRenewalDate *string `json:"next_renewal_date,omitempty"`
}

// MarshalSnapshot encodes a snapshot payload for storage.
func MarshalSnapshot(snapshot any) (json.RawMessage, error) {
	return json.Marshal(snapshot)
}
