// Package audit defines the append-only revision model used to reconstruct
// historical versions of mutated entities. The audit trail only observes
// mutations; it never drives lifecycle decisions.
package audit

import (
	"encoding/json"
	"fmt"
	"time"
)

// ChangeKind classifies what a revision recorded.
type ChangeKind string

const (
	ChangeCreate ChangeKind = "CREATE"
	ChangeUpdate ChangeKind = "UPDATE"
	ChangeDelete ChangeKind = "DELETE"
)

func (k ChangeKind) IsValid() bool {
	switch k {
	case ChangeCreate, ChangeUpdate, ChangeDelete:
		return true
	}
	return false
}

// EntityType tags which entity a snapshot belongs to. The tag is decided
// at the recording call site, never discovered from the snapshot itself.
type EntityType string

const (
	EntityUser         EntityType = "user"
	EntitySubscription EntityType = "subscription"
)

// TrackedEntityTypes lists every entity type the recent-changes feed merges.
var TrackedEntityTypes = []EntityType{EntityUser, EntitySubscription}

func (t EntityType) IsValid() bool {
	switch t {
	case EntityUser, EntitySubscription:
		return true
	}
	return false
}

// Revision is one immutable snapshot of an entity's state at a point in
// its history. Revision numbers are assigned by the storage layer in
// non-decreasing creation order and are never reused or renumbered; their
// ordering is the sole basis for point-in-time reconstruction.
type Revision struct {
	number     uint64
	timestamp  time.Time
	entityType EntityType
	entityID   uint
	kind       ChangeKind
	snapshot   json.RawMessage
}

// NewRevision builds an unnumbered revision; the store assigns the number
// on append.
func NewRevision(entityType EntityType, entityID uint, kind ChangeKind, snapshot json.RawMessage) (*Revision, error) {
	if !entityType.IsValid() {
		return nil, fmt.Errorf("invalid audit entity type: %s", entityType)
	}
	if entityID == 0 {
		return nil, fmt.Errorf("entity ID is required")
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid change kind: %s", kind)
	}
	return &Revision{
		timestamp:  time.Now().UTC(),
		entityType: entityType,
		entityID:   entityID,
		kind:       kind,
		snapshot:   snapshot,
	}, nil
}

// ReconstructRevision rebuilds a revision from the store.
func ReconstructRevision(number uint64, timestamp time.Time, entityType EntityType, entityID uint, kind ChangeKind, snapshot json.RawMessage) (*Revision, error) {
	if number == 0 {
		return nil, fmt.Errorf("revision number cannot be zero")
	}
	if !entityType.IsValid() {
		return nil, fmt.Errorf("invalid audit entity type: %s", entityType)
	}
	if !kind.IsValid() {
		return nil, fmt.Errorf("invalid change kind: %s", kind)
	}
	return &Revision{
		number:     number,
		timestamp:  timestamp,
		entityType: entityType,
		entityID:   entityID,
		kind:       kind,
		snapshot:   snapshot,
	}, nil
}

func (r *Revision) Number() uint64            { return r.number }
func (r *Revision) Timestamp() time.Time      { return r.timestamp }
func (r *Revision) EntityType() EntityType    { return r.entityType }
func (r *Revision) EntityID() uint            { return r.entityID }
func (r *Revision) Kind() ChangeKind          { return r.kind }
func (r *Revision) Snapshot() json.RawMessage { return r.snapshot }

// SetNumber records the store-assigned revision number after append.
func (r *Revision) SetNumber(n uint64) error {
	if r.number != 0 {
		return fmt.Errorf("revision number already set")
	}
	if n == 0 {
		return fmt.Errorf("revision number cannot be zero")
	}
	r.number = n
	return nil
}

// DecodeSnapshot unmarshals the snapshot into target.
func (r *Revision) DecodeSnapshot(target any) error {
	return json.Unmarshal(r.snapshot, target)
}
