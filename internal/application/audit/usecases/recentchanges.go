package usecases

import (
	"context"
	"fmt"
	"sort"
	"time"

	"abono/internal/domain/audit"
	"abono/internal/shared/logger"
)

// ChangeSummary is one line of the recent-changes feed.
type ChangeSummary struct {
	RevisionNumber   uint64
	Timestamp        time.Time
	EntityType       audit.EntityType
	EntityID         uint
	Kind             audit.ChangeKind
	ShortDescription string
}

// RecentChangesUseCase merges the latest revisions across every tracked
// entity type into one feed sorted by timestamp descending. A retrieval
// failure for one type is logged and swallowed so a single store issue
// does not blank the whole feed.
type RecentChangesUseCase struct {
	revisionRepo audit.RevisionRepository
	logger       logger.Interface
}

func NewRecentChangesUseCase(revisionRepo audit.RevisionRepository, logger logger.Interface) *RecentChangesUseCase {
	return &RecentChangesUseCase{revisionRepo: revisionRepo, logger: logger}
}

func (uc *RecentChangesUseCase) Execute(ctx context.Context, limit int) ([]ChangeSummary, error) {
	if limit <= 0 {
		return []ChangeSummary{}, nil
	}

	summaries := make([]ChangeSummary, 0, limit*len(audit.TrackedEntityTypes))
	for _, entityType := range audit.TrackedEntityTypes {
		revisions, err := uc.revisionRepo.RecentByType(ctx, entityType, limit)
		if err != nil {
			uc.logger.Warnw("skipping entity type in recent changes feed",
				"error", err,
				"entity_type", entityType,
			)
			continue
		}
		for _, rev := range revisions {
			summaries = append(summaries, ChangeSummary{
				RevisionNumber:   rev.Number(),
				Timestamp:        rev.Timestamp(),
				EntityType:       rev.EntityType(),
				EntityID:         rev.EntityID(),
				Kind:             rev.Kind(),
				ShortDescription: describe(rev),
			})
		}
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Timestamp.After(summaries[j].Timestamp)
	})
	if len(summaries) > limit {
		summaries = summaries[:limit]
	}
	return summaries, nil
}

func describe(rev *audit.Revision) string {
	switch rev.EntityType() {
	case audit.EntityUser:
		var snap audit.UserSnapshot
		if err := rev.DecodeSnapshot(&snap); err == nil && snap.Email != "" {
			return fmt.Sprintf("user %s", snap.Email)
		}
	case audit.EntitySubscription:
		var snap audit.SubscriptionSnapshot
		if err := rev.DecodeSnapshot(&snap); err == nil {
			return fmt.Sprintf("subscription %d (%s)", snap.ID, snap.Status)
		}
	}
	return fmt.Sprintf("%s %d", rev.EntityType(), rev.EntityID())
}
