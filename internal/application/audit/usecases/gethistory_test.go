package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abono/internal/domain/audit"
	apperrors "abono/internal/shared/errors"
)

func storedRevision(t *testing.T, number uint64, ts time.Time, entityType audit.EntityType, entityID uint, kind audit.ChangeKind, snapshot any) *audit.Revision {
	t.Helper()
	raw, err := json.Marshal(snapshot)
	require.NoError(t, err)
	rev, err := audit.ReconstructRevision(number, ts, entityType, entityID, kind, raw)
	require.NoError(t, err)
	return rev
}

func TestGetHistoryUseCase_ReturnsOldestFirst(t *testing.T) {
	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	history := []*audit.Revision{
		storedRevision(t, 1, base, audit.EntitySubscription, 4, audit.ChangeCreate,
			audit.SubscriptionSnapshot{ID: 4, Status: "ACTIVA"}),
		storedRevision(t, 5, base.Add(time.Hour), audit.EntitySubscription, 4, audit.ChangeUpdate,
			audit.SubscriptionSnapshot{ID: 4, Status: "IMPAGO"}),
		storedRevision(t, 9, base.Add(2*time.Hour), audit.EntitySubscription, 4, audit.ChangeUpdate,
			audit.SubscriptionSnapshot{ID: 4, Status: "CANCELADA"}),
	}

	revisionRepo := &mockRevisionRepository{
		ListByEntityFunc: func(ctx context.Context, entityType audit.EntityType, entityID uint) ([]*audit.Revision, error) {
			assert.Equal(t, audit.EntitySubscription, entityType)
			assert.Equal(t, uint(4), entityID)
			return history, nil
		},
	}

	revisions, err := NewGetHistoryUseCase(revisionRepo).Execute(context.Background(), audit.EntitySubscription, 4)

	require.NoError(t, err)
	require.Len(t, revisions, 3)
	// Store order is preserved; numbers climb even with gaps.
	assert.Equal(t, uint64(1), revisions[0].Number())
	assert.Equal(t, uint64(5), revisions[1].Number())
	assert.Equal(t, uint64(9), revisions[2].Number())

	var snap audit.SubscriptionSnapshot
	require.NoError(t, revisions[1].DecodeSnapshot(&snap))
	assert.Equal(t, "IMPAGO", snap.Status)
}

func TestGetHistoryUseCase_UnknownEntityType(t *testing.T) {
	revisions, err := NewGetHistoryUseCase(&mockRevisionRepository{}).Execute(context.Background(), audit.EntityType("invoice"), 4)

	assert.Nil(t, revisions)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestGetHistoryUseCase_StoreFailure(t *testing.T) {
	revisionRepo := &mockRevisionRepository{
		ListByEntityFunc: func(ctx context.Context, entityType audit.EntityType, entityID uint) ([]*audit.Revision, error) {
			return nil, errors.New("store down")
		},
	}

	revisions, err := NewGetHistoryUseCase(revisionRepo).Execute(context.Background(), audit.EntityUser, 4)

	assert.Nil(t, revisions)
	assert.True(t, apperrors.IsAuditUnavailable(err))
}
