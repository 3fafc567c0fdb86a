package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abono/internal/domain/audit"
	apperrors "abono/internal/shared/errors"
)

func TestGetSnapshotUseCase_ReturnsRevision(t *testing.T) {
	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	stored := storedRevision(t, 5, ts, audit.EntityUser, 9, audit.ChangeUpdate,
		audit.UserSnapshot{ID: 9, Email: "ana@example.com", Country: "DE"})

	revisionRepo := &mockRevisionRepository{
		GetByNumberFunc: func(ctx context.Context, entityType audit.EntityType, entityID uint, number uint64) (*audit.Revision, error) {
			assert.Equal(t, audit.EntityUser, entityType)
			assert.Equal(t, uint(9), entityID)
			assert.Equal(t, uint64(5), number)
			return stored, nil
		},
	}

	revision, err := NewGetSnapshotUseCase(revisionRepo).Execute(context.Background(), audit.EntityUser, 9, 5)

	require.NoError(t, err)
	var snap audit.UserSnapshot
	require.NoError(t, revision.DecodeSnapshot(&snap))
	// The snapshot reflects the state as of that revision, not the
	// entity's current state.
	assert.Equal(t, "DE", snap.Country)
}

func TestGetSnapshotUseCase_UnknownRevision(t *testing.T) {
	revision, err := NewGetSnapshotUseCase(&mockRevisionRepository{}).Execute(context.Background(), audit.EntityUser, 9, 42)

	assert.Nil(t, revision)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetSnapshotUseCase_UnknownEntityType(t *testing.T) {
	_, err := NewGetSnapshotUseCase(&mockRevisionRepository{}).Execute(context.Background(), audit.EntityType("plan"), 9, 1)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
}

func TestGetSnapshotUseCase_StoreFailure(t *testing.T) {
	revisionRepo := &mockRevisionRepository{
		GetByNumberFunc: func(ctx context.Context, entityType audit.EntityType, entityID uint, number uint64) (*audit.Revision, error) {
			return nil, errors.New("store down")
		},
	}

	revision, err := NewGetSnapshotUseCase(revisionRepo).Execute(context.Background(), audit.EntityUser, 9, 1)

	assert.Nil(t, revision)
	assert.True(t, apperrors.IsAuditUnavailable(err))
}
