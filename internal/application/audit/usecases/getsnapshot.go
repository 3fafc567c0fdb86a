package usecases

import (
	"context"
	"fmt"

	"abono/internal/domain/audit"
	apperrors "abono/internal/shared/errors"
)

// GetSnapshotUseCase reconstructs an entity's exact state as of one
// revision.
type GetSnapshotUseCase struct {
	revisionRepo audit.RevisionRepository
}

func NewGetSnapshotUseCase(revisionRepo audit.RevisionRepository) *GetSnapshotUseCase {
	return &GetSnapshotUseCase{revisionRepo: revisionRepo}
}

func (uc *GetSnapshotUseCase) Execute(ctx context.Context, entityType audit.EntityType, entityID uint, number uint64) (*audit.Revision, error) {
	if !entityType.IsValid() {
		return nil, apperrors.NewValidationError("unknown entity type", string(entityType))
	}

	revision, err := uc.revisionRepo.GetByNumber(ctx, entityType, entityID, number)
	if err != nil {
		return nil, apperrors.NewAuditUnavailableError("failed to load revision", err.Error())
	}
	if revision == nil {
		return nil, apperrors.NewNotFoundError(
			"revision not found",
			fmt.Sprintf("%s/%d revision %d", entityType, entityID, number),
		)
	}
	return revision, nil
}
