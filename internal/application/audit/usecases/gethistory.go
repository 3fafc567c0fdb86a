package usecases

import (
	"context"

	"abono/internal/domain/audit"
	apperrors "abono/internal/shared/errors"
)

// GetHistoryUseCase returns every recorded revision of one entity,
// oldest first.
type GetHistoryUseCase struct {
	revisionRepo audit.RevisionRepository
}

func NewGetHistoryUseCase(revisionRepo audit.RevisionRepository) *GetHistoryUseCase {
	return &GetHistoryUseCase{revisionRepo: revisionRepo}
}

func (uc *GetHistoryUseCase) Execute(ctx context.Context, entityType audit.EntityType, entityID uint) ([]*audit.Revision, error) {
	if !entityType.IsValid() {
		return nil, apperrors.NewValidationError("unknown entity type", string(entityType))
	}

	revisions, err := uc.revisionRepo.ListByEntity(ctx, entityType, entityID)
	if err != nil {
		return nil, apperrors.NewAuditUnavailableError("failed to load revision history", err.Error())
	}
	return revisions, nil
}
