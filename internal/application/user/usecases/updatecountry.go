package usecases

import (
	"context"
	"fmt"

	"abono/internal/domain/user"
	apperrors "abono/internal/shared/errors"
	"abono/internal/shared/logger"
)

// UpdateCountryUseCase changes a user's billing country. Already-issued
// invoices keep their original tax; the new rate applies from the next
// issuance (or an explicit reprice).
type UpdateCountryUseCase struct {
	userRepo user.UserRepository
	logger   logger.Interface
}

func NewUpdateCountryUseCase(userRepo user.UserRepository, logger logger.Interface) *UpdateCountryUseCase {
	return &UpdateCountryUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *UpdateCountryUseCase) Execute(ctx context.Context, userID uint, country string) (*user.User, error) {
	u, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, apperrors.NewNotFoundError("user not found", fmt.Sprintf("id=%d", userID))
	}

	u.UpdateCountry(country)

	if err := uc.userRepo.Update(ctx, u); err != nil {
		uc.logger.Errorw("failed to update user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	uc.logger.Infow("billing country updated", "user_id", userID, "country", country)
	return u, nil
}
