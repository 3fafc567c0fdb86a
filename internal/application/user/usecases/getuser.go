package usecases

import (
	"context"
	"fmt"

	"abono/internal/domain/user"
	apperrors "abono/internal/shared/errors"
)

type GetUserUseCase struct {
	userRepo user.UserRepository
}

func NewGetUserUseCase(userRepo user.UserRepository) *GetUserUseCase {
	return &GetUserUseCase{userRepo: userRepo}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, id uint) (*user.User, error) {
	u, err := uc.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, apperrors.NewNotFoundError("user not found", fmt.Sprintf("id=%d", id))
	}
	return u, nil
}

func (uc *GetUserUseCase) ByEmail(ctx context.Context, email string) (*user.User, error) {
	u, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if u == nil {
		return nil, apperrors.NewNotFoundError("user not found", email)
	}
	return u, nil
}
