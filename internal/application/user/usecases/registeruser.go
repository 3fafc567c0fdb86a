package usecases

import (
	"context"
	"fmt"

	"abono/internal/domain/user"
	"abono/internal/shared/logger"
)

type RegisterUserCommand struct {
	Email   string
	Name    string
	Country string
}

// RegisterUserUseCase creates a billing profile for a new user. The email
// is the natural key; registering an existing email fails.
type RegisterUserUseCase struct {
	userRepo user.UserRepository
	logger   logger.Interface
}

func NewRegisterUserUseCase(userRepo user.UserRepository, logger logger.Interface) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo: userRepo,
		logger:   logger,
	}
}

func (uc *RegisterUserUseCase) Execute(ctx context.Context, cmd RegisterUserCommand) (*user.User, error) {
	existing, err := uc.userRepo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, user.ErrEmailExists
	}

	u, err := user.NewUser(cmd.Email, cmd.Name, cmd.Country)
	if err != nil {
		return nil, err
	}

	if err := uc.userRepo.Create(ctx, u); err != nil {
		uc.logger.Errorw("failed to create user", "error", err, "email", cmd.Email)
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	uc.logger.Infow("user registered", "user_id", u.ID(), "country", u.Country())
	return u, nil
}
