package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abono/internal/domain/user"
	apperrors "abono/internal/shared/errors"
)

func existingUser(t *testing.T, id uint, country string) *user.User {
	t.Helper()
	u, err := user.ReconstructUser(id, "ana@example.com", "Ana", country, time.Now(), time.Now())
	require.NoError(t, err)
	return u
}

func TestRegisterUserUseCase(t *testing.T) {
	var created *user.User
	userRepo := &mockUserRepository{
		CreateFunc: func(ctx context.Context, u *user.User) error {
			created = u
			return u.SetID(5)
		},
	}

	useCase := NewRegisterUserUseCase(userRepo, &mockLogger{})

	u, err := useCase.Execute(context.Background(), RegisterUserCommand{
		Email:   "ana@example.com",
		Name:    "Ana",
		Country: "DE",
	})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, uint(5), u.ID())
	assert.Equal(t, "ana@example.com", u.Email())
	assert.Equal(t, "DE", u.Country())
}

func TestRegisterUserUseCase_DuplicateEmail(t *testing.T) {
	userRepo := &mockUserRepository{
		GetByEmailFunc: func(ctx context.Context, email string) (*user.User, error) {
			return existingUser(t, 5, "ES"), nil
		},
		CreateFunc: func(ctx context.Context, u *user.User) error {
			t.Fatal("no create expected")
			return nil
		},
	}

	useCase := NewRegisterUserUseCase(userRepo, &mockLogger{})

	u, err := useCase.Execute(context.Background(), RegisterUserCommand{Email: "ana@example.com"})

	assert.Nil(t, u)
	assert.ErrorIs(t, err, user.ErrEmailExists)
}

func TestRegisterUserUseCase_EmailRequired(t *testing.T) {
	useCase := NewRegisterUserUseCase(&mockUserRepository{}, &mockLogger{})

	u, err := useCase.Execute(context.Background(), RegisterUserCommand{Name: "Ana"})

	assert.Nil(t, u)
	assert.Error(t, err)
}

func TestUpdateCountryUseCase(t *testing.T) {
	stored := existingUser(t, 5, "ES")

	var updated *user.User
	userRepo := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return stored, nil
		},
		UpdateFunc: func(ctx context.Context, u *user.User) error {
			updated = u
			return nil
		},
	}

	useCase := NewUpdateCountryUseCase(userRepo, &mockLogger{})

	u, err := useCase.Execute(context.Background(), 5, "FR")

	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "FR", u.Country())
}

func TestUpdateCountryUseCase_UnknownUser(t *testing.T) {
	useCase := NewUpdateCountryUseCase(&mockUserRepository{}, &mockLogger{})

	u, err := useCase.Execute(context.Background(), 99, "FR")

	assert.Nil(t, u)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestGetUserUseCase(t *testing.T) {
	stored := existingUser(t, 5, "ES")

	userRepo := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			if id == 5 {
				return stored, nil
			}
			return nil, nil
		},
	}

	useCase := NewGetUserUseCase(userRepo)

	u, err := useCase.Execute(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, stored, u)

	_, err = useCase.Execute(context.Background(), 99)
	assert.True(t, apperrors.IsNotFound(err))
}
