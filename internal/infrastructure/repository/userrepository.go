package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"abono/internal/domain/audit"
	"abono/internal/domain/user"
	"abono/internal/infrastructure/persistence/models"
	"abono/internal/shared/db"
	"abono/internal/shared/logger"
)

type UserRepositoryImpl struct {
	db       *gorm.DB
	recorder audit.Recorder
	logger   logger.Interface
}

func NewUserRepository(gormDB *gorm.DB, recorder audit.Recorder, logger logger.Interface) user.UserRepository {
	return &UserRepositoryImpl{
		db:       gormDB,
		recorder: recorder,
		logger:   logger,
	}
}

func (r *UserRepositoryImpl) Create(ctx context.Context, u *user.User) error {
	model := r.toModel(u)

	err := db.FromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		if err := u.SetID(model.ID); err != nil {
			return err
		}
		return r.recorder.Record(db.WithTx(ctx, tx), audit.EntityUser, model.ID, audit.ChangeCreate, r.toSnapshot(u))
	})
	if err != nil {
		r.logger.Errorw("failed to create user", "error", err, "email", u.Email())
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.logger.Infow("user created", "user_id", model.ID, "email", u.Email())
	return nil
}

func (r *UserRepositoryImpl) GetByID(ctx context.Context, id uint) (*user.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by ID", "error", err, "user_id", id)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return r.toEntity(&model)
}

func (r *UserRepositoryImpl) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model models.UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get user by email", "error", err, "email", email)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return r.toEntity(&model)
}

func (r *UserRepositoryImpl) Update(ctx context.Context, u *user.User) error {
	err := db.FromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.UserModel{}).
			Where("id = ?", u.ID()).
			Updates(map[string]interface{}{
				"email":      u.Email(),
				"name":       u.Name(),
				"country":    u.Country(),
				"updated_at": u.UpdatedAt(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return user.ErrUserNotFound
		}
		return r.recorder.Record(db.WithTx(ctx, tx), audit.EntityUser, u.ID(), audit.ChangeUpdate, r.toSnapshot(u))
	})
	if err != nil {
		r.logger.Errorw("failed to update user", "error", err, "user_id", u.ID())
		return fmt.Errorf("failed to update user: %w", err)
	}

	return nil
}

func (r *UserRepositoryImpl) toModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:        u.ID(),
		Email:     u.Email(),
		Name:      u.Name(),
		Country:   u.Country(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

func (r *UserRepositoryImpl) toEntity(model *models.UserModel) (*user.User, error) {
	return user.ReconstructUser(model.ID, model.Email, model.Name, model.Country, model.CreatedAt, model.UpdatedAt)
}

func (r *UserRepositoryImpl) toSnapshot(u *user.User) audit.UserSnapshot {
	return audit.UserSnapshot{
		ID:      u.ID(),
		Email:   u.Email(),
		Name:    u.Name(),
		Country: u.Country(),
	}
}
