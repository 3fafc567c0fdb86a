package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"abono/internal/domain/audit"
	"abono/internal/domain/subscription"
	vo "abono/internal/domain/subscription/valueobjects"
	"abono/internal/infrastructure/persistence/models"
	"abono/internal/shared/db"
	"abono/internal/shared/logger"
)

type SubscriptionRepositoryImpl struct {
	db       *gorm.DB
	recorder audit.Recorder
	logger   logger.Interface
}

func NewSubscriptionRepository(gormDB *gorm.DB, recorder audit.Recorder, logger logger.Interface) subscription.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:       gormDB,
		recorder: recorder,
		logger:   logger,
	}
}

func (r *SubscriptionRepositoryImpl) Create(ctx context.Context, sub *subscription.Subscription) error {
	model := r.toModel(sub)

	err := db.FromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(model).Error; err != nil {
			return err
		}
		if err := sub.SetID(model.ID); err != nil {
			return err
		}
		return r.recorder.Record(db.WithTx(ctx, tx), audit.EntitySubscription, model.ID, audit.ChangeCreate, r.toSnapshot(sub))
	})
	if err != nil {
		r.logger.Errorw("failed to create subscription", "error", err, "user_id", sub.UserID())
		return fmt.Errorf("failed to create subscription: %w", err)
	}

	r.logger.Infow("subscription created", "subscription_id", model.ID, "user_id", sub.UserID())
	return nil
}

func (r *SubscriptionRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	var model models.SubscriptionModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get subscription by ID", "error", err, "subscription_id", id)
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}

	return r.toEntity(&model)
}

func (r *SubscriptionRepositoryImpl) Update(ctx context.Context, sub *subscription.Subscription) error {
	err := db.FromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SubscriptionModel{}).
			Where("id = ?", sub.ID()).
			Updates(map[string]interface{}{
				"plan_id":           sub.PlanID(),
				"status":            string(sub.Status()),
				"end_date":          sub.EndDate(),
				"auto_renew":        sub.AutoRenew(),
				"next_renewal_date": sub.NextRenewalDate(),
				"updated_at":        sub.UpdatedAt(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return subscription.ErrSubscriptionNotFound
		}
		return r.recorder.Record(db.WithTx(ctx, tx), audit.EntitySubscription, sub.ID(), audit.ChangeUpdate, r.toSnapshot(sub))
	})
	if err != nil {
		r.logger.Errorw("failed to update subscription", "error", err, "subscription_id", sub.ID())
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	return nil
}

func (r *SubscriptionRepositoryImpl) GetByUserID(ctx context.Context, userID uint) ([]*subscription.Subscription, error) {
	var subscriptionModels []*models.SubscriptionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&subscriptionModels).Error
	if err != nil {
		r.logger.Errorw("failed to list subscriptions by user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return r.toEntities(subscriptionModels)
}

func (r *SubscriptionRepositoryImpl) GetByUserIDAndStatus(ctx context.Context, userID uint, status vo.SubscriptionStatus) ([]*subscription.Subscription, error) {
	var subscriptionModels []*models.SubscriptionModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(status)).
		Order("id ASC").
		Find(&subscriptionModels).Error
	if err != nil {
		r.logger.Errorw("failed to list subscriptions by user and status", "error", err, "user_id", userID, "status", status)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return r.toEntities(subscriptionModels)
}

func (r *SubscriptionRepositoryImpl) ListAll(ctx context.Context) ([]*subscription.Subscription, error) {
	var subscriptionModels []*models.SubscriptionModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&subscriptionModels).Error; err != nil {
		r.logger.Errorw("failed to list subscriptions", "error", err)
		return nil, fmt.Errorf("failed to list subscriptions: %w", err)
	}

	return r.toEntities(subscriptionModels)
}

func (r *SubscriptionRepositoryImpl) FindDueForRenewal(ctx context.Context, asOf time.Time) ([]*subscription.Subscription, error) {
	var subscriptionModels []*models.SubscriptionModel
	err := r.db.WithContext(ctx).
		Where("auto_renew = ? AND status = ? AND next_renewal_date <= ?", true, string(vo.StatusActive), asOf).
		Find(&subscriptionModels).Error
	if err != nil {
		r.logger.Errorw("failed to find subscriptions due for renewal", "error", err)
		return nil, fmt.Errorf("failed to find subscriptions due for renewal: %w", err)
	}

	return r.toEntities(subscriptionModels)
}

func (r *SubscriptionRepositoryImpl) FindExpired(ctx context.Context, asOf time.Time) ([]*subscription.Subscription, error) {
	var subscriptionModels []*models.SubscriptionModel
	err := r.db.WithContext(ctx).
		Where("auto_renew = ? AND status = ? AND end_date <= ?", false, string(vo.StatusActive), asOf).
		Find(&subscriptionModels).Error
	if err != nil {
		r.logger.Errorw("failed to find ended subscriptions", "error", err)
		return nil, fmt.Errorf("failed to find ended subscriptions: %w", err)
	}

	return r.toEntities(subscriptionModels)
}

func (r *SubscriptionRepositoryImpl) FindRenewingBetween(ctx context.Context, from, to time.Time) ([]*subscription.Subscription, error) {
	var subscriptionModels []*models.SubscriptionModel
	err := r.db.WithContext(ctx).
		Where("status = ? AND next_renewal_date BETWEEN ? AND ?", string(vo.StatusActive), from, to).
		Order("next_renewal_date ASC").
		Find(&subscriptionModels).Error
	if err != nil {
		r.logger.Errorw("failed to find renewing subscriptions", "error", err)
		return nil, fmt.Errorf("failed to find renewing subscriptions: %w", err)
	}

	return r.toEntities(subscriptionModels)
}

func (r *SubscriptionRepositoryImpl) toModel(sub *subscription.Subscription) *models.SubscriptionModel {
	return &models.SubscriptionModel{
		ID:              sub.ID(),
		UserID:          sub.UserID(),
		PlanID:          sub.PlanID(),
		Status:          string(sub.Status()),
		StartDate:       sub.StartDate(),
		EndDate:         sub.EndDate(),
		AutoRenew:       sub.AutoRenew(),
		NextRenewalDate: sub.NextRenewalDate(),
		CreatedAt:       sub.CreatedAt(),
		UpdatedAt:       sub.UpdatedAt(),
	}
}

func (r *SubscriptionRepositoryImpl) toEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	return subscription.ReconstructSubscription(subscription.SubscriptionReconstructParams{
		ID:              model.ID,
		UserID:          model.UserID,
		PlanID:          model.PlanID,
		Status:          vo.SubscriptionStatus(model.Status),
		StartDate:       model.StartDate,
		EndDate:         model.EndDate,
		AutoRenew:       model.AutoRenew,
		NextRenewalDate: model.NextRenewalDate,
		CreatedAt:       model.CreatedAt,
		UpdatedAt:       model.UpdatedAt,
	})
}

func (r *SubscriptionRepositoryImpl) toEntities(subscriptionModels []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	subscriptions := make([]*subscription.Subscription, 0, len(subscriptionModels))
	for _, model := range subscriptionModels {
		sub, err := r.toEntity(model)
		if err != nil {
			return nil, err
		}
		subscriptions = append(subscriptions, sub)
	}
	return subscriptions, nil
}

func (r *SubscriptionRepositoryImpl) toSnapshot(sub *subscription.Subscription) audit.SubscriptionSnapshot {
	snapshot := audit.SubscriptionSnapshot{
		ID:        sub.ID(),
		UserID:    sub.UserID(),
		PlanID:    sub.PlanID(),
		Status:    string(sub.Status()),
		StartDate: sub.StartDate().Format(time.DateOnly),
		AutoRenew: sub.AutoRenew(),
	}
	if end := sub.EndDate(); end != nil {
		s := end.Format(time.DateOnly)
		snapshot.EndDate = &s
	}
	if next := sub.NextRenewalDate(); next != nil {
		s := next.Format(time.DateOnly)
		snapshot.NextRenewalDate = &s
	}
	return snapshot
}
