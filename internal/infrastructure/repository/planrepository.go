package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"abono/internal/domain/subscription"
	vo "abono/internal/domain/subscription/valueobjects"
	"abono/internal/infrastructure/persistence/models"
	"abono/internal/shared/logger"
)

type PlanRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPlanRepository(gormDB *gorm.DB, logger logger.Interface) subscription.PlanRepository {
	return &PlanRepositoryImpl{
		db:     gormDB,
		logger: logger,
	}
}

// Create persists a new plan. Plan types are unique; a second plan of an
// existing type is rejected.
func (r *PlanRepositoryImpl) Create(ctx context.Context, plan *subscription.Plan) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.PlanModel{}).Where("type = ?", string(plan.Type())).Count(&count).Error; err != nil {
		r.logger.Errorw("failed to check plan type", "error", err, "type", plan.Type())
		return fmt.Errorf("failed to check plan type: %w", err)
	}
	if count > 0 {
		return subscription.ErrPlanTypeExists
	}

	model := r.toModel(plan)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create plan", "error", err, "type", plan.Type())
		return fmt.Errorf("failed to create plan: %w", err)
	}

	if err := plan.SetID(model.ID); err != nil {
		return err
	}

	r.logger.Infow("plan created", "plan_id", model.ID, "type", plan.Type())
	return nil
}

func (r *PlanRepositoryImpl) GetByID(ctx context.Context, id uint) (*subscription.Plan, error) {
	var model models.PlanModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan by ID", "error", err, "plan_id", id)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return r.toEntity(&model)
}

func (r *PlanRepositoryImpl) GetByType(ctx context.Context, planType vo.PlanType) (*subscription.Plan, error) {
	var model models.PlanModel
	if err := r.db.WithContext(ctx).Where("type = ?", string(planType)).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get plan by type", "error", err, "type", planType)
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}

	return r.toEntity(&model)
}

func (r *PlanRepositoryImpl) List(ctx context.Context) ([]*subscription.Plan, error) {
	var planModels []*models.PlanModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&planModels).Error; err != nil {
		r.logger.Errorw("failed to list plans", "error", err)
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	plans := make([]*subscription.Plan, 0, len(planModels))
	for _, model := range planModels {
		plan, err := r.toEntity(model)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

func (r *PlanRepositoryImpl) toModel(plan *subscription.Plan) *models.PlanModel {
	return &models.PlanModel{
		ID:           plan.ID(),
		Type:         string(plan.Type()),
		Name:         plan.Name(),
		MonthlyPrice: plan.MonthlyPrice(),
		CreatedAt:    plan.CreatedAt(),
	}
}

func (r *PlanRepositoryImpl) toEntity(model *models.PlanModel) (*subscription.Plan, error) {
	return subscription.ReconstructPlan(model.ID, vo.PlanType(model.Type), model.Name, model.MonthlyPrice, model.CreatedAt)
}
