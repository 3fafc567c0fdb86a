package usecases

import (
	"context"
	"fmt"

	"abono/internal/domain/subscription"
	apperrors "abono/internal/shared/errors"
	"abono/internal/shared/logger"
)

type ChangePlanCommand struct {
	SubscriptionID uint
	NewPlanID      uint
}

// ChangePlanUseCase switches a subscription's plan. The current invoice is
// not re-priced or re-issued; the new price takes effect at the next
// renewal.
type ChangePlanUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	logger           logger.Interface
}

func NewChangePlanUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	logger logger.Interface,
) *ChangePlanUseCase {
	return &ChangePlanUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		logger:           logger,
	}
}

func (uc *ChangePlanUseCase) Execute(ctx context.Context, cmd ChangePlanCommand) (*subscription.Subscription, error) {
	sub, err := fetchSubscription(ctx, uc.subscriptionRepo, cmd.SubscriptionID)
	if err != nil {
		return nil, err
	}

	plan, err := uc.planRepo.GetByID(ctx, cmd.NewPlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, apperrors.NewNotFoundError("plan not found", fmt.Sprintf("id=%d", cmd.NewPlanID))
	}

	if err := sub.ChangePlan(plan.ID()); err != nil {
		return nil, err
	}

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	uc.logger.Infow("plan changed",
		"subscription_id", cmd.SubscriptionID,
		"new_plan", plan.Type(),
	)
	return sub, nil
}
