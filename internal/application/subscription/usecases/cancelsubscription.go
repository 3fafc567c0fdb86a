package usecases

import (
	"context"
	"fmt"

	"abono/internal/domain/subscription"
	"abono/internal/shared/biztime"
	"abono/internal/shared/logger"
)

// CancelSubscriptionUseCase moves a subscription to CANCELADA regardless
// of its prior state: end date today, auto-renewal off.
type CancelSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

func NewCancelSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	logger logger.Interface,
) *CancelSubscriptionUseCase {
	return &CancelSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *CancelSubscriptionUseCase) Execute(ctx context.Context, subscriptionID uint) (*subscription.Subscription, error) {
	sub, err := fetchSubscription(ctx, uc.subscriptionRepo, subscriptionID)
	if err != nil {
		return nil, err
	}

	sub.Cancel(biztime.Today())

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "subscription_id", subscriptionID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	uc.logger.Infow("subscription cancelled", "subscription_id", subscriptionID)
	return sub, nil
}
