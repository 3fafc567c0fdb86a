package usecases

import (
	"context"
	"fmt"

	"abono/internal/domain/subscription"
	"abono/internal/shared/logger"
)

// MarkUnpaidUseCase moves a subscription to IMPAGO. The transition has no
// state guard; re-marking is a harmless re-apply.
type MarkUnpaidUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

func NewMarkUnpaidUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	logger logger.Interface,
) *MarkUnpaidUseCase {
	return &MarkUnpaidUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *MarkUnpaidUseCase) Execute(ctx context.Context, subscriptionID uint) (*subscription.Subscription, error) {
	sub, err := fetchSubscription(ctx, uc.subscriptionRepo, subscriptionID)
	if err != nil {
		return nil, err
	}

	sub.MarkUnpaid()

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "subscription_id", subscriptionID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	uc.logger.Warnw("subscription marked unpaid", "subscription_id", subscriptionID)
	return sub, nil
}
