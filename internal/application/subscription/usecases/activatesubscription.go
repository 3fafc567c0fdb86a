package usecases

import (
	"context"
	"fmt"

	"abono/internal/domain/subscription"
	apperrors "abono/internal/shared/errors"
	"abono/internal/shared/logger"
)

// ActivateSubscriptionUseCase moves a subscription to ACTIVA from any
// state and clears its end date.
type ActivateSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

func NewActivateSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	logger logger.Interface,
) *ActivateSubscriptionUseCase {
	return &ActivateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *ActivateSubscriptionUseCase) Execute(ctx context.Context, subscriptionID uint) (*subscription.Subscription, error) {
	sub, err := fetchSubscription(ctx, uc.subscriptionRepo, subscriptionID)
	if err != nil {
		return nil, err
	}

	sub.Activate()

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "subscription_id", subscriptionID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	uc.logger.Infow("subscription activated", "subscription_id", subscriptionID)
	return sub, nil
}

// fetchSubscription loads a subscription, translating a missing row into
// a typed not-found error.
func fetchSubscription(ctx context.Context, repo subscription.SubscriptionRepository, id uint) (*subscription.Subscription, error) {
	sub, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get subscription: %w", err)
	}
	if sub == nil {
		return nil, apperrors.NewNotFoundError("subscription not found", fmt.Sprintf("id=%d", id))
	}
	return sub, nil
}
