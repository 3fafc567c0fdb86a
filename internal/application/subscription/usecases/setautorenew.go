package usecases

import (
	"context"
	"fmt"

	"abono/internal/domain/subscription"
	"abono/internal/shared/logger"
)

type SetAutoRenewCommand struct {
	SubscriptionID uint
	Enabled        bool
}

// SetAutoRenewUseCase flips the auto-renewal flag without touching the
// subscription state.
type SetAutoRenewUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

func NewSetAutoRenewUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	logger logger.Interface,
) *SetAutoRenewUseCase {
	return &SetAutoRenewUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

func (uc *SetAutoRenewUseCase) Execute(ctx context.Context, cmd SetAutoRenewCommand) (*subscription.Subscription, error) {
	sub, err := fetchSubscription(ctx, uc.subscriptionRepo, cmd.SubscriptionID)
	if err != nil {
		return nil, err
	}

	sub.SetAutoRenew(cmd.Enabled)

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "subscription_id", cmd.SubscriptionID)
		return nil, fmt.Errorf("failed to update subscription: %w", err)
	}

	uc.logger.Infow("auto-renew updated",
		"subscription_id", cmd.SubscriptionID,
		"enabled", cmd.Enabled,
	)
	return sub, nil
}
