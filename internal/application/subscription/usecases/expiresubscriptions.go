package usecases

import (
	"context"

	"abono/internal/domain/subscription"
	"abono/internal/shared/biztime"
	"abono/internal/shared/logger"
)

// ExpireSubscriptionsUseCase runs the daily expiration batch: active
// non-autorenewing subscriptions whose end date has passed are moved to
// EXPIRADA with endDate stamped to today. One failing row does not abort
// the batch.
type ExpireSubscriptionsUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	logger           logger.Interface
}

func NewExpireSubscriptionsUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	logger logger.Interface,
) *ExpireSubscriptionsUseCase {
	return &ExpireSubscriptionsUseCase{
		subscriptionRepo: subscriptionRepo,
		logger:           logger,
	}
}

// Execute returns the number of subscriptions expired in this run.
func (uc *ExpireSubscriptionsUseCase) Execute(ctx context.Context) (int, error) {
	today := biztime.Today()

	ended, err := uc.subscriptionRepo.FindExpired(ctx, today)
	if err != nil {
		uc.logger.Errorw("failed to load ended subscriptions", "error", err)
		return 0, err
	}

	expired := 0
	for _, sub := range ended {
		sub.Expire(today)
		if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
			uc.logger.Errorw("failed to expire subscription",
				"error", err,
				"subscription_id", sub.ID(),
			)
			continue
		}
		expired++
	}

	uc.logger.Infow("expiration batch completed", "candidates", len(ended), "expired", expired)
	return expired, nil
}
