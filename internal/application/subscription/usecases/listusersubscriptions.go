package usecases

import (
	"context"

	"abono/internal/domain/subscription"
	"abono/internal/domain/subscription/valueobjects"
	"abono/internal/shared/biztime"
)

// ListUserSubscriptionsUseCase groups the subscription read operations.
type ListUserSubscriptionsUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
}

func NewListUserSubscriptionsUseCase(subscriptionRepo subscription.SubscriptionRepository) *ListUserSubscriptionsUseCase {
	return &ListUserSubscriptionsUseCase{subscriptionRepo: subscriptionRepo}
}

func (uc *ListUserSubscriptionsUseCase) ByUser(ctx context.Context, userID uint) ([]*subscription.Subscription, error) {
	return uc.subscriptionRepo.GetByUserID(ctx, userID)
}

func (uc *ListUserSubscriptionsUseCase) ActiveByUser(ctx context.Context, userID uint) ([]*subscription.Subscription, error) {
	return uc.subscriptionRepo.GetByUserIDAndStatus(ctx, userID, valueobjects.StatusActive)
}

func (uc *ListUserSubscriptionsUseCase) All(ctx context.Context) ([]*subscription.Subscription, error) {
	return uc.subscriptionRepo.ListAll(ctx)
}

// ExpiringWithin lists active subscriptions whose next renewal falls in
// the next n days, today inclusive.
func (uc *ListUserSubscriptionsUseCase) ExpiringWithin(ctx context.Context, days int) ([]*subscription.Subscription, error) {
	from := biztime.Today()
	to := from.AddDate(0, 0, days)
	return uc.subscriptionRepo.FindRenewingBetween(ctx, from, to)
}
