package usecases

import (
	"context"

	"abono/internal/domain/subscription"
)

type GetSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
}

func NewGetSubscriptionUseCase(subscriptionRepo subscription.SubscriptionRepository) *GetSubscriptionUseCase {
	return &GetSubscriptionUseCase{subscriptionRepo: subscriptionRepo}
}

func (uc *GetSubscriptionUseCase) Execute(ctx context.Context, id uint) (*subscription.Subscription, error) {
	return fetchSubscription(ctx, uc.subscriptionRepo, id)
}
