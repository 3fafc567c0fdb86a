package usecases

import (
	"context"
	"fmt"

	"abono/internal/domain/subscription"
	"abono/internal/shared/biztime"
	"abono/internal/shared/logger"
)

// RenewSubscriptionUseCase extends a subscription by one billing period:
// it issues the period's invoice and schedules the next renewal one month
// from today. A subscription that is not renewable (auto-renew off or not
// ACTIVA) is skipped with a log line, not an error.
//
// Note the next renewal is anchored on today, not on the previous
// nextRenewalDate, so a late-running batch drifts the schedule forward.
type RenewSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	issuer           InvoiceIssuer
	logger           logger.Interface
}

func NewRenewSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	issuer InvoiceIssuer,
	logger logger.Interface,
) *RenewSubscriptionUseCase {
	return &RenewSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		issuer:           issuer,
		logger:           logger,
	}
}

func (uc *RenewSubscriptionUseCase) Execute(ctx context.Context, sub *subscription.Subscription) error {
	if !sub.AutoRenew() {
		uc.logger.Infow("subscription has auto-renew disabled, skipping", "subscription_id", sub.ID())
		return nil
	}
	if !sub.IsRenewable() {
		uc.logger.Infow("subscription is not active, skipping renewal",
			"subscription_id", sub.ID(),
			"status", sub.Status(),
		)
		return nil
	}

	invoice, err := uc.issuer.IssueForSubscription(ctx, sub)
	if err != nil {
		return fmt.Errorf("failed to issue renewal invoice: %w", err)
	}

	sub.ScheduleRenewal(biztime.AddMonths(biztime.Today(), 1))

	if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
		uc.logger.Errorw("failed to update subscription", "error", err, "subscription_id", sub.ID())
		return fmt.Errorf("failed to update subscription: %w", err)
	}

	uc.logger.Infow("subscription renewed",
		"subscription_id", sub.ID(),
		"invoice_id", invoice.ID(),
		"next_renewal", sub.NextRenewalDate(),
	)
	return nil
}
