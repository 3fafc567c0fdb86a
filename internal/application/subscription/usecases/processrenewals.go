package usecases

import (
	"context"

	"abono/internal/domain/subscription"
	"abono/internal/shared/biztime"
	"abono/internal/shared/logger"
)

// RenewalReport summarizes one run of the renewal batch.
type RenewalReport struct {
	Renewed int
	Failed  int
}

// ProcessRenewalsUseCase runs the daily renewal batch: every active
// auto-renewing subscription whose renewal date falls on or before today
// gets one renewal attempt. A failure on one subscription is logged and
// counted but does not stop the rest of the batch.
type ProcessRenewalsUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	renew            *RenewSubscriptionUseCase
	logger           logger.Interface
}

func NewProcessRenewalsUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	renew *RenewSubscriptionUseCase,
	logger logger.Interface,
) *ProcessRenewalsUseCase {
	return &ProcessRenewalsUseCase{
		subscriptionRepo: subscriptionRepo,
		renew:            renew,
		logger:           logger,
	}
}

func (uc *ProcessRenewalsUseCase) Execute(ctx context.Context) (*RenewalReport, error) {
	today := biztime.Today()

	due, err := uc.subscriptionRepo.FindDueForRenewal(ctx, today)
	if err != nil {
		uc.logger.Errorw("failed to load subscriptions due for renewal", "error", err)
		return nil, err
	}

	report := &RenewalReport{}
	for _, sub := range due {
		if err := uc.renew.Execute(ctx, sub); err != nil {
			uc.logger.Errorw("failed to renew subscription",
				"error", err,
				"subscription_id", sub.ID(),
				"user_id", sub.UserID(),
			)
			report.Failed++
			continue
		}
		report.Renewed++
	}

	uc.logger.Infow("renewal batch completed",
		"due", len(due),
		"renewed", report.Renewed,
		"failed", report.Failed,
	)
	return report, nil
}
