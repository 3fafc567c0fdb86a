package usecases

import (
	"context"

	"abono/internal/domain/billing"
	"abono/internal/domain/subscription"
	"abono/internal/domain/subscription/valueobjects"
	"abono/internal/shared/biztime"
	"abono/internal/shared/logger"
)

// DefaultDunningGraceDays is how long an issued invoice may stay unpaid
// before its subscription is flagged IMPAGO.
const DefaultDunningGraceDays = 30

// ProcessDunningUseCase runs the daily dunning batch: subscriptions with
// an invoice that has been sitting in EMITIDA past the grace period are
// marked IMPAGO. Only active subscriptions are flagged; already-flagged
// or ended ones are left alone. Per-invoice failures are logged and
// skipped.
type ProcessDunningUseCase struct {
	invoiceRepo      billing.InvoiceRepository
	subscriptionRepo subscription.SubscriptionRepository
	graceDays        int
	logger           logger.Interface
}

func NewProcessDunningUseCase(
	invoiceRepo billing.InvoiceRepository,
	subscriptionRepo subscription.SubscriptionRepository,
	graceDays int,
	logger logger.Interface,
) *ProcessDunningUseCase {
	if graceDays <= 0 {
		graceDays = DefaultDunningGraceDays
	}
	return &ProcessDunningUseCase{
		invoiceRepo:      invoiceRepo,
		subscriptionRepo: subscriptionRepo,
		graceDays:        graceDays,
		logger:           logger,
	}
}

// Execute returns the number of subscriptions newly marked unpaid.
func (uc *ProcessDunningUseCase) Execute(ctx context.Context) (int, error) {
	cutoff := biztime.Today().AddDate(0, 0, -uc.graceDays)

	pending, err := uc.invoiceRepo.FindPending(ctx)
	if err != nil {
		uc.logger.Errorw("failed to load pending invoices", "error", err)
		return 0, err
	}

	flagged := 0
	for _, inv := range pending {
		if !inv.IssueDate().Before(cutoff) {
			// Pending invoices come back oldest first, so the rest
			// of the list is still inside the grace period.
			break
		}

		sub, err := uc.subscriptionRepo.GetByID(ctx, inv.SubscriptionID())
		if err != nil {
			uc.logger.Errorw("failed to load subscription for overdue invoice",
				"error", err,
				"invoice_id", inv.ID(),
				"subscription_id", inv.SubscriptionID(),
			)
			continue
		}
		if sub == nil {
			uc.logger.Warnw("overdue invoice references missing subscription",
				"invoice_id", inv.ID(),
				"subscription_id", inv.SubscriptionID(),
			)
			continue
		}
		if sub.Status() != valueobjects.StatusActive {
			continue
		}

		sub.MarkUnpaid()
		if err := uc.subscriptionRepo.Update(ctx, sub); err != nil {
			uc.logger.Errorw("failed to mark subscription unpaid",
				"error", err,
				"subscription_id", sub.ID(),
			)
			continue
		}

		uc.logger.Warnw("subscription marked unpaid for overdue invoice",
			"subscription_id", sub.ID(),
			"invoice_id", inv.ID(),
			"issue_date", inv.IssueDate(),
		)
		flagged++
	}

	uc.logger.Infow("dunning batch completed", "pending_invoices", len(pending), "flagged", flagged)
	return flagged, nil
}
