package usecases

import (
	"context"
	"fmt"

	"abono/internal/domain/billing"
	"abono/internal/domain/subscription"
	"abono/internal/domain/user"
	"abono/internal/shared/biztime"
	apperrors "abono/internal/shared/errors"
	"abono/internal/shared/logger"
)

type CreateSubscriptionCommand struct {
	UserID    uint
	PlanID    uint
	AutoRenew bool
}

// CreateSubscriptionUseCase signs a user up to a plan: the subscription
// starts ACTIVA today, the first renewal is scheduled one month out, and
// the first invoice is issued immediately.
type CreateSubscriptionUseCase struct {
	subscriptionRepo subscription.SubscriptionRepository
	planRepo         subscription.PlanRepository
	userRepo         user.UserRepository
	issuer           InvoiceIssuer
	tx               TransactionRunner
	logger           logger.Interface
}

func NewCreateSubscriptionUseCase(
	subscriptionRepo subscription.SubscriptionRepository,
	planRepo subscription.PlanRepository,
	userRepo user.UserRepository,
	issuer InvoiceIssuer,
	tx TransactionRunner,
	logger logger.Interface,
) *CreateSubscriptionUseCase {
	return &CreateSubscriptionUseCase{
		subscriptionRepo: subscriptionRepo,
		planRepo:         planRepo,
		userRepo:         userRepo,
		issuer:           issuer,
		tx:               tx,
		logger:           logger,
	}
}

func (uc *CreateSubscriptionUseCase) Execute(ctx context.Context, cmd CreateSubscriptionCommand) (*subscription.Subscription, error) {
	owner, err := uc.userRepo.GetByID(ctx, cmd.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if owner == nil {
		return nil, apperrors.NewNotFoundError("user not found", fmt.Sprintf("id=%d", cmd.UserID))
	}

	plan, err := uc.planRepo.GetByID(ctx, cmd.PlanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, apperrors.NewNotFoundError("plan not found", fmt.Sprintf("id=%d", cmd.PlanID))
	}

	today := biztime.Today()
	sub, err := subscription.NewSubscription(cmd.UserID, cmd.PlanID, cmd.AutoRenew, today, biztime.AddMonths(today, 1))
	if err != nil {
		return nil, fmt.Errorf("failed to build subscription: %w", err)
	}

	// Sign-up and the first invoice commit or roll back together.
	var invoice *billing.Invoice
	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if err := uc.subscriptionRepo.Create(ctx, sub); err != nil {
			return fmt.Errorf("failed to create subscription: %w", err)
		}
		invoice, err = uc.issuer.IssueForSubscription(ctx, sub)
		if err != nil {
			return fmt.Errorf("failed to issue first invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to create subscription", "error", err, "user_id", cmd.UserID)
		return nil, err
	}

	uc.logger.Infow("subscription created",
		"subscription_id", sub.ID(),
		"user_id", cmd.UserID,
		"plan", plan.Type(),
		"invoice_id", invoice.ID(),
	)
	return sub, nil
}
