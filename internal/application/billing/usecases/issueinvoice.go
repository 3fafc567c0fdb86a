package usecases

import (
	"context"
	"fmt"

	"abono/internal/domain/billing"
	"abono/internal/domain/subscription"
	"abono/internal/domain/user"
	"abono/internal/shared/biztime"
	"abono/internal/shared/logger"
)

// DefaultBillingCountry is applied when the subscription owner has no
// profile country.
const DefaultBillingCountry = "ES"

// IssueInvoiceUseCase issues an invoice for a subscription cycle: plan
// price as base, tax per the owner's billing country. It never mutates the
// subscription itself.
type IssueInvoiceUseCase struct {
	invoiceRepo    billing.InvoiceRepository
	planRepo       subscription.PlanRepository
	userRepo       user.UserRepository
	tax            *billing.TaxCalculator
	defaultCountry string
	logger         logger.Interface
}

func NewIssueInvoiceUseCase(
	invoiceRepo billing.InvoiceRepository,
	planRepo subscription.PlanRepository,
	userRepo user.UserRepository,
	tax *billing.TaxCalculator,
	defaultCountry string,
	logger logger.Interface,
) *IssueInvoiceUseCase {
	if defaultCountry == "" {
		defaultCountry = DefaultBillingCountry
	}
	return &IssueInvoiceUseCase{
		invoiceRepo:    invoiceRepo,
		planRepo:       planRepo,
		userRepo:       userRepo,
		tax:            tax,
		defaultCountry: defaultCountry,
		logger:         logger,
	}
}

// IssueForSubscription computes the tax breakdown and persists a new
// EMITIDA invoice for the subscription's current plan.
func (uc *IssueInvoiceUseCase) IssueForSubscription(ctx context.Context, sub *subscription.Subscription) (*billing.Invoice, error) {
	plan, err := uc.planRepo.GetByID(ctx, sub.PlanID())
	if err != nil {
		return nil, fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return nil, subscription.ErrPlanNotFound
	}

	country, err := uc.billingCountry(ctx, sub)
	if err != nil {
		return nil, err
	}

	detail := uc.tax.Detail(plan.MonthlyPrice(), country)

	invoice, err := billing.NewInvoice(sub.ID(), biztime.Today(), detail)
	if err != nil {
		return nil, fmt.Errorf("failed to build invoice: %w", err)
	}

	if err := uc.invoiceRepo.Create(ctx, invoice); err != nil {
		uc.logger.Errorw("failed to persist invoice", "error", err, "subscription_id", sub.ID())
		return nil, fmt.Errorf("failed to persist invoice: %w", err)
	}

	uc.logger.Infow("invoice issued",
		"invoice_id", invoice.ID(),
		"subscription_id", sub.ID(),
		"base", detail.Base,
		"tax_rate", detail.RatePercent,
		"tax", detail.Tax,
		"total", detail.Total,
		"country", country,
	)

	return invoice, nil
}

// billingCountry resolves the owner's country, falling back to the default
// when the profile is absent or carries no country.
func (uc *IssueInvoiceUseCase) billingCountry(ctx context.Context, sub *subscription.Subscription) (string, error) {
	owner, err := uc.userRepo.GetByID(ctx, sub.UserID())
	if err != nil {
		return "", fmt.Errorf("failed to get subscription owner: %w", err)
	}
	if owner == nil || !owner.HasCountry() {
		return uc.defaultCountry, nil
	}
	return owner.Country(), nil
}
