package usecases

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"abono/internal/domain/billing"
	vo "abono/internal/domain/billing/valueobjects"
	apperrors "abono/internal/shared/errors"
	"abono/internal/shared/logger"
)

// ListInvoicesUseCase bundles the invoice read operations. All of them are
// pure queries with no side effects.
type ListInvoicesUseCase struct {
	invoiceRepo billing.InvoiceRepository
	logger      logger.Interface
}

func NewListInvoicesUseCase(invoiceRepo billing.InvoiceRepository, logger logger.Interface) *ListInvoicesUseCase {
	return &ListInvoicesUseCase{
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

// Get fetches a single invoice; unknown ids surface as NotFound.
func (uc *ListInvoicesUseCase) Get(ctx context.Context, invoiceID uint) (*billing.Invoice, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if invoice == nil {
		return nil, apperrors.NewNotFoundError("invoice not found", fmt.Sprintf("id=%d", invoiceID))
	}
	return invoice, nil
}

// All returns every invoice ordered by issue date descending.
func (uc *ListInvoicesUseCase) All(ctx context.Context) ([]*billing.Invoice, error) {
	return uc.invoiceRepo.ListAll(ctx)
}

// ByDateRange returns invoices issued inside [from, to].
func (uc *ListInvoicesUseCase) ByDateRange(ctx context.Context, from, to time.Time) ([]*billing.Invoice, error) {
	return uc.invoiceRepo.FindByIssueDateBetween(ctx, from, to)
}

// ByAmountRange returns invoices whose total falls inside [min, max].
func (uc *ListInvoicesUseCase) ByAmountRange(ctx context.Context, min, max decimal.Decimal) ([]*billing.Invoice, error) {
	return uc.invoiceRepo.FindByTotalBetween(ctx, min, max)
}

// ByStatus returns invoices in the given state.
func (uc *ListInvoicesUseCase) ByStatus(ctx context.Context, status vo.InvoiceStatus) ([]*billing.Invoice, error) {
	return uc.invoiceRepo.FindByStatus(ctx, status)
}

// ByUser returns every invoice owned (through its subscription) by a user.
func (uc *ListInvoicesUseCase) ByUser(ctx context.Context, userID uint) ([]*billing.Invoice, error) {
	return uc.invoiceRepo.FindByUserID(ctx, userID)
}

// Pending returns EMITIDA invoices, oldest issue date first.
func (uc *ListInvoicesUseCase) Pending(ctx context.Context) ([]*billing.Invoice, error) {
	return uc.invoiceRepo.FindPending(ctx)
}

// Filtered applies the combined filter; absent criteria mean no constraint.
func (uc *ListInvoicesUseCase) Filtered(ctx context.Context, filter billing.InvoiceFilter) ([]*billing.Invoice, error) {
	return uc.invoiceRepo.FindWithFilter(ctx, filter)
}
