package usecases

import (
	"context"
	"fmt"

	"abono/internal/domain/billing"
	apperrors "abono/internal/shared/errors"
	"abono/internal/shared/logger"
)

type RepriceInvoiceCommand struct {
	InvoiceID  uint
	NewCountry string
}

// RepriceInvoiceUseCase recomputes an invoice's tax, total, country and
// rate against its original base amount. Issue date and status stay as
// they are.
type RepriceInvoiceUseCase struct {
	invoiceRepo billing.InvoiceRepository
	tax         *billing.TaxCalculator
	logger      logger.Interface
}

func NewRepriceInvoiceUseCase(
	invoiceRepo billing.InvoiceRepository,
	tax *billing.TaxCalculator,
	logger logger.Interface,
) *RepriceInvoiceUseCase {
	return &RepriceInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		tax:         tax,
		logger:      logger,
	}
}

func (uc *RepriceInvoiceUseCase) Execute(ctx context.Context, cmd RepriceInvoiceCommand) (*billing.Invoice, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, cmd.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if invoice == nil {
		return nil, apperrors.NewNotFoundError("invoice not found", fmt.Sprintf("id=%d", cmd.InvoiceID))
	}

	detail := uc.tax.Detail(invoice.BaseAmount(), cmd.NewCountry)
	invoice.Reprice(detail)

	if err := uc.invoiceRepo.Update(ctx, invoice); err != nil {
		uc.logger.Errorw("failed to update invoice", "error", err, "invoice_id", cmd.InvoiceID)
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	uc.logger.Infow("invoice repriced",
		"invoice_id", cmd.InvoiceID,
		"country", cmd.NewCountry,
		"tax_rate", detail.RatePercent,
	)
	return invoice, nil
}
