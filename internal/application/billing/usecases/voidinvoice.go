package usecases

import (
	"context"
	"fmt"

	"abono/internal/domain/billing"
	apperrors "abono/internal/shared/errors"
	"abono/internal/shared/logger"
)

// VoidInvoiceUseCase transitions an invoice to ANULADA. Nothing currently
// guards against voiding an already-paid invoice.
type VoidInvoiceUseCase struct {
	invoiceRepo billing.InvoiceRepository
	logger      logger.Interface
}

func NewVoidInvoiceUseCase(invoiceRepo billing.InvoiceRepository, logger logger.Interface) *VoidInvoiceUseCase {
	return &VoidInvoiceUseCase{
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

func (uc *VoidInvoiceUseCase) Execute(ctx context.Context, invoiceID uint) (*billing.Invoice, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if invoice == nil {
		return nil, apperrors.NewNotFoundError("invoice not found", fmt.Sprintf("id=%d", invoiceID))
	}

	invoice.Void()

	if err := uc.invoiceRepo.Update(ctx, invoice); err != nil {
		uc.logger.Errorw("failed to update invoice", "error", err, "invoice_id", invoiceID)
		return nil, fmt.Errorf("failed to update invoice: %w", err)
	}

	uc.logger.Infow("invoice voided", "invoice_id", invoiceID)
	return invoice, nil
}
