package usecases

import (
	"context"
	"fmt"

	"abono/internal/domain/billing"
	vo "abono/internal/domain/billing/valueobjects"
	"abono/internal/shared/biztime"
	apperrors "abono/internal/shared/errors"
	"abono/internal/shared/logger"
)

// PaymentDetails carries the settlement data for the payment variant
// recorded alongside the paid invoice. Only the fields of the selected
// method are read.
type PaymentDetails struct {
	Method        vo.PaymentMethod
	CardLast4     string
	CardBrand     string
	PayPalEmail   string
	TransactionID string
	IBAN          string
	Reference     string
}

type MarkInvoicePaidCommand struct {
	InvoiceID uint
	// Payment is optional; when present a payment ledger entry is created
	// for the invoice's total amount.
	Payment *PaymentDetails
}

// MarkInvoicePaidUseCase transitions an invoice to PAGADA and optionally
// records the payment that settled it. The transition itself is not
// idempotence-guarded: re-marking a paid invoice re-applies the set.
type MarkInvoicePaidUseCase struct {
	invoiceRepo billing.InvoiceRepository
	paymentRepo billing.PaymentRepository
	tx          TransactionRunner
	logger      logger.Interface
}

func NewMarkInvoicePaidUseCase(
	invoiceRepo billing.InvoiceRepository,
	paymentRepo billing.PaymentRepository,
	tx TransactionRunner,
	logger logger.Interface,
) *MarkInvoicePaidUseCase {
	return &MarkInvoicePaidUseCase{
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
		tx:          tx,
		logger:      logger,
	}
}

func (uc *MarkInvoicePaidUseCase) Execute(ctx context.Context, cmd MarkInvoicePaidCommand) (*billing.Invoice, error) {
	invoice, err := uc.invoiceRepo.GetByID(ctx, cmd.InvoiceID)
	if err != nil {
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	if invoice == nil {
		return nil, apperrors.NewNotFoundError("invoice not found", fmt.Sprintf("id=%d", cmd.InvoiceID))
	}

	invoice.MarkPaid()

	var payment *billing.Payment
	if cmd.Payment != nil {
		payment, err = buildPayment(invoice, *cmd.Payment)
		if err != nil {
			return nil, err
		}
		if err := invoice.AttachPayment(payment); err != nil {
			return nil, fmt.Errorf("failed to attach payment: %w", err)
		}
	}

	// The payment row and the status transition commit or roll back
	// together.
	err = uc.tx.RunInTransaction(ctx, func(ctx context.Context) error {
		if payment != nil {
			if err := uc.paymentRepo.Create(ctx, payment); err != nil {
				return fmt.Errorf("failed to persist payment: %w", err)
			}
		}
		if err := uc.invoiceRepo.Update(ctx, invoice); err != nil {
			return fmt.Errorf("failed to update invoice: %w", err)
		}
		return nil
	})
	if err != nil {
		uc.logger.Errorw("failed to mark invoice paid", "error", err, "invoice_id", invoice.ID())
		return nil, err
	}

	uc.logger.Infow("invoice marked paid", "invoice_id", invoice.ID())
	return invoice, nil
}

func buildPayment(invoice *billing.Invoice, details PaymentDetails) (*billing.Payment, error) {
	paidAt := biztime.NowUTC()
	amount := invoice.TotalAmount()

	switch details.Method {
	case vo.PaymentMethodCard:
		return billing.NewCardPayment(invoice.ID(), amount, paidAt, details.CardLast4, details.CardBrand)
	case vo.PaymentMethodPayPal:
		return billing.NewPayPalPayment(invoice.ID(), amount, paidAt, details.PayPalEmail, details.TransactionID)
	case vo.PaymentMethodBankTransfer:
		return billing.NewBankTransferPayment(invoice.ID(), amount, paidAt, details.IBAN, details.Reference)
	default:
		return nil, fmt.Errorf("invalid payment method: %s", details.Method)
	}
}
