package usecases

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"abono/internal/domain/billing"
	vo "abono/internal/domain/billing/valueobjects"
	"abono/internal/shared/logger"
)

// InvoiceStats aggregates the billing dashboard figures.
type InvoiceStats struct {
	TotalBilled  decimal.Decimal
	TotalTax     decimal.Decimal
	PaidCount    int
	PendingCount int
	VoidCount    int
}

type InvoiceStatsUseCase struct {
	invoiceRepo billing.InvoiceRepository
	logger      logger.Interface
}

func NewInvoiceStatsUseCase(invoiceRepo billing.InvoiceRepository, logger logger.Interface) *InvoiceStatsUseCase {
	return &InvoiceStatsUseCase{
		invoiceRepo: invoiceRepo,
		logger:      logger,
	}
}

func (uc *InvoiceStatsUseCase) Execute(ctx context.Context) (InvoiceStats, error) {
	invoices, err := uc.invoiceRepo.ListAll(ctx)
	if err != nil {
		return InvoiceStats{}, fmt.Errorf("failed to list invoices: %w", err)
	}

	stats := InvoiceStats{
		TotalBilled: decimal.Zero,
		TotalTax:    decimal.Zero,
	}
	for _, invoice := range invoices {
		stats.TotalBilled = stats.TotalBilled.Add(invoice.TotalAmount())
		stats.TotalTax = stats.TotalTax.Add(invoice.TaxAmount())
		switch invoice.Status() {
		case vo.InvoiceStatusPaid:
			stats.PaidCount++
		case vo.InvoiceStatusIssued:
			stats.PendingCount++
		case vo.InvoiceStatusVoid:
			stats.VoidCount++
		}
	}

	return stats, nil
}
