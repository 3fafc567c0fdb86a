package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	vo "abono/internal/domain/billing/valueobjects"
)

// InvoiceFilter combines optional query criteria; every nil field means
// "no constraint" and present criteria are ANDed together.
type InvoiceFilter struct {
	IssuedFrom *time.Time
	IssuedTo   *time.Time
	MinTotal   *decimal.Decimal
	MaxTotal   *decimal.Decimal
	Status     *vo.InvoiceStatus
	UserID     *uint
}

type InvoiceRepository interface {
	Create(ctx context.Context, invoice *Invoice) error
	GetByID(ctx context.Context, id uint) (*Invoice, error)
	Update(ctx context.Context, invoice *Invoice) error

	ListAll(ctx context.Context) ([]*Invoice, error)
	FindByIssueDateBetween(ctx context.Context, from, to time.Time) ([]*Invoice, error)
	FindByTotalBetween(ctx context.Context, min, max decimal.Decimal) ([]*Invoice, error)
	FindByStatus(ctx context.Context, status vo.InvoiceStatus) ([]*Invoice, error)
	FindByUserID(ctx context.Context, userID uint) ([]*Invoice, error)
	FindWithFilter(ctx context.Context, filter InvoiceFilter) ([]*Invoice, error)

	// FindPending returns EMITIDA invoices ordered by issue date ascending,
	// the scan order the dunning job depends on.
	FindPending(ctx context.Context) ([]*Invoice, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	GetByInvoiceID(ctx context.Context, invoiceID uint) (*Payment, error)
}
