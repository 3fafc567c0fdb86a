package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	vo "abono/internal/domain/billing/valueobjects"
)

// Invoice is one billing event for one subscription cycle, carrying the
// tax computed at issue time. Lifecycle: EMITIDA, then at most one of
// PAGADA or ANULADA.
type Invoice struct {
	id             uint
	subscriptionID uint
	issueDate      time.Time
	baseAmount     decimal.Decimal
	taxAmount      decimal.Decimal
	totalAmount    decimal.Decimal
	taxCountry     string
	taxRate        decimal.Decimal
	status         vo.InvoiceStatus
	payment        *Payment
	createdAt      time.Time
	updatedAt      time.Time
}

// NewInvoice issues an invoice for a subscription from a computed tax
// breakdown. The invoice starts in EMITIDA.
func NewInvoice(subscriptionID uint, issueDate time.Time, detail TaxDetail) (*Invoice, error) {
	if subscriptionID == 0 {
		return nil, fmt.Errorf("subscription ID is required")
	}
	if detail.Base.IsNegative() {
		return nil, fmt.Errorf("base amount cannot be negative")
	}

	now := time.Now().UTC()
	return &Invoice{
		subscriptionID: subscriptionID,
		issueDate:      issueDate,
		baseAmount:     detail.Base,
		taxAmount:      detail.Tax,
		totalAmount:    detail.Total,
		taxCountry:     detail.Country,
		taxRate:        detail.RatePercent,
		status:         vo.InvoiceStatusIssued,
		createdAt:      now,
		updatedAt:      now,
	}, nil
}

// InvoiceReconstructParams carries persisted state back into the aggregate.
type InvoiceReconstructParams struct {
	ID             uint
	SubscriptionID uint
	IssueDate      time.Time
	BaseAmount     decimal.Decimal
	TaxAmount      decimal.Decimal
	TotalAmount    decimal.Decimal
	TaxCountry     string
	TaxRate        decimal.Decimal
	Status         vo.InvoiceStatus
	Payment        *Payment
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ReconstructInvoice rebuilds an invoice from persistence.
func ReconstructInvoice(p InvoiceReconstructParams) (*Invoice, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("invoice ID cannot be zero")
	}
	if p.SubscriptionID == 0 {
		return nil, fmt.Errorf("subscription ID is required")
	}
	if !vo.ValidInvoiceStatuses[p.Status] {
		return nil, fmt.Errorf("invalid invoice status: %s", p.Status)
	}

	return &Invoice{
		id:             p.ID,
		subscriptionID: p.SubscriptionID,
		issueDate:      p.IssueDate,
		baseAmount:     p.BaseAmount,
		taxAmount:      p.TaxAmount,
		totalAmount:    p.TotalAmount,
		taxCountry:     p.TaxCountry,
		taxRate:        p.TaxRate,
		status:         p.Status,
		payment:        p.Payment,
		createdAt:      p.CreatedAt,
		updatedAt:      p.UpdatedAt,
	}, nil
}

func (i *Invoice) ID() uint                      { return i.id }
func (i *Invoice) SubscriptionID() uint          { return i.subscriptionID }
func (i *Invoice) IssueDate() time.Time          { return i.issueDate }
func (i *Invoice) BaseAmount() decimal.Decimal   { return i.baseAmount }
func (i *Invoice) TaxAmount() decimal.Decimal    { return i.taxAmount }
func (i *Invoice) TotalAmount() decimal.Decimal  { return i.totalAmount }
func (i *Invoice) TaxCountry() string            { return i.taxCountry }
func (i *Invoice) TaxRate() decimal.Decimal      { return i.taxRate }
func (i *Invoice) Status() vo.InvoiceStatus      { return i.status }
func (i *Invoice) Payment() *Payment             { return i.payment }
func (i *Invoice) CreatedAt() time.Time          { return i.createdAt }
func (i *Invoice) UpdatedAt() time.Time          { return i.updatedAt }

// SetID assigns the storage identifier after insertion.
func (i *Invoice) SetID(id uint) error {
	if i.id != 0 {
		return fmt.Errorf("invoice ID already set")
	}
	if id == 0 {
		return fmt.Errorf("invoice ID cannot be zero")
	}
	i.id = id
	return nil
}

// MarkPaid sets the invoice to PAGADA. The transition is applied
// unconditionally: re-marking a paid invoice is a harmless re-apply, and
// callers must not rely on exactly-once semantics.
func (i *Invoice) MarkPaid() {
	i.status = vo.InvoiceStatusPaid
	i.updatedAt = time.Now().UTC()
}

// Void sets the invoice to ANULADA. Nothing currently prevents voiding a
// paid invoice.
func (i *Invoice) Void() {
	i.status = vo.InvoiceStatusVoid
	i.updatedAt = time.Now().UTC()
}

// Reprice recomputes tax, total, country and rate against the original
// base amount. Issue date and status are untouched.
func (i *Invoice) Reprice(detail TaxDetail) {
	i.taxAmount = detail.Tax
	i.totalAmount = detail.Total
	i.taxCountry = detail.Country
	i.taxRate = detail.RatePercent
	i.updatedAt = time.Now().UTC()
}

// AttachPayment records the payment that settled this invoice. An invoice
// holds at most one payment, and only once it is PAGADA.
func (i *Invoice) AttachPayment(p *Payment) error {
	if i.status != vo.InvoiceStatusPaid {
		return fmt.Errorf("%w: invoice is %s", ErrInvoiceNotPaid, i.status)
	}
	if i.payment != nil {
		return ErrInvoiceHasPayment
	}
	i.payment = p
	i.updatedAt = time.Now().UTC()
	return nil
}
