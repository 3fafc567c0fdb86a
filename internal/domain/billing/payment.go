package billing

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	vo "abono/internal/domain/billing/valueobjects"
)

// Payment is a passive ledger entry recording how an invoice was settled.
// It is a tagged variant over one record: the method selects which of the
// provider-specific fields are meaningful. Payments are created once, when
// the invoice is paid, and never mutated.
type Payment struct {
	id        uint
	invoiceID uint
	method    vo.PaymentMethod
	amount    decimal.Decimal
	paidAt    time.Time

	// card
	cardLast4 string
	cardBrand string

	// paypal
	paypalEmail   string
	transactionID string

	// bank transfer
	iban      string
	reference string
}

// NewCardPayment records a card settlement (masked digits plus brand).
func NewCardPayment(invoiceID uint, amount decimal.Decimal, paidAt time.Time, last4, brand string) (*Payment, error) {
	p, err := newPayment(invoiceID, vo.PaymentMethodCard, amount, paidAt)
	if err != nil {
		return nil, err
	}
	if len(last4) != 4 {
		return nil, fmt.Errorf("card last4 must be exactly 4 digits")
	}
	p.cardLast4 = last4
	p.cardBrand = brand
	return p, nil
}

// NewPayPalPayment records a PayPal settlement.
func NewPayPalPayment(invoiceID uint, amount decimal.Decimal, paidAt time.Time, email, transactionID string) (*Payment, error) {
	p, err := newPayment(invoiceID, vo.PaymentMethodPayPal, amount, paidAt)
	if err != nil {
		return nil, err
	}
	if email == "" {
		return nil, fmt.Errorf("paypal email is required")
	}
	p.paypalEmail = email
	p.transactionID = transactionID
	return p, nil
}

// NewBankTransferPayment records a bank-transfer settlement.
func NewBankTransferPayment(invoiceID uint, amount decimal.Decimal, paidAt time.Time, iban, reference string) (*Payment, error) {
	p, err := newPayment(invoiceID, vo.PaymentMethodBankTransfer, amount, paidAt)
	if err != nil {
		return nil, err
	}
	if iban == "" {
		return nil, fmt.Errorf("iban is required")
	}
	p.iban = iban
	p.reference = reference
	return p, nil
}

func newPayment(invoiceID uint, method vo.PaymentMethod, amount decimal.Decimal, paidAt time.Time) (*Payment, error) {
	if invoiceID == 0 {
		return nil, fmt.Errorf("invoice ID is required")
	}
	if !amount.IsPositive() {
		return nil, fmt.Errorf("payment amount must be positive")
	}
	return &Payment{
		invoiceID: invoiceID,
		method:    method,
		amount:    amount,
		paidAt:    paidAt,
	}, nil
}

// PaymentReconstructParams carries persisted state back into the record.
type PaymentReconstructParams struct {
	ID            uint
	InvoiceID     uint
	Method        vo.PaymentMethod
	Amount        decimal.Decimal
	PaidAt        time.Time
	CardLast4     string
	CardBrand     string
	PayPalEmail   string
	TransactionID string
	IBAN          string
	Reference     string
}

// ReconstructPayment rebuilds a payment from persistence.
func ReconstructPayment(p PaymentReconstructParams) (*Payment, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("payment ID cannot be zero")
	}
	if !p.Method.IsValid() {
		return nil, fmt.Errorf("invalid payment method: %s", p.Method)
	}
	return &Payment{
		id:            p.ID,
		invoiceID:     p.InvoiceID,
		method:        p.Method,
		amount:        p.Amount,
		paidAt:        p.PaidAt,
		cardLast4:     p.CardLast4,
		cardBrand:     p.CardBrand,
		paypalEmail:   p.PayPalEmail,
		transactionID: p.TransactionID,
		iban:          p.IBAN,
		reference:     p.Reference,
	}, nil
}

func (p *Payment) ID() uint                  { return p.id }
func (p *Payment) InvoiceID() uint           { return p.invoiceID }
func (p *Payment) Method() vo.PaymentMethod  { return p.method }
func (p *Payment) Amount() decimal.Decimal   { return p.amount }
func (p *Payment) PaidAt() time.Time         { return p.paidAt }
func (p *Payment) CardLast4() string         { return p.cardLast4 }
func (p *Payment) CardBrand() string         { return p.cardBrand }
func (p *Payment) PayPalEmail() string       { return p.paypalEmail }
func (p *Payment) TransactionID() string     { return p.transactionID }
func (p *Payment) IBAN() string              { return p.iban }
func (p *Payment) Reference() string         { return p.reference }

// SetID assigns the storage identifier after insertion.
func (p *Payment) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("payment ID already set")
	}
	if id == 0 {
		return fmt.Errorf("payment ID cannot be zero")
	}
	p.id = id
	return nil
}

// Describe renders a short human-readable settlement description,
// switching on the method tag.
func (p *Payment) Describe() string {
	switch p.method {
	case vo.PaymentMethodCard:
		return fmt.Sprintf("%s ****%s", p.cardBrand, p.cardLast4)
	case vo.PaymentMethodPayPal:
		return fmt.Sprintf("paypal %s", p.paypalEmail)
	case vo.PaymentMethodBankTransfer:
		return fmt.Sprintf("transfer %s", p.reference)
	default:
		return string(p.method)
	}
}
