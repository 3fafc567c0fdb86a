package models

import (
	"time"

	"github.com/shopspring/decimal"

	"abono/internal/shared/constants"
)

// PaymentModel represents the database persistence model for payments.
// One row per settled invoice; the method column selects which of the
// provider-specific columns are meaningful.
type PaymentModel struct {
	ID        uint            `gorm:"primarykey"`
	InvoiceID uint            `gorm:"uniqueIndex;not null"`
	Method    string          `gorm:"not null;size:20"`
	Amount    decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	PaidAt    time.Time       `gorm:"not null"`

	// card
	CardLast4 string `gorm:"size:4"`
	CardBrand string `gorm:"size:20"`

	// paypal
	PayPalEmail   string `gorm:"size:255"`
	TransactionID string `gorm:"size:100"`

	// bank transfer
	IBAN      string `gorm:"size:34"`
	Reference string `gorm:"size:100"`

	CreatedAt time.Time
}

// TableName specifies the table name for GORM
func (PaymentModel) TableName() string {
	return constants.TablePayments
}
