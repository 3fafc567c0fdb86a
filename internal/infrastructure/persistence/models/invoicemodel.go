package models

import (
	"time"

	"github.com/shopspring/decimal"

	"abono/internal/shared/constants"
)

// InvoiceModel represents the database persistence model for invoices.
type InvoiceModel struct {
	ID             uint            `gorm:"primarykey"`
	SubscriptionID uint            `gorm:"not null;index:idx_invoice_subscription"`
	IssueDate      time.Time       `gorm:"not null;index:idx_issue_date"`
	BaseAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TaxAmount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalAmount    decimal.Decimal `gorm:"type:decimal(10,2);not null;index:idx_total"`
	TaxCountry     string          `gorm:"size:2;not null"`
	TaxRate        decimal.Decimal `gorm:"type:decimal(5,2);not null"`
	Status         string          `gorm:"not null;size:10;index:idx_invoice_status"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (InvoiceModel) TableName() string {
	return constants.TableInvoices
}
