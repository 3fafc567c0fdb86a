package models

import (
	"time"

	"github.com/shopspring/decimal"

	"abono/internal/shared/constants"
)

// PlanModel represents the database persistence model for plans.
type PlanModel struct {
	ID           uint            `gorm:"primarykey"`
	Type         string          `gorm:"uniqueIndex;not null;size:20"`
	Name         string          `gorm:"not null;size:100"`
	MonthlyPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt    time.Time
}

// TableName specifies the table name for GORM
func (PlanModel) TableName() string {
	return constants.TablePlans
}
