package models

import (
	"time"

	"abono/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for
// subscriptions. This is the anti-corruption layer between domain and
// database.
type SubscriptionModel struct {
	ID              uint      `gorm:"primarykey"`
	UserID          uint      `gorm:"not null;index:idx_user_subscription"`
	PlanID          uint      `gorm:"not null;index:idx_plan_subscription"`
	Status          string    `gorm:"not null;size:25;index:idx_status"`
	StartDate       time.Time `gorm:"not null"`
	EndDate         *time.Time `gorm:"index:idx_end_date"`
	AutoRenew       bool      `gorm:"default:false"`
	NextRenewalDate *time.Time `gorm:"index:idx_next_renewal"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}
