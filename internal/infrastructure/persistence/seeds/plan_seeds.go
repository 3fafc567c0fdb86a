package seeds

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"abono/internal/infrastructure/persistence/models"
)

// SeedPlans seeds the plans table with the three standard tiers. Existing
// rows are left untouched so re-running the seed is safe.
func SeedPlans(db *gorm.DB) error {
	plans := []models.PlanModel{
		{
			Type:         "BASIC",
			Name:         "Basic",
			MonthlyPrice: decimal.RequireFromString("9.99"),
		},
		{
			Type:         "PREMIUM",
			Name:         "Premium",
			MonthlyPrice: decimal.RequireFromString("19.99"),
		},
		{
			Type:         "ENTERPRISE",
			Name:         "Enterprise",
			MonthlyPrice: decimal.RequireFromString("49.99"),
		},
	}

	for _, plan := range plans {
		var count int64
		if err := db.Model(&models.PlanModel{}).Where("type = ?", plan.Type).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}
		if err := db.Create(&plan).Error; err != nil {
			return err
		}
	}

	return nil
}
