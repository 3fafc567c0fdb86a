package seeds

import (
	"fmt"

	"gorm.io/gorm"

	"abono/internal/domain/billing"
	"abono/internal/infrastructure/persistence/models"
	"abono/internal/shared/biztime"
)

type demoUser struct {
	email     string
	name      string
	country   string
	planType  string
	autoRenew bool
}

// SeedDemoData creates a handful of demo users, each with an active
// subscription and its first invoice. Intended for development databases;
// the seed is skipped entirely when any user already exists.
func SeedDemoData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.UserModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	users := []demoUser{
		{email: "carlos@ejemplo.com", name: "Carlos García", country: "ES", planType: "PREMIUM", autoRenew: true},
		{email: "anna@beispiel.de", name: "Anna Müller", country: "DE", planType: "BASIC", autoRenew: true},
		{email: "pierre@exemple.fr", name: "Pierre Dupont", country: "FR", planType: "PREMIUM", autoRenew: false},
		{email: "maria@ejemplo.mx", name: "María López", country: "MX", planType: "ENTERPRISE", autoRenew: true},
		{email: "john@example.com", name: "John Smith", country: "US", planType: "BASIC", autoRenew: true},
	}

	tax := billing.NewDefaultTaxCalculator()
	today := biztime.Today()

	return db.Transaction(func(tx *gorm.DB) error {
		for _, du := range users {
			var plan models.PlanModel
			if err := tx.Where("type = ?", du.planType).First(&plan).Error; err != nil {
				return fmt.Errorf("plan %s not seeded: %w", du.planType, err)
			}

			userModel := models.UserModel{
				Email:   du.email,
				Name:    du.name,
				Country: du.country,
			}
			if err := tx.Create(&userModel).Error; err != nil {
				return err
			}

			next := biztime.AddMonths(today, 1)
			subModel := models.SubscriptionModel{
				UserID:          userModel.ID,
				PlanID:          plan.ID,
				Status:          "ACTIVA",
				StartDate:       today,
				AutoRenew:       du.autoRenew,
				NextRenewalDate: &next,
			}
			if err := tx.Create(&subModel).Error; err != nil {
				return err
			}

			detail := tax.Detail(plan.MonthlyPrice, du.country)
			invoiceModel := models.InvoiceModel{
				SubscriptionID: subModel.ID,
				IssueDate:      today,
				BaseAmount:     detail.Base,
				TaxAmount:      detail.Tax,
				TotalAmount:    detail.Total,
				TaxCountry:     du.country,
				TaxRate:        detail.RatePercent,
				Status:         "EMITIDA",
			}
			if err := tx.Create(&invoiceModel).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
