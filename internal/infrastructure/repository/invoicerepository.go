package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"abono/internal/domain/billing"
	vo "abono/internal/domain/billing/valueobjects"
	"abono/internal/infrastructure/persistence/models"
	"abono/internal/shared/constants"
	"abono/internal/shared/db"
	"abono/internal/shared/logger"
)

type InvoiceRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewInvoiceRepository(gormDB *gorm.DB, logger logger.Interface) billing.InvoiceRepository {
	return &InvoiceRepositoryImpl{
		db:     gormDB,
		logger: logger,
	}
}

// Create persists the invoice, joining a transaction carried in the
// context (first-invoice issue commits with the subscription sign-up).
func (r *InvoiceRepositoryImpl) Create(ctx context.Context, invoice *billing.Invoice) error {
	model := r.toModel(invoice)

	if err := db.FromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create invoice", "error", err, "subscription_id", invoice.SubscriptionID())
		return fmt.Errorf("failed to create invoice: %w", err)
	}

	return invoice.SetID(model.ID)
}

// GetByID loads the invoice together with its payment, when one exists.
func (r *InvoiceRepositoryImpl) GetByID(ctx context.Context, id uint) (*billing.Invoice, error) {
	var model models.InvoiceModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get invoice by ID", "error", err, "invoice_id", id)
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}

	payment, err := r.loadPayment(ctx, model.ID)
	if err != nil {
		return nil, err
	}

	return r.toEntity(&model, payment)
}

func (r *InvoiceRepositoryImpl) Update(ctx context.Context, invoice *billing.Invoice) error {
	result := db.FromContext(ctx, r.db).Model(&models.InvoiceModel{}).
		Where("id = ?", invoice.ID()).
		Updates(map[string]interface{}{
			"tax_amount":   invoice.TaxAmount(),
			"total_amount": invoice.TotalAmount(),
			"tax_country":  invoice.TaxCountry(),
			"tax_rate":     invoice.TaxRate(),
			"status":       string(invoice.Status()),
			"updated_at":   invoice.UpdatedAt(),
		})
	if result.Error != nil {
		r.logger.Errorw("failed to update invoice", "error", result.Error, "invoice_id", invoice.ID())
		return fmt.Errorf("failed to update invoice: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return billing.ErrInvoiceNotFound
	}

	return nil
}

// List queries skip payment loading; callers needing the settlement
// detail fetch a single invoice by ID.

// ListAll returns every invoice newest issue date first.
func (r *InvoiceRepositoryImpl) ListAll(ctx context.Context) ([]*billing.Invoice, error) {
	return r.findModels(ctx, r.db.WithContext(ctx).Order("issue_date DESC"))
}

func (r *InvoiceRepositoryImpl) FindByIssueDateBetween(ctx context.Context, from, to time.Time) ([]*billing.Invoice, error) {
	query := r.db.WithContext(ctx).
		Where("issue_date BETWEEN ? AND ?", from, to).
		Order("issue_date ASC")
	return r.findModels(ctx, query)
}

func (r *InvoiceRepositoryImpl) FindByTotalBetween(ctx context.Context, min, max decimal.Decimal) ([]*billing.Invoice, error) {
	query := r.db.WithContext(ctx).
		Where("total_amount BETWEEN ? AND ?", min, max).
		Order("total_amount ASC")
	return r.findModels(ctx, query)
}

func (r *InvoiceRepositoryImpl) FindByStatus(ctx context.Context, status vo.InvoiceStatus) ([]*billing.Invoice, error) {
	query := r.db.WithContext(ctx).
		Where("status = ?", string(status)).
		Order("id ASC")
	return r.findModels(ctx, query)
}

func (r *InvoiceRepositoryImpl) FindByUserID(ctx context.Context, userID uint) ([]*billing.Invoice, error) {
	query := r.db.WithContext(ctx).
		Joins(fmt.Sprintf("JOIN %s s ON s.id = %s.subscription_id", constants.TableSubscriptions, constants.TableInvoices)).
		Where("s.user_id = ?", userID).
		Order("invoices.id ASC")
	return r.findModels(ctx, query)
}

func (r *InvoiceRepositoryImpl) FindWithFilter(ctx context.Context, filter billing.InvoiceFilter) ([]*billing.Invoice, error) {
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{})

	if filter.UserID != nil {
		query = query.
			Joins(fmt.Sprintf("JOIN %s s ON s.id = %s.subscription_id", constants.TableSubscriptions, constants.TableInvoices)).
			Where("s.user_id = ?", *filter.UserID)
	}
	if filter.IssuedFrom != nil {
		query = query.Where("issue_date >= ?", *filter.IssuedFrom)
	}
	if filter.IssuedTo != nil {
		query = query.Where("issue_date <= ?", *filter.IssuedTo)
	}
	if filter.MinTotal != nil {
		query = query.Where("total_amount >= ?", *filter.MinTotal)
	}
	if filter.MaxTotal != nil {
		query = query.Where("total_amount <= ?", *filter.MaxTotal)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", string(*filter.Status))
	}

	return r.findModels(ctx, query.Order("invoices.id ASC"))
}

func (r *InvoiceRepositoryImpl) FindPending(ctx context.Context) ([]*billing.Invoice, error) {
	query := r.db.WithContext(ctx).
		Where("status = ?", string(vo.InvoiceStatusIssued)).
		Order("issue_date ASC")
	return r.findModels(ctx, query)
}

func (r *InvoiceRepositoryImpl) findModels(ctx context.Context, query *gorm.DB) ([]*billing.Invoice, error) {
	var invoiceModels []*models.InvoiceModel
	if err := query.Find(&invoiceModels).Error; err != nil {
		r.logger.Errorw("failed to query invoices", "error", err)
		return nil, fmt.Errorf("failed to query invoices: %w", err)
	}

	invoices := make([]*billing.Invoice, 0, len(invoiceModels))
	for _, model := range invoiceModels {
		invoice, err := r.toEntity(model, nil)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, invoice)
	}
	return invoices, nil
}

func (r *InvoiceRepositoryImpl) loadPayment(ctx context.Context, invoiceID uint) (*billing.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).Where("invoice_id = ?", invoiceID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to load payment for invoice", "error", err, "invoice_id", invoiceID)
		return nil, fmt.Errorf("failed to load payment: %w", err)
	}

	return paymentToEntity(&model)
}

func (r *InvoiceRepositoryImpl) toModel(invoice *billing.Invoice) *models.InvoiceModel {
	return &models.InvoiceModel{
		ID:             invoice.ID(),
		SubscriptionID: invoice.SubscriptionID(),
		IssueDate:      invoice.IssueDate(),
		BaseAmount:     invoice.BaseAmount(),
		TaxAmount:      invoice.TaxAmount(),
		TotalAmount:    invoice.TotalAmount(),
		TaxCountry:     invoice.TaxCountry(),
		TaxRate:        invoice.TaxRate(),
		Status:         string(invoice.Status()),
		CreatedAt:      invoice.CreatedAt(),
		UpdatedAt:      invoice.UpdatedAt(),
	}
}

func (r *InvoiceRepositoryImpl) toEntity(model *models.InvoiceModel, payment *billing.Payment) (*billing.Invoice, error) {
	return billing.ReconstructInvoice(billing.InvoiceReconstructParams{
		ID:             model.ID,
		SubscriptionID: model.SubscriptionID,
		IssueDate:      model.IssueDate,
		BaseAmount:     model.BaseAmount,
		TaxAmount:      model.TaxAmount,
		TotalAmount:    model.TotalAmount,
		TaxCountry:     model.TaxCountry,
		TaxRate:        model.TaxRate,
		Status:         vo.InvoiceStatus(model.Status),
		Payment:        payment,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	})
}
