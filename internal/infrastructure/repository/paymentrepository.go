package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"abono/internal/domain/billing"
	vo "abono/internal/domain/billing/valueobjects"
	"abono/internal/infrastructure/persistence/models"
	"abono/internal/shared/db"
	"abono/internal/shared/logger"
)

type PaymentRepositoryImpl struct {
	db     *gorm.DB
	logger logger.Interface
}

func NewPaymentRepository(gormDB *gorm.DB, logger logger.Interface) billing.PaymentRepository {
	return &PaymentRepositoryImpl{
		db:     gormDB,
		logger: logger,
	}
}

// Create persists the payment, joining a transaction carried in the
// context so it commits or rolls back with the invoice transition.
func (r *PaymentRepositoryImpl) Create(ctx context.Context, payment *billing.Payment) error {
	model := r.toModel(payment)

	if err := db.FromContext(ctx, r.db).Create(model).Error; err != nil {
		r.logger.Errorw("failed to create payment", "error", err, "invoice_id", payment.InvoiceID())
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return payment.SetID(model.ID)
}

func (r *PaymentRepositoryImpl) GetByInvoiceID(ctx context.Context, invoiceID uint) (*billing.Payment, error) {
	var model models.PaymentModel
	if err := db.FromContext(ctx, r.db).Where("invoice_id = ?", invoiceID).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		r.logger.Errorw("failed to get payment by invoice", "error", err, "invoice_id", invoiceID)
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return paymentToEntity(&model)
}

func (r *PaymentRepositoryImpl) toModel(payment *billing.Payment) *models.PaymentModel {
	return &models.PaymentModel{
		ID:            payment.ID(),
		InvoiceID:     payment.InvoiceID(),
		Method:        string(payment.Method()),
		Amount:        payment.Amount(),
		PaidAt:        payment.PaidAt(),
		CardLast4:     payment.CardLast4(),
		CardBrand:     payment.CardBrand(),
		PayPalEmail:   payment.PayPalEmail(),
		TransactionID: payment.TransactionID(),
		IBAN:          payment.IBAN(),
		Reference:     payment.Reference(),
	}
}

// paymentToEntity is shared with the invoice repository, which loads the
// settlement alongside single-invoice reads.
func paymentToEntity(model *models.PaymentModel) (*billing.Payment, error) {
	return billing.ReconstructPayment(billing.PaymentReconstructParams{
		ID:            model.ID,
		InvoiceID:     model.InvoiceID,
		Method:        vo.PaymentMethod(model.Method),
		Amount:        model.Amount,
		PaidAt:        model.PaidAt,
		CardLast4:     model.CardLast4,
		CardBrand:     model.CardBrand,
		PayPalEmail:   model.PayPalEmail,
		TransactionID: model.TransactionID,
		IBAN:          model.IBAN,
		Reference:     model.Reference,
	})
}
