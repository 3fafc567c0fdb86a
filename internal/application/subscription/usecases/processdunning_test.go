package usecases

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abono/internal/domain/billing"
	billingvo "abono/internal/domain/billing/valueobjects"
	"abono/internal/domain/subscription"
	vo "abono/internal/domain/subscription/valueobjects"
	"abono/internal/shared/biztime"
)

func pendingInvoice(t *testing.T, id, subscriptionID uint, daysOld int) *billing.Invoice {
	t.Helper()
	issueDate := biztime.Today().AddDate(0, 0, -daysOld)
	invoice, err := billing.ReconstructInvoice(billing.InvoiceReconstructParams{
		ID:             id,
		SubscriptionID: subscriptionID,
		IssueDate:      issueDate,
		BaseAmount:     decimal.RequireFromString("9.99"),
		TaxAmount:      decimal.RequireFromString("2.10"),
		TotalAmount:    decimal.RequireFromString("12.09"),
		TaxCountry:     "ES",
		TaxRate:        decimal.RequireFromString("21.00"),
		Status:         billingvo.InvoiceStatusIssued,
		CreatedAt:      issueDate,
		UpdatedAt:      issueDate,
	})
	require.NoError(t, err)
	return invoice
}

func TestProcessDunningUseCase_FlagsOverdueActive(t *testing.T) {
	sub := testSubscription(t, 1, true, vo.StatusActive)

	invoiceRepo := &mockInvoiceRepository{
		FindPendingFunc: func(ctx context.Context) ([]*billing.Invoice, error) {
			return []*billing.Invoice{pendingInvoice(t, 10, 1, 45)}, nil
		},
	}

	var updated *subscription.Subscription
	subRepo := &mockSubscriptionRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*subscription.Subscription, error) {
			return sub, nil
		},
		UpdateFunc: func(ctx context.Context, s *subscription.Subscription) error {
			updated = s
			return nil
		},
	}

	useCase := NewProcessDunningUseCase(invoiceRepo, subRepo, 30, &mockLogger{})

	flagged, err := useCase.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, flagged)
	require.NotNil(t, updated)
	assert.Equal(t, vo.StatusUnpaid, sub.Status())
}

func TestProcessDunningUseCase_SkipsInvoicesInsideGrace(t *testing.T) {
	invoiceRepo := &mockInvoiceRepository{
		FindPendingFunc: func(ctx context.Context) ([]*billing.Invoice, error) {
			// Oldest first, all within the grace period.
			return []*billing.Invoice{
				pendingInvoice(t, 10, 1, 29),
				pendingInvoice(t, 11, 2, 5),
			}, nil
		},
	}

	subRepo := &mockSubscriptionRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*subscription.Subscription, error) {
			t.Fatal("no subscription lookup expected inside the grace period")
			return nil, nil
		},
	}

	useCase := NewProcessDunningUseCase(invoiceRepo, subRepo, 30, &mockLogger{})

	flagged, err := useCase.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, flagged)
}

func TestProcessDunningUseCase_SkipsNonActiveSubscription(t *testing.T) {
	canceled := testSubscription(t, 1, false, vo.StatusCanceled)
	unpaid := testSubscription(t, 2, true, vo.StatusUnpaid)
	subs := map[uint]*subscription.Subscription{1: canceled, 2: unpaid}

	invoiceRepo := &mockInvoiceRepository{
		FindPendingFunc: func(ctx context.Context) ([]*billing.Invoice, error) {
			return []*billing.Invoice{
				pendingInvoice(t, 10, 1, 60),
				pendingInvoice(t, 11, 2, 50),
			}, nil
		},
	}

	subRepo := &mockSubscriptionRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*subscription.Subscription, error) {
			return subs[id], nil
		},
		UpdateFunc: func(ctx context.Context, s *subscription.Subscription) error {
			t.Fatal("no update expected")
			return nil
		},
	}

	useCase := NewProcessDunningUseCase(invoiceRepo, subRepo, 30, &mockLogger{})

	flagged, err := useCase.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, flagged)
	assert.Equal(t, vo.StatusCanceled, canceled.Status())
	assert.Equal(t, vo.StatusUnpaid, unpaid.Status())
}

func TestProcessDunningUseCase_LookupFailureIsIsolated(t *testing.T) {
	healthy := testSubscription(t, 2, true, vo.StatusActive)

	invoiceRepo := &mockInvoiceRepository{
		FindPendingFunc: func(ctx context.Context) ([]*billing.Invoice, error) {
			return []*billing.Invoice{
				pendingInvoice(t, 10, 1, 60),
				pendingInvoice(t, 11, 2, 50),
			}, nil
		},
	}

	subRepo := &mockSubscriptionRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*subscription.Subscription, error) {
			if id == 1 {
				return nil, errors.New("read failed")
			}
			return healthy, nil
		},
	}

	useCase := NewProcessDunningUseCase(invoiceRepo, subRepo, 30, &mockLogger{})

	flagged, err := useCase.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, flagged)
	assert.Equal(t, vo.StatusUnpaid, healthy.Status())
}

func TestProcessDunningUseCase_ExactGraceBoundary(t *testing.T) {
	// An invoice issued exactly graceDays ago is not yet overdue; the
	// cutoff is strictly more than the grace period.
	invoiceRepo := &mockInvoiceRepository{
		FindPendingFunc: func(ctx context.Context) ([]*billing.Invoice, error) {
			return []*billing.Invoice{pendingInvoice(t, 10, 1, 30)}, nil
		},
	}

	useCase := NewProcessDunningUseCase(invoiceRepo, &mockSubscriptionRepository{}, 30, &mockLogger{})

	flagged, err := useCase.Execute(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 0, flagged)
}
