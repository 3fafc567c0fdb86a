package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"abono/internal/domain/billing"
	"abono/internal/domain/subscription"
	vo "abono/internal/domain/subscription/valueobjects"
	"abono/internal/domain/user"
	"abono/internal/shared/biztime"
	apperrors "abono/internal/shared/errors"
)

func testOwner(t *testing.T) *user.User {
	t.Helper()
	u, err := user.ReconstructUser(5, "ana@example.com", "Ana", "ES", time.Now(), time.Now())
	require.NoError(t, err)
	return u
}

func testPlan(t *testing.T, id uint) *subscription.Plan {
	t.Helper()
	plan, err := subscription.ReconstructPlan(id, vo.PlanTypeBasic, "Basic", decimal.RequireFromString("9.99"), time.Now())
	require.NoError(t, err)
	return plan
}

func TestCreateSubscriptionUseCase_StartsActiveToday(t *testing.T) {
	userRepo := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return testOwner(t), nil
		},
	}
	planRepo := &mockPlanRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*subscription.Plan, error) {
			return testPlan(t, id), nil
		},
	}

	var created *subscription.Subscription
	subRepo := &mockSubscriptionRepository{
		CreateFunc: func(ctx context.Context, s *subscription.Subscription) error {
			created = s
			return s.SetID(11)
		},
	}

	var invoicedFor uint
	issuer := &mockInvoiceIssuer{
		IssueForSubscriptionFunc: func(ctx context.Context, s *subscription.Subscription) (*billing.Invoice, error) {
			invoicedFor = s.ID()
			return testInvoice(t, s.ID()), nil
		},
	}

	useCase := NewCreateSubscriptionUseCase(subRepo, planRepo, userRepo, issuer, &mockTransactionRunner{}, &mockLogger{})

	sub, err := useCase.Execute(context.Background(), CreateSubscriptionCommand{UserID: 5, PlanID: 2, AutoRenew: true})

	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, uint(11), invoicedFor)
	assert.Equal(t, vo.StatusActive, sub.Status())
	assert.True(t, sub.AutoRenew())
	assert.True(t, sub.StartDate().Equal(biztime.Today()))
	require.NotNil(t, sub.NextRenewalDate())
	assert.True(t, sub.NextRenewalDate().Equal(biztime.AddMonths(biztime.Today(), 1)))
	assert.Nil(t, sub.EndDate())
}

func TestCreateSubscriptionUseCase_UnknownUser(t *testing.T) {
	useCase := NewCreateSubscriptionUseCase(
		&mockSubscriptionRepository{}, &mockPlanRepository{}, &mockUserRepository{}, &mockInvoiceIssuer{}, &mockTransactionRunner{}, &mockLogger{},
	)

	sub, err := useCase.Execute(context.Background(), CreateSubscriptionCommand{UserID: 99, PlanID: 2})

	assert.Nil(t, sub)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateSubscriptionUseCase_UnknownPlan(t *testing.T) {
	userRepo := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return testOwner(t), nil
		},
	}

	useCase := NewCreateSubscriptionUseCase(
		&mockSubscriptionRepository{}, &mockPlanRepository{}, userRepo, &mockInvoiceIssuer{}, &mockTransactionRunner{}, &mockLogger{},
	)

	sub, err := useCase.Execute(context.Background(), CreateSubscriptionCommand{UserID: 5, PlanID: 99})

	assert.Nil(t, sub)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestCreateSubscriptionUseCase_SignUpAndInvoiceShareTransaction(t *testing.T) {
	userRepo := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return testOwner(t), nil
		},
	}
	planRepo := &mockPlanRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*subscription.Plan, error) {
			return testPlan(t, id), nil
		},
	}

	var inTx bool
	runner := &mockTransactionRunner{
		RunInTransactionFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			inTx = true
			defer func() { inTx = false }()
			return fn(ctx)
		},
	}

	subRepo := &mockSubscriptionRepository{
		CreateFunc: func(ctx context.Context, s *subscription.Subscription) error {
			assert.True(t, inTx, "subscription create must run inside the transaction")
			return s.SetID(11)
		},
	}
	issuer := &mockInvoiceIssuer{
		IssueForSubscriptionFunc: func(ctx context.Context, s *subscription.Subscription) (*billing.Invoice, error) {
			assert.True(t, inTx, "first invoice must be issued inside the transaction")
			return testInvoice(t, s.ID()), nil
		},
	}

	useCase := NewCreateSubscriptionUseCase(subRepo, planRepo, userRepo, issuer, runner, &mockLogger{})

	_, err := useCase.Execute(context.Background(), CreateSubscriptionCommand{UserID: 5, PlanID: 2})

	require.NoError(t, err)
}

func TestCreateSubscriptionUseCase_FirstInvoiceFailure(t *testing.T) {
	userRepo := &mockUserRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*user.User, error) {
			return testOwner(t), nil
		},
	}
	planRepo := &mockPlanRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*subscription.Plan, error) {
			return testPlan(t, id), nil
		},
	}
	subRepo := &mockSubscriptionRepository{
		CreateFunc: func(ctx context.Context, s *subscription.Subscription) error {
			return s.SetID(11)
		},
	}
	issuer := &mockInvoiceIssuer{
		IssueForSubscriptionFunc: func(ctx context.Context, s *subscription.Subscription) (*billing.Invoice, error) {
			return nil, errors.New("issue failed")
		},
	}

	useCase := NewCreateSubscriptionUseCase(subRepo, planRepo, userRepo, issuer, &mockTransactionRunner{}, &mockLogger{})

	sub, err := useCase.Execute(context.Background(), CreateSubscriptionCommand{UserID: 5, PlanID: 2})

	assert.Nil(t, sub)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to issue first invoice")
}
