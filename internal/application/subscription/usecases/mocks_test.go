package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"abono/internal/domain/billing"
	billingvo "abono/internal/domain/billing/valueobjects"
	"abono/internal/domain/subscription"
	vo "abono/internal/domain/subscription/valueobjects"
	"abono/internal/domain/user"
	"abono/internal/shared/logger"
)

type mockSubscriptionRepository struct {
	CreateFunc               func(ctx context.Context, sub *subscription.Subscription) error
	GetByIDFunc              func(ctx context.Context, id uint) (*subscription.Subscription, error)
	UpdateFunc               func(ctx context.Context, sub *subscription.Subscription) error
	GetByUserIDFunc          func(ctx context.Context, userID uint) ([]*subscription.Subscription, error)
	GetByUserIDAndStatusFunc func(ctx context.Context, userID uint, status vo.SubscriptionStatus) ([]*subscription.Subscription, error)
	ListAllFunc              func(ctx context.Context) ([]*subscription.Subscription, error)
	FindDueForRenewalFunc    func(ctx context.Context, asOf time.Time) ([]*subscription.Subscription, error)
	FindExpiredFunc          func(ctx context.Context, asOf time.Time) ([]*subscription.Subscription, error)
	FindRenewingBetweenFunc  func(ctx context.Context, from, to time.Time) ([]*subscription.Subscription, error)
}

func (m *mockSubscriptionRepository) Create(ctx context.Context, sub *subscription.Subscription) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, sub)
	}
	return nil
}

func (m *mockSubscriptionRepository) GetByID(ctx context.Context, id uint) (*subscription.Subscription, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) Update(ctx context.Context, sub *subscription.Subscription) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, sub)
	}
	return nil
}

func (m *mockSubscriptionRepository) GetByUserID(ctx context.Context, userID uint) ([]*subscription.Subscription, error) {
	if m.GetByUserIDFunc != nil {
		return m.GetByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) GetByUserIDAndStatus(ctx context.Context, userID uint, status vo.SubscriptionStatus) ([]*subscription.Subscription, error) {
	if m.GetByUserIDAndStatusFunc != nil {
		return m.GetByUserIDAndStatusFunc(ctx, userID, status)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) ListAll(ctx context.Context) ([]*subscription.Subscription, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) FindDueForRenewal(ctx context.Context, asOf time.Time) ([]*subscription.Subscription, error) {
	if m.FindDueForRenewalFunc != nil {
		return m.FindDueForRenewalFunc(ctx, asOf)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) FindExpired(ctx context.Context, asOf time.Time) ([]*subscription.Subscription, error) {
	if m.FindExpiredFunc != nil {
		return m.FindExpiredFunc(ctx, asOf)
	}
	return nil, nil
}

func (m *mockSubscriptionRepository) FindRenewingBetween(ctx context.Context, from, to time.Time) ([]*subscription.Subscription, error) {
	if m.FindRenewingBetweenFunc != nil {
		return m.FindRenewingBetweenFunc(ctx, from, to)
	}
	return nil, nil
}

type mockPlanRepository struct {
	CreateFunc    func(ctx context.Context, plan *subscription.Plan) error
	GetByIDFunc   func(ctx context.Context, id uint) (*subscription.Plan, error)
	GetByTypeFunc func(ctx context.Context, planType vo.PlanType) (*subscription.Plan, error)
	ListFunc      func(ctx context.Context) ([]*subscription.Plan, error)
}

func (m *mockPlanRepository) Create(ctx context.Context, plan *subscription.Plan) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, plan)
	}
	return nil
}

func (m *mockPlanRepository) GetByID(ctx context.Context, id uint) (*subscription.Plan, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPlanRepository) GetByType(ctx context.Context, planType vo.PlanType) (*subscription.Plan, error) {
	if m.GetByTypeFunc != nil {
		return m.GetByTypeFunc(ctx, planType)
	}
	return nil, nil
}

func (m *mockPlanRepository) List(ctx context.Context) ([]*subscription.Plan, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, nil
}

type mockUserRepository struct {
	CreateFunc     func(ctx context.Context, u *user.User) error
	GetByIDFunc    func(ctx context.Context, id uint) (*user.User, error)
	GetByEmailFunc func(ctx context.Context, email string) (*user.User, error)
	UpdateFunc     func(ctx context.Context, u *user.User) error
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	return nil
}

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	if m.GetByEmailFunc != nil {
		return m.GetByEmailFunc(ctx, email)
	}
	return nil, nil
}

func (m *mockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, u)
	}
	return nil
}

type mockInvoiceRepository struct {
	CreateFunc                 func(ctx context.Context, invoice *billing.Invoice) error
	GetByIDFunc                func(ctx context.Context, id uint) (*billing.Invoice, error)
	UpdateFunc                 func(ctx context.Context, invoice *billing.Invoice) error
	ListAllFunc                func(ctx context.Context) ([]*billing.Invoice, error)
	FindByIssueDateBetweenFunc func(ctx context.Context, from, to time.Time) ([]*billing.Invoice, error)
	FindByTotalBetweenFunc     func(ctx context.Context, min, max decimal.Decimal) ([]*billing.Invoice, error)
	FindByStatusFunc           func(ctx context.Context, status billingvo.InvoiceStatus) ([]*billing.Invoice, error)
	FindByUserIDFunc           func(ctx context.Context, userID uint) ([]*billing.Invoice, error)
	FindWithFilterFunc         func(ctx context.Context, filter billing.InvoiceFilter) ([]*billing.Invoice, error)
	FindPendingFunc            func(ctx context.Context) ([]*billing.Invoice, error)
}

func (m *mockInvoiceRepository) Create(ctx context.Context, invoice *billing.Invoice) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, invoice)
	}
	return nil
}

func (m *mockInvoiceRepository) GetByID(ctx context.Context, id uint) (*billing.Invoice, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockInvoiceRepository) Update(ctx context.Context, invoice *billing.Invoice) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, invoice)
	}
	return nil
}

func (m *mockInvoiceRepository) ListAll(ctx context.Context) ([]*billing.Invoice, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockInvoiceRepository) FindByIssueDateBetween(ctx context.Context, from, to time.Time) ([]*billing.Invoice, error) {
	if m.FindByIssueDateBetweenFunc != nil {
		return m.FindByIssueDateBetweenFunc(ctx, from, to)
	}
	return nil, nil
}

func (m *mockInvoiceRepository) FindByTotalBetween(ctx context.Context, min, max decimal.Decimal) ([]*billing.Invoice, error) {
	if m.FindByTotalBetweenFunc != nil {
		return m.FindByTotalBetweenFunc(ctx, min, max)
	}
	return nil, nil
}

func (m *mockInvoiceRepository) FindByStatus(ctx context.Context, status billingvo.InvoiceStatus) ([]*billing.Invoice, error) {
	if m.FindByStatusFunc != nil {
		return m.FindByStatusFunc(ctx, status)
	}
	return nil, nil
}

func (m *mockInvoiceRepository) FindByUserID(ctx context.Context, userID uint) ([]*billing.Invoice, error) {
	if m.FindByUserIDFunc != nil {
		return m.FindByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *mockInvoiceRepository) FindWithFilter(ctx context.Context, filter billing.InvoiceFilter) ([]*billing.Invoice, error) {
	if m.FindWithFilterFunc != nil {
		return m.FindWithFilterFunc(ctx, filter)
	}
	return nil, nil
}

func (m *mockInvoiceRepository) FindPending(ctx context.Context) ([]*billing.Invoice, error) {
	if m.FindPendingFunc != nil {
		return m.FindPendingFunc(ctx)
	}
	return nil, nil
}

type mockInvoiceIssuer struct {
	IssueForSubscriptionFunc func(ctx context.Context, sub *subscription.Subscription) (*billing.Invoice, error)
}

func (m *mockInvoiceIssuer) IssueForSubscription(ctx context.Context, sub *subscription.Subscription) (*billing.Invoice, error) {
	if m.IssueForSubscriptionFunc != nil {
		return m.IssueForSubscriptionFunc(ctx, sub)
	}
	return nil, nil
}

type mockLogger struct {
	InfowFunc  func(msg string, keysAndValues ...interface{})
	WarnwFunc  func(msg string, keysAndValues ...interface{})
	ErrorwFunc func(msg string, keysAndValues ...interface{})
}

func (m *mockLogger) Debug(msg string, args ...any) {}
func (m *mockLogger) Info(msg string, args ...any)  {}
func (m *mockLogger) Warn(msg string, args ...any)  {}
func (m *mockLogger) Error(msg string, args ...any) {}

func (m *mockLogger) With(args ...any) logger.Interface    { return m }
func (m *mockLogger) Named(name string) logger.Interface   { return m }

func (m *mockLogger) Debugw(msg string, keysAndValues ...interface{}) {}

func (m *mockLogger) Infow(msg string, keysAndValues ...interface{}) {
	if m.InfowFunc != nil {
		m.InfowFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Warnw(msg string, keysAndValues ...interface{}) {
	if m.WarnwFunc != nil {
		m.WarnwFunc(msg, keysAndValues...)
	}
}

func (m *mockLogger) Errorw(msg string, keysAndValues ...interface{}) {
	if m.ErrorwFunc != nil {
		m.ErrorwFunc(msg, keysAndValues...)
	}
}

// mockTransactionRunner runs fn inline. Tests that care about the
// transaction boundary override RunInTransactionFunc.
type mockTransactionRunner struct {
	RunInTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTransactionRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.RunInTransactionFunc != nil {
		return m.RunInTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}
