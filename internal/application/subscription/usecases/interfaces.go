package usecases

import (
	"context"

	"abono/internal/domain/billing"
	"abono/internal/domain/subscription"
)

// InvoiceIssuer is the billing-context collaborator renewal and sign-up
// use to emit an invoice for a subscription cycle.
type InvoiceIssuer interface {
	IssueForSubscription(ctx context.Context, sub *subscription.Subscription) (*billing.Invoice, error)
}

// TransactionRunner executes fn inside a storage transaction. Repository
// writes made with the context fn receives commit or roll back together.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
