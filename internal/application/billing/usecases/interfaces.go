package usecases

import "context"

// TransactionRunner executes fn inside a storage transaction. Repository
// writes made with the context fn receives commit or roll back together.
type TransactionRunner interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
