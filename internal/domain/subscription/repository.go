package subscription

import (
	"context"
	"time"

	vo "abono/internal/domain/subscription/valueobjects"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *Subscription) error
	GetByID(ctx context.Context, id uint) (*Subscription, error)
	Update(ctx context.Context, subscription *Subscription) error

	GetByUserID(ctx context.Context, userID uint) ([]*Subscription, error)
	GetByUserIDAndStatus(ctx context.Context, userID uint, status vo.SubscriptionStatus) ([]*Subscription, error)
	ListAll(ctx context.Context) ([]*Subscription, error)

	// FindDueForRenewal selects autoRenew && ACTIVA && nextRenewalDate <= asOf.
	FindDueForRenewal(ctx context.Context, asOf time.Time) ([]*Subscription, error)
	// FindExpired selects !autoRenew && ACTIVA && endDate <= asOf.
	FindExpired(ctx context.Context, asOf time.Time) ([]*Subscription, error)
	// FindRenewingBetween selects ACTIVA subscriptions whose next renewal
	// falls inside [from, to].
	FindRenewingBetween(ctx context.Context, from, to time.Time) ([]*Subscription, error)
}

type PlanRepository interface {
	Create(ctx context.Context, plan *Plan) error
	GetByID(ctx context.Context, id uint) (*Plan, error)
	GetByType(ctx context.Context, planType vo.PlanType) (*Plan, error)
	List(ctx context.Context) ([]*Plan, error)
}
