package subscription

import (
	"fmt"
	"time"

	vo "abono/internal/domain/subscription/valueobjects"
)

// Subscription is the aggregate root for a user's ongoing commitment to a
// plan. Its lifecycle state is independent of the invoices it owns.
//
// Invariant: endDate is set exactly when the status is CANCELADA or
// EXPIRADA. nextRenewalDate is only meaningful while autoRenew is on.
type Subscription struct {
	id              uint
	userID          uint
	planID          uint
	status          vo.SubscriptionStatus
	startDate       time.Time
	endDate         *time.Time
	autoRenew       bool
	nextRenewalDate *time.Time
	createdAt       time.Time
	updatedAt       time.Time
}

// NewSubscription creates an active subscription starting on startDate.
// The first renewal is scheduled one month out regardless of autoRenew, so
// enabling auto-renewal later picks up a sane date.
func NewSubscription(userID, planID uint, autoRenew bool, startDate, nextRenewalDate time.Time) (*Subscription, error) {
	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if planID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}

	now := time.Now().UTC()
	return &Subscription{
		userID:          userID,
		planID:          planID,
		status:          vo.StatusActive,
		startDate:       startDate,
		autoRenew:       autoRenew,
		nextRenewalDate: &nextRenewalDate,
		createdAt:       now,
		updatedAt:       now,
	}, nil
}

// SubscriptionReconstructParams carries persisted state back into the aggregate.
type SubscriptionReconstructParams struct {
	ID              uint
	UserID          uint
	PlanID          uint
	Status          vo.SubscriptionStatus
	StartDate       time.Time
	EndDate         *time.Time
	AutoRenew       bool
	NextRenewalDate *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// ReconstructSubscription rebuilds a subscription from persistence.
func ReconstructSubscription(p SubscriptionReconstructParams) (*Subscription, error) {
	if p.ID == 0 {
		return nil, fmt.Errorf("subscription ID cannot be zero")
	}
	if p.UserID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if p.PlanID == 0 {
		return nil, fmt.Errorf("plan ID is required")
	}
	if !vo.ValidStatuses[p.Status] {
		return nil, fmt.Errorf("invalid subscription status: %s", p.Status)
	}

	return &Subscription{
		id:              p.ID,
		userID:          p.UserID,
		planID:          p.PlanID,
		status:          p.Status,
		startDate:       p.StartDate,
		endDate:         p.EndDate,
		autoRenew:       p.AutoRenew,
		nextRenewalDate: p.NextRenewalDate,
		createdAt:       p.CreatedAt,
		updatedAt:       p.UpdatedAt,
	}, nil
}

func (s *Subscription) ID() uint                     { return s.id }
func (s *Subscription) UserID() uint                 { return s.userID }
func (s *Subscription) PlanID() uint                 { return s.planID }
func (s *Subscription) Status() vo.SubscriptionStatus { return s.status }
func (s *Subscription) StartDate() time.Time         { return s.startDate }
func (s *Subscription) EndDate() *time.Time          { return s.endDate }
func (s *Subscription) AutoRenew() bool              { return s.autoRenew }
func (s *Subscription) NextRenewalDate() *time.Time  { return s.nextRenewalDate }
func (s *Subscription) CreatedAt() time.Time         { return s.createdAt }
func (s *Subscription) UpdatedAt() time.Time         { return s.updatedAt }

// SetID assigns the storage identifier after insertion.
func (s *Subscription) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("subscription ID already set")
	}
	if id == 0 {
		return fmt.Errorf("subscription ID cannot be zero")
	}
	s.id = id
	return nil
}

// Activate moves the subscription to ACTIVA from any state and clears the
// end date. There is deliberately no guard: reactivating a cancelled or
// expired subscription is an allowed administrative action.
func (s *Subscription) Activate() {
	s.status = vo.StatusActive
	s.endDate = nil
	s.touch()
}

// Cancel moves the subscription to CANCELADA from any state, closes it on
// the given date and switches auto-renewal off.
func (s *Subscription) Cancel(today time.Time) {
	s.status = vo.StatusCanceled
	s.endDate = &today
	s.autoRenew = false
	s.touch()
}

// MarkUnpaid moves the subscription to IMPAGO. The transition is
// unconditional; dunning re-marks are harmless re-applies.
func (s *Subscription) MarkUnpaid() {
	s.status = vo.StatusUnpaid
	s.touch()
}

// Expire moves the subscription to EXPIRADA and closes it on the given date.
func (s *Subscription) Expire(today time.Time) {
	s.status = vo.StatusExpired
	s.endDate = &today
	s.touch()
}

// SetAutoRenew flips the auto-renewal flag without touching the state.
func (s *Subscription) SetAutoRenew(enabled bool) {
	s.autoRenew = enabled
	s.touch()
}

// ChangePlan switches the plan reference. The current invoice is not
// re-priced or re-issued; the new price applies from the next renewal.
func (s *Subscription) ChangePlan(planID uint) error {
	if planID == 0 {
		return fmt.Errorf("plan ID is required")
	}
	s.planID = planID
	s.touch()
	return nil
}

// IsRenewable reports whether the renewal job should bill this
// subscription: auto-renewal on and currently ACTIVA.
func (s *Subscription) IsRenewable() bool {
	return s.autoRenew && s.status == vo.StatusActive
}

// ScheduleRenewal records when the next renewal is due.
func (s *Subscription) ScheduleRenewal(next time.Time) {
	s.nextRenewalDate = &next
	s.touch()
}

func (s *Subscription) touch() {
	s.updatedAt = time.Now().UTC()
}
