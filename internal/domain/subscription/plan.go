package subscription

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	vo "abono/internal/domain/subscription/valueobjects"
)

// Plan is immutable reference data: one row per plan type, created at
// setup and never mutated afterwards.
type Plan struct {
	id           uint
	planType     vo.PlanType
	name         string
	monthlyPrice decimal.Decimal
	createdAt    time.Time
}

func NewPlan(planType vo.PlanType, name string, monthlyPrice decimal.Decimal) (*Plan, error) {
	if !planType.IsValid() {
		return nil, fmt.Errorf("invalid plan type: %s", planType)
	}
	if name == "" {
		return nil, fmt.Errorf("plan name is required")
	}
	if monthlyPrice.IsNegative() {
		return nil, fmt.Errorf("monthly price cannot be negative")
	}
	return &Plan{
		planType:     planType,
		name:         name,
		monthlyPrice: monthlyPrice,
		createdAt:    time.Now().UTC(),
	}, nil
}

// ReconstructPlan rebuilds a plan from persistence.
func ReconstructPlan(id uint, planType vo.PlanType, name string, monthlyPrice decimal.Decimal, createdAt time.Time) (*Plan, error) {
	if id == 0 {
		return nil, fmt.Errorf("plan ID cannot be zero")
	}
	if !planType.IsValid() {
		return nil, fmt.Errorf("invalid plan type: %s", planType)
	}
	return &Plan{
		id:           id,
		planType:     planType,
		name:         name,
		monthlyPrice: monthlyPrice,
		createdAt:    createdAt,
	}, nil
}

func (p *Plan) ID() uint                      { return p.id }
func (p *Plan) Type() vo.PlanType             { return p.planType }
func (p *Plan) Name() string                  { return p.name }
func (p *Plan) MonthlyPrice() decimal.Decimal { return p.monthlyPrice }
func (p *Plan) CreatedAt() time.Time          { return p.createdAt }

// SetID assigns the storage identifier after insertion.
func (p *Plan) SetID(id uint) error {
	if p.id != 0 {
		return fmt.Errorf("plan ID already set")
	}
	if id == 0 {
		return fmt.Errorf("plan ID cannot be zero")
	}
	p.id = id
	return nil
}
