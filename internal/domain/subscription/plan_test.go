package subscription

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "abono/internal/domain/subscription/valueobjects"
)

func TestNewPlan(t *testing.T) {
	plan, err := NewPlan(vo.PlanTypeBasic, "Basic", decimal.RequireFromString("9.99"))
	require.NoError(t, err)

	assert.Equal(t, vo.PlanTypeBasic, plan.Type())
	assert.Equal(t, "Basic", plan.Name())
	assert.Equal(t, "9.99", plan.MonthlyPrice().String())
}

func TestNewPlan_Validation(t *testing.T) {
	_, err := NewPlan("GOLD", "Gold", decimal.RequireFromString("5.00"))
	assert.Error(t, err)

	_, err = NewPlan(vo.PlanTypeBasic, "", decimal.RequireFromString("5.00"))
	assert.Error(t, err)

	_, err = NewPlan(vo.PlanTypeBasic, "Basic", decimal.RequireFromString("-1.00"))
	assert.Error(t, err)
}
