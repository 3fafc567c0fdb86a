package valueobjects

import "fmt"

type PlanType string

const (
	PlanTypeBasic      PlanType = "BASIC"
	PlanTypePremium    PlanType = "PREMIUM"
	PlanTypeEnterprise PlanType = "ENTERPRISE"
)

func (t PlanType) String() string {
	return string(t)
}

func (t PlanType) IsValid() bool {
	switch t {
	case PlanTypeBasic, PlanTypePremium, PlanTypeEnterprise:
		return true
	}
	return false
}

func ParsePlanType(s string) (PlanType, error) {
	t := PlanType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid plan type: %s", s)
	}
	return t, nil
}
