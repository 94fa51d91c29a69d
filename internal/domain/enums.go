package domain

import "fmt"

type PlanType string

const (
	PlanDaily  PlanType = "daily"
	PlanWeekly PlanType = "weekly"
	PlanUnit   PlanType = "unit"
)

// ValidPlanTypes is the canonical set of accepted plan type strings.
var ValidPlanTypes = map[string]bool{
	"daily": true, "weekly": true, "unit": true,
}

// ParsePlanType converts a user-supplied string into a PlanType.
func ParsePlanType(s string) (PlanType, error) {
	if !ValidPlanTypes[s] {
		return "", fmt.Errorf("invalid plan type %q (expected daily, weekly, or unit)", s)
	}
	return PlanType(s), nil
}

type GenerationState string

const (
	GenIdle    GenerationState = "idle"
	GenWorking GenerationState = "working"
	GenDone    GenerationState = "done"
	GenError   GenerationState = "error"
)
