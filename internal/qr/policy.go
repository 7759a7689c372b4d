package qr

import (
	"fmt"

	"qrforge/internal/plan"
)

// requiredTier maps each qrType to the minimum plan that may request it.
var requiredTier = map[QRType]plan.Tier{
	TypeStandard:    plan.Free,
	TypeMicro:       plan.Free,
	TypeCompact:     plan.Pro,
	TypeCustom:      plan.Pro,
	TypeHolographic: plan.Business,
	TypeCube3D:      plan.Business,
}

// RequiredTier returns the minimum plan for a qrType. Unrecognized types
// require Business, the safe default for anything this build does not
// know about.
func RequiredTier(t QRType) plan.Tier {
	if tier, ok := requiredTier[t]; ok {
		return tier
	}
	return plan.Business
}

// CheckAccess gates a request by subscription tier. It is a pure lookup
// with no internal state and runs strictly before any module computation,
// so no styled output is ever partially generated for an unauthorized
// caller. Denials carry the required tier and the stable "forbidden" code.
func CheckAccess(p plan.Tier, t QRType) error {
	required := RequiredTier(t)
	if p.AtLeast(required) {
		return nil
	}
	return &Error{
		Kind:         KindPlanForbidden,
		Message:      fmt.Sprintf("qr type %q requires the %s plan", t, required),
		RequiredPlan: required,
	}
}
