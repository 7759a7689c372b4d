// Package plan defines the subscription tiers that gate rendering features.
package plan

// Tier is a subscription level. Tiers are integer-backed and totally
// ordered so access checks are numeric comparisons, never string matches.
type Tier int

const (
	Free Tier = iota
	Pro
	Business
	Enterprise
)

var tierNames = map[Tier]string{
	Free:       "free",
	Pro:        "pro",
	Business:   "business",
	Enterprise: "enterprise",
}

func (t Tier) String() string {
	if name, ok := tierNames[t]; ok {
		return name
	}
	return "free"
}

// Parse maps a plan name to its tier. Unrecognized or empty names fall
// back to Free, the safe default for an unknown caller.
func Parse(name string) Tier {
	switch name {
	case "pro":
		return Pro
	case "business":
		return Business
	case "enterprise":
		return Enterprise
	default:
		return Free
	}
}

// AtLeast reports whether t grants everything required tier needs.
func (t Tier) AtLeast(required Tier) bool {
	return t >= required
}
