package sponsorblock

// Policy is the viewer's choice for a category.
type Policy string

const (
	PolicySkip Policy = "skip"
	PolicyAsk  Policy = "ask"
	PolicyNone Policy = "none"
)

// PolicyLookup exposes the per-category settings.
type PolicyLookup interface {
	SponsorBlockEnabled() bool
	SponsorBlockPolicy(category string) string
}

// ParsePolicy maps a settings value to a Policy. Anything unrecognized is
// PolicyNone.
func ParsePolicy(s string) Policy {
	switch Policy(s) {
	case PolicySkip, PolicyAsk:
		return Policy(s)
	default:
		return PolicyNone
	}
}

// ResolvePolicy returns the policy for category. A nil lookup or a disabled
// feature resolves to PolicyNone.
func ResolvePolicy(lookup PolicyLookup, category Category) Policy {
	if lookup == nil || !lookup.SponsorBlockEnabled() {
		return PolicyNone
	}
	return ParsePolicy(lookup.SponsorBlockPolicy(string(category)))
}
