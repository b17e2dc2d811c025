package model

// Tier is the subscription level gating budgeting customizations.
type Tier string

// Known plan tiers. Anything else resolves to the free tier.
const (
	TierFree Tier = "free"
	TierPro  Tier = "pro"
)

// Unlimited marks a count capability with no cap.
const Unlimited = 0

// Capabilities is the single source of truth for what a plan tier
// permits. Count fields use Unlimited (zero) to mean "no cap".
type Capabilities struct {
	MaxIncomes       int
	MaxFixedExpenses int
	MaxGoals         int

	CanCustomizeSaveRate bool
	CanCustomizeSplits   bool
	CanViewHistory       bool
	CanExport            bool
}

// Allows reports whether a list of n entries fits under the given cap.
func (c Capabilities) Allows(cap, n int) bool {
	return cap == Unlimited || n <= cap
}

// Profile is the locally-stored user identity and plan state.
type Profile struct {
	UserID string
	Email  string
	Plan   Tier
	// DefaultPrefs holds the saved default splits a pro user has
	// written back from customized sliders. Nil when never saved.
	DefaultPrefs *Preferences
}
