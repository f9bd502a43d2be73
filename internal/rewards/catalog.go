package rewards

import (
	"fmt"
	"maps"
	"slices"
)

// Kind identifies a reward in the catalog.
type Kind string

const (
	KindDailyLogin       Kind = "daily_login"
	KindFirstTraining    Kind = "first_training_of_day"
	KindLevelComplete    Kind = "level_completion_85"
	KindPerfectScore     Kind = "perfect_score_bonus"
	KindNewLevelUnlocked Kind = "new_level_unlocked"
	KindReferral         Kind = "referral_success"
	KindSessionXP        Kind = "session_xp"
	KindLoyaltyLock      Kind = "pillar4_loyalty_lock"
	KindHalfCentury      Kind = "pillar4_half_century"
	KindCenturion        Kind = "pillar4_centurion"
	KindJackpot          Kind = "pillar5_jackpot"
)

// Currency is the unit a reward pays out in.
type Currency string

const (
	CurrencyDiamonds Currency = "diamonds"
	CurrencyXP       Currency = "xp"
)

// Category separates standard rewards from hidden easter eggs.
type Category string

const (
	CategoryStandard  Category = "standard"
	CategoryEasterEgg Category = "easter_egg"
)

// Scope decides which claim context fields make a claim unique, and so how
// often a reward can be earned.
type Scope string

const (
	ScopeOnce    Scope = "once"    // once per user
	ScopeDaily   Scope = "daily"   // once per user per UTC day
	ScopeLevel   Scope = "level"   // once per user per level
	ScopeSession Scope = "session" // once per user per session instance
	ScopeEvent   Scope = "event"   // once per user per external event reference
)

// Definition describes one reward kind.
type Definition struct {
	ID       Kind     `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Currency Currency `json:"currency"`

	// BaseAmount is scaled by the streak multiplier. Zero means the amount
	// is supplied by the claim context.
	BaseAmount int `json:"base_amount"`

	// MaxAmount caps the scaled amount when positive.
	MaxAmount int `json:"max_amount,omitempty"`

	Scope       Scope  `json:"scope"`
	BypassesCap bool   `json:"bypasses_cap"`
	Rarity      Rarity `json:"rarity"`
	Icon        string `json:"icon"`
}

// Catalog is an immutable lookup table of reward definitions.
type Catalog struct {
	defs map[Kind]Definition
}

// NewCatalog builds a catalog. Duplicate ids are a configuration error.
func NewCatalog(defs []Definition) (*Catalog, error) {
	c := &Catalog{defs: make(map[Kind]Definition, len(defs))}
	for _, d := range defs {
		if _, dup := c.defs[d.ID]; dup {
			return nil, fmt.Errorf("duplicate reward definition %q", d.ID)
		}
		if d.Currency == "" {
			d.Currency = CurrencyDiamonds
		}
		if d.Rarity == "" {
			d.Rarity = RarityCommon
		}
		c.defs[d.ID] = d
	}
	return c, nil
}

// Lookup returns the definition for kind.
func (c *Catalog) Lookup(kind Kind) (Definition, bool) {
	d, ok := c.defs[kind]
	return d, ok
}

// Kinds returns all reward kinds in sorted order.
func (c *Catalog) Kinds() []Kind {
	return slices.Sorted(maps.Keys(c.defs))
}

var defaultCatalog = mustCatalog(defaultDefinitions())

// DefaultCatalog returns the built-in reward catalog.
func DefaultCatalog() *Catalog {
	return defaultCatalog
}

func mustCatalog(defs []Definition) *Catalog {
	c, err := NewCatalog(defs)
	if err != nil {
		panic(err)
	}
	return c
}

func defaultDefinitions() []Definition {
	return []Definition{
		{ID: KindDailyLogin, Name: "Daily Login", Category: CategoryStandard, BaseAmount: DailyLoginMin, MaxAmount: 100, Scope: ScopeDaily, Rarity: RarityCommon, Icon: "📅"},
		{ID: KindFirstTraining, Name: "First Training of the Day", Category: CategoryStandard, BaseAmount: 10, Scope: ScopeDaily, Rarity: RarityCommon, Icon: "🌅"},
		{ID: KindLevelComplete, Name: "Level Complete (85%+)", Category: CategoryStandard, BaseAmount: 25, Scope: ScopeSession, Rarity: RarityUncommon, Icon: "🎯"},
		{ID: KindPerfectScore, Name: "Perfect Score", Category: CategoryStandard, BaseAmount: 50, Scope: ScopeSession, Rarity: RarityRare, Icon: "💯"},
		{ID: KindNewLevelUnlocked, Name: "New Level Unlocked", Category: CategoryStandard, BaseAmount: 30, Scope: ScopeLevel, Rarity: RarityUncommon, Icon: "🔓"},
		{ID: KindReferral, Name: "Referral Success", Category: CategoryStandard, BaseAmount: 100, Scope: ScopeEvent, BypassesCap: true, Rarity: RarityRare, Icon: "🤝"},
		{ID: KindSessionXP, Name: "Session XP", Category: CategoryStandard, Currency: CurrencyXP, Scope: ScopeSession, Rarity: RarityCommon, Icon: "⚡"},
		{ID: KindLoyaltyLock, Name: "Loyalty Lock", Category: CategoryEasterEgg, BaseAmount: 50, Scope: ScopeOnce, BypassesCap: true, Rarity: RarityRare, Icon: "🔒"},
		{ID: KindHalfCentury, Name: "Half Century", Category: CategoryEasterEgg, BaseAmount: 250, Scope: ScopeOnce, BypassesCap: true, Rarity: RarityEpic, Icon: "🏅"},
		{ID: KindCenturion, Name: "Centurion", Category: CategoryEasterEgg, BaseAmount: 500, Scope: ScopeOnce, BypassesCap: true, Rarity: RarityLegendary, Icon: "👑"},
		{ID: KindJackpot, Name: "Jackpot", Category: CategoryEasterEgg, BaseAmount: 250, Scope: ScopeSession, BypassesCap: true, Rarity: RarityLegendary, Icon: "🎰"},
	}
}

// streakMilestones maps login-streak lengths to their one-time rewards.
var streakMilestones = []struct {
	days int
	kind Kind
}{
	{7, KindLoyaltyLock},
	{50, KindHalfCentury},
	{100, KindCenturion},
}

// MilestonesReached returns the streak milestone rewards earned by a
// streak of the given length.
func MilestonesReached(days int) []Kind {
	var out []Kind
	for _, m := range streakMilestones {
		if days >= m.days {
			out = append(out, m.kind)
		}
	}
	return out
}
