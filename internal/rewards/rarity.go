package rewards

// Rarity grades how special a reward is. It drives the celebration shown
// when the reward lands.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

// AllRarities returns all rarities in order from lowest to highest.
func AllRarities() []Rarity {
	return []Rarity{RarityCommon, RarityUncommon, RarityRare, RarityEpic, RarityLegendary}
}

// DisplayName returns a human-readable label for the rarity.
func (r Rarity) DisplayName() string {
	switch r {
	case RarityCommon:
		return "Common"
	case RarityUncommon:
		return "Uncommon"
	case RarityRare:
		return "Rare"
	case RarityEpic:
		return "Epic"
	case RarityLegendary:
		return "Legendary"
	default:
		return string(r)
	}
}

// CelebrationMessage returns the banner shown for a reward of this rarity.
func (r Rarity) CelebrationMessage() string {
	switch r {
	case RarityLegendary:
		return "🎊 LEGENDARY ACHIEVEMENT UNLOCKED!"
	case RarityEpic:
		return "⭐ EPIC DISCOVERY!"
	case RarityRare:
		return "✨ RARE FIND!"
	case RarityUncommon:
		return "💎 NICE WORK!"
	default:
		return "💎 DIAMONDS EARNED!"
	}
}

// Celebration is the presentation record for a non-zero award.
type Celebration struct {
	Kind    Kind   `json:"kind"`
	Name    string `json:"name"`
	Amount  int    `json:"amount"`
	Rarity  Rarity `json:"rarity"`
	Icon    string `json:"icon"`
	Message string `json:"message"`
}
