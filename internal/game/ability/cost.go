package ability

import "github.com/emberfall/battle-server-go/internal/game/core"

// CostKind discriminates the closed cost variant set.
type CostKind string

const (
	// CostEnergy pays Energy from the player's pool.
	CostEnergy CostKind = "ENERGY"
	// CostDiscard discards Count cards of the player's choice from hand.
	CostDiscard CostKind = "DISCARD"
	// CostAbandon moves Count characters of the player's choice matching
	// Target from their battlefield to their void.
	CostAbandon CostKind = "ABANDON"
	// CostBanishFromVoid banishes Count cards of the player's choice from
	// their void.
	CostBanishFromVoid CostKind = "BANISH_FROM_VOID"
)

// Cost is one element of an ability's price. Affordability is checked with a
// pure query before any payment mutation happens; choices a cost requires
// (which cards to discard, which characters to abandon) go through the
// prompt subsystem.
type Cost struct {
	Kind   CostKind
	Energy core.Energy
	Count  int
	Target Predicate
}

// EnergyCost builds a plain energy cost.
func EnergyCost(amount core.Energy) Cost {
	return Cost{Kind: CostEnergy, Energy: amount}
}

// DiscardCost builds a discard-N-cards cost.
func DiscardCost(count int) Cost {
	return Cost{Kind: CostDiscard, Count: count}
}

// AbandonCost builds an abandon-N-matching-characters cost.
func AbandonCost(count int, target Predicate) Cost {
	return Cost{Kind: CostAbandon, Count: count, Target: target}
}

// BanishFromVoidCost builds a banish-N-matching-void-cards cost.
func BanishFromVoidCost(count int, target Predicate) Cost {
	return Cost{Kind: CostBanishFromVoid, Count: count, Target: target}
}
