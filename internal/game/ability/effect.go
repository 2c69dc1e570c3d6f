package ability

import "github.com/emberfall/battle-server-go/internal/game/core"

// EffectKind discriminates the closed StandardEffect variant set. New
// variants must be added to the evaluator's switch as well; the evaluator
// panics on unknown kinds rather than silently skipping them.
type EffectKind string

const (
	// EffectDrawCards draws Count cards for the controller.
	EffectDrawCards EffectKind = "DRAW_CARDS"
	// EffectGainEnergy adds Energy to the controller's pool.
	EffectGainEnergy EffectKind = "GAIN_ENERGY"
	// EffectGainPoints adds Points to the controller's score.
	EffectGainPoints EffectKind = "GAIN_POINTS"
	// EffectEnemyGainsPoints adds Points to the opponent's score.
	EffectEnemyGainsPoints EffectKind = "ENEMY_GAINS_POINTS"
	// EffectDissolveCharacter moves a target character to its owner's void.
	EffectDissolveCharacter EffectKind = "DISSOLVE_CHARACTER"
	// EffectBanishCharacter moves a target character to the banished zone.
	EffectBanishCharacter EffectKind = "BANISH_CHARACTER"
	// EffectReturnToHand moves a target character to its owner's hand.
	EffectReturnToHand EffectKind = "RETURN_TO_HAND"
	// EffectGainsSpark permanently adds Spark to a target character.
	EffectGainsSpark EffectKind = "GAINS_SPARK"
	// EffectPreventCard moves a target card from the stack to its owner's
	// void; its own effect never applies.
	EffectPreventCard EffectKind = "PREVENT_CARD"
	// EffectDiscardCards makes the controller discard Count cards of their
	// choice.
	EffectDiscardCards EffectKind = "DISCARD_CARDS"
	// EffectEnemyDiscardCards makes the opponent discard Count cards of
	// their choice.
	EffectEnemyDiscardCards EffectKind = "ENEMY_DISCARD_CARDS"
	// EffectReturnFromVoidToHand moves a target void card to its owner's
	// hand.
	EffectReturnFromVoidToHand EffectKind = "RETURN_FROM_VOID_TO_HAND"
	// EffectMaterializeFromVoid puts a target character card from the void
	// directly onto the battlefield.
	EffectMaterializeFromVoid EffectKind = "MATERIALIZE_FROM_VOID"
	// EffectGainEnergyPerMatching adds Energy once per battlefield character
	// matching Counts.
	EffectGainEnergyPerMatching EffectKind = "GAIN_ENERGY_PER_MATCHING"
	// EffectDrawThenDiscard draws Count cards, then the controller discards
	// DiscardCount cards of their choice.
	EffectDrawThenDiscard EffectKind = "DRAW_THEN_DISCARD"
	// EffectNoEffect does nothing. Used for vanilla characters.
	EffectNoEffect EffectKind = "NO_EFFECT"
)

// TargetZone says which zone a standard effect selects its target from.
type TargetZone int

const (
	TargetNone TargetZone = iota
	TargetBattlefield
	TargetStack
	TargetVoid
)

// StandardEffect is one node of an effect tree: a single state mutation.
// Only the fields relevant to Kind carry meaning.
type StandardEffect struct {
	Kind         EffectKind
	Count        int
	DiscardCount int
	Energy       core.Energy
	Points       core.Points
	Spark        core.Spark
	// Target is the targeting predicate for targeted variants; HasTarget
	// distinguishes it from the zero Predicate.
	Target    Predicate
	HasTarget bool
	// Counts is the per-matching predicate for counting variants.
	Counts Predicate
}

// TargetSpec returns the targeting predicate a standard effect needs before
// it can resolve, and the zone that predicate ranges over. Effects without
// targets return TargetNone.
func (e StandardEffect) TargetSpec() (Predicate, TargetZone) {
	switch e.Kind {
	case EffectDissolveCharacter, EffectBanishCharacter, EffectReturnToHand, EffectGainsSpark:
		return e.Target, TargetBattlefield
	case EffectPreventCard:
		return e.Target, TargetStack
	case EffectReturnFromVoidToHand, EffectMaterializeFromVoid:
		return e.Target, TargetVoid
	case EffectDrawCards, EffectGainEnergy, EffectGainPoints, EffectEnemyGainsPoints,
		EffectDiscardCards, EffectEnemyDiscardCards, EffectGainEnergyPerMatching,
		EffectDrawThenDiscard, EffectNoEffect:
		return Predicate{}, TargetNone
	}
	panic("unhandled effect kind: " + string(e.Kind))
}

// EffectNodeKind discriminates effect tree nodes.
type EffectNodeKind string

const (
	// NodeStandard wraps exactly one StandardEffect.
	NodeStandard EffectNodeKind = "STANDARD"
	// NodeList applies child effects in order.
	NodeList EffectNodeKind = "LIST"
	// NodeModal lets the controller pick exactly one child, possibly paying
	// a per-mode energy cost.
	NodeModal EffectNodeKind = "MODAL"
)

// ModalChoice is one mode of a modal effect.
type ModalChoice struct {
	EnergyCost core.Energy
	Effect     Effect
}

// Effect is a tree of state mutations. Optional marks a standard leaf the
// controller may decline when it resolves; triggered abilities apply
// optional effects without asking.
type Effect struct {
	Kind     EffectNodeKind
	Optional bool

	Standard StandardEffect // NodeStandard
	Items    []Effect       // NodeList
	Choices  []ModalChoice  // NodeModal
}

// StandardEffectOf wraps a StandardEffect as an effect tree leaf.
func StandardEffectOf(e StandardEffect) Effect {
	return Effect{Kind: NodeStandard, Standard: e}
}

// OptionalOf marks an effect leaf as declinable at resolution.
func OptionalOf(e Effect) Effect {
	e.Optional = true
	return e
}

// ListOf builds an in-order effect list.
func ListOf(items ...Effect) Effect {
	return Effect{Kind: NodeList, Items: items}
}

// ModalOf builds a modal effect from its modes.
func ModalOf(choices ...ModalChoice) Effect {
	return Effect{Kind: NodeModal, Choices: choices}
}
