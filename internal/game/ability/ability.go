// Package ability defines the static, read-only card data the engine
// interprets: abilities as closed variant trees of effects, predicates and
// costs. The catalog is produced externally (the engine never parses rules
// text) and is handed to a battle at creation time.
package ability

import "github.com/emberfall/battle-server-go/internal/game/core"

// Kind discriminates the four top-level ability variants.
type Kind string

const (
	// KindEvent is a one-shot ability: the whole card is its effect.
	KindEvent Kind = "EVENT"
	// KindTriggered fires its effect when its trigger event occurs.
	KindTriggered Kind = "TRIGGERED"
	// KindActivated is explicitly activated by paying its costs.
	KindActivated Kind = "ACTIVATED"
	// KindStatic applies continuously while the card is in the right zone.
	KindStatic Kind = "STATIC"
)

// TriggerName is the closed set of events a triggered ability can watch.
type TriggerName string

const (
	// TriggerMaterialized fires when this character enters the battlefield.
	TriggerMaterialized TriggerName = "MATERIALIZED"
	// TriggerDissolved fires when this character leaves play to the void.
	TriggerDissolved TriggerName = "DISSOLVED"
	// TriggerJudgment fires at its controller's judgment phase.
	TriggerJudgment TriggerName = "JUDGMENT"
	// TriggerPlayedCardFromHand fires when its controller plays a card from
	// hand while this character is on the battlefield.
	TriggerPlayedCardFromHand TriggerName = "PLAYED_CARD_FROM_HAND"
)

// StaticKind is the closed set of static ability variants.
type StaticKind string

const (
	// StaticReclaim permits playing the card from the void for Cost; a card
	// played this way is banished when it next leaves play.
	StaticReclaim StaticKind = "RECLAIM"
)

// Ability is one ability of a card definition. Only the fields relevant to
// Kind carry meaning: Event and Triggered use Effect (plus Trigger for the
// latter), Activated uses Costs and Effect, Static uses StaticKind. An
// event may carry an AdditionalCost paid, beyond energy, when the card is
// played.
type Ability struct {
	Kind Kind

	Effect         Effect
	Trigger        TriggerName
	Costs          []Cost
	AdditionalCost *Cost
	Static         StaticKind
	ReclaimCost    core.Energy
}

// Event builds a one-shot ability.
func Event(effect Effect) Ability {
	return Ability{Kind: KindEvent, Effect: effect}
}

// EventWithCost builds a one-shot ability with an additional cost paid when
// the card is played.
func EventWithCost(cost Cost, effect Effect) Ability {
	return Ability{Kind: KindEvent, Effect: effect, AdditionalCost: &cost}
}

// Triggered builds a triggered ability.
func Triggered(trigger TriggerName, effect Effect) Ability {
	return Ability{Kind: KindTriggered, Trigger: trigger, Effect: effect}
}

// Activated builds an activated ability.
func Activated(costs []Cost, effect Effect) Ability {
	return Ability{Kind: KindActivated, Costs: costs, Effect: effect}
}

// Reclaim builds the static reclaim ability with its play-from-void cost.
func Reclaim(cost core.Energy) Ability {
	return Ability{Kind: KindStatic, Static: StaticReclaim, ReclaimCost: cost}
}
