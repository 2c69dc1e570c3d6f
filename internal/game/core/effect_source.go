package core

import "fmt"

// EffectSourceKind describes where a mutation originated.
type EffectSourceKind int

const (
	// SourcePlayerAction marks a mutation caused directly by a submitted action.
	SourcePlayerAction EffectSourceKind = iota
	// SourceTriggered marks a mutation caused by a triggered ability.
	SourceTriggered
	// SourceActivated marks a mutation caused by an activated ability.
	SourceActivated
	// SourceGameRule marks a mutation caused by the engine itself, such as the
	// draw at the start of a turn.
	SourceGameRule
)

// EffectSource is the provenance tag attached to every mutation. It records
// the controlling player and, for ability sources, the originating card.
type EffectSource struct {
	Kind       EffectSourceKind
	Controller PlayerName
	// Card is the originating card for ability sources; HasCard is false for
	// plain player actions and game rules.
	Card          CardID
	HasCard       bool
	AbilityNumber AbilityNumber
}

// PlayerSource returns an EffectSource for a direct player action.
func PlayerSource(controller PlayerName) EffectSource {
	return EffectSource{Kind: SourcePlayerAction, Controller: controller}
}

// RuleSource returns an EffectSource for an engine-rule mutation.
func RuleSource(controller PlayerName) EffectSource {
	return EffectSource{Kind: SourceGameRule, Controller: controller}
}

// TriggeredSource returns an EffectSource for a triggered ability of a card.
func TriggeredSource(controller PlayerName, card CardID, ability AbilityNumber) EffectSource {
	return EffectSource{
		Kind:          SourceTriggered,
		Controller:    controller,
		Card:          card,
		HasCard:       true,
		AbilityNumber: ability,
	}
}

// ActivatedSource returns an EffectSource for an activated ability of a card.
func ActivatedSource(controller PlayerName, card CardID, ability AbilityNumber) EffectSource {
	return EffectSource{
		Kind:          SourceActivated,
		Controller:    controller,
		Card:          card,
		HasCard:       true,
		AbilityNumber: ability,
	}
}

// CardSource returns an EffectSource for a player action originating from a
// specific card, such as playing it from hand.
func CardSource(controller PlayerName, card CardID) EffectSource {
	return EffectSource{Kind: SourcePlayerAction, Controller: controller, Card: card, HasCard: true}
}

func (s EffectSource) String() string {
	switch s.Kind {
	case SourceTriggered:
		return fmt.Sprintf("triggered(%v, card %d)", s.Controller, int(s.Card))
	case SourceActivated:
		return fmt.Sprintf("activated(%v, card %d)", s.Controller, int(s.Card))
	case SourceGameRule:
		return fmt.Sprintf("rule(%v)", s.Controller)
	default:
		if s.HasCard {
			return fmt.Sprintf("action(%v, card %d)", s.Controller, int(s.Card))
		}
		return fmt.Sprintf("action(%v)", s.Controller)
	}
}
