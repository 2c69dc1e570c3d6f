package battle

import (
	"fmt"

	"github.com/emberfall/battle-server-go/internal/game/core"
)

// ActionKind discriminates the closed set of externally-issued actions.
type ActionKind string

const (
	ActionPlayCardFromHand ActionKind = "PLAY_CARD_FROM_HAND"
	ActionPlayCardFromVoid ActionKind = "PLAY_CARD_FROM_VOID"
	ActionActivateAbility  ActionKind = "ACTIVATE_ABILITY"
	ActionPassPriority     ActionKind = "PASS_PRIORITY"
	ActionEndTurn          ActionKind = "END_TURN"
	ActionStartNextTurn    ActionKind = "START_NEXT_TURN"

	ActionSelectCharacter   ActionKind = "SELECT_CHARACTER"
	ActionSelectStackCard   ActionKind = "SELECT_STACK_CARD"
	ActionSelectVoidCard    ActionKind = "SELECT_VOID_CARD"
	ActionSubmitVoidCards   ActionKind = "SUBMIT_VOID_CARDS"
	ActionSelectHandCard    ActionKind = "SELECT_HAND_CARD"
	ActionSubmitHandCards   ActionKind = "SUBMIT_HAND_CARDS"
	ActionSelectModalChoice ActionKind = "SELECT_MODAL_CHOICE"
	ActionSubmitMulligan    ActionKind = "SUBMIT_MULLIGAN"
)

// Action is one externally-issued battle action, the only accepted engine
// input. It is a comparable value type so action sets can be deduplicated
// and compared directly. Only the fields relevant to Kind carry meaning.
type Action struct {
	Kind ActionKind

	HandCard  core.HandCardID
	VoidCard  core.VoidCardID
	Character core.CharacterID
	StackCard core.StackCardID
	Ability   core.ActivatedAbilityID
	Choice    int
	Mulligan  bool
}

// Constructors for each action variant.

func PlayCardFromHand(id core.HandCardID) Action {
	return Action{Kind: ActionPlayCardFromHand, HandCard: id}
}

func PlayCardFromVoid(id core.VoidCardID) Action {
	return Action{Kind: ActionPlayCardFromVoid, VoidCard: id}
}

func ActivateAbility(id core.ActivatedAbilityID) Action {
	return Action{Kind: ActionActivateAbility, Ability: id}
}

func PassPriority() Action { return Action{Kind: ActionPassPriority} }

func EndTurn() Action { return Action{Kind: ActionEndTurn} }

func StartNextTurn() Action { return Action{Kind: ActionStartNextTurn} }

func SelectCharacter(id core.CharacterID) Action {
	return Action{Kind: ActionSelectCharacter, Character: id}
}

func SelectStackCard(id core.StackCardID) Action {
	return Action{Kind: ActionSelectStackCard, StackCard: id}
}

func SelectVoidCard(id core.VoidCardID) Action {
	return Action{Kind: ActionSelectVoidCard, VoidCard: id}
}

func SubmitVoidCards() Action { return Action{Kind: ActionSubmitVoidCards} }

func SelectHandCard(id core.HandCardID) Action {
	return Action{Kind: ActionSelectHandCard, HandCard: id}
}

func SubmitHandCards() Action { return Action{Kind: ActionSubmitHandCards} }

func SelectModalChoice(index int) Action {
	return Action{Kind: ActionSelectModalChoice, Choice: index}
}

func SubmitMulligan(mulligan bool) Action {
	return Action{Kind: ActionSubmitMulligan, Mulligan: mulligan}
}

func (a Action) String() string {
	switch a.Kind {
	case ActionPlayCardFromHand:
		return fmt.Sprintf("PlayCardFromHand(%s)", a.HandCard)
	case ActionPlayCardFromVoid:
		return fmt.Sprintf("PlayCardFromVoid(%s)", a.VoidCard)
	case ActionActivateAbility:
		return fmt.Sprintf("ActivateAbility(%s)", a.Ability)
	case ActionSelectCharacter:
		return fmt.Sprintf("SelectCharacter(%s)", a.Character)
	case ActionSelectStackCard:
		return fmt.Sprintf("SelectStackCard(%s)", a.StackCard)
	case ActionSelectVoidCard:
		return fmt.Sprintf("SelectVoidCard(%s)", a.VoidCard)
	case ActionSelectHandCard:
		return fmt.Sprintf("SelectHandCard(%s)", a.HandCard)
	case ActionSelectModalChoice:
		return fmt.Sprintf("SelectModalChoice(%d)", a.Choice)
	case ActionSubmitMulligan:
		return fmt.Sprintf("SubmitMulligan(%t)", a.Mulligan)
	default:
		return string(a.Kind)
	}
}
