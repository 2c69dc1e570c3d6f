package battle

import (
	"github.com/emberfall/battle-server-go/internal/game/ability"
	"github.com/emberfall/battle-server-go/internal/game/core"
)

// PromptKind discriminates the decision a paused resolution step is waiting
// for.
type PromptKind string

const (
	// PromptChooseCharacter waits for a single battlefield target.
	PromptChooseCharacter PromptKind = "CHOOSE_CHARACTER"
	// PromptChooseStackCard waits for a single stack target.
	PromptChooseStackCard PromptKind = "CHOOSE_STACK_CARD"
	// PromptChooseVoidCards waits for up to MaxSelection void targets plus a
	// submit.
	PromptChooseVoidCards PromptKind = "CHOOSE_VOID_CARDS"
	// PromptChooseHandCards waits for exactly MaxSelection hand cards plus a
	// submit.
	PromptChooseHandCards PromptKind = "CHOOSE_HAND_CARDS"
	// PromptChooseModal waits for one mode of a modal effect.
	PromptChooseModal PromptKind = "CHOOSE_MODAL"
	// PromptOptionalEffect waits for the keep-or-decline decision on an
	// optional effect mid-resolution. Choice 1 applies it, choice 0 skips.
	PromptOptionalEffect PromptKind = "OPTIONAL_EFFECT"
	// PromptMulligan waits for the opening keep-or-mulligan decision.
	PromptMulligan PromptKind = "MULLIGAN"
)

// ContinuationKind says what happens with the player's choice once the
// prompt is answered.
type ContinuationKind string

const (
	// ContinueStackTargets writes the chosen targets onto a pending stack
	// item, then passes priority to the opponent.
	ContinueStackTargets ContinuationKind = "STACK_TARGETS"
	// ContinueStackModal writes the chosen mode onto a pending stack item,
	// then prepares that mode's targets (possibly prompting again).
	ContinueStackModal ContinuationKind = "STACK_MODAL"
	// ContinueResolveEffect applies the pending standard effect with the
	// chosen targets, then resumes the interrupted resolution.
	ContinueResolveEffect ContinuationKind = "RESOLVE_EFFECT"
	// ContinuePayCost pays the pending cost with the chosen cards, then
	// finishes activating the pending ability.
	ContinuePayCost ContinuationKind = "PAY_COST"
	// ContinuePlayCost pays a played card's additional cost with the chosen
	// cards, then finishes playing the pending stack card.
	ContinuePlayCost ContinuationKind = "PLAY_COST"
	// ContinueMulligan records the opening-hand decision.
	ContinueMulligan ContinuationKind = "MULLIGAN"
)

// Continuation is the resumable remainder of a paused step, stored as plain
// data so the battle stays serializable at every pause point.
type Continuation struct {
	Kind ContinuationKind

	// StackCard identifies the pending stack item for play-time prompts.
	StackCard core.StackCardID
	// Pending is the standard effect awaiting targets for resolution-time
	// prompts; Remaining is the rest of the interrupted effect list.
	Pending   ability.StandardEffect
	Remaining []ability.Effect
	// Ability and CostIndex identify the activation being paid for.
	Ability   core.ActivatedAbilityID
	CostIndex int
}

// paysCost reports whether the continuation settles a cost, as opposed to
// an "up to" effect selection.
func (c Continuation) paysCost() bool {
	return c.Kind == ContinuePayCost || c.Kind == ContinuePlayCost
}

// Prompt is a suspended-decision record held inside the battle while
// resolution is paused. At most one prompt is outstanding at a time, and no
// action except the matching response is accepted while it is.
type Prompt struct {
	Kind   PromptKind
	Player core.PlayerName
	Source core.EffectSource

	ValidCharacters []core.CharacterID
	ValidStackCards []core.StackCardID

	ValidVoidCards  []core.VoidCardID
	ChosenVoidCards []core.VoidCardID
	MaxSelection    int

	ValidHandCards  []core.HandCardID
	ChosenHandCards []core.HandCardID

	// ChoiceCount is the number of modes for modal prompts and decision
	// branches for the mulligan prompt.
	ChoiceCount int

	Continuation Continuation
}

func (p *Prompt) clone() *Prompt {
	if p == nil {
		return nil
	}
	out := *p
	out.ValidCharacters = append([]core.CharacterID(nil), p.ValidCharacters...)
	out.ValidStackCards = append([]core.StackCardID(nil), p.ValidStackCards...)
	out.ValidVoidCards = append([]core.VoidCardID(nil), p.ValidVoidCards...)
	out.ChosenVoidCards = append([]core.VoidCardID(nil), p.ChosenVoidCards...)
	out.ValidHandCards = append([]core.HandCardID(nil), p.ValidHandCards...)
	out.ChosenHandCards = append([]core.HandCardID(nil), p.ChosenHandCards...)
	out.Continuation.Remaining = append([]ability.Effect(nil), p.Continuation.Remaining...)
	return &out
}

func containsCharacter(ids []core.CharacterID, id core.CharacterID) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func containsStackCard(ids []core.StackCardID, id core.StackCardID) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func containsVoidCard(ids []core.VoidCardID, id core.VoidCardID) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func containsHandCard(ids []core.HandCardID, id core.HandCardID) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}
