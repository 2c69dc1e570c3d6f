package battle

import (
	"github.com/emberfall/battle-server-go/internal/game/ability"
	"github.com/emberfall/battle-server-go/internal/game/core"
)

// LegalActionsKind classifies what a player may currently do.
type LegalActionsKind string

const (
	// LegalGameOver: the battle has a winner; nothing is legal.
	LegalGameOver LegalActionsKind = "GAME_OVER"
	// LegalOpponentPrompt: the other player holds an open prompt.
	LegalOpponentPrompt LegalActionsKind = "OPPONENT_PROMPT"
	// LegalOpponentPriority: the other player holds priority.
	LegalOpponentPriority LegalActionsKind = "OPPONENT_PRIORITY"
	// LegalPrompt: this player must answer the open prompt.
	LegalPrompt LegalActionsKind = "PROMPT"
	// LegalStandard: this player holds priority and acts normally.
	LegalStandard LegalActionsKind = "STANDARD"
)

// LegalActions is the complete set of actions a player may submit right
// now. Execute accepts an action exactly when it appears here.
type LegalActions struct {
	Kind    LegalActionsKind
	actions []Action
}

// All returns every legal action. The slice is a copy.
func (l LegalActions) All() []Action {
	return append([]Action(nil), l.actions...)
}

// Contains reports whether an action is legal.
func (l LegalActions) Contains(action Action) bool {
	for _, a := range l.actions {
		if a == action {
			return true
		}
	}
	return false
}

// Len returns the number of legal actions.
func (l LegalActions) Len() int { return len(l.actions) }

// LegalActions enumerates everything a player may do in the current state.
// The enumeration is pure: it never mutates the battle.
func (s *State) LegalActions(player core.PlayerName) LegalActions {
	if s.HasWinner {
		return LegalActions{Kind: LegalGameOver}
	}
	if s.Prompt != nil {
		if s.Prompt.Player != player {
			return LegalActions{Kind: LegalOpponentPrompt}
		}
		return LegalActions{Kind: LegalPrompt, actions: s.promptActions()}
	}
	if s.Priority.Holder != player {
		return LegalActions{Kind: LegalOpponentPriority}
	}
	return LegalActions{Kind: LegalStandard, actions: s.standardActions(player)}
}

// promptActions enumerates the valid answers to the open prompt.
func (s *State) promptActions() []Action {
	p := s.Prompt
	var out []Action
	switch p.Kind {
	case PromptChooseCharacter:
		for _, id := range p.ValidCharacters {
			out = append(out, SelectCharacter(id))
		}
	case PromptChooseStackCard:
		for _, id := range p.ValidStackCards {
			out = append(out, SelectStackCard(id))
		}
	case PromptChooseVoidCards:
		if len(p.ChosenVoidCards) < p.MaxSelection {
			for _, id := range p.ValidVoidCards {
				if !containsVoidCard(p.ChosenVoidCards, id) {
					out = append(out, SelectVoidCard(id))
				}
			}
		}
		// Cost payments must banish the full count. Effect selections are
		// "up to" and may be submitted at any size, including empty.
		if !p.Continuation.paysCost() || len(p.ChosenVoidCards) == p.MaxSelection {
			out = append(out, SubmitVoidCards())
		}
	case PromptChooseHandCards:
		if len(p.ChosenHandCards) < p.MaxSelection {
			for _, id := range p.ValidHandCards {
				if !containsHandCard(p.ChosenHandCards, id) {
					out = append(out, SelectHandCard(id))
				}
			}
		}
		if len(p.ChosenHandCards) == p.MaxSelection {
			out = append(out, SubmitHandCards())
		}
	case PromptChooseModal:
		def := s.Definition(p.Continuation.StackCard.CardID())
		ev, ok := def.EventAbility()
		if !ok {
			invariantf("modal prompt for %q without event ability", def.Name)
		}
		for _, i := range s.affordableModes(p.Player, ev.Effect) {
			out = append(out, SelectModalChoice(i))
		}
	case PromptOptionalEffect:
		out = append(out, SelectModalChoice(0), SelectModalChoice(1))
	case PromptMulligan:
		out = append(out, SubmitMulligan(false), SubmitMulligan(true))
	default:
		invariantf("unknown prompt kind %q", p.Kind)
	}
	return out
}

// standardActions enumerates plays, activations and the phase actions for
// the priority holder. With a non-empty stack only fast cards and the pass
// are available; during the opponent's ending phase the player may respond
// with fast cards or start their turn.
func (s *State) standardActions(player core.PlayerName) []Action {
	var out []Action
	stackEmpty := len(s.Items) == 0
	active := player == s.Turn.Active

	switch {
	case !stackEmpty:
		out = append(out, PassPriority())
		out = append(out, s.playActions(player, true)...)
	case active && s.Turn.Phase == PhaseMain:
		out = append(out, EndTurn())
		out = append(out, s.playActions(player, false)...)
		out = append(out, s.activationActions(player)...)
	case !active && s.Turn.Phase == PhaseEnding:
		out = append(out, StartNextTurn())
		out = append(out, s.playActions(player, true)...)
	default:
		// Priority held out of phase, e.g. handed back mid-turn. Passing is
		// always available.
		out = append(out, PassPriority())
	}
	return out
}

// playActions enumerates the playable hand and void cards. With fastOnly
// set, only fast cards qualify.
func (s *State) playActions(player core.PlayerName, fastOnly bool) []Action {
	var out []Action
	for _, id := range s.Cards.HandCards(player) {
		if s.canPlay(player, id.CardID(), fastOnly, false) {
			out = append(out, PlayCardFromHand(id))
		}
	}
	for _, id := range s.Cards.VoidCards(player) {
		if s.canPlay(player, id.CardID(), fastOnly, true) {
			out = append(out, PlayCardFromVoid(id))
		}
	}
	return out
}

// canPlay checks cost, timing and target availability for one card.
// Targeted events need at least one candidate to be playable at all, and
// modal cards need at least one affordable mode.
func (s *State) canPlay(player core.PlayerName, id core.CardID, fastOnly, fromVoid bool) bool {
	def := s.Definition(id)
	if fastOnly && !def.Fast {
		return false
	}
	cost := def.Cost
	if fromVoid {
		reclaim, ok := def.ReclaimAbility()
		if !ok {
			return false
		}
		cost = reclaim.ReclaimCost
	}
	if s.Players[player].Energy < cost {
		return false
	}
	if def.Type != ability.TypeEvent {
		return true
	}
	ev, ok := def.EventAbility()
	if !ok {
		return false
	}
	if ev.AdditionalCost != nil && !s.canPayAdditionalCost(player, id, *ev.AdditionalCost, fromVoid) {
		return false
	}
	source := core.CardSource(player, id)
	if ev.Effect.Kind == ability.NodeModal {
		remaining := s.Players[player].Energy - cost
		for _, choice := range ev.Effect.Choices {
			if remaining >= choice.EnergyCost && s.effectHasRequiredTargets(source, choice.Effect, -1) {
				return true
			}
		}
		return false
	}
	return s.effectHasRequiredTargets(source, ev.Effect, -1)
}

// activationActions enumerates the payable activated abilities on the
// player's battlefield.
func (s *State) activationActions(player core.PlayerName) []Action {
	var out []Action
	for _, character := range s.Cards.Characters(player) {
		def := s.Definition(character.CardID())
		for _, numbered := range def.ActivatedAbilities() {
			id := core.ActivatedAbilityID{Character: character, Ability: numbered.Number}
			source := core.ActivatedSource(player, character.CardID(), numbered.Number)
			if !s.canPayAllCosts(player, source, numbered.Ability.Costs) {
				continue
			}
			if !s.effectHasRequiredTargets(source, numbered.Ability.Effect, -1) {
				continue
			}
			out = append(out, ActivateAbility(id))
		}
	}
	return out
}
