package battle

import (
	"github.com/emberfall/battle-server-go/internal/game/ability"
	"github.com/emberfall/battle-server-go/internal/game/core"
)

// canPayCost reports whether one cost is currently payable, without paying
// it.
func (s *State) canPayCost(player core.PlayerName, source core.EffectSource, c ability.Cost) bool {
	switch c.Kind {
	case ability.CostEnergy:
		return s.Players[player].Energy >= c.Energy
	case ability.CostDiscard:
		return len(s.Cards.HandCards(player)) >= c.Count
	case ability.CostAbandon:
		return len(s.MatchingCharacters(source, c.Target)) >= c.Count
	case ability.CostBanishFromVoid:
		return len(s.MatchingVoidCards(source, c.Target)) >= c.Count
	default:
		invariantf("unknown cost kind %q", c.Kind)
		return false
	}
}

// canPayAllCosts checks every cost of an ability against the current state.
// Payability is checked jointly only in the trivial sense; distinct costs
// competing for the same cards do not occur in the catalog.
func (s *State) canPayAllCosts(player core.PlayerName, source core.EffectSource, costs []ability.Cost) bool {
	for _, c := range costs {
		if !s.canPayCost(player, source, c) {
			return false
		}
	}
	return true
}

// canPayAdditionalCost checks a played card's additional cost before the
// card leaves its zone. The card itself never counts toward its own price.
func (s *State) canPayAdditionalCost(player core.PlayerName, card core.CardID, c ability.Cost, fromVoid bool) bool {
	source := core.CardSource(player, card)
	switch c.Kind {
	case ability.CostDiscard:
		hand := len(s.Cards.HandCards(player))
		if !fromVoid {
			hand--
		}
		return hand >= c.Count
	case ability.CostBanishFromVoid:
		n := 0
		for _, id := range s.MatchingVoidCards(source, c.Target) {
			if fromVoid && id.CardID() == card {
				continue
			}
			n++
		}
		return n >= c.Count
	default:
		return s.canPayCost(player, source, c)
	}
}

// abandonCharacter moves a player's own character to the void as a cost.
// Abandoning is not dissolving: no dissolved triggers fire.
func (s *State) abandonCharacter(id core.CharacterID) {
	s.leaveBattlefield(id.CardID(), core.ZoneVoid)
}

// payActivationCosts pays the costs of an activated ability starting at
// startIndex. Returns false when a cost needs a selection and a prompt was
// raised; the continuation resumes at the suspended index. Costs needing
// more cards than a prompt can express take the first eligible ones in zone
// order.
func (s *State) payActivationCosts(abilityID core.ActivatedAbilityID, costs []ability.Cost, startIndex int) bool {
	player, err := s.Cards.Controller(abilityID.Character.CardID())
	if err != nil {
		invariantf("activating character untracked: %v", err)
	}
	source := core.ActivatedSource(player, abilityID.Character.CardID(), abilityID.Ability)
	for i := startIndex; i < len(costs); i++ {
		c := costs[i]
		switch c.Kind {
		case ability.CostEnergy:
			if s.Players[player].Energy < c.Energy {
				invariantf("energy cost paid without funds")
			}
			s.Players[player].Energy -= c.Energy

		case ability.CostDiscard:
			hand := s.Cards.HandCards(player)
			if len(hand) < c.Count {
				invariantf("discard cost paid with short hand")
			}
			if len(hand) == c.Count {
				for _, id := range hand {
					s.discardFromHand(id)
				}
				continue
			}
			s.Prompt = &Prompt{
				Kind:           PromptChooseHandCards,
				Player:         player,
				Source:         source,
				ValidHandCards: hand,
				MaxSelection:   c.Count,
				Continuation: Continuation{
					Kind:      ContinuePayCost,
					Ability:   abilityID,
					CostIndex: i,
				},
			}
			return false

		case ability.CostAbandon:
			candidates := s.MatchingCharacters(source, c.Target)
			if len(candidates) < c.Count {
				invariantf("abandon cost paid without candidates")
			}
			if len(candidates) == c.Count || c.Count > 1 {
				for _, id := range candidates[:c.Count] {
					s.abandonCharacter(id)
				}
				continue
			}
			s.Prompt = &Prompt{
				Kind:            PromptChooseCharacter,
				Player:          player,
				Source:          source,
				ValidCharacters: candidates,
				Continuation: Continuation{
					Kind:      ContinuePayCost,
					Ability:   abilityID,
					CostIndex: i,
				},
			}
			return false

		case ability.CostBanishFromVoid:
			candidates := s.MatchingVoidCards(source, c.Target)
			if len(candidates) < c.Count {
				invariantf("void banish cost paid without candidates")
			}
			if len(candidates) == c.Count || c.Count > 1 {
				for _, id := range candidates[:c.Count] {
					if moveErr := s.Cards.Move(id.CardID(), core.ZoneVoid, core.ZoneBanished); moveErr != nil {
						invariantf("void banish rejected: %v", moveErr)
					}
				}
				continue
			}
			s.Prompt = &Prompt{
				Kind:           PromptChooseVoidCards,
				Player:         player,
				Source:         source,
				ValidVoidCards: candidates,
				MaxSelection:   c.Count,
				Continuation: Continuation{
					Kind:      ContinuePayCost,
					Ability:   abilityID,
					CostIndex: i,
				},
			}
			return false

		default:
			invariantf("unknown cost kind %q", c.Kind)
		}
	}
	return true
}

// payAdditionalCost pays a played card's additional cost. The card is
// already on the stack. Returns false when a selection prompt was raised;
// the continuation finishes the play.
func (s *State) payAdditionalCost(item StackItem, c ability.Cost) bool {
	player := item.Controller
	cont := Continuation{Kind: ContinuePlayCost, StackCard: item.Card}
	switch c.Kind {
	case ability.CostEnergy:
		if s.Players[player].Energy < c.Energy {
			invariantf("additional energy cost paid without funds")
		}
		s.Players[player].Energy -= c.Energy
		return true

	case ability.CostDiscard:
		hand := s.Cards.HandCards(player)
		if len(hand) < c.Count {
			invariantf("additional discard cost paid with short hand")
		}
		if len(hand) == c.Count {
			for _, id := range hand {
				s.discardFromHand(id)
			}
			return true
		}
		s.Prompt = &Prompt{
			Kind:           PromptChooseHandCards,
			Player:         player,
			Source:         item.Source,
			ValidHandCards: hand,
			MaxSelection:   c.Count,
			Continuation:   cont,
		}
		return false

	case ability.CostAbandon:
		candidates := s.MatchingCharacters(item.Source, c.Target)
		if len(candidates) < c.Count {
			invariantf("additional abandon cost paid without candidates")
		}
		if len(candidates) == c.Count || c.Count > 1 {
			for _, id := range candidates[:c.Count] {
				s.abandonCharacter(id)
			}
			return true
		}
		s.Prompt = &Prompt{
			Kind:            PromptChooseCharacter,
			Player:          player,
			Source:          item.Source,
			ValidCharacters: candidates,
			Continuation:    cont,
		}
		return false

	case ability.CostBanishFromVoid:
		candidates := s.MatchingVoidCards(item.Source, c.Target)
		if len(candidates) < c.Count {
			invariantf("additional void banish cost paid without candidates")
		}
		if len(candidates) == c.Count || c.Count > 1 {
			for _, id := range candidates[:c.Count] {
				if err := s.Cards.Move(id.CardID(), core.ZoneVoid, core.ZoneBanished); err != nil {
					invariantf("void banish rejected: %v", err)
				}
			}
			return true
		}
		s.Prompt = &Prompt{
			Kind:           PromptChooseVoidCards,
			Player:         player,
			Source:         item.Source,
			ValidVoidCards: candidates,
			MaxSelection:   c.Count,
			Continuation:   cont,
		}
		return false

	default:
		invariantf("unknown cost kind %q", c.Kind)
		return false
	}
}
