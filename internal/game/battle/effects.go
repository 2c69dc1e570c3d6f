package battle

import (
	"go.uber.org/zap"

	"github.com/emberfall/battle-server-go/internal/game/ability"
	"github.com/emberfall/battle-server-go/internal/game/core"
)

// resolveTopOfStack pops the newest stack item and runs its effects. It may
// suspend on a prompt, in which case Resolving carries the remainder until
// the answer arrives.
func (s *State) resolveTopOfStack() {
	if len(s.Items) == 0 {
		invariantf("resolution requested with empty stack")
	}
	item := s.Items[len(s.Items)-1]
	s.Items = s.Items[:len(s.Items)-1]
	s.Priority.resetPasses()

	var effect ability.Effect
	switch item.Kind {
	case StackItemCard:
		def := s.Definition(item.Card.CardID())
		if def.Type == ability.TypeEvent {
			ev, ok := def.EventAbility()
			if !ok {
				invariantf("event %q has no event ability", def.Name)
			}
			effect = ev.Effect
		} else {
			// Characters have no on-resolve effect; materializing is the
			// whole resolution.
			effect = ability.StandardEffectOf(ability.StandardEffect{Kind: ability.EffectNoEffect})
		}
	case StackItemAbility:
		def := s.Definition(item.Ability.Character.CardID())
		found := false
		for _, numbered := range def.ActivatedAbilities() {
			if numbered.Number == item.Ability.Ability {
				effect = numbered.Ability.Effect
				found = true
			}
		}
		if !found {
			invariantf("activated ability %d missing on %q", int(item.Ability.Ability), def.Name)
		}
	default:
		invariantf("unknown stack item kind %q", item.Kind)
	}

	s.Resolving = &ResolutionState{Item: item, Remaining: flattenEffect(effect, item.ModalChoice)}
	s.runResolution()
}

// flattenEffect linearizes an effect tree into the sequence of standard
// effects to apply. Modal nodes collapse to the chosen mode.
func flattenEffect(e ability.Effect, modalChoice int) []ability.Effect {
	switch e.Kind {
	case ability.NodeStandard:
		return []ability.Effect{e}
	case ability.NodeList:
		var out []ability.Effect
		for _, item := range e.Items {
			out = append(out, flattenEffect(item, modalChoice)...)
		}
		return out
	case ability.NodeModal:
		if modalChoice < 0 || modalChoice >= len(e.Choices) {
			invariantf("modal choice %d out of range", modalChoice)
		}
		return flattenEffect(e.Choices[modalChoice].Effect, -1)
	default:
		invariantf("unknown effect node kind %q", e.Kind)
		return nil
	}
}

// runResolution applies the pending effects of the resolving item one at a
// time. A prompt suspends the loop; finishing moves the item's card to its
// terminal zone and returns priority to the active player.
func (s *State) runResolution() {
	for s.Resolving != nil && len(s.Resolving.Remaining) > 0 {
		next := s.Resolving.Remaining[0]
		s.Resolving.Remaining = s.Resolving.Remaining[1:]
		if next.Optional {
			item := s.Resolving.Item
			s.Prompt = &Prompt{
				Kind:        PromptOptionalEffect,
				Player:      item.Controller,
				Source:      item.Source,
				ChoiceCount: 2,
				Continuation: Continuation{
					Kind:    ContinueResolveEffect,
					Pending: next.Standard,
				},
			}
			return
		}
		if !s.applyStandardEffect(s.Resolving.Item, next.Standard, false) {
			// Suspended on a prompt; the continuation resumes this loop.
			return
		}
	}
	if s.Resolving == nil {
		return
	}
	item := s.Resolving.Item
	s.Resolving = nil
	if item.Kind == StackItemCard {
		s.finishStackCard(item.Card, false)
	}
	s.checkWinner()
	if !s.HasWinner {
		// Priority returns to the active player, except during the ending
		// phase where the opponent must keep it to start the next turn.
		s.Priority.Holder = s.Turn.Active
		if s.Turn.Phase == PhaseEnding {
			s.Priority.Holder = s.Turn.Active.Opponent()
		}
		s.Priority.resetPasses()
	}
}

// applyStandardEffect applies one standard effect for a resolving item.
// Returns false when it raised a prompt and resolution must suspend. With
// auto set, selection effects take the first eligible candidates instead of
// prompting; triggered abilities resolve that way. Targets chosen at cast
// time that have since left their zone are skipped.
func (s *State) applyStandardEffect(item StackItem, eff ability.StandardEffect, auto bool) bool {
	controller := item.Controller
	source := item.Source
	switch eff.Kind {
	case ability.EffectNoEffect:
		return true

	case ability.EffectDrawCards:
		for i := 0; i < eff.Count; i++ {
			s.drawCard(controller, source)
		}
		return true

	case ability.EffectGainEnergy:
		s.Players[controller].Energy += eff.Energy
		return true

	case ability.EffectGainEnergyPerMatching:
		n := s.CountMatching(source, eff.Counts)
		s.Players[controller].Energy += eff.Energy * core.Energy(n)
		return true

	case ability.EffectGainPoints:
		s.addPoints(controller, eff.Points)
		return true

	case ability.EffectEnemyGainsPoints:
		s.addPoints(controller.Opponent(), eff.Points)
		return true

	case ability.EffectDissolveCharacter:
		for _, target := range item.TargetCharacters {
			if !s.onBattlefield(target) {
				s.logTargetSkipped(source, target.String())
				continue
			}
			s.dissolveCharacter(target)
		}
		return true

	case ability.EffectBanishCharacter:
		for _, target := range item.TargetCharacters {
			if !s.onBattlefield(target) {
				s.logTargetSkipped(source, target.String())
				continue
			}
			s.banishCharacter(target)
		}
		return true

	case ability.EffectReturnToHand:
		for _, target := range item.TargetCharacters {
			if !s.onBattlefield(target) {
				s.logTargetSkipped(source, target.String())
				continue
			}
			s.returnToHand(target)
		}
		return true

	case ability.EffectGainsSpark:
		for _, target := range item.TargetCharacters {
			if !s.onBattlefield(target) {
				s.logTargetSkipped(source, target.String())
				continue
			}
			s.CharacterSpark[target.CardID()] += eff.Spark
		}
		return true

	case ability.EffectPreventCard:
		for _, target := range item.TargetStackCards {
			if !s.preventStackCard(target) {
				s.logTargetSkipped(source, target.String())
			}
		}
		return true

	case ability.EffectDiscardCards:
		return s.discardEffect(item, controller, eff.Count, auto)

	case ability.EffectEnemyDiscardCards:
		return s.discardEffect(item, controller.Opponent(), eff.Count, auto)

	case ability.EffectDrawThenDiscard:
		for i := 0; i < eff.Count; i++ {
			s.drawCard(controller, source)
		}
		return s.discardEffect(item, controller, eff.DiscardCount, auto)

	case ability.EffectReturnFromVoidToHand:
		return s.voidSelectionEffect(item, eff, false, auto)

	case ability.EffectMaterializeFromVoid:
		return s.voidSelectionEffect(item, eff, true, auto)

	default:
		invariantf("unknown standard effect kind %q", eff.Kind)
		return true
	}
}

// discardEffect discards count cards from chooser's hand. The chooser picks
// which; a hand at or below count discards everything without a prompt, and
// auto mode discards from the front of the hand.
func (s *State) discardEffect(item StackItem, chooser core.PlayerName, count int, auto bool) bool {
	hand := s.Cards.HandCards(chooser)
	if auto && len(hand) > count {
		hand = hand[:count]
	}
	if len(hand) <= count {
		for _, id := range hand {
			s.discardFromHand(id)
		}
		return true
	}
	s.Prompt = &Prompt{
		Kind:           PromptChooseHandCards,
		Player:         chooser,
		Source:         item.Source,
		ValidHandCards: hand,
		MaxSelection:   count,
		Continuation: Continuation{
			Kind: ContinueResolveEffect,
			Pending: ability.StandardEffect{
				Kind:  ability.EffectDiscardCards,
				Count: count,
			},
		},
	}
	return false
}

// voidSelectionEffect has the controller pick up to count matching void
// cards, then returns them to hand or materializes them.
func (s *State) voidSelectionEffect(item StackItem, eff ability.StandardEffect, materialize, auto bool) bool {
	candidates := s.MatchingVoidCards(item.Source, eff.Target)
	if len(candidates) == 0 {
		return true
	}
	if auto && len(candidates) > eff.Count {
		candidates = candidates[:eff.Count]
	}
	if len(candidates) <= eff.Count {
		s.applyVoidSelection(candidates, materialize)
		return true
	}
	pending := eff
	s.Prompt = &Prompt{
		Kind:           PromptChooseVoidCards,
		Player:         item.Controller,
		Source:         item.Source,
		ValidVoidCards: candidates,
		MaxSelection:   eff.Count,
		Continuation: Continuation{
			Kind:    ContinueResolveEffect,
			Pending: pending,
		},
	}
	return false
}

func (s *State) applyVoidSelection(chosen []core.VoidCardID, materialize bool) {
	for _, id := range chosen {
		if materialize {
			s.enterBattlefield(id.CardID(), core.ZoneVoid)
		} else {
			if err := s.Cards.Move(id.CardID(), core.ZoneVoid, core.ZoneHand); err != nil {
				invariantf("void return rejected: %v", err)
			}
		}
	}
}

// preventStackCard removes a still-pending stack card: its item is dropped
// from the resolution order and the card goes to its owner's void without
// its effect ever applying. Reports false when the card already left the
// stack.
func (s *State) preventStackCard(target core.StackCardID) bool {
	for i, pending := range s.Items {
		if pending.Kind == StackItemCard && pending.Card == target {
			s.Items = append(s.Items[:i], s.Items[i+1:]...)
			s.finishStackCard(target, true)
			s.Priority.resetPasses()
			s.logger.Debug("stack card prevented",
				zap.String("battle_id", s.ID),
				zap.String("card", target.String()),
			)
			return true
		}
	}
	return false
}

func (s *State) onBattlefield(id core.CharacterID) bool {
	zone, err := s.Cards.Locate(id.CardID())
	return err == nil && zone == core.ZoneBattlefield
}

func (s *State) logTargetSkipped(source core.EffectSource, target string) {
	s.logger.Debug("effect target no longer valid, skipped",
		zap.String("battle_id", s.ID),
		zap.String("source", source.String()),
		zap.String("target", target),
	)
}

// addPoints awards points and checks the win condition immediately.
func (s *State) addPoints(player core.PlayerName, points core.Points) {
	s.Players[player].Points += points
	s.checkWinner()
}

func (s *State) checkWinner() {
	if s.HasWinner {
		return
	}
	for p := range s.Players {
		if s.Players[p].Points >= s.Config.PointTarget {
			s.HasWinner = true
			s.Winner = core.PlayerName(p)
			s.Prompt = nil
			s.Resolving = nil
			s.logger.Info("battle won",
				zap.String("battle_id", s.ID),
				zap.Stringer("winner", s.Winner),
				zap.Int("points", int(s.Players[p].Points)),
			)
			return
		}
	}
}

// applyTriggeredAbility applies a triggered ability inline, without the
// stack. Targets a triggered effect needs are chosen deterministically, the
// first matching candidates in zone order, and optional effects apply
// without asking.
func (s *State) applyTriggeredAbility(card core.CardID, trig ability.NumberedAbility) {
	controller, err := s.Cards.Controller(card)
	if err != nil {
		invariantf("triggering card untracked: %v", err)
	}
	source := core.TriggeredSource(controller, card, trig.Number)
	item := StackItem{
		Kind:        StackItemAbility,
		Controller:  controller,
		Source:      source,
		ModalChoice: -1,
	}
	for _, eff := range flattenEffect(trig.Ability.Effect, -1) {
		std := eff.Standard
		if std.HasTarget {
			pred, zone := std.TargetSpec()
			item.TargetCharacters = nil
			item.TargetStackCards = nil
			switch zone {
			case ability.TargetBattlefield:
				if matches := s.MatchingCharacters(source, pred); len(matches) > 0 {
					item.TargetCharacters = matches[:1]
				}
			case ability.TargetStack:
				if matches := s.MatchingStackCards(source, pred); len(matches) > 0 {
					item.TargetStackCards = matches[:1]
				}
			}
		}
		if !s.applyStandardEffect(item, std, true) {
			invariantf("triggered ability raised a prompt")
		}
	}
}
