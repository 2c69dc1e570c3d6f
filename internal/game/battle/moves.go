package battle

import (
	"go.uber.org/zap"

	"github.com/emberfall/battle-server-go/internal/game/ability"
	"github.com/emberfall/battle-server-go/internal/game/core"
)

// drawCard moves the top deck card to its owner's hand. Drawing from an
// empty deck is a logged no-op, not a loss.
func (s *State) drawCard(player core.PlayerName, source core.EffectSource) {
	deck := s.Cards.Deck[player]
	if len(deck) == 0 {
		s.logger.Debug("draw from empty deck skipped",
			zap.String("battle_id", s.ID),
			zap.Stringer("player", player),
		)
		return
	}
	top := deck[len(deck)-1]
	if err := s.Cards.Move(top, core.ZoneDeck, core.ZoneHand); err != nil {
		invariantf("draw rejected: %v", err)
	}
}

// discardFromHand moves a hand card to its owner's void.
func (s *State) discardFromHand(id core.HandCardID) {
	if err := s.Cards.Move(id.CardID(), core.ZoneHand, core.ZoneVoid); err != nil {
		invariantf("discard rejected: %v", err)
	}
}

// enterBattlefield places a card onto the battlefield from any zone,
// initializes its spark from the catalog, registers its trigger listeners
// and fires materialized triggers.
func (s *State) enterBattlefield(id core.CardID, from core.Zone) {
	if err := s.Cards.Move(id, from, core.ZoneBattlefield); err != nil {
		invariantf("materialize rejected: %v", err)
	}
	def := s.Definition(id)
	s.CharacterSpark[id] = def.Spark
	for _, trig := range def.TriggeredAbilities() {
		s.Listeners[trig.Ability.Trigger] = append(s.Listeners[trig.Ability.Trigger], id)
	}
	controller, err := s.Cards.Controller(id)
	if err != nil {
		invariantf("materialized card untracked: %v", err)
	}
	s.logger.Debug("character materialized",
		zap.String("battle_id", s.ID),
		zap.Stringer("player", controller),
		zap.String("card", string(def.Name)),
	)
	s.fireTrigger(ability.TriggerMaterialized, id)
}

// leaveBattlefield removes a character from play into dest, clearing derived
// spark and trigger listeners. Cards marked banish-on-leave are redirected
// to the banished zone regardless of dest. Returns the zone actually
// reached.
func (s *State) leaveBattlefield(id core.CardID, dest core.Zone) core.Zone {
	if s.BanishOnLeave[id] {
		delete(s.BanishOnLeave, id)
		dest = core.ZoneBanished
	}
	if err := s.Cards.Move(id, core.ZoneBattlefield, dest); err != nil {
		invariantf("leave battlefield rejected: %v", err)
	}
	delete(s.CharacterSpark, id)
	for trigger, ids := range s.Listeners {
		filtered := ids[:0]
		for _, listener := range ids {
			if listener != id {
				filtered = append(filtered, listener)
			}
		}
		if len(filtered) == 0 {
			delete(s.Listeners, trigger)
		} else {
			s.Listeners[trigger] = filtered
		}
	}
	return dest
}

// dissolveCharacter sends a battlefield character to its owner's void (or
// banished, if so marked) and fires dissolved triggers.
func (s *State) dissolveCharacter(id core.CharacterID) {
	def := s.Definition(id.CardID())
	controller, err := s.Cards.Controller(id.CardID())
	if err != nil {
		invariantf("dissolved card untracked: %v", err)
	}
	// Capture the card's own dissolved triggers before it leaves play; the
	// listener table is cleared by the move.
	triggered := def.TriggeredAbilities()
	s.leaveBattlefield(id.CardID(), core.ZoneVoid)
	s.logger.Debug("character dissolved",
		zap.String("battle_id", s.ID),
		zap.Stringer("player", controller),
		zap.String("card", string(def.Name)),
	)
	s.fireDissolvedTriggers(id.CardID(), triggered)
}

// banishCharacter removes a battlefield character to the banished zone. No
// dissolved triggers fire; banishing is not dissolving.
func (s *State) banishCharacter(id core.CharacterID) {
	delete(s.BanishOnLeave, id.CardID())
	s.leaveBattlefield(id.CardID(), core.ZoneBanished)
}

// returnToHand bounces a battlefield character to its owner's hand.
func (s *State) returnToHand(id core.CharacterID) {
	s.leaveBattlefield(id.CardID(), core.ZoneHand)
}

// finishStackCard moves a resolved or prevented stack card to its
// terminal zone: battlefield for characters, void for events. Reclaimed
// cards that would reach the void are banished instead.
func (s *State) finishStackCard(id core.StackCardID, prevented bool) {
	def := s.Definition(id.CardID())
	if !prevented && def.Type == ability.TypeCharacter {
		s.enterBattlefield(id.CardID(), core.ZoneStack)
		return
	}
	dest := core.ZoneVoid
	if s.BanishOnLeave[id.CardID()] {
		delete(s.BanishOnLeave, id.CardID())
		dest = core.ZoneBanished
	}
	if err := s.Cards.Move(id.CardID(), core.ZoneStack, dest); err != nil {
		invariantf("stack card exit rejected: %v", err)
	}
}
