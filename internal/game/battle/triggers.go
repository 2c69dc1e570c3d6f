package battle

import (
	"github.com/emberfall/battle-server-go/internal/game/ability"
	"github.com/emberfall/battle-server-go/internal/game/core"
)

// fireTrigger notifies the registered listeners of a trigger. Materialized
// triggers fire only on the entering card itself; played-card triggers fire
// on every other battlefield card the playing player controls.
func (s *State) fireTrigger(trigger ability.TriggerName, subject core.CardID) {
	listeners := append([]core.CardID(nil), s.Listeners[trigger]...)
	for _, card := range listeners {
		zone, err := s.Cards.Locate(card)
		if err != nil || zone != core.ZoneBattlefield {
			continue
		}
		switch trigger {
		case ability.TriggerMaterialized:
			if card != subject {
				continue
			}
		case ability.TriggerPlayedCardFromHand:
			if card == subject {
				continue
			}
			listenerCtrl, lerr := s.Cards.Controller(card)
			subjectCtrl, serr := s.Cards.Controller(subject)
			if lerr != nil || serr != nil || listenerCtrl != subjectCtrl {
				continue
			}
		}
		for _, trig := range s.Definition(card).TriggeredAbilities() {
			if trig.Ability.Trigger == trigger {
				s.applyTriggeredAbility(card, trig)
			}
		}
	}
}

// fireJudgmentTriggers fires judgment triggers on the active player's
// battlefield at the start of the judgment phase, in battlefield order.
func (s *State) fireJudgmentTriggers(player core.PlayerName) {
	for _, id := range s.Cards.Characters(player) {
		for _, trig := range s.Definition(id.CardID()).TriggeredAbilities() {
			if trig.Ability.Trigger == ability.TriggerJudgment {
				s.applyTriggeredAbility(id.CardID(), trig)
			}
		}
	}
}

// fireDissolvedTriggers applies a dissolved card's own dissolved triggers.
// Called after the card has left the battlefield, so it bypasses the
// listener table.
func (s *State) fireDissolvedTriggers(card core.CardID, triggered []ability.NumberedAbility) {
	for _, trig := range triggered {
		if trig.Ability.Trigger == ability.TriggerDissolved {
			s.applyTriggeredAbility(card, trig)
		}
	}
}
