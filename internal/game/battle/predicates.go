package battle

import (
	"github.com/emberfall/battle-server-go/internal/game/ability"
	"github.com/emberfall/battle-server-go/internal/game/core"
)

// matchesFilter checks a single card against a card filter. It reads catalog
// data and current spark only, never mutating.
func (s *State) matchesFilter(id core.CardID, f ability.CardFilter) bool {
	def := s.Definition(id)
	switch f.Kind {
	case ability.FilterAnyCard:
		return true
	case ability.FilterCharacter:
		return def.Type == ability.TypeCharacter
	case ability.FilterEvent:
		return def.Type == ability.TypeEvent
	case ability.FilterCharacterType:
		return def.Type == ability.TypeCharacter && def.Subtype == f.CharacterType
	case ability.FilterNotCharacterType:
		return def.Type == ability.TypeCharacter && def.Subtype != f.CharacterType
	case ability.FilterCharacterWithSpark:
		if def.Type != ability.TypeCharacter {
			return false
		}
		spark, onField := s.CharacterSpark[id]
		if !onField {
			spark = def.Spark
		}
		return ability.Compare(spark, f.Op, f.Spark)
	case ability.FilterCardWithCost:
		return ability.Compare(def.Cost, f.Op, f.Cost)
	case ability.FilterFast:
		return def.Fast
	default:
		invariantf("unknown card filter kind %q", f.Kind)
		return false
	}
}

// MatchingCharacters returns, in battlefield insertion order, the characters
// a predicate selects relative to an effect source. Evaluation is pure: the
// result depends only on current state.
func (s *State) MatchingCharacters(source core.EffectSource, p ability.Predicate) []core.CharacterID {
	controller := source.Controller
	var out []core.CharacterID
	collect := func(owner core.PlayerName, excludeSource bool) {
		for _, id := range s.Cards.Characters(owner) {
			if excludeSource && source.HasCard && id.CardID() == source.Card {
				continue
			}
			if s.matchesFilter(id.CardID(), p.Filter) {
				out = append(out, id)
			}
		}
	}
	switch p.Relation {
	case ability.RelationYour:
		collect(controller, false)
	case ability.RelationEnemy:
		collect(controller.Opponent(), false)
	case ability.RelationAnother:
		collect(controller, true)
	case ability.RelationAny:
		collect(controller, false)
		collect(controller.Opponent(), false)
	case ability.RelationAnyOther:
		collect(controller, true)
		collect(controller.Opponent(), true)
	case ability.RelationThis:
		if source.HasCard && s.Cards.Contains(controller, source.Card, core.ZoneBattlefield) {
			if s.matchesFilter(source.Card, p.Filter) {
				out = append(out, core.CharacterID{ID: source.Card})
			}
		}
	case ability.RelationThat:
		// That is bound by the caller to a previously chosen card; there is
		// nothing to enumerate here.
	default:
		invariantf("relation %q does not select battlefield characters", p.Relation)
	}
	return out
}

// MatchingStackCards returns the stack cards a predicate selects, bottom
// first. Only enemy-relative relations are meaningful on the stack.
func (s *State) MatchingStackCards(source core.EffectSource, p ability.Predicate) []core.StackCardID {
	var owner core.PlayerName
	switch p.Relation {
	case ability.RelationEnemy:
		owner = source.Controller.Opponent()
	case ability.RelationYour:
		owner = source.Controller
	default:
		invariantf("relation %q does not select stack cards", p.Relation)
	}
	var out []core.StackCardID
	for _, id := range s.Cards.IterateStack() {
		ctrl, err := s.Cards.Controller(id)
		if err != nil {
			invariantf("stack card %d untracked: %v", int(id), err)
		}
		if ctrl != owner {
			continue
		}
		if source.HasCard && id == source.Card {
			continue
		}
		if s.matchesFilter(id, p.Filter) {
			out = append(out, core.StackCardID{ID: id})
		}
	}
	return out
}

// MatchingVoidCards returns the void cards a predicate selects in void
// insertion order.
func (s *State) MatchingVoidCards(source core.EffectSource, p ability.Predicate) []core.VoidCardID {
	var owner core.PlayerName
	switch p.Relation {
	case ability.RelationYourVoid:
		owner = source.Controller
	case ability.RelationEnemyVoid:
		owner = source.Controller.Opponent()
	default:
		invariantf("relation %q does not select void cards", p.Relation)
	}
	var out []core.VoidCardID
	for _, id := range s.Cards.VoidCards(owner) {
		if s.matchesFilter(id.CardID(), p.Filter) {
			out = append(out, id)
		}
	}
	return out
}

// CountMatching counts battlefield characters selected by a counting
// predicate, used by per-matching effects.
func (s *State) CountMatching(source core.EffectSource, p ability.Predicate) int {
	return len(s.MatchingCharacters(source, p))
}
