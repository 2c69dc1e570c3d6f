// Package cards tracks which zone every card in a battle occupies. It is the
// single source of truth for zone membership: nothing else in the engine
// records card positions, and all relocation goes through Move.
package cards

import (
	"errors"
	"fmt"

	"github.com/emberfall/battle-server-go/internal/game/core"
)

var (
	// ErrUnknownCard is returned when an id has never been registered. Callers
	// inside the engine treat this as an invariant violation.
	ErrUnknownCard = errors.New("unknown card")
	// ErrZoneMismatch is returned when a card is not in the zone the caller
	// expected, which is the usual symptom of a stale id.
	ErrZoneMismatch = errors.New("card not in expected zone")
)

// Placement records the authoritative location of one card.
type Placement struct {
	Zone       core.Zone
	Controller core.PlayerName
}

// State is the zone membership map for one battle. Every zone preserves
// insertion order, and that order is observable: iteration is stable across
// repeated calls absent mutation, which keeps replays and cloned AI states
// bit-identical.
//
// The stack is a single shared zone ordered bottom-first; all other zones are
// tracked per player. Fields are exported for gob encoding only; mutate
// exclusively through methods.
type State struct {
	Index map[core.CardID]Placement

	Deck        [2][]core.CardID
	Hand        [2][]core.CardID
	Battlefield [2][]core.CardID
	Void        [2][]core.CardID
	Banished    [2][]core.CardID
	Stack       []core.CardID
}

// NewState creates an empty zone membership map.
func NewState() *State {
	return &State{Index: make(map[core.CardID]Placement)}
}

// Register adds a previously untracked card to a zone. It is only used during
// battle setup; once registered, a card never leaves the map.
func (s *State) Register(controller core.PlayerName, id core.CardID, zone core.Zone) error {
	if _, ok := s.Index[id]; ok {
		return fmt.Errorf("card %d already registered", int(id))
	}
	s.Index[id] = Placement{Zone: zone, Controller: controller}
	s.appendTo(controller, zone, id)
	return nil
}

// Locate returns the zone a card currently occupies.
func (s *State) Locate(id core.CardID) (core.Zone, error) {
	placement, ok := s.Index[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownCard, int(id))
	}
	return placement.Zone, nil
}

// Controller returns the player who controls a card.
func (s *State) Controller(id core.CardID) (core.PlayerName, error) {
	placement, ok := s.Index[id]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownCard, int(id))
	}
	return placement.Controller, nil
}

// Contains reports whether the card is currently in the given zone under the
// given controller.
func (s *State) Contains(controller core.PlayerName, id core.CardID, zone core.Zone) bool {
	placement, ok := s.Index[id]
	return ok && placement.Zone == zone && placement.Controller == controller
}

// Move atomically relocates a card from expectedFrom to the destination
// zone, preserving the relative order of every other card in both zones.
// It fails with ErrZoneMismatch if the card is not currently in expectedFrom
// and with ErrUnknownCard if the id was never registered; on failure no
// state changes.
func (s *State) Move(id core.CardID, expectedFrom, to core.Zone) error {
	placement, ok := s.Index[id]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownCard, int(id))
	}
	if placement.Zone != expectedFrom {
		return fmt.Errorf("%w: card %d is in %v, expected %v",
			ErrZoneMismatch, int(id), placement.Zone, expectedFrom)
	}
	s.removeFrom(placement.Controller, expectedFrom, id)
	s.appendTo(placement.Controller, to, id)
	s.Index[id] = Placement{Zone: to, Controller: placement.Controller}
	return nil
}

// Iterate returns the ids a player has in a zone, in insertion order. The
// returned slice is a copy. For the shared stack zone the player argument is
// ignored; use IterateStack for clarity there.
func (s *State) Iterate(controller core.PlayerName, zone core.Zone) []core.CardID {
	src := s.zoneSlice(controller, zone)
	out := make([]core.CardID, len(*src))
	copy(out, *src)
	return out
}

// IterateStack returns the shared stack, bottom first.
func (s *State) IterateStack() []core.CardID {
	out := make([]core.CardID, len(s.Stack))
	copy(out, s.Stack)
	return out
}

// TopOfStack returns the most recently pushed stack card.
func (s *State) TopOfStack() (core.StackCardID, bool) {
	if len(s.Stack) == 0 {
		return core.StackCardID{}, false
	}
	return core.StackCardID{ID: s.Stack[len(s.Stack)-1]}, true
}

// StackSize returns the number of cards on the stack.
func (s *State) StackSize() int { return len(s.Stack) }

// CountInZone returns how many cards a player has in a zone.
func (s *State) CountInZone(controller core.PlayerName, zone core.Zone) int {
	return len(*s.zoneSlice(controller, zone))
}

// HandCards returns a player's hand as zone-scoped ids, in order.
func (s *State) HandCards(controller core.PlayerName) []core.HandCardID {
	ids := s.Hand[controller]
	out := make([]core.HandCardID, len(ids))
	for i, id := range ids {
		out[i] = core.HandCardID{ID: id}
	}
	return out
}

// DeckCards returns a player's deck as zone-scoped ids, top of deck last.
func (s *State) DeckCards(controller core.PlayerName) []core.DeckCardID {
	ids := s.Deck[controller]
	out := make([]core.DeckCardID, len(ids))
	for i, id := range ids {
		out[i] = core.DeckCardID{ID: id}
	}
	return out
}

// Characters returns a player's battlefield as zone-scoped ids, in order.
func (s *State) Characters(controller core.PlayerName) []core.CharacterID {
	ids := s.Battlefield[controller]
	out := make([]core.CharacterID, len(ids))
	for i, id := range ids {
		out[i] = core.CharacterID{ID: id}
	}
	return out
}

// VoidCards returns a player's void as zone-scoped ids, in order.
func (s *State) VoidCards(controller core.PlayerName) []core.VoidCardID {
	ids := s.Void[controller]
	out := make([]core.VoidCardID, len(ids))
	for i, id := range ids {
		out[i] = core.VoidCardID{ID: id}
	}
	return out
}

// SetDeckOrder replaces a player's deck ordering. Every id already in the
// deck must appear exactly once; this backs shuffling.
func (s *State) SetDeckOrder(controller core.PlayerName, order []core.CardID) error {
	if len(order) != len(s.Deck[controller]) {
		return fmt.Errorf("deck reorder size mismatch: %d != %d",
			len(order), len(s.Deck[controller]))
	}
	seen := make(map[core.CardID]bool, len(order))
	for _, id := range order {
		if !s.Contains(controller, id, core.ZoneDeck) {
			return fmt.Errorf("%w: card %d not in deck", ErrZoneMismatch, int(id))
		}
		if seen[id] {
			return fmt.Errorf("duplicate card %d in deck reorder", int(id))
		}
		seen[id] = true
	}
	s.Deck[controller] = append(s.Deck[controller][:0], order...)
	return nil
}

// Clone returns an independent deep copy with no aliasing back to the
// original.
func (s *State) Clone() *State {
	out := &State{
		Index: make(map[core.CardID]Placement, len(s.Index)),
		Stack: append([]core.CardID(nil), s.Stack...),
	}
	for id, placement := range s.Index {
		out.Index[id] = placement
	}
	for p := 0; p < 2; p++ {
		out.Deck[p] = append([]core.CardID(nil), s.Deck[p]...)
		out.Hand[p] = append([]core.CardID(nil), s.Hand[p]...)
		out.Battlefield[p] = append([]core.CardID(nil), s.Battlefield[p]...)
		out.Void[p] = append([]core.CardID(nil), s.Void[p]...)
		out.Banished[p] = append([]core.CardID(nil), s.Banished[p]...)
	}
	return out
}

func (s *State) zoneSlice(controller core.PlayerName, zone core.Zone) *[]core.CardID {
	switch zone {
	case core.ZoneDeck:
		return &s.Deck[controller]
	case core.ZoneHand:
		return &s.Hand[controller]
	case core.ZoneBattlefield:
		return &s.Battlefield[controller]
	case core.ZoneVoid:
		return &s.Void[controller]
	case core.ZoneBanished:
		return &s.Banished[controller]
	case core.ZoneStack:
		return &s.Stack
	}
	panic(fmt.Sprintf("unhandled zone %v", zone))
}

func (s *State) appendTo(controller core.PlayerName, zone core.Zone, id core.CardID) {
	slice := s.zoneSlice(controller, zone)
	*slice = append(*slice, id)
}

func (s *State) removeFrom(controller core.PlayerName, zone core.Zone, id core.CardID) {
	slice := s.zoneSlice(controller, zone)
	for i, existing := range *slice {
		if existing == id {
			*slice = append((*slice)[:i], (*slice)[i+1:]...)
			return
		}
	}
	panic(fmt.Sprintf("card %d indexed in %v but missing from zone list", int(id), zone))
}
