package core

import "fmt"

// CardID is the raw per-battle index of a card. It is only handed out wrapped
// in a zone-scoped identifier type; code that holds a bare CardID is expected
// to know which zone it refers to and convert explicitly.
type CardID int

// Zone-scoped card identifiers. Each wraps the same raw index but is a
// distinct type so a hand-card id cannot be passed to a battlefield accessor
// without an explicit conversion at the call site.
type (
	// HandCardID identifies a card in a player's hand.
	HandCardID struct{ ID CardID }
	// DeckCardID identifies a card in a player's deck.
	DeckCardID struct{ ID CardID }
	// CharacterID identifies a character on the battlefield.
	CharacterID struct{ ID CardID }
	// StackCardID identifies a card on the stack.
	StackCardID struct{ ID CardID }
	// VoidCardID identifies a card in a player's void.
	VoidCardID struct{ ID CardID }
	// BanishedCardID identifies a banished card.
	BanishedCardID struct{ ID CardID }
)

func (id HandCardID) CardID() CardID     { return id.ID }
func (id DeckCardID) CardID() CardID     { return id.ID }
func (id CharacterID) CardID() CardID    { return id.ID }
func (id StackCardID) CardID() CardID    { return id.ID }
func (id VoidCardID) CardID() CardID     { return id.ID }
func (id BanishedCardID) CardID() CardID { return id.ID }

func (id HandCardID) String() string     { return fmt.Sprintf("h%d", int(id.ID)) }
func (id DeckCardID) String() string     { return fmt.Sprintf("d%d", int(id.ID)) }
func (id CharacterID) String() string    { return fmt.Sprintf("c%d", int(id.ID)) }
func (id StackCardID) String() string    { return fmt.Sprintf("s%d", int(id.ID)) }
func (id VoidCardID) String() string     { return fmt.Sprintf("v%d", int(id.ID)) }
func (id BanishedCardID) String() string { return fmt.Sprintf("b%d", int(id.ID)) }

// CardIDType is implemented by every zone-scoped identifier.
type CardIDType interface {
	CardID() CardID
}

// CardName identifies a card definition in the static catalog.
type CardName string

// AbilityNumber is the index of an ability within a card definition.
type AbilityNumber int

// ActivatedAbilityID identifies one activated ability of one character.
type ActivatedAbilityID struct {
	Character CharacterID
	Ability   AbilityNumber
}

func (id ActivatedAbilityID) String() string {
	return fmt.Sprintf("%s/a%d", id.Character, int(id.Ability))
}
