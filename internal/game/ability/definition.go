package ability

import (
	"fmt"

	"github.com/emberfall/battle-server-go/internal/game/core"
)

// CardType is the closed set of card types.
type CardType string

const (
	// TypeCharacter cards materialize onto the battlefield and carry spark.
	TypeCharacter CardType = "CHARACTER"
	// TypeEvent cards resolve their effect and go to the void.
	TypeEvent CardType = "EVENT"
)

// CardDefinition is the static data for one distinct card.
type CardDefinition struct {
	Name    core.CardName
	Type    CardType
	Subtype string
	Cost    core.Energy
	Spark   core.Spark
	// Fast cards may be played while the stack is not empty or during the
	// opponent's turn.
	Fast      bool
	Abilities []Ability
}

// Catalog is the read-only card definition lookup a battle is created with.
// Keeping it an explicit value rather than global state keeps battles
// independently instantiable and parallel-safe.
type Catalog struct {
	definitions map[core.CardName]CardDefinition
}

// NewCatalog builds a catalog from definitions. Duplicate names are
// rejected.
func NewCatalog(definitions []CardDefinition) (*Catalog, error) {
	byName := make(map[core.CardName]CardDefinition, len(definitions))
	for _, def := range definitions {
		if _, ok := byName[def.Name]; ok {
			return nil, fmt.Errorf("duplicate card definition %q", def.Name)
		}
		if def.Name == "" {
			return nil, fmt.Errorf("card definition with empty name")
		}
		byName[def.Name] = def
	}
	return &Catalog{definitions: byName}, nil
}

// Lookup returns the definition for a card name.
func (c *Catalog) Lookup(name core.CardName) (CardDefinition, bool) {
	def, ok := c.definitions[name]
	return def, ok
}

// Len returns the number of definitions in the catalog.
func (c *Catalog) Len() int { return len(c.definitions) }

// EventAbility returns the card's event ability, if it has one.
func (d CardDefinition) EventAbility() (Ability, bool) {
	for _, a := range d.Abilities {
		if a.Kind == KindEvent {
			return a, true
		}
	}
	return Ability{}, false
}

// ReclaimAbility returns the card's reclaim static ability, if any.
func (d CardDefinition) ReclaimAbility() (Ability, bool) {
	for _, a := range d.Abilities {
		if a.Kind == KindStatic && a.Static == StaticReclaim {
			return a, true
		}
	}
	return Ability{}, false
}

// TriggeredAbilities returns the card's triggered abilities with their
// ability numbers.
func (d CardDefinition) TriggeredAbilities() []NumberedAbility {
	return d.abilitiesOfKind(KindTriggered)
}

// ActivatedAbilities returns the card's activated abilities with their
// ability numbers.
func (d CardDefinition) ActivatedAbilities() []NumberedAbility {
	return d.abilitiesOfKind(KindActivated)
}

// NumberedAbility pairs an ability with its index in the definition.
type NumberedAbility struct {
	Number  core.AbilityNumber
	Ability Ability
}

func (d CardDefinition) abilitiesOfKind(kind Kind) []NumberedAbility {
	var out []NumberedAbility
	for i, a := range d.Abilities {
		if a.Kind == kind {
			out = append(out, NumberedAbility{Number: core.AbilityNumber(i), Ability: a})
		}
	}
	return out
}
