package ability

import (
	"fmt"

	"github.com/emberfall/battle-server-go/internal/game/core"
)

// Operator compares a card's numeric property against a reference value.
type Operator string

const (
	OpOrLess  Operator = "OR_LESS"
	OpExactly Operator = "EXACTLY"
	OpOrMore  Operator = "OR_MORE"
)

// Compare applies the operator with the reference value on the right-hand
// side: Compare(5, OpOrLess, 7) asks "is 5 at most 7".
func Compare[T ~int](value T, op Operator, reference T) bool {
	switch op {
	case OpOrLess:
		return value <= reference
	case OpExactly:
		return value == reference
	case OpOrMore:
		return value >= reference
	}
	panic(fmt.Sprintf("unhandled operator %q", op))
}

// Relation is the ownership half of a targeting predicate: whose cards the
// predicate ranges over, relative to the effect's controller.
type Relation string

const (
	// RelationYour matches cards the controller controls.
	RelationYour Relation = "YOUR"
	// RelationEnemy matches cards the opponent controls.
	RelationEnemy Relation = "ENEMY"
	// RelationAnother matches the controller's cards excluding the source.
	RelationAnother Relation = "ANOTHER"
	// RelationAny matches either player's cards.
	RelationAny Relation = "ANY"
	// RelationAnyOther matches either player's cards excluding the source.
	RelationAnyOther Relation = "ANY_OTHER"
	// RelationThis matches only the source card itself.
	RelationThis Relation = "THIS"
	// RelationThat matches only the card that caused the current trigger.
	RelationThat Relation = "THAT"
	// RelationYourVoid matches cards in the controller's void.
	RelationYourVoid Relation = "YOUR_VOID"
	// RelationEnemyVoid matches cards in the opponent's void.
	RelationEnemyVoid Relation = "ENEMY_VOID"
)

// CardFilterKind discriminates the card-property half of a predicate.
type CardFilterKind string

const (
	FilterAnyCard            CardFilterKind = "ANY_CARD"
	FilterCharacter          CardFilterKind = "CHARACTER"
	FilterEvent              CardFilterKind = "EVENT"
	FilterCharacterType      CardFilterKind = "CHARACTER_TYPE"
	FilterNotCharacterType   CardFilterKind = "NOT_CHARACTER_TYPE"
	FilterCharacterWithSpark CardFilterKind = "CHARACTER_WITH_SPARK"
	FilterCardWithCost       CardFilterKind = "CARD_WITH_COST"
	FilterFast               CardFilterKind = "FAST"
)

// CardFilter constrains which cards a predicate matches by type or numeric
// property. Only the fields relevant to Kind are meaningful.
type CardFilter struct {
	Kind          CardFilterKind
	CharacterType string
	Spark         core.Spark
	Cost          core.Energy
	Op            Operator
}

// Predicate is a targeting filter: an ownership relation combined with a
// card filter, evaluated against current state to produce a target set.
type Predicate struct {
	Relation Relation
	Filter   CardFilter
}

// Convenience constructors for the common predicate shapes.

func YourCharacters() Predicate {
	return Predicate{Relation: RelationYour, Filter: CardFilter{Kind: FilterCharacter}}
}

func EnemyCharacters() Predicate {
	return Predicate{Relation: RelationEnemy, Filter: CardFilter{Kind: FilterCharacter}}
}

func AnyCharacter() Predicate {
	return Predicate{Relation: RelationAny, Filter: CardFilter{Kind: FilterCharacter}}
}

func EnemyStackCards() Predicate {
	return Predicate{Relation: RelationEnemy, Filter: CardFilter{Kind: FilterAnyCard}}
}

func EnemyStackEvents() Predicate {
	return Predicate{Relation: RelationEnemy, Filter: CardFilter{Kind: FilterEvent}}
}

func YourVoidCards() Predicate {
	return Predicate{Relation: RelationYourVoid, Filter: CardFilter{Kind: FilterAnyCard}}
}

func YourVoidCharacters() Predicate {
	return Predicate{Relation: RelationYourVoid, Filter: CardFilter{Kind: FilterCharacter}}
}
