package battle

import (
	"testing"

	"go.uber.org/zap"

	"github.com/emberfall/battle-server-go/internal/game/ability"
	"github.com/emberfall/battle-server-go/internal/game/core"
)

// testCatalog builds a small fixed card set covering the effect kinds the
// tests exercise.
func testCatalog(t *testing.T) *ability.Catalog {
	t.Helper()
	defs := []ability.CardDefinition{
		{
			Name:  "Vanilla",
			Type:  ability.TypeCharacter,
			Cost:  2,
			Spark: 2,
		},
		{
			Name:  "Cheap",
			Type:  ability.TypeCharacter,
			Cost:  1,
			Spark: 1,
		},
		{
			Name:  "Greeter",
			Type:  ability.TypeCharacter,
			Cost:  2,
			Spark: 1,
			Abilities: []ability.Ability{
				ability.Triggered(ability.TriggerMaterialized, ability.StandardEffectOf(ability.StandardEffect{
					Kind:  ability.EffectDrawCards,
					Count: 1,
				})),
			},
		},
		{
			Name:  "Scholar",
			Type:  ability.TypeCharacter,
			Cost:  1,
			Spark: 1,
			Abilities: []ability.Ability{
				ability.Activated(
					[]ability.Cost{ability.EnergyCost(2)},
					ability.StandardEffectOf(ability.StandardEffect{
						Kind:  ability.EffectDrawCards,
						Count: 1,
					}),
				),
			},
		},
		{
			Name: "Bolt",
			Type: ability.TypeEvent,
			Cost: 1,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:      ability.EffectDissolveCharacter,
					Target:    ability.EnemyCharacters(),
					HasTarget: true,
				})),
			},
		},
		{
			Name: "Counter",
			Type: ability.TypeEvent,
			Cost: 1,
			Fast: true,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:      ability.EffectPreventCard,
					Target:    ability.EnemyStackCards(),
					HasTarget: true,
				})),
			},
		},
		{
			Name: "Insight",
			Type: ability.TypeEvent,
			Cost: 1,
			Fast: true,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:  ability.EffectDrawCards,
					Count: 1,
				})),
			},
		},
		{
			Name: "Ritual",
			Type: ability.TypeEvent,
			Cost: 1,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:   ability.EffectGainEnergy,
					Energy: 2,
				})),
				ability.Reclaim(2),
			},
		},
		{
			Name: "Tribute",
			Type: ability.TypeEvent,
			Cost: 1,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:   ability.EffectGainPoints,
					Points: 3,
				})),
			},
		},
		{
			Name: "Shear",
			Type: ability.TypeEvent,
			Cost: 1,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:  ability.EffectEnemyDiscardCards,
					Count: 1,
				})),
			},
		},
		{
			Name: "Snipe",
			Type: ability.TypeEvent,
			Cost: 1,
			Fast: true,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:      ability.EffectDissolveCharacter,
					Target:    ability.EnemyCharacters(),
					HasTarget: true,
				})),
			},
		},
		{
			Name: "Gravedig",
			Type: ability.TypeEvent,
			Cost: 1,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:      ability.EffectReturnFromVoidToHand,
					Count:     1,
					Target:    ability.YourVoidCards(),
					HasTarget: true,
				})),
			},
		},
		{
			Name: "Fork",
			Type: ability.TypeEvent,
			Cost: 1,
			Abilities: []ability.Ability{
				ability.Event(ability.ModalOf(
					ability.ModalChoice{
						EnergyCost: 0,
						Effect: ability.StandardEffectOf(ability.StandardEffect{
							Kind:   ability.EffectGainEnergy,
							Energy: 2,
						}),
					},
					ability.ModalChoice{
						EnergyCost: 1,
						Effect: ability.StandardEffectOf(ability.StandardEffect{
							Kind:  ability.EffectDrawCards,
							Count: 1,
						}),
					},
				)),
			},
		},
		{
			Name:  "Cremator",
			Type:  ability.TypeCharacter,
			Cost:  1,
			Spark: 1,
			Abilities: []ability.Ability{
				ability.Activated(
					[]ability.Cost{ability.AbandonCost(1, ability.YourCharacters())},
					ability.StandardEffectOf(ability.StandardEffect{
						Kind: ability.EffectNoEffect,
					}),
				),
				ability.Activated(
					[]ability.Cost{ability.BanishFromVoidCost(1, ability.YourVoidCards())},
					ability.StandardEffectOf(ability.StandardEffect{
						Kind:  ability.EffectDrawCards,
						Count: 1,
					}),
				),
			},
		},
		{
			Name: "Offering",
			Type: ability.TypeEvent,
			Cost: 1,
			Abilities: []ability.Ability{
				ability.EventWithCost(
					ability.DiscardCost(1),
					ability.StandardEffectOf(ability.StandardEffect{
						Kind:  ability.EffectDrawCards,
						Count: 2,
					}),
				),
			},
		},
		{
			Name: "Tithe",
			Type: ability.TypeEvent,
			Cost: 1,
			Abilities: []ability.Ability{
				ability.EventWithCost(
					ability.AbandonCost(1, ability.YourCharacters()),
					ability.StandardEffectOf(ability.StandardEffect{
						Kind:   ability.EffectGainPoints,
						Points: 2,
					}),
				),
			},
		},
		{
			Name: "Stoke",
			Type: ability.TypeEvent,
			Cost: 1,
			Abilities: []ability.Ability{
				ability.Event(ability.ListOf(
					ability.StandardEffectOf(ability.StandardEffect{
						Kind:   ability.EffectGainEnergy,
						Energy: 1,
					}),
					ability.OptionalOf(ability.StandardEffectOf(ability.StandardEffect{
						Kind:  ability.EffectDrawCards,
						Count: 1,
					})),
				)),
			},
		},
		{
			Name:  "Pyre",
			Type:  ability.TypeCharacter,
			Cost:  1,
			Spark: 1,
			Abilities: []ability.Ability{
				ability.Activated(
					[]ability.Cost{
						ability.EnergyCost(1),
						ability.AbandonCost(1, ability.YourCharacters()),
					},
					ability.StandardEffectOf(ability.StandardEffect{
						Kind:  ability.EffectDrawCards,
						Count: 1,
					}),
				),
			},
		},
	}
	catalog, err := ability.NewCatalog(defs)
	if err != nil {
		t.Fatalf("failed to build test catalog: %v", err)
	}
	return catalog
}

// deckOf returns a deck of n copies of one card.
func deckOf(name core.CardName, n int) []core.CardName {
	deck := make([]core.CardName, n)
	for i := range deck {
		deck[i] = name
	}
	return deck
}

// newTestBattle starts a battle from two single-card decks with a fixed
// seed and no mulligan.
func newTestBattle(t *testing.T, deckOne, deckTwo []core.CardName) *State {
	t.Helper()
	cfg := Config{
		DeckOne:         deckOne,
		DeckTwo:         deckTwo,
		FirstPlayer:     core.PlayerOne,
		Seed:            42,
		OpeningHandSize: 5,
		PointTarget:     25,
	}
	s, err := New(cfg, testCatalog(t), zap.NewNop())
	if err != nil {
		t.Fatalf("failed to create battle: %v", err)
	}
	return s
}

// mustExecute fails the test if the action is rejected.
func mustExecute(t *testing.T, s *State, player core.PlayerName, action Action) {
	t.Helper()
	if err := s.Execute(player, action); err != nil {
		t.Fatalf("action %s for %v rejected: %v", action, player, err)
	}
}

// endAndStart has the active player end their turn and the opponent start
// the next one.
func endAndStart(t *testing.T, s *State) {
	t.Helper()
	active := s.Turn.Active
	mustExecute(t, s, active, EndTurn())
	mustExecute(t, s, active.Opponent(), StartNextTurn())
}

// advanceToEnergy ends and starts turns until the given player is active in
// their main phase with at least the requested energy.
func advanceToEnergy(t *testing.T, s *State, player core.PlayerName, energy core.Energy) {
	t.Helper()
	for i := 0; i < 64; i++ {
		if s.Turn.Active == player && s.Turn.Phase == PhaseMain && s.Players[player].Energy >= energy {
			return
		}
		endAndStart(t, s)
	}
	t.Fatalf("never reached %d energy for %v", energy, player)
}

// firstHandCard returns the first card in the player's hand.
func firstHandCard(t *testing.T, s *State, player core.PlayerName) core.HandCardID {
	t.Helper()
	hand := s.Cards.HandCards(player)
	if len(hand) == 0 {
		t.Fatalf("%v has an empty hand", player)
	}
	return hand[0]
}

// resolveByPassing passes priority with both players until the stack
// empties.
func resolveByPassing(t *testing.T, s *State) {
	t.Helper()
	for i := 0; i < 32 && len(s.Items) > 0; i++ {
		holder := s.Priority.Holder
		mustExecute(t, s, holder, PassPriority())
	}
	if len(s.Items) > 0 {
		t.Fatalf("stack did not empty: %d items remain", len(s.Items))
	}
}
