// Package cardpool holds the built-in card set. Definitions are plain data
// interpreted by the battle engine; nothing here executes rules.
package cardpool

import (
	"github.com/emberfall/battle-server-go/internal/game/ability"
	"github.com/emberfall/battle-server-go/internal/game/core"
)

// Definitions returns the built-in card definitions.
func Definitions() []ability.CardDefinition {
	return []ability.CardDefinition{
		{
			Name:    "Minstrel of Falling Light",
			Type:    ability.TypeCharacter,
			Subtype: "Musician",
			Cost:    2,
			Spark:   2,
		},
		{
			Name:    "Keeper of Emberfall",
			Type:    ability.TypeCharacter,
			Subtype: "Warden",
			Cost:    3,
			Spark:   1,
			Abilities: []ability.Ability{
				ability.Triggered(ability.TriggerMaterialized, ability.StandardEffectOf(ability.StandardEffect{
					Kind:  ability.EffectDrawCards,
					Count: 1,
				})),
			},
		},
		{
			Name:    "Choir of Embers",
			Type:    ability.TypeCharacter,
			Subtype: "Musician",
			Cost:    4,
			Spark:   2,
			Abilities: []ability.Ability{
				ability.Triggered(ability.TriggerJudgment, ability.StandardEffectOf(ability.StandardEffect{
					Kind:   ability.EffectGainEnergy,
					Energy: 1,
				})),
			},
		},
		{
			Name:    "Tidecaller Adept",
			Type:    ability.TypeCharacter,
			Subtype: "Mage",
			Cost:    2,
			Spark:   1,
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
			Name:    "Pyre Warden",
			Type:    ability.TypeCharacter,
			Subtype: "Warden",
			Cost:    5,
			Spark:   3,
			Abilities: []ability.Ability{
				ability.Activated(
					[]ability.Cost{
						ability.EnergyCost(1),
						ability.AbandonCost(1, ability.YourCharacters()),
					},
					ability.StandardEffectOf(ability.StandardEffect{
						Kind:      ability.EffectDissolveCharacter,
						Target:    ability.EnemyCharacters(),
						HasTarget: true,
					}),
				),
			},
		},
		{
			Name:    "Duskwing Herald",
			Type:    ability.TypeCharacter,
			Subtype: "Spirit",
			Cost:    3,
			Spark:   2,
			Fast:    true,
			Abilities: []ability.Ability{
				ability.Triggered(ability.TriggerDissolved, ability.StandardEffectOf(ability.StandardEffect{
					Kind:  ability.EffectDrawCards,
					Count: 1,
				})),
			},
		},
		{
			Name:    "Marrow Chanter",
			Type:    ability.TypeCharacter,
			Subtype: "Mage",
			Cost:    3,
			Spark:   2,
			Abilities: []ability.Ability{
				ability.Activated(
					[]ability.Cost{ability.BanishFromVoidCost(1, ability.YourVoidCards())},
					ability.StandardEffectOf(ability.StandardEffect{
						Kind:   ability.EffectGainEnergy,
						Energy: 1,
					}),
				),
			},
		},
		{
			Name:  "Immolate",
			Type:  ability.TypeEvent,
			Cost:  2,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:      ability.EffectDissolveCharacter,
					Target:    ability.EnemyCharacters(),
					HasTarget: true,
				})),
			},
		},
		{
			Name:  "Abolish",
			Type:  ability.TypeEvent,
			Cost:  2,
			Fast:  true,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:      ability.EffectPreventCard,
					Target:    ability.EnemyStackCards(),
					HasTarget: true,
				})),
			},
		},
		{
			Name:  "Ripple of Defiance",
			Type:  ability.TypeEvent,
			Cost:  1,
			Fast:  true,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:      ability.EffectPreventCard,
					Target:    ability.EnemyStackEvents(),
					HasTarget: true,
				})),
			},
		},
		{
			Name:  "Dreamscatter",
			Type:  ability.TypeEvent,
			Cost:  2,
			Fast:  true,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:  ability.EffectDrawCards,
					Count: 2,
				})),
			},
		},
		{
			Name:  "Emberfall Rite",
			Type:  ability.TypeEvent,
			Cost:  1,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:   ability.EffectGainEnergy,
					Energy: 2,
				})),
				ability.Reclaim(2),
			},
		},
		{
			Name:  "Kindle the Spark",
			Type:  ability.TypeEvent,
			Cost:  1,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:      ability.EffectGainsSpark,
					Spark:     2,
					Target:    ability.YourCharacters(),
					HasTarget: true,
				})),
			},
		},
		{
			Name:  "Undertow",
			Type:  ability.TypeEvent,
			Cost:  2,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:      ability.EffectReturnToHand,
					Target:    ability.AnyCharacter(),
					HasTarget: true,
				})),
			},
		},
		{
			Name:  "Banishing Light",
			Type:  ability.TypeEvent,
			Cost:  3,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:      ability.EffectBanishCharacter,
					Target:    ability.EnemyCharacters(),
					HasTarget: true,
				})),
			},
		},
		{
			Name:  "Night Harvest",
			Type:  ability.TypeEvent,
			Cost:  2,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:   ability.EffectReturnFromVoidToHand,
					Count:  1,
					Target: ability.YourVoidCards(),
				})),
			},
		},
		{
			Name:  "Gravecall",
			Type:  ability.TypeEvent,
			Cost:  4,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:   ability.EffectMaterializeFromVoid,
					Count:  1,
					Target: ability.YourVoidCharacters(),
				})),
			},
		},
		{
			Name:  "Mindshear",
			Type:  ability.TypeEvent,
			Cost:  2,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:  ability.EffectEnemyDiscardCards,
					Count: 1,
				})),
			},
		},
		{
			Name:  "Fevered Visions",
			Type:  ability.TypeEvent,
			Cost:  1,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:         ability.EffectDrawThenDiscard,
					Count:        2,
					DiscardCount: 1,
				})),
			},
		},
		{
			Name:  "Choral Swell",
			Type:  ability.TypeEvent,
			Cost:  2,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:   ability.EffectGainEnergyPerMatching,
					Energy: 1,
					Counts: ability.Predicate{
						Relation: ability.RelationYour,
						Filter: ability.CardFilter{
							Kind:          ability.FilterCharacterType,
							CharacterType: "Musician",
						},
					},
				})),
			},
		},
		{
			Name:  "Crossroads",
			Type:  ability.TypeEvent,
			Cost:  1,
			Abilities: []ability.Ability{
				ability.Event(ability.ModalOf(
					ability.ModalChoice{
						EnergyCost: 0,
						Effect: ability.StandardEffectOf(ability.StandardEffect{
							Kind:  ability.EffectDrawCards,
							Count: 2,
						}),
					},
					ability.ModalChoice{
						EnergyCost: 1,
						Effect: ability.StandardEffectOf(ability.StandardEffect{
							Kind:      ability.EffectReturnToHand,
							Target:    ability.AnyCharacter(),
							HasTarget: true,
						}),
					},
				)),
			},
		},
		{
			Name: "Feed the Flames",
			Type: ability.TypeEvent,
			Cost: 1,
			Abilities: []ability.Ability{
				ability.EventWithCost(
					ability.AbandonCost(1, ability.YourCharacters()),
					ability.StandardEffectOf(ability.StandardEffect{
						Kind:      ability.EffectDissolveCharacter,
						Target:    ability.EnemyCharacters(),
						HasTarget: true,
					}),
				),
			},
		},
		{
			Name: "Ember Communion",
			Type: ability.TypeEvent,
			Cost: 2,
			Abilities: []ability.Ability{
				ability.Event(ability.ListOf(
					ability.StandardEffectOf(ability.StandardEffect{
						Kind:   ability.EffectGainEnergy,
						Energy: 2,
					}),
					ability.OptionalOf(ability.StandardEffectOf(ability.StandardEffect{
						Kind:  ability.EffectDrawCards,
						Count: 1,
					})),
				)),
			},
		},
		{
			Name:  "Rising Tribute",
			Type:  ability.TypeEvent,
			Cost:  3,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:   ability.EffectGainPoints,
					Points: 2,
				})),
			},
		},
	}
}

// Catalog builds the catalog of built-in definitions. It panics on
// duplicates, which would be a bug in this file.
func Catalog() *ability.Catalog {
	c, err := ability.NewCatalog(Definitions())
	if err != nil {
		panic(err)
	}
	return c
}

// StarterDeck is a ready-made thirty-card deck built from the default pool.
func StarterDeck() []core.CardName {
	var deck []core.CardName
	add := func(name core.CardName, copies int) {
		for i := 0; i < copies; i++ {
			deck = append(deck, name)
		}
	}
	add("Minstrel of Falling Light", 4)
	add("Keeper of Emberfall", 3)
	add("Choir of Embers", 2)
	add("Tidecaller Adept", 3)
	add("Duskwing Herald", 2)
	add("Immolate", 3)
	add("Abolish", 2)
	add("Dreamscatter", 3)
	add("Emberfall Rite", 2)
	add("Kindle the Spark", 2)
	add("Undertow", 2)
	add("Rising Tribute", 2)
	return deck
}
