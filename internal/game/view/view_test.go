package view

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberfall/battle-server-go/internal/game/ability"
	"github.com/emberfall/battle-server-go/internal/game/battle"
	"github.com/emberfall/battle-server-go/internal/game/core"
)

func testCatalog(t *testing.T) *ability.Catalog {
	t.Helper()
	catalog, err := ability.NewCatalog([]ability.CardDefinition{
		{Name: "Watcher", Type: ability.TypeCharacter, Subtype: "Spirit", Cost: 2, Spark: 3},
		{
			Name: "Jolt",
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
	})
	require.NoError(t, err)
	return catalog
}

func deckOf(name core.CardName, n int) []core.CardName {
	deck := make([]core.CardName, n)
	for i := range deck {
		deck[i] = name
	}
	return deck
}

func newBattle(t *testing.T) *battle.State {
	t.Helper()
	s, err := battle.New(battle.Config{
		DeckOne:     deckOf("Watcher", 20),
		DeckTwo:     deckOf("Jolt", 20),
		FirstPlayer: core.PlayerOne,
		Seed:        5,
	}, testCatalog(t), nil)
	require.NoError(t, err)
	return s
}

func TestProjectHidesOpponentHand(t *testing.T) {
	s := newBattle(t)
	v := Project(s, core.PlayerOne)

	assert.Equal(t, "PLAYER_ONE", v.Viewer)
	require.Len(t, v.You.Hand, 5)
	assert.Equal(t, 5, v.You.HandCount)
	assert.Equal(t, 15, v.You.DeckCount)

	// The opponent's hand and deck appear only as counts.
	assert.Nil(t, v.Opponent.Hand)
	assert.Equal(t, 5, v.Opponent.HandCount)
	assert.Equal(t, 15, v.Opponent.DeckCount)
}

func TestProjectIsSymmetric(t *testing.T) {
	s := newBattle(t)
	one := Project(s, core.PlayerOne)
	two := Project(s, core.PlayerTwo)

	assert.Equal(t, one.You.Name, two.Opponent.Name)
	assert.Equal(t, "Watcher", one.You.Hand[0].Name)
	assert.Equal(t, "Jolt", two.You.Hand[0].Name)
}

func TestProjectBattlefieldUsesLiveSpark(t *testing.T) {
	s := newBattle(t)
	// Advance to enough energy, then materialize a Watcher.
	require.NoError(t, s.Execute(core.PlayerOne, battle.EndTurn()))
	require.NoError(t, s.Execute(core.PlayerTwo, battle.StartNextTurn()))
	require.NoError(t, s.Execute(core.PlayerTwo, battle.EndTurn()))
	require.NoError(t, s.Execute(core.PlayerOne, battle.StartNextTurn()))
	require.NoError(t, s.Execute(core.PlayerOne,
		battle.PlayCardFromHand(s.Cards.HandCards(core.PlayerOne)[0])))
	require.NoError(t, s.Execute(core.PlayerTwo, battle.PassPriority()))
	require.NoError(t, s.Execute(core.PlayerOne, battle.PassPriority()))

	id := s.Cards.Characters(core.PlayerOne)[0]
	s.CharacterSpark[id.CardID()] += 2

	v := Project(s, core.PlayerTwo)
	require.Len(t, v.Opponent.Battlefield, 1)
	assert.Equal(t, 5, v.Opponent.Battlefield[0].Spark)
	assert.Equal(t, id.String(), v.Opponent.Battlefield[0].ID)
	assert.Equal(t, "Spirit", v.Opponent.Battlefield[0].Subtype)
}

func TestProjectListsLegalActionsForViewer(t *testing.T) {
	s := newBattle(t)
	one := Project(s, core.PlayerOne)
	two := Project(s, core.PlayerTwo)

	assert.Contains(t, one.LegalActions, battle.EndTurn().String())
	assert.Empty(t, two.LegalActions)
}

func TestProjectShowsStackAndPrompt(t *testing.T) {
	s := newBattle(t)
	require.NoError(t, s.Execute(core.PlayerOne, battle.EndTurn()))
	require.NoError(t, s.Execute(core.PlayerTwo, battle.StartNextTurn()))
	require.NoError(t, s.Execute(core.PlayerTwo, battle.EndTurn()))
	require.NoError(t, s.Execute(core.PlayerOne, battle.StartNextTurn()))
	require.NoError(t, s.Execute(core.PlayerOne,
		battle.PlayCardFromHand(s.Cards.HandCards(core.PlayerOne)[0])))

	v := Project(s, core.PlayerTwo)
	require.Len(t, v.Stack, 1)
	assert.Equal(t, "Watcher", v.Stack[0].Name)
	assert.Nil(t, v.Prompt)
}

func TestProjectMarshalsToJSON(t *testing.T) {
	s := newBattle(t)
	data, err := json.Marshal(Project(s, core.PlayerOne))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"battle_id"`)
	assert.Contains(t, string(data), `"legal_actions"`)
}
