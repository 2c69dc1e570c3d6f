package save

import (
	"bytes"
	"compress/gzip"
	"encoding/gob"
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
		{Name: "Soldier", Type: ability.TypeCharacter, Cost: 1, Spark: 1},
		{
			Name: "Spark",
			Type: ability.TypeEvent,
			Cost: 1,
			Abilities: []ability.Ability{
				ability.Event(ability.StandardEffectOf(ability.StandardEffect{
					Kind:   ability.EffectGainEnergy,
					Energy: 1,
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

func newBattle(t *testing.T, catalog *ability.Catalog) *battle.State {
	t.Helper()
	s, err := battle.New(battle.Config{
		DeckOne:     deckOf("Soldier", 20),
		DeckTwo:     deckOf("Spark", 20),
		FirstPlayer: core.PlayerOne,
		Seed:        11,
	}, catalog, nil)
	require.NoError(t, err)
	return s
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	catalog := testCatalog(t)
	s := newBattle(t, catalog)
	require.NoError(t, s.Execute(core.PlayerOne, battle.PlayCardFromHand(s.Cards.HandCards(core.PlayerOne)[0])))

	data, err := Encode(s)
	require.NoError(t, err)

	restored, err := Decode(data, catalog, nil)
	require.NoError(t, err)

	assert.Equal(t, s.ID, restored.ID)
	assert.Equal(t, s.Checksum(), restored.Checksum())
	assert.Equal(t, s.ActionLog, restored.ActionLog)
	assert.Same(t, catalog, restored.Catalog())

	// The restored battle is live: it accepts the same actions.
	require.NoError(t, restored.Execute(core.PlayerTwo, battle.PassPriority()))
}

func TestDecodePreservesOpenPrompt(t *testing.T) {
	catalog := testCatalog(t)
	s, err := battle.New(battle.Config{
		DeckOne:      deckOf("Soldier", 20),
		DeckTwo:      deckOf("Spark", 20),
		FirstPlayer:  core.PlayerOne,
		Seed:         11,
		WithMulligan: true,
	}, catalog, nil)
	require.NoError(t, err)
	require.NotNil(t, s.Prompt)

	data, err := Encode(s)
	require.NoError(t, err)
	restored, err := Decode(data, catalog, nil)
	require.NoError(t, err)

	require.NotNil(t, restored.Prompt)
	assert.Equal(t, battle.PromptMulligan, restored.Prompt.Kind)
	require.NoError(t, restored.Execute(core.PlayerOne, battle.SubmitMulligan(false)))
}

func TestDecodeRejectsGarbage(t *testing.T) {
	catalog := testCatalog(t)
	_, err := Decode([]byte("not a snapshot"), catalog, nil)
	assert.Error(t, err)
}

func TestDecodeRejectsTruncatedSnapshot(t *testing.T) {
	catalog := testCatalog(t)
	data, err := Encode(newBattle(t, catalog))
	require.NoError(t, err)

	_, err = Decode(data[:len(data)/2], catalog, nil)
	assert.Error(t, err)
}

func TestDecodeRejectsWrongVersion(t *testing.T) {
	catalog := testCatalog(t)
	s := newBattle(t, catalog)

	// A snapshot written by a future format version must not decode.
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	future := struct {
		Version  int
		Checksum string
		State    *battle.State
	}{Version: Version + 1, Checksum: s.Checksum(), State: s}
	require.NoError(t, gob.NewEncoder(zw).Encode(future))
	require.NoError(t, zw.Close())

	_, err := Decode(buf.Bytes(), catalog, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

func TestDecodeRejectsChecksumMismatch(t *testing.T) {
	catalog := testCatalog(t)
	s := newBattle(t, catalog)

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	tampered := struct {
		Version  int
		Checksum string
		State    *battle.State
	}{Version: Version, Checksum: "0000", State: s}
	require.NoError(t, gob.NewEncoder(zw).Encode(tampered))
	require.NoError(t, zw.Close())

	_, err := Decode(buf.Bytes(), catalog, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum")
}
