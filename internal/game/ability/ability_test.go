package ability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberfall/battle-server-go/internal/game/core"
)

func TestCompare(t *testing.T) {
	cases := []struct {
		value, reference int
		op               Operator
		want             bool
	}{
		{3, 5, OpOrLess, true},
		{5, 5, OpOrLess, true},
		{6, 5, OpOrLess, false},
		{5, 5, OpExactly, true},
		{4, 5, OpExactly, false},
		{5, 5, OpOrMore, true},
		{6, 5, OpOrMore, true},
		{4, 5, OpOrMore, false},
	}
	for _, tc := range cases {
		got := Compare(tc.value, tc.op, tc.reference)
		if got != tc.want {
			t.Errorf("Compare(%d, %s, %d) = %t, want %t", tc.value, tc.op, tc.reference, got, tc.want)
		}
	}
}

func TestNewCatalogRejectsDuplicates(t *testing.T) {
	_, err := NewCatalog([]CardDefinition{
		{Name: "Twin", Type: TypeCharacter, Cost: 1},
		{Name: "Twin", Type: TypeEvent, Cost: 2},
	})
	assert.Error(t, err)
}

func TestNewCatalogRejectsEmptyName(t *testing.T) {
	_, err := NewCatalog([]CardDefinition{{Type: TypeEvent, Cost: 1}})
	assert.Error(t, err)
}

func TestCatalogLookup(t *testing.T) {
	catalog, err := NewCatalog([]CardDefinition{
		{Name: "Ember", Type: TypeCharacter, Cost: 2, Spark: 3},
	})
	require.NoError(t, err)
	require.Equal(t, 1, catalog.Len())

	def, ok := catalog.Lookup("Ember")
	require.True(t, ok)
	assert.Equal(t, core.Spark(3), def.Spark)

	_, ok = catalog.Lookup("Missing")
	assert.False(t, ok)
}

func TestAbilityNumbersFollowDefinitionOrder(t *testing.T) {
	draw := StandardEffectOf(StandardEffect{Kind: EffectDrawCards, Count: 1})
	def := CardDefinition{
		Name: "Mixed",
		Type: TypeCharacter,
		Abilities: []Ability{
			Triggered(TriggerMaterialized, draw),
			Activated([]Cost{EnergyCost(1)}, draw),
			Triggered(TriggerJudgment, draw),
			Activated([]Cost{EnergyCost(2)}, draw),
		},
	}

	triggered := def.TriggeredAbilities()
	require.Len(t, triggered, 2)
	assert.Equal(t, core.AbilityNumber(0), triggered[0].Number)
	assert.Equal(t, core.AbilityNumber(2), triggered[1].Number)

	activated := def.ActivatedAbilities()
	require.Len(t, activated, 2)
	assert.Equal(t, core.AbilityNumber(1), activated[0].Number)
	assert.Equal(t, core.AbilityNumber(3), activated[1].Number)
}

func TestEventAndReclaimLookup(t *testing.T) {
	def := CardDefinition{
		Name: "Echo",
		Type: TypeEvent,
		Abilities: []Ability{
			Event(StandardEffectOf(StandardEffect{Kind: EffectGainEnergy, Energy: 2})),
			Reclaim(3),
		},
	}

	ev, ok := def.EventAbility()
	require.True(t, ok)
	assert.Equal(t, EffectGainEnergy, ev.Effect.Standard.Kind)

	reclaim, ok := def.ReclaimAbility()
	require.True(t, ok)
	assert.Equal(t, core.Energy(3), reclaim.ReclaimCost)

	bare := CardDefinition{Name: "Bare", Type: TypeCharacter}
	_, ok = bare.EventAbility()
	assert.False(t, ok)
	_, ok = bare.ReclaimAbility()
	assert.False(t, ok)
}

func TestTargetSpecZones(t *testing.T) {
	dissolve := StandardEffect{Kind: EffectDissolveCharacter, Target: EnemyCharacters(), HasTarget: true}
	_, zone := dissolve.TargetSpec()
	assert.Equal(t, TargetBattlefield, zone)

	prevent := StandardEffect{Kind: EffectPreventCard, Target: EnemyStackCards(), HasTarget: true}
	_, zone = prevent.TargetSpec()
	assert.Equal(t, TargetStack, zone)

	exhume := StandardEffect{Kind: EffectMaterializeFromVoid, Target: YourVoidCharacters(), HasTarget: true}
	pred, zone := exhume.TargetSpec()
	assert.Equal(t, TargetVoid, zone)
	assert.Equal(t, RelationYourVoid, pred.Relation)

	draw := StandardEffect{Kind: EffectDrawCards, Count: 2}
	_, zone = draw.TargetSpec()
	assert.Equal(t, TargetNone, zone)
}
