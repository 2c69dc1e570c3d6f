package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberfall/battle-server-go/internal/game/battle"
	"github.com/emberfall/battle-server-go/internal/game/core"
)

func TestParseAction(t *testing.T) {
	cases := []struct {
		name string
		wire WireAction
		want battle.Action
	}{
		{
			name: "play from hand",
			wire: WireAction{Kind: "PLAY_CARD_FROM_HAND", Card: 3},
			want: battle.PlayCardFromHand(core.HandCardID{ID: 3}),
		},
		{
			name: "play from void",
			wire: WireAction{Kind: "PLAY_CARD_FROM_VOID", VoidCard: 7},
			want: battle.PlayCardFromVoid(core.VoidCardID{ID: 7}),
		},
		{
			name: "activate ability",
			wire: WireAction{Kind: "ACTIVATE_ABILITY", AbilityCharacter: 4, AbilityNumber: 1},
			want: battle.ActivateAbility(core.ActivatedAbilityID{
				Character: core.CharacterID{ID: 4},
				Ability:   1,
			}),
		},
		{
			name: "pass priority",
			wire: WireAction{Kind: "PASS_PRIORITY"},
			want: battle.PassPriority(),
		},
		{
			name: "end turn",
			wire: WireAction{Kind: "END_TURN"},
			want: battle.EndTurn(),
		},
		{
			name: "start next turn",
			wire: WireAction{Kind: "START_NEXT_TURN"},
			want: battle.StartNextTurn(),
		},
		{
			name: "select character",
			wire: WireAction{Kind: "SELECT_CHARACTER", Character: 9},
			want: battle.SelectCharacter(core.CharacterID{ID: 9}),
		},
		{
			name: "select stack card",
			wire: WireAction{Kind: "SELECT_STACK_CARD", StackCard: 2},
			want: battle.SelectStackCard(core.StackCardID{ID: 2}),
		},
		{
			name: "void selection",
			wire: WireAction{Kind: "SELECT_VOID_CARD", VoidCard: 5},
			want: battle.SelectVoidCard(core.VoidCardID{ID: 5}),
		},
		{
			name: "submit void cards",
			wire: WireAction{Kind: "SUBMIT_VOID_CARDS"},
			want: battle.SubmitVoidCards(),
		},
		{
			name: "hand selection",
			wire: WireAction{Kind: "SELECT_HAND_CARD", Card: 6},
			want: battle.SelectHandCard(core.HandCardID{ID: 6}),
		},
		{
			name: "submit hand cards",
			wire: WireAction{Kind: "SUBMIT_HAND_CARDS"},
			want: battle.SubmitHandCards(),
		},
		{
			name: "modal choice",
			wire: WireAction{Kind: "SELECT_MODAL_CHOICE", Choice: 1},
			want: battle.SelectModalChoice(1),
		},
		{
			name: "mulligan",
			wire: WireAction{Kind: "SUBMIT_MULLIGAN", Mulligan: true},
			want: battle.SubmitMulligan(true),
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseAction(tc.wire)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestParseActionUnknownKind(t *testing.T) {
	_, err := ParseAction(WireAction{Kind: "TELEPORT"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown action kind")
}

func TestParsePlayer(t *testing.T) {
	p, err := ParsePlayer("PLAYER_ONE")
	require.NoError(t, err)
	assert.Equal(t, core.PlayerOne, p)

	p, err = ParsePlayer("PLAYER_TWO")
	require.NoError(t, err)
	assert.Equal(t, core.PlayerTwo, p)

	_, err = ParsePlayer("PLAYER_THREE")
	assert.Error(t, err)
}
