package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emberfall/battle-server-go/internal/game/core"
)

func TestRegisterAndLocate(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Register(core.PlayerOne, 0, core.ZoneDeck))
	require.NoError(t, s.Register(core.PlayerTwo, 1, core.ZoneDeck))

	zone, err := s.Locate(0)
	require.NoError(t, err)
	assert.Equal(t, core.ZoneDeck, zone)

	controller, err := s.Controller(1)
	require.NoError(t, err)
	assert.Equal(t, core.PlayerTwo, controller)

	err = s.Register(core.PlayerOne, 0, core.ZoneHand)
	assert.Error(t, err, "double registration must be rejected")
}

func TestLocateUnknownCard(t *testing.T) {
	s := NewState()
	_, err := s.Locate(42)
	assert.ErrorIs(t, err, ErrUnknownCard)
}

func TestMovePreservesOrder(t *testing.T) {
	s := NewState()
	for id := core.CardID(0); id < 4; id++ {
		require.NoError(t, s.Register(core.PlayerOne, id, core.ZoneHand))
	}

	require.NoError(t, s.Move(1, core.ZoneHand, core.ZoneVoid))

	assert.Equal(t, []core.CardID{0, 2, 3}, s.Iterate(core.PlayerOne, core.ZoneHand))
	assert.Equal(t, []core.CardID{1}, s.Iterate(core.PlayerOne, core.ZoneVoid))
	assert.True(t, s.Contains(core.PlayerOne, 1, core.ZoneVoid))
}

func TestMoveZoneMismatchLeavesStateUntouched(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Register(core.PlayerOne, 0, core.ZoneHand))

	err := s.Move(0, core.ZoneDeck, core.ZoneVoid)
	require.ErrorIs(t, err, ErrZoneMismatch)

	zone, err := s.Locate(0)
	require.NoError(t, err)
	assert.Equal(t, core.ZoneHand, zone)
	assert.Equal(t, 0, s.CountInZone(core.PlayerOne, core.ZoneVoid))
}

func TestMoveUnknownCard(t *testing.T) {
	s := NewState()
	err := s.Move(9, core.ZoneHand, core.ZoneVoid)
	assert.ErrorIs(t, err, ErrUnknownCard)
}

func TestStackIsSharedAcrossPlayers(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Register(core.PlayerOne, 0, core.ZoneHand))
	require.NoError(t, s.Register(core.PlayerTwo, 1, core.ZoneHand))

	require.NoError(t, s.Move(0, core.ZoneHand, core.ZoneStack))
	require.NoError(t, s.Move(1, core.ZoneHand, core.ZoneStack))

	assert.Equal(t, []core.CardID{0, 1}, s.IterateStack())
	top, ok := s.TopOfStack()
	require.True(t, ok)
	assert.Equal(t, core.CardID(1), top.CardID())
	assert.Equal(t, 2, s.StackSize())

	// Controllers survive the shared zone.
	c0, err := s.Controller(0)
	require.NoError(t, err)
	c1, err := s.Controller(1)
	require.NoError(t, err)
	assert.Equal(t, core.PlayerOne, c0)
	assert.Equal(t, core.PlayerTwo, c1)
}

func TestSetDeckOrder(t *testing.T) {
	s := NewState()
	for id := core.CardID(0); id < 3; id++ {
		require.NoError(t, s.Register(core.PlayerOne, id, core.ZoneDeck))
	}

	require.NoError(t, s.SetDeckOrder(core.PlayerOne, []core.CardID{2, 0, 1}))
	assert.Equal(t, []core.CardID{2, 0, 1}, s.Iterate(core.PlayerOne, core.ZoneDeck))

	assert.Error(t, s.SetDeckOrder(core.PlayerOne, []core.CardID{2, 0}),
		"short reorder must be rejected")
	assert.Error(t, s.SetDeckOrder(core.PlayerOne, []core.CardID{2, 2, 1}),
		"duplicate reorder must be rejected")
	// The failed reorders left the deck as it was.
	assert.Equal(t, []core.CardID{2, 0, 1}, s.Iterate(core.PlayerOne, core.ZoneDeck))
}

func TestCloneIsIndependentOfOriginal(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Register(core.PlayerOne, 0, core.ZoneHand))
	require.NoError(t, s.Register(core.PlayerOne, 1, core.ZoneDeck))

	clone := s.Clone()
	require.NoError(t, clone.Move(0, core.ZoneHand, core.ZoneVoid))

	zone, err := s.Locate(0)
	require.NoError(t, err)
	assert.Equal(t, core.ZoneHand, zone, "original must not see clone mutations")
	assert.Equal(t, 1, clone.CountInZone(core.PlayerOne, core.ZoneVoid))
}
