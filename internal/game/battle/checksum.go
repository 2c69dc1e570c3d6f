package battle

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/emberfall/battle-server-go/internal/game/core"
)

// Checksum returns a hex SHA-256 fingerprint of the battle. Two battles
// produced by the same seed and action sequence hash identically, so the
// checksum verifies replays and detects state divergence between peers.
// Map-backed data is rendered in sorted order to keep the hash canonical.
func (s *State) Checksum() string {
	var b strings.Builder

	fmt.Fprintf(&b, "turn:%d/%s/%s;", s.Turn.Number, s.Turn.Active, s.Turn.Phase)
	fmt.Fprintf(&b, "prio:%s/%t/%t;", s.Priority.Holder, s.Priority.Passed[core.PlayerOne], s.Priority.Passed[core.PlayerTwo])
	fmt.Fprintf(&b, "rng:%d;", s.Rng.State)

	for p := range s.Players {
		ps := s.Players[p]
		fmt.Fprintf(&b, "p%d:%d/%d/%d;", p, ps.Energy, ps.ProducedEnergy, ps.Points)
	}

	writeZone := func(label string, player core.PlayerName, ids []core.CardID) {
		fmt.Fprintf(&b, "%s%d:", label, int(player))
		for _, id := range ids {
			fmt.Fprintf(&b, "%d/%s,", int(id), s.CardNames[id])
		}
		b.WriteByte(';')
	}
	for _, player := range []core.PlayerName{core.PlayerOne, core.PlayerTwo} {
		writeZone("deck", player, s.Cards.Deck[player])
		writeZone("hand", player, s.Cards.Hand[player])
		writeZone("field", player, s.Cards.Battlefield[player])
		writeZone("void", player, s.Cards.Void[player])
		writeZone("banished", player, s.Cards.Banished[player])
	}
	b.WriteString("stack:")
	for _, id := range s.Cards.Stack {
		fmt.Fprintf(&b, "%d,", int(id))
	}
	b.WriteByte(';')

	sparkIDs := make([]int, 0, len(s.CharacterSpark))
	for id := range s.CharacterSpark {
		sparkIDs = append(sparkIDs, int(id))
	}
	sort.Ints(sparkIDs)
	b.WriteString("spark:")
	for _, id := range sparkIDs {
		fmt.Fprintf(&b, "%d=%d,", id, s.CharacterSpark[core.CardID(id)])
	}
	b.WriteByte(';')

	b.WriteString("items:")
	for _, item := range s.Items {
		fmt.Fprintf(&b, "%s/%d/%s/%d,", item.Kind, int(item.Controller), item.Card, item.ModalChoice)
	}
	b.WriteByte(';')

	if s.Prompt != nil {
		fmt.Fprintf(&b, "prompt:%s/%s;", s.Prompt.Kind, s.Prompt.Player)
	}
	if s.HasWinner {
		fmt.Fprintf(&b, "winner:%s;", s.Winner)
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
