// Package view projects battle state into per-player JSON payloads. A view
// only reveals what its viewer is entitled to see: opponent hands and both
// decks appear as counts, never as cards.
package view

import (
	"github.com/emberfall/battle-server-go/internal/game/ability"
	"github.com/emberfall/battle-server-go/internal/game/battle"
	"github.com/emberfall/battle-server-go/internal/game/core"
)

type CardView struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Subtype string `json:"subtype,omitempty"`
	Cost    int    `json:"cost"`
	Spark   int    `json:"spark,omitempty"`
	Fast    bool   `json:"fast,omitempty"`
}

type PlayerView struct {
	Name           string     `json:"name"`
	Energy         int        `json:"energy"`
	ProducedEnergy int        `json:"produced_energy"`
	Points         int        `json:"points"`
	DeckCount      int        `json:"deck_count"`
	HandCount      int        `json:"hand_count"`
	Hand           []CardView `json:"hand,omitempty"`
	Battlefield    []CardView `json:"battlefield"`
	Void           []CardView `json:"void"`
	BanishedCount  int        `json:"banished_count"`
}

type PromptView struct {
	Kind   string   `json:"kind"`
	Player string   `json:"player"`
	Valid  []string `json:"valid,omitempty"`
	Chosen []string `json:"chosen,omitempty"`
	Max    int      `json:"max,omitempty"`
}

// BattleView is the complete client payload for one viewer.
type BattleView struct {
	BattleID       string      `json:"battle_id"`
	Viewer         string      `json:"viewer"`
	Turn           int         `json:"turn"`
	Phase          string      `json:"phase"`
	ActivePlayer   string      `json:"active_player"`
	PriorityHolder string      `json:"priority_holder"`
	You            PlayerView  `json:"you"`
	Opponent       PlayerView  `json:"opponent"`
	Stack          []CardView  `json:"stack"`
	Prompt         *PromptView `json:"prompt,omitempty"`
	LegalActions   []string    `json:"legal_actions"`
	Winner         string      `json:"winner,omitempty"`
}

// Project renders the battle from one player's point of view.
func Project(s *battle.State, viewer core.PlayerName) BattleView {
	v := BattleView{
		BattleID:       s.ID,
		Viewer:         viewer.String(),
		Turn:           s.Turn.Number,
		Phase:          s.Turn.Phase.String(),
		ActivePlayer:   s.Turn.Active.String(),
		PriorityHolder: s.Priority.Holder.String(),
		You:            projectPlayer(s, viewer, true),
		Opponent:       projectPlayer(s, viewer.Opponent(), false),
	}
	for _, id := range s.Cards.IterateStack() {
		v.Stack = append(v.Stack, cardView(s, id))
	}
	if s.Prompt != nil {
		v.Prompt = projectPrompt(s.Prompt)
	}
	for _, action := range s.LegalActions(viewer).All() {
		v.LegalActions = append(v.LegalActions, action.String())
	}
	if s.IsOver() {
		v.Winner = s.Winner.String()
	}
	return v
}

func projectPlayer(s *battle.State, player core.PlayerName, revealHand bool) PlayerView {
	pv := PlayerView{
		Name:           player.String(),
		Energy:         int(s.Players[player].Energy),
		ProducedEnergy: int(s.Players[player].ProducedEnergy),
		Points:         int(s.Players[player].Points),
		DeckCount:      len(s.Cards.Deck[player]),
		HandCount:      len(s.Cards.Hand[player]),
		BanishedCount:  len(s.Cards.Banished[player]),
	}
	if revealHand {
		for _, id := range s.Cards.Hand[player] {
			pv.Hand = append(pv.Hand, cardView(s, id))
		}
	}
	for _, id := range s.Cards.Battlefield[player] {
		cv := cardView(s, id)
		// Battlefield spark reflects modifications, not the printed value.
		cv.Spark = int(s.CharacterSpark[id])
		pv.Battlefield = append(pv.Battlefield, cv)
	}
	// Voids are public information for both players.
	for _, id := range s.Cards.Void[player] {
		pv.Void = append(pv.Void, cardView(s, id))
	}
	return pv
}

func cardView(s *battle.State, id core.CardID) CardView {
	def := s.Definition(id)
	cv := CardView{
		ID:      idString(s, id),
		Name:    string(def.Name),
		Type:    string(def.Type),
		Subtype: def.Subtype,
		Cost:    int(def.Cost),
		Fast:    def.Fast,
	}
	if def.Type == ability.TypeCharacter {
		cv.Spark = int(def.Spark)
	}
	return cv
}

// idString renders a card id with its zone prefix so clients can echo it
// back unambiguously.
func idString(s *battle.State, id core.CardID) string {
	zone, err := s.Cards.Locate(id)
	if err != nil {
		return core.HandCardID{ID: id}.String()
	}
	switch zone {
	case core.ZoneHand:
		return core.HandCardID{ID: id}.String()
	case core.ZoneDeck:
		return core.DeckCardID{ID: id}.String()
	case core.ZoneBattlefield:
		return core.CharacterID{ID: id}.String()
	case core.ZoneStack:
		return core.StackCardID{ID: id}.String()
	case core.ZoneVoid:
		return core.VoidCardID{ID: id}.String()
	default:
		return core.BanishedCardID{ID: id}.String()
	}
}

func projectPrompt(p *battle.Prompt) *PromptView {
	pv := &PromptView{
		Kind:   string(p.Kind),
		Player: p.Player.String(),
		Max:    p.MaxSelection,
	}
	for _, id := range p.ValidCharacters {
		pv.Valid = append(pv.Valid, id.String())
	}
	for _, id := range p.ValidStackCards {
		pv.Valid = append(pv.Valid, id.String())
	}
	for _, id := range p.ValidVoidCards {
		pv.Valid = append(pv.Valid, id.String())
	}
	for _, id := range p.ValidHandCards {
		pv.Valid = append(pv.Valid, id.String())
	}
	for _, id := range p.ChosenVoidCards {
		pv.Chosen = append(pv.Chosen, id.String())
	}
	for _, id := range p.ChosenHandCards {
		pv.Chosen = append(pv.Chosen, id.String())
	}
	return pv
}
