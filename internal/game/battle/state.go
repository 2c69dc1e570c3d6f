// Package battle owns the authoritative state of one two-player card battle:
// the turn and priority state machines, the predicate/cost/effect evaluator,
// the legal-action query engine and the single mutation entry point. One
// State is exclusively owned by one execution context at a time; clone it for
// parallel search.
package battle

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/emberfall/battle-server-go/internal/game/ability"
	"github.com/emberfall/battle-server-go/internal/game/cards"
	"github.com/emberfall/battle-server-go/internal/game/core"
)

// DefaultPointTarget is the score that wins the battle.
const DefaultPointTarget = core.Points(25)

// DefaultOpeningHandSize is the number of cards drawn at battle start.
const DefaultOpeningHandSize = 5

// PlayerState is the per-player resource block. Spark is derived from the
// battlefield and lives in State.CharacterSpark, not here.
type PlayerState struct {
	Energy         core.Energy
	ProducedEnergy core.Energy
	Points         core.Points
	MulliganTaken  bool
	MulliganOpen   bool
}

// StackItemKind distinguishes played cards from activated abilities on the
// resolution stack.
type StackItemKind string

const (
	// StackItemCard is a card played from hand or void.
	StackItemCard StackItemKind = "CARD"
	// StackItemAbility is an activated ability; no card changes zone when it
	// resolves.
	StackItemAbility StackItemKind = "ABILITY"
)

// StackItem is one pending-resolution entry. Items resolve strictly
// last-in-first-out; card items mirror the stack zone ordering in the zone
// map.
type StackItem struct {
	Kind       StackItemKind
	Card       core.StackCardID
	Ability    core.ActivatedAbilityID
	Controller core.PlayerName
	Source     core.EffectSource
	FromVoid   bool

	// Targets chosen when the item was put on the stack. A target that left
	// its zone by resolution time is skipped, not an error.
	TargetCharacters []core.CharacterID
	TargetStackCards []core.StackCardID
	TargetVoidCards  []core.VoidCardID
	// ModalChoice is the selected mode, or -1 when the effect is not modal.
	ModalChoice int
}

func (it StackItem) clone() StackItem {
	out := it
	out.TargetCharacters = append([]core.CharacterID(nil), it.TargetCharacters...)
	out.TargetStackCards = append([]core.StackCardID(nil), it.TargetStackCards...)
	out.TargetVoidCards = append([]core.VoidCardID(nil), it.TargetVoidCards...)
	return out
}

// PriorityState is the inner stack/priority machine: who may act next and
// who has passed since the stack last changed.
type PriorityState struct {
	Holder core.PlayerName
	Passed [2]bool
}

func (p *PriorityState) resetPasses() {
	p.Passed[core.PlayerOne] = false
	p.Passed[core.PlayerTwo] = false
}

// ResolutionState marks a stack item mid-resolution, kept resumable as data
// so prompts can suspend it.
type ResolutionState struct {
	Item      StackItem
	Remaining []ability.Effect
}

// LoggedAction is one accepted action in the append-only battle log, the
// replay input.
type LoggedAction struct {
	Player core.PlayerName
	Action Action
}

// Config is the initial battle configuration.
type Config struct {
	DeckOne         []core.CardName
	DeckTwo         []core.CardName
	FirstPlayer     core.PlayerName
	Seed            uint64
	OpeningHandSize int
	PointTarget     core.Points
	// StartingEnergy seeds both players' energy and produced energy.
	StartingEnergy core.Energy
	// WithMulligan opens the keep-or-mulligan decision pair before turn one.
	WithMulligan bool
}

// State is the top-level aggregate owning all per-battle data.
type State struct {
	ID     string
	Config Config

	Players [2]PlayerState
	Cards   *cards.State
	// CardNames maps every registered card to its catalog identity.
	CardNames map[core.CardID]core.CardName
	// CharacterSpark is the current spark of each battlefield character.
	CharacterSpark map[core.CardID]core.Spark
	// BanishOnLeave marks cards (played via reclaim) that banish instead of
	// reaching the void when they next leave play.
	BanishOnLeave map[core.CardID]bool
	// Listeners maps each trigger to the battlefield cards watching it, in
	// registration order.
	Listeners map[ability.TriggerName][]core.CardID

	Turn      TurnData
	Priority  PriorityState
	Items     []StackItem
	Resolving *ResolutionState
	Prompt    *Prompt

	HasWinner bool
	Winner    core.PlayerName

	Rng       Rng
	ActionLog []LoggedAction

	catalog *ability.Catalog
	logger  *zap.Logger
}

// New creates a battle from its initial configuration and the read-only
// ability catalog, shuffles both decks with the seeded generator and draws
// opening hands. The catalog is shared, never mutated.
func New(cfg Config, catalog *ability.Catalog, logger *zap.Logger) (*State, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.OpeningHandSize == 0 {
		cfg.OpeningHandSize = DefaultOpeningHandSize
	}
	if cfg.PointTarget == 0 {
		cfg.PointTarget = DefaultPointTarget
	}

	s := &State{
		ID:             uuid.NewString(),
		Config:         cfg,
		Cards:          cards.NewState(),
		CardNames:      make(map[core.CardID]core.CardName),
		CharacterSpark: make(map[core.CardID]core.Spark),
		BanishOnLeave:  make(map[core.CardID]bool),
		Listeners:      make(map[ability.TriggerName][]core.CardID),
		Rng:            NewRng(cfg.Seed),
		catalog:        catalog,
		logger:         logger,
	}
	for p := range s.Players {
		s.Players[p].Energy = cfg.StartingEnergy
		s.Players[p].ProducedEnergy = cfg.StartingEnergy
	}

	nextID := core.CardID(0)
	registerDeck := func(player core.PlayerName, deck []core.CardName) error {
		for _, name := range deck {
			if _, ok := catalog.Lookup(name); !ok {
				return fmt.Errorf("deck references unknown card %q", name)
			}
			if err := s.Cards.Register(player, nextID, core.ZoneDeck); err != nil {
				return err
			}
			s.CardNames[nextID] = name
			nextID++
		}
		return nil
	}
	if err := registerDeck(core.PlayerOne, cfg.DeckOne); err != nil {
		return nil, err
	}
	if err := registerDeck(core.PlayerTwo, cfg.DeckTwo); err != nil {
		return nil, err
	}

	s.shuffleDeck(core.PlayerOne)
	s.shuffleDeck(core.PlayerTwo)
	for player := range s.Players {
		for i := 0; i < cfg.OpeningHandSize; i++ {
			s.drawCard(core.PlayerName(player), core.RuleSource(core.PlayerName(player)))
		}
	}

	s.Turn = TurnData{Active: cfg.FirstPlayer, Number: 1, Phase: PhaseJudgment}
	if cfg.WithMulligan {
		// Automatic phases wait until both mulligan decisions are in.
		s.Players[cfg.FirstPlayer].MulliganOpen = true
		s.Players[cfg.FirstPlayer.Opponent()].MulliganOpen = true
		s.Prompt = &Prompt{
			Kind:         PromptMulligan,
			Player:       cfg.FirstPlayer,
			Source:       core.RuleSource(cfg.FirstPlayer),
			ChoiceCount:  2,
			Continuation: Continuation{Kind: ContinueMulligan},
		}
	} else {
		s.runAutomaticPhases()
	}

	s.logger.Debug("battle created",
		zap.String("battle_id", s.ID),
		zap.Uint64("seed", cfg.Seed),
		zap.Int("deck_one", len(cfg.DeckOne)),
		zap.Int("deck_two", len(cfg.DeckTwo)),
	)
	return s, nil
}

// Catalog returns the read-only ability catalog this battle interprets.
func (s *State) Catalog() *ability.Catalog { return s.catalog }

// SetCatalog reattaches the catalog after decoding a saved battle. The
// catalog itself is never serialized.
func (s *State) SetCatalog(catalog *ability.Catalog) { s.catalog = catalog }

// SetLogger replaces the battle's logger. A nil logger disables logging.
func (s *State) SetLogger(logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}
	s.logger = logger
}

// Definition returns the catalog definition for a registered card, fatally
// for untracked ids: catalog identity is fixed at registration, so a miss is
// an engine bug.
func (s *State) Definition(id core.CardID) ability.CardDefinition {
	name, ok := s.CardNames[id]
	if !ok {
		invariantf("card %d has no catalog identity", int(id))
	}
	def, ok := s.catalog.Lookup(name)
	if !ok {
		invariantf("card %d names unknown definition %q", int(id), name)
	}
	return def
}

// TotalSpark returns a player's derived spark total across their
// battlefield.
func (s *State) TotalSpark(player core.PlayerName) core.Spark {
	var total core.Spark
	for _, id := range s.Cards.Characters(player) {
		total += s.CharacterSpark[id.CardID()]
	}
	return total
}

// IsOver reports whether a win condition has been met.
func (s *State) IsOver() bool { return s.HasWinner }

// Clone returns an independent deep copy with no mutable aliasing back to
// the original. The catalog and logger are shared; both are read-only.
func (s *State) Clone() *State {
	out := &State{
		ID:             s.ID,
		Config:         s.Config,
		Players:        s.Players,
		Cards:          s.Cards.Clone(),
		CardNames:      make(map[core.CardID]core.CardName, len(s.CardNames)),
		CharacterSpark: make(map[core.CardID]core.Spark, len(s.CharacterSpark)),
		BanishOnLeave:  make(map[core.CardID]bool, len(s.BanishOnLeave)),
		Listeners:      make(map[ability.TriggerName][]core.CardID, len(s.Listeners)),
		Turn:           s.Turn,
		Priority:       s.Priority,
		Prompt:         s.Prompt.clone(),
		HasWinner:      s.HasWinner,
		Winner:         s.Winner,
		Rng:            s.Rng,
		ActionLog:      append([]LoggedAction(nil), s.ActionLog...),
		catalog:        s.catalog,
		logger:         s.logger,
	}
	out.Config.DeckOne = append([]core.CardName(nil), s.Config.DeckOne...)
	out.Config.DeckTwo = append([]core.CardName(nil), s.Config.DeckTwo...)
	for id, name := range s.CardNames {
		out.CardNames[id] = name
	}
	for id, spark := range s.CharacterSpark {
		out.CharacterSpark[id] = spark
	}
	for id, banish := range s.BanishOnLeave {
		out.BanishOnLeave[id] = banish
	}
	for trigger, ids := range s.Listeners {
		out.Listeners[trigger] = append([]core.CardID(nil), ids...)
	}
	out.Items = make([]StackItem, len(s.Items))
	for i, item := range s.Items {
		out.Items[i] = item.clone()
	}
	if s.Resolving != nil {
		resolving := &ResolutionState{
			Item:      s.Resolving.Item.clone(),
			Remaining: append([]ability.Effect(nil), s.Resolving.Remaining...),
		}
		out.Resolving = resolving
	}
	return out
}

func (s *State) shuffleDeck(player core.PlayerName) {
	order := append([]core.CardID(nil), s.Cards.Deck[player]...)
	s.Rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	if err := s.Cards.SetDeckOrder(player, order); err != nil {
		invariantf("deck shuffle rejected: %v", err)
	}
}

