package battle

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/emberfall/battle-server-go/internal/game/ability"
	"github.com/emberfall/battle-server-go/internal/game/core"
)

// Execute validates and applies one action for a player. It is the only
// mutation entry point: an action is accepted exactly when LegalActions
// enumerates it, and a rejected action leaves the state untouched.
func (s *State) Execute(player core.PlayerName, action Action) error {
	if s.HasWinner {
		return fmt.Errorf("%w: %v submitted %s", ErrBattleOver, player, action)
	}
	if s.Prompt != nil && s.Prompt.Player != player {
		return fmt.Errorf("%w: %v acted while %v holds a prompt", ErrPromptMismatch, player, s.Prompt.Player)
	}
	legal := s.LegalActions(player)
	if !legal.Contains(action) {
		if s.Prompt != nil {
			return fmt.Errorf("%w: %s does not answer the open prompt", ErrPromptMismatch, action)
		}
		if err := s.classifyRejection(player, action); err != nil {
			return err
		}
		return fmt.Errorf("%w: %s for %v", ErrIllegalAction, action, player)
	}

	s.ActionLog = append(s.ActionLog, LoggedAction{Player: player, Action: action})
	s.logger.Debug("action accepted",
		zap.String("battle_id", s.ID),
		zap.Stringer("player", player),
		zap.String("action", action.String()),
	)

	switch action.Kind {
	case ActionPassPriority:
		s.passPriority(player)
	case ActionEndTurn:
		s.endTurn()
	case ActionStartNextTurn:
		s.startNextTurn(player)
	case ActionPlayCardFromHand:
		s.playCard(player, action.HandCard.CardID(), false)
	case ActionPlayCardFromVoid:
		s.playCard(player, action.VoidCard.CardID(), true)
	case ActionActivateAbility:
		s.activateAbility(action.Ability)
	case ActionSelectCharacter, ActionSelectStackCard, ActionSelectVoidCard,
		ActionSubmitVoidCards, ActionSelectHandCard, ActionSubmitHandCards,
		ActionSelectModalChoice, ActionSubmitMulligan:
		s.answerPrompt(action)
	default:
		invariantf("unknown action kind %q", action.Kind)
	}
	return nil
}

// classifyRejection maps an already-rejected play or activation to a more
// specific sentinel when the only problem is an unpayable cost.
func (s *State) classifyRejection(player core.PlayerName, action Action) error {
	switch action.Kind {
	case ActionPlayCardFromHand:
		id := action.HandCard
		if !s.Cards.Contains(player, id.CardID(), core.ZoneHand) {
			return nil
		}
		def := s.Definition(id.CardID())
		if s.Players[player].Energy < def.Cost {
			return fmt.Errorf("%w: insufficient energy for %s", ErrCostPayment, id)
		}
		if ev, ok := def.EventAbility(); ok && ev.AdditionalCost != nil {
			if !s.canPayAdditionalCost(player, id.CardID(), *ev.AdditionalCost, false) {
				return fmt.Errorf("%w: additional cost of %s not payable", ErrCostPayment, id)
			}
		}
	case ActionPlayCardFromVoid:
		id := action.VoidCard
		if !s.Cards.Contains(player, id.CardID(), core.ZoneVoid) {
			return nil
		}
		def := s.Definition(id.CardID())
		reclaim, ok := def.ReclaimAbility()
		if ok && s.Players[player].Energy < reclaim.ReclaimCost {
			return fmt.Errorf("%w: insufficient energy to reclaim %s", ErrCostPayment, id)
		}
		if ev, ok := def.EventAbility(); ok && ev.AdditionalCost != nil {
			if !s.canPayAdditionalCost(player, id.CardID(), *ev.AdditionalCost, true) {
				return fmt.Errorf("%w: additional cost of %s not payable", ErrCostPayment, id)
			}
		}
	case ActionActivateAbility:
		character := action.Ability.Character
		if !s.Cards.Contains(player, character.CardID(), core.ZoneBattlefield) {
			return nil
		}
		source := core.ActivatedSource(player, character.CardID(), action.Ability.Ability)
		for _, numbered := range s.Definition(character.CardID()).ActivatedAbilities() {
			if numbered.Number == action.Ability.Ability && !s.canPayAllCosts(player, source, numbered.Ability.Costs) {
				return fmt.Errorf("%w: costs of %s not payable", ErrCostPayment, action.Ability)
			}
		}
	}
	return nil
}

// passPriority records a pass. When both players have passed on a non-empty
// stack the top item resolves; otherwise priority moves across.
func (s *State) passPriority(player core.PlayerName) {
	s.Priority.Passed[player] = true
	opponent := player.Opponent()
	if len(s.Items) > 0 && s.Priority.Passed[opponent] {
		s.resolveTopOfStack()
		return
	}
	if len(s.Items) > 0 {
		s.Priority.Holder = opponent
		return
	}
	// Empty-stack pass hands priority back to the active player.
	s.Priority.Holder = s.Turn.Active
	s.Priority.resetPasses()
}

// endTurn moves the active player's turn into the ending phase and offers
// priority to the opponent, who may respond with fast cards before starting
// the next turn.
func (s *State) endTurn() {
	s.Turn.Phase = PhaseEnding
	s.Priority.Holder = s.Turn.Active.Opponent()
	s.Priority.resetPasses()
}

// startNextTurn begins the caller's turn: they become active and the
// automatic phases run up to their main phase.
func (s *State) startNextTurn(player core.PlayerName) {
	s.Turn = TurnData{Active: player, Number: s.Turn.Number + 1, Phase: PhaseJudgment}
	s.runAutomaticPhases()
}

// runAutomaticPhases executes the judgment, dreamwell and draw phases for
// the active player, then opens the main phase. The first turn of the
// battle skips judgment scoring and the draw.
func (s *State) runAutomaticPhases() {
	active := s.Turn.Active
	source := core.RuleSource(active)

	s.Turn.Phase = PhaseJudgment
	s.fireJudgmentTriggers(active)
	if s.Turn.Number > 1 {
		s.addPoints(active, core.Points(s.TotalSpark(active)))
	}
	if s.HasWinner {
		return
	}

	s.Turn.Phase = PhaseDreamwell
	s.Players[active].ProducedEnergy++
	s.Players[active].Energy = s.Players[active].ProducedEnergy

	s.Turn.Phase = PhaseDraw
	if s.Turn.Number > 1 {
		s.drawCard(active, source)
	}

	s.Turn.Phase = PhaseMain
	s.Priority.Holder = active
	s.Priority.resetPasses()
}

// playCard pays for a card and puts it on the stack. Reclaimed cards are
// marked to banish when they next leave play. Target and mode selection
// happens now, at play time; a single legal choice is taken silently.
func (s *State) playCard(player core.PlayerName, id core.CardID, fromVoid bool) {
	def := s.Definition(id)
	cost := def.Cost
	from := core.ZoneHand
	if fromVoid {
		reclaim, ok := def.ReclaimAbility()
		if !ok {
			invariantf("card %q played from void without reclaim", def.Name)
		}
		cost = reclaim.ReclaimCost
		from = core.ZoneVoid
	}
	if s.Players[player].Energy < cost {
		invariantf("play accepted without energy")
	}
	s.Players[player].Energy -= cost
	if err := s.Cards.Move(id, from, core.ZoneStack); err != nil {
		invariantf("play rejected: %v", err)
	}
	if fromVoid {
		s.BanishOnLeave[id] = true
	}

	item := StackItem{
		Kind:        StackItemCard,
		Card:        core.StackCardID{ID: id},
		Controller:  player,
		Source:      core.CardSource(player, id),
		FromVoid:    fromVoid,
		ModalChoice: -1,
	}
	s.Items = append(s.Items, item)
	s.Priority.resetPasses()
	s.logger.Debug("card played",
		zap.String("battle_id", s.ID),
		zap.Stringer("player", player),
		zap.String("card", string(def.Name)),
		zap.Bool("from_void", fromVoid),
	)

	if !fromVoid {
		s.fireTrigger(ability.TriggerPlayedCardFromHand, id)
	}

	if ev, ok := def.EventAbility(); ok && ev.AdditionalCost != nil {
		if !s.payAdditionalCost(item, *ev.AdditionalCost) {
			return
		}
	}
	s.finishPlay(item.Card)
}

// finishPlay selects the pending card's mode and targets once its costs are
// fully paid, then hands priority to the opponent.
func (s *State) finishPlay(card core.StackCardID) {
	top := &s.Items[len(s.Items)-1]
	if top.Kind != StackItemCard || top.Card != card {
		invariantf("finishing play of a non-top stack card")
	}
	def := s.Definition(card.CardID())
	if def.Type == ability.TypeEvent {
		ev, ok := def.EventAbility()
		if !ok {
			invariantf("event %q has no event ability", def.Name)
		}
		if ev.Effect.Kind == ability.NodeModal {
			if !s.chooseMode(top.Controller, *top, ev.Effect) {
				return
			}
		} else if !s.chooseStackTargets(*top, ev.Effect, -1) {
			return
		}
	}
	s.Priority.Holder = top.Controller.Opponent()
}

// chooseMode resolves the mode of a modal card at play time. One affordable
// mode is taken silently; several raise a prompt. Mode energy is paid on
// selection, on top of the card's cost.
func (s *State) chooseMode(player core.PlayerName, item StackItem, effect ability.Effect) bool {
	affordable := s.affordableModes(player, effect)
	if len(affordable) == 0 {
		invariantf("modal play accepted without affordable mode")
	}
	if len(affordable) == 1 {
		return s.selectMode(item.Card, affordable[0])
	}
	s.Prompt = &Prompt{
		Kind:        PromptChooseModal,
		Player:      player,
		Source:      item.Source,
		ChoiceCount: len(effect.Choices),
		Continuation: Continuation{
			Kind:      ContinueStackModal,
			StackCard: item.Card,
		},
	}
	return false
}

// affordableModes returns the indexes of the modes the player can both pay
// for and, when targeted, aim at something.
func (s *State) affordableModes(player core.PlayerName, effect ability.Effect) []int {
	source := core.PlayerSource(player)
	var out []int
	for i, choice := range effect.Choices {
		if s.Players[player].Energy < choice.EnergyCost {
			continue
		}
		if !s.effectHasRequiredTargets(source, choice.Effect, -1) {
			continue
		}
		out = append(out, i)
	}
	return out
}

// selectMode pays a mode's energy and records it on the pending stack item,
// then continues to target selection. Returns false when targeting
// prompted.
func (s *State) selectMode(card core.StackCardID, choice int) bool {
	top := &s.Items[len(s.Items)-1]
	if top.Kind != StackItemCard || top.Card != card {
		invariantf("mode chosen for a non-top stack card")
	}
	def := s.Definition(card.CardID())
	ev, ok := def.EventAbility()
	if !ok {
		invariantf("modal card %q has no event ability", def.Name)
	}
	mode := ev.Effect.Choices[choice]
	if s.Players[top.Controller].Energy < mode.EnergyCost {
		invariantf("mode chosen without energy")
	}
	s.Players[top.Controller].Energy -= mode.EnergyCost
	top.ModalChoice = choice
	if !s.chooseStackTargets(*top, ev.Effect, choice) {
		return false
	}
	s.Priority.Holder = top.Controller.Opponent()
	return true
}

// chooseStackTargets picks targets for the first targeted effect of a
// pending stack item. Zero candidates leaves the targets empty, one is
// taken silently, more prompt the controller. Returns false when a prompt
// was raised.
func (s *State) chooseStackTargets(item StackItem, effect ability.Effect, modalChoice int) bool {
	pred, zone, ok := firstTargetSpec(effect, modalChoice)
	if !ok {
		return true
	}
	top := &s.Items[len(s.Items)-1]
	switch zone {
	case ability.TargetBattlefield:
		candidates := s.MatchingCharacters(item.Source, pred)
		switch len(candidates) {
		case 0:
		case 1:
			top.TargetCharacters = []core.CharacterID{candidates[0]}
		default:
			s.Prompt = &Prompt{
				Kind:            PromptChooseCharacter,
				Player:          item.Controller,
				Source:          item.Source,
				ValidCharacters: candidates,
				Continuation: Continuation{
					Kind:      ContinueStackTargets,
					StackCard: item.Card,
				},
			}
			return false
		}
	case ability.TargetStack:
		candidates := s.MatchingStackCards(item.Source, pred)
		switch len(candidates) {
		case 0:
		case 1:
			top.TargetStackCards = []core.StackCardID{candidates[0]}
		default:
			s.Prompt = &Prompt{
				Kind:            PromptChooseStackCard,
				Player:          item.Controller,
				Source:          item.Source,
				ValidStackCards: candidates,
				Continuation: Continuation{
					Kind:      ContinueStackTargets,
					StackCard: item.Card,
				},
			}
			return false
		}
	case ability.TargetVoid:
		// Void selections happen at resolution, not at play.
	}
	return true
}

// firstTargetSpec finds the play-time target requirement of an effect tree:
// the first standard effect wanting a battlefield or stack target.
func firstTargetSpec(e ability.Effect, modalChoice int) (ability.Predicate, ability.TargetZone, bool) {
	switch e.Kind {
	case ability.NodeStandard:
		if !e.Standard.HasTarget {
			return ability.Predicate{}, ability.TargetNone, false
		}
		pred, zone := e.Standard.TargetSpec()
		if zone != ability.TargetBattlefield && zone != ability.TargetStack {
			return ability.Predicate{}, ability.TargetNone, false
		}
		return pred, zone, true
	case ability.NodeList:
		for _, item := range e.Items {
			if pred, zone, ok := firstTargetSpec(item, modalChoice); ok {
				return pred, zone, ok
			}
		}
		return ability.Predicate{}, ability.TargetNone, false
	case ability.NodeModal:
		if modalChoice < 0 {
			return ability.Predicate{}, ability.TargetNone, false
		}
		return firstTargetSpec(e.Choices[modalChoice].Effect, -1)
	default:
		return ability.Predicate{}, ability.TargetNone, false
	}
}

// effectHasRequiredTargets reports whether an effect's play-time target
// requirement, if any, has at least one candidate.
func (s *State) effectHasRequiredTargets(source core.EffectSource, e ability.Effect, modalChoice int) bool {
	pred, zone, ok := firstTargetSpec(e, modalChoice)
	if !ok {
		return true
	}
	switch zone {
	case ability.TargetBattlefield:
		return len(s.MatchingCharacters(source, pred)) > 0
	case ability.TargetStack:
		return len(s.MatchingStackCards(source, pred)) > 0
	default:
		return true
	}
}

// activateAbility pays an activated ability's costs and puts it on the
// stack. The character stays on the battlefield; only the ability resolves.
func (s *State) activateAbility(id core.ActivatedAbilityID) {
	def := s.Definition(id.Character.CardID())
	var activated ability.Ability
	found := false
	for _, numbered := range def.ActivatedAbilities() {
		if numbered.Number == id.Ability {
			activated = numbered.Ability
			found = true
		}
	}
	if !found {
		invariantf("activated ability %s missing on %q", id, def.Name)
	}
	if !s.payActivationCosts(id, activated.Costs, 0) {
		return
	}
	s.finishActivation(id)
}

// finishActivation pushes the paid-for ability onto the stack and selects
// its targets.
func (s *State) finishActivation(id core.ActivatedAbilityID) {
	player, err := s.Cards.Controller(id.Character.CardID())
	if err != nil {
		invariantf("activating character untracked: %v", err)
	}
	def := s.Definition(id.Character.CardID())
	var activated ability.Ability
	for _, numbered := range def.ActivatedAbilities() {
		if numbered.Number == id.Ability {
			activated = numbered.Ability
		}
	}
	item := StackItem{
		Kind:        StackItemAbility,
		Ability:     id,
		Controller:  player,
		Source:      core.ActivatedSource(player, id.Character.CardID(), id.Ability),
		ModalChoice: -1,
	}
	s.Items = append(s.Items, item)
	s.Priority.resetPasses()
	s.logger.Debug("ability activated",
		zap.String("battle_id", s.ID),
		zap.Stringer("player", player),
		zap.String("ability", id.String()),
	)
	if !s.chooseStackTargets(item, activated.Effect, -1) {
		return
	}
	s.Priority.Holder = player.Opponent()
}

// answerPrompt applies a prompt response. The action was already validated
// against the open prompt by LegalActions.
func (s *State) answerPrompt(action Action) {
	prompt := s.Prompt
	if prompt == nil {
		invariantf("prompt answer without open prompt")
	}
	switch action.Kind {
	case ActionSelectCharacter:
		s.Prompt = nil
		s.continueWithCharacter(prompt, action.Character)
	case ActionSelectStackCard:
		s.Prompt = nil
		s.continueWithStackCard(prompt, action.StackCard)
	case ActionSelectVoidCard:
		prompt.ChosenVoidCards = append(prompt.ChosenVoidCards, action.VoidCard)
	case ActionSubmitVoidCards:
		s.Prompt = nil
		s.continueWithVoidCards(prompt, prompt.ChosenVoidCards)
	case ActionSelectHandCard:
		prompt.ChosenHandCards = append(prompt.ChosenHandCards, action.HandCard)
	case ActionSubmitHandCards:
		s.Prompt = nil
		s.continueWithHandCards(prompt, prompt.ChosenHandCards)
	case ActionSelectModalChoice:
		s.Prompt = nil
		if prompt.Kind == PromptOptionalEffect {
			s.continueWithOptional(prompt, action.Choice)
			return
		}
		s.selectMode(prompt.Continuation.StackCard, action.Choice)
	case ActionSubmitMulligan:
		s.answerMulligan(prompt.Player, action.Mulligan)
	default:
		invariantf("action %q is not a prompt answer", action.Kind)
	}
}

func (s *State) continueWithCharacter(prompt *Prompt, chosen core.CharacterID) {
	switch prompt.Continuation.Kind {
	case ContinueStackTargets:
		top := &s.Items[len(s.Items)-1]
		top.TargetCharacters = []core.CharacterID{chosen}
		s.Priority.Holder = prompt.Player.Opponent()
		s.Priority.resetPasses()
	case ContinuePayCost:
		s.abandonCharacter(chosen)
		s.resumeActivation(prompt.Continuation)
	case ContinuePlayCost:
		s.abandonCharacter(chosen)
		s.finishPlay(prompt.Continuation.StackCard)
	default:
		invariantf("character chosen for continuation %q", prompt.Continuation.Kind)
	}
}

func (s *State) continueWithStackCard(prompt *Prompt, chosen core.StackCardID) {
	switch prompt.Continuation.Kind {
	case ContinueStackTargets:
		top := &s.Items[len(s.Items)-1]
		top.TargetStackCards = []core.StackCardID{chosen}
		s.Priority.Holder = prompt.Player.Opponent()
		s.Priority.resetPasses()
	default:
		invariantf("stack card chosen for continuation %q", prompt.Continuation.Kind)
	}
}

func (s *State) continueWithVoidCards(prompt *Prompt, chosen []core.VoidCardID) {
	switch prompt.Continuation.Kind {
	case ContinueResolveEffect:
		pending := prompt.Continuation.Pending
		s.applyVoidSelection(chosen, pending.Kind == ability.EffectMaterializeFromVoid)
		s.runResolution()
	case ContinuePayCost:
		for _, id := range chosen {
			if err := s.Cards.Move(id.CardID(), core.ZoneVoid, core.ZoneBanished); err != nil {
				invariantf("void banish rejected: %v", err)
			}
		}
		s.resumeActivation(prompt.Continuation)
	case ContinuePlayCost:
		for _, id := range chosen {
			if err := s.Cards.Move(id.CardID(), core.ZoneVoid, core.ZoneBanished); err != nil {
				invariantf("void banish rejected: %v", err)
			}
		}
		s.finishPlay(prompt.Continuation.StackCard)
	default:
		invariantf("void cards chosen for continuation %q", prompt.Continuation.Kind)
	}
}

func (s *State) continueWithHandCards(prompt *Prompt, chosen []core.HandCardID) {
	switch prompt.Continuation.Kind {
	case ContinueResolveEffect:
		for _, id := range chosen {
			s.discardFromHand(id)
		}
		s.runResolution()
	case ContinuePayCost:
		for _, id := range chosen {
			s.discardFromHand(id)
		}
		s.resumeActivation(prompt.Continuation)
	case ContinuePlayCost:
		for _, id := range chosen {
			s.discardFromHand(id)
		}
		s.finishPlay(prompt.Continuation.StackCard)
	default:
		invariantf("hand cards chosen for continuation %q", prompt.Continuation.Kind)
	}
}

// continueWithOptional applies or skips a declinable effect, then resumes
// the suspended resolution.
func (s *State) continueWithOptional(prompt *Prompt, choice int) {
	if s.Resolving == nil {
		invariantf("optional effect answered without a resolving item")
	}
	if choice == 1 {
		if !s.applyStandardEffect(s.Resolving.Item, prompt.Continuation.Pending, false) {
			return
		}
	}
	s.runResolution()
}

// resumeActivation continues paying costs after a cost selection, then
// finishes the activation once everything is paid.
func (s *State) resumeActivation(cont Continuation) {
	def := s.Definition(cont.Ability.Character.CardID())
	var activated ability.Ability
	for _, numbered := range def.ActivatedAbilities() {
		if numbered.Number == cont.Ability.Ability {
			activated = numbered.Ability
		}
	}
	if !s.payActivationCosts(cont.Ability, activated.Costs, cont.CostIndex+1) {
		return
	}
	s.finishActivation(cont.Ability)
}

// answerMulligan records one opening-hand decision. A taken mulligan
// shuffles the hand away and draws one fewer card. When both players have
// decided, the first turn's automatic phases run.
func (s *State) answerMulligan(player core.PlayerName, mulligan bool) {
	s.Prompt = nil
	s.Players[player].MulliganOpen = false
	if mulligan {
		s.Players[player].MulliganTaken = true
		hand := s.Cards.HandCards(player)
		for _, id := range hand {
			if err := s.Cards.Move(id.CardID(), core.ZoneHand, core.ZoneDeck); err != nil {
				invariantf("mulligan return rejected: %v", err)
			}
		}
		s.shuffleDeck(player)
		for i := 0; i < len(hand)-1; i++ {
			s.drawCard(player, core.RuleSource(player))
		}
		s.logger.Debug("mulligan taken",
			zap.String("battle_id", s.ID),
			zap.Stringer("player", player),
			zap.Int("new_hand", len(hand)-1),
		)
	}
	opponent := player.Opponent()
	if s.Players[opponent].MulliganOpen {
		s.Prompt = &Prompt{
			Kind:         PromptMulligan,
			Player:       opponent,
			Source:       core.RuleSource(opponent),
			ChoiceCount:  2,
			Continuation: Continuation{Kind: ContinueMulligan},
		}
		return
	}
	s.runAutomaticPhases()
}
