package battle

import (
	"fmt"

	"github.com/emberfall/battle-server-go/internal/game/core"
)

// TurnPhase is the finite ordered turn cycle. Judgment, Dreamwell and Draw
// advance automatically; players act in Main, and Ending waits for the
// opponent to start the next turn.
type TurnPhase int

const (
	PhaseJudgment TurnPhase = iota
	PhaseDreamwell
	PhaseDraw
	PhaseMain
	PhaseEnding
)

var phaseNames = map[TurnPhase]string{
	PhaseJudgment:  "JUDGMENT",
	PhaseDreamwell: "DREAMWELL",
	PhaseDraw:      "DRAW",
	PhaseMain:      "MAIN",
	PhaseEnding:    "ENDING",
}

func (p TurnPhase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("PHASE_%d", int(p))
}

// phaseSequence is the turn structure as explicit transition data, so
// exhaustive transition tests stay practical.
var phaseSequence = []TurnPhase{
	PhaseJudgment,
	PhaseDreamwell,
	PhaseDraw,
	PhaseMain,
	PhaseEnding,
}

// next returns the phase following p within one turn, and false once the
// turn is exhausted.
func (p TurnPhase) next() (TurnPhase, bool) {
	for i, phase := range phaseSequence {
		if phase == p && i+1 < len(phaseSequence) {
			return phaseSequence[i+1], true
		}
	}
	return PhaseJudgment, false
}

// TurnData tracks whose turn it is, the 1-based turn number and the active
// phase. Exactly one phase is active at any time.
type TurnData struct {
	Active core.PlayerName
	Number int
	Phase  TurnPhase
}
