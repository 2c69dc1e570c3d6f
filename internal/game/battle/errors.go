package battle

import (
	"errors"
	"fmt"
)

// Sentinel errors for the ordinary failure taxonomy. All of them leave the
// battle state unchanged; validation completes before any mutation begins.
var (
	// ErrIllegalAction marks an action that fails validation against the
	// current legal-action set.
	ErrIllegalAction = errors.New("illegal action")
	// ErrCostPayment marks an affordability check that failed before any
	// mutation.
	ErrCostPayment = errors.New("cost cannot be paid")
	// ErrPromptMismatch marks a response that does not match the outstanding
	// prompt; the prompt remains outstanding.
	ErrPromptMismatch = errors.New("response does not match outstanding prompt")
	// ErrBattleOver marks an action submitted after a win condition was met.
	ErrBattleOver = errors.New("battle is over")
)

// invariantf panics with a formatted message. Internal id/zone
// inconsistencies are engine bugs, not reachable through any legal action
// sequence; continuing past one would corrupt replay and self-play
// guarantees, so they are fatal.
func invariantf(format string, args ...any) {
	panic("engine invariant violation: " + fmt.Sprintf(format, args...))
}
