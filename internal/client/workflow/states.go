package workflow

import (
	"errors"
	"fmt"
)

// State is the name of a flow state.
type State string

const (
	StateIdle   State = "idle"
	StateFailed State = "failed"

	// verify-with-proof
	StateVerifying         State = "verifying"
	StateVerifiedNoProof   State = "verified-no-proof"
	StateVerifiedWithProof State = "verified-with-proof"

	// create-with-report
	StateCreating State = "creating"
	StateCreated  State = "created"
)

// ErrFlowFinished is returned when a flow that already ran is run again.
var ErrFlowFinished = errors.New("flow already ran")

var transitions = map[State][]State{
	StateIdle:      {StateVerifying, StateCreating},
	StateVerifying: {StateVerifiedNoProof, StateVerifiedWithProof, StateFailed},
	StateCreating:  {StateCreated, StateFailed},
}

// CanTransitionTo reports whether next may follow s.
func (s State) CanTransitionTo(next State) bool {
	for _, st := range transitions[s] {
		if st == next {
			return true
		}
	}
	return false
}

// Terminal reports whether no state can follow s.
func (s State) Terminal() bool {
	return len(transitions[s]) == 0
}

// Observer is notified of every state change of a flow. It is called outside
// the flow's lock and may read the flow.
type Observer func(flow string, from, to State)

func invalidTransition(from, to State) error {
	return fmt.Errorf("invalid state transition: %s -> %s", from, to)
}
