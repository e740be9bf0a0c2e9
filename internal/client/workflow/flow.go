package workflow

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/idkeeper/internal/logging"
)

// machine is the state holder shared by the flow types.
type machine struct {
	name     string
	mu       sync.Mutex
	state    State
	log      logging.Logger
	observer Observer
}

func (m *machine) init(name string, log logging.Logger, observer Observer) {
	m.name = name
	m.state = StateIdle
	m.log = log.With("flow", name)
	m.observer = observer
}

func (m *machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// start moves an idle flow into its running state.
func (m *machine) start(ctx context.Context, running State) error {
	m.mu.Lock()
	if m.state != StateIdle {
		m.mu.Unlock()
		return ErrFlowFinished
	}
	m.state = running
	m.mu.Unlock()

	m.notify(ctx, StateIdle, running)
	return nil
}

// finish records the terminal state; apply runs under the lock so the result
// and the state become visible together.
func (m *machine) finish(ctx context.Context, to State, apply func()) {
	m.mu.Lock()
	from := m.state
	if !from.CanTransitionTo(to) {
		m.mu.Unlock()
		m.log.Error(ctx, "ignoring transition", "error", invalidTransition(from, to))
		return
	}
	if apply != nil {
		apply()
	}
	m.state = to
	m.mu.Unlock()

	m.notify(ctx, from, to)
}

func (m *machine) notify(ctx context.Context, from, to State) {
	m.log.Debug(ctx, "state changed", "from", string(from), "to", string(to))
	if m.observer != nil {
		m.observer(m.name, from, to)
	}
}
