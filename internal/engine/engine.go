package engine

import (
	"fmt"
	"math"
	"time"

	"EconSim/internal/model"
)

// TurnHook observes every committed turn, including its r > g result.
type TurnHook func(turn int, s model.EconomicState, w model.SustainabilityWarning)

// Engine owns the single economic state, the turn counter and the history log.
// It is not safe for concurrent use; hosts serialize calls.
type Engine struct {
	state   model.EconomicState
	history []model.EconomicState
	turn    int

	bounds Bounds
	strict bool
	onTurn TurnHook
}

// Option configures an Engine.
type Option func(*Engine)

// WithBounds overrides DefaultBounds.
func WithBounds(b Bounds) Option {
	return func(e *Engine) { e.bounds = b }
}

// WithStrictBounds rejects out-of-range transitions with ErrOutOfBounds instead of clamping.
func WithStrictBounds() Option {
	return func(e *Engine) { e.strict = true }
}

// WithTurnHook registers a callback run after each committed turn.
func WithTurnHook(h TurnHook) Option {
	return func(e *Engine) { e.onTurn = h }
}

// New creates an Engine at the initial state, turn 1.
func New(opts ...Option) *Engine {
	e := &Engine{bounds: DefaultBounds}
	for _, o := range opts {
		o(e)
	}
	e.Reset()
	return e
}

// State returns a copy of the current state.
func (e *Engine) State() model.EconomicState {
	return e.state
}

// Turn returns the current turn counter.
func (e *Engine) Turn() int {
	return e.turn
}

// History returns a copy of the history log; index 0 is the initial state.
func (e *Engine) History() []model.EconomicState {
	out := make([]model.EconomicState, len(e.history))
	copy(out, e.history)
	return out
}

// Status derives the debt band and r > g warning of the current state.
func (e *Engine) Status() model.Status {
	return model.Status{
		Turn:    e.turn,
		Band:    Band(e.state),
		Warning: Sustainability(e.state),
	}
}

// Apply runs one policy action and advances the turn.
func (e *Engine) Apply(lever model.Lever, magnitude float64) (model.EconomicState, error) {
	next, err := e.transition(e.state, lever, magnitude)
	if err != nil {
		return e.state, err
	}

	e.turn++
	e.state = next
	e.history = append(e.history, next)

	if e.onTurn != nil {
		e.onTurn(e.turn, next, Sustainability(next))
	}
	return next, nil
}

// Simulate returns the state Apply would produce without committing it.
func (e *Engine) Simulate(lever model.Lever, magnitude float64) (model.EconomicState, error) {
	return e.transition(e.state, lever, magnitude)
}

// Reset restores the initial state, truncates history to it and sets turn 1.
func (e *Engine) Reset() model.EconomicState {
	init := model.InitialState()
	e.state = init
	e.history = []model.EconomicState{init}
	e.turn = 1
	return init
}

// Snapshot captures the engine for persistence.
func (e *Engine) Snapshot() model.Snapshot {
	return model.Snapshot{
		Turn:    e.turn,
		State:   e.state,
		History: e.History(),
		SavedAt: time.Now(),
	}
}

// Restore replaces state, history and turn from snap in one step.
func (e *Engine) Restore(snap model.Snapshot) error {
	if snap.Turn < 1 {
		return fmt.Errorf("%w: turn %d < 1", ErrInvalidSnapshot, snap.Turn)
	}
	if len(snap.History) != snap.Turn {
		return fmt.Errorf("%w: history length %d != turn %d", ErrInvalidSnapshot, len(snap.History), snap.Turn)
	}
	if snap.History[len(snap.History)-1] != snap.State {
		return fmt.Errorf("%w: state does not match last history entry", ErrInvalidSnapshot)
	}
	for i, s := range snap.History {
		if err := e.bounds.Check(s); err != nil {
			return fmt.Errorf("%w: history[%d]: %v", ErrInvalidSnapshot, i, err)
		}
		if !finite(s) {
			return fmt.Errorf("%w: history[%d] has non-finite fields", ErrInvalidSnapshot, i)
		}
	}

	e.state = snap.State
	e.history = append([]model.EconomicState(nil), snap.History...)
	e.turn = snap.Turn
	return nil
}

func (e *Engine) transition(s model.EconomicState, lever model.Lever, magnitude float64) (model.EconomicState, error) {
	r, ok := rules[lever]
	if !ok {
		return s, fmt.Errorf("%w: %q", ErrInvalidLever, lever)
	}
	if err := validateMagnitude(lever, magnitude); err != nil {
		return s, err
	}

	before := s
	r(&s, magnitude)

	if e.strict {
		if err := e.bounds.Check(s); err != nil {
			return before, fmt.Errorf("%s: %w", lever, err)
		}
	} else {
		e.bounds.Clamp(&s)
	}

	next := AdvanceDebt(s)
	if !finite(next) {
		return before, fmt.Errorf("%w: %s magnitude %v overflows the state", ErrInvalidMagnitude, lever, magnitude)
	}
	return next, nil
}

func finite(s model.EconomicState) bool {
	for _, v := range []float64{
		s.GDPGrowth, s.Inflation, s.Unemployment, s.InterestRate, s.ExchangeRate,
		s.TradeBalance, s.GovernmentSpending, s.TariffRate, s.GovernmentDebt,
		s.NominalGDP, s.DebtToGDP, s.InterestPayment, s.TaxRevenue, s.FiscalBalance,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
