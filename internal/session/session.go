// Package session hosts one simulation for concurrent front-ends. It serializes
// policy actions, stamps them with a run id and fans committed turns out to the
// recorder, the notifier and websocket subscribers.
package session

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"EconSim/internal/advisor"
	"EconSim/internal/engine"
	"EconSim/internal/model"
	"EconSim/internal/notifier"
	"EconSim/internal/recorder"
)

// Sender delivers formatted reports. *notifier.TelegramNotifier implements it.
type Sender interface {
	SendWithRetry(ctx context.Context, text string, maxRetries int) error
}

// Event is broadcast to subscribers after every commit and reset.
type Event struct {
	Type      string              `json:"type"` // "turn" or "reset"
	RunID     string              `json:"run_id"`
	Turn      int                 `json:"turn"`
	Lever     model.Lever         `json:"lever,omitempty"`
	Magnitude float64             `json:"magnitude,omitempty"`
	State     model.EconomicState `json:"state"`
	Status    model.Status        `json:"status"`
}

// Deps are the collaborators of a Session. Nil fields fall back to no-ops.
type Deps struct {
	Recorder     recorder.Recorder
	Advisor      advisor.Advisor
	Sender       Sender
	SnapshotPath string
	ScenarioDir  string
}

// Session owns the engine; every engine call goes through its mutex.
type Session struct {
	Cron *cron.Cron

	mu        sync.Mutex
	engine    *engine.Engine
	runID     string
	lastLever model.Lever

	recorder     recorder.Recorder
	advisor      advisor.Advisor
	sender       Sender
	snapshotPath string
	scenarioDir  string

	subsMu sync.Mutex
	subs   map[chan Event]struct{}

	// Recorder writes run on one goroutine in commit order, off the engine lock.
	records chan func()
	pending sync.WaitGroup
	quit    chan struct{}
	stopped bool // guarded by mu

	ctx context.Context
	wg  sync.WaitGroup
}

const recordQueueSize = 1024

// New creates a session around a fresh engine built with opts.
func New(ctx context.Context, deps Deps, opts ...engine.Option) *Session {
	s := &Session{
		Cron:         cron.New(cron.WithSeconds()),
		runID:        uuid.NewString(),
		recorder:     deps.Recorder,
		advisor:      deps.Advisor,
		sender:       deps.Sender,
		snapshotPath: deps.SnapshotPath,
		scenarioDir:  deps.ScenarioDir,
		subs:         make(map[chan Event]struct{}),
		records:      make(chan func(), recordQueueSize),
		quit:         make(chan struct{}),
		ctx:          ctx,
	}
	if s.recorder == nil {
		s.recorder = recorder.NewNoopRecorder()
	}
	if s.advisor == nil {
		s.advisor = advisor.Disabled{}
	}
	s.engine = engine.New(append(opts, engine.WithTurnHook(logTurn))...)
	go s.recordLoop()
	return s
}

func (s *Session) recordLoop() {
	for {
		select {
		case fn := <-s.records:
			fn()
			s.pending.Done()
		case <-s.quit:
			for {
				select {
				case fn := <-s.records:
					fn()
					s.pending.Done()
				default:
					return
				}
			}
		}
	}
}

// enqueueRecord schedules a recorder write. Callers hold s.mu, which fixes the
// order; once the session is stopped writes run inline.
func (s *Session) enqueueRecord(fn func()) {
	if s.stopped {
		fn()
		return
	}
	s.pending.Add(1)
	s.records <- fn
}

// flush waits until every queued recorder write has finished.
func (s *Session) flush() {
	s.pending.Wait()
}

func logTurn(turn int, st model.EconomicState, w model.SustainabilityWarning) {
	if w.Active {
		log.Printf("[WARN] turn %d: r > g, rate %.1f%% exceeds nominal growth %.1f%%, debt/GDP %.1f%%",
			turn, w.Rate, w.Growth, st.DebtToGDP)
	}
}

// RunID identifies the current run. It changes on every reset.
func (s *Session) RunID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.runID
}

// State returns the current state.
func (s *Session) State() model.EconomicState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.State()
}

// Turn returns the current turn.
func (s *Session) Turn() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Turn()
}

// History returns a copy of the history log.
func (s *Session) History() []model.EconomicState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.History()
}

// Status returns the debt band and r > g result of the current state.
func (s *Session) Status() model.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Status()
}

// Apply commits one policy action and sends a turn report.
func (s *Session) Apply(lever model.Lever, magnitude float64) (model.EconomicState, error) {
	st, _, err := s.apply(lever, magnitude, true)
	return st, err
}

// apply commits one action and returns the state together with the turn it
// was committed as.
func (s *Session) apply(lever model.Lever, magnitude float64, notify bool) (model.EconomicState, int, error) {
	s.mu.Lock()
	st, err := s.engine.Apply(lever, magnitude)
	if err != nil {
		turn := s.engine.Turn()
		s.mu.Unlock()
		log.Printf("[WARN] rejected %s %g: %v", lever, magnitude, err)
		return st, turn, err
	}
	s.lastLever = lever
	status := s.engine.Status()
	evt := Event{
		Type: "turn", RunID: s.runID, Turn: status.Turn,
		Lever: lever, Magnitude: magnitude, State: st, Status: status,
	}
	rec := &recorder.TurnEvent{
		RunID: s.runID, Turn: status.Turn, Lever: lever, Magnitude: magnitude,
		State: st, Band: status.Band, Warning: status.Warning,
	}
	s.enqueueRecord(func() {
		if err := s.recorder.RecordTurn(rec); err != nil {
			log.Printf("[ERROR] record turn %d: %v", rec.Turn, err)
		}
	})
	s.broadcast(evt)
	s.mu.Unlock()

	if notify {
		s.trySend(notifier.FormatTurnReport(lever, magnitude, st, status))
	}
	return st, status.Turn, nil
}

// Preview returns the state an action would produce without committing it.
func (s *Session) Preview(lever model.Lever, magnitude float64) (model.EconomicState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Simulate(lever, magnitude)
}

// Reset starts a new run from the initial state and clears the advisor chat.
func (s *Session) Reset() model.EconomicState {
	s.mu.Lock()
	prev, finalTurn := s.runID, s.engine.Turn()
	st := s.engine.Reset()
	s.runID = uuid.NewString()
	runID := s.runID
	s.lastLever = ""
	status := s.engine.Status()
	rec := &recorder.ResetEvent{PreviousRunID: prev, RunID: runID, FinalTurn: finalTurn}
	s.enqueueRecord(func() {
		if err := s.recorder.RecordReset(rec); err != nil {
			log.Printf("[ERROR] record reset: %v", err)
		}
	})
	s.broadcast(Event{Type: "reset", RunID: runID, Turn: status.Turn, State: st, Status: status})
	s.mu.Unlock()

	s.advisor.ResetChat()
	log.Printf("[INFO] simulation reset after turn %d, new run %s", finalTurn, runID)
	return st
}

// Snapshot captures the engine for persistence.
func (s *Session) Snapshot() model.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.engine.Snapshot()
}

// Restore replaces the engine state with snap.
func (s *Session) Restore(snap model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.engine.Restore(snap); err != nil {
		return fmt.Errorf("restore snapshot: %w", err)
	}
	s.lastLever = ""
	return nil
}

// briefing copies the advisor input and the run it belongs to in one step.
func (s *Session) briefing() (advisor.Briefing, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return advisor.Briefing{
		Turn:      s.engine.Turn(),
		State:     s.engine.State(),
		History:   s.engine.History(),
		LastLever: s.lastLever,
	}, s.runID
}

// Commentary asks the advisor about the current state. The engine lock is
// not held while the advisor runs.
func (s *Session) Commentary(ctx context.Context) (string, error) {
	return s.narrate(ctx, "ADVICE", "")
}

// Ask forwards a free-form question to the advisor chat.
func (s *Session) Ask(ctx context.Context, question string) (string, error) {
	return s.narrate(ctx, "ASK", question)
}

func (s *Session) narrate(ctx context.Context, kind, question string) (string, error) {
	b, runID := s.briefing()
	var (
		text string
		err  error
	)
	if kind == "ASK" {
		text, err = s.advisor.Ask(ctx, b, question)
	} else {
		text, err = s.advisor.Commentary(ctx, b)
	}

	evt := &recorder.CommentaryEvent{
		RunID: runID, Turn: b.Turn, Kind: kind, Question: question, Text: text,
	}
	if err != nil {
		evt.Error = err.Error()
		log.Printf("[WARN] %s via %s failed: %v", kind, s.advisor.Name(), err)
	}
	if rerr := s.recorder.RecordCommentary(evt); rerr != nil {
		log.Printf("[ERROR] record commentary: %v", rerr)
	}
	return text, err
}

// Subscribe registers for turn and reset events. The returned function
// unsubscribes and closes the channel. Slow subscribers miss events.
func (s *Session) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)
	s.subsMu.Lock()
	s.subs[ch] = struct{}{}
	s.subsMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subsMu.Lock()
			delete(s.subs, ch)
			s.subsMu.Unlock()
			close(ch)
		})
	}
}

func (s *Session) broadcast(evt Event) {
	s.subsMu.Lock()
	defer s.subsMu.Unlock()
	for ch := range s.subs {
		select {
		case ch <- evt:
		default:
			log.Printf("[WARN] subscriber lagging, dropped %s event for turn %d", evt.Type, evt.Turn)
		}
	}
}

func (s *Session) trySend(text string) {
	if s.sender == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.sender.SendWithRetry(s.ctx, text, 3); err != nil {
			log.Printf("[ERROR] send notification: %v", err)
		}
	}()
}
