package recorder

import "EconSim/internal/model"

// TurnEvent holds everything recorded for one committed policy action.
type TurnEvent struct {
	RunID     string
	Turn      int
	Lever     model.Lever
	Magnitude float64
	State     model.EconomicState
	Band      model.DebtBand
	Warning   model.SustainabilityWarning
}

// ResetEvent records a reset that ended one run and started another.
type ResetEvent struct {
	PreviousRunID string
	RunID         string
	FinalTurn     int
}

// CommentaryEvent records one advisory request and its outcome.
type CommentaryEvent struct {
	RunID    string
	Turn     int
	Kind     string // "DIGEST", "ADVICE" or "ASK"
	Question string
	Text     string
	Error    string // set when the advisory was unavailable
}

// Recorder persists the simulation log for later analysis.
type Recorder interface {
	RecordTurn(evt *TurnEvent) error
	RecordReset(evt *ResetEvent) error
	RecordCommentary(evt *CommentaryEvent) error
	Close() error
}
