package model

import "time"

// Snapshot captures an engine's state, turn and history log.
type Snapshot struct {
	Turn    int             `json:"turn"`
	State   EconomicState   `json:"state"`
	History []EconomicState `json:"history"`
	SavedAt time.Time       `json:"saved_at"`
}
