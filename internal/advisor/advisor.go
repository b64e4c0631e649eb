// Package advisor produces narrative economist commentary for engine snapshots.
// Advisors only read snapshots; nothing they return flows back into the engine.
package advisor

import (
	"context"

	"EconSim/internal/model"
)

// Briefing is the read-only snapshot handed to an advisor.
type Briefing struct {
	Turn      int
	State     model.EconomicState
	History   []model.EconomicState
	LastLever model.Lever // empty when no action has been taken yet
}

// Advisor generates commentary. Implementations must be safe to call from
// multiple goroutines.
type Advisor interface {
	Name() string
	Commentary(ctx context.Context, b Briefing) (string, error)
	Ask(ctx context.Context, b Briefing, question string) (string, error)
	ResetChat()
}
