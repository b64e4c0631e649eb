package advisor

import (
	"context"
	"errors"
)

// Disabled is used when no narrative service is configured.
type Disabled struct {
	Cause string
}

func (d Disabled) Name() string { return "disabled" }

func (d Disabled) Commentary(context.Context, Briefing) (string, error) {
	return "", unavailable(ReasonDisabled, errors.New(d.cause()))
}

func (d Disabled) Ask(context.Context, Briefing, string) (string, error) {
	return "", unavailable(ReasonDisabled, errors.New(d.cause()))
}

func (d Disabled) ResetChat() {}

func (d Disabled) cause() string {
	if d.Cause == "" {
		return "no advisor configured"
	}
	return d.Cause
}
