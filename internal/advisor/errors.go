package advisor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
)

var (
	// ErrUnavailable matches every failure to produce commentary.
	ErrUnavailable = errors.New("advisory unavailable")
	// ErrBusy is returned while another request is in flight.
	ErrBusy = errors.New("advisor busy")
)

// Reason classifies why an advisory could not be produced.
type Reason string

const (
	ReasonDisabled      Reason = "disabled"
	ReasonAuth          Reason = "auth"
	ReasonQuota         Reason = "quota"
	ReasonOverloaded    Reason = "overloaded"
	ReasonModelNotFound Reason = "model_not_found"
	ReasonNetwork       Reason = "network"
	ReasonEmpty         Reason = "empty"
	ReasonBusy          Reason = "busy"
)

// UnavailableError carries the classified reason and the underlying cause.
type UnavailableError struct {
	Reason Reason
	Err    error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("advisory unavailable (%s)", e.Reason)
	}
	return fmt.Sprintf("advisory unavailable (%s): %v", e.Reason, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Is makes every UnavailableError match ErrUnavailable.
func (e *UnavailableError) Is(target error) bool { return target == ErrUnavailable }

func unavailable(reason Reason, err error) error {
	return &UnavailableError{Reason: reason, Err: err}
}

// classify maps a Gemini client error onto a Reason.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var blocked *genai.BlockedError
	if errors.As(err, &blocked) {
		return unavailable(ReasonEmpty, err)
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch gerr.Code {
		case 400, 401, 403:
			return unavailable(ReasonAuth, err)
		case 404:
			return unavailable(ReasonModelNotFound, err)
		case 429:
			return unavailable(ReasonQuota, err)
		case 500, 502, 503, 504:
			return unavailable(ReasonOverloaded, err)
		}
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "API_KEY_INVALID"), strings.Contains(msg, "API key"):
		return unavailable(ReasonAuth, err)
	case strings.Contains(msg, "RESOURCE_EXHAUSTED"), strings.Contains(msg, "quota"):
		return unavailable(ReasonQuota, err)
	case strings.Contains(msg, "UNAVAILABLE"), strings.Contains(msg, "overloaded"), strings.Contains(msg, "503"):
		return unavailable(ReasonOverloaded, err)
	case strings.Contains(msg, "model not found"), strings.Contains(msg, "404"):
		return unavailable(ReasonModelNotFound, err)
	default:
		return unavailable(ReasonNetwork, err)
	}
}
