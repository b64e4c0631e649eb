// Package scenario loads scripted sequences of policy actions and replays them.
package scenario

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"EconSim/internal/engine"
	"EconSim/internal/model"
)

// ErrInvalidScenario is returned for documents that fail validation.
var ErrInvalidScenario = errors.New("invalid scenario")

// Step is one scripted policy action, applied Repeat times.
type Step struct {
	Lever     string  `json:"lever" yaml:"lever"`
	Magnitude float64 `json:"magnitude,omitempty" yaml:"magnitude,omitempty"`
	Repeat    int     `json:"repeat,omitempty" yaml:"repeat,omitempty"`
	Note      string  `json:"note,omitempty" yaml:"note,omitempty"`

	lever model.Lever
}

// Scenario is a named script.
type Scenario struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Steps       []Step `json:"steps" yaml:"steps"`
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("scenario.schema.json", schemaJSON)
	})
	return schema, schemaErr
}

// Parse decodes and validates a YAML (or JSON) scenario document.
func Parse(data []byte) (*Scenario, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse yaml: %v", ErrInvalidScenario, err)
	}

	// Round-trip through JSON so the validator sees plain JSON types.
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	s, err := compiledSchema()
	if err != nil {
		return nil, fmt.Errorf("compile scenario schema: %w", err)
	}
	if err := s.Validate(generic); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}

	var sc Scenario
	if err := json.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScenario, err)
	}
	for i := range sc.Steps {
		st := &sc.Steps[i]
		l, err := engine.ParseLever(st.Lever)
		if err != nil {
			return nil, fmt.Errorf("%w: step %d: %v", ErrInvalidScenario, i+1, err)
		}
		st.lever = l
		if st.Repeat == 0 {
			st.Repeat = 1
		}
	}
	return &sc, nil
}

// LoadFile reads and parses a scenario file.
func LoadFile(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// Applier is anything that commits policy actions: an engine or a session.
type Applier interface {
	Apply(lever model.Lever, magnitude float64) (model.EconomicState, error)
	Turn() int
}

// Result is the outcome of one applied action.
type Result struct {
	Step      int
	Lever     model.Lever
	Magnitude float64
	Turn      int
	State     model.EconomicState
}

// Run applies every step in order and stops at the first error. Results
// gathered before the failure are returned with it.
func Run(a Applier, sc *Scenario) ([]Result, error) {
	var results []Result
	for i, st := range sc.Steps {
		for n := 0; n < st.Repeat; n++ {
			s, err := a.Apply(st.lever, st.Magnitude)
			if err != nil {
				return results, fmt.Errorf("step %d (%s): %w", i+1, st.lever, err)
			}
			results = append(results, Result{
				Step:      i + 1,
				Lever:     st.lever,
				Magnitude: st.Magnitude,
				Turn:      a.Turn(),
				State:     s,
			})
		}
	}
	return results, nil
}
