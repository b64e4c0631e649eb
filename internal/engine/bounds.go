package engine

import (
	"fmt"
	"math"

	"EconSim/internal/model"
)

// Range is a closed interval. Use math.Inf(1) for an open upper end.
type Range struct {
	Min float64
	Max float64
}

func (r Range) clamp(v float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, v))
}

func (r Range) contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Bounds declares the hard limits of the clamped fields. GDP growth,
// inflation, unemployment and the trade balance are left free to drift.
type Bounds struct {
	InterestRate       Range
	ExchangeRate       Range
	GovernmentSpending Range
	TariffRate         Range
	GovernmentDebt     Range
}

// DefaultBounds are the limits every transition is held to.
var DefaultBounds = Bounds{
	InterestRate:       Range{Min: 0, Max: 20},
	ExchangeRate:       Range{Min: 50, Max: 200},
	GovernmentSpending: Range{Min: 0, Max: math.Inf(1)},
	TariffRate:         Range{Min: 0, Max: 50},
	GovernmentDebt:     Range{Min: 0, Max: math.Inf(1)},
}

type boundedField struct {
	name  string
	value *float64
	rng   Range
}

func (b Bounds) fields(s *model.EconomicState) []boundedField {
	return []boundedField{
		{"interest_rate", &s.InterestRate, b.InterestRate},
		{"exchange_rate", &s.ExchangeRate, b.ExchangeRate},
		{"government_spending", &s.GovernmentSpending, b.GovernmentSpending},
		{"tariff_rate", &s.TariffRate, b.TariffRate},
		{"government_debt", &s.GovernmentDebt, b.GovernmentDebt},
	}
}

// Clamp saturates every bounded field of s into its range.
func (b Bounds) Clamp(s *model.EconomicState) {
	for _, f := range b.fields(s) {
		*f.value = f.rng.clamp(*f.value)
	}
}

// Check reports the first bounded field of s that is out of range.
func (b Bounds) Check(s model.EconomicState) error {
	for _, f := range b.fields(&s) {
		if !f.rng.contains(*f.value) {
			return fmt.Errorf("%w: %s=%g not in [%g, %g]", ErrOutOfBounds, f.name, *f.value, f.rng.Min, f.rng.Max)
		}
	}
	return nil
}
