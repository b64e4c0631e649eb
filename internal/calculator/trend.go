package calculator

import (
	"errors"
	"math"

	"EconSim/internal/model"
)

// Direction labels the sign of a change.
type Direction string

const (
	Rising  Direction = "rising"
	Falling Direction = "falling"
	Flat    Direction = "flat"
)

const flatEpsilon = 1e-9

// Change returns the latest value minus the value lookback turns earlier.
func Change(values []float64, lookback int) (float64, error) {
	if lookback <= 0 {
		return 0, errors.New("lookback must be positive")
	}
	if len(values) < lookback+1 {
		return 0, errors.New("not enough data for change calculation")
	}
	n := len(values)
	return values[n-1] - values[n-1-lookback], nil
}

// DirectionOf classifies a change.
func DirectionOf(change float64) Direction {
	switch {
	case change > flatEpsilon:
		return Rising
	case change < -flatEpsilon:
		return Falling
	default:
		return Flat
	}
}

// Trend summarizes one field over a trailing window of turns.
type Trend struct {
	Field     Field
	Latest    float64
	Average   float64
	High      float64
	Low       float64
	Change    float64
	Direction Direction
	Position  float64 // latest within [Low, High], 0.0~1.0
}

// Summarize computes a Trend for each of TrendFields over the last window turns.
func Summarize(history []model.EconomicState, window int) []Trend {
	if len(history) == 0 {
		return nil
	}
	if window <= 0 || window > len(history) {
		window = len(history)
	}

	trends := make([]Trend, 0, len(TrendFields))
	for _, f := range TrendFields {
		values := Series(history, f)
		avg, _ := MovingAverage(history, f, window)
		high, low, _ := WindowRange(values, window)
		latest := values[len(values)-1]
		pos, _ := Position(latest, high, low)

		change := 0.0
		if window > 1 {
			change, _ = Change(values, window-1)
		}
		if math.IsNaN(change) {
			change = 0
		}

		trends = append(trends, Trend{
			Field:     f,
			Latest:    latest,
			Average:   avg,
			High:      high,
			Low:       low,
			Change:    change,
			Direction: DirectionOf(change),
			Position:  pos,
		})
	}
	return trends
}
