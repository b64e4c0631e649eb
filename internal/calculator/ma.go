package calculator

import (
	"errors"

	"EconSim/internal/model"
)

// CalculateSMA computes the simple moving average of the given values over the specified period.
func CalculateSMA(values []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(values) < period {
		return 0, errors.New("not enough data for SMA calculation")
	}
	sum := 0.0
	for i := len(values) - period; i < len(values); i++ {
		sum += values[i]
	}
	return sum / float64(period), nil
}

// MovingAverage averages a field over the last period turns of history.
// Shorter histories are averaged over every turn available.
func MovingAverage(history []model.EconomicState, field Field, period int) (float64, error) {
	values := Series(history, field)
	if len(values) == 0 {
		return 0, errors.New("empty history")
	}
	if period > len(values) {
		period = len(values)
	}
	return CalculateSMA(values, period)
}
