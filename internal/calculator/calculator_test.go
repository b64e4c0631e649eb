package calculator

import (
	"math"
	"testing"

	"EconSim/internal/model"
)

func TestCalculateSMA(t *testing.T) {
	got, err := CalculateSMA([]float64{1, 2, 3, 4, 5}, 3)
	if err != nil {
		t.Fatalf("sma: %v", err)
	}
	if got != 4 {
		t.Errorf("expected 4, got %.2f", got)
	}
	if _, err := CalculateSMA([]float64{1}, 3); err == nil {
		t.Error("expected error for short series")
	}
	if _, err := CalculateSMA([]float64{1}, 0); err == nil {
		t.Error("expected error for zero period")
	}
}

func TestWindowRange(t *testing.T) {
	values := []float64{9, 1, 4, 6, 2}
	high, low, err := WindowRange(values, 3)
	if err != nil {
		t.Fatalf("range: %v", err)
	}
	if high != 6 || low != 2 {
		t.Errorf("expected [2, 6], got [%.0f, %.0f]", low, high)
	}
	high, low, _ = WindowRange(values, 0)
	if high != 9 || low != 1 {
		t.Errorf("expected full range [1, 9], got [%.0f, %.0f]", low, high)
	}
	if _, _, err := WindowRange(nil, 3); err == nil {
		t.Error("expected error for empty values")
	}
}

func TestPosition(t *testing.T) {
	tests := []struct {
		current, high, low, want float64
	}{
		{5, 10, 0, 0.5},
		{12, 10, 0, 1},
		{-1, 10, 0, 0},
		{3, 3, 3, 0.5},
	}
	for _, tt := range tests {
		got, err := Position(tt.current, tt.high, tt.low)
		if err != nil {
			t.Fatalf("position: %v", err)
		}
		if got != tt.want {
			t.Errorf("Position(%.0f, %.0f, %.0f): expected %.2f, got %.2f", tt.current, tt.high, tt.low, tt.want, got)
		}
	}
	if _, err := Position(1, 0, 5); err == nil {
		t.Error("expected error when high < low")
	}
}

func TestChangeAndDirection(t *testing.T) {
	values := []float64{2.5, 2.2, 1.9}
	c, err := Change(values, 2)
	if err != nil {
		t.Fatalf("change: %v", err)
	}
	if math.Abs(c+0.6) > 1e-9 {
		t.Errorf("expected -0.6, got %.3f", c)
	}
	if DirectionOf(c) != Falling || DirectionOf(0.1) != Rising || DirectionOf(0) != Flat {
		t.Error("unexpected direction classification")
	}
	if _, err := Change(values, 3); err == nil {
		t.Error("expected error for lookback beyond history")
	}
}

func TestSummarize(t *testing.T) {
	a := model.InitialState()
	b := a
	b.GDPGrowth = 3.5
	c := b
	c.GDPGrowth = 1.5

	trends := Summarize([]model.EconomicState{a, b, c}, 5)
	if len(trends) != len(TrendFields) {
		t.Fatalf("expected %d trends, got %d", len(TrendFields), len(trends))
	}
	gdp := trends[0]
	if gdp.Field.Key != "gdp_growth" {
		t.Fatalf("expected gdp_growth first, got %s", gdp.Field.Key)
	}
	if gdp.Latest != 1.5 || gdp.High != 3.5 || gdp.Low != 1.5 {
		t.Errorf("unexpected gdp trend: %+v", gdp)
	}
	if math.Abs(gdp.Average-2.5) > 1e-9 || gdp.Direction != Falling {
		t.Errorf("expected avg 2.5 falling, got %.2f %s", gdp.Average, gdp.Direction)
	}
	if gdp.Position != 0 {
		t.Errorf("expected latest at the bottom of the range, got %.2f", gdp.Position)
	}

	if Summarize(nil, 3) != nil {
		t.Error("expected nil for empty history")
	}
	single := Summarize([]model.EconomicState{a}, 3)
	if single[0].Direction != Flat {
		t.Errorf("expected flat trend for one turn, got %s", single[0].Direction)
	}
}

func TestMovingAverage(t *testing.T) {
	f, ok := FieldByKey("inflation")
	if !ok {
		t.Fatal("inflation field missing")
	}
	a := model.InitialState()
	b := a
	b.Inflation = 4
	got, err := MovingAverage([]model.EconomicState{a, b}, f, 10)
	if err != nil {
		t.Fatalf("moving average: %v", err)
	}
	if got != 3 {
		t.Errorf("expected 3, got %.2f", got)
	}
	if _, err := MovingAverage(nil, f, 3); err == nil {
		t.Error("expected error for empty history")
	}
}
