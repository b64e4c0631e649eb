package engine

import (
	"math"
	"testing"

	"EconSim/internal/model"
)

func approx(t *testing.T, field string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("%s: expected %.6f, got %.6f", field, want, got)
	}
}

func TestRules_EffectVectors(t *testing.T) {
	tests := []struct {
		name      string
		lever     model.Lever
		magnitude float64
		check     func(t *testing.T, s model.EconomicState)
	}{
		{"rate hike", model.LeverInterestRate, 1, func(t *testing.T, s model.EconomicState) {
			approx(t, "interest_rate", s.InterestRate, 4.0)
			approx(t, "gdp_growth", s.GDPGrowth, 2.2)
			approx(t, "inflation", s.Inflation, 1.6)
			approx(t, "unemployment", s.Unemployment, 5.2)
			approx(t, "exchange_rate", s.ExchangeRate, 97)
		}},
		{"rate cut", model.LeverInterestRate, -1, func(t *testing.T, s model.EconomicState) {
			approx(t, "interest_rate", s.InterestRate, 2.0)
			approx(t, "gdp_growth", s.GDPGrowth, 2.9)
			approx(t, "inflation", s.Inflation, 2.3)
			approx(t, "unemployment", s.Unemployment, 4.8)
			approx(t, "exchange_rate", s.ExchangeRate, 103)
		}},
		{"zero rate change takes the cut branch", model.LeverInterestRate, 0, func(t *testing.T, s model.EconomicState) {
			approx(t, "interest_rate", s.InterestRate, 3.0)
			approx(t, "gdp_growth", s.GDPGrowth, 2.9)
		}},
		{"spending up", model.LeverSpending, 100, func(t *testing.T, s model.EconomicState) {
			approx(t, "government_spending", s.GovernmentSpending, 1100)
			approx(t, "gdp_growth", s.GDPGrowth, 2.7)
			approx(t, "inflation", s.Inflation, 2.3)
			approx(t, "unemployment", s.Unemployment, 4.8)
			approx(t, "interest_rate", s.InterestRate, 3.2)
			approx(t, "exchange_rate", s.ExchangeRate, 102)
		}},
		{"spending down", model.LeverSpending, -100, func(t *testing.T, s model.EconomicState) {
			approx(t, "government_spending", s.GovernmentSpending, 900)
			approx(t, "gdp_growth", s.GDPGrowth, 2.2)
			approx(t, "inflation", s.Inflation, 1.8)
			approx(t, "unemployment", s.Unemployment, 5.2)
			approx(t, "interest_rate", s.InterestRate, 3.0)
		}},
		{"tariff up", model.LeverTariff, 5, func(t *testing.T, s model.EconomicState) {
			approx(t, "tariff_rate", s.TariffRate, 10)
			approx(t, "trade_balance", s.TradeBalance, 50)
			approx(t, "inflation", s.Inflation, 2.2)
			approx(t, "gdp_growth", s.GDPGrowth, 2.3)
		}},
		{"tariff down", model.LeverTariff, -5, func(t *testing.T, s model.EconomicState) {
			approx(t, "tariff_rate", s.TariffRate, 0)
			approx(t, "trade_balance", s.TradeBalance, -50)
			approx(t, "inflation", s.Inflation, 1.9)
			approx(t, "gdp_growth", s.GDPGrowth, 2.8)
		}},
		{"buy home currency", model.LeverExchange, -10, func(t *testing.T, s model.EconomicState) {
			approx(t, "exchange_rate", s.ExchangeRate, 90)
			approx(t, "inflation", s.Inflation, 1.7)
			approx(t, "trade_balance", s.TradeBalance, -80)
			approx(t, "gdp_growth", s.GDPGrowth, 2.3)
		}},
		{"sell home currency", model.LeverExchange, 10, func(t *testing.T, s model.EconomicState) {
			approx(t, "exchange_rate", s.ExchangeRate, 110)
			approx(t, "inflation", s.Inflation, 2.3)
			approx(t, "trade_balance", s.TradeBalance, 80)
			approx(t, "gdp_growth", s.GDPGrowth, 2.8)
		}},
		{"issue debt", model.LeverIssueDebt, 500, func(t *testing.T, s model.EconomicState) {
			approx(t, "government_debt", s.GovernmentDebt, 20500)
			approx(t, "interest_rate", s.InterestRate, 3.1)
			approx(t, "exchange_rate", s.ExchangeRate, 101)
		}},
		{"increase tax", model.LeverIncreaseTax, 10, func(t *testing.T, s model.EconomicState) {
			approx(t, "tax_revenue", s.TaxRevenue, 1100)
			approx(t, "gdp_growth", s.GDPGrowth, 2.2)
			approx(t, "inflation", s.Inflation, 1.8)
		}},
		{"austerity", model.LeverAusterity, 0, func(t *testing.T, s model.EconomicState) {
			approx(t, "government_spending", s.GovernmentSpending, 800)
			approx(t, "gdp_growth", s.GDPGrowth, 2.0)
			approx(t, "unemployment", s.Unemployment, 5.4)
			approx(t, "inflation", s.Inflation, 1.7)
		}},
		{"restructure", model.LeverRestructure, 0, func(t *testing.T, s model.EconomicState) {
			approx(t, "government_debt", s.GovernmentDebt, 14000)
			approx(t, "interest_rate", s.InterestRate, 5.0)
			approx(t, "exchange_rate", s.ExchangeRate, 110)
			approx(t, "gdp_growth", s.GDPGrowth, 1.0)
		}},
		{"monetize", model.LeverMonetize, 0, func(t *testing.T, s model.EconomicState) {
			approx(t, "government_debt", s.GovernmentDebt, 19500)
			approx(t, "inflation", s.Inflation, 3.5)
			approx(t, "exchange_rate", s.ExchangeRate, 105)
			approx(t, "interest_rate", s.InterestRate, 2.7)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := model.InitialState()
			rules[tt.lever](&s, tt.magnitude)
			DefaultBounds.Clamp(&s)
			tt.check(t, s)
		})
	}
}

func TestAusterity_SpendingFloor(t *testing.T) {
	s := model.InitialState()
	s.GovernmentSpending = 250
	austerity(&s, 0)
	approx(t, "government_spending", s.GovernmentSpending, 100)
}

func TestMonetize_DebtFloor(t *testing.T) {
	s := model.InitialState()
	s.GovernmentDebt = 300
	monetizeDebt(&s, 0)
	approx(t, "government_debt", s.GovernmentDebt, 0)
}

func TestValidateMagnitude(t *testing.T) {
	tests := []struct {
		lever     model.Lever
		magnitude float64
		ok        bool
	}{
		{model.LeverInterestRate, -2, true},
		{model.LeverInterestRate, math.NaN(), false},
		{model.LeverSpending, math.Inf(1), false},
		{model.LeverExchange, math.Inf(-1), false},
		{model.LeverIssueDebt, 100, true},
		{model.LeverIssueDebt, 0, false},
		{model.LeverIssueDebt, -5, false},
		{model.LeverIncreaseTax, 5, true},
		{model.LeverIncreaseTax, 0, false},
		{model.LeverAusterity, math.NaN(), true},
		{model.LeverRestructure, math.Inf(1), true},
		{model.LeverMonetize, -1, true},
	}
	for _, tt := range tests {
		err := validateMagnitude(tt.lever, tt.magnitude)
		if (err == nil) != tt.ok {
			t.Errorf("%s(%v): expected ok=%v, got err=%v", tt.lever, tt.magnitude, tt.ok, err)
		}
	}
}

func TestParseLever(t *testing.T) {
	tests := []struct {
		in   string
		want model.Lever
	}{
		{"rate", model.LeverInterestRate},
		{"INTEREST_RATE", model.LeverInterestRate},
		{"interest-rate", model.LeverInterestRate},
		{" Spend ", model.LeverSpending},
		{"fx", model.LeverExchange},
		{"issue_debt", model.LeverIssueDebt},
		{"tax", model.LeverIncreaseTax},
		{"monetize", model.LeverMonetize},
	}
	for _, tt := range tests {
		got, err := ParseLever(tt.in)
		if err != nil {
			t.Errorf("ParseLever(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLever(%q): expected %s, got %s", tt.in, tt.want, got)
		}
	}

	if _, err := ParseLever("print-money"); err == nil {
		t.Error("expected error for unknown lever")
	}
}
