package engine

import (
	"testing"

	"EconSim/internal/model"
)

func TestAdvanceDebt_Deficit(t *testing.T) {
	s := model.InitialState()
	s.InterestRate = 4.0
	s.GDPGrowth = 2.2
	s.Inflation = 1.6

	got := AdvanceDebt(s)
	approx(t, "nominal_gdp", got.NominalGDP, 10000*1.022*1.016)
	approx(t, "interest_payment", got.InterestPayment, 800)
	approx(t, "fiscal_balance", got.FiscalBalance, -800)
	approx(t, "government_debt", got.GovernmentDebt, 20800)
	approx(t, "debt_to_gdp", got.DebtToGDP, 20800/(10000*1.022*1.016)*100)
}

func TestAdvanceDebt_SurplusPaysDownDebt(t *testing.T) {
	s := model.InitialState()
	s.GovernmentDebt = 1000
	s.TaxRevenue = 2000
	s.GovernmentSpending = 500

	got := AdvanceDebt(s)
	approx(t, "interest_payment", got.InterestPayment, 30)
	approx(t, "fiscal_balance", got.FiscalBalance, 1470)
	approx(t, "government_debt", got.GovernmentDebt, 0)
}

func TestAdvanceDebt_DoesNotMutateInput(t *testing.T) {
	s := model.InitialState()
	_ = AdvanceDebt(s)
	if s != model.InitialState() {
		t.Error("AdvanceDebt mutated its argument")
	}
}

func TestSustainability(t *testing.T) {
	s := model.InitialState()
	s.InterestRate = 10
	s.GDPGrowth = 1
	s.Inflation = 1

	w := Sustainability(s)
	if !w.Active {
		t.Errorf("expected r > g warning (r=%.1f, g=%.1f)", w.Rate, w.Growth)
	}
	approx(t, "growth", w.Growth, 2)

	s.InterestRate = 1
	if Sustainability(s).Active {
		t.Error("expected no warning when r < g")
	}

	s.InterestRate = 2
	if Sustainability(s).Active {
		t.Error("expected no warning when r == g")
	}
}

func TestBand_AllBoundaries(t *testing.T) {
	tests := []struct {
		ratio float64
		band  model.DebtBand
	}{
		{400, model.DebtInsolvencyRisk},
		{250.1, model.DebtInsolvencyRisk},
		{250, model.DebtCrisis},
		{200, model.DebtCrisis},
		{150.1, model.DebtCrisis},
		{150, model.DebtWarning},
		{90.1, model.DebtWarning},
		{90, model.DebtHealthy},
		{0, model.DebtHealthy},
	}
	for _, tt := range tests {
		s := model.EconomicState{DebtToGDP: tt.ratio}
		if got := Band(s); got != tt.band {
			t.Errorf("ratio %.1f: expected %s, got %s", tt.ratio, tt.band, got)
		}
	}
}
