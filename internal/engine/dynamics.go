package engine

import (
	"math"

	"EconSim/internal/model"
)

// AdvanceDebt recomputes the derived debt fields of s for one turn.
// Order matters: nominal GDP, interest, fiscal balance, debt, then the ratio.
func AdvanceDebt(s model.EconomicState) model.EconomicState {
	s.NominalGDP = s.NominalGDP * (1 + s.GDPGrowth/100) * (1 + s.Inflation/100)
	s.InterestPayment = s.GovernmentDebt * s.InterestRate / 100
	s.FiscalBalance = s.TaxRevenue - s.GovernmentSpending - s.InterestPayment

	if s.FiscalBalance < 0 {
		s.GovernmentDebt += -s.FiscalBalance
	} else {
		s.GovernmentDebt = math.Max(0, s.GovernmentDebt-s.FiscalBalance)
	}

	s.DebtToGDP = s.GovernmentDebt / s.NominalGDP * 100
	return s
}

// Sustainability runs the r > g check. It never alters state.
func Sustainability(s model.EconomicState) model.SustainabilityWarning {
	g := s.NominalGrowth()
	return model.SustainabilityWarning{
		Active: s.InterestRate > g,
		Rate:   s.InterestRate,
		Growth: g,
	}
}

// Bands maps a debt-to-GDP ratio (exclusive lower edge) to its band.
var Bands = []struct {
	Above float64
	Band  model.DebtBand
}{
	{250, model.DebtInsolvencyRisk},
	{150, model.DebtCrisis},
	{90, model.DebtWarning},
}

// Band classifies the debt-to-GDP ratio of s.
func Band(s model.EconomicState) model.DebtBand {
	for _, b := range Bands {
		if s.DebtToGDP > b.Above {
			return b.Band
		}
	}
	return model.DebtHealthy
}
