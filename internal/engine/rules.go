package engine

import (
	"fmt"
	"math"

	"EconSim/internal/model"
)

// effect is a fixed delta applied to correlated indicators.
type effect struct {
	GDPGrowth    float64
	Inflation    float64
	Unemployment float64
	InterestRate float64
	ExchangeRate float64
	TradeBalance float64
}

func (e effect) apply(s *model.EconomicState) {
	s.GDPGrowth += e.GDPGrowth
	s.Inflation += e.Inflation
	s.Unemployment += e.Unemployment
	s.InterestRate += e.InterestRate
	s.ExchangeRate += e.ExchangeRate
	s.TradeBalance += e.TradeBalance
}

// Effect vectors per lever. Only the sign of the magnitude picks the branch;
// the magnitude itself moves the primary field alone.
var (
	rateHike = effect{GDPGrowth: -0.3, Inflation: -0.4, Unemployment: 0.2, ExchangeRate: -3}
	rateCut  = effect{GDPGrowth: 0.4, Inflation: 0.3, Unemployment: -0.2, ExchangeRate: 3}

	spendingUp   = effect{GDPGrowth: 0.2, Inflation: 0.3, Unemployment: -0.2, InterestRate: 0.2, ExchangeRate: 2}
	spendingDown = effect{GDPGrowth: -0.3, Inflation: -0.2, Unemployment: 0.2}

	tariffUp   = effect{TradeBalance: 50, Inflation: 0.2, GDPGrowth: -0.2}
	tariffDown = effect{TradeBalance: -50, Inflation: -0.1, GDPGrowth: 0.3}

	currencyStrengthen = effect{Inflation: -0.3, TradeBalance: -80, GDPGrowth: -0.2}
	currencyWeaken     = effect{Inflation: 0.3, TradeBalance: 80, GDPGrowth: 0.3}

	debtIssued   = effect{InterestRate: 0.1, ExchangeRate: 1}
	taxRaised    = effect{GDPGrowth: -0.3, Inflation: -0.2}
	austerityCut = effect{GDPGrowth: -0.5, Unemployment: 0.4, Inflation: -0.3}
	restructured = effect{InterestRate: 2.0, ExchangeRate: 10, GDPGrowth: -1.5}
	monetized    = effect{Inflation: 1.5, ExchangeRate: 5, InterestRate: -0.3}
)

const (
	austerityCutAmount   = 200
	austeritySpendFloor  = 100
	restructureRetention = 0.7
	monetizeAmount       = 500
)

type rule func(s *model.EconomicState, magnitude float64)

var rules = map[model.Lever]rule{
	model.LeverInterestRate: adjustInterestRate,
	model.LeverSpending:     adjustSpending,
	model.LeverTariff:       adjustTariff,
	model.LeverExchange:     interveneExchange,
	model.LeverIssueDebt:    issueDebt,
	model.LeverIncreaseTax:  increaseTax,
	model.LeverAusterity:    austerity,
	model.LeverRestructure:  restructureDebt,
	model.LeverMonetize:     monetizeDebt,
}

func adjustInterestRate(s *model.EconomicState, delta float64) {
	s.InterestRate += delta
	if delta > 0 {
		rateHike.apply(s)
	} else {
		rateCut.apply(s)
	}
}

func adjustSpending(s *model.EconomicState, delta float64) {
	s.GovernmentSpending += delta
	if delta > 0 {
		spendingUp.apply(s)
	} else {
		spendingDown.apply(s)
	}
}

func adjustTariff(s *model.EconomicState, delta float64) {
	s.TariffRate += delta
	if delta > 0 {
		tariffUp.apply(s)
	} else {
		tariffDown.apply(s)
	}
}

// interveneExchange: a negative delta buys the home currency.
func interveneExchange(s *model.EconomicState, delta float64) {
	s.ExchangeRate += delta
	if delta < 0 {
		currencyStrengthen.apply(s)
	} else {
		currencyWeaken.apply(s)
	}
}

func issueDebt(s *model.EconomicState, amount float64) {
	s.GovernmentDebt += amount
	debtIssued.apply(s)
}

func increaseTax(s *model.EconomicState, pct float64) {
	s.TaxRevenue += s.TaxRevenue * pct / 100
	taxRaised.apply(s)
}

func austerity(s *model.EconomicState, _ float64) {
	s.GovernmentSpending = math.Max(austeritySpendFloor, s.GovernmentSpending-austerityCutAmount)
	austerityCut.apply(s)
}

func restructureDebt(s *model.EconomicState, _ float64) {
	s.GovernmentDebt *= restructureRetention
	restructured.apply(s)
}

func monetizeDebt(s *model.EconomicState, _ float64) {
	s.GovernmentDebt = math.Max(0, s.GovernmentDebt-monetizeAmount)
	monetized.apply(s)
}

func validateMagnitude(lever model.Lever, magnitude float64) error {
	if lever.FixedMagnitude() {
		return nil
	}
	if math.IsNaN(magnitude) || math.IsInf(magnitude, 0) {
		return fmt.Errorf("%w: %s magnitude %v is not finite", ErrInvalidMagnitude, lever, magnitude)
	}
	if (lever == model.LeverIssueDebt || lever == model.LeverIncreaseTax) && magnitude <= 0 {
		return fmt.Errorf("%w: %s requires a positive magnitude, got %v", ErrInvalidMagnitude, lever, magnitude)
	}
	return nil
}
