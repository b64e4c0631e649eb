package model

// EconomicState holds the live indicator values of the simulated economy.
type EconomicState struct {
	GDPGrowth          float64 `json:"gdp_growth"`          // %
	Inflation          float64 `json:"inflation"`           // %
	Unemployment       float64 `json:"unemployment"`        // %
	InterestRate       float64 `json:"interest_rate"`       // %, [0, 20]
	ExchangeRate       float64 `json:"exchange_rate"`       // index, [50, 200]
	TradeBalance       float64 `json:"trade_balance"`       // currency units
	GovernmentSpending float64 `json:"government_spending"` // currency units, >= 0
	TariffRate         float64 `json:"tariff_rate"`         // %, [0, 50]
	GovernmentDebt     float64 `json:"government_debt"`     // currency units, >= 0

	// Derived once per turn by the debt dynamics step.
	NominalGDP      float64 `json:"nominal_gdp"`
	DebtToGDP       float64 `json:"debt_to_gdp"`      // %
	InterestPayment float64 `json:"interest_payment"` // per year
	TaxRevenue      float64 `json:"tax_revenue"`      // per year, moved only by IncreaseTax
	FiscalBalance   float64 `json:"fiscal_balance"`   // per year
}

// InitialState returns the fixed starting point of every simulation.
func InitialState() EconomicState {
	return EconomicState{
		GDPGrowth:          2.5,
		Inflation:          2.0,
		Unemployment:       5.0,
		InterestRate:       3.0,
		ExchangeRate:       100,
		TradeBalance:       0,
		GovernmentSpending: 1000,
		TariffRate:         5.0,
		GovernmentDebt:     20000,
		NominalGDP:         10000,
		DebtToGDP:          200,
		InterestPayment:    600,
		TaxRevenue:         1000,
		FiscalBalance:      -600,
	}
}

// NominalGrowth is real growth plus inflation, the "g" of the r > g check.
func (s EconomicState) NominalGrowth() float64 {
	return s.GDPGrowth + s.Inflation
}
