package calculator

import "EconSim/internal/model"

// Field extracts one indicator from a state.
type Field struct {
	Key   string
	Label string
	Unit  string
	Get   func(model.EconomicState) float64
}

// TrendFields are the indicators shown on trend charts and in reports.
var TrendFields = []Field{
	{"gdp_growth", "GDP growth", "%", func(s model.EconomicState) float64 { return s.GDPGrowth }},
	{"inflation", "Inflation", "%", func(s model.EconomicState) float64 { return s.Inflation }},
	{"unemployment", "Unemployment", "%", func(s model.EconomicState) float64 { return s.Unemployment }},
	{"interest_rate", "Interest rate", "%", func(s model.EconomicState) float64 { return s.InterestRate }},
	{"exchange_rate", "Exchange rate", "", func(s model.EconomicState) float64 { return s.ExchangeRate }},
	{"trade_balance", "Trade balance", "", func(s model.EconomicState) float64 { return s.TradeBalance }},
	{"debt_to_gdp", "Debt/GDP", "%", func(s model.EconomicState) float64 { return s.DebtToGDP }},
}

// FieldByKey looks up one of TrendFields.
func FieldByKey(key string) (Field, bool) {
	for _, f := range TrendFields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Series extracts a field from every history entry, oldest first.
func Series(history []model.EconomicState, field Field) []float64 {
	values := make([]float64, len(history))
	for i, s := range history {
		values[i] = field.Get(s)
	}
	return values
}
