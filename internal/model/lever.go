package model

// Lever identifies a policy action the engine accepts.
type Lever string

const (
	LeverInterestRate Lever = "INTEREST_RATE"
	LeverSpending     Lever = "SPENDING"
	LeverTariff       Lever = "TARIFF"
	LeverExchange     Lever = "EXCHANGE"
	LeverIssueDebt    Lever = "ISSUE_DEBT"
	LeverIncreaseTax  Lever = "INCREASE_TAX"
	LeverAusterity    Lever = "AUSTERITY"
	LeverRestructure  Lever = "RESTRUCTURE"
	LeverMonetize     Lever = "MONETIZE"
)

// Levers lists every lever in presentation order.
var Levers = []Lever{
	LeverInterestRate,
	LeverSpending,
	LeverTariff,
	LeverExchange,
	LeverIssueDebt,
	LeverIncreaseTax,
	LeverAusterity,
	LeverRestructure,
	LeverMonetize,
}

// Label is the human-readable lever name used in reports.
func (l Lever) Label() string {
	switch l {
	case LeverInterestRate:
		return "Interest rate adjustment"
	case LeverSpending:
		return "Government spending adjustment"
	case LeverTariff:
		return "Tariff adjustment"
	case LeverExchange:
		return "Exchange-rate intervention"
	case LeverIssueDebt:
		return "Debt issuance"
	case LeverIncreaseTax:
		return "Tax increase"
	case LeverAusterity:
		return "Austerity package"
	case LeverRestructure:
		return "Debt restructuring"
	case LeverMonetize:
		return "Debt monetization"
	default:
		return string(l)
	}
}

// FixedMagnitude reports whether the lever ignores the caller's magnitude.
func (l Lever) FixedMagnitude() bool {
	return l == LeverAusterity || l == LeverRestructure || l == LeverMonetize
}
