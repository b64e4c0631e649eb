package model

// DebtBand is the presentation severity of a debt-to-GDP ratio.
type DebtBand string

const (
	DebtHealthy        DebtBand = "HEALTHY"
	DebtWarning        DebtBand = "WARNING"
	DebtCrisis         DebtBand = "CRISIS"
	DebtInsolvencyRisk DebtBand = "INSOLVENCY_RISK"
)

// SustainabilityWarning is the result of the r > g check.
type SustainabilityWarning struct {
	Active bool    `json:"active"`
	Rate   float64 `json:"rate"`   // r, the policy interest rate
	Growth float64 `json:"growth"` // g, real growth plus inflation
}

// Status bundles the read-only diagnostics derived from a state.
type Status struct {
	Turn    int                   `json:"turn"`
	Band    DebtBand              `json:"band"`
	Warning SustainabilityWarning `json:"warning"`
}
