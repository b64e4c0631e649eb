package engine

import (
	"fmt"
	"strings"

	"EconSim/internal/model"
)

var leverAliases = map[string]model.Lever{
	"rate":        model.LeverInterestRate,
	"interest":    model.LeverInterestRate,
	"spend":       model.LeverSpending,
	"spending":    model.LeverSpending,
	"tariff":      model.LeverTariff,
	"fx":          model.LeverExchange,
	"exchange":    model.LeverExchange,
	"debt":        model.LeverIssueDebt,
	"issue":       model.LeverIssueDebt,
	"tax":         model.LeverIncreaseTax,
	"austerity":   model.LeverAusterity,
	"restructure": model.LeverRestructure,
	"monetize":    model.LeverMonetize,
}

// ParseLever accepts a canonical lever name (any case, '-' or '_') or a short alias.
func ParseLever(name string) (model.Lever, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if l, ok := leverAliases[key]; ok {
		return l, nil
	}
	canon := model.Lever(strings.ToUpper(strings.ReplaceAll(key, "-", "_")))
	if _, ok := rules[canon]; ok {
		return canon, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidLever, name)
}
