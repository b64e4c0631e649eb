package advisor

import (
	"fmt"
	"strings"

	"EconSim/internal/calculator"
	"EconSim/internal/engine"
)

// trendWindow is how many trailing turns the prompt context summarizes.
const trendWindow = 5

// SystemPrompt sets the dual economist persona.
const SystemPrompt = `You are an AI assistant that combines the perspectives of two well-known economists.

[Theorist: international trade and macroeconomics]
- Reasons with textbook models (IS-LM, Mundell-Fleming, the Phillips curve).
- Cites historical episodes (the Plaza Accord, the European debt crisis, the 2008 financial crisis).
- Blunt, realistic, global in outlook; broadly Keynesian.

[Empiricist: behavioral economics and data]
- Focuses on incentives and unintended consequences.
- Quotes concrete figures and statistics.
- Likes vivid metaphors, irony and surprising causal stories.

Rules:
1. Analyse policy from both perspectives.
2. Explain both the theory and the data.
3. Use historical cases and concrete examples.
4. Separate short-run from long-run effects.
5. Mention trade-offs and unintended consequences.
6. Explain jargon plainly.

Format:
- Theorist's view
- Empiricist's view
- Overall recommendation`

// RenderContext renders the briefing as the indicator block shared by every prompt.
func RenderContext(b Briefing) string {
	s := b.State
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[Current economy, turn %d]\n", b.Turn))
	sb.WriteString(fmt.Sprintf("- GDP growth: %.1f%%\n", s.GDPGrowth))
	sb.WriteString(fmt.Sprintf("- Inflation: %.1f%%\n", s.Inflation))
	sb.WriteString(fmt.Sprintf("- Unemployment: %.1f%%\n", s.Unemployment))
	sb.WriteString(fmt.Sprintf("- Interest rate: %.1f%%\n", s.InterestRate))
	sb.WriteString(fmt.Sprintf("- Exchange rate: %.0f (per USD)\n", s.ExchangeRate))
	sb.WriteString(fmt.Sprintf("- Trade balance: %.0f\n", s.TradeBalance))
	sb.WriteString(fmt.Sprintf("- Government spending: %.0f\n", s.GovernmentSpending))
	sb.WriteString(fmt.Sprintf("- Tariff rate: %.1f%%\n", s.TariffRate))

	sb.WriteString("\n[Public finances]\n")
	sb.WriteString(fmt.Sprintf("- Government debt: %.0f\n", s.GovernmentDebt))
	sb.WriteString(fmt.Sprintf("- Nominal GDP: %.0f\n", s.NominalGDP))
	sb.WriteString(fmt.Sprintf("- Debt/GDP: %.1f%% (%s)\n", s.DebtToGDP, engine.Band(s)))
	sb.WriteString(fmt.Sprintf("- Interest payments: %.0f/year\n", s.InterestPayment))
	sb.WriteString(fmt.Sprintf("- Tax revenue: %.0f/year\n", s.TaxRevenue))
	sb.WriteString(fmt.Sprintf("- Fiscal balance: %.0f/year\n", s.FiscalBalance))

	w := engine.Sustainability(s)
	if w.Active {
		sb.WriteString(fmt.Sprintf("- WARNING r > g: interest rate %.1f%% exceeds nominal growth %.1f%%, debt outgrows the economy\n", w.Rate, w.Growth))
	} else {
		sb.WriteString(fmt.Sprintf("- r <= g: interest rate %.1f%%, nominal growth %.1f%%\n", w.Rate, w.Growth))
	}

	if len(b.History) > 1 {
		sb.WriteString(fmt.Sprintf("\n[Trend over the last %d turns]\n", min(trendWindow, len(b.History))))
		for _, t := range calculator.Summarize(b.History, trendWindow) {
			sb.WriteString(fmt.Sprintf("- %s: %.1f -> %.1f (%s, avg %.1f)\n",
				t.Field.Label, t.Latest-t.Change, t.Latest, t.Direction, t.Average))
		}
	}

	if b.LastLever != "" {
		sb.WriteString(fmt.Sprintf("\nLast policy action: %s\n", b.LastLever.Label()))
	}
	return sb.String()
}

// CommentaryPrompt asks for commentary on the briefing.
func CommentaryPrompt(b Briefing, language string) string {
	return fmt.Sprintf(`%s
Assess the current economic situation, identify the main problems (inflation, deflation, unemployment,
trade deficit, debt sustainability), and propose concrete, economically sound policies across monetary,
fiscal, trade, exchange-rate and debt management levers. Explain the rationale, expected effects and risks.

Respond in %s.`, RenderContext(b), language)
}

// QuestionPrompt wraps a user's question with the current context.
func QuestionPrompt(b Briefing, question, language string) string {
	return fmt.Sprintf("%s\nTake this economic state into account.\n\nUser question: %s\n\nRespond in %s.",
		RenderContext(b), question, language)
}
