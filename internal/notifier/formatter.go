package notifier

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/dustin/go-humanize"

	"EconSim/internal/advisor"
	"EconSim/internal/calculator"
	"EconSim/internal/model"
)

func money(v float64) string {
	return humanize.FormatFloat("#,###.", v)
}

func bandIcon(b model.DebtBand) string {
	switch b {
	case model.DebtHealthy:
		return "🟢"
	case model.DebtWarning:
		return "🟡"
	case model.DebtCrisis:
		return "🟠"
	default:
		return "🔴"
	}
}

func writeIndicators(b *strings.Builder, s model.EconomicState) {
	b.WriteString(fmt.Sprintf("GDP growth: %+.1f%%\n", s.GDPGrowth))
	b.WriteString(fmt.Sprintf("Inflation: %.1f%% | Unemployment: %.1f%%\n", s.Inflation, s.Unemployment))
	b.WriteString(fmt.Sprintf("Interest rate: %.1f%% | Tariff: %.1f%%\n", s.InterestRate, s.TariffRate))
	b.WriteString(fmt.Sprintf("Exchange rate: %.0f | Trade balance: %s\n", s.ExchangeRate, money(s.TradeBalance)))
	b.WriteString(fmt.Sprintf("Government spending: %s\n\n", money(s.GovernmentSpending)))
}

func writeFinances(b *strings.Builder, s model.EconomicState, st model.Status) {
	b.WriteString("🏛 <b>Public finances</b>\n")
	b.WriteString(fmt.Sprintf("Debt: %s | Nominal GDP: %s\n", money(s.GovernmentDebt), money(s.NominalGDP)))
	b.WriteString(fmt.Sprintf("Debt/GDP: %.1f%% %s %s\n", s.DebtToGDP, bandIcon(st.Band), st.Band))
	b.WriteString(fmt.Sprintf("Interest: %s | Tax: %s | Balance: %s\n",
		money(s.InterestPayment), money(s.TaxRevenue), money(s.FiscalBalance)))
	if st.Warning.Active {
		b.WriteString(fmt.Sprintf("\n⚠️ <b>r &gt; g</b>: rate %.1f%% exceeds nominal growth %.1f%%\n", st.Warning.Rate, st.Warning.Growth))
	}
}

// FormatTurnReport formats the outcome of one committed policy action.
func FormatTurnReport(lever model.Lever, magnitude float64, s model.EconomicState, st model.Status) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>Turn %d</b> | %s", st.Turn, lever.Label()))
	if !lever.FixedMagnitude() {
		b.WriteString(fmt.Sprintf(" (%+g)", magnitude))
	}
	b.WriteString("\n\n")
	writeIndicators(&b, s)
	writeFinances(&b, s, st)
	return b.String()
}

// FormatState formats the current state without reference to an action.
func FormatState(s model.EconomicState, st model.Status) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📦 <b>Economy</b> | turn %d\n\n", st.Turn))
	writeIndicators(&b, s)
	writeFinances(&b, s, st)
	return b.String()
}

// FormatPreview compares the current state with a simulated one.
func FormatPreview(lever model.Lever, magnitude float64, cur, next model.EconomicState) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔮 <b>Preview</b> | %s", lever.Label()))
	if !lever.FixedMagnitude() {
		b.WriteString(fmt.Sprintf(" (%+g)", magnitude))
	}
	b.WriteString("\n\n")
	for _, f := range calculator.TrendFields {
		before, after := f.Get(cur), f.Get(next)
		b.WriteString(fmt.Sprintf("%s: %.1f → %.1f (%+.1f)\n", f.Label, before, after, after-before))
	}
	b.WriteString(fmt.Sprintf("Debt: %s → %s\n", money(cur.GovernmentDebt), money(next.GovernmentDebt)))
	b.WriteString("\nNothing was committed.")
	return b.String()
}

// FormatHistory summarizes trends over the trailing window of turns.
func FormatHistory(history []model.EconomicState, window int) string {
	var b strings.Builder
	trends := calculator.Summarize(history, window)
	n := window
	if n <= 0 || n > len(history) {
		n = len(history)
	}
	b.WriteString(fmt.Sprintf("📈 <b>Trends</b> | last %d of %d states\n\n", n, len(history)))
	if len(trends) == 0 {
		b.WriteString("No history yet.")
		return b.String()
	}
	for _, t := range trends {
		arrow := "→"
		switch t.Direction {
		case calculator.Rising:
			arrow = "↗"
		case calculator.Falling:
			arrow = "↘"
		}
		b.WriteString(fmt.Sprintf("%s %s: %.1f (avg %.1f, range %.1f–%.1f, at %.0f%%)\n",
			arrow, t.Field.Label, t.Latest, t.Average, t.Low, t.High, t.Position*100))
	}
	return b.String()
}

// FormatCommentary wraps advisor text for Telegram HTML.
func FormatCommentary(title, text string) string {
	return fmt.Sprintf("🎓 <b>%s</b>\n\n%s", html.EscapeString(title), html.EscapeString(text))
}

// FormatUnavailable renders an advisory failure. The simulation itself is unaffected.
func FormatUnavailable(err error) string {
	var ue *advisor.UnavailableError
	if !errors.As(err, &ue) {
		return "❌ Advisory unavailable."
	}
	switch ue.Reason {
	case advisor.ReasonDisabled:
		return "ℹ️ Advisory is not configured."
	case advisor.ReasonAuth:
		return "❌ Advisory unavailable: the API key was rejected."
	case advisor.ReasonQuota:
		return "⏳ Advisory unavailable: quota exhausted, try again later."
	case advisor.ReasonOverloaded:
		return "⏳ Advisory unavailable: the model is overloaded, try again shortly."
	case advisor.ReasonModelNotFound:
		return "❌ Advisory unavailable: the configured model does not exist."
	case advisor.ReasonBusy:
		return "⏳ Another advisory request is still running."
	case advisor.ReasonEmpty:
		return "❌ Advisory unavailable: the model returned no text."
	default:
		return "❌ Advisory unavailable: network error."
	}
}

// FormatHelp lists the accepted commands.
func FormatHelp() string {
	return `Commands:
• /rate &lt;Δ&gt;: change the interest rate (pp)
• /spend &lt;Δ&gt;: change government spending
• /tariff &lt;Δ&gt;: change the tariff rate (pp)
• /fx &lt;Δ&gt;: exchange intervention (+ weaken, − strengthen)
• /debt &lt;amount&gt;: issue debt
• /tax &lt;pct&gt;: raise taxes
• /austerity, /restructure, /monetize
• /preview &lt;lever&gt; [Δ]
• /state, /history, /reset
• /advice, /ask &lt;question&gt;
• /scenario &lt;file&gt;`
}
