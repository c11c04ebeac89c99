package notifier

import (
	"fmt"
	"strings"

	"QuantWatch/internal/model"
	"QuantWatch/internal/trader"
)

// progressBar renders a 10-slot bar for a 0..100 value.
func progressBar(value float64) string {
	filled := int(value) / 10
	if filled < 0 {
		filled = 0
	}
	if filled > 10 {
		filled = 10
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", 10-filled) + "]"
}

func sentimentLine(mod float64) string {
	switch {
	case mod < 0:
		return fmt.Sprintf("🔴 Negative (%+.0f)", mod)
	case mod > 0:
		return fmt.Sprintf("🟢 Positive (%+.0f)", mod)
	default:
		return "⚪ Neutral (0)"
	}
}

// FormatAnalysis renders a single-symbol score report.
func FormatAnalysis(res *model.ScoreResult) string {
	verdict := "🔴 AVOID"
	if res.FinalScore > 55 {
		verdict = "🟢 BUY"
	}
	stars := int(res.FinalScore / 20)
	if stars < 1 {
		stars = 1
	}
	if stars > 5 {
		stars = 5
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 <b>ANALYSIS: %s</b>\n", res.Symbol))
	b.WriteString("━━━━━━━━━━━━━━━\n")
	b.WriteString(fmt.Sprintf("<b>Verdict:</b> %s\n", verdict))
	b.WriteString(fmt.Sprintf("<b>Strategy:</b> <code>%s</code>\n", res.Strategy))
	b.WriteString(fmt.Sprintf("<b>Score:</b> <code>%.2f/100</code> %s\n\n", res.FinalScore, strings.Repeat("⭐", stars)))
	b.WriteString(fmt.Sprintf("📈 Trend:  %s %.0f\n", progressBar(res.Trend), res.Trend))
	b.WriteString(fmt.Sprintf("🛡️ Risk:   %s %.0f\n", progressBar(res.Risk), res.Risk))
	b.WriteString(fmt.Sprintf("📰 News:   %s\n", sentimentLine(res.SentimentMod)))
	b.WriteString("━━━━━━━━━━━━━━━\n")
	b.WriteString(fmt.Sprintf("Current Price: <b>₹%.2f</b>", res.Price))
	return b.String()
}

// FormatPortfolio renders the ranked holdings with the budget summary.
func FormatPortfolio(ranked []trader.Ranked, state model.BudgetState) string {
	var b strings.Builder
	b.WriteString("💼 <b>Portfolio Matrix</b>\n")
	b.WriteString("<i>Ranked by real-time quant score</i>\n\n")

	for _, r := range ranked {
		indicator := "🔴"
		if r.Score > 55 {
			indicator = "🟢"
		} else if r.Score > 35 {
			indicator = "🟡"
		}
		b.WriteString(fmt.Sprintf("%s <b>%s</b> | %d @ ₹%.2f\n", indicator, r.Position.Symbol, r.Position.Qty, r.Position.BuyPrice))
		b.WriteString(fmt.Sprintf("      Score: <code>%.2f</code>\n", r.Score))
	}

	b.WriteString("\n💳 <b>Budget Allocation</b>:\n")
	b.WriteString(fmt.Sprintf("Swing Used: ₹%.0f / ₹%.0f\n", state.SwingUsed, state.SwingLimit))
	b.WriteString(fmt.Sprintf("Long Used: ₹%.0f / ₹%.0f\n", state.LongUsed, state.LongLimit))
	b.WriteString(fmt.Sprintf("Vault: ₹%.0f", state.ProfitVault))
	return b.String()
}

// FormatAlert renders the danger-zone alert for one holding.
func FormatAlert(symbol string, score float64) string {
	var b strings.Builder
	b.WriteString("🚨 <b>PORTFOLIO CRITICAL ALERT</b>\n")
	b.WriteString(fmt.Sprintf("Symbol: <b>%s</b>\n", symbol))
	b.WriteString(fmt.Sprintf("Score: <code>%.2f/100</code>\n", score))
	b.WriteString("Action: Consider immediate exit.")
	return b.String()
}
