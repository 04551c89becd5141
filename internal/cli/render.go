package cli

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sarthakvk/tradedeck/models"
)

// maxChainRows caps the option chain table; deep chains are truncated for
// display rather than scrolled.
const maxChainRows = 50

// guardrailLabels fixes the display order of the six pre-trade checks.
var guardrailLabels = []string{
	"Liquidity",
	"Position Size",
	"Exposure",
	"Event Window",
	"Regime",
	"Catalyst",
}

func guardrailFlags(card *models.TradeCard) []bool {
	return []bool{
		card.LiquidityCheck,
		card.PositionSizeCheck,
		card.ExposureCheck,
		card.EventWindowCheck,
		card.RegimeCheck,
		card.CatalystFreshnessCheck,
	}
}

// RenderPending draws the pending trade cards view: a count badge and one
// panel per card, or the empty-state panel when there is nothing to act on.
func (r *Renderer) RenderPending(cards []models.TradeCard) {
	fmt.Fprintln(r.out, titleStyle.Render(fmt.Sprintf("📋 Pending Trade Cards (%d)", len(cards))))

	if len(cards) == 0 {
		fmt.Fprintln(r.out, emptyStyle.Render("No pending trade cards. Run 'generate' to scan for signals."))
		return
	}

	for i := range cards {
		fmt.Fprintln(r.out, cardStyle.Render(r.formatTradeCard(&cards[i])))
	}
}

func (r *Renderer) formatTradeCard(card *models.TradeCard) string {
	var b strings.Builder

	side := buyStyle.Render(string(card.TradeType))
	if card.TradeType == models.TradeTypeSell {
		side = sellStyle.Render(string(card.TradeType))
	}

	fmt.Fprintf(&b, "#%d  %s  %s  x%d\n", card.ID, sanitize(card.Symbol), side, card.Quantity)
	fmt.Fprintf(&b, "Entry: %.2f | SL: %.2f | TP: %.2f | R:R %s\n",
		card.EntryPrice, card.StopLoss, card.TakeProfit,
		riskReward(card.EntryPrice, card.StopLoss, card.TakeProfit))
	fmt.Fprintf(&b, "Strategy: %s | Confidence: %s\n", sanitize(card.Strategy), confidencePercent(card.Confidence))

	if card.Evidence != "" {
		fmt.Fprintf(&b, "Evidence: %s\n", sanitize(card.Evidence))
	}

	b.WriteString("Guardrails: ")
	flags := guardrailFlags(card)
	parts := make([]string, len(guardrailLabels))
	for i, label := range guardrailLabels {
		icon := "✅"
		if !flags[i] {
			icon = "❌"
		}
		parts[i] = fmt.Sprintf("%s %s", icon, label)
	}
	b.WriteString(strings.Join(parts, "  "))
	b.WriteString("\n")

	if len(card.RiskWarnings) > 0 {
		for _, warning := range card.RiskWarnings {
			fmt.Fprintf(&b, "⚠️  %s\n", sanitize(warning))
		}
		fmt.Fprintf(&b, "Type 'explain %d' for guardrail details\n", card.ID)
	}

	return strings.TrimRight(b.String(), "\n")
}

// riskReward formats (tp-entry)/(entry-sl) to two decimals. When entry
// equals stop-loss the ratio is undefined and renders as "--"; a negative
// ratio (stop on the wrong side for the trade type) is displayed as
// computed, since validity is the server's call.
func riskReward(entry, stopLoss, takeProfit float64) string {
	entryDec := decimal.NewFromFloat(entry)
	denom := entryDec.Sub(decimal.NewFromFloat(stopLoss))
	if denom.IsZero() {
		return "--"
	}
	ratio := decimal.NewFromFloat(takeProfit).Sub(entryDec).Div(denom)
	return ratio.StringFixed(2)
}

// confidencePercent scales the [0,1] score to a whole percentage.
func confidencePercent(confidence float64) string {
	return strconv.Itoa(int(math.Round(confidence*100))) + "%"
}

// RenderPositions draws the open positions table.
func (r *Renderer) RenderPositions(positions []models.Position) {
	fmt.Fprintln(r.out, titleStyle.Render(fmt.Sprintf("💼 Positions (%d)", len(positions))))

	if len(positions) == 0 {
		fmt.Fprintln(r.out, emptyStyle.Render("No open positions."))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %8s %12s %12s %12s  %s\n", "SYMBOL", "QTY", "AVG PRICE", "LTP", "P&L", "OPENED")
	for i := range positions {
		p := &positions[i]
		pnl := ""
		if p.UnrealizedPnL != nil {
			pnl = formatPnL(*p.UnrealizedPnL)
		}
		ltp := ""
		if p.CurrentPrice != nil {
			ltp = fmt.Sprintf("%.2f", *p.CurrentPrice)
		}
		fmt.Fprintf(&b, "%-12s %8d %12.2f %12s %12s  %s\n",
			sanitize(p.Symbol), p.Quantity, p.AveragePrice, ltp, pnl,
			p.OpenedAt.Format("2006-01-02"))
	}
	fmt.Fprintln(r.out, panelStyle.Render(strings.TrimRight(b.String(), "\n")))
}

func formatPnL(pnl float64) string {
	value := decimal.NewFromFloat(pnl).StringFixed(2)
	if pnl < 0 {
		return lossStyle.Render(value)
	}
	return gainStyle.Render("+" + value)
}

// RenderOrders draws the order history table.
func (r *Renderer) RenderOrders(orders []models.Order) {
	fmt.Fprintln(r.out, titleStyle.Render(fmt.Sprintf("🧾 Orders (%d)", len(orders))))

	if len(orders) == 0 {
		fmt.Fprintln(r.out, emptyStyle.Render("No orders placed yet."))
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %-6s %8s %12s %-12s  %s\n", "SYMBOL", "SIDE", "QTY", "PRICE", "STATUS", "PLACED")
	for i := range orders {
		o := &orders[i]
		price := ""
		if o.Price != nil {
			price = fmt.Sprintf("%.2f", *o.Price)
		}
		fmt.Fprintf(&b, "%-12s %-6s %8d %12s %-12s  %s\n",
			sanitize(o.Symbol), o.TransactionType, o.Quantity, price,
			sanitize(o.Status), o.PlacedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(r.out, panelStyle.Render(strings.TrimRight(b.String(), "\n")))
}

// RenderReports draws the EOD and monthly panels. Both payloads arrive
// together; each panel renders independently of the other's content.
func (r *Renderer) RenderReports(eod *models.EODReport, monthly *models.MonthlyReport) {
	fmt.Fprintln(r.out, titleStyle.Render("📊 Performance Reports"))

	var e strings.Builder
	fmt.Fprintf(&e, "End of Day — %s\n\n", sanitize(eod.Date))
	fmt.Fprintf(&e, "Trades: %d | Open: %d | Closed: %d\n", eod.TotalTrades, eod.OpenPositions, eod.ClosedPositions)
	fmt.Fprintf(&e, "Realized P&L: %s | Unrealized: %s | Total: %s\n",
		formatPnL(eod.RealizedPnL), formatPnL(eod.UnrealizedPnL), formatPnL(eod.TotalPnL))
	fmt.Fprintf(&e, "Win Rate: %.1f%%", eod.WinRate)
	fmt.Fprintln(r.out, panelStyle.Render(e.String()))

	var m strings.Builder
	fmt.Fprintf(&m, "Monthly — %s\n\n", sanitize(monthly.Month))
	fmt.Fprintf(&m, "Trades: %d (W %d / L %d)\n", monthly.TotalTrades, monthly.WinningTrades, monthly.LosingTrades)
	fmt.Fprintf(&m, "Win Rate: %.1f%% | Total P&L: %s\n", monthly.WinRate, formatPnL(monthly.TotalPnL))
	fmt.Fprintf(&m, "Max Drawdown: %.2f", monthly.MaxDrawdown)
	if monthly.SharpeRatio != nil {
		fmt.Fprintf(&m, " | Sharpe: %.2f", *monthly.SharpeRatio)
	}
	fmt.Fprintln(r.out, panelStyle.Render(m.String()))
}

// RenderChain draws the option chain table, capped at maxChainRows strikes.
// Missing call or put data renders as blank cells, never zero.
func (r *Renderer) RenderChain(chain *models.OptionChain) {
	header := fmt.Sprintf("⛓️  Option Chain — %s", sanitize(chain.Symbol))
	if chain.Expiry != "" {
		header += " (" + sanitize(chain.Expiry) + ")"
	}
	fmt.Fprintln(r.out, titleStyle.Render(header))

	strikes := chain.Data.Strikes
	if len(strikes) == 0 {
		fmt.Fprintln(r.out, emptyStyle.Render("No option chain data for this symbol/expiry."))
		return
	}

	truncated := false
	if len(strikes) > maxChainRows {
		strikes = strikes[:maxChainRows]
		truncated = true
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%10s %12s %12s %12s %12s\n", "STRIKE", "CE LTP", "CE OI", "PE LTP", "PE OI")
	for i := range strikes {
		s := &strikes[i]
		fmt.Fprintf(&b, "%10.2f %12s %12s %12s %12s\n",
			s.Strike,
			quoteLTP(s.Call), quoteOI(s.Call),
			quoteLTP(s.Put), quoteOI(s.Put))
	}
	if truncated {
		fmt.Fprintf(&b, "... showing first %d strikes", maxChainRows)
	}
	fmt.Fprintln(r.out, panelStyle.Render(strings.TrimRight(b.String(), "\n")))
}

func quoteLTP(q *models.OptionQuote) string {
	if q == nil || q.LTP == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *q.LTP)
}

func quoteOI(q *models.OptionQuote) string {
	if q == nil || q.OI == nil {
		return ""
	}
	return strconv.FormatInt(*q.OI, 10)
}

// RenderExplanation draws the guardrail breakdown for one card verbatim.
func (r *Renderer) RenderExplanation(explanation *models.GuardrailExplanation) {
	var b strings.Builder
	fmt.Fprintf(&b, "Guardrails for #%d %s\n\n", explanation.CardID, sanitize(explanation.Symbol))

	flags := []bool{
		explanation.LiquidityCheck,
		explanation.PositionSizeCheck,
		explanation.ExposureCheck,
		explanation.EventWindowCheck,
		explanation.RegimeCheck,
		explanation.CatalystFreshnessCheck,
	}
	for i, label := range guardrailLabels {
		icon := "✅"
		if !flags[i] {
			icon = "❌"
		}
		fmt.Fprintf(&b, "%s %s\n", icon, label)
	}

	if len(explanation.RiskWarnings) > 0 {
		b.WriteString("\n")
		for _, warning := range explanation.RiskWarnings {
			fmt.Fprintf(&b, "⚠️  %s\n", sanitize(warning))
		}
	}

	fmt.Fprintln(r.out, panelStyle.Render(strings.TrimRight(b.String(), "\n")))
}
