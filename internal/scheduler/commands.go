package scheduler

import (
	"errors"
	"fmt"
	"log"
	"regexp"
	"strconv"
	"strings"

	"QuantWatch/internal/collector"
	"QuantWatch/internal/model"
	"QuantWatch/internal/notifier"
	"QuantWatch/internal/recorder"
)

var (
	buyRe    = regexp.MustCompile(`^bought (\d+) ([\w.]+) at ([\d.]+)$`)
	sellRe   = regexp.MustCompile(`^sold (\d+) ([\w.]+) at ([\d.]+)(?: (refill|vault))?$`)
	symbolRe = regexp.MustCompile(`^[A-Za-z][\w.]{0,9}$`)
)

const helpText = "Commands:\n" +
	"• /port — ranked portfolio\n" +
	"• bought 10 RELIANCE at 2500 — log a trade\n" +
	"• sold 10 RELIANCE at 2600 refill|vault — close a position\n" +
	"• RELIANCE — analyze a symbol"

// HandleCommand processes one chat message and returns the reply text.
// The first chat seen becomes the notification target unless one is
// fixed by configuration.
func (s *Scheduler) HandleCommand(chatID, text string) string {
	if s.AuthChatID != "" && chatID != s.AuthChatID {
		return ""
	}
	if err := s.Budget.SetChatID(chatID); err != nil {
		log.Printf("[WARN] persist chat id: %v", err)
	}

	text = strings.TrimSpace(text)
	lower := strings.ToLower(text)

	switch {
	case lower == "/port" || lower == "/portfolio":
		return s.portReport()
	case buyRe.MatchString(lower):
		return s.handleBuy(buyRe.FindStringSubmatch(lower))
	case sellRe.MatchString(lower):
		return s.handleSell(sellRe.FindStringSubmatch(lower))
	case symbolRe.MatchString(text):
		return s.handleAnalysis(strings.ToUpper(text))
	default:
		return helpText
	}
}

func (s *Scheduler) portReport() string {
	ranked := s.Trader.RankPortfolio(s.Ctx)
	if len(ranked) == 0 {
		return "Your portfolio is currently empty."
	}
	return notifier.FormatPortfolio(ranked, s.Budget.State())
}

func (s *Scheduler) handleBuy(m []string) string {
	qty, _ := strconv.Atoi(m[1])
	symbol := strings.ToUpper(m[2])
	price, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return fmt.Sprintf("❌ Invalid price: %s", m[3])
	}

	if err := s.Trader.LogTrade(symbol, qty, price); err != nil {
		log.Printf("[ERROR] log trade %s: %v", symbol, err)
		return fmt.Sprintf("❌ Could not log trade: %v", err)
	}
	if err := s.Recorder.RecordTrade(&recorder.TradeEvent{
		Symbol: symbol, Action: "BUY", Qty: qty, Price: price,
		Strategy: string(model.StrategySwing),
	}); err != nil {
		log.Printf("[ERROR] record trade: %v", err)
	}
	return fmt.Sprintf("✅ Successfully logged %d shares of %s.", qty, symbol)
}

func (s *Scheduler) handleSell(m []string) string {
	qty, _ := strconv.Atoi(m[1])
	symbol := strings.ToUpper(m[2])
	price, err := strconv.ParseFloat(m[3], 64)
	if err != nil {
		return fmt.Sprintf("❌ Invalid price: %s", m[3])
	}
	refill := m[4] == "refill"

	// The originating strategy comes from the open position itself.
	strat := model.StrategySwing
	for _, pos := range s.Trader.Portfolio.Positions() {
		if pos.Symbol == symbol {
			strat = pos.Strategy
			break
		}
	}

	if err := s.Trader.ClosePosition(symbol, price, qty, strat, refill); err != nil {
		log.Printf("[ERROR] close position %s: %v", symbol, err)
		return fmt.Sprintf("❌ Could not close position: %v", err)
	}
	if err := s.Recorder.RecordTrade(&recorder.TradeEvent{
		Symbol: symbol, Action: "SELL", Qty: qty, Price: price,
		Strategy: string(strat), Refill: refill, Proceeds: float64(qty) * price,
	}); err != nil {
		log.Printf("[ERROR] record trade: %v", err)
	}
	return fmt.Sprintf("✅ Position closed: %s at ₹%.2f. Ledger updated.", symbol, price)
}

func (s *Scheduler) handleAnalysis(symbol string) string {
	res, err := s.Trader.Analyze(s.Ctx, symbol)
	if err != nil {
		if errors.Is(err, collector.ErrInsufficientHistory) {
			return fmt.Sprintf("❌ Not enough price history for %s.", symbol)
		}
		log.Printf("[WARN] analyze %s: %v", symbol, err)
		return "❌ Error: Could not fetch data. Check ticker name."
	}
	if err := s.Recorder.RecordAnalysis(res); err != nil {
		log.Printf("[ERROR] record analysis: %v", err)
	}
	return notifier.FormatAnalysis(res)
}
