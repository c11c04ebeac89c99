package trader

import (
	"context"
	"fmt"
	"log"
	"sort"

	"QuantWatch/internal/collector"
	"QuantWatch/internal/ledger"
	"QuantWatch/internal/model"
	"QuantWatch/internal/sentiment"
	"QuantWatch/internal/strategy"
)

// Trader exposes the evaluation and ledger operations consumed by the
// chat surface and the alert scheduler.
type Trader struct {
	Collector  *collector.Collector
	Classifier sentiment.Classifier
	Portfolio  *ledger.Portfolio
	Budget     *ledger.Budget
}

// New creates a Trader. The classifier may be nil, in which case every
// sentiment signal is neutral.
func New(col *collector.Collector, cl sentiment.Classifier, port *ledger.Portfolio, budget *ledger.Budget) *Trader {
	return &Trader{Collector: col, Classifier: cl, Portfolio: port, Budget: budget}
}

// Analyze runs the full scoring pipeline for one symbol. It returns
// collector.ErrInsufficientHistory when fewer than 60 bars exist. A
// headline fetch or classification failure degrades sentiment to neutral
// instead of failing the analysis.
func (t *Trader) Analyze(ctx context.Context, symbol string) (*model.ScoreResult, error) {
	ind, bars, err := t.Collector.Snapshot(symbol)
	if err != nil {
		return nil, err
	}

	headlines, err := t.Collector.Fetcher.FetchHeadlines(symbol, 5)
	if err != nil {
		log.Printf("[WARN] fetch headlines for %s: %v", symbol, err)
		headlines = nil
	}
	sig := sentiment.BuildSignal(ctx, t.Classifier, headlines)

	res := strategy.Evaluate(ind, sig, bars)
	res.Symbol = symbol
	return res, nil
}

// Ranked pairs a position with its latest score. Result is nil when the
// evaluation failed and the holding ranks at zero.
type Ranked struct {
	Position model.Position
	Score    float64
	Result   *model.ScoreResult
}

// RankPortfolio evaluates every open position and orders the holdings by
// score, best first. A holding whose evaluation fails ranks at zero
// rather than aborting the ranking.
func (t *Trader) RankPortfolio(ctx context.Context) []Ranked {
	positions := t.Portfolio.Positions()
	ranked := make([]Ranked, 0, len(positions))
	for _, pos := range positions {
		res, err := t.Analyze(ctx, pos.Symbol)
		if err != nil {
			log.Printf("[WARN] rank: analyze %s: %v", pos.Symbol, err)
			ranked = append(ranked, Ranked{Position: pos})
			continue
		}
		ranked = append(ranked, Ranked{Position: pos, Score: res.FinalScore, Result: res})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })
	return ranked
}

// LogTrade appends a new swing position and charges qty x price against
// the swing budget.
func (t *Trader) LogTrade(symbol string, qty int, price float64) error {
	if qty <= 0 || price <= 0 {
		return fmt.Errorf("invalid trade: qty=%d price=%.2f", qty, price)
	}
	pos := model.Position{Symbol: symbol, Qty: qty, BuyPrice: price, Strategy: model.StrategySwing}
	if err := t.Portfolio.Append(pos); err != nil {
		return err
	}
	return t.Budget.RecordBuy(model.StrategySwing, float64(qty)*price)
}

// ClosePosition removes a holding and settles the gross proceeds
// (qty x exitPrice) against the budget: refill returns them to the
// originating strategy's capacity, otherwise they go to the profit
// vault. Proceeds are treated as returned capital, not realized profit;
// the entry price is deliberately not consulted. The position removal
// stands even when the budget write fails afterwards.
func (t *Trader) ClosePosition(symbol string, exitPrice float64, qty int, strat model.Strategy, refill bool) error {
	_, found, err := t.Portfolio.Remove(symbol)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("no open position for %s", symbol)
	}
	proceeds := float64(qty) * exitPrice
	return t.Budget.ApplyExit(strat, proceeds, refill)
}
