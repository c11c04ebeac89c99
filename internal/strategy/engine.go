package strategy

import (
	"math"

	"QuantWatch/internal/model"
)

const (
	// LongThreshold is the final score above which a holding is
	// classified LONG rather than SWING. Exactly 75.00 stays SWING.
	LongThreshold = 75.0

	// DangerThreshold is the final score below which the hourly
	// portfolio scan raises an alert.
	DangerThreshold = 35.0
)

// Evaluate fuses the indicator set, sentiment signal and raw bars into a
// bounded composite score with a strategy label. It never mutates any
// ledger state.
func Evaluate(ind *model.IndicatorSet, sig model.SentimentSignal, bars []model.OHLCV) *model.ScoreResult {
	trend, dist20 := scoreTrend(ind)
	stability := scoreStability(bars, ind.RSI, dist20)
	risk := scoreRisk(ind, bars)
	mod := sentimentModifier(sig)

	final := (trend+stability)/2 - risk + mod
	final = clamp(final, 0, 100)
	final = math.Round(final*100) / 100

	strat := model.StrategySwing
	if final > LongThreshold {
		strat = model.StrategyLong
	}

	return &model.ScoreResult{
		FinalScore:   final,
		Trend:        trend,
		Stability:    stability,
		Risk:         risk,
		SentimentMod: mod,
		Strategy:     strat,
		Price:        ind.CurrentPrice,
	}
}
