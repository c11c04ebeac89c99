package strategy

import (
	"math"

	"QuantWatch/internal/model"
)

// scoreTrend rates the distance from EMA(20) and the 5-bar EMA slope.
// Extension beyond +15% flips the base into a blow-off penalty.
func scoreTrend(ind *model.IndicatorSet) (score, dist20 float64) {
	dist20 = (ind.CurrentPrice - ind.EMAFast) / ind.EMAFast * 100

	var base float64
	if dist20 > 15 {
		base = 50 - dist20*2
	} else {
		base = 50 + dist20*3
	}
	slope := (ind.EMAFast - ind.EMAFastPrev5) / ind.EMAFastPrev5 * 100
	return clamp(base+slope*5, 0, 100), dist20
}

// scoreStability counts consecutive higher lows across the last 10 bars,
// discounted by 20 points when RSI > 80 or the price is over-extended.
func scoreStability(bars []model.OHLCV, rsi, dist20 float64) float64 {
	last := bars
	if len(last) > 10 {
		last = last[len(last)-10:]
	}
	higherLows := 0
	for i := 1; i < len(last); i++ {
		if last[i].Low >= last[i-1].Low {
			higherLows++
		}
	}
	score := float64(higherLows) / 9.0 * 100
	if rsi > 80 || dist20 > 15 {
		score = math.Max(0, score-20)
	}
	return score
}

// scoreRisk accumulates downside signatures: price under EMA(20), weak
// RSI, a high-volume red candle and an ATR volatility spike. Capped at 100.
func scoreRisk(ind *model.IndicatorSet, bars []model.OHLCV) float64 {
	risk := 0.0
	if ind.CurrentPrice < ind.EMAFast {
		risk += 40
	}
	if ind.RSI < 45 {
		risk += 20
	}
	last := bars[len(bars)-1]
	if last.Close < last.Open && last.Volume > meanVolume(bars)*1.5 {
		risk += 20
	}
	if ind.ATR > ind.CurrentPrice*0.05 {
		risk += 20
	}
	return math.Min(100, risk)
}

// sentimentModifier maps polarity counts to a score adjustment. Two or
// more negative headlines dominate two or more positive ones.
func sentimentModifier(sig model.SentimentSignal) float64 {
	switch {
	case sig.Negative >= 2:
		return -10
	case sig.Positive >= 2:
		return 5
	default:
		return 0
	}
}

func meanVolume(bars []model.OHLCV) float64 {
	sum := 0.0
	for _, b := range bars {
		sum += b.Volume
	}
	return sum / float64(len(bars))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
