package calculator

import (
	"errors"
	"math"

	"QuantWatch/internal/model"
)

// CalculateATR averages the true range over the trailing window of the
// given period. When the series is shorter than the period the whole
// series is averaged, so the result is always defined.
func CalculateATR(bars []model.OHLCV, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(bars) == 0 {
		return 0, errors.New("no bars provided")
	}

	tr := trueRanges(bars)
	if len(tr) < period {
		period = len(tr)
	}
	sum := 0.0
	for i := len(tr) - period; i < len(tr); i++ {
		sum += tr[i]
	}
	return sum / float64(period), nil
}

// trueRanges computes max(high-low, |high-prevClose|, |low-prevClose|)
// per bar. The first bar has no previous close and uses high-low.
func trueRanges(bars []model.OHLCV) []float64 {
	tr := make([]float64, len(bars))
	tr[0] = bars[0].High - bars[0].Low
	for i := 1; i < len(bars); i++ {
		hl := bars[i].High - bars[i].Low
		hc := math.Abs(bars[i].High - bars[i-1].Close)
		lc := math.Abs(bars[i].Low - bars[i-1].Close)
		tr[i] = math.Max(hl, math.Max(hc, lc))
	}
	return tr
}
