package calculator

import (
	"errors"

	"QuantWatch/internal/model"
)

// lossEpsilon replaces an exactly-zero average loss so the RS ratio is
// always defined. An all-gain series resolves to RSI just under 100.
const lossEpsilon = 1e-10

// CalculateRSI computes the relative strength index over closing-price
// deltas, smoothing gains and losses with an exponential average of the
// given center of mass (com=13 corresponds to the classic RSI(14)).
// The result is always finite and within [0,100].
func CalculateRSI(bars []model.OHLCV, com int) (float64, error) {
	if com <= 0 {
		return 0, errors.New("center of mass must be positive")
	}
	if len(bars) < 2 {
		return 50.0, nil // default when data insufficient
	}

	closes := extractCloses(bars)
	alpha := 1.0 / (1.0 + float64(com))

	var avgUp, avgDown float64
	if first := closes[1] - closes[0]; first > 0 {
		avgUp = first
	} else {
		avgDown = -first
	}
	for i := 2; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		up, down := 0.0, 0.0
		if change > 0 {
			up = change
		} else {
			down = -change
		}
		avgUp += alpha * (up - avgUp)
		avgDown += alpha * (down - avgDown)
	}

	if avgDown == 0 {
		avgDown = lossEpsilon
	}
	rs := avgUp / avgDown
	return 100.0 - 100.0/(1.0+rs), nil
}
