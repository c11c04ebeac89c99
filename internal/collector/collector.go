package collector

import (
	"errors"
	"fmt"
	"time"

	"QuantWatch/internal/calculator"
	"QuantWatch/internal/model"
)

// MinBars is the minimum series length required for analysis.
const MinBars = 60

// ErrInsufficientHistory marks a bar series too short to analyze. It is
// a defined outcome, not a fault: callers surface it as "no data".
var ErrInsufficientHistory = errors.New("insufficient history")

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Bars      map[string][]model.OHLCV
	Headlines []string
	Errs      map[string]error
	Calls     int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchDailyBars(symbol string, days int) ([]model.OHLCV, error) {
	m.Calls++
	if err := m.Errs[symbol]; err != nil {
		return nil, err
	}
	if bars, ok := m.Bars[symbol]; ok {
		return bars, nil
	}
	return GenerateMockBars(100, days), nil
}

func (m *MockFetcher) FetchHeadlines(symbol string, limit int) ([]string, error) {
	if err := m.Errs[symbol]; err != nil {
		return nil, err
	}
	if len(m.Headlines) > limit {
		return m.Headlines[:limit], nil
	}
	return m.Headlines, nil
}

// GenerateMockBars builds a mildly rising series around basePrice.
func GenerateMockBars(basePrice float64, count int) []model.OHLCV {
	bars := make([]model.OHLCV, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}

// Collector fetches the daily series for a symbol and derives its
// indicator set.
type Collector struct {
	Fetcher  Fetcher
	Lookback int // days of daily history to request
}

// NewCollector creates a new Collector.
func NewCollector(fetcher Fetcher, lookback int) *Collector {
	return &Collector{Fetcher: fetcher, Lookback: lookback}
}

// Snapshot fetches the daily bars and computes the indicators. It returns
// ErrInsufficientHistory when fewer than MinBars are available.
func (c *Collector) Snapshot(symbol string) (*model.IndicatorSet, []model.OHLCV, error) {
	bars, err := c.Fetcher.FetchDailyBars(symbol, c.Lookback)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch daily bars: %w", err)
	}
	if len(bars) < MinBars {
		return nil, nil, ErrInsufficientHistory
	}
	ind, err := BuildIndicators(bars)
	if err != nil {
		return nil, nil, err
	}
	return ind, bars, nil
}

// BuildIndicators derives the indicator set from a chronological series
// of at least MinBars bars.
func BuildIndicators(bars []model.OHLCV) (*model.IndicatorSet, error) {
	if len(bars) < MinBars {
		return nil, ErrInsufficientHistory
	}

	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}

	emaFast, err := calculator.EMASeries(closes, 20)
	if err != nil {
		return nil, fmt.Errorf("ema20: %w", err)
	}
	emaSlow, err := calculator.EMASeries(closes, 50)
	if err != nil {
		return nil, fmt.Errorf("ema50: %w", err)
	}
	rsi, err := calculator.CalculateRSI(bars, 13)
	if err != nil {
		return nil, fmt.Errorf("rsi: %w", err)
	}
	atr, err := calculator.CalculateATR(bars, 14)
	if err != nil {
		return nil, fmt.Errorf("atr: %w", err)
	}

	n := len(bars)
	return &model.IndicatorSet{
		CurrentPrice: closes[n-1],
		EMAFast:      emaFast[n-1],
		EMASlow:      emaSlow[n-1],
		EMAFastPrev5: emaFast[n-5],
		RSI:          rsi,
		ATR:          atr,
	}, nil
}
