package collector

import "QuantWatch/internal/model"

// Fetcher defines the interface for fetching market data.
type Fetcher interface {
	FetchDailyBars(symbol string, days int) ([]model.OHLCV, error)
	FetchHeadlines(symbol string, limit int) ([]string, error)
	Name() string
}
