package recorder

import "QuantWatch/internal/model"

// TradeEvent records a buy or a close against the ledgers.
type TradeEvent struct {
	Symbol   string
	Action   string // "BUY" or "SELL"
	Qty      int
	Price    float64
	Strategy string
	Refill   bool
	Proceeds float64
}

// AlertEvent records one danger-threshold alert raised by the scan.
type AlertEvent struct {
	Symbol  string
	Score   float64
	Message string
}

// Recorder persists evaluation history for later analysis.
type Recorder interface {
	RecordAnalysis(res *model.ScoreResult) error
	RecordTrade(evt *TradeEvent) error
	RecordAlert(evt *AlertEvent) error
	Close() error
}
