package model

// Strategy classifies how a holding is traded.
type Strategy string

const (
	StrategyLong  Strategy = "LONG"
	StrategySwing Strategy = "SWING"
)

// SentimentLabel is the classification result for one headline.
type SentimentLabel struct {
	Label string  `json:"label"`
	Score float64 `json:"score"`
}

// SentimentSignal aggregates headline polarity counts for one symbol.
// Degraded marks a signal that fell back to neutral because
// classification failed.
type SentimentSignal struct {
	Positive int
	Negative int
	Degraded bool
}

// ScoreResult is the outcome of one full evaluation of a symbol.
type ScoreResult struct {
	Symbol       string
	FinalScore   float64 // 0..100, rounded to 2 decimal places
	Trend        float64
	Stability    float64
	Risk         float64
	SentimentMod float64 // -10, 0 or +5
	Strategy     Strategy
	Price        float64
}
