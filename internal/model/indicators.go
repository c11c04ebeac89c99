package model

// IndicatorSet holds the technical indicators derived from one daily bar series.
type IndicatorSet struct {
	CurrentPrice float64
	EMAFast      float64 // EMA(20)
	EMASlow      float64 // EMA(50)
	EMAFastPrev5 float64 // EMA(20) five bars back, for slope
	RSI          float64
	ATR          float64
}
