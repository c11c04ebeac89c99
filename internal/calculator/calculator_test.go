package calculator

import (
	"math"
	"testing"
	"time"

	"QuantWatch/internal/model"
)

func barsFromCloses(closes []float64) []model.OHLCV {
	bars := make([]model.OHLCV, len(closes))
	for i, c := range closes {
		bars[i] = model.OHLCV{
			Time:   time.Now().AddDate(0, 0, -(len(closes) - i)),
			Open:   c,
			High:   c + 1,
			Low:    c - 1,
			Close:  c,
			Volume: 1000,
		}
	}
	return bars
}

func TestEMASeries_ConstantPrices(t *testing.T) {
	prices := make([]float64, 50)
	for i := range prices {
		prices[i] = 42.0
	}
	ema, err := EMASeries(prices, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ema) != len(prices) {
		t.Fatalf("expected %d values, got %d", len(prices), len(ema))
	}
	for i, v := range ema {
		if v != 42.0 {
			t.Errorf("ema[%d] = %v, want 42", i, v)
		}
	}
}

func TestEMASeries_Validation(t *testing.T) {
	if _, err := EMASeries([]float64{1, 2}, 0); err == nil {
		t.Error("expected error for zero span")
	}
	if _, err := EMASeries(nil, 20); err == nil {
		t.Error("expected error for empty prices")
	}
}

func TestEMASeries_TracksRisingPrices(t *testing.T) {
	prices := make([]float64, 60)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}
	ema, err := EMASeries(prices, 20)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := ema[len(ema)-1]
	if last >= prices[len(prices)-1] {
		t.Errorf("ema should lag a rising series: ema=%.2f price=%.2f", last, prices[len(prices)-1])
	}
	if last <= prices[0] {
		t.Errorf("ema should have risen above the first price: ema=%.2f", last)
	}
}

func TestCalculateRSI_AllGains(t *testing.T) {
	closes := make([]float64, 100)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}
	rsi, err := CalculateRSI(barsFromCloses(closes), 13)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.IsNaN(rsi) || math.IsInf(rsi, 0) {
		t.Fatalf("rsi must be finite, got %v", rsi)
	}
	if rsi < 0 || rsi > 100 {
		t.Fatalf("rsi out of range: %v", rsi)
	}
	if rsi < 99 {
		t.Errorf("all-gain series should saturate near 100, got %v", rsi)
	}
}

func TestCalculateRSI_AllLosses(t *testing.T) {
	closes := make([]float64, 100)
	for i := range closes {
		closes[i] = 300 - float64(i)
	}
	rsi, err := CalculateRSI(barsFromCloses(closes), 13)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi < 0 || rsi > 1 {
		t.Errorf("all-loss series should sit near 0, got %v", rsi)
	}
}

func TestCalculateRSI_Range(t *testing.T) {
	closes := make([]float64, 100)
	for i := range closes {
		closes[i] = 100 + 10*math.Sin(float64(i)/3)
	}
	rsi, err := CalculateRSI(barsFromCloses(closes), 13)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi < 0 || rsi > 100 || math.IsNaN(rsi) {
		t.Errorf("rsi out of range: %v", rsi)
	}
}

func TestCalculateRSI_ShortSeries(t *testing.T) {
	rsi, err := CalculateRSI(barsFromCloses([]float64{100}), 13)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rsi != 50.0 {
		t.Errorf("expected default 50 for short series, got %v", rsi)
	}
}

func TestCalculateATR_ConstantRange(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100
	}
	// High-low is 2 everywhere and closes never gap, so TR is 2.
	atr, err := CalculateATR(barsFromCloses(closes), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(atr-2.0) > 1e-9 {
		t.Errorf("expected ATR 2.0, got %v", atr)
	}
}

func TestCalculateATR_ShortSeries(t *testing.T) {
	atr, err := CalculateATR(barsFromCloses([]float64{100, 101, 102}), 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.IsNaN(atr) || atr <= 0 {
		t.Errorf("short series must still produce a defined ATR, got %v", atr)
	}
}
