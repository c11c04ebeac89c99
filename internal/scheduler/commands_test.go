package scheduler

import (
	"strings"
	"testing"

	"QuantWatch/internal/collector"
	"QuantWatch/internal/model"
)

func TestHandleCommand_UnauthorizedChatIgnored(t *testing.T) {
	s := newTestScheduler(t, &collector.MockFetcher{}, "")
	s.AuthChatID = "42"

	if reply := s.HandleCommand("999", "/port"); reply != "" {
		t.Errorf("unauthorized chat must get no reply, got %q", reply)
	}
}

func TestHandleCommand_FirstChatBecomesTarget(t *testing.T) {
	s := newTestScheduler(t, &collector.MockFetcher{}, "")

	s.HandleCommand("777", "/port")
	if got := s.Budget.State().ChatID; got != "777" {
		t.Errorf("chat id = %q, want 777", got)
	}

	// A later chat does not steal the target.
	s.HandleCommand("888", "/port")
	if got := s.Budget.State().ChatID; got != "777" {
		t.Errorf("chat id = %q, want 777 after second chat", got)
	}
}

func TestHandleCommand_BuyGrammar(t *testing.T) {
	s := newTestScheduler(t, &collector.MockFetcher{}, "123")

	reply := s.HandleCommand("123", "bought 10 RELIANCE at 2500")
	if !strings.Contains(reply, "RELIANCE") || strings.Contains(reply, "❌") {
		t.Fatalf("unexpected buy reply: %q", reply)
	}
	positions := s.Trader.Portfolio.Positions()
	if len(positions) != 1 || positions[0].Qty != 10 || positions[0].BuyPrice != 2500 {
		t.Fatalf("position not logged: %+v", positions)
	}
	if got := s.Budget.State().SwingUsed; got != 25000 {
		t.Errorf("swing_used = %v, want 25000", got)
	}
}

func TestHandleCommand_SellVault(t *testing.T) {
	s := newTestScheduler(t, &collector.MockFetcher{}, "123")
	s.HandleCommand("123", "bought 10 INFY at 100")

	reply := s.HandleCommand("123", "sold 10 INFY at 120 vault")
	if strings.Contains(reply, "❌") {
		t.Fatalf("unexpected sell reply: %q", reply)
	}
	state := s.Budget.State()
	if state.ProfitVault != 1200 {
		t.Errorf("profit_vault = %v, want 1200", state.ProfitVault)
	}
	if state.SwingUsed != 1000 {
		t.Errorf("swing_used = %v, want 1000", state.SwingUsed)
	}
}

func TestHandleCommand_SellUnknownPosition(t *testing.T) {
	s := newTestScheduler(t, &collector.MockFetcher{}, "123")
	reply := s.HandleCommand("123", "sold 5 GHOST at 100 refill")
	if !strings.Contains(reply, "❌") {
		t.Errorf("expected an error reply, got %q", reply)
	}
}

func TestHandleCommand_AnalysisInsufficientHistory(t *testing.T) {
	fetcher := &collector.MockFetcher{Bars: map[string][]model.OHLCV{
		"NEWIPO": collector.GenerateMockBars(100, 40),
	}}
	s := newTestScheduler(t, fetcher, "123")

	reply := s.HandleCommand("123", "NEWIPO")
	if !strings.Contains(reply, "Not enough price history") {
		t.Errorf("unexpected reply for short history: %q", reply)
	}
}

func TestHandleCommand_UnknownFallsBackToHelp(t *testing.T) {
	s := newTestScheduler(t, &collector.MockFetcher{}, "123")
	reply := s.HandleCommand("123", "what is this")
	if !strings.Contains(reply, "Commands:") {
		t.Errorf("expected help text, got %q", reply)
	}
}

func TestHandleCommand_EmptyPortfolioReport(t *testing.T) {
	s := newTestScheduler(t, &collector.MockFetcher{}, "123")
	reply := s.HandleCommand("123", "/port")
	if !strings.Contains(reply, "empty") {
		t.Errorf("expected empty-portfolio reply, got %q", reply)
	}
}
