package ledger

import (
	"os"
	"path/filepath"
	"testing"

	"QuantWatch/internal/model"
)

func testDefaults() model.BudgetState {
	return model.BudgetState{SwingLimit: 100000, LongLimit: 200000}
}

func TestOpenBudget_SeedsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.json")
	b, err := OpenBudget(path, testDefaults(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	state := b.State()
	if state.SwingLimit != 100000 || state.LongLimit != 200000 {
		t.Errorf("defaults not applied: %+v", state)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("seed state should be persisted: %v", err)
	}
}

func TestOpenBudget_CorruptFileFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenBudget(path, testDefaults(), ""); err == nil {
		t.Fatal("expected error for corrupt budget file")
	}
}

func TestBudget_SaveClampsNegatives(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.json")
	b, err := OpenBudget(path, testDefaults(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.RecordBuy(model.StrategySwing, 1000); err != nil {
		t.Fatalf("record buy: %v", err)
	}
	// Refilling more than was used drives the counter negative; the save
	// must repair it to zero rather than reject it.
	if err := b.ApplyExit(model.StrategySwing, 5000, true); err != nil {
		t.Fatalf("apply exit: %v", err)
	}
	state := b.State()
	if state.SwingUsed != 0 {
		t.Errorf("swing_used should clamp to 0, got %v", state.SwingUsed)
	}
	if state.LongUsed < 0 || state.ProfitVault < 0 {
		t.Errorf("counters must never be negative: %+v", state)
	}

	// The clamped state must be what a fresh reader sees.
	reloaded, err := OpenBudget(path, testDefaults(), "")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := reloaded.State().SwingUsed; got != 0 {
		t.Errorf("persisted swing_used should be 0, got %v", got)
	}
}

func TestBudget_FixedChatIDWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.json")
	b, err := OpenBudget(path, testDefaults(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.SetChatID("111"); err != nil {
		t.Fatalf("set chat id: %v", err)
	}

	// Reopen with a configured id: it overrides the stored one and
	// cannot be changed afterwards.
	b2, err := OpenBudget(path, testDefaults(), "999")
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if got := b2.State().ChatID; got != "999" {
		t.Errorf("configured chat id should win, got %q", got)
	}
	if err := b2.SetChatID("222"); err != nil {
		t.Fatalf("set chat id: %v", err)
	}
	if got := b2.State().ChatID; got != "999" {
		t.Errorf("fixed chat id must not be overwritten, got %q", got)
	}
}

func TestBudget_SetChatIDPersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.json")
	b, err := OpenBudget(path, testDefaults(), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.SetChatID("42"); err != nil {
		t.Fatalf("set chat id: %v", err)
	}
	reloaded, err := OpenBudget(path, testDefaults(), "")
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := reloaded.State().ChatID; got != "42" {
		t.Errorf("chat id should persist, got %q", got)
	}
}

func TestOpenPortfolio_MissingStartsEmpty(t *testing.T) {
	p, err := OpenPortfolio(filepath.Join(t.TempDir(), "port.json"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := len(p.Positions()); got != 0 {
		t.Errorf("expected empty portfolio, got %d positions", got)
	}
}

func TestOpenPortfolio_CorruptFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "port.json")
	if err := os.WriteFile(path, []byte("not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := OpenPortfolio(path); err == nil {
		t.Fatal("expected error for corrupt portfolio file")
	}
}

func TestPortfolio_AppendRemoveRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "port.json")
	p, err := OpenPortfolio(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pos := model.Position{Symbol: "RELIANCE", Qty: 10, BuyPrice: 2500, Strategy: model.StrategySwing}
	if err := p.Append(pos); err != nil {
		t.Fatalf("append: %v", err)
	}
	if err := p.Append(model.Position{Symbol: "TCS", Qty: 5, BuyPrice: 3500, Strategy: model.StrategyLong}); err != nil {
		t.Fatalf("append: %v", err)
	}

	// A fresh reader sees both positions.
	reloaded, err := OpenPortfolio(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if got := len(reloaded.Positions()); got != 2 {
		t.Fatalf("expected 2 persisted positions, got %d", got)
	}

	removed, found, err := p.Remove("RELIANCE")
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if !found || removed.Symbol != "RELIANCE" {
		t.Fatalf("expected to remove RELIANCE, got %+v found=%v", removed, found)
	}
	if got := len(p.Positions()); got != 1 {
		t.Errorf("expected 1 remaining position, got %d", got)
	}

	if _, found, _ := p.Remove("MISSING"); found {
		t.Error("removing an unknown symbol should report not found")
	}
}
