package ledger

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sync"
	"time"

	"QuantWatch/internal/model"
)

// Budget exclusively owns the durable capital-allocation record.
type Budget struct {
	mu          sync.Mutex
	path        string
	state       model.BudgetState
	fixedChatID string
}

// OpenBudget loads the budget record, seeding it from defaults when the
// file does not exist. A chat id fixed by configuration always wins over
// the stored one. A present but unreadable or corrupt file is fatal.
func OpenBudget(path string, defaults model.BudgetState, fixedChatID string) (*Budget, error) {
	b := &Budget{path: path, fixedChatID: fixedChatID}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read budget: %w", err)
		}
		b.state = defaults
		b.state.ChatID = fixedChatID
		if err := b.save(); err != nil {
			return nil, err
		}
		return b, nil
	}
	if err := json.Unmarshal(data, &b.state); err != nil {
		return nil, fmt.Errorf("parse budget: %w", err)
	}
	if fixedChatID != "" {
		b.state.ChatID = fixedChatID
	}
	return b, nil
}

// State returns a copy of the current budget state.
func (b *Budget) State() model.BudgetState {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.state
}

// RecordBuy charges a trade against the strategy's used counter.
func (b *Budget) RecordBuy(strat model.Strategy, amount float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch strat {
	case model.StrategyLong:
		b.state.LongUsed += amount
	default:
		b.state.SwingUsed += amount
	}
	return b.save()
}

// ApplyExit settles closed-position proceeds. With refill they return to
// the originating strategy's used counter (floored at zero on save),
// otherwise the full amount is swept into the profit vault. Exactly one
// of the two happens per call.
func (b *Budget) ApplyExit(strat model.Strategy, proceeds float64, refill bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if refill {
		switch strat {
		case model.StrategyLong:
			b.state.LongUsed -= proceeds
		default:
			b.state.SwingUsed -= proceeds
		}
	} else {
		b.state.ProfitVault += proceeds
	}
	return b.save()
}

// SetChatID persists the notification target for background alerts.
// The target is set once: a chat id fixed by configuration, or one
// already learned, is never overwritten.
func (b *Budget) SetChatID(chatID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.fixedChatID != "" || chatID == "" || b.state.ChatID != "" {
		return nil
	}
	b.state.ChatID = chatID
	return b.save()
}

// save clamps negative counters to zero before writing. Negative values
// are repaired, not rejected.
func (b *Budget) save() error {
	b.state.SwingUsed = math.Max(0, b.state.SwingUsed)
	b.state.LongUsed = math.Max(0, b.state.LongUsed)
	b.state.ProfitVault = math.Max(0, b.state.ProfitVault)
	b.state.UpdatedAt = time.Now()
	if err := writeFileAtomic(b.path, &b.state); err != nil {
		return fmt.Errorf("save budget: %w", err)
	}
	return nil
}
