package ledger

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"QuantWatch/internal/model"
)

// Portfolio exclusively owns the durable open-position list. All access
// goes through the mutex so a foreground request and the background scan
// never observe a torn state.
type Portfolio struct {
	mu        sync.Mutex
	path      string
	positions []model.Position
}

// OpenPortfolio loads the position list, starting empty when the file
// does not exist. A present but unreadable or corrupt file is fatal.
func OpenPortfolio(path string) (*Portfolio, error) {
	p := &Portfolio{path: path, positions: []model.Position{}}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return p, nil
		}
		return nil, fmt.Errorf("read portfolio: %w", err)
	}
	if err := json.Unmarshal(data, &p.positions); err != nil {
		return nil, fmt.Errorf("parse portfolio: %w", err)
	}
	return p, nil
}

// Positions returns a copy of the open positions.
func (p *Portfolio) Positions() []model.Position {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]model.Position, len(p.positions))
	copy(out, p.positions)
	return out
}

// Append records a new open position. The in-memory list is rolled back
// when the write fails, so memory and disk stay consistent.
func (p *Portfolio) Append(pos model.Position) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.positions = append(p.positions, pos)
	if err := writeFileAtomic(p.path, p.positions); err != nil {
		p.positions = p.positions[:len(p.positions)-1]
		return fmt.Errorf("save portfolio: %w", err)
	}
	return nil
}

// Remove drops the first position matching the symbol and returns it.
// The removal stands in memory even when the subsequent write fails; the
// error reports the failed persistence.
func (p *Portfolio) Remove(symbol string) (model.Position, bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for i, pos := range p.positions {
		if pos.Symbol == symbol {
			p.positions = append(p.positions[:i], p.positions[i+1:]...)
			if err := writeFileAtomic(p.path, p.positions); err != nil {
				return pos, true, fmt.Errorf("save portfolio: %w", err)
			}
			return pos, true, nil
		}
	}
	return model.Position{}, false, nil
}
