package model

import "time"

// BudgetState tracks per-strategy capital allocation and the realized
// profit vault. ChatID is the notification target for background alerts.
type BudgetState struct {
	SwingLimit  float64   `json:"swing_limit"`
	SwingUsed   float64   `json:"swing_used"`
	LongLimit   float64   `json:"long_limit"`
	LongUsed    float64   `json:"long_used"`
	ProfitVault float64   `json:"profit_vault"`
	ChatID      string    `json:"chat_id"`
	UpdatedAt   time.Time `json:"updated_at"`
}
