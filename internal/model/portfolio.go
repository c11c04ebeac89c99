package model

// Position is one open holding. Created when a trade is logged,
// destroyed when the position is closed, otherwise immutable.
type Position struct {
	Symbol   string   `json:"symbol"`
	Qty      int      `json:"qty"`
	BuyPrice float64  `json:"buy_price"`
	Strategy Strategy `json:"strategy"`
}
