package models

import "time"

// Position is a read-only snapshot of an open holding, replaced wholesale
// on each fetch.
type Position struct {
	ID            int64     `json:"id"`
	Symbol        string    `json:"symbol"`
	Exchange      string    `json:"exchange"`
	Quantity      int       `json:"quantity"`
	AveragePrice  float64   `json:"average_price"`
	CurrentPrice  *float64  `json:"current_price"`
	UnrealizedPnL *float64  `json:"unrealized_pnl"`
	RealizedPnL   float64   `json:"realized_pnl"`
	OpenedAt      time.Time `json:"opened_at"`
}

// Order is a read-only snapshot of a broker order.
type Order struct {
	ID              int64     `json:"id"`
	TradeCardID     int64     `json:"trade_card_id"`
	BrokerOrderID   string    `json:"broker_order_id"`
	Symbol          string    `json:"symbol"`
	Exchange        string    `json:"exchange"`
	OrderType       string    `json:"order_type"`
	TransactionType TradeType `json:"transaction_type"`
	Quantity        int       `json:"quantity"`
	Price           *float64  `json:"price"`
	Status          string    `json:"status"`
	PlacedAt        time.Time `json:"placed_at"`
}
