package models

import "time"

// TradeType is the direction of a proposed trade.
type TradeType string

const (
	TradeTypeBuy  TradeType = "BUY"
	TradeTypeSell TradeType = "SELL"
)

// TradeCard is a proposed trade awaiting operator approval. It is a
// short-lived copy of a server-owned record; the server remains the
// authority for its lifecycle.
type TradeCard struct {
	ID         int64     `json:"id"`
	Symbol     string    `json:"symbol"`
	Exchange   string    `json:"exchange"`
	TradeType  TradeType `json:"trade_type"`
	EntryPrice float64   `json:"entry_price"`
	StopLoss   float64   `json:"stop_loss"`
	TakeProfit float64   `json:"take_profit"`
	Quantity   int       `json:"quantity"`
	Confidence float64   `json:"confidence"`
	Strategy   string    `json:"strategy"`
	Evidence   string    `json:"evidence"`
	Status     string    `json:"status"`

	// Guardrail outcomes, one boolean per automated pre-trade check.
	LiquidityCheck         bool `json:"liquidity_check"`
	PositionSizeCheck      bool `json:"position_size_check"`
	ExposureCheck          bool `json:"exposure_check"`
	EventWindowCheck       bool `json:"event_window_check"`
	RegimeCheck            bool `json:"regime_check"`
	CatalystFreshnessCheck bool `json:"catalyst_freshness_check"`

	RiskWarnings []string  `json:"risk_warnings"`
	CreatedAt    time.Time `json:"created_at"`
}

// TradeCardApproval is the approve request body.
type TradeCardApproval struct {
	TradeCardID int64  `json:"trade_card_id"`
	UserID      string `json:"user_id"`
	Notes       string `json:"notes,omitempty"`
}

// TradeCardRejection is the reject request body.
type TradeCardRejection struct {
	TradeCardID int64  `json:"trade_card_id"`
	Reason      string `json:"reason"`
	UserID      string `json:"user_id"`
}

// GuardrailExplanation is the per-card guardrail breakdown returned by
// the explain endpoint.
type GuardrailExplanation struct {
	CardID                 int64    `json:"card_id"`
	Symbol                 string   `json:"symbol"`
	LiquidityCheck         bool     `json:"liquidity_check"`
	PositionSizeCheck      bool     `json:"position_size_check"`
	ExposureCheck          bool     `json:"exposure_check"`
	EventWindowCheck       bool     `json:"event_window_check"`
	RegimeCheck            bool     `json:"regime_check"`
	CatalystFreshnessCheck bool     `json:"catalyst_freshness_check"`
	RiskWarnings           []string `json:"risk_warnings"`
}
