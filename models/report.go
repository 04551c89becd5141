package models

// EODReport is the end-of-day performance summary computed server-side.
type EODReport struct {
	Date            string                   `json:"date"`
	TotalTrades     int                      `json:"total_trades"`
	OpenPositions   int                      `json:"open_positions"`
	ClosedPositions int                      `json:"closed_positions"`
	RealizedPnL     float64                  `json:"realized_pnl"`
	UnrealizedPnL   float64                  `json:"unrealized_pnl"`
	TotalPnL        float64                  `json:"total_pnl"`
	WinRate         float64                  `json:"win_rate"`
	GuardrailHits   map[string]int           `json:"guardrail_hits"`
	TopPerformers   []map[string]interface{} `json:"top_performers"`
	WorstPerformers []map[string]interface{} `json:"worst_performers"`
}

// MonthlyReport is the monthly performance summary computed server-side.
type MonthlyReport struct {
	Month         string   `json:"month"`
	TotalTrades   int      `json:"total_trades"`
	WinningTrades int      `json:"winning_trades"`
	LosingTrades  int      `json:"losing_trades"`
	WinRate       float64  `json:"win_rate"`
	TotalPnL      float64  `json:"total_pnl"`
	MaxDrawdown   float64  `json:"max_drawdown"`
	SharpeRatio   *float64 `json:"sharpe_ratio"`
}
