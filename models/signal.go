package models

// SignalRunRequest triggers the server-side signal generation pipeline.
// Nil strategies/symbols means run all / scan the default universe.
type SignalRunRequest struct {
	Strategies   []string `json:"strategies"`
	Symbols      []string `json:"symbols"`
	ForceRefresh bool     `json:"force_refresh"`
}

// SignalRunResponse summarizes a completed generation run.
type SignalRunResponse struct {
	CandidatesFound   int `json:"candidates_found"`
	TradeCardsCreated int `json:"trade_cards_created"`
}

// AuthStatus reports whether the server holds a valid broker session.
type AuthStatus struct {
	Authenticated bool   `json:"authenticated"`
	Broker        string `json:"broker"`
}
