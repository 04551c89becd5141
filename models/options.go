package models

// OptionQuote is one side (call or put) of a chain strike. Fields are
// pointers so that missing market data renders blank, never zero.
type OptionQuote struct {
	LTP *float64 `json:"ltp"`
	OI  *int64   `json:"oi"`
	IV  *float64 `json:"iv"`
}

// ChainStrike is a single row of the option chain.
type ChainStrike struct {
	Strike float64      `json:"strike"`
	Call   *OptionQuote `json:"call"`
	Put    *OptionQuote `json:"put"`
}

// ChainData is the strike table plus the chain-level metadata the feed
// attaches to it.
type ChainData struct {
	Strikes       []ChainStrike `json:"strikes"`
	SpotPrice     float64       `json:"spot_price"`
	NearestExpiry string        `json:"nearest_expiry"`
}

// OptionChain is the full chain response for an underlying.
type OptionChain struct {
	Symbol   string    `json:"symbol"`
	Exchange string    `json:"exchange"`
	Expiry   string    `json:"expiry"`
	Data     ChainData `json:"data"`
}
