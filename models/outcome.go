package models

// Outcome is one possible resolution of a market in canonical form.
//
// Probability is an integer percentage; within a single market's outcome set
// the probabilities sum to exactly 100 whenever any source price is non-zero.
// Price is the cents-equivalent value as a 2-decimal string ("85.00").
// IsWinner is serialized only when true, so consumers never see a false flag.
// MarketID and MarketQuestion are set only on outcomes produced by event-level
// aggregation, where the owning market is no longer implied by position.
type Outcome struct {
	Label          string  `json:"label"`
	ShortLabel     string  `json:"shortLabel"`
	Price          string  `json:"price"`
	Probability    int     `json:"probability"`
	Volume         float64 `json:"volume"`
	Icon           string  `json:"icon,omitempty"`
	ClobTokenID    string  `json:"clobTokenId,omitempty"`
	ConditionID    string  `json:"conditionId,omitempty"`
	IsWinner       bool    `json:"isWinner,omitempty"`
	MarketID       string  `json:"marketId,omitempty"`
	MarketQuestion string  `json:"marketQuestion,omitempty"`
	Active         bool    `json:"active"`
	Closed         bool    `json:"closed"`
}
