package models

// Market is the canonical form of one upstream market record. It is created
// fresh on every transform call and never mutated afterwards; treat it as an
// immutable snapshot of a single upstream fetch.
//
// Outcomes and OutcomePrices carry the legacy decoded string arrays for
// backward compatibility with consumers that predate StructuredOutcomes.
type Market struct {
	ID                    string    `json:"id"`
	Question              string    `json:"question"`
	Slug                  string    `json:"slug,omitempty"`
	ConditionID           string    `json:"conditionId,omitempty"`
	Volume                float64   `json:"volume"`
	Volume24Hr            float64   `json:"volume24hr"`
	Volume1Wk             float64   `json:"volume1wk"`
	Volume1Mo             float64   `json:"volume1mo"`
	Liquidity             float64   `json:"liquidity"`
	Active                bool      `json:"active"`
	Closed                bool      `json:"closed"`
	Archived              bool      `json:"archived"`
	StructuredOutcomes    []Outcome `json:"structuredOutcomes"`
	Outcomes              []string  `json:"outcomes,omitempty"`
	OutcomePrices         []string  `json:"outcomePrices,omitempty"`
	ClobTokenIDs          []string  `json:"clobTokenIds,omitempty"`
	IsGroupItem           bool      `json:"isGroupItem"`
	GroupItemTitle        string    `json:"groupItemTitle,omitempty"`
	GroupItemThreshold    float64   `json:"groupItemThreshold,omitempty"`
	Icon                  string    `json:"icon,omitempty"`
	ClosedTime            string    `json:"closedTime,omitempty"`
	ResolvedBy            string    `json:"resolvedBy,omitempty"`
	UMAResolutionStatus   string    `json:"umaResolutionStatus,omitempty"`
	AutomaticallyResolved bool      `json:"automaticallyResolved,omitempty"`
	UpdatedAt             string    `json:"updatedAt,omitempty"`
}

// IsTrading reports whether the market is still actively trading.
func (m *Market) IsTrading() bool {
	return m.Active && !m.Closed
}

// WinningOutcome returns the outcome marked as winner, or nil when resolution
// was ambiguous and no winner was detected.
func (m *Market) WinningOutcome() *Outcome {
	for i := range m.StructuredOutcomes {
		if m.StructuredOutcomes[i].IsWinner {
			return &m.StructuredOutcomes[i]
		}
	}
	return nil
}
