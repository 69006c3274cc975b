package models

import (
	"encoding/json"
	"strconv"
)

// StringOrList absorbs the three encodings the Gamma API uses for list-valued
// fields: a real JSON array of strings or numbers, a bare JSON string holding
// an encoded array, or nothing at all. A bare string is kept as a single
// element; the parser layer unwraps it further. Unknown shapes decode to nil
// rather than failing the whole record.
type StringOrList []string

func (s *StringOrList) UnmarshalJSON(data []byte) error {
	var items []interface{}
	if err := json.Unmarshal(data, &items); err == nil {
		out := make([]string, 0, len(items))
		for _, item := range items {
			switch v := item.(type) {
			case string:
				out = append(out, v)
			case float64:
				out = append(out, strconv.FormatFloat(v, 'f', -1, 64))
			default:
				out = append(out, "")
			}
		}
		*s = out
		return nil
	}

	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		if single == "" || single == "null" {
			*s = nil
			return nil
		}
		*s = []string{single}
		return nil
	}

	*s = nil
	return nil
}

// FlexFloat decodes a number that the upstream sends either as a JSON number
// or as a quoted string. Empty or unparseable values decode to zero.
type FlexFloat float64

func (f *FlexFloat) UnmarshalJSON(data []byte) error {
	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*f = FlexFloat(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if parsed, err := strconv.ParseFloat(s, 64); err == nil {
			*f = FlexFloat(parsed)
			return nil
		}
	}

	*f = 0
	return nil
}

// Float64 returns the plain float value.
func (f FlexFloat) Float64() float64 {
	return float64(f)
}

// RawMarket is one market record exactly as the upstream returns it. Every
// field is optional and untrusted; the transform engine is responsible for
// turning this into a canonical Market.
type RawMarket struct {
	ID                    string       `json:"id"`
	Question              string       `json:"question"`
	Slug                  string       `json:"slug"`
	ConditionID           string       `json:"conditionId"`
	Outcomes              StringOrList `json:"outcomes"`
	OutcomePrices         StringOrList `json:"outcomePrices"`
	ClobTokenIDs          StringOrList `json:"clobTokenIds"`
	Volume                FlexFloat    `json:"volume"`
	Volume24Hr            FlexFloat    `json:"volume24hr"`
	Volume1Wk             FlexFloat    `json:"volume1wk"`
	Volume1Mo             FlexFloat    `json:"volume1mo"`
	Liquidity             FlexFloat    `json:"liquidity"`
	Active                bool         `json:"active"`
	Closed                bool         `json:"closed"`
	Archived              bool         `json:"archived"`
	GroupItemTitle        string       `json:"groupItemTitle"`
	GroupItemThreshold    FlexFloat    `json:"groupItemThreshold"`
	Icon                  string       `json:"icon"`
	Image                 string       `json:"image"`
	ClosedTime            string       `json:"closedTime"`
	ResolvedBy            string       `json:"resolvedBy"`
	UMAResolutionStatus   string       `json:"umaResolutionStatus"`
	AutomaticallyResolved bool         `json:"automaticallyResolved"`
	CreatedAt             string       `json:"createdAt"`
	UpdatedAt             string       `json:"updatedAt"`
}

// IsGroupItem reports whether this market is one slice of a grouped event,
// e.g. one point-spread line. The upstream signals this only through the
// presence of a group item title.
func (m *RawMarket) IsGroupItem() bool {
	return m.GroupItemTitle != ""
}

// RawTag is an upstream category tag.
type RawTag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Slug  string `json:"slug"`
}

// RawEvent is one event record as returned by the upstream events feed.
type RawEvent struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Description string      `json:"description"`
	Markets     []RawMarket `json:"markets"`
	Tags        []RawTag    `json:"tags"`
	Volume      FlexFloat   `json:"volume"`
	Volume24Hr  FlexFloat   `json:"volume24hr"`
	Liquidity   FlexFloat   `json:"liquidity"`
	Competitive FlexFloat   `json:"competitive"`
	Active      bool        `json:"active"`
	Closed      bool        `json:"closed"`
	Archived    bool        `json:"archived"`
	StartDate   string      `json:"startDate"`
	EndDate     string      `json:"endDate"`
	CreatedAt   string      `json:"createdAt"`
	UpdatedAt   string      `json:"updatedAt"`
}
