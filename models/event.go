package models

// Tag is a canonical category tag carried through event grouping so the
// frontend can filter by it.
type Tag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Slug  string `json:"slug,omitempty"`
}

// Event is the canonical transformed event consumed by the HTTP layer.
//
// GroupedOutcomes is the event-level aggregated outcome list spanning all of
// the event's active markets, sorted by probability descending. A nil pointer
// means aggregation was never attempted for this event; a pointer to an empty
// slice means aggregation ran and found nothing. The two states serialize as
// absent vs. [] and consumers rely on the distinction.
type Event struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Slug            string     `json:"slug"`
	Description     string     `json:"description,omitempty"`
	Volume          float64    `json:"volume"`
	Volume24Hr      float64    `json:"volume24hr"`
	Liquidity       float64    `json:"liquidity"`
	Competitive     float64    `json:"competitive,omitempty"`
	Active          bool       `json:"active"`
	Closed          bool       `json:"closed"`
	Archived        bool       `json:"archived"`
	Markets         []Market   `json:"markets"`
	Tags            []Tag      `json:"tags,omitempty"`
	HasGroupItems   bool       `json:"hasGroupItems"`
	GroupedOutcomes *[]Outcome `json:"groupedOutcomes,omitempty"`
	IsResolved      bool       `json:"isResolved"`
	IsBinaryOutcome bool       `json:"isBinaryOutcome"`
	IsMultiOutcome  bool       `json:"isMultiOutcome"`
	StartDate       string     `json:"startDate,omitempty"`
	EndDate         string     `json:"endDate,omitempty"`
	UpdatedAt       string     `json:"updatedAt,omitempty"`
}

// Pagination describes the slice of a result set a response covers.
type Pagination struct {
	HasMore      bool `json:"hasMore"`
	TotalResults int  `json:"totalResults"`
	Offset       int  `json:"offset"`
	Limit        int  `json:"limit"`
}

// EventPage is one paginated page of transformed events.
type EventPage struct {
	Events     []Event    `json:"events"`
	Pagination Pagination `json:"pagination"`
}
