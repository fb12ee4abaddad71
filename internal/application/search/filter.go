package search

// ListingFilter is the per-call search input. Every field is optional; the
// zero value means "no filter for that dimension". Page and Size arrive as
// strings so an absent value is distinguishable from a malformed one.
type ListingFilter struct {
	Username           string   `json:"username"`
	Title              string   `json:"title"`
	Conditions         []string `json:"conditions"`
	ListingStatuses    []string `json:"listing_statuses"`
	Rarities           []string `json:"rarities"`
	Regions            []string `json:"regions"`
	CardTypes          []string `json:"card_types"`
	MinPrice           *float64 `json:"min_price"`
	MaxPrice           *float64 `json:"max_price"`
	SortBy             string   `json:"sort_by"`
	SortOrder          string   `json:"sort_order"`
	Page               string   `json:"page"`
	Size               string   `json:"size"`
	ExcludeCurrentUser bool     `json:"exclude_current_user"`
}
