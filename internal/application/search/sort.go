package search

import "strings"

// SortSpec is a guaranteed-defined field/direction pair.
type SortSpec struct {
	Field string
	Desc  bool
}

const defaultSortField = "listings.created_at"

// resolveSort maps a requested sort key and direction token to a canonical
// pair. Unrecognized or absent keys fall back to creation time; direction is
// ascending unless the token is exactly "desc" (case-insensitive).
func resolveSort(sortBy, sortOrder string) SortSpec {
	var field string
	switch strings.ToLower(strings.TrimSpace(sortBy)) {
	case "price":
		field = FieldPrice
	case "rarity":
		field = "listings.rarity_rank"
	case "condition":
		field = "listings.condition_rank"
	default:
		field = defaultSortField
	}
	return SortSpec{
		Field: field,
		Desc:  strings.EqualFold(strings.TrimSpace(sortOrder), "desc"),
	}
}

// OrderClause renders the ORDER BY expression. The listing id is always
// appended as a secondary key so ties paginate reproducibly.
func (s SortSpec) OrderClause() string {
	dir := "ASC"
	if s.Desc {
		dir = "DESC"
	}
	return s.Field + " " + dir + ", listings.id ASC"
}
