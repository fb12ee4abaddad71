package search

import (
	"strings"

	"cardtrade-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// A strategy contributes a predicate fragment when its trigger condition
// holds. The set is closed and evaluated once per call; order is irrelevant
// because fragments AND-combine.
type strategy struct {
	applicable func(ListingFilter) bool
	produce    func(ListingFilter) []Clause
}

// Compose runs every applicable strategy and concatenates the fragments.
// Strategies whose trigger does not hold contribute nothing.
func Compose(f ListingFilter, viewerID uuid.UUID) []Clause {
	all := []strategy{
		{applicable: hasUsername, produce: usernameClauses},
		{applicable: hasTitle, produce: titleClauses},
		{applicable: hasConditions, produce: conditionClauses},
		{applicable: hasRarities, produce: rarityClauses},
		{applicable: hasStatuses, produce: statusClauses},
		{applicable: hasCardTypes, produce: cardTypeClauses},
		{applicable: hasRegions, produce: regionClauses},
		{applicable: hasPriceBound, produce: priceClauses},
		// Seller exclusion represents viewer identity, not a search term; it
		// is considered whenever the flag is set and a viewer is known.
		{
			applicable: func(f ListingFilter) bool { return f.ExcludeCurrentUser && viewerID != uuid.Nil },
			produce: func(ListingFilter) []Clause {
				return []Clause{{Field: FieldSellerID, Op: OpNotEq, Value: viewerID}}
			},
		},
	}

	var clauses []Clause
	for _, s := range all {
		if s.applicable(f) {
			clauses = append(clauses, s.produce(f)...)
		}
	}
	return clauses
}

func hasUsername(f ListingFilter) bool   { return f.Username != "" }
func hasTitle(f ListingFilter) bool      { return f.Title != "" }
func hasConditions(f ListingFilter) bool { return len(f.Conditions) > 0 }
func hasRarities(f ListingFilter) bool   { return len(f.Rarities) > 0 }
func hasStatuses(f ListingFilter) bool   { return len(f.ListingStatuses) > 0 }
func hasCardTypes(f ListingFilter) bool  { return len(f.CardTypes) > 0 }
func hasRegions(f ListingFilter) bool    { return len(f.Regions) > 0 }
func hasPriceBound(f ListingFilter) bool { return f.MinPrice != nil || f.MaxPrice != nil }

func usernameClauses(f ListingFilter) []Clause {
	return []Clause{{Field: FieldSellerUsername, Op: OpEq, Value: f.Username}}
}

func titleClauses(f ListingFilter) []Clause {
	return []Clause{{Field: FieldTitle, Op: OpContains, Value: f.Title}}
}

func conditionClauses(f ListingFilter) []Clause {
	return membershipClause(FieldCondition, "card condition", f.Conditions, domain.ConditionFromDisplay)
}

func rarityClauses(f ListingFilter) []Clause {
	return membershipClause(FieldRarity, "rarity", f.Rarities, domain.RarityFromDisplay)
}

func statusClauses(f ListingFilter) []Clause {
	return membershipClause(FieldStatus, "listing status", f.ListingStatuses, domain.StatusFromDisplay)
}

func cardTypeClauses(f ListingFilter) []Clause {
	return membershipClause(FieldCardType, "card type", f.CardTypes, domain.CardTypeFromDisplay)
}

func regionClauses(f ListingFilter) []Clause {
	return membershipClause(FieldSellerRegion, "region", f.Regions, domain.RegionFromDisplay)
}

func priceClauses(f ListingFilter) []Clause {
	var clauses []Clause
	if f.MinPrice != nil {
		clauses = append(clauses, Clause{Field: FieldPrice, Op: OpGte, Value: *f.MinPrice})
	}
	if f.MaxPrice != nil {
		clauses = append(clauses, Clause{Field: FieldPrice, Op: OpLte, Value: *f.MaxPrice})
	}
	return clauses
}

// membershipClause resolves display labels to internal codes and emits an IN
// predicate over the resolved set. Unresolvable tokens are dropped; if every
// token fails to resolve the dimension degrades to unfiltered rather than
// matching nothing.
func membershipClause[T ~string](field, dimension string, labels []string, resolve func(string) (T, error)) []Clause {
	codes := resolveLabels(dimension, labels, resolve)
	if len(codes) == 0 {
		return nil
	}
	return []Clause{{Field: field, Op: OpIn, Value: codes}}
}

// resolveLabels maps free-text display labels to internal codes,
// case-insensitively. Empty labels mean "no filter"; unknown labels are
// logged and skipped.
func resolveLabels[T ~string](dimension string, labels []string, resolve func(string) (T, error)) []T {
	var codes []T
	for _, label := range labels {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		code, err := resolve(label)
		if err != nil {
			log.Debug().Str("dimension", dimension).Str("label", label).Msg("Ignoring unresolvable filter value")
			continue
		}
		codes = append(codes, code)
	}
	return codes
}
