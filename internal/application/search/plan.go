package search

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Op is a clause operator.
type Op string

const (
	OpEq       Op = "eq"
	OpNotEq    Op = "neq"
	OpGte      Op = "gte"
	OpLte      Op = "lte"
	OpIn       Op = "in"
	OpContains Op = "contains" // case-insensitive substring
)

// Qualified column names over the listings/users join.
const (
	FieldTitle          = "listings.title"
	FieldPrice          = "listings.price"
	FieldCondition      = "listings.card_condition"
	FieldCardType       = "listings.card_type"
	FieldRarity         = "listings.rarity"
	FieldStatus         = "listings.status"
	FieldSellerID       = "listings.seller_id"
	FieldSellerUsername = "users.username"
	FieldSellerRegion   = "users.region"
)

// Clause is one deferred boolean condition over the joined listing row.
// Clauses are inspectable so a plan can be unit-tested without a database.
type Clause struct {
	Field string
	Op    Op
	Value interface{}
}

// SQL returns the parameterized condition for this clause.
func (c Clause) SQL() string {
	switch c.Op {
	case OpEq:
		return c.Field + " = ?"
	case OpNotEq:
		return c.Field + " <> ?"
	case OpGte:
		return c.Field + " >= ?"
	case OpLte:
		return c.Field + " <= ?"
	case OpIn:
		return c.Field + " IN ?"
	case OpContains:
		return "LOWER(" + c.Field + ") LIKE ?"
	default:
		return ""
	}
}

// Arg returns the bind value for this clause.
func (c Clause) Arg() interface{} {
	if c.Op == OpContains {
		return "%" + strings.ToLower(fmt.Sprintf("%v", c.Value)) + "%"
	}
	return c.Value
}

// Plan is the composed query: AND of all clauses plus a resolved sort and
// page. An empty clause list is an unconditioned scan, not a no-op filter.
type Plan struct {
	Clauses []Clause
	Sort    SortSpec
	Page    PageSpec
}

// BuildPlan validates the filter and composes the applicable strategies'
// fragments. Dimension-level resolution failures degrade to "unfiltered";
// pagination and range errors fail the whole plan.
func BuildPlan(f ListingFilter, viewerID uuid.UUID) (Plan, error) {
	page, err := resolvePage(f.Page, f.Size)
	if err != nil {
		return Plan{}, err
	}
	if f.MinPrice != nil && f.MaxPrice != nil && *f.MinPrice > *f.MaxPrice {
		return Plan{}, fmt.Errorf("%w: min_price %v exceeds max_price %v", ErrInvalidRequest, *f.MinPrice, *f.MaxPrice)
	}
	return Plan{
		Clauses: Compose(f, viewerID),
		Sort:    resolveSort(f.SortBy, f.SortOrder),
		Page:    page,
	}, nil
}

// Scope applies the plan's predicate to a listings query. The users join is
// always present so seller-relation clauses resolve. No projection is forced
// here; GORM's Count rewrites a custom select into invalid SQL, so row
// queries narrow to listings columns at the call site instead.
func (p Plan) Scope(db *gorm.DB) *gorm.DB {
	q := db.Joins("JOIN users ON users.id = listings.seller_id")
	for _, c := range p.Clauses {
		q = q.Where(c.SQL(), c.Arg())
	}
	return q
}
