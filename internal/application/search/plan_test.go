package search

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }

func TestResolveSort_Defaults(t *testing.T) {
	s := resolveSort("", "")
	assert.Equal(t, "listings.created_at", s.Field)
	assert.False(t, s.Desc)
}

func TestResolveSort_KnownKeys(t *testing.T) {
	assert.Equal(t, "listings.price", resolveSort("price", "").Field)
	assert.Equal(t, "listings.rarity_rank", resolveSort("Rarity", "").Field)
	assert.Equal(t, "listings.condition_rank", resolveSort("CONDITION", "").Field)
}

func TestResolveSort_UnknownKeyFallsBack(t *testing.T) {
	assert.Equal(t, "listings.created_at", resolveSort("popularity", "desc").Field)
}

func TestResolveSort_DescOnlyOnExactToken(t *testing.T) {
	assert.True(t, resolveSort("price", "desc").Desc)
	assert.True(t, resolveSort("price", "DESC").Desc)
	assert.False(t, resolveSort("price", "descending").Desc)
	assert.False(t, resolveSort("price", "asc").Desc)
	assert.False(t, resolveSort("price", "").Desc)
}

func TestOrderClause_AppendsIDTieBreak(t *testing.T) {
	assert.Equal(t, "listings.price DESC, listings.id ASC", SortSpec{Field: "listings.price", Desc: true}.OrderClause())
	assert.Equal(t, "listings.created_at ASC, listings.id ASC", SortSpec{Field: "listings.created_at"}.OrderClause())
}

func TestResolvePage_Defaults(t *testing.T) {
	p, err := resolvePage("", "")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Number)
	assert.Equal(t, 100, p.Size)
}

func TestResolvePage_Malformed(t *testing.T) {
	_, err := resolvePage("abc", "")
	assert.True(t, errors.Is(err, ErrInvalidRequest))

	_, err = resolvePage("", "ten")
	assert.True(t, errors.Is(err, ErrInvalidRequest))

	_, err = resolvePage("-1", "")
	assert.True(t, errors.Is(err, ErrInvalidRequest))

	_, err = resolvePage("", "0")
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestResolvePage_Offset(t *testing.T) {
	p, err := resolvePage("3", "25")
	require.NoError(t, err)
	assert.Equal(t, 75, p.Offset())
}

func TestBuildPlan_PriceRangeInverted(t *testing.T) {
	_, err := BuildPlan(ListingFilter{MinPrice: floatPtr(50), MaxPrice: floatPtr(10)}, uuid.Nil)
	assert.True(t, errors.Is(err, ErrInvalidRequest))
}

func TestBuildPlan_EqualBoundsAllowed(t *testing.T) {
	plan, err := BuildPlan(ListingFilter{MinPrice: floatPtr(10), MaxPrice: floatPtr(10)}, uuid.Nil)
	require.NoError(t, err)
	assert.Len(t, plan.Clauses, 2)
}

func TestCompose_EmptyFilterHasNoClauses(t *testing.T) {
	assert.Empty(t, Compose(ListingFilter{}, uuid.Nil))
}

func TestCompose_TitleIsCaseInsensitiveSubstring(t *testing.T) {
	clauses := Compose(ListingFilter{Title: "Charizard"}, uuid.Nil)
	require.Len(t, clauses, 1)
	assert.Equal(t, "LOWER(listings.title) LIKE ?", clauses[0].SQL())
	assert.Equal(t, "%charizard%", clauses[0].Arg())
}

func TestCompose_UnresolvableLabelsDropDimension(t *testing.T) {
	// A dimension whose every label fails to resolve contributes nothing,
	// so the result set matches an unfiltered query on that dimension.
	clauses := Compose(ListingFilter{Rarities: []string{"Nonexistent Rarity", "  "}}, uuid.Nil)
	assert.Empty(t, clauses)
}

func TestCompose_MixedLabelsKeepResolvable(t *testing.T) {
	clauses := Compose(ListingFilter{Conditions: []string{"brand new", "Bogus", "Like New"}}, uuid.Nil)
	require.Len(t, clauses, 1)
	assert.Equal(t, FieldCondition, clauses[0].Field)
	assert.Equal(t, OpIn, clauses[0].Op)
}

func TestCompose_SellerExclusionNeedsViewer(t *testing.T) {
	assert.Empty(t, Compose(ListingFilter{ExcludeCurrentUser: true}, uuid.Nil))

	viewer := uuid.New()
	clauses := Compose(ListingFilter{ExcludeCurrentUser: true}, viewer)
	require.Len(t, clauses, 1)
	assert.Equal(t, FieldSellerID, clauses[0].Field)
	assert.Equal(t, OpNotEq, clauses[0].Op)
	assert.Equal(t, viewer, clauses[0].Value)
}

func TestCompose_Deterministic(t *testing.T) {
	f := ListingFilter{
		Title:      "pikachu",
		Conditions: []string{"Brand New"},
		Regions:    []string{"West Region", "East Region"},
		MinPrice:   floatPtr(5),
	}
	first := Compose(f, uuid.Nil)
	second := Compose(f, uuid.Nil)
	assert.Equal(t, first, second)
}
