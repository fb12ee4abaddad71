package search

import (
	"context"
	"fmt"
	"math"

	"cardtrade-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// CartReader supplies the viewer's current cart listing-id set. A viewer
// without a cart yields an empty set, not an error.
type CartReader interface {
	ListingIDs(ctx context.Context, userID uuid.UUID) (map[uuid.UUID]struct{}, error)
}

// Service orchestrates filter -> predicate -> sort -> page -> execute ->
// enrich. It is stateless and reentrant; every call builds and discards its
// own plan.
type Service struct {
	DB    *gorm.DB
	Carts CartReader
}

// PagedListings is the search response: metadata from the executed query
// plus ordered per-listing summaries.
type PagedListings struct {
	Listings      []ListingSummary `json:"listings"`
	TotalElements int64            `json:"total_elements"`
	TotalPages    int              `json:"total_pages"`
	CurrentPage   int              `json:"current_page"`
	PageSize      int              `json:"page_size"`
}

// Search executes one filtered, sorted, paginated listing query and enriches
// the page for the viewer. viewerID may be uuid.Nil for unauthenticated
// searches, in which case exclusion and enrichment are no-ops.
func (s *Service) Search(ctx context.Context, f ListingFilter, viewerID uuid.UUID) (*PagedListings, error) {
	plan, err := BuildPlan(f, viewerID)
	if err != nil {
		return nil, err
	}

	var total int64
	if err := plan.Scope(s.DB.WithContext(ctx).Model(&domain.Listing{})).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("%w: count failed: %v", ErrStorage, err)
	}

	var rows []domain.Listing
	err = plan.Scope(s.DB.WithContext(ctx).Model(&domain.Listing{})).
		Select("listings.*").
		Order(plan.Sort.OrderClause()).
		Limit(plan.Page.Size).
		Offset(plan.Page.Offset()).
		Preload("Seller").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("%w: query failed: %v", ErrStorage, err)
	}

	cartIDs := map[uuid.UUID]struct{}{}
	if f.ExcludeCurrentUser && viewerID != uuid.Nil && s.Carts != nil {
		ids, err := s.Carts.ListingIDs(ctx, viewerID)
		if err != nil {
			// Cart unavailability never fails a search.
			log.Debug().Err(err).Str("viewer", viewerID.String()).Msg("Cart lookup failed; treating as empty")
		} else {
			cartIDs = ids
		}
	}

	summaries, err := Summaries(rows, viewerID, cartIDs, f.ExcludeCurrentUser)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(plan.Page.Size)))
	}

	return &PagedListings{
		Listings:      summaries,
		TotalElements: total,
		TotalPages:    totalPages,
		CurrentPage:   plan.Page.Number,
		PageSize:      plan.Page.Size,
	}, nil
}
