package search

import (
	"fmt"
	"time"

	"cardtrade-backend/internal/domain"

	"github.com/google/uuid"
)

// ListingSummary is the per-viewer read projection of a listing. It is
// recomputed on every request and never persisted.
type ListingSummary struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	CardCondition  string    `json:"card_condition"`
	CardType       string    `json:"card_type"`
	Rarity         string    `json:"rarity"`
	Status         string    `json:"status"`
	Price          float64   `json:"price"`
	MainImage      string    `json:"main_image"`
	Images         []string  `json:"images"`
	SellerUsername string    `json:"seller_username"`
	SellerRegion   string    `json:"seller_region"`
	Description    string    `json:"description"`
	ListedOn       time.Time `json:"listed_on"`
	InCart         bool      `json:"in_cart"`
}

// Summaries projects an executed page into viewer-relative summaries,
// preserving input order. When the exclusion flag is set, the viewer's own
// listings never report in-cart membership. Neither the listings nor the
// cart set are mutated.
func Summaries(listings []domain.Listing, viewerID uuid.UUID, cartIDs map[uuid.UUID]struct{}, excludeViewer bool) ([]ListingSummary, error) {
	out := make([]ListingSummary, 0, len(listings))
	for _, l := range listings {
		_, inCart := cartIDs[l.ID]
		if excludeViewer && l.SellerID == viewerID {
			inCart = false
		}
		summary, err := newSummary(l, inCart)
		if err != nil {
			return nil, err
		}
		out = append(out, summary)
	}
	return out, nil
}

func newSummary(l domain.Listing, inCart bool) (ListingSummary, error) {
	if len(l.Images) == 0 {
		return ListingSummary{}, fmt.Errorf("listing %s has no images", l.ID)
	}
	if l.Seller == nil {
		return ListingSummary{}, fmt.Errorf("listing %s has no seller loaded", l.ID)
	}
	return ListingSummary{
		ID:             l.ID,
		Title:          l.Title,
		CardCondition:  l.CardCondition.DisplayName(),
		CardType:       l.CardType.DisplayName(),
		Rarity:         l.Rarity.DisplayName(),
		Status:         l.Status.DisplayName(),
		Price:          l.Price,
		MainImage:      l.Images[0],
		Images:         l.Images,
		SellerUsername: l.Seller.Username,
		SellerRegion:   l.Seller.Region.DisplayName(),
		Description:    l.Description,
		ListedOn:       l.CreatedAt,
		InCart:         inCart,
	}, nil
}
