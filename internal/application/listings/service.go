package listings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cardtrade-backend/internal/application/notifications"
	"cardtrade-backend/internal/application/search"
	"cardtrade-backend/internal/domain"
	"cardtrade-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Service owns listing writes and the non-search read paths. The search
// engine itself lives in application/search.
type Service struct {
	DB            *gorm.DB
	Notifications *notifications.Service
}

// CreateListingInput carries display-labelled enum fields as received from
// the client; resolution failures reject the create.
type CreateListingInput struct {
	Title         string
	CardCondition string
	CardType      string
	Rarity        string
	Price         float64
	Images        []string
	Description   string
}

func (s *Service) CreateListing(ctx context.Context, sellerID uuid.UUID, in CreateListingInput) (*domain.Listing, error) {
	if !validation.IsValidListingTitle(in.Title) {
		return nil, errors.New("Invalid listing title")
	}
	if !validation.IsValidPrice(in.Price) {
		return nil, errors.New("Invalid price")
	}
	if len(in.Images) == 0 {
		return nil, errors.New("Listing must have at least one image")
	}
	condition, err := domain.ConditionFromDisplay(in.CardCondition)
	if err != nil {
		return nil, err
	}
	cardType, err := domain.CardTypeFromDisplay(in.CardType)
	if err != nil {
		return nil, err
	}
	rarity, err := domain.RarityFromDisplay(in.Rarity)
	if err != nil {
		return nil, err
	}

	var seller domain.User
	if err := s.DB.WithContext(ctx).Where("id = ?", sellerID).First(&seller).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("User not found")
		}
		return nil, err
	}

	listing := &domain.Listing{
		Title:         in.Title,
		CardCondition: condition,
		CardType:      cardType,
		Rarity:        rarity,
		Price:         in.Price,
		Images:        domain.ImageList(in.Images),
		Status:        domain.StatusActive,
		Description:   in.Description,
		SellerID:      seller.ID,
	}
	if err := s.DB.WithContext(ctx).Create(listing).Error; err != nil {
		return nil, fmt.Errorf("Failed to create listing: %v", err)
	}
	return listing, nil
}

// UpdateListingInput holds the full editable field set; unchanged fields are
// detected, not re-written.
type UpdateListingInput struct {
	Title         string
	CardCondition string
	CardType      string
	Rarity        string
	Price         float64
	Images        []string
	Description   string
}

// UpdateListing applies the changed fields of in to an owned listing and
// reports which fields changed.
func (s *Service) UpdateListing(ctx context.Context, listingID, sellerID uuid.UUID, in UpdateListingInput) ([]string, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("id = ?", listingID).First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("Listing not found")
		}
		return nil, err
	}
	if listing.SellerID != sellerID {
		return nil, errors.New("You are not allowed to update this listing")
	}
	if !validation.IsValidListingTitle(in.Title) {
		return nil, errors.New("Invalid listing title")
	}
	if !validation.IsValidPrice(in.Price) {
		return nil, errors.New("Invalid price")
	}
	if len(in.Images) == 0 {
		return nil, errors.New("Listing must have at least one image")
	}
	condition, err := domain.ConditionFromDisplay(in.CardCondition)
	if err != nil {
		return nil, err
	}
	cardType, err := domain.CardTypeFromDisplay(in.CardType)
	if err != nil {
		return nil, err
	}
	rarity, err := domain.RarityFromDisplay(in.Rarity)
	if err != nil {
		return nil, err
	}

	var changes []string
	if listing.Title != in.Title {
		listing.Title = in.Title
		changes = append(changes, "Title")
	}
	if listing.CardCondition != condition {
		listing.CardCondition = condition
		changes = append(changes, "Card Condition")
	}
	if listing.CardType != cardType {
		listing.CardType = cardType
		changes = append(changes, "Card Type")
	}
	if listing.Rarity != rarity {
		listing.Rarity = rarity
		changes = append(changes, "Rarity")
	}
	if listing.Price != in.Price {
		listing.Price = in.Price
		changes = append(changes, "Price")
	}
	if !equalImages(listing.Images, in.Images) {
		listing.Images = domain.ImageList(in.Images)
		changes = append(changes, "Images")
	}
	if listing.Description != in.Description {
		listing.Description = in.Description
		changes = append(changes, "Description")
	}

	if len(changes) == 0 {
		return nil, nil
	}
	if err := s.DB.WithContext(ctx).Save(&listing).Error; err != nil {
		return nil, fmt.Errorf("Failed to update listing: %v", err)
	}
	log.Info().Str("listing_id", listingID.String()).Strs("changes", changes).Msg("Listing updated")
	return changes, nil
}

// MarkSold transitions an active listing to sold and notifies users holding
// it in their carts. Notification failure does not undo the transition.
func (s *Service) MarkSold(ctx context.Context, listingID, sellerID uuid.UUID) error {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("id = ?", listingID).Preload("Seller").First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("Listing not found")
		}
		return err
	}
	if listing.SellerID != sellerID {
		return errors.New("You are not allowed to update this listing")
	}
	if listing.Status != domain.StatusActive {
		return errors.New("Listing is not active")
	}

	if err := s.DB.WithContext(ctx).Model(&listing).Update("status", domain.StatusSold).Error; err != nil {
		return fmt.Errorf("Failed to mark listing as sold: %v", err)
	}

	if s.Notifications != nil {
		sellerName := ""
		if listing.Seller != nil {
			sellerName = listing.Seller.Username
		}
		if _, err := s.Notifications.NotifyListingSold(ctx, &listing, sellerName); err != nil {
			log.Warn().Err(err).Str("listing_id", listingID.String()).Msg("Sold notification fan-out failed")
		}
	}
	return nil
}

// DeleteListing soft-deletes an owned listing; the row stays for history.
func (s *Service) DeleteListing(ctx context.Context, listingID, sellerID uuid.UUID) error {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("id = ?", listingID).First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New("Listing not found")
		}
		return err
	}
	if listing.SellerID != sellerID {
		return errors.New("You are not allowed to delete this listing")
	}
	if err := s.DB.WithContext(ctx).Model(&listing).Update("status", domain.StatusDeleted).Error; err != nil {
		return fmt.Errorf("Failed to delete listing: %v", err)
	}
	return nil
}

// ListingDetails is the single-listing read view.
type ListingDetails struct {
	ID             uuid.UUID `json:"id"`
	Title          string    `json:"title"`
	CardCondition  string    `json:"card_condition"`
	CardType       string    `json:"card_type"`
	Rarity         string    `json:"rarity"`
	Status         string    `json:"status"`
	Price          float64   `json:"price"`
	Images         []string  `json:"images"`
	Description    string    `json:"description"`
	SellerUsername string    `json:"seller_username"`
	SellerRegion   string    `json:"seller_region"`
	ListedOn       time.Time `json:"listed_on"`
}

func (s *Service) GetListingDetails(ctx context.Context, listingID uuid.UUID) (*ListingDetails, error) {
	var listing domain.Listing
	if err := s.DB.WithContext(ctx).Where("id = ?", listingID).Preload("Seller").First(&listing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("Listing not found")
		}
		return nil, err
	}
	if len(listing.Images) == 0 || listing.Seller == nil {
		return nil, errors.New("Listing is missing images or seller")
	}
	return &ListingDetails{
		ID:             listing.ID,
		Title:          listing.Title,
		CardCondition:  listing.CardCondition.DisplayName(),
		CardType:       listing.CardType.DisplayName(),
		Rarity:         listing.Rarity.DisplayName(),
		Status:         listing.Status.DisplayName(),
		Price:          listing.Price,
		Images:         listing.Images,
		Description:    listing.Description,
		SellerUsername: listing.Seller.Username,
		SellerRegion:   listing.Seller.Region.DisplayName(),
		ListedOn:       listing.CreatedAt,
	}, nil
}

// SellerListings is the public profile view: the seller plus their listings.
type SellerListings struct {
	Username string                  `json:"username"`
	Region   string                  `json:"region"`
	Listings []search.ListingSummary `json:"listings"`
}

// GetListingsBySeller returns all of a seller's listings, newest first,
// without viewer enrichment.
func (s *Service) GetListingsBySeller(ctx context.Context, username string) (*SellerListings, error) {
	var seller domain.User
	if err := s.DB.WithContext(ctx).Where("LOWER(username) = LOWER(?)", username).First(&seller).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("User not found")
		}
		return nil, err
	}

	var rows []domain.Listing
	err := s.DB.WithContext(ctx).
		Where("seller_id = ?", seller.ID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Seller = &seller
	}

	summaries, err := search.Summaries(rows, uuid.Nil, nil, false)
	if err != nil {
		return nil, err
	}
	return &SellerListings{
		Username: seller.Username,
		Region:   seller.Region.DisplayName(),
		Listings: summaries,
	}, nil
}

func equalImages(a domain.ImageList, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
