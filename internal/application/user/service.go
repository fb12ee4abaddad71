package user

import (
	"context"
	"errors"

	"cardtrade-backend/internal/domain"
	"cardtrade-backend/internal/pkg/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service exposes the profile read/update surface. Account creation and
// credentials belong to the external auth system.
type Service struct {
	DB *gorm.DB
}

// UserDetails is the profile view returned to clients.
type UserDetails struct {
	ID           uuid.UUID `json:"id"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobile_number"`
	Region       string    `json:"region"`
}

func (s *Service) GetUserDetails(ctx context.Context, userID uuid.UUID) (*UserDetails, error) {
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("User not found")
		}
		return nil, err
	}
	return &UserDetails{
		ID:           u.ID,
		Username:     u.Username,
		Name:         u.Name,
		Email:        u.Email,
		MobileNumber: u.MobileNumber,
		Region:       u.Region.DisplayName(),
	}, nil
}

// UpdateProfileInput carries the editable profile fields; empty fields are
// left untouched.
type UpdateProfileInput struct {
	Name         string
	Email        string
	MobileNumber string
	Region       string // display label
}

// UpdateProfile applies the provided fields and reports which changed.
func (s *Service) UpdateProfile(ctx context.Context, userID uuid.UUID, in UpdateProfileInput) ([]string, error) {
	var u domain.User
	if err := s.DB.WithContext(ctx).Where("id = ?", userID).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New("User not found")
		}
		return nil, err
	}

	var changes []string
	if in.Name != "" && in.Name != u.Name {
		u.Name = in.Name
		changes = append(changes, "Name")
	}
	if in.Email != "" && in.Email != u.Email {
		if !validation.IsValidEmail(in.Email) {
			return nil, errors.New("Invalid email")
		}
		u.Email = in.Email
		changes = append(changes, "Email")
	}
	if in.MobileNumber != "" && in.MobileNumber != u.MobileNumber {
		if !validation.IsValidMobileNumber(in.MobileNumber) {
			return nil, errors.New("Invalid mobile number")
		}
		u.MobileNumber = in.MobileNumber
		changes = append(changes, "Mobile Number")
	}
	if in.Region != "" {
		region, err := domain.RegionFromDisplay(in.Region)
		if err != nil {
			return nil, err
		}
		if region != u.Region {
			u.Region = region
			changes = append(changes, "Region")
		}
	}

	if len(changes) == 0 {
		return nil, nil
	}
	if err := s.DB.WithContext(ctx).Save(&u).Error; err != nil {
		return nil, err
	}
	return changes, nil
}
