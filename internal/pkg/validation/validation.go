package validation

import (
	"math"
	"regexp"
	"strings"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Mobile numbers: digits with optional leading +, 8 to 15 digits.
var mobileRe = regexp.MustCompile(`^\+?[0-9]{8,15}$`)

const maxTitleLength = 120

func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

func IsValidMobileNumber(mobile string) bool {
	return mobileRe.MatchString(mobile)
}

// IsValidListingTitle requires a non-blank title within the column bound.
func IsValidListingTitle(title string) bool {
	trimmed := strings.TrimSpace(title)
	return trimmed != "" && len(trimmed) <= maxTitleLength
}

// IsValidPrice requires a finite, positive amount.
func IsValidPrice(price float64) bool {
	return !math.IsNaN(price) && !math.IsInf(price, 0) && price > 0
}
