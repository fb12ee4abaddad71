package domain

import (
	"fmt"
	"strings"
)

// CardCondition is the physical condition of a listed card.
type CardCondition string

const (
	ConditionBrandNew    CardCondition = "BRAND_NEW"
	ConditionLikeNew     CardCondition = "LIKE_NEW"
	ConditionLightlyUsed CardCondition = "LIGHTLY_USED"
	ConditionWellUsed    CardCondition = "WELL_USED"
	ConditionHeavilyUsed CardCondition = "HEAVILY_USED"
	ConditionDamaged     CardCondition = "DAMAGED"
)

var conditionDisplayNames = map[CardCondition]string{
	ConditionBrandNew:    "Brand New",
	ConditionLikeNew:     "Like New",
	ConditionLightlyUsed: "Lightly Used",
	ConditionWellUsed:    "Well Used",
	ConditionHeavilyUsed: "Heavily Used",
	ConditionDamaged:     "Damage",
}

// conditionRanks orders conditions best-first for the "condition" sort key.
var conditionRanks = map[CardCondition]int{
	ConditionBrandNew:    1,
	ConditionLikeNew:     2,
	ConditionLightlyUsed: 3,
	ConditionWellUsed:    4,
	ConditionHeavilyUsed: 5,
	ConditionDamaged:     6,
}

func (c CardCondition) DisplayName() string { return conditionDisplayNames[c] }

// Rank returns the orderable projection persisted in condition_rank.
func (c CardCondition) Rank() int { return conditionRanks[c] }

// ConditionFromDisplay resolves a display label case-insensitively.
func ConditionFromDisplay(label string) (CardCondition, error) {
	for code, name := range conditionDisplayNames {
		if strings.EqualFold(name, label) {
			return code, nil
		}
	}
	return "", fmt.Errorf("unknown card condition: %q", label)
}

// CardType distinguishes the two card categories sold on the marketplace.
type CardType string

const (
	TypePokemonCard CardType = "POKEMON_CARD"
	TypeTrainerCard CardType = "TRAINER_CARD"
)

var cardTypeDisplayNames = map[CardType]string{
	TypePokemonCard: "Pokemon Card",
	TypeTrainerCard: "Trainer Card",
}

func (t CardType) DisplayName() string { return cardTypeDisplayNames[t] }

func CardTypeFromDisplay(label string) (CardType, error) {
	for code, name := range cardTypeDisplayNames {
		if strings.EqualFold(name, label) {
			return code, nil
		}
	}
	return "", fmt.Errorf("unknown card type: %q", label)
}

// Rarity is the print rarity of a card.
type Rarity string

const (
	RarityCommon              Rarity = "COMMON"
	RarityUncommon            Rarity = "UNCOMMON"
	RarityRare                Rarity = "RARE"
	RarityDoubleRare          Rarity = "DOUBLE_RARE"
	RarityIllustrationRare    Rarity = "ILLUSTRATION_RARE"
	RaritySpecialIllustration Rarity = "SPECIAL_ILLUSTRATION_RARE"
	RarityHyperRare           Rarity = "HYPER_RARE"
)

var rarityDisplayNames = map[Rarity]string{
	RarityCommon:              "Common",
	RarityUncommon:            "Uncommon",
	RarityRare:                "Rare",
	RarityDoubleRare:          "Double Rare",
	RarityIllustrationRare:    "Illustration Rare",
	RaritySpecialIllustration: "Special Illustration Rare",
	RarityHyperRare:           "Hyper Rare",
}

var rarityRanks = map[Rarity]int{
	RarityCommon:              1,
	RarityUncommon:            2,
	RarityRare:                3,
	RarityDoubleRare:          4,
	RarityIllustrationRare:    5,
	RaritySpecialIllustration: 6,
	RarityHyperRare:           7,
}

func (r Rarity) DisplayName() string { return rarityDisplayNames[r] }

// Rank returns the orderable projection persisted in rarity_rank.
func (r Rarity) Rank() int { return rarityRanks[r] }

func RarityFromDisplay(label string) (Rarity, error) {
	for code, name := range rarityDisplayNames {
		if strings.EqualFold(name, label) {
			return code, nil
		}
	}
	return "", fmt.Errorf("unknown rarity: %q", label)
}

// ListingStatus is a soft-delete lifecycle marker; rows are never removed.
type ListingStatus string

const (
	StatusActive  ListingStatus = "ACTIVE"
	StatusSold    ListingStatus = "SOLD"
	StatusDeleted ListingStatus = "DELETED"
)

var statusDisplayNames = map[ListingStatus]string{
	StatusActive:  "Active",
	StatusSold:    "Sold",
	StatusDeleted: "Deleted",
}

func (s ListingStatus) DisplayName() string { return statusDisplayNames[s] }

func StatusFromDisplay(label string) (ListingStatus, error) {
	for code, name := range statusDisplayNames {
		if strings.EqualFold(name, label) {
			return code, nil
		}
	}
	return "", fmt.Errorf("unknown listing status: %q", label)
}

// Region is the seller's pickup region.
type Region string

const (
	RegionCentral   Region = "CENTRAL_REGION"
	RegionNorth     Region = "NORTH_REGION"
	RegionEast      Region = "EAST_REGION"
	RegionNorthEast Region = "NORTH_EAST_REGION"
	RegionWest      Region = "WEST_REGION"
)

var regionDisplayNames = map[Region]string{
	RegionCentral:   "Central Region",
	RegionNorth:     "North Region",
	RegionEast:      "East Region",
	RegionNorthEast: "North East Region",
	RegionWest:      "West Region",
}

func (r Region) DisplayName() string { return regionDisplayNames[r] }

func RegionFromDisplay(label string) (Region, error) {
	for code, name := range regionDisplayNames {
		if strings.EqualFold(name, label) {
			return code, nil
		}
	}
	return "", fmt.Errorf("unknown region: %q", label)
}
