package entity

import (
	"gorm.io/gorm"
)

// NeuroCoffeeItemID is the reserved catalog number for the AI-generated
// drink. It is the only item allowed to carry a non-catalog price.
const NeuroCoffeeItemID uint = 7

type MenuItem struct {
	gorm.Model
	// ItemID is the stable public catalog number used by the frontend and
	// by cart/order lines.
	ItemID      uint   `gorm:"uniqueIndex;not null" json:"itemId"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `gorm:"default:coffee" json:"category"`
	Available   bool   `json:"available"`

	Sizes []MenuItemSize `json:"sizes" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
