package entity

import (
	"gorm.io/gorm"
)

type CartItem struct {
	gorm.Model
	CartID uint `json:"cartId" gorm:"uniqueIndex:idx_cart_item_size"`
	Cart   Cart `json:"-"`

	// ItemID is the public catalog number, not a MenuItem FK — the line is a
	// priced snapshot that survives menu edits.
	ItemID   uint   `json:"itemId" gorm:"uniqueIndex:idx_cart_item_size"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Size     string `json:"size" gorm:"uniqueIndex:idx_cart_item_size"`
	Image    string `json:"image"`
	Quantity int    `json:"quantity" gorm:"default:1"`
}
