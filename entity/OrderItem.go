package entity

import (
	"gorm.io/gorm"
)

type OrderItem struct {
	gorm.Model
	OrderID uint  `json:"orderId" gorm:"index"`
	Order   Order `json:"-"`

	// Snapshot of the cart line at checkout time; price is frozen here and
	// decoupled from later menu price changes.
	ItemID   uint   `json:"itemId"`
	Name     string `json:"name"`
	Price    int64  `json:"price"`
	Size     string `json:"size"`
	Image    string `json:"image"`
	Quantity int    `json:"quantity" gorm:"default:1"`
	Recipe   string `json:"recipe"` // set on the neuro-coffee line only
}
