package entity

import (
	"time"

	"gorm.io/gorm"
)

// BonusOutbox is written in the same transaction as the order; a background
// worker credits the points later. One row per order.
type BonusOutbox struct {
	gorm.Model
	OrderID uint  `json:"orderId" gorm:"uniqueIndex"`
	UserID  uint  `json:"userId"`
	Points  int64 `json:"points"`

	ProcessedAt *time.Time `json:"processedAt,omitempty" gorm:"index"`
	Attempts    int        `json:"attempts"`
}
