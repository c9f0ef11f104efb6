package entity

import (
	"gorm.io/gorm"
)

const (
	BonusTypeEarned   = "earned"
	BonusTypeSpent    = "spent"
	BonusTypeAdjusted = "adjusted"
)

// BonusTransaction is an append-only ledger entry. Amount is signed:
// positive for earned/adjust-up, negative for spent/adjust-down.
type BonusTransaction struct {
	gorm.Model
	UserID uint `json:"userId" gorm:"index"`
	User   User `json:"-"`

	Amount      int64  `json:"amount"`
	Type        string `json:"type"`
	Description string `json:"description"`
	OrderID     *uint  `json:"orderId,omitempty" gorm:"index"`
}
