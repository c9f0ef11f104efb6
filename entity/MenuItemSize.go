package entity

import (
	"gorm.io/gorm"
)

type MenuItemSize struct {
	gorm.Model
	MenuItemID uint     `json:"menuItemId" gorm:"index"`
	MenuItem   MenuItem `json:"-"`

	Size  string `json:"size"`
	Price int64  `json:"price"`
}
