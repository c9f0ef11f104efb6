package entity

import (
	"gorm.io/gorm"
)

type SupportChat struct {
	gorm.Model
	UserID    *uint  `json:"userId,omitempty"`
	UserName  string `json:"userName"`
	UserEmail string `json:"userEmail"`
	Status    string `gorm:"default:bot" json:"status"`

	Messages []SupportMessage `json:"messages" gorm:"foreignKey:ChatID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
