package entity

import (
	"gorm.io/gorm"
)

type SupportMessage struct {
	gorm.Model
	ChatID uint        `json:"chatId" gorm:"index"`
	Chat   SupportChat `json:"-"`

	Role    string `gorm:"not null" json:"role"` // user | assistant | system
	Message string `gorm:"not null" json:"message"`
}
