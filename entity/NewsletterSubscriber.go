package entity

import (
	"gorm.io/gorm"
)

type NewsletterSubscriber struct {
	gorm.Model
	Email            string `gorm:"uniqueIndex;not null" json:"email"`
	Active           bool   `gorm:"default:true" json:"active"`
	UnsubscribeToken string `gorm:"index" json:"-"`
}
