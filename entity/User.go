package entity

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Email       string  `gorm:"uniqueIndex;not null" json:"email"`
	Password    string  `json:"-"`
	FirstName   string  `json:"firstName"`
	LastName    string  `json:"lastName"`
	Phone       string  `json:"phone"`
	YandexID    *string `gorm:"uniqueIndex" json:"-"`
	Role        string  `gorm:"not null;default:user" json:"role"`
	Newsletter  bool    `gorm:"default:false" json:"newsletter"`
	BonusPoints int64   `gorm:"default:0" json:"bonusPoints"`

	BirthDate   *time.Time `json:"birthDate,omitempty"`
	Preferences string     `json:"preferences"`
	Bio         string     `json:"bio"`

	EmailNotifications bool `gorm:"default:true" json:"emailNotifications"`
	SmsNotifications   bool `gorm:"default:false" json:"smsNotifications"`
	OrderUpdates       bool `gorm:"default:true" json:"orderUpdates"`

	// Relations — preload only when needed
	Orders            []Order            `json:"-"`
	Bookings          []Booking          `json:"-"`
	BonusTransactions []BonusTransaction `json:"-"`
}
