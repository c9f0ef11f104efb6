package entity

import (
	"time"

	"gorm.io/gorm"
)

type Booking struct {
	gorm.Model
	// Nullable — anonymous bookings are allowed.
	UserID *uint `json:"userId,omitempty" gorm:"index"`
	User   *User `json:"-"`

	Guests int       `gorm:"not null" json:"guests"`
	Date   time.Time `gorm:"not null;index" json:"date"`
	Time   string    `gorm:"not null" json:"time"`
	Zone   string    `json:"zone"`
	Notes  string    `json:"notes"`
	Name   string    `json:"name"`
	Phone  string    `json:"phone"`
	Status string    `gorm:"default:pending;index" json:"status"`
}
