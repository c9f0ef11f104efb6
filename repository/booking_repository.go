package repository

import (
	"github.com/algrishin88/neurocoffee/entity"
	"gorm.io/gorm"
)

type BookingRepository struct{ DB *gorm.DB }

func NewBookingRepository(db *gorm.DB) *BookingRepository { return &BookingRepository{DB: db} }

func (r *BookingRepository) Create(b *entity.Booking) error {
	return r.DB.Create(b).Error
}

func (r *BookingRepository) ListForUser(userID uint) ([]entity.Booking, error) {
	var bookings []entity.Booking
	err := r.DB.Where("user_id = ?", userID).
		Order("date DESC").
		Find(&bookings).Error
	return bookings, err
}
