package services

import (
	"errors"
	"strings"
	"time"

	"github.com/algrishin88/neurocoffee/entity"
	"github.com/algrishin88/neurocoffee/repository"
)

var (
	ErrBookingPast    = errors.New("booking date is in the past")
	ErrBookingInvalid = errors.New("invalid booking request")
)

type BookingService struct {
	Repo *repository.BookingRepository
}

func NewBookingService(repo *repository.BookingRepository) *BookingService {
	return &BookingService{Repo: repo}
}

type BookingReq struct {
	Guests int    `json:"guests" binding:"required,min=1,max=20"`
	Date   string `json:"date" binding:"required"` // YYYY-MM-DD
	Time   string `json:"time" binding:"required"` // HH:MM
	Zone   string `json:"zone"`
	Notes  string `json:"notes"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
}

// Create books a table. userID is nil for anonymous bookings.
func (s *BookingService) Create(userID *uint, req *BookingReq) (*entity.Booking, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrBookingInvalid
	}
	if _, err := time.Parse("15:04", req.Time); err != nil {
		return nil, ErrBookingInvalid
	}
	today := time.Now().Truncate(24 * time.Hour)
	if date.Before(today) {
		return nil, ErrBookingPast
	}

	booking := entity.Booking{
		UserID: userID,
		Guests: req.Guests,
		Date:   date,
		Time:   req.Time,
		Zone:   strings.TrimSpace(req.Zone),
		Notes:  strings.TrimSpace(req.Notes),
		Name:   strings.TrimSpace(req.Name),
		Phone:  strings.TrimSpace(req.Phone),
		Status: "pending",
	}
	if err := s.Repo.Create(&booking); err != nil {
		return nil, err
	}
	return &booking, nil
}

func (s *BookingService) ListForUser(userID uint) ([]entity.Booking, error) {
	return s.Repo.ListForUser(userID)
}
