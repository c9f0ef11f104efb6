package entity

import (
	"gorm.io/gorm"
)

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"

	PaymentMethodSBP = "sbp"

	DeliveryTypePickup   = "self_pickup"
	DeliveryTypeDelivery = "delivery"
)

type Order struct {
	gorm.Model
	UserID uint `json:"userId" gorm:"index"`
	User   User `json:"-"` // preload only for admin listings

	Total int64 `json:"total"` // immutable once created

	Status          string `gorm:"default:pending;index" json:"status"`
	DeliveryType    string `gorm:"default:self_pickup" json:"deliveryType"`
	DeliveryAddress string `json:"deliveryAddress"`
	Phone           string `json:"phone"`
	Notes           string `json:"notes"`
	Recipe          string `json:"recipe"` // neuro-coffee recipe JSON, order level

	PaymentMethod     string `gorm:"default:sbp" json:"paymentMethod"`
	PaymentStatus     string `gorm:"default:pending;index" json:"paymentStatus"`
	YookassaPaymentID string `json:"yookassaPaymentId"`

	Items []OrderItem `json:"items" gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
