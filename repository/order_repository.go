package repository

import (
	"github.com/algrishin88/neurocoffee/entity"
	"gorm.io/gorm"
)

type OrderRepository struct{ DB *gorm.DB }

func NewOrderRepository(db *gorm.DB) *OrderRepository { return &OrderRepository{DB: db} }

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderItems(tx *gorm.DB, items []entity.OrderItem) error {
	return tx.Create(&items).Error
}

func (r *OrderRepository) ListForUser(userID uint) ([]entity.Order, error) {
	var orders []entity.Order
	err := r.DB.Where("user_id = ?", userID).
		Preload("Items").
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *OrderRepository) GetForUser(userID, orderID uint) (*entity.Order, error) {
	var o entity.Order
	err := r.DB.Where("id = ? AND user_id = ?", orderID, userID).
		Preload("Items").
		First(&o).Error
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetByID(orderID uint) (*entity.Order, error) {
	var o entity.Order
	if err := r.DB.First(&o, orderID).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) SetGatewayPaymentID(orderID uint, paymentID string) error {
	return r.DB.Model(&entity.Order{}).Where("id = ?", orderID).
		Update("yookassa_payment_id", paymentID).Error
}

// MarkPaid flips payment status to paid and order status to confirmed. The
// total is never touched here.
func (r *OrderRepository) MarkPaid(orderID uint, gatewayPaymentID string) error {
	return r.DB.Model(&entity.Order{}).Where("id = ?", orderID).
		Updates(map[string]any{
			"payment_status":      entity.PaymentStatusPaid,
			"status":              entity.OrderStatusConfirmed,
			"yookassa_payment_id": gatewayPaymentID,
		}).Error
}
