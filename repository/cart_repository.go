package repository

import (
	"errors"

	"github.com/algrishin88/neurocoffee/entity"
	"gorm.io/gorm"
)

type CartRepository struct{ DB *gorm.DB }

func NewCartRepository(db *gorm.DB) *CartRepository { return &CartRepository{DB: db} }

// GetOrCreateCart lazily creates the user's cart on first access.
func (r *CartRepository) GetOrCreateCart(userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("user_id = ?", userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c = entity.Cart{UserID: userID}
		if err := r.DB.Create(&c).Error; err != nil {
			return nil, err
		}
		return &c, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CartRepository) GetCartWithItems(userID uint) (*entity.Cart, error) {
	var c entity.Cart
	err := r.DB.Where("user_id = ?", userID).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("cart_items.created_at ASC") }).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// FindItem looks up a line by its (itemId, size) identity within the cart.
func (r *CartRepository) FindItem(cartID, itemID uint, size string) (*entity.CartItem, error) {
	var it entity.CartItem
	err := r.DB.Where("cart_id = ? AND item_id = ? AND size = ?", cartID, itemID, size).First(&it).Error
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// UpsertItem merges quantity into an existing (itemId, size) line or creates
// a new one.
func (r *CartRepository) UpsertItem(cartID uint, row *entity.CartItem) error {
	existing, err := r.FindItem(cartID, row.ItemID, row.Size)
	if err == nil {
		return r.DB.Model(existing).Update("quantity", existing.Quantity+row.Quantity).Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	row.CartID = cartID
	return r.DB.Create(row).Error
}

func (r *CartRepository) UpdateQuantity(itemRowID uint, quantity int) error {
	return r.DB.Model(&entity.CartItem{}).Where("id = ?", itemRowID).
		Update("quantity", quantity).Error
}

// Cart line deletes are hard deletes: a soft-deleted row would collide with
// the (cart_id, item_id, size) unique index when the item is re-added.
func (r *CartRepository) DeleteItem(itemRowID uint) error {
	return r.DB.Unscoped().Delete(&entity.CartItem{}, itemRowID).Error
}

// LockCart reads the cart row under a row lock during checkout so two
// concurrent orders cannot drain the same cart.
func (r *CartRepository) LockCart(tx *gorm.DB, userID uint) (*entity.Cart, error) {
	var c entity.Cart
	if err := forUpdate(tx).Where("user_id = ?", userID).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CartRepository) ItemsForCart(tx *gorm.DB, cartID uint) ([]entity.CartItem, error) {
	var items []entity.CartItem
	err := tx.Where("cart_id = ?", cartID).Order("created_at ASC").Find(&items).Error
	return items, err
}

func (r *CartRepository) ClearItems(tx *gorm.DB, cartID uint) error {
	return tx.Unscoped().Where("cart_id = ?", cartID).Delete(&entity.CartItem{}).Error
}
