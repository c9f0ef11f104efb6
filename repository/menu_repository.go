package repository

import (
	"github.com/algrishin88/neurocoffee/entity"
	"gorm.io/gorm"
)

type MenuRepository struct{ DB *gorm.DB }

func NewMenuRepository(db *gorm.DB) *MenuRepository { return &MenuRepository{DB: db} }

func (r *MenuRepository) ListAvailable() ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	err := r.DB.Where("available = ?", true).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB { return db.Order("menu_item_sizes.price ASC") }).
		Order("item_id ASC").
		Find(&items).Error
	return items, err
}

func (r *MenuRepository) GetByItemID(itemID uint) (*entity.MenuItem, error) {
	var item entity.MenuItem
	err := r.DB.Where("item_id = ?", itemID).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB { return db.Order("menu_item_sizes.price ASC") }).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// PricedSize is the catalog answer for an (itemId, size) pair.
type PricedSize struct {
	Price int64
	Name  string
	Image string
}

// LookupPrice resolves the authoritative price for an available catalog item
// in the given size. gorm.ErrRecordNotFound when there is no match.
func (r *MenuRepository) LookupPrice(itemID uint, size string) (*PricedSize, error) {
	var row PricedSize
	err := r.DB.Model(&entity.MenuItemSize{}).
		Select("menu_item_sizes.price AS price, menu_items.name AS name, menu_items.image AS image").
		Joins("JOIN menu_items ON menu_items.id = menu_item_sizes.menu_item_id").
		Where("menu_items.item_id = ? AND menu_item_sizes.size = ? AND menu_items.available = ?", itemID, size, true).
		Take(&row).Error
	if err != nil {
		return nil, err
	}
	return &row, nil
}
