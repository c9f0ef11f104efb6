package repository

import (
	"time"

	"github.com/algrishin88/neurocoffee/entity"
	"gorm.io/gorm"
)

type BonusRepository struct{ DB *gorm.DB }

func NewBonusRepository(db *gorm.DB) *BonusRepository { return &BonusRepository{DB: db} }

func (r *BonusRepository) CreateTransaction(tx *gorm.DB, t *entity.BonusTransaction) error {
	return tx.Create(t).Error
}

func (r *BonusRepository) ListForUser(userID uint, limit int) ([]entity.BonusTransaction, error) {
	var txs []entity.BonusTransaction
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).
		Find(&txs).Error
	return txs, err
}

func (r *BonusRepository) CreateOutbox(tx *gorm.DB, o *entity.BonusOutbox) error {
	return tx.Create(o).Error
}

func (r *BonusRepository) UnprocessedOutbox(limit int) ([]entity.BonusOutbox, error) {
	var rows []entity.BonusOutbox
	err := r.DB.Where("processed_at IS NULL").
		Order("created_at ASC").Limit(limit).
		Find(&rows).Error
	return rows, err
}

func (r *BonusRepository) MarkOutboxProcessed(tx *gorm.DB, id uint) error {
	now := time.Now()
	return tx.Model(&entity.BonusOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"processed_at": &now, "attempts": gorm.Expr("attempts + 1")}).Error
}

func (r *BonusRepository) BumpOutboxAttempts(id uint) error {
	return r.DB.Model(&entity.BonusOutbox{}).Where("id = ?", id).
		Update("attempts", gorm.Expr("attempts + 1")).Error
}

// HasEarnedForOrder makes the worker idempotent: an order credits points at
// most once no matter how often its outbox row is retried.
func (r *BonusRepository) HasEarnedForOrder(tx *gorm.DB, orderID uint) (bool, error) {
	var n int64
	err := tx.Model(&entity.BonusTransaction{}).
		Where("order_id = ? AND type = ?", orderID, entity.BonusTypeEarned).
		Count(&n).Error
	return n > 0, err
}
