package repository

import (
	"github.com/algrishin88/neurocoffee/entity"
	"gorm.io/gorm"
)

type UserRepository struct{ DB *gorm.DB }

func NewUserRepository(db *gorm.DB) *UserRepository { return &UserRepository{DB: db} }

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

func (r *UserRepository) CountByEmail(email string) (int64, error) {
	var n int64
	err := r.DB.Model(&entity.User{}).Where("LOWER(email) = ?", email).Count(&n).Error
	return n, err
}

func (r *UserRepository) FindByEmail(email string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("LOWER(email) = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByID(id uint) (*entity.User, error) {
	var u entity.User
	if err := r.DB.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByYandexID(yandexID string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Where("yandex_id = ?", yandexID).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) Update(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.User{}).Where("id = ?", id).Updates(updates).Error
}

// LockForUpdate reads the user under a row lock so concurrent checkouts see
// a serialized bonus balance.
func (r *UserRepository) LockForUpdate(tx *gorm.DB, id uint) (*entity.User, error) {
	var u entity.User
	if err := forUpdate(tx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// AddBonusPoints shifts the denormalized balance by delta (negative when
// spending). Callers append the matching ledger row in the same tx.
func (r *UserRepository) AddBonusPoints(tx *gorm.DB, id uint, delta int64) error {
	return tx.Model(&entity.User{}).Where("id = ?", id).
		Update("bonus_points", gorm.Expr("bonus_points + ?", delta)).Error
}
