package repository

import (
	"github.com/algrishin88/neurocoffee/entity"
	"gorm.io/gorm"
)

type ContactRepository struct{ DB *gorm.DB }

func NewContactRepository(db *gorm.DB) *ContactRepository { return &ContactRepository{DB: db} }

func (r *ContactRepository) Create(c *entity.Contact) error {
	return r.DB.Create(c).Error
}
