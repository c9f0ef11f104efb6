package repository

import (
	"github.com/algrishin88/neurocoffee/entity"
	"gorm.io/gorm"
)

type SupportRepository struct{ DB *gorm.DB }

func NewSupportRepository(db *gorm.DB) *SupportRepository { return &SupportRepository{DB: db} }

func (r *SupportRepository) CreateChat(chat *entity.SupportChat) error {
	return r.DB.Create(chat).Error
}

func (r *SupportRepository) AddMessage(msg *entity.SupportMessage) error {
	return r.DB.Create(msg).Error
}
