package repository

import (
	"errors"

	"github.com/algrishin88/neurocoffee/entity"
	"gorm.io/gorm"
)

type NewsletterRepository struct{ DB *gorm.DB }

func NewNewsletterRepository(db *gorm.DB) *NewsletterRepository {
	return &NewsletterRepository{DB: db}
}

// Subscribe upserts by email: a returning subscriber is re-activated and
// keeps their original unsubscribe token.
func (r *NewsletterRepository) Subscribe(email, token string) error {
	var sub entity.NewsletterSubscriber
	err := r.DB.Where("email = ?", email).First(&sub).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.DB.Create(&entity.NewsletterSubscriber{
			Email:            email,
			Active:           true,
			UnsubscribeToken: token,
		}).Error
	}
	if err != nil {
		return err
	}
	return r.DB.Model(&sub).Update("active", true).Error
}

func (r *NewsletterRepository) UnsubscribeByToken(token string) error {
	res := r.DB.Model(&entity.NewsletterSubscriber{}).
		Where("unsubscribe_token = ?", token).
		Update("active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *NewsletterRepository) ActiveSubscribers() ([]entity.NewsletterSubscriber, error) {
	var subs []entity.NewsletterSubscriber
	err := r.DB.Where("active = ?", true).Find(&subs).Error
	return subs, err
}
