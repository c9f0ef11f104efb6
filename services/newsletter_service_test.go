package services

import (
	"testing"

	"github.com/algrishin88/neurocoffee/entity"
	"github.com/algrishin88/neurocoffee/pkg/mailer"
	"github.com/algrishin88/neurocoffee/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newNewsletterService(db *gorm.DB) *NewsletterService {
	return NewNewsletterService(repository.NewNewsletterRepository(db), mailer.New("", 0, "", "", "", ""))
}

func TestSubscribeUnsubscribeResubscribe(t *testing.T) {
	db := newTestDB(t)
	svc := newNewsletterService(db)

	require.NoError(t, svc.Subscribe("Reader@Example.com"))

	var sub entity.NewsletterSubscriber
	require.NoError(t, db.First(&sub).Error)
	assert.Equal(t, "reader@example.com", sub.Email)
	assert.True(t, sub.Active)
	require.NotEmpty(t, sub.UnsubscribeToken)
	token := sub.UnsubscribeToken

	require.NoError(t, svc.Unsubscribe(token))
	require.NoError(t, db.First(&sub).Error)
	assert.False(t, sub.Active)

	// Resubscribing reactivates the same row and keeps the token stable.
	require.NoError(t, svc.Subscribe("reader@example.com"))
	require.NoError(t, db.First(&sub).Error)
	assert.True(t, sub.Active)
	assert.Equal(t, token, sub.UnsubscribeToken)

	var count int64
	db.Model(&entity.NewsletterSubscriber{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestUnsubscribeUnknownToken(t *testing.T) {
	db := newTestDB(t)
	svc := newNewsletterService(db)
	require.ErrorIs(t, svc.Unsubscribe("missing"), ErrTokenNotFound)
}
