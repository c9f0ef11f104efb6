package services

import (
	"context"
	"testing"

	"github.com/algrishin88/neurocoffee/entity"
	"github.com/algrishin88/neurocoffee/pkg/telegram"
	"github.com/algrishin88/neurocoffee/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newSupportService(db *gorm.DB) *SupportService {
	return NewSupportService(
		repository.NewSupportRepository(db),
		telegram.NewClient("", "", ""),
		testLogger(),
	)
}

func TestRequestOperatorStoresChatAndHistory(t *testing.T) {
	db := newTestDB(t)
	svc := newSupportService(db)

	res, err := svc.RequestOperator(context.Background(), nil, &OperatorReq{
		Message:  "Где мой заказ?",
		UserName: "Анна",
		History: []ChatMessage{
			{Role: "user", Text: "Привет"},
			{Role: "assistant", Text: "Здравствуйте!"},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, res.ChatID)

	var chat entity.SupportChat
	require.NoError(t, db.First(&chat, res.ChatID).Error)
	assert.Equal(t, "operator", chat.Status)
	assert.Equal(t, "Анна", chat.UserName)

	var msgs []entity.SupportMessage
	require.NoError(t, db.Where("chat_id = ?", res.ChatID).Order("id ASC").Find(&msgs).Error)
	// 2 history rows, the escalating message, the system row.
	require.Len(t, msgs, 4)
	assert.Equal(t, "assistant", msgs[1].Role)
	assert.Equal(t, "Где мой заказ?", msgs[2].Message)
	assert.Equal(t, "system", msgs[3].Role)
}

func TestSupportChatPreloadsMessages(t *testing.T) {
	db := newTestDB(t)
	svc := newSupportService(db)

	res, err := svc.RequestOperator(context.Background(), nil, &OperatorReq{Message: "Вопрос по заказу"})
	require.NoError(t, err)

	// The has-many keys off chat_id; the admin chat list relies on it.
	var chat entity.SupportChat
	require.NoError(t, db.Preload("Messages", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).First(&chat, res.ChatID).Error)
	require.Len(t, chat.Messages, 2)
	assert.Equal(t, "Вопрос по заказу", chat.Messages[0].Message)
}

func TestRequestOperatorTruncatesHistory(t *testing.T) {
	db := newTestDB(t)
	svc := newSupportService(db)

	history := make([]ChatMessage, 25)
	for i := range history {
		history[i] = ChatMessage{Role: "user", Text: "msg"}
	}
	res, err := svc.RequestOperator(context.Background(), nil, &OperatorReq{
		Message: "Помогите",
		History: history,
	})
	require.NoError(t, err)

	var count int64
	db.Model(&entity.SupportMessage{}).Where("chat_id = ?", res.ChatID).Count(&count)
	// 10 kept history rows + message + system row.
	assert.Equal(t, int64(12), count)
}

func TestRequestOperatorLinksUser(t *testing.T) {
	db := newTestDB(t)
	svc := newSupportService(db)

	user := createUser(t, db, 0)
	res, err := svc.RequestOperator(context.Background(), &user.ID, &OperatorReq{Message: "Вопрос"})
	require.NoError(t, err)

	var chat entity.SupportChat
	require.NoError(t, db.First(&chat, res.ChatID).Error)
	require.NotNil(t, chat.UserID)
	assert.Equal(t, user.ID, *chat.UserID)
}
