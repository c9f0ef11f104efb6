// Package telegram sends staff notifications through the Bot API. All sends
// are best-effort: a failure is logged by the caller, never surfaced to the
// customer.
package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

type Client struct {
	http          *resty.Client
	baseURL       string
	botToken      string
	chatID        string
	supportChatID string
}

func NewClient(botToken, chatID, supportChatID string) *Client {
	if supportChatID == "" {
		supportChatID = chatID
	}
	return &Client{
		http:          resty.New().SetTimeout(10 * time.Second),
		baseURL:       "https://api.telegram.org",
		botToken:      botToken,
		chatID:        chatID,
		supportChatID: supportChatID,
	}
}

func (c *Client) Configured() bool {
	return c.botToken != "" && c.chatID != ""
}

// SetBaseURL overrides the Bot API host. Used by tests.
func (c *Client) SetBaseURL(u string) { c.baseURL = u }

func (c *Client) sendMessage(ctx context.Context, chatID, text string) error {
	if c.botToken == "" {
		return fmt.Errorf("telegram not configured")
	}
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(map[string]string{
			"chat_id":    chatID,
			"text":       text,
			"parse_mode": "HTML",
		}).
		Post(fmt.Sprintf("%s/bot%s/sendMessage", c.baseURL, c.botToken))
	if err != nil {
		return fmt.Errorf("telegram sendMessage: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("telegram sendMessage: status %d: %s", res.StatusCode(), res.String())
	}
	return nil
}

// NotifyRecipe posts a freshly generated neuro-coffee recipe to the staff
// chat.
func (c *Client) NotifyRecipe(ctx context.Context, customer, name, description, ingredients, instructions, size string, price int64) error {
	text := "☕ <b>Новый нейро-рецепт!</b>\n\n" +
		fmt.Sprintf("<b>Клиент:</b> %s\n", customer) +
		fmt.Sprintf("<b>Название:</b> %s\n\n", name) +
		fmt.Sprintf("<b>Описание:</b>\n%s\n\n", description) +
		fmt.Sprintf("<b>Ингредиенты:</b>\n%s\n\n", ingredients) +
		fmt.Sprintf("<b>Приготовление:</b>\n%s\n\n", instructions) +
		fmt.Sprintf("<b>Размер:</b> %s\n", size) +
		fmt.Sprintf("<b>Цена:</b> %d ₽", price)
	return c.sendMessage(ctx, c.chatID, text)
}

// NotifySupport forwards an operator request to the support chat.
func (c *Client) NotifySupport(ctx context.Context, userName, userEmail, message string) error {
	if userEmail == "" {
		userEmail = "не указан"
	}
	text := "📩 <b>Запрос на оператора</b>\n\n" +
		fmt.Sprintf("<b>Имя:</b> %s\n", userName) +
		fmt.Sprintf("<b>Email:</b> %s\n\n", userEmail) +
		fmt.Sprintf("<b>Сообщение:</b>\n%s", message)
	return c.sendMessage(ctx, c.supportChatID, text)
}
