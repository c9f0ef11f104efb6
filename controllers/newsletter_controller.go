package controllers

import (
	"errors"
	"net/http"

	"github.com/algrishin88/neurocoffee/pkg/resp"
	"github.com/algrishin88/neurocoffee/services"
	"github.com/gin-gonic/gin"
)

type NewsletterController struct {
	Service *services.NewsletterService
	Dev     bool
}

func NewNewsletterController(service *services.NewsletterService, dev bool) *NewsletterController {
	return &NewsletterController{Service: service, Dev: dev}
}

func (ctl *NewsletterController) Subscribe(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Укажите корректный email")
		return
	}
	if err := ctl.Service.Subscribe(req.Email); err != nil {
		resp.ServerError(c, "Ошибка подписки", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"message": "Вы подписаны на рассылку"})
}

// Unsubscribe is opened from an email link, so it answers with a small HTML
// page rather than JSON.
func (ctl *NewsletterController) Unsubscribe(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.Data(http.StatusBadRequest, "text/html; charset=utf-8",
			[]byte(unsubscribePage("Некорректная ссылка отписки.")))
		return
	}
	err := ctl.Service.Unsubscribe(token)
	if errors.Is(err, services.ErrTokenNotFound) {
		c.Data(http.StatusNotFound, "text/html; charset=utf-8",
			[]byte(unsubscribePage("Подписка не найдена — возможно, вы уже отписались.")))
		return
	}
	if err != nil {
		c.Data(http.StatusInternalServerError, "text/html; charset=utf-8",
			[]byte(unsubscribePage("Что-то пошло не так, попробуйте позже.")))
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8",
		[]byte(unsubscribePage("Вы отписаны от рассылки НейроКофейни. Будем скучать! ☕")))
}

// Send broadcasts a campaign to all active subscribers (admin only).
func (ctl *NewsletterController) Send(c *gin.Context) {
	var req struct {
		Subject string `json:"subject" binding:"required"`
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Укажите тему и текст рассылки")
		return
	}
	res, err := ctl.Service.Broadcast(req.Subject, req.Content)
	if errors.Is(err, services.ErrMailUnconfigured) {
		resp.BadRequest(c, "SMTP не настроен")
		return
	}
	if err != nil {
		resp.ServerError(c, "Ошибка рассылки", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"sent": res.Sent, "failed": res.Failed})
}

func unsubscribePage(message string) string {
	return `<!DOCTYPE html><html lang="ru"><head><meta charset="utf-8">` +
		`<title>НейроКофейня</title></head>` +
		`<body style="font-family:sans-serif;text-align:center;padding-top:4em">` +
		`<h1>НейроКофейня</h1><p>` + message + `</p></body></html>`
}
