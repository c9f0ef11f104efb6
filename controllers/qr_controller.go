package controllers

import (
	"errors"

	"github.com/algrishin88/neurocoffee/pkg/resp"
	"github.com/algrishin88/neurocoffee/services"
	"github.com/algrishin88/neurocoffee/utils"
	"github.com/gin-gonic/gin"
)

type QRController struct {
	Service *services.QRService
	Dev     bool
}

func NewQRController(service *services.QRService, dev bool) *QRController {
	return &QRController{Service: service, Dev: dev}
}

func (ctl *QRController) Generate(c *gin.Context) {
	code, expiresIn, err := ctl.Service.Generate(c.Request.Context())
	if err != nil {
		resp.ServerError(c, "Ошибка генерации кода", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"code": code, "expiresIn": expiresIn})
}

func (ctl *QRController) Confirm(c *gin.Context) {
	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Укажите код")
		return
	}
	err := ctl.Service.Confirm(c.Request.Context(), req.Code, utils.CurrentUserID(c))
	if errors.Is(err, services.ErrCodeNotFound) {
		resp.NotFound(c, "Код не найден или истёк")
		return
	}
	if err != nil {
		resp.ServerError(c, "Ошибка подтверждения", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"message": "Код подтверждён"})
}

// Status is polled by the signed-out device. A missing or consumed code
// reads as expired, not as an error.
func (ctl *QRController) Status(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		resp.BadRequest(c, "Укажите код")
		return
	}
	res, confirmed, err := ctl.Service.Poll(c.Request.Context(), code)
	if errors.Is(err, services.ErrCodeNotFound) {
		resp.OK(c, gin.H{"status": "expired"})
		return
	}
	if err != nil {
		resp.ServerError(c, "Ошибка проверки кода", err, ctl.Dev)
		return
	}
	if !confirmed {
		resp.OK(c, gin.H{"status": "pending"})
		return
	}
	resp.OK(c, gin.H{"status": "confirmed", "token": res.Token, "user": res.User})
}
