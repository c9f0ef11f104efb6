package controllers

import (
	"github.com/algrishin88/neurocoffee/pkg/resp"
	"github.com/algrishin88/neurocoffee/services"
	"github.com/gin-gonic/gin"
)

type ContactController struct {
	Service *services.ContactService
	Dev     bool
}

func NewContactController(service *services.ContactService, dev bool) *ContactController {
	return &ContactController{Service: service, Dev: dev}
}

func (ctl *ContactController) Submit(c *gin.Context) {
	var req services.ContactReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Заполните имя, email и сообщение")
		return
	}
	if _, err := ctl.Service.Submit(&req); err != nil {
		resp.ServerError(c, "Ошибка отправки сообщения", err, ctl.Dev)
		return
	}
	resp.Created(c, gin.H{"message": "Сообщение отправлено, мы ответим вам на почту"})
}
