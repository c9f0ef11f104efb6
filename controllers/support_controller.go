package controllers

import (
	"github.com/algrishin88/neurocoffee/pkg/resp"
	"github.com/algrishin88/neurocoffee/services"
	"github.com/algrishin88/neurocoffee/utils"
	"github.com/gin-gonic/gin"
)

type SupportController struct {
	Service *services.SupportService
	Dev     bool
}

func NewSupportController(service *services.SupportService, dev bool) *SupportController {
	return &SupportController{Service: service, Dev: dev}
}

func (ctl *SupportController) RequestOperator(c *gin.Context) {
	var req services.OperatorReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Напишите сообщение")
		return
	}

	var userID *uint
	if id := utils.CurrentUserID(c); id != 0 {
		userID = &id
	}

	res, err := ctl.Service.RequestOperator(c.Request.Context(), userID, &req)
	if err != nil {
		resp.ServerError(c, "Ошибка передачи оператору", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"chatId": res.ChatID, "message": "Оператор скоро ответит"})
}
