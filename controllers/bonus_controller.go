package controllers

import (
	"github.com/algrishin88/neurocoffee/pkg/resp"
	"github.com/algrishin88/neurocoffee/services"
	"github.com/algrishin88/neurocoffee/utils"
	"github.com/gin-gonic/gin"
)

type BonusController struct {
	Service *services.BonusService
	Dev     bool
}

func NewBonusController(service *services.BonusService, dev bool) *BonusController {
	return &BonusController{Service: service, Dev: dev}
}

func (ctl *BonusController) History(c *gin.Context) {
	overview, err := ctl.Service.Overview(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, "Ошибка загрузки бонусов", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"balance": overview.Balance, "history": overview.History})
}
