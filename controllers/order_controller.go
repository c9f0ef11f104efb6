package controllers

import (
	"errors"
	"strconv"

	"github.com/algrishin88/neurocoffee/pkg/resp"
	"github.com/algrishin88/neurocoffee/services"
	"github.com/algrishin88/neurocoffee/utils"
	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Service *services.OrderService
	Dev     bool
}

func NewOrderController(service *services.OrderService, dev bool) *OrderController {
	return &OrderController{Service: service, Dev: dev}
}

func (ctl *OrderController) Checkout(c *gin.Context) {
	var req services.CheckoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Некорректные данные заказа")
		return
	}
	res, err := ctl.Service.Checkout(utils.CurrentUserID(c), &req)
	switch {
	case errors.Is(err, services.ErrCartEmpty):
		resp.BadRequest(c, "Корзина пуста")
	case errors.Is(err, services.ErrAddressRequired):
		resp.BadRequest(c, "Укажите адрес доставки")
	case err != nil:
		resp.ServerError(c, "Ошибка оформления заказа", err, ctl.Dev)
	default:
		resp.Created(c, gin.H{
			"message":     "Заказ оформлен",
			"order":       res.Order,
			"bonusUsed":   res.BonusUsed,
			"bonusEarned": res.BonusEarned,
		})
	}
}

func (ctl *OrderController) List(c *gin.Context) {
	orders, err := ctl.Service.ListForUser(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, "Ошибка загрузки заказов", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"orders": orders})
}

func (ctl *OrderController) Detail(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "Некорректный номер заказа")
		return
	}
	order, err := ctl.Service.DetailForUser(utils.CurrentUserID(c), uint(orderID))
	if errors.Is(err, services.ErrOrderNotFound) {
		resp.NotFound(c, "Заказ не найден")
		return
	}
	if err != nil {
		resp.ServerError(c, "Ошибка загрузки заказа", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"order": order})
}
