package controllers

import (
	"errors"
	"strconv"

	"github.com/algrishin88/neurocoffee/pkg/resp"
	"github.com/algrishin88/neurocoffee/services"
	"github.com/algrishin88/neurocoffee/utils"
	"github.com/gin-gonic/gin"
)

type CartController struct {
	Service *services.CartService
	Dev     bool
}

func NewCartController(service *services.CartService, dev bool) *CartController {
	return &CartController{Service: service, Dev: dev}
}

func (ctl *CartController) Get(c *gin.Context) {
	cart, err := ctl.Service.Get(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, "Ошибка загрузки корзины", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"cart": cart})
}

func (ctl *CartController) AddItem(c *gin.Context) {
	var req services.AddItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Некорректный товар")
		return
	}
	cart, err := ctl.Service.AddItem(utils.CurrentUserID(c), &req)
	if errors.Is(err, services.ErrItemNotFound) {
		resp.BadRequest(c, "Товар не найден или недоступен")
		return
	}
	if err != nil {
		resp.ServerError(c, "Ошибка добавления в корзину", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"cart": cart})
}

func (ctl *CartController) UpdateItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "Некорректный товар")
		return
	}
	var req struct {
		Quantity int `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Некорректное количество")
		return
	}
	cart, err := ctl.Service.UpdateQuantity(utils.CurrentUserID(c), uint(itemID), c.Param("size"), req.Quantity)
	switch {
	case errors.Is(err, services.ErrInvalidQuantity):
		resp.BadRequest(c, "Некорректное количество")
	case errors.Is(err, services.ErrCartItemNotFound):
		resp.NotFound(c, "Товара нет в корзине")
	case err != nil:
		resp.ServerError(c, "Ошибка обновления корзины", err, ctl.Dev)
	default:
		resp.OK(c, gin.H{"cart": cart})
	}
}

func (ctl *CartController) RemoveItem(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("itemId"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "Некорректный товар")
		return
	}
	cart, err := ctl.Service.RemoveItem(utils.CurrentUserID(c), uint(itemID), c.Param("size"))
	if errors.Is(err, services.ErrCartItemNotFound) {
		resp.NotFound(c, "Товара нет в корзине")
		return
	}
	if err != nil {
		resp.ServerError(c, "Ошибка удаления из корзины", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"cart": cart})
}

func (ctl *CartController) Clear(c *gin.Context) {
	if err := ctl.Service.Clear(utils.CurrentUserID(c)); err != nil {
		resp.ServerError(c, "Ошибка очистки корзины", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"message": "Корзина очищена"})
}
