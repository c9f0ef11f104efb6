package controllers

import (
	"errors"
	"strconv"

	"github.com/algrishin88/neurocoffee/pkg/resp"
	"github.com/algrishin88/neurocoffee/repository"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MenuController struct {
	Repo *repository.MenuRepository
	Dev  bool
}

func NewMenuController(repo *repository.MenuRepository, dev bool) *MenuController {
	return &MenuController{Repo: repo, Dev: dev}
}

func (ctl *MenuController) List(c *gin.Context) {
	items, err := ctl.Repo.ListAvailable()
	if err != nil {
		resp.ServerError(c, "Ошибка загрузки меню", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

func (ctl *MenuController) Detail(c *gin.Context) {
	itemID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "Некорректный номер позиции")
		return
	}
	item, err := ctl.Repo.GetByItemID(uint(itemID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.NotFound(c, "Позиция не найдена")
		return
	}
	if err != nil {
		resp.ServerError(c, "Ошибка загрузки позиции", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"item": item})
}
