package controllers

import (
	"errors"

	"github.com/algrishin88/neurocoffee/pkg/resp"
	"github.com/algrishin88/neurocoffee/services"
	"github.com/algrishin88/neurocoffee/utils"
	"github.com/gin-gonic/gin"
)

type BookingController struct {
	Service *services.BookingService
	Dev     bool
}

func NewBookingController(service *services.BookingService, dev bool) *BookingController {
	return &BookingController{Service: service, Dev: dev}
}

func (ctl *BookingController) Create(c *gin.Context) {
	var req services.BookingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Некорректные данные бронирования")
		return
	}

	var userID *uint
	if id := utils.CurrentUserID(c); id != 0 {
		userID = &id
	}

	booking, err := ctl.Service.Create(userID, &req)
	switch {
	case errors.Is(err, services.ErrBookingInvalid):
		resp.BadRequest(c, "Некорректная дата или время")
	case errors.Is(err, services.ErrBookingPast):
		resp.BadRequest(c, "Нельзя забронировать столик на прошедшую дату")
	case err != nil:
		resp.ServerError(c, "Ошибка бронирования", err, ctl.Dev)
	default:
		resp.Created(c, gin.H{"booking": booking})
	}
}

func (ctl *BookingController) List(c *gin.Context) {
	bookings, err := ctl.Service.ListForUser(utils.CurrentUserID(c))
	if err != nil {
		resp.ServerError(c, "Ошибка загрузки бронирований", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"bookings": bookings})
}
