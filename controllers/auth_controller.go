package controllers

import (
	"errors"

	"github.com/algrishin88/neurocoffee/pkg/resp"
	"github.com/algrishin88/neurocoffee/services"
	"github.com/algrishin88/neurocoffee/utils"
	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *services.AuthService
	Dev     bool
}

func NewAuthController(service *services.AuthService, dev bool) *AuthController {
	return &AuthController{Service: service, Dev: dev}
}

func (ctl *AuthController) Register(c *gin.Context) {
	var req services.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Некорректные данные регистрации")
		return
	}
	res, err := ctl.Service.Register(&req)
	if errors.Is(err, services.ErrEmailTaken) {
		resp.BadRequest(c, "Пользователь с таким email уже существует")
		return
	}
	if err != nil {
		resp.ServerError(c, "Ошибка регистрации", err, ctl.Dev)
		return
	}
	resp.Created(c, gin.H{"token": res.Token, "user": res.User})
}

func (ctl *AuthController) Login(c *gin.Context) {
	var req services.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Укажите email и пароль")
		return
	}
	res, err := ctl.Service.Login(&req)
	if errors.Is(err, services.ErrInvalidCredentials) {
		resp.Unauthorized(c, "Неверный email или пароль")
		return
	}
	if err != nil {
		resp.ServerError(c, "Ошибка входа", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"token": res.Token, "user": res.User})
}

func (ctl *AuthController) Me(c *gin.Context) {
	user, err := ctl.Service.Profile(utils.CurrentUserID(c))
	if errors.Is(err, services.ErrUserNotFound) {
		resp.NotFound(c, "Пользователь не найден")
		return
	}
	if err != nil {
		resp.ServerError(c, "Ошибка загрузки профиля", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"user": user})
}

func (ctl *AuthController) UpdateMe(c *gin.Context) {
	var req services.UpdateProfileReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Некорректные данные профиля")
		return
	}
	user, err := ctl.Service.UpdateProfile(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.ServerError(c, "Ошибка обновления профиля", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"user": user})
}
