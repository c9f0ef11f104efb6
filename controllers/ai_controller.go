package controllers

import (
	"strings"

	"github.com/algrishin88/neurocoffee/pkg/resp"
	"github.com/algrishin88/neurocoffee/services"
	"github.com/gin-gonic/gin"
)

type AIController struct {
	Service *services.RecipeService
	Dev     bool
}

func NewAIController(service *services.RecipeService, dev bool) *AIController {
	return &AIController{Service: service, Dev: dev}
}

func (ctl *AIController) GenerateCoffee(c *gin.Context) {
	var req services.GenerateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Опишите настроение или пожелания")
		return
	}
	if strings.TrimSpace(req.Mood) == "" && strings.TrimSpace(req.Preferences) == "" {
		resp.BadRequest(c, "Опишите настроение или пожелания")
		return
	}

	recipe, fallback, err := ctl.Service.Generate(c.Request.Context(), &req)
	if err != nil {
		resp.ServerError(c, "Ошибка генерации рецепта", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"recipe": recipe, "fallback": fallback})
}

func (ctl *AIController) Chat(c *gin.Context) {
	var req services.ChatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Напишите сообщение")
		return
	}
	reply, err := ctl.Service.Chat(c.Request.Context(), &req)
	if err != nil {
		resp.ServerError(c, "Помощник временно недоступен", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"reply": reply})
}
