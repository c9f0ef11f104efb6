package controllers

import (
	"errors"
	"net/http"

	"github.com/algrishin88/neurocoffee/pkg/resp"
	"github.com/algrishin88/neurocoffee/pkg/yookassa"
	"github.com/algrishin88/neurocoffee/services"
	"github.com/algrishin88/neurocoffee/utils"
	"github.com/gin-gonic/gin"
)

type PaymentController struct {
	Service *services.PaymentService
	Dev     bool
}

func NewPaymentController(service *services.PaymentService, dev bool) *PaymentController {
	return &PaymentController{Service: service, Dev: dev}
}

func (ctl *PaymentController) CreateSBP(c *gin.Context) {
	var req struct {
		OrderID uint `json:"orderId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Укажите номер заказа")
		return
	}
	res, err := ctl.Service.CreateSBP(c.Request.Context(), utils.CurrentUserID(c), req.OrderID)
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		resp.NotFound(c, "Заказ не найден")
	case errors.Is(err, services.ErrOrderAlreadyPaid):
		resp.BadRequest(c, "Заказ уже оплачен")
	case errors.Is(err, services.ErrGatewayUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "Оплата временно недоступна"})
	case err != nil:
		resp.ServerError(c, "Ошибка создания платежа", err, ctl.Dev)
	default:
		resp.OK(c, gin.H{
			"paymentId":  res.PaymentID,
			"paymentUrl": res.ConfirmationURL,
			"status":     res.Status,
		})
	}
}

// Webhook acknowledges every well-formed notification with 200 so the
// gateway stops retrying; processing errors are logged server-side.
func (ctl *PaymentController) Webhook(c *gin.Context) {
	var event yookassa.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		resp.BadRequest(c, "Некорректное уведомление")
		return
	}
	if err := ctl.Service.HandleWebhook(&event); err != nil {
		ctl.Service.Log.Error("payment webhook failed", "event", event.Event, "error", err)
	}
	resp.OK(c, gin.H{})
}
