package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/algrishin88/neurocoffee/entity"
	"github.com/algrishin88/neurocoffee/pkg/yookassa"
	"github.com/algrishin88/neurocoffee/repository"
	"gorm.io/gorm"
)

type PaymentService struct {
	Gateway *yookassa.Client
	Orders  *repository.OrderRepository
	BaseURL string
	Log     *slog.Logger
}

func NewPaymentService(gateway *yookassa.Client, orders *repository.OrderRepository, baseURL string, log *slog.Logger) *PaymentService {
	return &PaymentService{Gateway: gateway, Orders: orders, BaseURL: baseURL, Log: log}
}

type SBPPaymentRes struct {
	PaymentID       string `json:"paymentId"`
	ConfirmationURL string `json:"confirmationUrl"`
	Status          string `json:"status"`
}

// CreateSBP starts an SBP payment for one of the user's pending orders. The
// gateway idempotence key is derived from the order id so a retried request
// reuses the same payment.
func (s *PaymentService) CreateSBP(ctx context.Context, userID, orderID uint) (*SBPPaymentRes, error) {
	if !s.Gateway.Configured() {
		return nil, ErrGatewayUnavailable
	}

	order, err := s.Orders.GetForUser(userID, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	if order.PaymentStatus == entity.PaymentStatusPaid {
		return nil, ErrOrderAlreadyPaid
	}

	payment, err := s.Gateway.CreateSBPPayment(ctx,
		order.Total,
		fmt.Sprintf("Заказ №%d в НейроКофейне", order.ID),
		s.BaseURL+"/order/"+strconv.FormatUint(uint64(order.ID), 10),
		strconv.FormatUint(uint64(order.ID), 10),
		fmt.Sprintf("neuro-%d", order.ID),
	)
	if err != nil {
		return nil, err
	}

	if err := s.Orders.SetGatewayPaymentID(order.ID, payment.ID); err != nil {
		return nil, err
	}

	res := &SBPPaymentRes{PaymentID: payment.ID, Status: payment.Status}
	if payment.Confirmation != nil {
		res.ConfirmationURL = payment.Confirmation.ConfirmationURL
	}
	return res, nil
}

// HandleWebhook processes YooKassa notifications. Only payment.succeeded
// changes state; the amount is verified against the stored total before the
// order is marked paid. Gateway retries are harmless: marking an already
// paid order paid again is a no-op.
func (s *PaymentService) HandleWebhook(event *yookassa.WebhookEvent) error {
	if event.Event != "payment.succeeded" {
		s.Log.Debug("payment webhook ignored", "event", event.Event)
		return nil
	}

	orderIDStr := event.Object.Metadata["orderId"]
	orderID, err := strconv.ParseUint(orderIDStr, 10, 64)
	if err != nil {
		return fmt.Errorf("webhook without valid orderId metadata: %q", orderIDStr)
	}

	order, err := s.Orders.GetByID(uint(orderID))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrOrderNotFound
	}
	if err != nil {
		return err
	}

	expected := fmt.Sprintf("%d.00", order.Total)
	if event.Object.Amount.Value != expected {
		return fmt.Errorf("webhook amount mismatch for order %d: got %s want %s",
			order.ID, event.Object.Amount.Value, expected)
	}

	if err := s.Orders.MarkPaid(order.ID, event.Object.ID); err != nil {
		return err
	}
	s.Log.Info("order paid", "orderId", order.ID, "paymentId", event.Object.ID)
	return nil
}
