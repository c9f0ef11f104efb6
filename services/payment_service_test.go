package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/algrishin88/neurocoffee/entity"
	"github.com/algrishin88/neurocoffee/pkg/yookassa"
	"github.com/algrishin88/neurocoffee/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func placeOrder(t *testing.T, db *gorm.DB, userID uint, total int64) *entity.Order {
	t.Helper()
	fillCart(t, db, userID,
		entity.CartItem{ItemID: 1, Name: "Нейро-капучино", Price: total, Size: "350мл", Quantity: 1},
	)
	res, err := newOrderService(db).Checkout(userID, &CheckoutReq{})
	require.NoError(t, err)
	return res.Order
}

func TestCreateSBP(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, 0)
	order := placeOrder(t, db, user.ID, 150)

	var gotIdempotenceKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotIdempotenceKey = r.Header.Get("Idempotence-Key")

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		amount := body["amount"].(map[string]any)
		assert.Equal(t, "150.00", amount["value"])

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(yookassa.Payment{
			ID:     "pay-1",
			Status: "pending",
			Confirmation: &yookassa.Confirmation{
				Type:            "redirect",
				ConfirmationURL: "https://yookassa.test/confirm",
			},
		})
	}))
	defer srv.Close()

	gateway := yookassa.NewClient("shop", "secret")
	gateway.SetBaseURL(srv.URL)
	svc := NewPaymentService(gateway, repository.NewOrderRepository(db), "http://localhost:3000", testLogger())

	res, err := svc.CreateSBP(context.Background(), user.ID, order.ID)
	require.NoError(t, err)
	assert.Equal(t, "pay-1", res.PaymentID)
	assert.Equal(t, "https://yookassa.test/confirm", res.ConfirmationURL)
	assert.NotEmpty(t, gotIdempotenceKey)

	var fresh entity.Order
	require.NoError(t, db.First(&fresh, order.ID).Error)
	assert.Equal(t, "pay-1", fresh.YookassaPaymentID)
}

func TestCreateSBPUnconfiguredGateway(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, 0)
	order := placeOrder(t, db, user.ID, 150)

	svc := NewPaymentService(yookassa.NewClient("", ""), repository.NewOrderRepository(db), "", testLogger())
	_, err := svc.CreateSBP(context.Background(), user.ID, order.ID)
	require.ErrorIs(t, err, ErrGatewayUnavailable)
}

func TestCreateSBPForeignOrder(t *testing.T) {
	db := newTestDB(t)
	owner := createUser(t, db, 0)
	order := placeOrder(t, db, owner.ID, 150)

	other := entity.User{Email: "other@example.com", Role: "user"}
	require.NoError(t, db.Create(&other).Error)

	svc := NewPaymentService(yookassa.NewClient("shop", "secret"), repository.NewOrderRepository(db), "", testLogger())
	_, err := svc.CreateSBP(context.Background(), other.ID, order.ID)
	require.ErrorIs(t, err, ErrOrderNotFound)
}

func TestWebhookMarksPaid(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, 0)
	order := placeOrder(t, db, user.ID, 150)

	svc := NewPaymentService(yookassa.NewClient("shop", "secret"), repository.NewOrderRepository(db), "", testLogger())
	err := svc.HandleWebhook(&yookassa.WebhookEvent{
		Event: "payment.succeeded",
		Object: yookassa.Payment{
			ID:       "pay-1",
			Amount:   yookassa.Amount{Value: "150.00", Currency: "RUB"},
			Metadata: map[string]string{"orderId": itoa(order.ID)},
		},
	})
	require.NoError(t, err)

	var fresh entity.Order
	require.NoError(t, db.First(&fresh, order.ID).Error)
	assert.Equal(t, entity.PaymentStatusPaid, fresh.PaymentStatus)
	assert.Equal(t, entity.OrderStatusConfirmed, fresh.Status)
	assert.Equal(t, int64(150), fresh.Total) // total untouched
}

func TestWebhookAmountMismatch(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, 0)
	order := placeOrder(t, db, user.ID, 150)

	svc := NewPaymentService(yookassa.NewClient("shop", "secret"), repository.NewOrderRepository(db), "", testLogger())
	err := svc.HandleWebhook(&yookassa.WebhookEvent{
		Event: "payment.succeeded",
		Object: yookassa.Payment{
			ID:       "pay-1",
			Amount:   yookassa.Amount{Value: "1.00", Currency: "RUB"},
			Metadata: map[string]string{"orderId": itoa(order.ID)},
		},
	})
	require.Error(t, err)

	var fresh entity.Order
	require.NoError(t, db.First(&fresh, order.ID).Error)
	assert.Equal(t, entity.PaymentStatusPending, fresh.PaymentStatus)
}

func TestWebhookIgnoresOtherEvents(t *testing.T) {
	db := newTestDB(t)
	svc := NewPaymentService(yookassa.NewClient("shop", "secret"), repository.NewOrderRepository(db), "", testLogger())
	require.NoError(t, svc.HandleWebhook(&yookassa.WebhookEvent{Event: "payment.canceled"}))
}
