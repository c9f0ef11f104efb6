package services

import (
	"context"
	"testing"

	"github.com/algrishin88/neurocoffee/entity"
	"github.com/algrishin88/neurocoffee/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newOrderService(db *gorm.DB) *OrderService {
	return NewOrderService(db,
		repository.NewOrderRepository(db),
		repository.NewCartRepository(db),
		repository.NewUserRepository(db),
		repository.NewBonusRepository(db),
	)
}

func TestCheckoutBonusRedemption(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	// Subtotal 250, balance 100: the whole balance fits under the 50% cap.
	user := createUser(t, db, 100)
	fillCart(t, db, user.ID,
		entity.CartItem{ItemID: 1, Name: "Нейро-капучино", Price: 110, Size: "350мл", Quantity: 1},
		entity.CartItem{ItemID: 2, Name: "Квантовый раф", Price: 140, Size: "350мл", Quantity: 1},
	)

	res, err := svc.Checkout(user.ID, &CheckoutReq{UseBonus: true})
	require.NoError(t, err)

	assert.Equal(t, int64(150), res.Order.Total)
	assert.Equal(t, int64(100), res.BonusUsed)
	assert.Equal(t, int64(2), res.BonusEarned) // 250/100

	var fresh entity.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, int64(0), fresh.BonusPoints)

	var ledger []entity.BonusTransaction
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&ledger).Error)
	require.Len(t, ledger, 1)
	assert.Equal(t, entity.BonusTypeSpent, ledger[0].Type)
	assert.Equal(t, int64(-100), ledger[0].Amount)
	require.NotNil(t, ledger[0].OrderID)
	assert.Equal(t, res.Order.ID, *ledger[0].OrderID)
}

func TestCheckoutHalfSubtotalCap(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	// Balance 300 against subtotal 200: cap is floor(200/2) = 100.
	user := createUser(t, db, 300)
	fillCart(t, db, user.ID,
		entity.CartItem{ItemID: 3, Name: "Цифровой Латте", Price: 200, Size: "350мл", Quantity: 1},
	)

	res, err := svc.Checkout(user.ID, &CheckoutReq{UseBonus: true})
	require.NoError(t, err)

	assert.Equal(t, int64(100), res.Order.Total)
	assert.Equal(t, int64(100), res.BonusUsed)

	var fresh entity.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, int64(200), fresh.BonusPoints)
}

func TestCheckoutMinimumEarn(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	// Subtotal 50 with no bonus: total stays 50, earn floors at 1.
	user := createUser(t, db, 0)
	fillCart(t, db, user.ID,
		entity.CartItem{ItemID: 4, Name: "Серверный американо", Price: 50, Size: "200мл", Quantity: 1},
	)

	res, err := svc.Checkout(user.ID, &CheckoutReq{})
	require.NoError(t, err)
	assert.Equal(t, int64(50), res.Order.Total)
	assert.Equal(t, int64(0), res.BonusUsed)
	assert.Equal(t, int64(1), res.BonusEarned)
}

func TestCheckoutEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	user := createUser(t, db, 0)
	fillCart(t, db, user.ID) // cart row, no items

	_, err := svc.Checkout(user.ID, &CheckoutReq{})
	require.ErrorIs(t, err, ErrCartEmpty)

	// Nothing written.
	var orders, ledger, outbox int64
	db.Model(&entity.Order{}).Count(&orders)
	db.Model(&entity.BonusTransaction{}).Count(&ledger)
	db.Model(&entity.BonusOutbox{}).Count(&outbox)
	assert.Zero(t, orders)
	assert.Zero(t, ledger)
	assert.Zero(t, outbox)
}

func TestCheckoutNoCartRow(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	user := createUser(t, db, 0)
	_, err := svc.Checkout(user.ID, &CheckoutReq{})
	require.ErrorIs(t, err, ErrCartEmpty)
}

func TestCheckoutDeliveryRequiresAddress(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	user := createUser(t, db, 0)
	fillCart(t, db, user.ID,
		entity.CartItem{ItemID: 1, Name: "Нейро-капучино", Price: 110, Size: "350мл", Quantity: 1},
	)

	_, err := svc.Checkout(user.ID, &CheckoutReq{DeliveryType: entity.DeliveryTypeDelivery})
	require.ErrorIs(t, err, ErrAddressRequired)

	res, err := svc.Checkout(user.ID, &CheckoutReq{
		DeliveryType:    entity.DeliveryTypeDelivery,
		DeliveryAddress: "ул. Ленина, 1",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.DeliveryTypeDelivery, res.Order.DeliveryType)
	assert.Equal(t, "ул. Ленина, 1", res.Order.DeliveryAddress)
}

func TestCheckoutClearsCart(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	user := createUser(t, db, 0)
	fillCart(t, db, user.ID,
		entity.CartItem{ItemID: 1, Name: "Нейро-капучино", Price: 110, Size: "350мл", Quantity: 2},
	)

	_, err := svc.Checkout(user.ID, &CheckoutReq{})
	require.NoError(t, err)

	var left int64
	db.Model(&entity.CartItem{}).Count(&left)
	assert.Zero(t, left)
}

func TestCheckoutSequentialRedeemCannotOverspend(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	user := createUser(t, db, 100)
	fillCart(t, db, user.ID,
		entity.CartItem{ItemID: 2, Name: "Квантовый раф", Price: 200, Size: "450мл", Quantity: 1},
	)

	res1, err := svc.Checkout(user.ID, &CheckoutReq{UseBonus: true})
	require.NoError(t, err)
	assert.Equal(t, int64(100), res1.BonusUsed)

	// Second order sees the already-debited balance.
	cartRepo := repository.NewCartRepository(db)
	cart, err := cartRepo.GetOrCreateCart(user.ID)
	require.NoError(t, err)
	require.NoError(t, db.Create(&entity.CartItem{
		CartID: cart.ID, ItemID: 2, Name: "Квантовый раф", Price: 200, Size: "450мл", Quantity: 1,
	}).Error)

	res2, err := svc.Checkout(user.ID, &CheckoutReq{UseBonus: true})
	require.NoError(t, err)
	assert.Equal(t, int64(0), res2.BonusUsed)
	assert.Equal(t, int64(200), res2.Order.Total)

	var fresh entity.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, int64(0), fresh.BonusPoints)
}

func TestCheckoutAttachesRecipeToNeuroItem(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	user := createUser(t, db, 0)
	fillCart(t, db, user.ID,
		entity.CartItem{ItemID: entity.NeuroCoffeeItemID, Name: "Закатный глитч", Price: 210, Size: "350мл", Quantity: 1},
		entity.CartItem{ItemID: 1, Name: "Нейро-капучино", Price: 110, Size: "350мл", Quantity: 1},
	)

	res, err := svc.Checkout(user.ID, &CheckoutReq{
		Recipe: []byte(`{"fullText":"Название: Закатный глитч\nЦена: 210 руб"}`),
	})
	require.NoError(t, err)

	assert.Contains(t, res.Order.Recipe, "Закатный глитч")

	var neuroLine *entity.OrderItem
	for i := range res.Order.Items {
		if res.Order.Items[i].ItemID == entity.NeuroCoffeeItemID {
			neuroLine = &res.Order.Items[i]
		}
	}
	require.NotNil(t, neuroLine)
	assert.Contains(t, neuroLine.Recipe, "Закатный глитч")
}

func TestCheckoutWritesOutboxOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	user := createUser(t, db, 0)
	fillCart(t, db, user.ID,
		entity.CartItem{ItemID: 1, Name: "Нейро-капучино", Price: 110, Size: "350мл", Quantity: 3},
	)

	res, err := svc.Checkout(user.ID, &CheckoutReq{})
	require.NoError(t, err)

	var rows []entity.BonusOutbox
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.Equal(t, res.Order.ID, rows[0].OrderID)
	assert.Equal(t, user.ID, rows[0].UserID)
	assert.Equal(t, int64(3), rows[0].Points) // 330/100
	assert.Nil(t, rows[0].ProcessedAt)
}

func TestBonusWorkerCreditsOnce(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	user := createUser(t, db, 0)
	fillCart(t, db, user.ID,
		entity.CartItem{ItemID: 2, Name: "Квантовый раф", Price: 140, Size: "350мл", Quantity: 2},
	)
	res, err := svc.Checkout(user.ID, &CheckoutReq{})
	require.NoError(t, err)
	require.Equal(t, int64(2), res.BonusEarned)

	worker := NewBonusWorker(db,
		repository.NewBonusRepository(db),
		repository.NewUserRepository(db),
		testLogger(),
	)

	// Draining twice must credit exactly once.
	worker.Drain(context.Background())
	worker.Drain(context.Background())

	var fresh entity.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, int64(2), fresh.BonusPoints)

	var earned []entity.BonusTransaction
	require.NoError(t, db.Where("type = ?", entity.BonusTypeEarned).Find(&earned).Error)
	require.Len(t, earned, 1)
	assert.Equal(t, int64(2), earned[0].Amount)

	var outbox entity.BonusOutbox
	require.NoError(t, db.First(&outbox).Error)
	assert.NotNil(t, outbox.ProcessedAt)
}

func TestBonusWorkerSkipsAlreadyCredited(t *testing.T) {
	db := newTestDB(t)

	user := createUser(t, db, 5)
	orderID := uint(42)
	// Ledger row exists, outbox row unprocessed — crash between credit and
	// mark. The worker must only mark.
	require.NoError(t, db.Create(&entity.BonusTransaction{
		UserID: user.ID, Amount: 5, Type: entity.BonusTypeEarned, OrderID: &orderID,
	}).Error)
	require.NoError(t, db.Create(&entity.BonusOutbox{
		OrderID: orderID, UserID: user.ID, Points: 5,
	}).Error)

	worker := NewBonusWorker(db,
		repository.NewBonusRepository(db),
		repository.NewUserRepository(db),
		testLogger(),
	)
	worker.Drain(context.Background())

	var fresh entity.User
	require.NoError(t, db.First(&fresh, user.ID).Error)
	assert.Equal(t, int64(5), fresh.BonusPoints)

	var outbox entity.BonusOutbox
	require.NoError(t, db.First(&outbox).Error)
	assert.NotNil(t, outbox.ProcessedAt)
}

func TestOrderDetailScopedToOwner(t *testing.T) {
	db := newTestDB(t)
	svc := newOrderService(db)

	owner := createUser(t, db, 0)
	fillCart(t, db, owner.ID,
		entity.CartItem{ItemID: 1, Name: "Нейро-капучино", Price: 110, Size: "350мл", Quantity: 1},
	)
	res, err := svc.Checkout(owner.ID, &CheckoutReq{})
	require.NoError(t, err)

	other := entity.User{Email: "other@example.com", Role: "user"}
	require.NoError(t, db.Create(&other).Error)

	_, err = svc.DetailForUser(other.ID, res.Order.ID)
	require.ErrorIs(t, err, ErrOrderNotFound)

	got, err := svc.DetailForUser(owner.ID, res.Order.ID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
}
