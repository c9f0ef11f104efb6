package services

import (
	"testing"

	"github.com/algrishin88/neurocoffee/entity"
	"github.com/algrishin88/neurocoffee/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newCartService(db *gorm.DB) *CartService {
	return NewCartService(repository.NewCartRepository(db), repository.NewMenuRepository(db))
}

func TestAddItemUsesCatalogPrice(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)

	user := createUser(t, db, 0)
	seedMenuItem(t, db, 1, "Нейро-капучино", map[string]int64{"200мл": 89, "350мл": 110})

	// Client-supplied price for a catalog item is ignored.
	cart, err := svc.AddItem(user.ID, &AddItemReq{ItemID: 1, Size: "350мл", Price: 1, Name: "подделка"})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, int64(110), cart.Items[0].Price)
	assert.Equal(t, "Нейро-капучино", cart.Items[0].Name)
}

func TestAddItemUnknownItemRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)

	user := createUser(t, db, 0)
	_, err := svc.AddItem(user.ID, &AddItemReq{ItemID: 99, Size: "350мл", Price: 100})
	require.ErrorIs(t, err, ErrItemNotFound)
}

func TestAddItemUnavailableItemRejected(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)

	user := createUser(t, db, 0)
	item := entity.MenuItem{ItemID: 3, Name: "Цифровой Латте", Available: false,
		Sizes: []entity.MenuItemSize{{Size: "350мл", Price: 150}}}
	require.NoError(t, db.Create(&item).Error)

	_, err := svc.AddItem(user.ID, &AddItemReq{ItemID: 3, Size: "350мл"})
	require.ErrorIs(t, err, ErrItemNotFound)

	// The flag must round-trip as stored: a default tag would make gorm
	// skip the false zero value on insert.
	var stored entity.MenuItem
	require.NoError(t, db.Where("item_id = ?", 3).First(&stored).Error)
	assert.False(t, stored.Available)
}

func TestGetLazyCreatesEmptyCart(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)
	user := createUser(t, db, 0)

	cart, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, cart.UserID)
	assert.Empty(t, cart.Items)

	// Second read reuses the same cart instead of creating another.
	again, err := svc.Get(user.ID)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)
}

func TestAddNeuroItemClampsPrice(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)
	user := createUser(t, db, 0)

	cases := []struct {
		given, want int64
	}{
		{0, 200},   // missing price gets the default
		{-50, 200}, // nonsense gets the default
		{10, 80},   // below the band
		{9999, 350},
		{210, 210}, // inside the band passes through
	}
	for _, tc := range cases {
		cart, err := svc.AddItem(user.ID, &AddItemReq{
			ItemID: entity.NeuroCoffeeItemID,
			Size:   "350мл",
			Price:  tc.given,
			Name:   "Закатный глитч",
		})
		require.NoError(t, err)
		require.Len(t, cart.Items, 1)
		assert.Equal(t, tc.want, cart.Items[0].Price, "price %d", tc.given)
		require.NoError(t, svc.Clear(user.ID))
	}
}

func TestAddItemMergesQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)

	user := createUser(t, db, 0)
	seedMenuItem(t, db, 2, "Квантовый раф", map[string]int64{"350мл": 140, "450мл": 200})

	_, err := svc.AddItem(user.ID, &AddItemReq{ItemID: 2, Size: "350мл", Quantity: 1})
	require.NoError(t, err)
	cart, err := svc.AddItem(user.ID, &AddItemReq{ItemID: 2, Size: "350мл", Quantity: 2})
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 3, cart.Items[0].Quantity)

	// A different size is a separate line.
	cart, err = svc.AddItem(user.ID, &AddItemReq{ItemID: 2, Size: "450мл", Quantity: 1})
	require.NoError(t, err)
	assert.Len(t, cart.Items, 2)
}

func TestUpdateQuantity(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)

	user := createUser(t, db, 0)
	seedMenuItem(t, db, 1, "Нейро-капучино", map[string]int64{"350мл": 110})
	_, err := svc.AddItem(user.ID, &AddItemReq{ItemID: 1, Size: "350мл", Quantity: 1})
	require.NoError(t, err)

	cart, err := svc.UpdateQuantity(user.ID, 1, "350мл", 5)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	// Zero removes the line.
	cart, err = svc.UpdateQuantity(user.ID, 1, "350мл", 0)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.UpdateQuantity(user.ID, 1, "350мл", 2)
	require.ErrorIs(t, err, ErrCartItemNotFound)

	_, err = svc.UpdateQuantity(user.ID, 1, "350мл", -1)
	require.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestRemoveItem(t *testing.T) {
	db := newTestDB(t)
	svc := newCartService(db)

	user := createUser(t, db, 0)
	seedMenuItem(t, db, 1, "Нейро-капучино", map[string]int64{"350мл": 110})
	_, err := svc.AddItem(user.ID, &AddItemReq{ItemID: 1, Size: "350мл"})
	require.NoError(t, err)

	cart, err := svc.RemoveItem(user.ID, 1, "350мл")
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	_, err = svc.RemoveItem(user.ID, 1, "350мл")
	require.ErrorIs(t, err, ErrCartItemNotFound)
}
