package services

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/algrishin88/neurocoffee/entity"
	"github.com/algrishin88/neurocoffee/pkg/tokenstore"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.MenuItem{}, &entity.MenuItemSize{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.BonusTransaction{}, &entity.BonusOutbox{},
		&entity.Booking{},
		&entity.Contact{},
		&entity.NewsletterSubscriber{},
		&entity.SupportChat{}, &entity.SupportMessage{},
	))
	return db
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func createUser(t *testing.T, db *gorm.DB, bonusPoints int64) *entity.User {
	t.Helper()
	user := entity.User{
		Email:       "guest@example.com",
		FirstName:   "Гость",
		Role:        "user",
		BonusPoints: bonusPoints,
	}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedMenuItem(t *testing.T, db *gorm.DB, itemID uint, name string, sizes map[string]int64) {
	t.Helper()
	item := entity.MenuItem{ItemID: itemID, Name: name, Category: "coffee", Available: true}
	for size, price := range sizes {
		item.Sizes = append(item.Sizes, entity.MenuItemSize{Size: size, Price: price})
	}
	require.NoError(t, db.Create(&item).Error)
}

func fillCart(t *testing.T, db *gorm.DB, userID uint, items ...entity.CartItem) {
	t.Helper()
	cart := entity.Cart{UserID: userID}
	require.NoError(t, db.Create(&cart).Error)
	for i := range items {
		items[i].CartID = cart.ID
		require.NoError(t, db.Create(&items[i]).Error)
	}
}

// memStore is an in-memory tokenstore.Store for tests.
type memStore struct {
	mu      sync.Mutex
	entries map[string]memEntry
}

type memEntry struct {
	value   string
	expires time.Time
}

func newMemStore() *memStore {
	return &memStore{entries: map[string]memEntry{}}
}

func (s *memStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memEntry{value: value, expires: time.Now().Add(ttl)}
	return nil
}

func (s *memStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if !ok || time.Now().After(e.expires) {
		delete(s.entries, key)
		return "", tokenstore.ErrNotFound
	}
	return e.value, nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}
