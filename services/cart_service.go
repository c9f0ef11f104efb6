package services

import (
	"errors"
	"strings"

	"github.com/algrishin88/neurocoffee/entity"
	"github.com/algrishin88/neurocoffee/repository"
	"gorm.io/gorm"
)

// Non-catalog items (only the neuro-coffee) take the client price but the
// server clamps it into a sane band.
const (
	neuroPriceMin     int64 = 80
	neuroPriceMax     int64 = 350
	neuroPriceDefault int64 = 200
)

type CartService struct {
	Repo     *repository.CartRepository
	MenuRepo *repository.MenuRepository
}

func NewCartService(repo *repository.CartRepository, menuRepo *repository.MenuRepository) *CartService {
	return &CartService{Repo: repo, MenuRepo: menuRepo}
}

type AddItemReq struct {
	ItemID   uint   `json:"itemId" binding:"required"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
	Price    int64  `json:"price"`
	Name     string `json:"name"`
	Image    string `json:"image"`
}

// Get returns the user's cart, creating an empty one on first access.
func (s *CartService) Get(userID uint) (*entity.Cart, error) {
	if _, err := s.Repo.GetOrCreateCart(userID); err != nil {
		return nil, err
	}
	return s.Repo.GetCartWithItems(userID)
}

// AddItem prices the line server-side from the catalog. The client price is
// honored only for the neuro-coffee, and only inside the allowed band.
func (s *CartService) AddItem(userID uint, req *AddItemReq) (*entity.Cart, error) {
	qty := req.Quantity
	if qty <= 0 {
		qty = 1
	}
	size := strings.TrimSpace(req.Size)

	row := entity.CartItem{
		ItemID:   req.ItemID,
		Size:     size,
		Quantity: qty,
	}

	priced, err := s.MenuRepo.LookupPrice(req.ItemID, size)
	switch {
	case err == nil:
		row.Price = priced.Price
		row.Name = priced.Name
		row.Image = priced.Image
	case errors.Is(err, gorm.ErrRecordNotFound):
		if req.ItemID != entity.NeuroCoffeeItemID {
			return nil, ErrItemNotFound
		}
		row.Price = clampNeuroPrice(req.Price)
		row.Name = strings.TrimSpace(req.Name)
		if row.Name == "" {
			row.Name = "Нейро-кофе"
		}
		row.Image = strings.TrimSpace(req.Image)
	default:
		return nil, err
	}

	cart, err := s.Repo.GetOrCreateCart(userID)
	if err != nil {
		return nil, err
	}
	row.CartID = cart.ID
	if err := s.Repo.UpsertItem(cart.ID, &row); err != nil {
		return nil, err
	}
	return s.Repo.GetCartWithItems(userID)
}

func (s *CartService) UpdateQuantity(userID, itemID uint, size string, quantity int) (*entity.Cart, error) {
	if quantity < 0 {
		return nil, ErrInvalidQuantity
	}
	cart, err := s.Repo.GetOrCreateCart(userID)
	if err != nil {
		return nil, err
	}
	item, err := s.Repo.FindItem(cart.ID, itemID, size)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, err
	}
	if quantity == 0 {
		if err := s.Repo.DeleteItem(item.ID); err != nil {
			return nil, err
		}
	} else if err := s.Repo.UpdateQuantity(item.ID, quantity); err != nil {
		return nil, err
	}
	return s.Repo.GetCartWithItems(userID)
}

func (s *CartService) RemoveItem(userID, itemID uint, size string) (*entity.Cart, error) {
	cart, err := s.Repo.GetOrCreateCart(userID)
	if err != nil {
		return nil, err
	}
	item, err := s.Repo.FindItem(cart.ID, itemID, size)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCartItemNotFound
	}
	if err != nil {
		return nil, err
	}
	if err := s.Repo.DeleteItem(item.ID); err != nil {
		return nil, err
	}
	return s.Repo.GetCartWithItems(userID)
}

func (s *CartService) Clear(userID uint) error {
	cart, err := s.Repo.GetOrCreateCart(userID)
	if err != nil {
		return err
	}
	return s.Repo.ClearItems(s.Repo.DB, cart.ID)
}

func clampNeuroPrice(p int64) int64 {
	if p <= 0 {
		return neuroPriceDefault
	}
	if p < neuroPriceMin {
		return neuroPriceMin
	}
	if p > neuroPriceMax {
		return neuroPriceMax
	}
	return p
}
