package services

import (
	"encoding/json"
	"errors"
	"regexp"
	"strings"

	"github.com/algrishin88/neurocoffee/entity"
	"github.com/algrishin88/neurocoffee/repository"
	"gorm.io/gorm"
)

// Bonus program constants: 1 point = 1 RUB, redemption covers at most half
// of the subtotal, every paid order earns 1 point per 100 RUB (minimum 1).
const (
	bonusEarnDivisor = 100
	minOrderTotal    = 1
)

var neuroNameRe = regexp.MustCompile(`(?i)нейро|ваш нейро|нейро-кофе`)

type OrderService struct {
	DB        *gorm.DB
	Repo      *repository.OrderRepository
	CartRepo  *repository.CartRepository
	UserRepo  *repository.UserRepository
	BonusRepo *repository.BonusRepository
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	cartRepo *repository.CartRepository,
	userRepo *repository.UserRepository,
	bonusRepo *repository.BonusRepository,
) *OrderService {
	return &OrderService{DB: db, Repo: repo, CartRepo: cartRepo, UserRepo: userRepo, BonusRepo: bonusRepo}
}

type CheckoutReq struct {
	DeliveryType    string          `json:"deliveryType"`
	DeliveryAddress string          `json:"deliveryAddress"`
	Phone           string          `json:"phone"`
	Notes           string          `json:"notes"`
	Recipe          json.RawMessage `json:"recipe"`
	UseBonus        bool            `json:"useBonus"`
}

type CheckoutRes struct {
	Order       *entity.Order `json:"order"`
	BonusUsed   int64         `json:"bonusUsed"`
	BonusEarned int64         `json:"bonusEarned"`
}

// Checkout turns the user's cart into an order. The money-affecting parts —
// balance read, order + item writes, cart clear, spent-ledger write and the
// earn-outbox write — run in one transaction under row locks on the user and
// cart rows.
func (s *OrderService) Checkout(userID uint, req *CheckoutReq) (*CheckoutRes, error) {
	deliveryType := entity.DeliveryTypePickup
	if req.DeliveryType == entity.DeliveryTypeDelivery {
		deliveryType = entity.DeliveryTypeDelivery
	}

	address := "Самовывоз"
	if deliveryType == entity.DeliveryTypeDelivery {
		address = strings.TrimSpace(req.DeliveryAddress)
		if address == "" {
			return nil, ErrAddressRequired
		}
	}

	recipeJSON, recipeText := normalizeRecipe(req.Recipe)

	var out CheckoutRes
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		// Lock order matters: user first, then cart, same as every other
		// checkout path, so two requests for one user cannot deadlock.
		user, err := s.UserRepo.LockForUpdate(tx, userID)
		if err != nil {
			return err
		}

		cart, err := s.CartRepo.LockCart(tx, userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCartEmpty
		}
		if err != nil {
			return err
		}

		items, err := s.CartRepo.ItemsForCart(tx, cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return ErrCartEmpty
		}

		var subtotal int64
		for _, it := range items {
			subtotal += it.Price * int64(it.Quantity)
		}

		var discount int64
		if req.UseBonus && user.BonusPoints > 0 {
			discount = min(user.BonusPoints, subtotal/2)
		}
		total := subtotal - discount
		if total < minOrderTotal {
			total = minOrderTotal
		}

		order := entity.Order{
			UserID:          userID,
			Total:           total,
			Status:          entity.OrderStatusPending,
			DeliveryType:    deliveryType,
			DeliveryAddress: address,
			Phone:           strings.TrimSpace(req.Phone),
			Notes:           strings.TrimSpace(req.Notes),
			Recipe:          recipeJSON,
			PaymentMethod:   entity.PaymentMethodSBP,
			PaymentStatus:   entity.PaymentStatusPending,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}

		orderItems := make([]entity.OrderItem, 0, len(items))
		for _, it := range items {
			oi := entity.OrderItem{
				OrderID:  order.ID,
				ItemID:   it.ItemID,
				Name:     it.Name,
				Price:    it.Price,
				Size:     it.Size,
				Image:    it.Image,
				Quantity: it.Quantity,
			}
			if recipeText != "" && isNeuroItem(it.ItemID, it.Name) {
				oi.Recipe = recipeText
			}
			orderItems = append(orderItems, oi)
		}
		if err := s.Repo.CreateOrderItems(tx, orderItems); err != nil {
			return err
		}

		if err := s.CartRepo.ClearItems(tx, cart.ID); err != nil {
			return err
		}

		if discount > 0 {
			if err := s.UserRepo.AddBonusPoints(tx, userID, -discount); err != nil {
				return err
			}
			if err := s.BonusRepo.CreateTransaction(tx, &entity.BonusTransaction{
				UserID:      userID,
				Amount:      -discount,
				Type:        entity.BonusTypeSpent,
				Description: "Списание при оплате заказа",
				OrderID:     &order.ID,
			}); err != nil {
				return err
			}
		}

		// Earn from the pre-discount subtotal. Written durably here, credited
		// by the outbox worker after commit.
		earned := subtotal / bonusEarnDivisor
		if earned < 1 {
			earned = 1
		}
		if err := s.BonusRepo.CreateOutbox(tx, &entity.BonusOutbox{
			OrderID: order.ID,
			UserID:  userID,
			Points:  earned,
		}); err != nil {
			return err
		}

		order.Items = orderItems
		out = CheckoutRes{Order: &order, BonusUsed: discount, BonusEarned: earned}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *OrderService) ListForUser(userID uint) ([]entity.Order, error) {
	return s.Repo.ListForUser(userID)
}

func (s *OrderService) DetailForUser(userID, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetForUser(userID, orderID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	return o, nil
}

// isNeuroItem matches the AI-generated drink by its reserved catalog id or
// by name.
func isNeuroItem(itemID uint, name string) bool {
	return itemID == entity.NeuroCoffeeItemID || neuroNameRe.MatchString(name)
}

// normalizeRecipe keeps the raw JSON for the order row and pulls the
// human-readable fullText for the neuro-coffee line.
func normalizeRecipe(raw json.RawMessage) (recipeJSON, recipeText string) {
	if len(raw) == 0 {
		return "", ""
	}
	recipeJSON = string(raw)

	var asString string
	if err := json.Unmarshal(raw, &asString); err == nil {
		return asString, asString
	}

	var obj struct {
		FullText string `json:"fullText"`
	}
	if err := json.Unmarshal(raw, &obj); err == nil && obj.FullText != "" {
		recipeText = obj.FullText
	}
	return recipeJSON, recipeText
}
