package controllers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/algrishin88/neurocoffee/entity"
	"github.com/algrishin88/neurocoffee/pkg/resp"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AdminController is the back office. It talks to the database directly:
// the operations are simple list/update queries with no business rules of
// their own, except the bonus adjustment which must append a ledger row.
type AdminController struct {
	DB  *gorm.DB
	Dev bool
}

func NewAdminController(db *gorm.DB, dev bool) *AdminController {
	return &AdminController{DB: db, Dev: dev}
}

func (ctl *AdminController) Dashboard(c *gin.Context) {
	var (
		users, orders, pendingOrders int64
		pendingBookings, newContacts int64
		ordersToday, usersToday      int64
		revenue                      int64
	)
	today := time.Now().Truncate(24 * time.Hour)

	ctl.DB.Model(&entity.User{}).Count(&users)
	ctl.DB.Model(&entity.User{}).Where("created_at >= ?", today).Count(&usersToday)
	ctl.DB.Model(&entity.Order{}).Count(&orders)
	ctl.DB.Model(&entity.Order{}).Where("status = ?", entity.OrderStatusPending).Count(&pendingOrders)
	ctl.DB.Model(&entity.Order{}).Where("created_at >= ?", today).Count(&ordersToday)
	ctl.DB.Model(&entity.Booking{}).Where("status = ?", "pending").Count(&pendingBookings)
	ctl.DB.Model(&entity.Contact{}).Where("status = ?", "new").Count(&newContacts)
	ctl.DB.Model(&entity.Order{}).
		Where("payment_status = ?", entity.PaymentStatusPaid).
		Select("COALESCE(SUM(total), 0)").Scan(&revenue)

	resp.OK(c, gin.H{"stats": gin.H{
		"users":           users,
		"usersToday":      usersToday,
		"orders":          orders,
		"ordersToday":     ordersToday,
		"pendingOrders":   pendingOrders,
		"revenue":         revenue,
		"pendingBookings": pendingBookings,
		"newContacts":     newContacts,
	}})
}

func (ctl *AdminController) ListOrders(c *gin.Context) {
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	q := ctl.DB.Preload("Items").Preload("User")
	if status := c.Query("status"); status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []entity.Order
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&orders).Error
	if err != nil {
		resp.ServerError(c, "Ошибка загрузки заказов", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"orders": orders})
}

func (ctl *AdminController) UpdateOrderStatus(c *gin.Context) {
	var req struct {
		Status        *string `json:"status" binding:"omitempty,oneof=pending confirmed completed cancelled"`
		PaymentStatus *string `json:"paymentStatus" binding:"omitempty,oneof=pending paid"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || (req.Status == nil && req.PaymentStatus == nil) {
		resp.BadRequest(c, "Некорректный статус")
		return
	}
	updates := map[string]any{}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.PaymentStatus != nil {
		updates["payment_status"] = *req.PaymentStatus
	}
	res := ctl.DB.Model(&entity.Order{}).Where("id = ?", c.Param("id")).Updates(updates)
	if res.Error != nil {
		resp.ServerError(c, "Ошибка обновления заказа", res.Error, ctl.Dev)
		return
	}
	if res.RowsAffected == 0 {
		resp.NotFound(c, "Заказ не найден")
		return
	}
	resp.OK(c, gin.H{"message": "Статус обновлён"})
}

func (ctl *AdminController) ListUsers(c *gin.Context) {
	limit := queryInt(c, "limit", 50)
	offset := queryInt(c, "offset", 0)

	q := ctl.DB.Model(&entity.User{})
	if search := c.Query("search"); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		q = q.Where("LOWER(email) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?",
			like, like, like)
	}

	var users []entity.User
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		resp.ServerError(c, "Ошибка загрузки пользователей", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"users": users})
}

// UpdateUser changes role and bonus balance. Balance changes go through a
// transaction that appends an `adjusted` ledger row, so the invariant
// "every balance mutation has a ledger entry" holds for manual edits too.
func (ctl *AdminController) UpdateUser(c *gin.Context) {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		resp.BadRequest(c, "Некорректный пользователь")
		return
	}
	var req struct {
		Role        *string `json:"role"`
		BonusPoints *int64  `json:"bonusPoints"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Некорректные данные")
		return
	}
	if req.Role != nil && *req.Role != "user" && *req.Role != "admin" {
		resp.BadRequest(c, "Некорректная роль")
		return
	}

	err = ctl.DB.Transaction(func(tx *gorm.DB) error {
		var user entity.User
		if err := tx.First(&user, userID).Error; err != nil {
			return err
		}
		if req.Role != nil && *req.Role != user.Role {
			if err := tx.Model(&user).Update("role", *req.Role).Error; err != nil {
				return err
			}
		}
		if req.BonusPoints != nil && *req.BonusPoints != user.BonusPoints {
			delta := *req.BonusPoints - user.BonusPoints
			if err := tx.Model(&user).Update("bonus_points", *req.BonusPoints).Error; err != nil {
				return err
			}
			if err := tx.Create(&entity.BonusTransaction{
				UserID:      user.ID,
				Amount:      delta,
				Type:        entity.BonusTypeAdjusted,
				Description: "Корректировка администратором",
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.NotFound(c, "Пользователь не найден")
		return
	}
	if err != nil {
		resp.ServerError(c, "Ошибка обновления пользователя", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"message": "Пользователь обновлён"})
}

func (ctl *AdminController) ListMenu(c *gin.Context) {
	var items []entity.MenuItem
	err := ctl.DB.Preload("Sizes", func(db *gorm.DB) *gorm.DB {
		return db.Order("price ASC")
	}).Order("item_id ASC").Find(&items).Error
	if err != nil {
		resp.ServerError(c, "Ошибка загрузки меню", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"items": items})
}

type menuItemReq struct {
	ItemID      uint   `json:"itemId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Image       string `json:"image"`
	Category    string `json:"category"`
	Available   *bool  `json:"available"`
	Sizes       []struct {
		Size  string `json:"size" binding:"required"`
		Price int64  `json:"price" binding:"required,min=1"`
	} `json:"sizes" binding:"required,min=1"`
}

func (ctl *AdminController) CreateMenuItem(c *gin.Context) {
	var req menuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Некорректная позиция меню")
		return
	}
	item := entity.MenuItem{
		ItemID:      req.ItemID,
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		Category:    req.Category,
		Available:   true,
	}
	if req.Available != nil {
		item.Available = *req.Available
	}
	for _, s := range req.Sizes {
		item.Sizes = append(item.Sizes, entity.MenuItemSize{Size: s.Size, Price: s.Price})
	}
	if err := ctl.DB.Create(&item).Error; err != nil {
		resp.ServerError(c, "Ошибка создания позиции", err, ctl.Dev)
		return
	}
	resp.Created(c, gin.H{"item": item})
}

func (ctl *AdminController) UpdateMenuItem(c *gin.Context) {
	var req menuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Некорректная позиция меню")
		return
	}
	err := ctl.DB.Transaction(func(tx *gorm.DB) error {
		var item entity.MenuItem
		if err := tx.First(&item, c.Param("id")).Error; err != nil {
			return err
		}
		updates := map[string]any{
			"item_id":     req.ItemID,
			"name":        req.Name,
			"description": req.Description,
			"image":       req.Image,
			"category":    req.Category,
		}
		if req.Available != nil {
			updates["available"] = *req.Available
		}
		if err := tx.Model(&item).Updates(updates).Error; err != nil {
			return err
		}
		// Sizes are replaced wholesale.
		if err := tx.Where("menu_item_id = ?", item.ID).Delete(&entity.MenuItemSize{}).Error; err != nil {
			return err
		}
		for _, s := range req.Sizes {
			if err := tx.Create(&entity.MenuItemSize{
				MenuItemID: item.ID, Size: s.Size, Price: s.Price,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		resp.NotFound(c, "Позиция не найдена")
		return
	}
	if err != nil {
		resp.ServerError(c, "Ошибка обновления позиции", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"message": "Позиция обновлена"})
}

func (ctl *AdminController) DeleteMenuItem(c *gin.Context) {
	res := ctl.DB.Delete(&entity.MenuItem{}, c.Param("id"))
	if res.Error != nil {
		resp.ServerError(c, "Ошибка удаления позиции", res.Error, ctl.Dev)
		return
	}
	if res.RowsAffected == 0 {
		resp.NotFound(c, "Позиция не найдена")
		return
	}
	resp.OK(c, gin.H{"message": "Позиция удалена"})
}

func (ctl *AdminController) ListBookings(c *gin.Context) {
	var bookings []entity.Booking
	if err := ctl.DB.Order("date DESC, time DESC").Find(&bookings).Error; err != nil {
		resp.ServerError(c, "Ошибка загрузки бронирований", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"bookings": bookings})
}

func (ctl *AdminController) UpdateBookingStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required,oneof=pending confirmed cancelled"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Некорректный статус")
		return
	}
	res := ctl.DB.Model(&entity.Booking{}).Where("id = ?", c.Param("id")).
		Update("status", req.Status)
	if res.Error != nil {
		resp.ServerError(c, "Ошибка обновления бронирования", res.Error, ctl.Dev)
		return
	}
	if res.RowsAffected == 0 {
		resp.NotFound(c, "Бронирование не найдено")
		return
	}
	resp.OK(c, gin.H{"message": "Статус обновлён"})
}

func (ctl *AdminController) ListContacts(c *gin.Context) {
	var contacts []entity.Contact
	if err := ctl.DB.Order("created_at DESC").Find(&contacts).Error; err != nil {
		resp.ServerError(c, "Ошибка загрузки сообщений", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"contacts": contacts})
}

func (ctl *AdminController) UpdateContactStatus(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required,oneof=new processed"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, "Некорректный статус")
		return
	}
	res := ctl.DB.Model(&entity.Contact{}).Where("id = ?", c.Param("id")).
		Update("status", req.Status)
	if res.Error != nil {
		resp.ServerError(c, "Ошибка обновления сообщения", res.Error, ctl.Dev)
		return
	}
	if res.RowsAffected == 0 {
		resp.NotFound(c, "Сообщение не найдено")
		return
	}
	resp.OK(c, gin.H{"message": "Статус обновлён"})
}

func (ctl *AdminController) ListSubscribers(c *gin.Context) {
	var subs []entity.NewsletterSubscriber
	if err := ctl.DB.Order("created_at DESC").Find(&subs).Error; err != nil {
		resp.ServerError(c, "Ошибка загрузки подписчиков", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"subscribers": subs})
}

func (ctl *AdminController) ListSupportChats(c *gin.Context) {
	limit := queryInt(c, "limit", 50)
	var chats []entity.SupportChat
	err := ctl.DB.Preload("Messages", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at ASC")
	}).Order("updated_at DESC").Limit(limit).Find(&chats).Error
	if err != nil {
		resp.ServerError(c, "Ошибка загрузки чатов", err, ctl.Dev)
		return
	}
	resp.OK(c, gin.H{"chats": chats})
}

func queryInt(c *gin.Context, name string, def int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil || v < 0 || v > 10000 {
		return def
	}
	return v
}
