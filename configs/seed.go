package configs

import (
	"log/slog"

	"github.com/algrishin88/neurocoffee/entity"
)

// SeedMenu fills the catalog on first start. No-op when menu_items already
// has rows.
func SeedMenu() error {
	var count int64
	if err := db.Model(&entity.MenuItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items := []entity.MenuItem{
		{ItemID: 1, Name: "Нейро-капучино", Description: "бодрящий капучино для старта работы", Image: "images/img_1.jpg", Category: "coffee", Available: true,
			Sizes: []entity.MenuItemSize{{Size: "200мл", Price: 89}, {Size: "350мл", Price: 110}}},
		{ItemID: 2, Name: "Квантовый раф", Description: "Почти как компьютер, только на сливках", Image: "images/img_2.jpg", Category: "coffee", Available: true,
			Sizes: []entity.MenuItemSize{{Size: "350мл", Price: 140}, {Size: "450мл", Price: 200}}},
		{ItemID: 3, Name: "Цифровой Латте", Description: "С ним точно ничего не забудите", Image: "images/img_3.jpg", Category: "coffee", Available: true,
			Sizes: []entity.MenuItemSize{{Size: "250мл", Price: 110}, {Size: "350мл", Price: 150}}},
		{ItemID: 4, Name: "Серверный американо", Description: "Крепкий, для настоящих senior", Image: "images/img_4.jpg", Category: "coffee", Available: true,
			Sizes: []entity.MenuItemSize{{Size: "200мл", Price: 110}, {Size: "300мл", Price: 130}}},
		{ItemID: 5, Name: "Матча ревью", Description: "Для тех, у кого сегодня код-ревью", Image: "images/img_6.jpg", Category: "tea", Available: true,
			Sizes: []entity.MenuItemSize{{Size: "250мл", Price: 200}, {Size: "350мл", Price: 250}}},
		{ItemID: entity.NeuroCoffeeItemID, Name: "Ваш нейро-кофе", Description: "Сгенерируйте свой нейро-кофе дня", Image: "images/img_5.jpg", Category: "special", Available: true,
			Sizes: []entity.MenuItemSize{{Size: "200мл", Price: 80}, {Size: "450мл", Price: 350}}},
	}

	if err := db.Create(&items).Error; err != nil {
		return err
	}
	slog.Info("menu seeded", "items", len(items))
	return nil
}

// PromoteAdmins elevates the configured emails to the admin role.
func PromoteAdmins(cfg *Config) error {
	for _, email := range cfg.AdminEmails {
		res := db.Model(&entity.User{}).
			Where("LOWER(email) = ? AND role != ?", email, "admin").
			Update("role", "admin")
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected > 0 {
			slog.Info("promoted admin", "email", email)
		}
	}
	return nil
}
