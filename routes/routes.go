package routes

import (
	"net/http"

	"github.com/algrishin88/neurocoffee/controllers"
	"github.com/algrishin88/neurocoffee/middlewares"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Controllers struct {
	Auth       *controllers.AuthController
	OAuth      *controllers.OAuthController
	QR         *controllers.QRController
	Cart       *controllers.CartController
	Order      *controllers.OrderController
	Payment    *controllers.PaymentController
	Menu       *controllers.MenuController
	Booking    *controllers.BookingController
	Contact    *controllers.ContactController
	Newsletter *controllers.NewsletterController
	AI         *controllers.AIController
	Support    *controllers.SupportController
	Bonus      *controllers.BonusController
	Admin      *controllers.AdminController
}

func Setup(r *gin.Engine, ctl *Controllers, db *gorm.DB, jwtSecret string) {
	r.Use(middlewares.CORSMiddleware())

	api := r.Group("/api")

	api.GET("/health", func(c *gin.Context) {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded", "database": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok", "database": "up"})
	})

	auth := api.Group("/auth")
	{
		auth.POST("/register", ctl.Auth.Register)
		auth.POST("/login", ctl.Auth.Login)
		auth.GET("/me", middlewares.AuthMiddleware(jwtSecret), ctl.Auth.Me)
		auth.PATCH("/me", middlewares.AuthMiddleware(jwtSecret), ctl.Auth.UpdateMe)

		auth.GET("/yandex/login", ctl.OAuth.Begin)
		auth.GET("/yandex/callback", ctl.OAuth.Callback)
		auth.POST("/yandex/callback", ctl.OAuth.Callback)

		auth.POST("/qr/request", ctl.QR.Generate)
		auth.POST("/qr/confirm", middlewares.AuthMiddleware(jwtSecret), ctl.QR.Confirm)
		auth.GET("/qr/status", ctl.QR.Status)
	}

	api.GET("/menu", ctl.Menu.List)
	api.GET("/menu/:id", ctl.Menu.Detail)

	cart := api.Group("/cart", middlewares.AuthMiddleware(jwtSecret))
	{
		cart.GET("", ctl.Cart.Get)
		cart.POST("/add", ctl.Cart.AddItem)
		cart.PUT("/update/:itemId/:size", ctl.Cart.UpdateItem)
		cart.DELETE("/remove/:itemId/:size", ctl.Cart.RemoveItem)
		cart.DELETE("/clear", ctl.Cart.Clear)
	}

	orders := api.Group("/orders", middlewares.AuthMiddleware(jwtSecret))
	{
		orders.POST("", ctl.Order.Checkout)
		orders.GET("", ctl.Order.List)
		orders.GET("/:id", ctl.Order.Detail)
	}

	payments := api.Group("/payments")
	{
		payments.POST("/create-sbp", middlewares.AuthMiddleware(jwtSecret), ctl.Payment.CreateSBP)
		payments.POST("/webhook", ctl.Payment.Webhook)
	}

	api.GET("/bonus/history", middlewares.AuthMiddleware(jwtSecret), ctl.Bonus.History)

	bookings := api.Group("/bookings")
	{
		bookings.POST("", middlewares.OptionalAuth(jwtSecret), ctl.Booking.Create)
		bookings.GET("/my", middlewares.AuthMiddleware(jwtSecret), ctl.Booking.List)
	}

	api.POST("/contacts", ctl.Contact.Submit)

	newsletter := api.Group("/newsletter")
	{
		newsletter.POST("/subscribe", ctl.Newsletter.Subscribe)
		newsletter.GET("/unsubscribe", ctl.Newsletter.Unsubscribe)
		newsletter.POST("/send", middlewares.AuthMiddleware(jwtSecret, "admin"), ctl.Newsletter.Send)
	}

	ai := api.Group("/ai")
	{
		ai.POST("/generate-coffee", middlewares.AuthMiddleware(jwtSecret), ctl.AI.GenerateCoffee)
		ai.POST("/chat", ctl.AI.Chat)
	}

	support := api.Group("/support")
	{
		support.POST("/request-operator", middlewares.OptionalAuth(jwtSecret), ctl.Support.RequestOperator)
		support.GET("/chats", middlewares.AuthMiddleware(jwtSecret, "admin"), ctl.Admin.ListSupportChats)
	}

	admin := api.Group("/admin", middlewares.AuthMiddleware(jwtSecret, "admin"))
	{
		admin.GET("/dashboard", ctl.Admin.Dashboard)
		admin.GET("/orders", ctl.Admin.ListOrders)
		admin.PATCH("/orders/:id/status", ctl.Admin.UpdateOrderStatus)
		admin.GET("/users", ctl.Admin.ListUsers)
		admin.PATCH("/users/:id", ctl.Admin.UpdateUser)
		admin.GET("/menu", ctl.Admin.ListMenu)
		admin.POST("/menu", ctl.Admin.CreateMenuItem)
		admin.PUT("/menu/:id", ctl.Admin.UpdateMenuItem)
		admin.DELETE("/menu/:id", ctl.Admin.DeleteMenuItem)
		admin.GET("/bookings", ctl.Admin.ListBookings)
		admin.PATCH("/bookings/:id/status", ctl.Admin.UpdateBookingStatus)
		admin.GET("/contacts", ctl.Admin.ListContacts)
		admin.PATCH("/contacts/:id/status", ctl.Admin.UpdateContactStatus)
		admin.GET("/newsletter", ctl.Admin.ListSubscribers)
	}
}
