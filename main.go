package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/algrishin88/neurocoffee/configs"
	"github.com/algrishin88/neurocoffee/controllers"
	"github.com/algrishin88/neurocoffee/pkg/logging"
	"github.com/algrishin88/neurocoffee/pkg/mailer"
	"github.com/algrishin88/neurocoffee/pkg/telegram"
	"github.com/algrishin88/neurocoffee/pkg/tokenstore"
	"github.com/algrishin88/neurocoffee/pkg/yandex"
	"github.com/algrishin88/neurocoffee/pkg/yookassa"
	"github.com/algrishin88/neurocoffee/repository"
	"github.com/algrishin88/neurocoffee/routes"
	"github.com/algrishin88/neurocoffee/services"
	"github.com/gin-gonic/gin"
)

func main() {
	logging.Setup()
	cfg := configs.LoadConfig()

	if err := configs.ConnectionDB(cfg); err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	if err := configs.SetupDatabase(); err != nil {
		slog.Error("database migration failed", "error", err)
		os.Exit(1)
	}
	if err := configs.SeedMenu(); err != nil {
		slog.Error("menu seeding failed", "error", err)
		os.Exit(1)
	}
	if err := configs.PromoteAdmins(cfg); err != nil {
		slog.Error("admin promotion failed", "error", err)
		os.Exit(1)
	}

	redisClient, err := configs.ConnectRedis(cfg)
	if err != nil {
		slog.Error("redis connection failed", "error", err)
		os.Exit(1)
	}
	tokens := tokenstore.NewRedisStore(redisClient, "neurocoffee")

	db := configs.DB()
	log := slog.Default()
	dev := cfg.IsDevelopment()

	userRepo := repository.NewUserRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	menuRepo := repository.NewMenuRepository(db)
	bonusRepo := repository.NewBonusRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	contactRepo := repository.NewContactRepository(db)
	newsletterRepo := repository.NewNewsletterRepository(db)
	supportRepo := repository.NewSupportRepository(db)

	gateway := yookassa.NewClient(cfg.YookassaShopID, cfg.YookassaSecretKey)
	oauthClient := yandex.NewOAuthClient(cfg.YandexClientID, cfg.YandexClientSecret, cfg.YandexRedirectURI)
	gptClient := yandex.NewGPTClient(cfg.YandexGPTAPIKey, cfg.YandexGPTFolderID)
	tgClient := telegram.NewClient(cfg.TelegramBotToken, cfg.TelegramChatID, cfg.TelegramSupportChatID)
	mail := mailer.New(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.ContactEmail, cfg.BaseURL)

	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	oauthService := services.NewOAuthService(oauthClient, tokens, userRepo, authService)
	qrService := services.NewQRService(tokens, userRepo, authService)
	cartService := services.NewCartService(cartRepo, menuRepo)
	orderService := services.NewOrderService(db, orderRepo, cartRepo, userRepo, bonusRepo)
	paymentService := services.NewPaymentService(gateway, orderRepo, cfg.BaseURL, log)
	bonusService := services.NewBonusService(bonusRepo, userRepo)
	bookingService := services.NewBookingService(bookingRepo)
	contactService := services.NewContactService(contactRepo, mail, log)
	newsletterService := services.NewNewsletterService(newsletterRepo, mail)
	recipeService := services.NewRecipeService(gptClient, tgClient, log)
	supportService := services.NewSupportService(supportRepo, tgClient, log)

	worker := services.NewBonusWorker(db, bonusRepo, userRepo, log)
	workerCtx, stopWorker := context.WithCancel(context.Background())
	go worker.Run(workerCtx)

	if !dev {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()
	routes.Setup(r, &routes.Controllers{
		Auth:       controllers.NewAuthController(authService, dev),
		OAuth:      controllers.NewOAuthController(oauthService, cfg.FrontendURL, dev),
		QR:         controllers.NewQRController(qrService, dev),
		Cart:       controllers.NewCartController(cartService, dev),
		Order:      controllers.NewOrderController(orderService, dev),
		Payment:    controllers.NewPaymentController(paymentService, dev),
		Menu:       controllers.NewMenuController(menuRepo, dev),
		Booking:    controllers.NewBookingController(bookingService, dev),
		Contact:    controllers.NewContactController(contactService, dev),
		Newsletter: controllers.NewNewsletterController(newsletterService, dev),
		AI:         controllers.NewAIController(recipeService, dev),
		Support:    controllers.NewSupportController(supportService, dev),
		Bonus:      controllers.NewBonusController(bonusService, dev),
		Admin:      controllers.NewAdminController(db, dev),
	}, db, cfg.JWTSecret)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown failed", "error", err)
	}
}
