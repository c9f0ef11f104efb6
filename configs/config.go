package configs

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv      string
	Port        string
	BaseURL     string
	FrontendURL string

	DBDriver string
	DBSource string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	JWTSecret string
	JWTTTL    time.Duration

	YookassaShopID    string
	YookassaSecretKey string

	YandexClientID     string
	YandexClientSecret string
	YandexRedirectURI  string

	YandexGPTAPIKey   string
	YandexGPTFolderID string

	TelegramBotToken      string
	TelegramChatID        string
	TelegramSupportChatID string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	ContactEmail string

	// Emails promoted to admin on startup.
	AdminEmails []string
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file, using environment as-is")
	}

	cfg := &Config{
		AppEnv:  getEnv("APP_ENV", "development"),
		Port:    getEnv("PORT", "3000"),
		BaseURL: getEnv("BASE_URL", "http://localhost:3000"),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:5173"),

		DBDriver: getEnv("DB_DRIVER", "sqlite"),
		DBSource: getEnv("DB_SOURCE", "neurocoffee.db"),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		JWTSecret: os.Getenv("JWT_SECRET"),
		JWTTTL:    time.Duration(getEnvInt("JWT_TTL_HOURS", 168)) * time.Hour,

		YookassaShopID:    os.Getenv("YOOKASSA_SHOP_ID"),
		YookassaSecretKey: os.Getenv("YOOKASSA_SECRET_KEY"),

		YandexClientID:     os.Getenv("YANDEX_CLIENT_ID"),
		YandexClientSecret: os.Getenv("YANDEX_CLIENT_SECRET"),
		YandexRedirectURI:  os.Getenv("YANDEX_REDIRECT_URI"),

		YandexGPTAPIKey:   getEnv("YANDEX_API_KEY", os.Getenv("YANDEX_GPT_API_KEY")),
		YandexGPTFolderID: os.Getenv("YANDEX_FOLDER_ID"),

		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),

		SMTPHost:     os.Getenv("SMTP_HOST"),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUser:     os.Getenv("SMTP_USER"),
		SMTPPass:     os.Getenv("SMTP_PASS"),
		ContactEmail: getEnv("CONTACT_EMAIL", os.Getenv("MAIL_TO")),
	}

	cfg.TelegramSupportChatID = getEnv("TELEGRAM_SUPPORT_CHAT_ID", cfg.TelegramChatID)

	if v := os.Getenv("ADMIN_EMAILS"); v != "" {
		for _, e := range strings.Split(v, ",") {
			if e = strings.TrimSpace(strings.ToLower(e)); e != "" {
				cfg.AdminEmails = append(cfg.AdminEmails, e)
			}
		}
	}

	if cfg.JWTSecret == "" {
		slog.Warn("JWT_SECRET is not set, authentication will not work")
	}

	return cfg
}

func (c *Config) IsDevelopment() bool { return c.AppEnv == "development" }

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
