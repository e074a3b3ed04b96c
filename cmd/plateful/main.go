package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hollyoak/plateful/internal/api"
	"github.com/hollyoak/plateful/internal/db"
	"github.com/hollyoak/plateful/internal/imagestore"
	"github.com/hollyoak/plateful/internal/security"
	"github.com/joho/godotenv"
)

const (
	minSecretKeyLength  = 32
	maxRequestBodyBytes = 16 << 20
)

func main() {
	_ = godotenv.Load()

	location := mustLoadLocation(getEnv("TZ", "UTC"))
	time.Local = location

	secretKey, err := resolveSecretKey()
	if err != nil {
		log.Fatalf("secret key: %v", err)
	}

	driver := getEnv("DB_DRIVER", db.DriverSQLite)
	database, err := db.Open(driver, databaseDSN(driver))
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}

	images, err := imagestore.NewStore(getEnv("IMAGE_DIR", filepath.Join("data", "images")))
	if err != nil {
		log.Fatalf("image store init failed: %v", err)
	}

	cookieSecure := getBoolEnv("COOKIE_SECURE", false)
	handler, err := api.NewHandler(database, secretKey, images, location, cookieSecure, getBoolEnv("PUBLIC_IMAGES", false))
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}

	app := fiber.New(fiber.Config{
		AppName:               "Plateful",
		DisableStartupMessage: true,
		BodyLimit:             maxRequestBodyBytes,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())
	app.Use(handler.ResolveSession)
	app.Use(csrf.New(csrfMiddlewareConfig(cookieSecure)))

	api.RegisterRoutes(app, handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	port := getEnv("PORT", "8080")
	log.Printf("Plateful listening on http://0.0.0.0:%s (db: %s, tz: %s)", port, driver, location.String())
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

// resolveSecretKey returns the configured session secret. An unset key is
// replaced by a generated one so development servers boot, at the cost of
// invalidating sessions on every restart.
func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
		generated, err := security.RandomString(48, alphabet)
		if err != nil {
			return "", fmt.Errorf("generate session secret: %w", err)
		}
		log.Println("SECRET_KEY is not set; using a generated secret, sessions will not survive a restart")
		return generated, nil
	}
	if secret == "change_me_in_production" {
		return "", fmt.Errorf("SECRET_KEY still uses the placeholder value")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

// csrfMiddlewareConfig guards unsafe methods with a double-submit token.
// The cookie stays readable by scripts so API clients can echo it back in
// the X-CSRF-Token header.
func csrfMiddlewareConfig(cookieSecure bool) csrf.Config {
	return csrf.Config{
		KeyLookup:      "header:X-CSRF-Token",
		CookieName:     "plateful_csrf",
		CookieSameSite: "Lax",
		CookieHTTPOnly: false,
		CookieSecure:   cookieSecure,
		ContextKey:     "csrf",
	}
}

func databaseDSN(driver string) string {
	if driver == db.DriverPostgres {
		return os.Getenv("DB_DSN")
	}
	return getEnv("DB_PATH", filepath.Join("data", "plateful.db"))
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		log.Printf("invalid TZ %q, falling back to UTC", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getBoolEnv(key string, fallback bool) bool {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		log.Printf("invalid %s value %q, using %t", key, value, fallback)
		return fallback
	}
	return parsed
}
