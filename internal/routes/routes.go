package routes

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/shopizen/wallet-service/internal/auth"
	"github.com/shopizen/wallet-service/internal/config"
	"github.com/shopizen/wallet-service/internal/identity"
	"github.com/shopizen/wallet-service/internal/ledger"
	"github.com/shopizen/wallet-service/internal/middleware"
	"github.com/shopizen/wallet-service/internal/notification"
	"github.com/shopizen/wallet-service/internal/payments"
	"github.com/shopizen/wallet-service/internal/topup"
	"github.com/shopizen/wallet-service/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	// Middlewares
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.Audit(d.Logger))
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	// Health
	RegisterHealthRoutes(app, d)

	// Services and handlers
	var ledgerBackend ledger.Ledger
	if d.DB != nil {
		ledgerBackend = ledger.NewPostgresLedger(d.DB)
	} else {
		ledgerBackend = ledger.NewInMemory()
	}

	var identityRepo identity.Repository
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
	}

	walletSvc := wallet.NewService(ledgerBackend)
	notifier := notification.NewLoggerNotifier(d.Logger)
	identitySvc := identity.NewService(identityRepo)
	authSvc := auth.NewService(d.Cfg, identityRepo)
	authHandler := auth.NewHandler(identitySvc, authSvc)
	paymentSvc := payments.NewService(walletSvc, notifier)
	topupSvc, err := topup.NewService(walletSvc, nil, notifier)
	if err != nil {
		return err
	}

	walletHandler := wallet.NewHandler(walletSvc)
	topupHandler := topup.NewHandler(topupSvc)
	paymentHandler := payments.NewHandler(paymentSvc)

	// API routes
	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	// Protected routes
	authmw := middleware.BearerAuth(d.Cfg, identityRepo)
	protected := api.Group("", authmw)
	RegisterWalletRoutes(protected, walletHandler)
	RegisterTopUpRoutes(protected, topupHandler)
	RegisterPaymentRoutes(protected, paymentHandler)
	protected.Post("/auth/logout", authHandler.Logout)

	return nil
}
