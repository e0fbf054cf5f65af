package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"

	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/joho/godotenv"
	"github.com/pixmora/pixmora-backend/internal/config"
	"github.com/pixmora/pixmora-backend/internal/generation"
	"github.com/pixmora/pixmora-backend/internal/handler"
	"github.com/pixmora/pixmora-backend/internal/repository"
	"github.com/pixmora/pixmora-backend/internal/service"
	"github.com/pixmora/pixmora-backend/pkg/database"
	"github.com/pixmora/pixmora-backend/pkg/email"
	"github.com/pixmora/pixmora-backend/pkg/payment"
	"github.com/pixmora/pixmora-backend/pkg/qrcode"
	"github.com/pixmora/pixmora-backend/pkg/storage"
	"github.com/pixmora/pixmora-backend/pkg/utils"
	"go.uber.org/zap"
)

func main() {
	// .env is optional outside local development.
	_ = godotenv.Load()

	cfg := config.LoadConfig()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	db, err := database.New(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}

	if err := database.Migrate(db); err != nil {
		logger.Fatal("failed to migrate database", zap.Error(err))
	}
	if err := database.Seed(db); err != nil {
		logger.Fatal("failed to seed database", zap.Error(err))
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	accountRepo := repository.NewCreditAccountRepository(db)
	packageRepo := repository.NewCreditPackageRepository(db)
	purchaseRepo := repository.NewCreditPurchaseRepository(db)
	promptRepo := repository.NewPromptRepository(db)
	sessionRepo := repository.NewEditSessionRepository(db)

	// Object storage for source image uploads
	r2Storage, err := storage.NewR2Storage(cfg.R2)
	if err != nil {
		logger.Fatal("failed to initialize R2 storage", zap.Error(err))
	}

	// External services
	emailService := email.NewEmailService(cfg.Email)
	stripeService := payment.NewStripeService(cfg.Stripe.SecretKey, cfg.PublicBaseURL)
	qrService := qrcode.NewQRService(cfg.PublicBaseURL + "/i/")
	generator := generation.NewPlaceholder()

	// Services
	authService := service.NewAuthService(userRepo, emailService, logger)
	creditService := service.NewCreditService(accountRepo, userRepo, packageRepo, purchaseRepo, stripeService, logger)
	promptService := service.NewPromptService(promptRepo, userRepo)
	sessionService := service.NewEditSessionService(sessionRepo, generator, r2Storage, logger)
	feedService := service.NewFeedService(promptRepo, sessionRepo)

	validator := utils.NewValidator()

	// Handlers
	handlers := handler.Handlers{
		Auth:        handler.NewAuthHandler(authService, validator),
		Prompt:      handler.NewPromptHandler(promptService, feedService, validator),
		EditSession: handler.NewEditSessionHandler(sessionService),
		Image:       handler.NewImageHandler(sessionService, feedService, qrService),
		Credit:      handler.NewCreditHandler(creditService, validator, logger),
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.PublicBaseURL + ", http://localhost:5173",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE",
	}))
	app.Use(fiberlogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        60,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	handler.RegisterRoutes(app, handlers)

	logger.Info("starting server", zap.String("port", cfg.Port))
	if err := app.Listen(":" + cfg.Port); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
