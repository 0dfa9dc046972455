package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"maintenance-genie.backend/internal/config"
	"maintenance-genie.backend/internal/infrastructure/ai"
	"maintenance-genie.backend/internal/infrastructure/mail"
	"maintenance-genie.backend/internal/infrastructure/models"
	"maintenance-genie.backend/internal/infrastructure/payments"
	"maintenance-genie.backend/internal/infrastructure/repositories"
	"maintenance-genie.backend/internal/infrastructure/storage"
	"maintenance-genie.backend/internal/interfaces/http/handlers"
	"maintenance-genie.backend/internal/interfaces/http/middleware"
	"maintenance-genie.backend/internal/usecases"
	"maintenance-genie.backend/pkg/jwt"
	"maintenance-genie.backend/pkg/logger"
	"maintenance-genie.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	}
	runServer   = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
	getStdDB    = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
	autoMigrate = func(db *gorm.DB) error {
		return db.AutoMigrate(
			&models.User{},
			&models.PendingRegistration{},
			&models.Item{},
			&models.Service{},
			&models.Subscription{},
			&models.PaymentTransaction{},
			&models.WebhookEvent{},
			&models.Mail{},
		)
	}
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	// Redis only backs the idempotency middleware; the server runs without it
	if err := initRedis(cfg.Redis.URL, cfg.Redis.Password); err != nil {
		logger.Warn(context.Background(), "Redis unavailable, idempotency disabled", zap.Error(err))
	} else {
		logger.Info(context.Background(), "Redis initialized")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database not available: %w", err)
	}

	if err := autoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.ProfileExpiry,
	)

	uploadStore, err := storage.NewUploadStore(cfg.Uploads.Dir)
	if err != nil {
		return fmt.Errorf("failed to initialize upload store: %w", err)
	}

	var mailer mail.Mailer
	if cfg.SMTP.Configured() {
		mailer = mail.NewSMTPMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.User, cfg.SMTP.Pass, cfg.SMTP.From)
	} else {
		logger.Warn(context.Background(), "SMTP not configured, mail delivery degraded to logging")
		mailer = mail.NewNoopMailer()
	}

	recommender := ai.NewClient(cfg.AI.APIKey, cfg.AI.BaseURL, cfg.AI.Model)
	gateway := payments.NewGateway(cfg.Stripe.SecretKey, cfg.Stripe.APIURL)

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	pendingRepo := repositories.NewPendingRegistrationRepository(db)
	itemRepo := repositories.NewItemRepository(db)
	serviceRepo := repositories.NewServiceRepository(db)
	subscriptionRepo := repositories.NewSubscriptionRepository(db)
	transactionRepo := repositories.NewPaymentTransactionRepository(db)
	webhookEventRepo := repositories.NewWebhookEventRepository(db)
	mailRepo := repositories.NewMailRepository(db)

	// Usecases
	registrationUsecase := usecases.NewRegistrationUsecase(pendingRepo, userRepo, mailer, jwtService)
	authUsecase := usecases.NewAuthUsecase(userRepo, jwtService)
	itemUsecase := usecases.NewItemUsecase(itemRepo, userRepo, recommender, uploadStore)
	paymentUsecase := usecases.NewPaymentUsecase(serviceRepo, userRepo, subscriptionRepo, transactionRepo, webhookEventRepo, gateway)
	supportUsecase := usecases.NewSupportUsecase(mailRepo)
	adminUsecase := usecases.NewAdminUsecase(userRepo, serviceRepo, mailer, uploadStore)

	// Handlers
	userHandler := handlers.NewUserHandler(registrationUsecase, authUsecase, supportUsecase)
	itemHandler := handlers.NewItemHandler(itemUsecase, uploadStore)
	paymentHandler := handlers.NewPaymentHandler(paymentUsecase, cfg.Stripe.WebhookSecret)
	adminHandler := handlers.NewAdminHandler(adminUsecase, authUsecase, supportUsecase, uploadStore)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	registerRoutes(r, routeDeps{
		userHandler:    userHandler,
		itemHandler:    itemHandler,
		paymentHandler: paymentHandler,
		adminHandler:   adminHandler,
		authMiddleware: authMiddleware,
		uploadDir:      uploadStore.Dir(),
	})

	log.Printf("Maintenance Genie backend starting on port %s", cfg.Server.Port)

	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
