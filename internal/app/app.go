package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fitcoach_backend/internal/auth"
	"fitcoach_backend/internal/config"
	"fitcoach_backend/internal/handlers"
	"fitcoach_backend/internal/logger"
	"fitcoach_backend/internal/middleware"
	"fitcoach_backend/internal/models"
	"fitcoach_backend/internal/repositories"
	"fitcoach_backend/internal/routes"
	"fitcoach_backend/internal/services"
	"fitcoach_backend/internal/validator"
	"fitcoach_backend/pkg/apperrors"
)

const startupRetryDelay = 3 * time.Second

// Run boots the full application: config, logger, database, seeding and
// the HTTP server. It does not return except on fatal startup errors.
func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)
	apperrors.SetDebug(cfg.Server.Env == "development")

	gormDB, err := connectDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if err := gormDB.AutoMigrate(&models.User{}, &models.Profile{}); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	router, err := SetupRouter(cfg, gormDB)
	if err != nil {
		logger.Fatal("Failed to set up router", "error", err)
	}

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Server starting", "address", address)
	if err := router.Run(address); err != nil {
		logger.Fatal("Server startup error", "error", err)
	}
}

// connectDatabase opens the GORM connection with a fixed-delay retry loop
// and applies the pool sizing from config.
func connectDatabase(cfg *config.Config) (*gorm.DB, error) {
	attempts := cfg.Database.StartupAttempts
	if attempts < 1 {
		attempts = 1
	}

	dsn := withConnectTimeout(cfg.Database.DSN, cfg.Database.ConnectTimeout)

	var gormDB *gorm.DB
	var err error
	for attempt := 1; attempt <= attempts; attempt++ {
		gormDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err == nil {
			break
		}
		logger.Warn("Database not ready, retrying",
			"attempt", attempt,
			"max_attempts", attempts,
			"error", err,
		)
		if attempt < attempts {
			time.Sleep(startupRetryDelay)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("database unavailable after %d attempts: %w", attempts, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get *sql.DB from GORM: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.Database.ConnMaxIdleSec) * time.Second)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database ping failed: %w", err)
	}
	return gormDB, nil
}

// withConnectTimeout appends the connect_timeout parameter to the DSN
// unless the DSN already sets one. Handles both URL and key=value forms.
func withConnectTimeout(dsn string, seconds int) string {
	if seconds <= 0 || dsn == "" || strings.Contains(dsn, "connect_timeout") {
		return dsn
	}
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		sep := "?"
		if strings.Contains(dsn, "?") {
			sep = "&"
		}
		return fmt.Sprintf("%s%sconnect_timeout=%d", dsn, sep, seconds)
	}
	return fmt.Sprintf("%s connect_timeout=%d", dsn, seconds)
}

// SetupRouter wires repositories, services, handlers and middleware into a
// ready-to-serve engine. Split out of Run so tests can build the router
// against their own config and database.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, error) {
	expiresIn, err := time.ParseDuration(cfg.JWT.ExpiresIn)
	if err != nil {
		return nil, fmt.Errorf("invalid jwt.expires_in %q: %w", cfg.JWT.ExpiresIn, err)
	}
	tokens, err := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.RefreshSecret, expiresIn)
	if err != nil {
		return nil, fmt.Errorf("token manager: %w", err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get *sql.DB from GORM: %w", err)
	}

	userRepo := repositories.NewUserRepository(gormDB)
	profileRepo := repositories.NewProfileRepository(gormDB)

	authService := services.NewAuthService(userRepo, profileRepo, tokens, services.AuthConfig{
		BcryptCost:       cfg.Auth.BcryptCost,
		VerifyOnRegister: cfg.Auth.VerifyOnRegister,
		ExpiresIn:        cfg.JWT.ExpiresIn,
	})
	userService := services.NewUserService(userRepo, profileRepo)
	profileService := services.NewProfileService(profileRepo, userRepo)

	baseHandler := handlers.NewBaseHandler(validator.New())
	appHandlers := &handlers.AppHandlers{
		AuthHandler:    handlers.NewAuthHandler(baseHandler, authService),
		UserHandler:    handlers.NewUserHandler(baseHandler, userService),
		ProfileHandler: handlers.NewProfileHandler(baseHandler, profileService),
		HealthHandler:  handlers.NewHealthHandler(sqlDB, cfg.Server.Env),
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	limiter := middleware.NewRateLimiter(
		time.Duration(cfg.RateLimit.WindowMS)*time.Millisecond,
		cfg.RateLimit.MaxRequests,
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.Server.ClientURL))
	router.Use(middleware.RateLimitMiddleware(limiter))

	routes.SetupRoutes(router, appHandlers, tokens, userRepo)

	return router, nil
}

// seedFirstAdmin creates the bootstrap admin account when the configured
// credentials do not match an existing user. Runs in a transaction so the
// user and its empty profile land together.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := cfg.Auth.AdminEmail
	adminPassword := cfg.Auth.AdminPassword

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var existing models.User
		result := tx.Where("LOWER(email) = LOWER(?)", adminEmail).First(&existing)
		if result.Error == nil {
			logger.Info("Admin user already exists, skipping creation", "email", adminEmail)
			return nil
		}
		if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return fmt.Errorf("failed to check for admin user: %w", result.Error)
		}

		hash, err := auth.HashPassword(adminPassword, cfg.Auth.BcryptCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		admin := &models.User{
			Name:         "Administrator",
			Email:        adminEmail,
			PasswordHash: hash,
			Role:         models.UserRoleAdmin,
			Verified:     true,
		}
		if err := tx.Create(admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}

		profile := &models.Profile{UserID: admin.ID}
		if err := tx.Create(profile).Error; err != nil {
			return fmt.Errorf("failed to create admin profile: %w", err)
		}

		logger.Info("Created first admin user", "email", adminEmail)
		return nil
	})
}
