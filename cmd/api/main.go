package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/ecolux_api/internal/cache"
	"github.com/GTDGit/ecolux_api/internal/config"
	"github.com/GTDGit/ecolux_api/internal/database"
	"github.com/GTDGit/ecolux_api/internal/handler"
	"github.com/GTDGit/ecolux_api/internal/media"
	"github.com/GTDGit/ecolux_api/internal/middleware"
	"github.com/GTDGit/ecolux_api/internal/models"
	"github.com/GTDGit/ecolux_api/internal/repository"
	"github.com/GTDGit/ecolux_api/internal/service"
	"github.com/GTDGit/ecolux_api/internal/sse"
	"github.com/GTDGit/ecolux_api/internal/utils"
)

// main is the application entrypoint for the eco-luxury quoting API.
func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. Setup logger
	setupLogger(cfg.Env)
	log.Info().Str("env", cfg.Env).Msg("starting ecolux api")

	// 3. Connect database
	db, err := database.Connect(&cfg.DB)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		fmt.Fprintf(os.Stderr, "database connection failed: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	// 3a. Run migrations
	if err := database.Migrate(db.DB); err != nil {
		log.Error().Err(err).Msg("migration failed")
		fmt.Fprintf(os.Stderr, "migration failed: %v\n", err)
		os.Exit(1)
	}
	log.Info().Msg("migrations completed successfully")

	// Context for background goroutines, cancelled on shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 4. Failed-login limiter: Redis when configured, in-memory otherwise
	var attempts middleware.AttemptStore
	if cfg.Redis.Enabled() {
		redisClient, err := cache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Error().Err(err).Msg("redis connection failed")
			fmt.Fprintf(os.Stderr, "redis connection failed: %v\n", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		attempts = cache.NewLoginAttempts(redisClient, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)
		log.Info().Msg("redis connected successfully")
	} else {
		attempts = middleware.NewInvalidAuthRateLimiter(ctx, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginWindow)
		log.Info().Msg("redis not configured, using in-memory login limiter")
	}

	// 5. Initialize repositories
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)
	quoteRepo := repository.NewQuoteRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	addressRepo := repository.NewAddressRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// 5a. Product media (S3 + Rekognition), both optional
	var storage media.Storage
	if cfg.S3.Enabled() {
		s3Storage, err := media.NewS3Storage(ctx, &cfg.S3)
		if err != nil {
			log.Warn().Err(err).Msg("S3 initialization failed - media uploads will be disabled")
		} else {
			storage = s3Storage
			log.Info().Str("bucket", cfg.S3.Bucket).Msg("S3 storage initialized")
		}
	}

	var moderator media.Moderator
	if cfg.AWS.ModerationEnabled && storage != nil {
		rek, err := media.NewRekognitionModerator(ctx, &cfg.AWS)
		if err != nil {
			log.Warn().Err(err).Msg("Rekognition initialization failed - image moderation disabled")
		} else {
			moderator = rek
		}
	}

	// 6. Realtime quote events
	hub := sse.NewHub()
	notifier := sse.NewHubNotifier(hub)

	// 7. Initialize services
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTTTL)
	authSvc := service.NewAuthService(userRepo, tokens)
	productSvc := service.NewProductService(productRepo)
	mediaSvc := service.NewProductMediaService(productRepo, storage, moderator)
	quoteSvc := service.NewQuoteService(quoteRepo, productRepo, notifier)
	businessSvc := service.NewBusinessService(quoteRepo, userRepo)
	customerSvc := service.NewCustomerService(userRepo, addressRepo)
	orderSvc := service.NewOrderService(orderRepo, quoteRepo, addressRepo)
	analyticsSvc := service.NewAnalyticsService(analyticsRepo, quoteRepo)

	// 8. Initialize handlers
	handlers := &Handlers{
		Health:    handler.NewHealthHandler(db),
		Auth:      handler.NewAuthHandler(authSvc),
		Product:   handler.NewProductHandler(productSvc, mediaSvc, cfg.Upload.MaxBytes),
		Quote:     handler.NewQuoteHandler(quoteSvc),
		Business:  handler.NewBusinessHandler(businessSvc, quoteSvc),
		Customer:  handler.NewCustomerHandler(customerSvc),
		Order:     handler.NewOrderHandler(orderSvc),
		Analytics: handler.NewAnalyticsHandler(analyticsSvc),
		SSE:       handler.NewSSEHandler(hub),
	}

	// 9. Initialize middleware
	jwtMw := middleware.NewJWTMiddleware(tokens, userRepo)

	// 10. Setup router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg.AllowedOrigins))
	router.Use(middleware.LoggingMiddleware())
	setupRoutes(router, handlers, jwtMw, attempts)

	// 11. Start HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// 12. Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// 13. Cancel context to stop background goroutines
	cancel()

	// 14. Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server exited")
}

// Handlers groups all HTTP handlers used by the server.
type Handlers struct {
	Health    *handler.HealthHandler
	Auth      *handler.AuthHandler
	Product   *handler.ProductHandler
	Quote     *handler.QuoteHandler
	Business  *handler.BusinessHandler
	Customer  *handler.CustomerHandler
	Order     *handler.OrderHandler
	Analytics *handler.AnalyticsHandler
	SSE       *handler.SSEHandler
}

// setupRoutes registers all routes.
func setupRoutes(router *gin.Engine, handlers *Handlers, jwtMiddleware *middleware.JWTMiddleware, attempts middleware.AttemptStore) {
	staff := middleware.RequireRoles("Business access required", models.RoleBusiness, models.RoleAdmin)
	customer := middleware.RequireRoles("Customer access required", models.RoleCustomer)

	router.GET("/", handlers.Health.GetHealth)

	api := router.Group("/api")
	api.GET("/health", handlers.Health.GetHealth)

	// Auth
	api.POST("/register", handlers.Auth.Register)
	api.POST("/login", middleware.LoginRateLimit(attempts), handlers.Auth.Login)

	// Catalogue (public reads)
	api.GET("/products", handlers.Product.ListProducts)
	api.GET("/products/categories", handlers.Product.GetCategories)
	api.GET("/products/:id", handlers.Product.GetProduct)

	// SSE authenticates with a query token since EventSource cannot set headers
	api.GET("/business/quotes/stream", jwtMiddleware.HandleQueryToken(), staff, handlers.SSE.Stream)

	authed := api.Group("")
	authed.Use(jwtMiddleware.Handle())
	{
		authed.GET("/profile", handlers.Auth.Profile)

		// Catalogue management
		products := authed.Group("/products", staff)
		products.POST("", handlers.Product.CreateProduct)
		products.PUT("/:id", handlers.Product.UpdateProduct)
		products.DELETE("/:id", handlers.Product.DeleteProduct)
		products.POST("/:id/image", handlers.Product.UploadImage)
		products.POST("/:id/specs", handlers.Product.UploadSpecs)

		// Quotes
		authed.POST("/quotes", handlers.Quote.CreateQuote)
		authed.GET("/quotes", handlers.Quote.ListQuotes)
		authed.GET("/quotes/:id", handlers.Quote.GetQuote)

		// Business back office
		business := authed.Group("/business", staff)
		business.GET("/quotes", handlers.Business.ListQuotes)
		business.PUT("/quotes/:id", handlers.Business.UpdateQuoteStatus)
		business.GET("/customers", handlers.Business.ListCustomers)

		// Customer account
		account := authed.Group("/customer", customer)
		account.PUT("/profile", handlers.Customer.UpdateProfile)
		account.DELETE("/profile", handlers.Customer.DeleteAccount)
		account.GET("/addresses", handlers.Customer.ListAddresses)
		account.POST("/addresses", handlers.Customer.AddAddress)
		account.DELETE("/addresses/:id", handlers.Customer.RemoveAddress)

		// Orders
		orders := authed.Group("/orders", customer)
		orders.POST("", handlers.Order.PlaceOrder)
		orders.GET("", handlers.Order.ListOrders)

		// Analytics
		authed.GET("/analytics/business", staff, handlers.Analytics.Business)
		authed.GET("/analytics/business/history", staff, handlers.Analytics.History)
		authed.GET("/analytics/customer", customer, handlers.Analytics.Customer)
	}
}

func setupLogger(env string) {
	if env == "production" {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
}
