package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"google.golang.org/api/option"

	"fairshoppe/internal/adapter/api"
	"fairshoppe/internal/adapter/api/handler"
	apimiddleware "fairshoppe/internal/adapter/api/middleware"
	"fairshoppe/internal/adapter/api/router"
	"fairshoppe/internal/adapter/repository"
	domainrepo "fairshoppe/internal/domain/repository"
	"fairshoppe/internal/domain/service"
	"fairshoppe/internal/infrastructure/auth"
	"fairshoppe/internal/infrastructure/catalog"
	"fairshoppe/internal/infrastructure/metrics"
	"fairshoppe/internal/infrastructure/ratelimit"
	"fairshoppe/internal/infrastructure/storage"
	"fairshoppe/internal/infrastructure/websocket"
	"fairshoppe/internal/usecase"
	"fairshoppe/pkg/config"
	"fairshoppe/pkg/logger"
)

// objectBackend is both the profile store and the upload target.
type objectBackend interface {
	domainrepo.ObjectStore
	service.FileUploadService
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration: %v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		objects     objectBackend
		memoryStore *storage.MemoryStore
	)
	if cfg.ProfileBackend == "memory" {
		logger.Warn("Using in-memory object store, data is lost on restart")
		memoryStore = storage.NewMemoryStore("http://localhost:" + cfg.ServerPort + "/files")
		objects = memoryStore
	} else {
		storageClient, err := storage.NewCloudStorageClient(ctx, cfg.StorageBucket, cfg.GCPProject, cfg.CredentialsPath)
		if err != nil {
			logger.Error("Failed to initialize Cloud Storage: %v", err)
			os.Exit(1)
		}
		objects = storageClient
	}
	defer objects.Close()

	var (
		profileRepo domainrepo.ProfileRepository
		userRepo    domainrepo.UserRepository
	)
	switch cfg.ProfileBackend {
	case "firestore":
		var opts []option.ClientOption
		if cfg.CredentialsPath != "" {
			opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
		}
		firestoreClient, err := firestore.NewClient(ctx, cfg.GCPProject, opts...)
		if err != nil {
			logger.Error("Failed to create Firestore client: %v", err)
			os.Exit(1)
		}
		defer firestoreClient.Close()

		profileRepo = repository.NewFirestoreProfileRepository(firestoreClient)
		userRepo = repository.NewFirestoreUserRepository(firestoreClient)
	default:
		profileRepo = repository.NewObjectProfileRepository(objects, cfg.ProfileAppendMaxRetries)
		userRepo = repository.NewObjectUserRepository(objects, cfg.ProfileAppendMaxRetries)
	}
	logger.Info("Profile backend: %s", cfg.ProfileBackend)

	fulfillment := service.NewPrintifyFulfillmentService(cfg.PrintifyAPIKey, cfg.PrintifyShopID, cfg.PrintifyBaseURL)
	if !fulfillment.Configured() {
		logger.Warn("PRINTIFY_API_KEY or PRINTIFY_SHOP_ID missing, mockups and orders will fail")
	}
	payments := service.NewStripePaymentService(cfg.StripeSecretKey, cfg.StripeBaseURL)
	if !payments.Configured() {
		logger.Warn("STRIPE_SECRET_KEY missing, checkout will fail")
	}
	imageBackend := service.NewHTTPImageBackendService(cfg.ImageBackendURL)

	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiry)*time.Second)

	wsManager := websocket.NewManager()
	wsManager.Start(ctx)

	limiter := ratelimit.NewRateLimiter(map[string]ratelimit.Policy{
		"generate":          {PerMinute: cfg.GenerateRatePerMinute},
		"remove_background": {PerMinute: cfg.GenerateRatePerMinute},
		"upload":            {PerMinute: cfg.UploadRatePerMinute},
		"auth":              {PerMinute: 5},
	})
	limiter.Start(ctx)

	catalogUseCase := usecase.NewCatalogUseCase(catalog.Bundled(), usecase.SupportedCatalog{
		IDs:       cfg.SupportedBlueprintIDs,
		Prices:    cfg.SupportedBlueprintPrices,
		CandleIDs: cfg.CandleBlueprintIDs,
	})
	resolver := usecase.NewVariantResolver()
	profileUseCase := usecase.NewProfileUseCase(profileRepo)
	orderUseCase := usecase.NewOrderUseCase(catalogUseCase, resolver, fulfillment, payments, profileUseCase)
	imageUseCase := usecase.NewImageUseCase(imageBackend, objects, profileUseCase, wsManager, usecase.ImageOptions{
		PollInterval:    cfg.BgRemovalPollInterval,
		MaxAttempts:     cfg.BgRemovalMaxAttempts,
		MaxDimension:    cfg.UploadMaxDimension,
		MaxUploadBytes:  cfg.UploadMaxBytes,
		MaxSourcePixels: cfg.UploadMaxPixels,
	})
	authUseCase := usecase.NewAuthUseCase(userRepo, tokens)
	userUseCase := usecase.NewUserUseCase(userRepo)

	handler.Setup(authUseCase, userUseCase, catalogUseCase, resolver, orderUseCase, imageUseCase, profileUseCase)
	handler.SetupHealthHandler(catalogUseCase)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(metrics.Middleware())

	e.Validator = api.NewValidator()

	authMiddleware := apimiddleware.NewAuthMiddleware(tokens)
	wsHandler := handler.NewWebSocketHandler(wsManager, tokens)

	router.Setup(e, authMiddleware, limiter, wsHandler, cfg.UploadBodyLimit)
	if memoryStore != nil {
		router.SetupFileRouter(e, handler.NewFileHandler(memoryStore))
	}

	go func() {
		logger.Info("Starting server on port %s...", cfg.ServerPort)
		if err := e.Start(":" + cfg.ServerPort); err != nil && err != http.ErrServerClosed {
			logger.Error("Server stopped: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed: %v", err)
	}
}
