// File: medibook/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"medibook/config"
	"medibook/database"
	"medibook/database/repository"
	memoryRepo "medibook/database/repository/memory"
	mongoRepo "medibook/database/repository/mongo"
	"medibook/handlers"
	"medibook/middleware"
	"medibook/routes"
	"medibook/services/booking"
	"medibook/services/notification"
	"medibook/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Store selection: the in-memory store serves environments without a
	// database; both sit behind the same repository.Store boundary.
	var store repository.Store
	var mongoClient *mongo.Client
	switch config.AppConfig.StoreDriver {
	case "memory":
		memStore := memoryRepo.NewMemoryStore()
		memStore.SeedDemoData()
		store = memStore
		logger.Sugar().Info("main: using in-memory store with demo data")
	default:
		database.InitDB()
		mongoClient = database.MongoClient
		store = mongoRepo.NewMongoStore()
	}

	utils.InitCache()
	cacheClient := utils.GetCacheClient()
	utils.StartHealthMonitor(cacheClient, mongoClient)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// services.
	rates := booking.LoadRateTable()

	var notificationService notification.NotificationService
	if key := config.AppConfig.SendGridAPIKey; key != "" {
		svc, err := notification.NewEmailNotificationService(
			key, config.AppConfig.EmailFrom, config.AppConfig.EmailFromName)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
		}
		notificationService = svc
	} else {
		logger.Sugar().Warn("main: no SendGrid key configured, confirmation emails disabled")
		notificationService = &notification.StubNotificationService{}
	}

	searchService := &booking.DefaultSearchService{Store: store}
	reservationEngine := &booking.ReservationEngine{
		Store:       store,
		Rates:       rates,
		MaxAttempts: config.AppConfig.ReserveMaxAttempts,
	}
	bookingService := &booking.DefaultBookingService{
		Store:           store,
		SearchSvc:       searchService,
		Engine:          reservationEngine,
		Rates:           rates,
		NotificationSvc: notificationService,
	}

	bookingHandler := handlers.NewBookingHandler(
		bookingService,
		cacheClient,
		time.Duration(config.AppConfig.SearchCacheTTL)*time.Second,
	)

	routes.RegisterAppointmentRoutes(router, bookingHandler)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
