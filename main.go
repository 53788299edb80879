// File: studiolink/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"studiolink/config"
	"studiolink/cron"
	"studiolink/database"
	availabilityRepo "studiolink/database/repository/availability"
	bookingRepo "studiolink/database/repository/booking"
	engineerRepo "studiolink/database/repository/engineer"
	studioRepo "studiolink/database/repository/studio"
	"studiolink/events"
	"studiolink/handlers"
	"studiolink/middleware"
	"studiolink/routes"
	"studiolink/services/availability"
	"studiolink/services/booking"
	"studiolink/services/notification"
	"studiolink/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitQuoteCache()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	router.Use(cors.Default())

	// repositories.
	studios := studioRepo.NewMongoStudioRepo()
	engineers := engineerRepo.NewMongoEngineerRepo()
	bookings := bookingRepo.NewMongoBookingRepo()
	availabilityStore := availabilityRepo.NewMongoAvailabilityRepo()

	// services.
	quoteEngine := &booking.Engine{
		StudioRepo:       studios,
		EngineerRepo:     engineers,
		AvailabilityRepo: availabilityStore,
	}
	publisher := events.NewAMQPPublisher(config.AppConfig.AMQPURL)
	bookingService := &booking.DefaultBookingService{
		Engine:    quoteEngine,
		Repo:      bookings,
		Publisher: publisher,
	}
	sessionStore := booking.NewSessionStore(utils.GetQuoteCacheClient())

	notifier, err := notification.NewFCMNotifier(engineers, utils.FCMClient)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notifier: %v", err)
	}

	synchronizer := &availability.Synchronizer{
		Repo:     availabilityStore,
		Notifier: notifier,
	}

	// The booking.changed consumer is the server-side mirror of every
	// booking document write into per-owner calendar holds.
	go events.StartBookingConsumer(config.AppConfig.AMQPURL, synchronizer.Handle)

	cron.InitBookingSweeper(bookingService, bookings)
	utils.StartHealthMonitor(utils.GetQuoteCacheClient(), database.MongoClient)

	// handlers.
	handlerBundle := &routes.HandlerBundle{
		Booking:  handlers.NewBookingHandler(bookingService, sessionStore, logger),
		Studio:   handlers.NewStudioHandler(studios, availabilityStore),
		Engineer: handlers.NewEngineerHandler(engineers),
	}
	routes.RegisterRoutes(router, handlerBundle)

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
