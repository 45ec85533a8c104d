package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"github.com/stripe/stripe-go/v76"

	"strbooking/config"
	"strbooking/cron"
	"strbooking/database"
	availabilityRepoPkg "strbooking/database/repository/availability"
	bookingRepoPkg "strbooking/database/repository/booking"
	propertyRepoPkg "strbooking/database/repository/property"
	"strbooking/handlers"
	"strbooking/routes"
	bookingSvc "strbooking/services/booking"
	"strbooking/services/calendar"
	"strbooking/services/notification"
	"strbooking/services/payment"
	"strbooking/services/pricing"
	"strbooking/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitLockClient()
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	propertyRepo := propertyRepoPkg.NewMongoPropertyRepo()
	availabilityRepo := availabilityRepoPkg.NewMongoAvailabilityRepo()
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()

	for _, repo := range []interface{ EnsureIndexes() error }{propertyRepo, availabilityRepo, bookingRepo} {
		if err := repo.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure indexes: %v", err)
		}
	}

	// task queue client.
	queue := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queue.Close()

	// services.
	locker := utils.NewRedisLocker(utils.GetLockClient())
	gateway := payment.NewStripeGateway()

	pricingEngine := &pricing.DefaultEngine{
		Properties:     propertyRepo,
		Availability:   availabilityRepo,
		DefaultTaxRate: config.AppConfig.DefaultTaxRate,
	}

	checker := &bookingSvc.DefaultAvailabilityChecker{
		Availability: availabilityRepo,
		Bookings:     bookingRepo,
	}

	notifier := &notification.DefaultNotifier{
		Email:  notification.NewSMTPSender(),
		SMS:    notification.NewTwilioSender(),
		Logger: logger,
	}

	bookingService := &bookingSvc.DefaultService{
		Properties: propertyRepo,
		Bookings:   bookingRepo,
		Checker:    checker,
		Pricing:    pricingEngine,
		Gateway:    gateway,
		Locker:     locker,
		Queue:      queue,
		Notifier:   notifier,
		Currency:   config.AppConfig.Currency,
		Logger:     logger,
	}

	exporter := &calendar.DefaultExporter{Bookings: bookingRepo}
	importer := calendar.NewDefaultImporter(propertyRepo, availabilityRepo, logger)

	// background worker.
	worker := &cron.Worker{
		Charger: &payment.Charger{
			Bookings: bookingRepo,
			Gateway:  gateway,
			Locker:   locker,
			Currency: config.AppConfig.Currency,
			Logger:   logger,
		},
		Transfers: &payment.TransferProcessor{
			Bookings:   bookingRepo,
			Properties: propertyRepo,
			Gateway:    gateway,
			Currency:   config.AppConfig.Currency,
			Logger:     logger,
		},
		Importer:   importer,
		Bookings:   bookingRepo,
		Properties: propertyRepo,
		Notifier:   notifier,
		Logger:     logger,
	}
	worker.Start()

	utils.StartHealthMonitor(map[string]*redis.Client{
		"cache": utils.GetCacheClient(),
		"locks": utils.GetLockClient(),
	}, database.MongoClient)

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		QuoteHandler:                handlers.QuoteHandler(pricingEngine),
		EligiblePlansHandler:        handlers.EligiblePlansHandler(bookingService),
		CheckAvailabilityHandler:    handlers.CheckAvailabilityHandler(checker),
		AvailabilityCalendarHandler: handlers.AvailabilityCalendarHandler(availabilityRepo),
		CreateBookingHandler:        handlers.CreateBookingHandler(bookingService),
		GetBookingHandler:           handlers.GetBookingHandler(bookingService),
		CalendarFeedHandler:         handlers.CalendarFeedHandler(exporter),

		StripeWebhookHandler: handlers.StripeWebhookHandler(bookingService, utils.GetCacheClient()),

		CreatePropertyHandler:      handlers.CreatePropertyHandler(propertyRepo),
		GetPropertyHandler:         handlers.GetPropertyHandler(propertyRepo),
		ListPropertiesHandler:      handlers.ListPropertiesHandler(propertyRepo),
		UpdatePropertyHandler:      handlers.UpdatePropertyHandler(propertyRepo),
		DeletePropertyHandler:      handlers.DeletePropertyHandler(propertyRepo),
		AddCohostHandler:           handlers.AddCohostHandler(propertyRepo),
		RemoveCohostHandler:        handlers.RemoveCohostHandler(propertyRepo),
		SetPriceOverrideHandler:    handlers.SetPriceOverrideHandler(availabilityRepo),
		TriggerCalendarSyncHandler: handlers.TriggerCalendarSyncHandler(queue),
		CancelBookingHandler:       handlers.CancelBookingHandler(bookingService),
		ReleaseDepositHandler:      handlers.ReleaseDepositHandler(bookingRepo),
		MetricsHandler:             handlers.MetricsHandler(bookingRepo),
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	routes.RegisterRoutes(router, handlerBundle)

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
