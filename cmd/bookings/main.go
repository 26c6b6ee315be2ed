package main

import (
	"net/http"

	"staybook/internal/bookings/handler"
	"staybook/internal/bookings/repository"
	"staybook/internal/bookings/service"
	"staybook/internal/bookings/validator"
	"staybook/pkg/app"
	"staybook/pkg/client"
	"staybook/pkg/config"
	"staybook/pkg/events"
	"staybook/pkg/kafka"
	kafkaconfig "staybook/pkg/kafka/config"
	"staybook/pkg/middleware"
)

const ServiceName = "bookings"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	if cfg.RedisAddr != "" {
		cfg.SetRedis()
	}
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Bookings service")

	var publisher service.EventPublisher
	if producer, err := kafka.NewProducer(kafkaconfig.Load(), events.TopicBookingCreated); err != nil {
		cfg.Log.Warn("Kafka producer disabled, booking events will not be published", "error", err)
	} else {
		publisher = producer
		defer producer.Close()
	}

	bookingService := initServices(cfg, publisher)

	var auth func(http.Handler) http.Handler
	if cfg.JWTSecret != "" {
		auth = middleware.Authentication(cfg.JWTSecret, cfg.Log)
	} else {
		cfg.Log.Warn("JWT_SECRET not set, booking mutations are unauthenticated")
	}

	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(
		handler.NewBookingHandler(bookingService, cfg.Log, auth),
		handler.NewHealthHandler(cfg.Client.Mongo, cfg.Log),
	)
	serverApp.Run()
}

func initServices(cfg *config.Config, publisher service.EventPublisher) service.BookingService {
	bookingValidator := validator.NewBookingValidator(cfg.Log)
	bookingRepo := repository.NewMongoBookingRepository(cfg)
	lockRepo := repository.NewBookingLockRepository(cfg)
	catalog := client.NewCatalogClient(cfg.CatalogBaseURL)
	identity := client.NewIdentityClient(cfg.IdentityBaseURL)

	bookingService := service.NewBookingService(
		bookingRepo,
		lockRepo,
		bookingValidator,
		catalog,
		identity,
		publisher,
		cfg,
	)

	cfg.Log.Info("Booking service initialized", "database", cfg.MongoDatabaseName)
	return bookingService
}
