package main

import (
	"booking-service/internal/app/config"
	"booking-service/internal/app/delivery/http/controllers"
	"booking-service/internal/app/delivery/http/middlewares"
	"booking-service/internal/app/delivery/http/routers"
	"booking-service/internal/app/drivers/database"
	"booking-service/internal/app/drivers/logger"
	smtpDriver "booking-service/internal/app/drivers/mailer"
	"booking-service/internal/app/drivers/messaging"
	"booking-service/internal/app/services/core/appointments"
	"booking-service/internal/app/services/core/availability"
	"booking-service/internal/app/services/core/notifications"
	"booking-service/internal/app/services/core/slot"
	"booking-service/internal/app/services/shared/jwtmanager"
	"booking-service/internal/app/services/shared/locker"
	"booking-service/internal/app/services/shared/mailer"
	"booking-service/internal/app/services/shared/notificationqueue"
	"booking-service/internal/app/services/shared/ratelimiter"
	"booking-service/internal/app/services/shared/redis"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// Version sets the default build version
var Version = "develop"

// Tag sets the default latest commit tag
var Tag = "0.0.1-rc"

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	log := logger.NewZapLogger(driverConfig, internalConfig)
	log.Info("Starting booking service",
		zap.String("build_version", Version),
		zap.String("build_tag", Tag))

	location, err := time.LoadLocation(internalConfig.App.Timezone)
	if err != nil {
		log.Fatal("Error loading location", zap.Error(err))
	}
	time.Local = location

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	mongoClient, err := database.NewMongoDB(startupCtx, driverConfig, log)
	if err != nil {
		log.Fatal("Error connecting to MongoDB", zap.Error(err))
	}

	redisClient, err := database.NewRedisClient(startupCtx, driverConfig, log)
	if err != nil {
		log.Fatal("Error connecting to Redis", zap.Error(err))
	}

	rabbitMQ, err := messaging.NewRabbitMQ(driverConfig, log)
	if err != nil {
		log.Fatal("Error connecting to RabbitMQ", zap.Error(err))
	}

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		MongoDB:        mongoClient.Database(internalConfig.MongoDB.BookingDBName),
		Redis:          redisClient,
		Logger:         log,
		RabbitMQ:       rabbitMQ,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	if err := bootstrapingTheApp(startupCtx, bootstrap, location); err != nil {
		log.Fatal("Error bootstrapping the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    internalConfig.App.Port,
		Handler: bootstrap.Router,
	}

	go func() {
		log.Info("Server listening", zap.String("address", internalConfig.App.Port))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	log.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}

	if err := bootstrap.Shutdown(shutdownCtx); err != nil {
		log.Error("Error releasing resources", zap.Error(err))
	}

	log.Info("Server exiting")
}

func bootstrapingTheApp(ctx context.Context, bootstrap *config.Bootstrap, location *time.Location) error {
	log := bootstrap.Logger
	internalConfig := bootstrap.InternalConfig

	// Redis
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, log)
	resourceLimiter := ratelimiter.NewResourceLimiter(redisRepository, log)

	// Slot catalog
	catalog, err := slot.NewCatalog(internalConfig.Booking.Calendar, location)
	if err != nil {
		return err
	}

	// Appointments store
	appointmentRepository := appointments.NewAppointmentMongoRepository(bootstrap.MongoDB)
	if err := appointmentRepository.EnsureIndexes(ctx); err != nil {
		return err
	}

	// Notifications
	notificationQueue, err := notificationqueue.NewService(bootstrap.RabbitMQ, log, internalConfig.Notification.QueuePrefetch)
	if err != nil {
		return err
	}
	notificationTrigger := notifications.NewTrigger(appointmentRepository, notificationQueue, internalConfig, log)

	smtpClient := smtpDriver.NewSMTPClient(bootstrap.DriverConfig, internalConfig, log)
	mailerService := mailer.NewMailerService(smtpClient, internalConfig, log)
	appointmentMailer := mailer.NewAppointmentMailer(mailerService, internalConfig, location, log)

	deliveryWorker := notifications.NewDeliveryWorker(log, internalConfig, notificationQueue, appointmentMailer)
	reconciliationWorker := notifications.NewReconciliationWorker(log, internalConfig, lockService, appointmentRepository, notificationTrigger)

	// Usecases
	availabilityCache := availability.NewRedisAvailabilityCache(redisRepository)
	availabilityUsecase := availability.NewAvailabilityUsecase(appointmentRepository, catalog, availabilityCache, internalConfig, log)
	appointmentUsecase := appointments.NewAppointmentUsecase(appointmentRepository, availabilityUsecase, catalog, notificationTrigger, log)

	// Middlewares
	jwtManager, err := jwtmanager.NewJWTManager(internalConfig, log)
	if err != nil {
		return err
	}
	middlewareInstance := middlewares.NewMiddlewares(log, jwtManager, internalConfig)
	bookingLimiter := middlewares.NewRateLimiter(
		internalConfig.Booking.CreateBurstPerIP,
		time.Minute,
		time.Duration(internalConfig.Booking.CreateBlockInSeconds)*time.Second,
		log,
	)

	// Controllers
	healthController := controllers.NewHealthController(log, internalConfig.App.Version, map[string]controllers.HealthCheckFunc{
		"mongodb": func(ctx context.Context) error {
			return bootstrap.MongoDB.Client().Ping(ctx, readpref.Primary())
		},
		"redis": redisRepository.Ping,
	})
	availabilityController := controllers.NewAvailabilityController(log, availabilityUsecase, catalog)
	appointmentController := controllers.NewAppointmentController(log, appointmentUsecase, resourceLimiter, internalConfig)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewareInstance,
		bookingLimiter,
		healthController,
		availabilityController,
		appointmentController,
	)

	workerCtx := context.Background()
	deliveryWorker.Start(workerCtx)
	reconciliationWorker.Start(workerCtx)

	// The reconciliation worker fires through the trigger, so it stops first.
	// Draining the trigger before the delivery worker lets queued mail go out.
	bootstrap.WorkerStops = append(bootstrap.WorkerStops,
		reconciliationWorker.Stop,
		notificationTrigger.Wait,
		deliveryWorker.Stop,
		func() {
			if err := notificationQueue.Close(); err != nil {
				log.Warn("Error closing notification queue channel", zap.Error(err))
			}
		},
	)

	return nil
}
