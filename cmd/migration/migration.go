package main

import (
	"booking-service/internal/app/config"
	"booking-service/internal/app/drivers/database"
	"booking-service/internal/app/drivers/logger"
	"booking-service/internal/app/services/core/appointments"
	"context"
	"time"

	"go.uber.org/zap"
)

// Applies the appointment collection indexes without starting the API. The
// HTTP server runs the same step at boot; this lets a deploy apply it first.
func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()
	log := logger.NewZapLogger(driverConfig, internalConfig)
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client, err := database.NewMongoDB(ctx, driverConfig, log)
	if err != nil {
		log.Fatal("Error connecting to MongoDB", zap.Error(err))
	}
	defer client.Disconnect(context.Background())

	repository := appointments.NewAppointmentMongoRepository(client.Database(internalConfig.MongoDB.BookingDBName))
	if err := repository.EnsureIndexes(ctx); err != nil {
		log.Fatal("Error applying appointment indexes", zap.Error(err))
	}

	log.Info("Applied appointment indexes",
		zap.String("database", internalConfig.MongoDB.BookingDBName))
}
