package routers

import (
	"booking-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachAvailabilityRoutes(router chi.Router, availabilityController *controllers.AvailabilityController) {
	router.Get("/", availabilityController.GetAvailability)
	router.Get("/monthly", availabilityController.GetMonthlyAvailability)
	router.Get("/check", availabilityController.CheckAvailability)
	router.Get("/dates/{date}", availabilityController.GetDateAvailability)
}
