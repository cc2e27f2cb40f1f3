package routers

import (
	"booking-service/internal/app/delivery/http/controllers"
	"booking-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAppointmentRoutes(router chi.Router, middlewares *middlewares.Middlewares, bookingLimiter *middlewares.RateLimiter, appointmentController *controllers.AppointmentController) {
	createChain := router.With(middlewares.OptionalBearer)
	if bookingLimiter != nil {
		createChain = createChain.With(bookingLimiter.Limit)
	}
	createChain.Post("/", appointmentController.CreateAppointment)

	router.With(middlewares.RequireBearer).Get("/mine", appointmentController.FindMyAppointments)
	router.With(middlewares.RequireOperatorAPIKey).Get("/{appointment_id}", appointmentController.FindAppointmentByID)
	router.With(middlewares.RequireOperatorAPIKey).Patch("/{appointment_id}/status", appointmentController.UpdateAppointmentStatus)
	router.With(middlewares.OptionalBearer).Post("/{appointment_id}/cancel", appointmentController.CancelAppointment)
}
