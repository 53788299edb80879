package routes

import (
	"github.com/gin-gonic/gin"

	"studiolink/middleware"
)

// RegisterBookingRoutes registers all endpoints for the booking pipeline.
func RegisterBookingRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/bookings")
	api.Use(middleware.FirebaseAuthMiddleware())
	{
		api.POST("/quote", hb.Booking.QuoteHandler)     // Phase 1: price + availability + instant decision
		api.POST("", hb.Booking.SubmitHandler)          // Phase 2: re-validate and persist
		api.GET("", hb.Booking.ListBookingsHandler)
		api.GET("/:id", hb.Booking.GetBookingHandler)
		api.POST("/:id/approve", hb.Booking.ApproveBookingHandler)
		api.POST("/:id/cancel", hb.Booking.CancelBookingHandler)
		api.POST("/:id/complete", hb.Booking.CompleteBookingHandler)
	}
}
