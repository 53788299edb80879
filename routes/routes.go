package routes

import (
	"github.com/gin-gonic/gin"

	"studiolink/handlers"
	"studiolink/middleware"
)

// HandlerBundle groups the handlers the router wires up.
type HandlerBundle struct {
	Booking  *handlers.BookingHandler
	Studio   *handlers.StudioHandler
	Engineer *handlers.EngineerHandler
}

// RegisterRoutes mounts all API endpoints.
func RegisterRoutes(r *gin.Engine, hb *HandlerBundle) {
	r.GET("/health", handlers.HealthHandler)

	RegisterBookingRoutes(r, hb)
	RegisterStudioRoutes(r, hb)
	RegisterEngineerRoutes(r, hb)
}

// RegisterStudioRoutes registers studio, room and calendar endpoints.
func RegisterStudioRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/studios")
	api.Use(middleware.FirebaseAuthMiddleware())
	{
		api.POST("", hb.Studio.UpsertStudioHandler)
		api.GET("/:id", hb.Studio.GetStudioHandler)
		api.DELETE("/:id", hb.Studio.DeleteStudioHandler)
		api.PUT("/:id/rooms", hb.Studio.UpsertRoomHandler)
		api.GET("/:id/rooms", hb.Studio.FetchRoomsHandler)
		api.DELETE("/:id/rooms/:roomId", hb.Studio.DeleteRoomHandler)
	}

	calendar := r.Group("/api/availability")
	calendar.Use(middleware.FirebaseAuthMiddleware())
	{
		calendar.GET("/:ownerId", hb.Studio.ListAvailabilityHandler)
		calendar.POST("/:ownerId/blocks", hb.Studio.CreateManualBlockHandler)
		calendar.DELETE("/:ownerId/blocks/:entryId", hb.Studio.DeleteManualBlockHandler)
	}
}

// RegisterEngineerRoutes registers engineer profile endpoints.
func RegisterEngineerRoutes(r *gin.Engine, hb *HandlerBundle) {
	api := r.Group("/api/engineers")
	api.Use(middleware.FirebaseAuthMiddleware())
	{
		api.PUT("/profile", hb.Engineer.SaveProfileHandler)
		api.GET("/:id", hb.Engineer.GetProfileHandler)
		api.PUT("/:id/settings", hb.Engineer.UpdateSettingsHandler)
	}
}
