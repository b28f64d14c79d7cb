package routes

import (
	"net/http"
	"time"

	"medibook/handlers"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAppointmentRoutes registers all endpoints for the booking core.
func RegisterAppointmentRoutes(r *gin.Engine, bh *handlers.BookingHandler) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		MaxAge:           12 * time.Hour,
		AllowCredentials: false,
	}))

	api := r.Group("/api/appointments")
	{
		api.POST("/search", bh.SearchDoctors) // availability search (date-exact or earliest-first)
		api.GET("/cost", bh.EstimateCost)     // insurance cost estimate
		api.POST("/book", bh.BookAppointment) // slot reservation
	}

	r.GET("/health", handlers.HealthHandler)
}
