package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	bookings := r.Group("/bookings")
	bookings.Use(authMiddleware)
	{
		bookings.POST("", h.Create)
		bookings.GET("", h.ListForRenter)
		bookings.GET("/owner", h.ListForOwner)
		bookings.GET("/:id", h.Get)
		bookings.PATCH("/:id", h.Decide)
	}
}
