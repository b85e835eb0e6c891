package http

import "github.com/gin-gonic/gin"

func RegisterRoutes(r *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	items := r.Group("/items")
	items.Use(authMiddleware)
	{
		items.POST("", h.Create)
		items.GET("", h.List)
		items.GET("/search", h.Search)
		items.GET("/:id", h.Get)
		items.PATCH("/:id", h.Update)
		items.DELETE("/:id", h.Delete)
		items.POST("/:id/comment", h.CreateComment)
		items.POST("/:id/photo", h.UploadPhoto)
	}
}
