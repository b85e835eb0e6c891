package http

import "github.com/gin-gonic/gin"

// RegisterRoutes exposes stored files for download. Uploads go through
// the owning resource, e.g. POST /items/:id/photo.
func RegisterRoutes(r *gin.RouterGroup, h *Handler, authMiddleware gin.HandlerFunc) {
	files := r.Group("/files")
	files.Use(authMiddleware)
	{
		files.GET("/:id", h.ServeFile)
		files.GET("/:id/thumbnail", h.ServeThumbnail)
	}
}
