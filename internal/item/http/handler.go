package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	fileHttp "github.com/nekogravitycat/shareit-backend/internal/file/http"
	"github.com/nekogravitycat/shareit-backend/internal/item"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

const maxPhotoBytes = 5 << 20

type Handler struct {
	service     item.Service
	fileHandler *fileHttp.Handler
	maxPageSize int
}

func NewHandler(service item.Service, fileHandler *fileHttp.Handler, maxPageSize int) *Handler {
	return &Handler{
		service:     service,
		fileHandler: fileHandler,
		maxPageSize: maxPageSize,
	}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	it, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), item.CreateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   *body.Available,
		RequestID:   body.RequestID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewItemResponse(it, nil))
}

// List returns the caller's own items with their booking windows.
func (h *Handler) List(c *gin.Context) {
	var req ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if err := req.Validate(h.maxPageSize); err != nil {
		response.Error(c, err)
		return
	}

	views, total, err := h.service.ListByOwner(c.Request.Context(), auth.GetUserID(c), req.From, req.Size)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]OwnerItemResponse, len(views))
	for i, v := range views {
		items[i] = NewOwnerItemResponse(v)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.From, req.Size, total))
}

func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if err := req.Validate(h.maxPageSize); err != nil {
		response.Error(c, err)
		return
	}

	found, total, err := h.service.Search(c.Request.Context(), auth.GetUserID(c), req.Text, req.From, req.Size)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]ItemResponse, len(found))
	for i, it := range found {
		items[i] = NewItemResponse(it, nil)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(items, req.From, req.Size, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	view, err := h.service.Get(c.Request.Context(), auth.GetUserID(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewViewResponse(view))
}

func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	var body UpdateItemRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	it, err := h.service.Update(c.Request.Context(), auth.GetUserID(c), uri.ID, item.UpdateRequest{
		Name:        body.Name,
		Description: body.Description,
		Available:   body.Available,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewItemResponse(it, nil))
}

func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), auth.GetUserID(c), uri.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) CreateComment(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	var body CreateCommentRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	comment, err := h.service.CreateComment(c.Request.Context(), auth.GetUserID(c), uri.ID, body.Text)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewCommentResponse(comment))
}

// UploadPhoto stores an image and attaches it to the caller's item.
// The stored file is removed again if the item cannot take it.
func (h *Handler) UploadPhoto(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	ownerID := auth.GetUserID(c)
	it, err := h.service.GetByID(c.Request.Context(), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}
	if it.OwnerID != ownerID {
		response.Error(c, item.ErrNotFound)
		return
	}

	h.fileHandler.HandleFileUpload(c, fileHttp.FileUploadConfig{
		FormFieldName: "photo",
		MaxSizeBytes:  maxPhotoBytes,
		AllowedTypes:  []string{"image/jpeg", "image/png", "image/gif"},
		AfterUpload: func(ctx context.Context, fileID string) error {
			_, err := h.service.AttachPhoto(ctx, ownerID, uri.ID, fileID)
			return err
		},
	})
}
