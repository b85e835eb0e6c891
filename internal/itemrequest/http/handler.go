package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nekogravitycat/shareit-backend/internal/auth"
	"github.com/nekogravitycat/shareit-backend/internal/itemrequest"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/request"
	"github.com/nekogravitycat/shareit-backend/internal/pkg/response"
)

type Handler struct {
	service     itemrequest.Service
	maxPageSize int
}

func NewHandler(service itemrequest.Service, maxPageSize int) *Handler {
	return &Handler{service: service, maxPageSize: maxPageSize}
}

func (h *Handler) Create(c *gin.Context) {
	var body CreateRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BindError(c, err)
		return
	}

	req, err := h.service.Create(c.Request.Context(), auth.GetUserID(c), body.Description)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewRequestResponse(req))
}

// ListOwn returns the caller's requests, newest first, without paging.
func (h *Handler) ListOwn(c *gin.Context) {
	reqs, err := h.service.ListOwn(c.Request.Context(), auth.GetUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]RequestResponse, len(reqs))
	for i, r := range reqs {
		out[i] = NewRequestResponse(r)
	}
	c.JSON(http.StatusOK, out)
}

func (h *Handler) ListOthers(c *gin.Context) {
	var req ListOthersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BindError(c, err)
		return
	}
	if err := req.Validate(h.maxPageSize); err != nil {
		response.Error(c, err)
		return
	}

	reqs, total, err := h.service.ListOthers(c.Request.Context(), auth.GetUserID(c), req.From, req.Size)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]RequestResponse, len(reqs))
	for i, r := range reqs {
		out[i] = NewRequestResponse(r)
	}
	c.JSON(http.StatusOK, response.NewPageResponse(out, req.From, req.Size, total))
}

func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		response.BindError(c, err)
		return
	}

	req, err := h.service.Get(c.Request.Context(), auth.GetUserID(c), uri.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewRequestResponse(req))
}
