package handler

import (
	"net/http"
	"strconv"

	"snapvault/internal/services"
	"snapvault/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// MediaHandler handles the gallery endpoints.
type MediaHandler struct {
	service *services.MediaService
}

func NewMediaHandler(service *services.MediaService) *MediaHandler {
	return &MediaHandler{service: service}
}

// List handles GET /media. An empty page answers 204, not an empty array.
func (h *MediaHandler) List(c *gin.Context) {
	viewer, ok := services.ViewerFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized"))
		return
	}

	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 10)

	items, pagination, err := h.service.List(c.Request.Context(), page, limit, viewer,
		c.Query("user"), c.Query("search"))
	if err != nil {
		writeError(c, err)
		return
	}

	if len(items) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": items, "pagination": pagination})
}

// Get handles GET /media/:id.
func (h *MediaHandler) Get(c *gin.Context) {
	viewer, ok := services.ViewerFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized"))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid media id"))
		return
	}

	item, err := h.service.GetByID(c.Request.Context(), id, viewer)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// ToggleLike handles POST /media/:id/toggle-like.
func (h *MediaHandler) ToggleLike(c *gin.Context) {
	viewer, ok := services.ViewerFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized"))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid media id"))
		return
	}

	var req httpdto.ToggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request"))
		return
	}

	result, err := h.service.ToggleLike(c.Request.Context(), id, viewer, req.Action)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Delete handles DELETE /media/:id.
func (h *MediaHandler) Delete(c *gin.Context) {
	viewer, ok := services.ViewerFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized"))
		return
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid media id"))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, viewer); err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewMessageResponse("media deleted successfully"))
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return -1
	}
	return value
}
